package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title         string `json:"title"`
	Description   string `json:"description"`
	Author        string `json:"author"`
	WorkloadHours int    `json:"workload_hours" gorm:"default:0"` // total duration in hours
	Status        string `json:"status" gorm:"default:'DRAFT'"`   // DRAFT, ACTIVE, INACTIVE
	IsPublished   bool   `json:"is_published" gorm:"default:false"`
	IsDeleted     bool   `gorm:"default:false"`
}
