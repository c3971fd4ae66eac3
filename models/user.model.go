package models

import "gorm.io/gorm"

// User represents a platform student whose completions feed the live
// certificate projection. Account management happens in the main platform;
// this service only reads.
type User struct {
	gorm.Model
	Name       string `json:"name"`
	Email      string `json:"email" gorm:"index"`
	NationalID string `json:"national_id" gorm:"index"` // digits only, 11 chars
	IsDeleted  bool   `gorm:"default:false"`
}
