package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"certhub/config"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// logCleanup logs scheduler events with timestamp
func logCleanup(message string) {
	log.Printf("[DOC-CLEANUP %s] %s", time.Now().Format(time.RFC3339), message)
}

// referencedDocumentNames collects the file names every certificate row
// still points at.
func referencedDocumentNames(db *gorm.DB) (map[string]bool, error) {
	referenced := make(map[string]bool)

	for _, table := range []string{"legacy_certificates", "historical_certificates"} {
		var urls []string
		if err := db.Table(table).
			Where("document_url IS NOT NULL").
			Pluck("document_url", &urls).Error; err != nil {
			return nil, err
		}
		for _, u := range urls {
			referenced[filepath.Base(u)] = true
		}
	}

	return referenced, nil
}

// pruneOrphanedDocuments removes files in the upload directory no
// certificate references anymore (edit forms overwrite the reference, they
// never delete the old file themselves).
func pruneOrphanedDocuments(db *gorm.DB) {
	dir := config.AppConfig.UploadDir

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logCleanup("Error reading upload dir: " + err.Error())
		}
		return
	}

	referenced, err := referencedDocumentNames(db)
	if err != nil {
		logCleanup("Error loading referenced documents: " + err.Error())
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || referenced[entry.Name()] {
			continue
		}

		// Leave very fresh files alone, they may belong to an import that
		// has not committed yet.
		info, err := entry.Info()
		if err != nil || time.Since(info.ModTime()) < 24*time.Hour {
			continue
		}

		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			logCleanup("Error removing " + entry.Name() + ": " + err.Error())
			continue
		}
		removed++
	}

	if removed > 0 {
		logCleanup(fmt.Sprintf("Removed %d orphaned documents", removed))
	}
}

// StartCleanupScheduler runs the orphaned-document sweep nightly. Only
// meaningful with the local document store; the remote store owns its own
// retention.
func StartCleanupScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("0 3 * * *", func() {
		logCleanup("Starting orphaned document sweep")
		pruneOrphanedDocuments(db)
	}); err != nil {
		logCleanup("Failed to register cleanup job: " + err.Error())
		return c
	}

	c.Start()
	logCleanup("Cleanup scheduler started")
	return c
}
