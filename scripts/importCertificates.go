package main

import (
	"certhub/config"
	"certhub/database"
	"certhub/importer"
	"certhub/utils"
	"context"
	"log"
	"os"
)

// One-off bulk import from the command line, for batches too big for the
// admin upload screen. Documents cannot be attached this way; use the edit
// form afterwards.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: importCertificates <spreadsheet file>")
	}
	path := os.Args[1]

	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open spreadsheet: %v", err)
	}
	defer file.Close()

	result, err := importer.ImportBatch(
		context.Background(),
		database.Database.Db,
		utils.NewDocumentStore(),
		path,
		file,
		nil,
	)
	if err != nil {
		log.Fatalf("Import aborted: %v", err)
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Batch: %s", result.Batch)
	log.Printf("Imported: %d", result.Imported)
	log.Printf("Problems: %d", len(result.Errors))
	for _, msg := range result.Errors {
		log.Printf("  - %s", msg)
	}
}
