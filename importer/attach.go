package importer

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"time"

	"certhub/models/certificate"
	"certhub/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DocumentBlob is an operator-provided document gathered during the preview
// step, keyed by certificate number before commit.
type DocumentBlob struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// BlobFromFileHeader wraps a multipart upload as a DocumentBlob.
func BlobFromFileHeader(fh *multipart.FileHeader) DocumentBlob {
	return DocumentBlob{
		Filename: fh.Filename,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_\-]+`)

// DocumentObjectName derives a collision-resistant object name from the
// certificate number, the current timestamp and a random suffix, preserving
// the original extension.
func DocumentObjectName(certNumber, filename string) string {
	base := unsafeNameChars.ReplaceAllString(certNumber, "-")
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("%s-%s-%s%s", base, time.Now().Format("20060102150405"), suffix, filepath.Ext(filename))
}

// AttachDocuments uploads each record's matching blob and sets DocumentURL
// on success. An upload failure is logged and leaves the record without a
// document; it never fails the record itself. Uploads run in parallel but
// write to disjoint records, so validation order is preserved untouched.
func AttachDocuments(ctx context.Context, store utils.DocumentStore, records []certificate.HistoricalCertificate, docs map[string]DocumentBlob) {
	if store == nil || len(docs) == 0 {
		return
	}

	var g errgroup.Group
	g.SetLimit(4)

	for i := range records {
		blob, ok := docs[records[i].CertificateNumber]
		if !ok {
			continue
		}

		record := &records[i]
		g.Go(func() error {
			content, err := blob.Open()
			if err != nil {
				log.Printf("[IMPORT] document for %s unreadable: %v", record.CertificateNumber, err)
				return nil
			}
			defer content.Close()

			url, err := store.Upload(ctx, DocumentObjectName(record.CertificateNumber, blob.Filename), content)
			if err != nil {
				log.Printf("[IMPORT] document upload for %s failed: %v", record.CertificateNumber, err)
				return nil
			}

			record.DocumentURL = &url
			return nil
		})
	}

	g.Wait()
}
