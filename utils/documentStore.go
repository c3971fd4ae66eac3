package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"certhub/config"

	"github.com/go-resty/resty/v2"
)

// DocumentStore is the opaque blob boundary: it takes content, returns a
// URL. This subsystem never reads document content back.
type DocumentStore interface {
	Upload(ctx context.Context, name string, content io.Reader) (string, error)
}

// NewDocumentStore picks the configured backend: remote HTTP store when
// DOC_STORE_URL is set, local disk otherwise.
func NewDocumentStore() DocumentStore {
	if config.AppConfig.DocStoreURL != "" {
		return NewRemoteDocumentStore(config.AppConfig.DocStoreURL, config.AppConfig.DocStoreKey)
	}
	return &LocalDocumentStore{
		Dir:     config.AppConfig.UploadDir,
		BaseURL: config.AppConfig.UploadBaseURL,
	}
}

// LocalDocumentStore writes documents under a directory served statically
// by the app.
type LocalDocumentStore struct {
	Dir     string
	BaseURL string
}

func (s *LocalDocumentStore) Upload(_ context.Context, name string, content io.Reader) (string, error) {
	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", err
	}

	filePath := filepath.Join(s.Dir, filepath.Base(name))

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		return "", err
	}

	return s.BaseURL + "/" + filepath.Base(name), nil
}

// RemoteDocumentStore pushes documents to the external blob service over
// HTTP and returns the reference URL the service assigns.
type RemoteDocumentStore struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

func NewRemoteDocumentStore(baseURL, apiKey string) *RemoteDocumentStore {
	return &RemoteDocumentStore{
		client:  resty.New(),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (s *RemoteDocumentStore) Upload(ctx context.Context, name string, content io.Reader) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.apiKey).
		SetFileReader("file", name, content).
		Post(s.baseURL + "/objects")
	if err != nil {
		return "", fmt.Errorf("document store request failed: %v", err)
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		return "", fmt.Errorf("document store error: %s", resp.String())
	}

	var uploadResp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(resp.Body(), &uploadResp); err != nil {
		return "", fmt.Errorf("invalid document store response: %v", err)
	}
	if uploadResp.URL == "" {
		return "", fmt.Errorf("document store returned no url")
	}

	return uploadResp.URL, nil
}
