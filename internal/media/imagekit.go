// internal/media/imagekit.go
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/forma3d/catalog-backend/internal/config"
)

// ImageKitStore talks to the ImageKit REST API. The upload endpoint is
// a multipart POST authenticated with the private key via basic auth;
// deletion is keyed by the fileId returned on upload.
type ImageKitStore struct {
	cfg    config.ImageKitConfig
	folder string
	client *http.Client
}

func NewImageKitStore(cfg config.MediaConfig) *ImageKitStore {
	return &ImageKitStore{
		cfg:    cfg.ImageKit,
		folder: cfg.Folder,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *ImageKitStore) Provider() string { return "imagekit" }

type imageKitUploadResponse struct {
	FileID       string `json:"fileId"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	FilePath     string `json:"filePath"`
}

type imageKitErrorResponse struct {
	Message string `json:"message"`
}

func (s *ImageKitStore) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", in.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(in.Body); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	writer.WriteField("fileName", in.FileName)
	writer.WriteField("useUniqueFileName", "true")
	if s.folder != "" {
		writer.WriteField("folder", "/"+s.folder+"/")
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.UploadURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth(s.cfg.PrivateKey, "")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imagekit upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("imagekit upload failed: %s", readErrorMessage(resp))
	}

	var uploaded imageKitUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return nil, fmt.Errorf("failed to decode imagekit response: %w", err)
	}

	return &UploadResult{
		URL:          uploaded.URL,
		ThumbnailURL: uploaded.ThumbnailURL,
		FileID:       uploaded.FileID,
		Name:         uploaded.Name,
		FilePath:     uploaded.FilePath,
	}, nil
}

func (s *ImageKitStore) Delete(ctx context.Context, fileID string) error {
	url := fmt.Sprintf("%s/files/%s", s.cfg.APIBaseURL, fileID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}
	req.SetBasicAuth(s.cfg.PrivateKey, "")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("imagekit delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("imagekit delete failed: %s", readErrorMessage(resp))
	}

	return nil
}

func readErrorMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr imageKitErrorResponse
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Sprintf("%s (status %d)", apiErr.Message, resp.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d", resp.StatusCode)
}
