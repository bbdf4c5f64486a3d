// internal/media/store.go
package media

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/forma3d/catalog-backend/internal/config"
)

// ErrNotFound is returned by Delete when the remote asset no longer
// exists. Callers treat it as an already-completed deletion.
var ErrNotFound = errors.New("media: file not found")

// UploadInput carries the raw file bytes for one upload.
type UploadInput struct {
	FileName    string
	ContentType string
	Body        []byte
}

// UploadResult is the upload contract shared by all providers.
// FileID is the handle required to delete the asset later.
type UploadResult struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	FileID       string `json:"fileId"`
	Name         string `json:"name"`
	FilePath     string `json:"filePath"`
}

// Store is a remote media store: upload bytes, get back a stable
// identifier and a retrievable URL; delete by that identifier.
type Store interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
	Delete(ctx context.Context, fileID string) error
	Provider() string
}

// New builds the store selected by cfg.Provider.
func New(cfg config.MediaConfig) (Store, error) {
	switch cfg.Provider {
	case "imagekit":
		return NewImageKitStore(cfg), nil
	case "s3":
		return NewS3Store(cfg)
	case "minio":
		store, err := NewMinIOStore(cfg)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure minio bucket: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown media provider %q", cfg.Provider)
	}
}

// generateObjectName returns a unique object key for bucket-backed
// providers, keeping the original extension.
func generateObjectName(folder, originalName string) string {
	id := uuid.New()
	ext := strings.ToLower(filepath.Ext(originalName))

	timestamp := time.Now().Format("20060102")
	name := fmt.Sprintf("%s_%s%s", timestamp, id.String()[:8], ext)

	if folder != "" {
		return fmt.Sprintf("%s/%s", strings.Trim(folder, "/"), name)
	}
	return name
}
