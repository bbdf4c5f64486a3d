// internal/media/minio.go
package media

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/forma3d/catalog-backend/internal/config"
)

// MinIOStore keeps assets in a MinIO bucket, mirroring the S3 provider:
// the object key is the fileId.
type MinIOStore struct {
	client *minio.Client
	cfg    config.MinIOConfig
	folder string
}

func NewMinIOStore(cfg config.MediaConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOStore{
		client: client,
		cfg:    cfg.MinIO,
		folder: cfg.Folder,
	}, nil
}

func (s *MinIOStore) Provider() string { return "minio" }

// EnsureBucket creates the bucket if it does not exist yet.
func (s *MinIOStore) EnsureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return err
	}
	if !found {
		return s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (s *MinIOStore) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	key := generateObjectName(s.folder, in.FileName)

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, bytes.NewReader(in.Body), int64(len(in.Body)), minio.PutObjectOptions{
		ContentType: in.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to minio: %w", err)
	}

	url := s.objectURL(key)

	return &UploadResult{
		URL:          url,
		ThumbnailURL: url,
		FileID:       key,
		Name:         path.Base(key),
		FilePath:     "/" + key,
	}, nil
}

func (s *MinIOStore) Delete(ctx context.Context, fileID string) error {
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, fileID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file from minio: %w", err)
	}
	return nil
}

func (s *MinIOStore) objectURL(key string) string {
	if s.cfg.PublicURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.cfg.PublicURL, s.cfg.Bucket, key)
	}

	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, key)
}
