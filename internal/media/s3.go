// internal/media/s3.go
package media

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/forma3d/catalog-backend/internal/config"
)

// S3Store keeps assets in an S3 bucket. The object key doubles as the
// fileId used for deletion.
type S3Store struct {
	s3Client *s3.S3
	cfg      config.S3Config
	folder   string
}

func NewS3Store(cfg config.MediaConfig) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.S3.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Store{
		s3Client: s3.New(sess),
		cfg:      cfg.S3,
		folder:   cfg.Folder,
	}, nil
}

func (s *S3Store) Provider() string { return "s3" }

func (s *S3Store) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	key := generateObjectName(s.folder, in.FileName)

	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(in.Body),
		ContentType:   aws.String(in.ContentType),
		ContentLength: aws.Int64(int64(len(in.Body))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
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

func (s *S3Store) Delete(ctx context.Context, fileID string) error {
	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(fileID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (s *S3Store) objectURL(key string) string {
	if s.cfg.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.cfg.CloudFrontURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.cfg.Bucket, s.cfg.Region, key)
}
