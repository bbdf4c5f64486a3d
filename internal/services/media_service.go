// internal/services/media_service.go
package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/forma3d/catalog-backend/internal/media"
	"github.com/forma3d/catalog-backend/internal/models"
)

// MediaService wraps a media store with orphan bookkeeping: when a
// remote delete fails, the asset is recorded so the background sweeper
// can retry, instead of leaking storage silently.
type MediaService struct {
	db    *gorm.DB
	store media.Store
}

func NewMediaService(db *gorm.DB, store media.Store) *MediaService {
	return &MediaService{db: db, store: store}
}

func (s *MediaService) Upload(ctx context.Context, in media.UploadInput) (*media.UploadResult, error) {
	return s.store.Upload(ctx, in)
}

// Delete removes a remote asset. A missing asset counts as success; any
// other failure is recorded as an orphan and still returned.
func (s *MediaService) Delete(ctx context.Context, fileID string) error {
	err := s.store.Delete(ctx, fileID)
	if err == nil || errors.Is(err, media.ErrNotFound) {
		return nil
	}

	s.recordOrphan(fileID, err)
	return err
}

func (s *MediaService) Provider() string {
	return s.store.Provider()
}

func (s *MediaService) recordOrphan(fileID string, cause error) {
	now := time.Now()
	orphan := models.OrphanAsset{
		FileID:      fileID,
		Provider:    s.store.Provider(),
		Attempts:    1,
		LastError:   cause.Error(),
		LastTriedAt: &now,
	}

	err := s.db.Where("file_id = ?", fileID).First(&models.OrphanAsset{}).Error
	if err == nil {
		// Already tracked; the sweeper owns the attempt counter.
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).WithField("file_id", fileID).Error("Failed to look up orphan asset")
		return
	}

	if err := s.db.Create(&orphan).Error; err != nil {
		logrus.WithError(err).WithField("file_id", fileID).Error("Failed to record orphan asset")
		return
	}
	logrus.WithField("file_id", fileID).Warn("Recorded orphaned media asset for later cleanup")
}

// SweepOrphans retries the remote delete for every tracked orphan.
// Assets gone upstream, or deleted successfully, drop out of the table.
// Rows that reach maxAttempts stop being retried but stay in the table
// for operator inspection.
func (s *MediaService) SweepOrphans(ctx context.Context, maxAttempts int) error {
	var orphans []models.OrphanAsset
	if err := s.db.Order("created_at asc").Find(&orphans).Error; err != nil {
		return err
	}

	for _, orphan := range orphans {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if orphan.Attempts >= maxAttempts {
			logrus.WithFields(logrus.Fields{
				"file_id":  orphan.FileID,
				"attempts": orphan.Attempts,
			}).Warn("Orphaned asset reached the delete attempt cap, leaving for inspection")
			continue
		}

		err := s.store.Delete(ctx, orphan.FileID)
		if err != nil && !errors.Is(err, media.ErrNotFound) {
			now := time.Now()
			updates := map[string]interface{}{
				"attempts":      orphan.Attempts + 1,
				"last_error":    err.Error(),
				"last_tried_at": &now,
			}
			if err := s.db.Model(&orphan).Updates(updates).Error; err != nil {
				logrus.WithError(err).WithField("file_id", orphan.FileID).Error("Failed to update orphan attempt")
			}
			continue
		}

		if err := s.db.Unscoped().Delete(&orphan).Error; err != nil {
			logrus.WithError(err).WithField("file_id", orphan.FileID).Error("Failed to remove reconciled orphan")
			continue
		}
		logrus.WithField("file_id", orphan.FileID).Info("Reconciled orphaned media asset")
	}

	return nil
}
