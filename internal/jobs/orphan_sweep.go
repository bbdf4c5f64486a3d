// internal/jobs/orphan_sweep.go
package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"

	"github.com/forma3d/catalog-backend/internal/config"
	"github.com/forma3d/catalog-backend/internal/services"
)

// Scheduler runs the periodic reconciliation of orphaned media assets:
// remote files whose delete failed and which no product references.
type Scheduler struct {
	scheduler    gocron.Scheduler
	mediaService *services.MediaService
	cfg          *config.Config
}

func NewScheduler(mediaService *services.MediaService, cfg *config.Config) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		scheduler:    scheduler,
		mediaService: mediaService,
		cfg:          cfg,
	}, nil
}

func (s *Scheduler) Start() error {
	if !s.cfg.Jobs.OrphanSweepEnabled {
		logrus.Info("Orphan asset sweep disabled")
		return nil
	}

	interval := time.Duration(s.cfg.Jobs.OrphanSweepInterval) * time.Minute

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.sweepOrphans),
		gocron.WithName("orphan-asset-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	logrus.WithField("interval", interval.String()).Info("Orphan asset sweep scheduled")
	return nil
}

func (s *Scheduler) sweepOrphans() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.mediaService.SweepOrphans(ctx, s.cfg.Jobs.OrphanMaxAttempts); err != nil {
		logrus.WithError(err).Error("Orphan asset sweep failed")
	}
}

func (s *Scheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}
