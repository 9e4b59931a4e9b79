package infrastructure

import (
	"time"

	"github.com/go-co-op/gocron"
	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

// RefreshScheduler posts periodic refresh work to the UI dispatcher
type RefreshScheduler struct {
	scheduler  *gocron.Scheduler
	dispatcher ports.Dispatcher
	logger     ports.Logger
}

// NewRefreshScheduler creates a scheduler that delivers jobs through dispatcher
func NewRefreshScheduler(dispatcher ports.Dispatcher, logger ports.Logger) *RefreshScheduler {
	return &RefreshScheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Every schedules refresh to run on the UI goroutine every interval, starting after one interval
func (s *RefreshScheduler) Every(interval time.Duration, name string, refresh func()) error {
	if interval <= 0 {
		return errors.NewValidationError("refresh interval must be positive")
	}

	_, err := s.scheduler.Every(interval).WaitForSchedule().Do(func() {
		s.logger.Debug("Scheduled refresh", ports.F("job", name))
		s.dispatcher.Post(refresh)
	})
	if err != nil {
		return errors.NewConfigurationError("failed to schedule "+name, err)
	}
	return nil
}

// Start runs the scheduler in the background
func (s *RefreshScheduler) Start() {
	s.scheduler.StartAsync()
	s.logger.Info("Refresh scheduler started", ports.F("jobs", len(s.scheduler.Jobs())))
}

// Stop stops the scheduler
func (s *RefreshScheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("Refresh scheduler stopped")
}
