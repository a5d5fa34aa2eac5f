package scheduler

import (
	"fmt"

	"github.com/jmorel/goflick/internal/auth"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron     *cron.Cron
	sessions *auth.SessionManager
	logger   *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(sessions *auth.SessionManager, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		sessions: sessions,
		logger:   logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	// Every hour: drop expired login sessions
	_, err := s.cron.AddFunc("0 * * * *", func() {
		s.runSessionSweep()
	})
	if err != nil {
		return fmt.Errorf("failed to add session sweep job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runSessionSweep executes the session expiry job
func (s *Scheduler) runSessionSweep() {
	removed := s.sessions.Sweep()
	if removed > 0 {
		s.logger.WithField("count", removed).Info("Removed expired sessions")
	} else {
		s.logger.Debug("No expired sessions to remove")
	}
}
