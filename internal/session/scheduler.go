package session

import (
	"fmt"
	"time"

	cron "github.com/robfig/cron/v3"

	"github.com/Sachintlgt/brd-admin-sub000/internal/utils"
)

// Scheduler drives the periodic silent refresh. The store starts it when a
// session becomes authenticated and stops it the moment the session leaves
// that state, so no job outlives its session.
type Scheduler interface {
	Start(interval time.Duration, fn func())
	Stop()
}

// cronScheduler is the production Scheduler, backed by robfig/cron.
type cronScheduler struct {
	c *cron.Cron
}

// NewCronScheduler returns the cron-backed production scheduler.
func NewCronScheduler() Scheduler {
	return &cronScheduler{}
}

func (s *cronScheduler) Start(interval time.Duration, fn func()) {
	s.Stop()
	s.c = cron.New()
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := s.c.AddFunc(spec, fn); err != nil {
		utils.Logger.WithError(err).Error("Failed to schedule session refresh job")
		return
	}
	s.c.Start()
}

func (s *cronScheduler) Stop() {
	if s.c != nil {
		s.c.Stop()
		s.c = nil
	}
}
