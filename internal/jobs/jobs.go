// Package jobs runs the periodic housekeeping tasks of the API process.
package jobs

import (
	"context"
	"fmt"
	"time"

	"ads-inventory-ws/pkg/logger"

	"github.com/robfig/cron/v3"
)

const purgeTimeout = 30 * time.Second

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// SessionPurger deletes expired login sessions.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type Scheduler struct {
	sched *cron.Cron
	log   *logger.Logger
}

func NewScheduler(log *logger.Logger) *Scheduler {
	return &Scheduler{
		sched: cron.New(cron.WithLocation(time.UTC), cron.WithParser(cronParser)),
		log:   log,
	}
}

// AddSessionPurge runs purger on schedule, a cron expression or a descriptor like @hourly.
func (s *Scheduler) AddSessionPurge(schedule string, purger SessionPurger) error {
	_, err := s.sched.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()
		PurgeSessions(ctx, purger, s.log)
	})
	if err != nil {
		return fmt.Errorf("scheduling session purge %q: %w", schedule, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.sched.Stop().Done():
	case <-ctx.Done():
	}
}

// PurgeSessions runs one purge pass and logs the outcome.
func PurgeSessions(ctx context.Context, purger SessionPurger, log *logger.Logger) int64 {
	n, err := purger.PurgeExpiredSessions(ctx)
	if err != nil {
		log.Error(ctx, "session purge failed", err)
		return 0
	}
	if n > 0 {
		log.Info(log.WithField(ctx, "purged", n), "expired sessions purged")
	}
	return n
}
