package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
)

type tokenPurger interface {
	PurgeRevoked() int
}

// sizer is implemented by stores that can count their live sessions.
type sizer interface {
	Len() int
}

type viewSweeper interface {
	Sweep(idle time.Duration) int
}

// SessionJobs reclaims state left behind by sessions that were never ended.
type SessionJobs struct {
	store    session.Store
	tokens   tokenPurger
	views    viewSweeper
	lifetime time.Duration
}

func NewSessionJobs(store session.Store, tokens tokenPurger, views viewSweeper, lifetime time.Duration) *SessionJobs {
	return &SessionJobs{
		store:    store,
		tokens:   tokens,
		views:    views,
		lifetime: lifetime,
	}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("purge_expired_session_values", interval, j.PurgeExpiredValues)
	scheduler.AddJob("purge_revoked_tokens", interval, j.PurgeRevokedTokens)
	scheduler.AddJob("sweep_idle_attendance_views", interval, j.SweepIdleViews)
}

// PurgeExpiredValues deletes expired entries when the store keeps expiry
// itself. Stores with native expiry are skipped.
func (j *SessionJobs) PurgeExpiredValues(ctx context.Context) error {
	purger, ok := j.store.(session.Purger)
	if !ok {
		return nil
	}
	n, err := purger.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("purge expired session values: %w", err)
	}
	if n == 0 {
		return nil
	}
	if s, ok := j.store.(sizer); ok {
		slog.Info("Cron: Purged expired session values", "count", n, "remaining", s.Len())
		return nil
	}
	slog.Info("Cron: Purged expired session values", "count", n)
	return nil
}

func (j *SessionJobs) PurgeRevokedTokens(_ context.Context) error {
	if n := j.tokens.PurgeRevoked(); n > 0 {
		slog.Info("Cron: Purged revoked tokens", "count", n)
	}
	return nil
}

func (j *SessionJobs) SweepIdleViews(_ context.Context) error {
	if n := j.views.Sweep(j.lifetime); n > 0 {
		slog.Info("Cron: Dropped idle attendance views", "count", n)
	}
	return nil
}
