// Package worker holds long-running background loops started by the server.
package worker

import (
	"context"
	"time"

	"github.com/lanexam/lanexam-backend/internal/repository"
	"github.com/rs/zerolog"
)

// SessionSweeper periodically deletes expired sessions and flips users with
// no remaining live session offline, so crashed or force-closed clients
// don't linger as online on the teacher dashboard.
type SessionSweeper struct {
	sessionRepo *repository.SessionRepository
	interval    time.Duration
	log         zerolog.Logger
}

// NewSessionSweeper creates a sweeper with the given run interval.
func NewSessionSweeper(sessionRepo *repository.SessionRepository, interval time.Duration, log zerolog.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessionRepo: sessionRepo,
		interval:    interval,
		log:         log.With().Str("component", "session_sweeper").Logger(),
	}
}

// Start runs the sweep loop until ctx is cancelled. Call in a goroutine.
func (w *SessionSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info().Dur("interval", w.interval).Msg("Session sweeper started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Session sweeper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *SessionSweeper) sweep(ctx context.Context) {
	deleted, err := w.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to delete expired sessions")
		return
	}

	flipped, err := w.sessionRepo.MarkAbandonedOffline(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to mark abandoned users offline")
		return
	}

	if deleted > 0 || flipped > 0 {
		w.log.Info().
			Int64("sessions_deleted", deleted).
			Int64("users_marked_offline", flipped).
			Msg("Session sweep completed")
	}
}
