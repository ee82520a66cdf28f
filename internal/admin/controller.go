// Package admin holds the session control panel: the mutation controller
// and the post-game analytics over the full player roster.
package admin

import (
	"context"
	"sync"
	"time"

	"quizpulse/internal/domain"
	"quizpulse/internal/sched"
)

// Backend is the slice of the HTTP client the control panel needs.
type Backend interface {
	MutateSession(ctx context.Context, gameID string, m domain.Mutation) (string, error)
	SessionStatus(ctx context.Context, sessionID string) (domain.Session, error)
	SessionResults(ctx context.Context, sessionID string) ([]domain.PlayerResult, error)
}

// Controller drives one session through LOBBY -> Q0..Qn -> ENDED. Every
// mutation is a single authoritative write on the backend followed by a
// status re-read; the controller itself only caches the last view it saw.
type Controller struct {
	api       Backend
	gameID    string
	sessionID string

	mu        sync.Mutex
	last      *domain.Session
	endedSeen bool
}

func NewController(api Backend, gameID, sessionID string) *Controller {
	return &Controller{api: api, gameID: gameID, sessionID: sessionID}
}

// Refresh fetches the current session status and caches it.
func (c *Controller) Refresh(ctx context.Context) (domain.Session, error) {
	sess, err := c.api.SessionStatus(ctx, c.sessionID)
	if err != nil {
		return domain.Session{}, err
	}
	c.mu.Lock()
	c.last = &sess
	c.mu.Unlock()
	return sess, nil
}

// Advance moves the session forward one question, or out of the lobby if
// it is still at position -1. It is rejected locally, without a network
// call, when the session is known to have ended.
func (c *Controller) Advance(ctx context.Context) (domain.Session, error) {
	return c.mutate(ctx, domain.MutationAdvance)
}

// End terminates the session. Ending is irreversible: once active flips
// to false the session is read-only.
func (c *Controller) End(ctx context.Context) (domain.Session, error) {
	return c.mutate(ctx, domain.MutationEnd)
}

func (c *Controller) mutate(ctx context.Context, m domain.Mutation) (domain.Session, error) {
	if err := c.requireActive(ctx); err != nil {
		return domain.Session{}, err
	}
	if _, err := c.api.MutateSession(ctx, c.gameID, m); err != nil {
		return domain.Session{}, err
	}
	return c.Refresh(ctx)
}

func (c *Controller) requireActive(ctx context.Context) error {
	c.mu.Lock()
	last := c.last
	c.mu.Unlock()

	if last == nil {
		sess, err := c.Refresh(ctx)
		if err != nil {
			return err
		}
		last = &sess
	}
	if !last.Active {
		return domain.ErrNoActiveSession
	}
	return nil
}

// Results fetches the full roster of answer records for the session.
func (c *Controller) Results(ctx context.Context) ([]domain.PlayerResult, error) {
	return c.api.SessionResults(ctx, c.sessionID)
}

// Watch polls the session status and invokes onEnded exactly once when
// active transitions to false, then stops. Fetch failures are retried on
// the next tick.
func (c *Controller) Watch(ctx context.Context, interval time.Duration, onEnded func()) *sched.Task {
	if interval <= 0 {
		interval = time.Second
	}
	return sched.Repeat(ctx, interval, func(ctx context.Context) bool {
		sess, err := c.Refresh(ctx)
		if err != nil {
			return true
		}
		if sess.Active {
			return true
		}

		c.mu.Lock()
		first := !c.endedSeen
		c.endedSeen = true
		c.mu.Unlock()

		if first && onEnded != nil {
			onEnded()
		}
		return false
	})
}
