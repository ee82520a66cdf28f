// Package play implements the player side of a live session: the
// start-status poller and the question/answer state machine. All
// synchronization with the backend happens through short-interval
// polling; there is no push channel.
package play

import (
	"context"
	"time"

	"quizpulse/internal/domain"
	"quizpulse/internal/sched"
)

// Backend is the slice of the HTTP client the player side needs.
type Backend interface {
	Started(ctx context.Context, playerID string) (bool, error)
	CurrentQuestion(ctx context.Context, playerID string) (domain.Question, error)
	SubmitAnswer(ctx context.Context, playerID string, answers []int) error
	CorrectAnswers(ctx context.Context, playerID string) ([]int, error)
}

// StartPoller asks the backend once per interval whether the session has
// started. Failures are retried on the next tick with no backoff and no
// retry cap: sessions are short and human-supervised, so the simple loop
// is the intended behavior.
type StartPoller struct {
	api      Backend
	playerID string
	interval time.Duration
}

func NewStartPoller(api Backend, playerID string, interval time.Duration) *StartPoller {
	if interval <= 0 {
		interval = time.Second
	}
	return &StartPoller{api: api, playerID: playerID, interval: interval}
}

// Wait blocks until the backend reports started=true, then returns nil.
// The poller never resumes after that first positive answer. The only
// error it can return is ctx's, on cancellation.
func (p *StartPoller) Wait(ctx context.Context) error {
	started := make(chan struct{})
	task := sched.Repeat(ctx, p.interval, func(ctx context.Context) bool {
		ok, err := p.api.Started(ctx, p.playerID)
		if err != nil {
			return true // retry on the next tick
		}
		if ok {
			close(started)
			return false
		}
		return true
	})
	defer task.Stop()

	select {
	case <-started:
		return nil
	case <-task.Done():
		select {
		case <-started:
			return nil
		default:
			return ctx.Err()
		}
	}
}
