// Package sched provides the cancellable repeating tasks behind every
// poll loop and countdown in the client. A Task pairs a timer with a
// cancellation handle so teardown is a single Stop call regardless of
// which side (caller or callback) decides the loop is over.
package sched

import (
	"context"
	"time"
)

// Task is a repeating job that can be stopped from outside or by its own
// callback returning false.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Repeat runs fn immediately and then once per interval until fn returns
// false, Stop is called, or ctx is cancelled.
func Repeat(ctx context.Context, interval time.Duration, fn func(context.Context) bool) *Task {
	return start(ctx, interval, fn, true)
}

// Every is Repeat without the immediate first run: fn first fires one
// full interval after the task starts.
func Every(ctx context.Context, interval time.Duration, fn func(context.Context) bool) *Task {
	return start(ctx, interval, fn, false)
}

func start(ctx context.Context, interval time.Duration, fn func(context.Context) bool, immediate bool) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		defer cancel()

		if immediate && !fn(ctx) {
			return
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !fn(ctx) {
					return
				}
			}
		}
	}()
	return t
}

// Stop cancels the task. It is safe to call more than once and after the
// task has already finished.
func (t *Task) Stop() {
	t.cancel()
}

// Done is closed once the task's goroutine has exited.
func (t *Task) Done() <-chan struct{} {
	return t.done
}
