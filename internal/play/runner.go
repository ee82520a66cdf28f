package play

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"quizpulse/internal/api"
	"quizpulse/internal/domain"
	"quizpulse/internal/sched"
	"quizpulse/internal/score"
)

// State is the player's position in the live-play state machine.
type State int

const (
	StateAwaitingQuestion State = iota
	StateAnswering
	StateLocked
	StateResults
)

func (s State) String() string {
	switch s {
	case StateAwaitingQuestion:
		return "awaiting-question"
	case StateAnswering:
		return "answering"
	case StateLocked:
		return "locked"
	case StateResults:
		return "results"
	}
	return "unknown"
}

// Events are optional hooks fired as play progresses. They run on the
// runner's poll and tick goroutines and must not block.
type Events struct {
	OnQuestion  func(q domain.Question)
	OnCountdown func(remaining int)
	OnReveal    func(correct []int)
	OnEnded     func()
}

// Runner drives one player through a session. Two independent timers feed
// it: the question poll and the local countdown. They may drift out of
// phase freely; the question-identity check in handleQuestionPoll is the
// sole guard against setting up the same question twice.
type Runner struct {
	api          Backend
	meta         score.MetaStore
	playerID     string
	pollInterval time.Duration
	tickInterval time.Duration
	events       Events

	mu            sync.Mutex
	state         State
	question      *domain.Question
	countdown     int
	selected      []int
	correct       []int
	revealed      bool
	answerFetched bool
	ended         bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithIntervals overrides the 1s poll and countdown cadence, mainly for tests.
func WithIntervals(poll, tick time.Duration) Option {
	return func(r *Runner) {
		r.pollInterval = poll
		r.tickInterval = tick
	}
}

// WithEvents attaches progress hooks.
func WithEvents(ev Events) Option {
	return func(r *Runner) { r.events = ev }
}

func NewRunner(backend Backend, meta score.MetaStore, playerID string, opts ...Option) *Runner {
	r := &Runner{
		api:          backend,
		meta:         meta,
		playerID:     playerID,
		pollInterval: time.Second,
		tickInterval: time.Second,
		state:        StateAwaitingQuestion,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the question poll and the countdown and blocks until the
// backend signals the session is over or ctx is cancelled. A finished
// session returns nil.
func (r *Runner) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	poll := sched.Every(runCtx, r.pollInterval, r.handleQuestionPoll)
	tick := sched.Every(runCtx, r.tickInterval, r.handleCountdownTick)

	g := new(errgroup.Group)
	g.Go(func() error {
		// The poll loop is the only source of the end-of-session signal;
		// once it stops, the countdown is irrelevant.
		<-poll.Done()
		tick.Stop()
		return nil
	})
	g.Go(func() error {
		<-tick.Done()
		return nil
	})
	_ = g.Wait()

	if r.Ended() {
		return nil
	}
	return ctx.Err()
}

// handleQuestionPoll is one tick of the 1s question poll. A non-OK
// response is the session-ended signal and stops the loop; transport
// errors are skipped and retried on the next tick.
func (r *Runner) handleQuestionPoll(ctx context.Context) bool {
	q, err := r.api.CurrentQuestion(ctx, r.playerID)
	if err != nil {
		var se *api.StatusError
		if errors.As(err, &se) {
			r.finish()
			return false
		}
		log.Printf("question poll failed, retrying: %v", err)
		return true
	}

	r.mu.Lock()
	if r.ended {
		r.mu.Unlock()
		return false
	}
	if r.question != nil && r.question.ID == q.ID {
		r.mu.Unlock()
		return true
	}

	// New question: reset everything tied to the previous one.
	r.question = &q
	r.state = StateAnswering
	r.countdown = q.Duration
	r.selected = nil
	r.correct = nil
	r.revealed = false
	r.answerFetched = false
	r.mu.Unlock()

	if err := r.meta.Set(q.ID, domain.QuestionMeta{Points: q.Points, Duration: float64(q.Duration)}); err != nil {
		log.Printf("caching question meta failed: %v", err)
	}
	if r.events.OnQuestion != nil {
		r.events.OnQuestion(q)
	}
	return true
}

// handleCountdownTick is one tick of the local 1s countdown. Reaching
// zero locks input and triggers the one-time correct-answer fetch; it is
// authoritative on its own and never waits for a poll round trip.
func (r *Runner) handleCountdownTick(ctx context.Context) bool {
	r.mu.Lock()
	if r.ended {
		r.mu.Unlock()
		return false
	}
	if r.question == nil {
		r.mu.Unlock()
		return true
	}

	ticked := false
	if r.countdown > 0 {
		r.countdown--
		ticked = true
	}
	remaining := r.countdown

	fetch := remaining == 0 && !r.answerFetched
	if fetch {
		r.answerFetched = true
		r.state = StateLocked
	}
	r.mu.Unlock()

	if ticked && r.events.OnCountdown != nil {
		r.events.OnCountdown(remaining)
	}
	if fetch {
		r.fetchCorrectAnswers(ctx)
	}
	return true
}

// fetchCorrectAnswers runs at most once per question, guarded by
// answerFetched; failures are logged and the reveal is simply skipped.
func (r *Runner) fetchCorrectAnswers(ctx context.Context) {
	answers, err := r.api.CorrectAnswers(ctx, r.playerID)
	if err != nil {
		log.Printf("fetching correct answers failed: %v", err)
		return
	}

	r.mu.Lock()
	r.correct = answers
	r.revealed = true
	r.mu.Unlock()

	if r.events.OnReveal != nil {
		r.events.OnReveal(answers)
	}
}

// Select applies a click on an option and submits the resulting full
// selection fire-and-forget. Clicks after the countdown hit zero or the
// reveal are ignored. The returned slice is the selection now on screen,
// which a failed submission does not roll back.
func (r *Runner) Select(ctx context.Context, index int) []int {
	r.mu.Lock()
	if r.question == nil || r.countdown == 0 || r.revealed {
		sel := append([]int(nil), r.selected...)
		r.mu.Unlock()
		return sel
	}
	r.selected = domain.ApplySelection(r.question.Type, r.selected, index)
	sel := append([]int(nil), r.selected...)
	r.mu.Unlock()

	if err := r.api.SubmitAnswer(ctx, r.playerID, sel); err != nil {
		log.Printf("answer submission dropped for player %s: %v", r.playerID, err)
	}
	return sel
}

func (r *Runner) finish() {
	r.mu.Lock()
	already := r.ended
	r.ended = true
	r.state = StateResults
	r.mu.Unlock()

	if !already && r.events.OnEnded != nil {
		r.events.OnEnded()
	}
}

// State reports the current phase of play.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Question returns the question currently on screen, if any.
func (r *Runner) Question() (domain.Question, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.question == nil {
		return domain.Question{}, false
	}
	return *r.question, true
}

// Countdown reports the remaining seconds of the current question.
func (r *Runner) Countdown() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countdown
}

// Selection returns a copy of the current selection set.
func (r *Runner) Selection() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.selected...)
}

// CorrectSet returns the revealed correct answers, valid once the
// countdown has finished and the fetch succeeded.
func (r *Runner) CorrectSet() ([]int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.correct...), r.revealed
}

// Ended reports whether the session-ended signal has been observed.
func (r *Runner) Ended() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ended
}
