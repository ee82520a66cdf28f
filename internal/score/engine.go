// Package score turns raw answer records into the player-facing score.
// The backend's result feed carries only correctness and timestamps, so
// points and duration come from a MetaStore populated during play.
package score

import (
	"math"

	"quizpulse/internal/domain"
)

// MetaStore is the client-side cache of per-question points and duration.
// Implementations live in internal/infra.
type MetaStore interface {
	Set(questionID int, meta domain.QuestionMeta) error
	// Get returns the cached meta and whether it was present. A missing
	// entry scores as zero points over zero seconds.
	Get(questionID int) (domain.QuestionMeta, bool, error)
}

// Row is the scored view of one answer record.
type Row struct {
	Question  int // 1-based ordinal
	Correct   bool
	TimeTaken float64 // seconds, valid only when HasTime
	HasTime   bool
	Earned    float64
}

// Summary is a player's full scorecard.
type Summary struct {
	Rows  []Row
	Total float64
}

// Engine applies the speed-decayed scoring rule: a correct answer earns
// points scaled by the remaining time expressed in minutes,
// round1(points * max(0, duration-timeTaken) / 60). The minute
// normalization means a sub-60s question never pays full points.
type Engine struct {
	meta MetaStore
}

func NewEngine(meta MetaStore) *Engine {
	return &Engine{meta: meta}
}

// Summarize scores the records of one player. Record i is matched with
// the cached meta for question ID i+1, question IDs being 1-based
// ordinals within the game.
func (e *Engine) Summarize(records []domain.AnswerRecord) Summary {
	summary := Summary{Rows: make([]Row, 0, len(records))}
	for i, rec := range records {
		row := Row{Question: i + 1, Correct: rec.Correct}

		meta, _, err := e.meta.Get(i + 1)
		if err != nil {
			meta = domain.QuestionMeta{}
		}
		row.TimeTaken, row.HasTime = rec.ResponseTime()

		if rec.Correct && row.HasTime {
			remaining := math.Max(0, meta.Duration-row.TimeTaken)
			row.Earned = round1(meta.Points * (remaining / 60))
		}

		summary.Rows = append(summary.Rows, row)
		summary.Total += row.Earned
	}
	return summary
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
