package domain

import (
	"fmt"
	"strings"
	"time"
)

// ApplySelection returns the selection set after a click on option index.
// Single and judgement questions hold at most one option: clicking the
// selected option clears it, clicking another replaces it. Multiple-choice
// questions toggle membership. The input slice is never mutated.
func ApplySelection(t QuestionType, current []int, index int) []int {
	switch t {
	case Single, Judgement:
		if len(current) == 1 && current[0] == index {
			return []int{}
		}
		return []int{index}
	case Multiple:
		next := make([]int, 0, len(current)+1)
		removed := false
		for _, i := range current {
			if i == index {
				removed = true
				continue
			}
			next = append(next, i)
		}
		if !removed {
			next = append(next, index)
		}
		return next
	}
	return current
}

// Validate checks the structural invariants of a question: 2..6 options,
// correct-answer indices in range, and exactly one correct answer for
// single and judgement questions.
func (q Question) Validate() error {
	if len(q.OptionAnswers) < 2 || len(q.OptionAnswers) > 6 {
		return fmt.Errorf("%w: question %d has %d options", ErrInvalidQuestion, q.ID, len(q.OptionAnswers))
	}
	if len(q.CorrectAnswers) == 0 {
		return fmt.Errorf("%w: question %d has no correct answers", ErrInvalidQuestion, q.ID)
	}
	for _, i := range q.CorrectAnswers {
		if i < 0 || i >= len(q.OptionAnswers) {
			return fmt.Errorf("%w: question %d answer index %d out of range", ErrInvalidQuestion, q.ID, i)
		}
	}
	if (q.Type == Single || q.Type == Judgement) && len(q.CorrectAnswers) != 1 {
		return fmt.Errorf("%w: question %d type %s needs exactly one correct answer", ErrInvalidQuestion, q.ID, q.Type)
	}
	return nil
}

// ResponseTime reports how long the player took to answer, in seconds.
// The second return is false when either timestamp is missing or
// unparsable; callers render those as "N/A".
func (a AnswerRecord) ResponseTime() (float64, bool) {
	start, ok := parseTimestamp(a.QuestionStartedAt)
	if !ok {
		return 0, false
	}
	end, ok := parseTimestamp(a.AnsweredAt)
	if !ok {
		return 0, false
	}
	return end.Sub(start).Seconds(), true
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EmbedMediaURL rewrites the YouTube URL shapes players paste into games
// (watch links, shorts, youtu.be) to their embeddable form. Anything else
// passes through untouched.
func EmbedMediaURL(raw string) string {
	if strings.Contains(raw, "youtube.com/shorts/") {
		return strings.Replace(raw, "shorts/", "embed/", 1)
	}
	if strings.Contains(raw, "youtu.be/") {
		id := strings.SplitN(raw, "youtu.be/", 2)[1]
		if i := strings.IndexByte(id, '?'); i >= 0 {
			id = id[:i]
		}
		return "https://www.youtube.com/embed/" + id
	}
	if strings.Contains(raw, "youtube.com/watch") {
		if i := strings.Index(raw, "v="); i >= 0 {
			id := raw[i+2:]
			if j := strings.IndexByte(id, '&'); j >= 0 {
				id = id[:j]
			}
			if id != "" {
				return "https://www.youtube.com/embed/" + id
			}
		}
	}
	return raw
}
