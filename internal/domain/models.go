package domain

// QuestionType distinguishes the selection rules of a question.
type QuestionType string

const (
	// Single allows at most one selected option.
	Single QuestionType = "single"
	// Multiple allows any subset of options.
	Multiple QuestionType = "multiple"
	// Judgement is a true/false question; selection rules match Single.
	Judgement QuestionType = "judgement"
)

// MediaMode tells the client how to interpret a question's media payload.
type MediaMode string

const (
	MediaURL   MediaMode = "url"
	MediaImage MediaMode = "image"
)

// Question is one timed question inside a game. IDs are unique within a
// game and assigned monotonically.
type Question struct {
	ID             int          `json:"id"`
	Question       string       `json:"question"`
	Type           QuestionType `json:"type"`
	Duration       int          `json:"duration"` // seconds
	Points         float64      `json:"points"`
	OptionAnswers  []string     `json:"optionAnswers"`
	CorrectAnswers []int        `json:"correctAnswers"`
	Media          string       `json:"media"`
	MediaMode      MediaMode    `json:"mediaMode"`
	ImageData      string       `json:"imageData"`
}

// Game is a quiz definition owned by a single admin account. Active holds
// the running session ID, or nil while no session is live.
type Game struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Owner       string     `json:"owner"`
	Thumbnail   string     `json:"thumbnail"`
	Questions   []Question `json:"questions"`
	Active      *string    `json:"active"`
	OldSessions []string   `json:"oldSessions"`
}

// Session is one timed run-through of a game's questions. Position is the
// index of the current question, or -1 while the lobby is open.
type Session struct {
	SessionID string     `json:"sessionId"`
	Position  int        `json:"position"`
	Active    bool       `json:"active"`
	Questions []Question `json:"questions"`
}

// Player exists only for the lifetime of the session it joined.
type Player struct {
	PlayerID  string `json:"playerId"`
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
}

// AnswerRecord is the per-question outcome the backend's result feeds
// return. Timestamps stay raw strings: unparsable values are legal and
// rendered as "N/A" rather than failing the whole feed.
type AnswerRecord struct {
	Correct           bool   `json:"correct"`
	QuestionStartedAt string `json:"questionStartedAt"`
	AnsweredAt        string `json:"answeredAt"`
}

// PlayerResult is one roster entry of the admin results feed, answers
// ordered by question.
type PlayerResult struct {
	Name    string         `json:"name"`
	Answers []AnswerRecord `json:"answers"`
}

// QuestionMeta is what the scoring engine needs per question. The result
// feeds do not carry points or duration, so clients persist this during
// play, keyed by question ID.
type QuestionMeta struct {
	Points   float64 `json:"points"`
	Duration float64 `json:"duration"`
}

// Mutation is an admin-issued command changing session state.
type Mutation string

const (
	MutationStart   Mutation = "START"
	MutationAdvance Mutation = "ADVANCE"
	MutationEnd     Mutation = "END"
)
