package integration

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"quizpulse/internal/domain"
)

// fakeBackend is an in-process stand-in for the platform's HTTP backend,
// implementing the endpoints the clients speak: join, status, question,
// answer, results, and the admin mutate/status/results routes.
type fakeBackend struct {
	mu        sync.Mutex
	sessionID string
	gameID    string
	questions []domain.Question
	position  int
	active    bool
	startedAt []time.Time
	players   map[string]*fakePlayer
	joined    []string // insertion order for stable rosters
}

type fakePlayer struct {
	name    string
	answers map[int]*fakeAnswer // question index -> last submission
}

type fakeAnswer struct {
	selected   []int
	answeredAt time.Time
}

func newFakeBackend(sessionID, gameID string, questions []domain.Question) *fakeBackend {
	return &fakeBackend{
		sessionID: sessionID,
		gameID:    gameID,
		questions: questions,
		position:  -1,
		active:    true,
		startedAt: make([]time.Time, len(questions)),
		players:   make(map[string]*fakePlayer),
	}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /play/join/{sessionId}", b.handleJoin)
	mux.HandleFunc("GET /play/{playerId}/status", b.handleStatus)
	mux.HandleFunc("GET /play/{playerId}/question", b.handleQuestion)
	mux.HandleFunc("PUT /play/{playerId}/answer", b.handleSubmit)
	mux.HandleFunc("GET /play/{playerId}/answer", b.handleCorrectAnswers)
	mux.HandleFunc("GET /play/{playerId}/results", b.handlePlayerResults)
	mux.HandleFunc("POST /admin/game/{gameId}/mutate", b.handleMutate)
	mux.HandleFunc("GET /admin/session/{sessionId}/status", b.handleSessionStatus)
	mux.HandleFunc("GET /admin/session/{sessionId}/results", b.handleSessionResults)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (b *fakeBackend) handleJoin(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("sessionId") != b.sessionID {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.position >= 0 {
		writeError(w, http.StatusBadRequest, "session already started")
		return
	}
	playerID := uuid.NewString()
	b.players[playerID] = &fakePlayer{name: req.Name, answers: make(map[int]*fakeAnswer)}
	b.joined = append(b.joined, playerID)
	writeJSON(w, http.StatusOK, map[string]string{"playerId": playerID})
}

func (b *fakeBackend) handleStatus(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.players[r.PathValue("playerId")]; !ok {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"started": b.position >= 0})
}

func (b *fakeBackend) handleQuestion(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.players[r.PathValue("playerId")]; !ok {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	if !b.active || b.position < 0 || b.position >= len(b.questions) {
		writeError(w, http.StatusNotFound, "session has ended")
		return
	}
	q := b.questions[b.position]
	q.CorrectAnswers = nil // players never see the answer key mid-question
	writeJSON(w, http.StatusOK, map[string]domain.Question{"question": q})
}

func (b *fakeBackend) handleSubmit(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	player, ok := b.players[r.PathValue("playerId")]
	if !ok {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	if !b.active || b.position < 0 || b.position >= len(b.questions) {
		writeError(w, http.StatusBadRequest, "no active question")
		return
	}
	var req struct {
		Answers []int `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	// Last write wins until the question's deadline.
	player.answers[b.position] = &fakeAnswer{
		selected:   append([]int(nil), req.Answers...),
		answeredAt: time.Now(),
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (b *fakeBackend) handleCorrectAnswers(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.position < 0 || b.position >= len(b.questions) {
		writeError(w, http.StatusNotFound, "no active question")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]int{"answers": b.questions[b.position].CorrectAnswers})
}

func (b *fakeBackend) recordsFor(player *fakePlayer) []map[string]any {
	records := make([]map[string]any, 0, len(b.questions))
	for i, q := range b.questions {
		rec := map[string]any{"correct": false, "questionStartedAt": "", "answeredAt": ""}
		if !b.startedAt[i].IsZero() {
			rec["questionStartedAt"] = b.startedAt[i].Format(time.RFC3339Nano)
		}
		if ans, ok := player.answers[i]; ok {
			rec["answeredAt"] = ans.answeredAt.Format(time.RFC3339Nano)
			rec["correct"] = sameSet(ans.selected, q.CorrectAnswers)
		}
		records = append(records, rec)
	}
	return records
}

func (b *fakeBackend) handlePlayerResults(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	player, ok := b.players[r.PathValue("playerId")]
	if !ok {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	if b.active {
		writeError(w, http.StatusBadRequest, "session still running")
		return
	}
	writeJSON(w, http.StatusOK, b.recordsFor(player))
}

func (b *fakeBackend) handleMutate(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("gameId") != b.gameID {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	var req struct {
		MutationType domain.Mutation `json:"mutationType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		writeError(w, http.StatusBadRequest, "no active session")
		return
	}
	switch req.MutationType {
	case domain.MutationStart, domain.MutationAdvance:
		b.position++
		if b.position >= len(b.questions) {
			b.active = false
		} else {
			b.startedAt[b.position] = time.Now()
		}
	case domain.MutationEnd:
		b.active = false
	default:
		writeError(w, http.StatusBadRequest, "unknown mutation")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (b *fakeBackend) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("sessionId") != b.sessionID {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"results": map[string]any{
			"position":  b.position,
			"active":    b.active,
			"questions": b.questions,
		},
	})
}

func (b *fakeBackend) handleSessionResults(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("sessionId") != b.sessionID {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active {
		writeError(w, http.StatusBadRequest, "session still running")
		return
	}
	roster := make([]map[string]any, 0, len(b.joined))
	for _, id := range b.joined {
		player := b.players[id]
		roster = append(roster, map[string]any{
			"name":    player.name,
			"answers": b.recordsFor(player),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": roster})
}

// lastSubmission returns the latest selection the backend accepted for
// the given player on the current question.
func (b *fakeBackend) lastSubmission(playerID string) ([]int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	player, ok := b.players[playerID]
	if !ok || b.position < 0 {
		return nil, false
	}
	ans, ok := player.answers[b.position]
	if !ok {
		return nil, false
	}
	return append([]int(nil), ans.selected...), true
}

func sameSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]int(nil), a...)
	bs := append([]int(nil), b...)
	sort.Ints(as)
	sort.Ints(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
