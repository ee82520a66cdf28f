package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"quizpulse/internal/domain"
)

// StatusError is a non-2xx response from the backend, carrying the
// {"error": "..."} body when one was sent. Player-side question polling
// treats any StatusError as the session-ended signal; the backend does
// not distinguish "ended" from a genuine failure on that endpoint.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Code)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Message)
}

// Client talks to the quiz platform's HTTP JSON backend.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Join registers a player in a session and returns the assigned player ID.
// Empty inputs are rejected before any network call.
func (c *Client) Join(ctx context.Context, sessionID, name string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", domain.ErrSessionIDRequired
	}
	if strings.TrimSpace(name) == "" {
		return "", domain.ErrNameRequired
	}
	var out struct {
		PlayerID string `json:"playerId"`
	}
	err := c.do(ctx, http.MethodPost, "/play/join/"+sessionID, map[string]string{"name": name}, &out)
	if err != nil {
		return "", err
	}
	return out.PlayerID, nil
}

// Started reports whether the player's session has begun.
func (c *Client) Started(ctx context.Context, playerID string) (bool, error) {
	var out struct {
		Started bool `json:"started"`
	}
	if err := c.do(ctx, http.MethodGet, "/play/"+playerID+"/status", nil, &out); err != nil {
		return false, err
	}
	return out.Started, nil
}

// CurrentQuestion fetches the question at the session's current position.
// A *StatusError here is how the backend signals the session is over.
func (c *Client) CurrentQuestion(ctx context.Context, playerID string) (domain.Question, error) {
	var out struct {
		Question domain.Question `json:"question"`
	}
	if err := c.do(ctx, http.MethodGet, "/play/"+playerID+"/question", nil, &out); err != nil {
		return domain.Question{}, err
	}
	return out.Question, nil
}

// SubmitAnswer replaces the player's full selection for the current
// question. Last successful write before the deadline wins.
func (c *Client) SubmitAnswer(ctx context.Context, playerID string, answers []int) error {
	if answers == nil {
		answers = []int{}
	}
	return c.do(ctx, http.MethodPut, "/play/"+playerID+"/answer", map[string][]int{"answers": answers}, nil)
}

// SubmitAnswerBestEffort sends the selection and drops any failure after
// logging it. Submissions are deliberately not queued or retried: the
// last selection that actually reached the backend is authoritative.
func (c *Client) SubmitAnswerBestEffort(ctx context.Context, playerID string, answers []int) {
	if err := c.SubmitAnswer(ctx, playerID, answers); err != nil {
		log.Printf("answer submission dropped for player %s: %v", playerID, err)
	}
}

// CorrectAnswers fetches the correct option indices for the current question.
func (c *Client) CorrectAnswers(ctx context.Context, playerID string) ([]int, error) {
	var out struct {
		Answers []int `json:"answers"`
	}
	if err := c.do(ctx, http.MethodGet, "/play/"+playerID+"/answer", nil, &out); err != nil {
		return nil, err
	}
	return out.Answers, nil
}

// PlayerResults fetches the player's answer records, ordered by question.
func (c *Client) PlayerResults(ctx context.Context, playerID string) ([]domain.AnswerRecord, error) {
	var out []domain.AnswerRecord
	if err := c.do(ctx, http.MethodGet, "/play/"+playerID+"/results", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MutateSession issues an admin session command against a game and
// returns the backend's status string.
func (c *Client) MutateSession(ctx context.Context, gameID string, m domain.Mutation) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	err := c.do(ctx, http.MethodPost, "/admin/game/"+gameID+"/mutate", map[string]domain.Mutation{"mutationType": m}, &out)
	if err != nil {
		return "", err
	}
	return out.Status, nil
}

// SessionStatus fetches the admin view of a session.
func (c *Client) SessionStatus(ctx context.Context, sessionID string) (domain.Session, error) {
	var out struct {
		Results domain.Session `json:"results"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/session/"+sessionID+"/status", nil, &out); err != nil {
		return domain.Session{}, err
	}
	out.Results.SessionID = sessionID
	return out.Results, nil
}

// SessionResults fetches the full roster of player answer records for an
// ended session.
func (c *Client) SessionResults(ctx context.Context, sessionID string) ([]domain.PlayerResult, error) {
	var out struct {
		Results []domain.PlayerResult `json:"results"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/session/"+sessionID+"/results", nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Games lists the admin's game library.
func (c *Client) Games(ctx context.Context) ([]domain.Game, error) {
	var out struct {
		Games []domain.Game `json:"games"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/games", nil, &out); err != nil {
		return nil, err
	}
	return out.Games, nil
}

// PutGames replaces the entire game library. The backend exposes no
// per-game mutation, only this replace-all write.
func (c *Client) PutGames(ctx context.Context, games []domain.Game) error {
	if games == nil {
		games = []domain.Game{}
	}
	return c.do(ctx, http.MethodPut, "/admin/games", map[string][]domain.Game{"games": games}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&payload)
		return &StatusError{Code: res.StatusCode, Message: payload.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}
