package admin

import (
	"strings"
	"testing"

	"quizpulse/internal/domain"
)

func answer(correct bool, startedAt, answeredAt string) domain.AnswerRecord {
	return domain.AnswerRecord{Correct: correct, QuestionStartedAt: startedAt, AnsweredAt: answeredAt}
}

func twoQuestionFixture() ([]domain.PlayerResult, []domain.Question) {
	questions := []domain.Question{
		{ID: 1, Points: 10, Duration: 30},
		{ID: 2, Points: 20, Duration: 30},
	}
	results := []domain.PlayerResult{
		{Name: "A", Answers: []domain.AnswerRecord{
			answer(true, "2025-04-01T10:00:00Z", "2025-04-01T10:00:05Z"),
			answer(false, "2025-04-01T10:01:00Z", "2025-04-01T10:01:10Z"),
		}},
		{Name: "B", Answers: []domain.AnswerRecord{
			answer(true, "2025-04-01T10:00:00Z", "2025-04-01T10:00:10Z"),
			answer(true, "2025-04-01T10:01:00Z", "2025-04-01T10:01:02Z"),
		}},
	}
	return results, questions
}

func TestLeaderboardUsesRawPoints(t *testing.T) {
	results, questions := twoQuestionFixture()

	board := Leaderboard(results, questions)
	if len(board) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(board))
	}
	// B answered both correctly: 10+20 raw points, regardless of timing.
	if board[0].Name != "B" || board[0].Score != 30 || board[0].Rank != 1 {
		t.Fatalf("expected B first with 30, got %+v", board[0])
	}
	if board[1].Name != "A" || board[1].Score != 10 || board[1].Rank != 2 {
		t.Fatalf("expected A second with 10, got %+v", board[1])
	}
}

func TestLeaderboardBadges(t *testing.T) {
	results, questions := twoQuestionFixture()
	board := Leaderboard(results, questions)

	if board[0].Badge != "💯" {
		t.Fatalf("all-correct player should get 💯, got %q", board[0].Badge)
	}
	// A got 1 of 2 correct.
	if board[1].Badge != "😴" {
		t.Fatalf("one-correct player should get 😴, got %q", board[1].Badge)
	}
}

func TestLeaderboardCapsAtFiveWithStableTies(t *testing.T) {
	questions := []domain.Question{{ID: 1, Points: 10}}
	var results []domain.PlayerResult
	for _, name := range []string{"p1", "p2", "p3", "p4", "p5", "p6"} {
		results = append(results, domain.PlayerResult{Name: name, Answers: []domain.AnswerRecord{
			answer(true, "2025-04-01T10:00:00Z", "2025-04-01T10:00:01Z"),
		}})
	}

	board := Leaderboard(results, questions)
	if len(board) != 5 {
		t.Fatalf("expected top-5 cap, got %d", len(board))
	}
	for i, e := range board {
		if e.Rank != i+1 || e.Name != results[i].Name {
			t.Fatalf("tie order not stable at rank %d: %+v", i+1, e)
		}
	}
}

func TestCorrectRates(t *testing.T) {
	results, _ := twoQuestionFixture()
	rates := CorrectRates(results)
	if len(rates) != 2 {
		t.Fatalf("expected 2 rates, got %d", len(rates))
	}
	if rates[0].Question != "Q1" || rates[0].Rate != 100.0 {
		t.Fatalf("expected Q1 at 100%%, got %+v", rates[0])
	}
	if rates[1].Rate != 50.0 {
		t.Fatalf("expected Q2 at 50%%, got %+v", rates[1])
	}
}

func TestAverageResponseTimesSkipMissing(t *testing.T) {
	results := []domain.PlayerResult{
		{Name: "A", Answers: []domain.AnswerRecord{
			answer(true, "2025-04-01T10:00:00Z", "2025-04-01T10:00:04Z"),
		}},
		{Name: "B", Answers: []domain.AnswerRecord{
			answer(false, "", ""), // never answered, no usable timing
		}},
	}

	times := AverageResponseTimes(results)
	if times[0].Answered != 1 || times[0].Seconds != 4.0 {
		t.Fatalf("expected avg 4s over 1 answer, got %+v", times[0])
	}
}

func TestAccuracyRankingSortsDescending(t *testing.T) {
	results, _ := twoQuestionFixture()
	ranking := AccuracyRanking(results)
	if ranking[0].Name != "B" || ranking[0].Accuracy != 100.0 {
		t.Fatalf("expected B at 100, got %+v", ranking[0])
	}
	if ranking[1].Name != "A" || ranking[1].Accuracy != 50.0 {
		t.Fatalf("expected A at 50, got %+v", ranking[1])
	}
}

func TestFastestResponders(t *testing.T) {
	results, _ := twoQuestionFixture()
	fastest := FastestResponders(results)
	// Q1: A took 5s, B took 10s. Q2: A took 10s, B took 2s.
	if fastest[0].Name != "A" || fastest[0].Seconds != 5.0 {
		t.Fatalf("expected A fastest on Q1, got %+v", fastest[0])
	}
	if fastest[1].Name != "B" || fastest[1].Seconds != 2.0 {
		t.Fatalf("expected B fastest on Q2, got %+v", fastest[1])
	}
}

func TestFastestRespondersWithNoUsableTimes(t *testing.T) {
	results := []domain.PlayerResult{
		{Name: "A", Answers: []domain.AnswerRecord{answer(false, "bad", "worse")}},
	}
	fastest := FastestResponders(results)
	if fastest[0].Name != "" {
		t.Fatalf("expected no fastest responder, got %+v", fastest[0])
	}
}

func TestLeaderboardCSVHeader(t *testing.T) {
	results, questions := twoQuestionFixture()
	csvText := LeaderboardCSV(Leaderboard(results, questions))

	lines := strings.Split(strings.TrimRight(csvText, "\n"), "\n")
	if lines[0] != "Rank,Name,Score,Badge" {
		t.Fatalf("first line must be the fixed header, got %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[1] != "1,B,30,💯" {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
}
