package admin

import (
	"encoding/csv"
	"math"
	"sort"
	"strconv"
	"strings"

	"quizpulse/internal/domain"
)

// LeaderboardEntry is one ranked row of the admin leaderboard.
type LeaderboardEntry struct {
	Rank  int
	Name  string
	Score float64
	Badge string
}

// QuestionRate is the share of players who answered a question correctly.
type QuestionRate struct {
	Question string // "Q1", "Q2", ...
	Rate     float64
}

// QuestionTime is the average response time for a question, over the
// players who answered it.
type QuestionTime struct {
	Question string
	Seconds  float64
	Answered int
}

// AccuracyEntry ranks a player by their share of correct answers.
type AccuracyEntry struct {
	Name     string
	Accuracy float64
}

// FastestEntry names the quickest responder on a question. Name is empty
// when nobody produced a usable response time.
type FastestEntry struct {
	Question string
	Name     string
	Seconds  float64
}

// Leaderboard ranks players by the raw points of their correctly answered
// questions, descending, ties kept in roster order, top 5. Points come
// from the session's question snapshot, not from the speed-decayed
// player-side score; the two views intentionally disagree.
func Leaderboard(results []domain.PlayerResult, questions []domain.Question) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(results))
	for _, player := range results {
		var score float64
		correct := 0
		for i, ans := range player.Answers {
			if !ans.Correct {
				continue
			}
			correct++
			if i < len(questions) {
				score += questions[i].Points
			}
		}
		entries = append(entries, LeaderboardEntry{
			Name:  player.Name,
			Score: score,
			Badge: badge(correct, len(player.Answers)),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > 5 {
		entries = entries[:5]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func badge(correct, total int) string {
	switch {
	case total > 0 && correct == total:
		return "💯"
	case float64(correct) >= float64(total)*0.8:
		return "🎯"
	case correct <= 1:
		return "😴"
	default:
		return ""
	}
}

// CorrectRates computes, per question, 100 * correct / roster size,
// rounded to one decimal.
func CorrectRates(results []domain.PlayerResult) []QuestionRate {
	n := questionCount(results)
	total := len(results)
	rates := make([]QuestionRate, 0, n)
	for i := 0; i < n; i++ {
		correct := 0
		for _, player := range results {
			if i < len(player.Answers) && player.Answers[i].Correct {
				correct++
			}
		}
		rate := 0.0
		if total > 0 {
			rate = round1(100 * float64(correct) / float64(total))
		}
		rates = append(rates, QuestionRate{Question: label(i), Rate: rate})
	}
	return rates
}

// AverageResponseTimes averages the response time per question over the
// players with a usable answer record; missing answers are skipped, not
// counted as zero.
func AverageResponseTimes(results []domain.PlayerResult) []QuestionTime {
	n := questionCount(results)
	times := make([]QuestionTime, 0, n)
	for i := 0; i < n; i++ {
		var sum float64
		answered := 0
		for _, player := range results {
			if i >= len(player.Answers) {
				continue
			}
			secs, ok := player.Answers[i].ResponseTime()
			if !ok {
				continue
			}
			sum += secs
			answered++
		}
		entry := QuestionTime{Question: label(i), Answered: answered}
		if answered > 0 {
			entry.Seconds = round2(sum / float64(answered))
		}
		times = append(times, entry)
	}
	return times
}

// AccuracyRanking sorts players by 100 * correct / answered, descending,
// ties kept in roster order.
func AccuracyRanking(results []domain.PlayerResult) []AccuracyEntry {
	entries := make([]AccuracyEntry, 0, len(results))
	for _, player := range results {
		correct := 0
		for _, ans := range player.Answers {
			if ans.Correct {
				correct++
			}
		}
		accuracy := 0.0
		if len(player.Answers) > 0 {
			accuracy = round1(100 * float64(correct) / float64(len(player.Answers)))
		}
		entries = append(entries, AccuracyEntry{Name: player.Name, Accuracy: accuracy})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Accuracy > entries[j].Accuracy
	})
	return entries
}

// FastestResponders finds, per question, the player with the smallest
// response time among usable records.
func FastestResponders(results []domain.PlayerResult) []FastestEntry {
	n := questionCount(results)
	fastest := make([]FastestEntry, 0, n)
	for i := 0; i < n; i++ {
		entry := FastestEntry{Question: label(i)}
		best := math.Inf(1)
		for _, player := range results {
			if i >= len(player.Answers) {
				continue
			}
			secs, ok := player.Answers[i].ResponseTime()
			if !ok {
				continue
			}
			if secs < best {
				best = secs
				entry.Name = player.Name
			}
		}
		if entry.Name != "" {
			entry.Seconds = round2(best)
		}
		fastest = append(fastest, entry)
	}
	return fastest
}

// LeaderboardCSV renders the ranked leaderboard with the fixed header
// Rank,Name,Score,Badge. Scores print the way a plain number would, no
// forced decimals.
func LeaderboardCSV(entries []LeaderboardEntry) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"Rank", "Name", "Score", "Badge"})
	for _, e := range entries {
		_ = w.Write([]string{
			strconv.Itoa(e.Rank),
			e.Name,
			strconv.FormatFloat(e.Score, 'f', -1, 64),
			e.Badge,
		})
	}
	w.Flush()
	return sb.String()
}

func questionCount(results []domain.PlayerResult) int {
	if len(results) == 0 {
		return 0
	}
	return len(results[0].Answers)
}

func label(i int) string {
	return "Q" + strconv.Itoa(i+1)
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }
