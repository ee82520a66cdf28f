package cli

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quizpulse/internal/config"
	"quizpulse/internal/domain"
	"quizpulse/internal/infra/memory"
	infraredis "quizpulse/internal/infra/redis"
	"quizpulse/internal/play"
	"quizpulse/internal/score"
)

// NewPlayCmd builds the player command: join a session, wait for the
// admin to start it, play it through, and print the final scorecard.
func NewPlayCmd(opts *rootOptions) *cobra.Command {
	var (
		sessionID string
		name      string
		strategy  string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Join a session and play it as a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), opts, sessionID, name, strategy)
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "session ID to join")
	cmd.Flags().StringVar(&name, "name", "", "player display name")
	cmd.Flags().StringVar(&strategy, "strategy", "none", "auto-answer strategy: none or random")
	return cmd
}

func runPlay(ctx context.Context, opts *rootOptions, sessionID, name, strategy string) error {
	client, cfg, err := buildClient(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	playerID, err := client.Join(ctx, sessionID, name)
	if err != nil {
		return err
	}
	log.Printf("joined session %s as %s (player %s)", sessionID, name, playerID)

	interval := config.Interval(cfg.Play.PollInterval, time.Second)
	metaStore := buildMetaStore(cfg, playerID)

	log.Printf("waiting for the admin to start the game...")
	poller := play.NewStartPoller(client, playerID, interval)
	if err := poller.Wait(ctx); err != nil {
		return err
	}
	log.Printf("game started")

	var runner *play.Runner
	events := play.Events{
		OnQuestion: func(q domain.Question) {
			printQuestion(q)
			if strategy == "random" {
				go autoAnswer(ctx, runner, q)
			}
		},
		OnCountdown: func(remaining int) {
			if remaining <= 3 && remaining > 0 {
				fmt.Printf("  %ds left!\n", remaining)
			}
		},
		OnReveal: func(correct []int) {
			fmt.Printf("  time's up, correct: %v\n", correct)
		},
		OnEnded: func() {
			fmt.Println("session over, fetching your results...")
		},
	}
	runner = play.NewRunner(client, metaStore, playerID,
		play.WithIntervals(interval, time.Second),
		play.WithEvents(events),
	)
	if err := runner.Run(ctx); err != nil {
		return err
	}

	records, err := client.PlayerResults(ctx, playerID)
	if err != nil {
		return err
	}
	printScorecard(score.NewEngine(metaStore).Summarize(records))
	return nil
}

// buildMetaStore mirrors the config-driven store wiring: Redis when an
// address is configured, in-memory otherwise.
func buildMetaStore(cfg config.Config, playerID string) score.MetaStore {
	if cfg.Redis.Addr == "" {
		return memory.NewMetaStore()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ttl := config.Interval(cfg.Redis.TTL, 10*time.Minute)
	return infraredis.NewMetaStore(client, playerID, ttl)
}

// autoAnswer picks options for the bot strategy after a short think time.
func autoAnswer(ctx context.Context, runner *play.Runner, q domain.Question) {
	delay := time.Duration(rand.Intn(1000)+200) * time.Millisecond
	select {
	case <-ctx.Done():
		return
	case <-time.After(delay):
	}

	if q.Type == domain.Multiple {
		picked := false
		for i := range q.OptionAnswers {
			if rand.Intn(2) == 1 {
				runner.Select(ctx, i)
				picked = true
			}
		}
		if !picked {
			runner.Select(ctx, rand.Intn(len(q.OptionAnswers)))
		}
		return
	}
	runner.Select(ctx, rand.Intn(len(q.OptionAnswers)))
}

func printQuestion(q domain.Question) {
	fmt.Printf("\nQ%d: %s  [%s, %v pts, %ds]\n", q.ID, q.Question, q.Type, q.Points, q.Duration)
	if q.MediaMode == domain.MediaURL && q.Media != "" {
		fmt.Printf("  media: %s\n", domain.EmbedMediaURL(q.Media))
	}
	for i, option := range q.OptionAnswers {
		fmt.Printf("  [%d] %s\n", i, option)
	}
}

func printScorecard(summary score.Summary) {
	fmt.Println("\nquestion  correct  time     score")
	for _, row := range summary.Rows {
		taken := "N/A"
		if row.HasTime {
			taken = strconv.FormatFloat(row.TimeTaken, 'f', 1, 64) + "s"
		}
		fmt.Printf("Q%-7d  %-7v  %-7s  %.1f\n", row.Question, row.Correct, taken, row.Earned)
	}
	fmt.Printf("total: %.1f\n", summary.Total)
}
