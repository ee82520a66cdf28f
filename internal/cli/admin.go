package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quizpulse/internal/admin"
	"quizpulse/internal/domain"
)

// NewAdminCmd groups the session control panel commands.
func NewAdminCmd(opts *rootOptions) *cobra.Command {
	var gameID, sessionID string

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Control a running session and inspect its results",
	}
	cmd.PersistentFlags().StringVar(&gameID, "game", "", "game ID owning the session")
	cmd.PersistentFlags().StringVar(&sessionID, "session", "", "session ID")

	newController := func() (*admin.Controller, error) {
		client, _, err := buildClient(opts)
		if err != nil {
			return nil, err
		}
		return admin.NewController(client, gameID, sessionID), nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the session's position and active flag",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newController()
			if err != nil {
				return err
			}
			sess, err := c.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			printStatus(sess)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "advance",
		Short: "Start the session or move to the next question",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newController()
			if err != nil {
				return err
			}
			sess, err := c.Advance(cmd.Context())
			if err != nil {
				return err
			}
			printStatus(sess)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "end",
		Short: "End the session (irreversible)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newController()
			if err != nil {
				return err
			}
			sess, err := c.End(cmd.Context())
			if err != nil {
				return err
			}
			printStatus(sess)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "results",
		Short: "Print the leaderboard and per-question analytics",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newController()
			if err != nil {
				return err
			}
			return printResults(cmd.Context(), c)
		},
	})

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the top-5 leaderboard as CSV",
	}
	out := exportCmd.Flags().String("out", "", "output file (default session_<id>_ranking.csv)")
	exportCmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := newController()
		if err != nil {
			return err
		}
		path := *out
		if path == "" {
			path = fmt.Sprintf("session_%s_ranking.csv", sessionID)
		}
		return exportCSV(cmd.Context(), c, path)
	}
	cmd.AddCommand(exportCmd)

	return cmd
}

func printStatus(sess domain.Session) {
	state := "active"
	if !sess.Active {
		state = "ended"
	}
	position := fmt.Sprintf("question %d", sess.Position)
	if sess.Position < 0 {
		position = "lobby"
	}
	fmt.Printf("session %s: %s, %s, %d questions\n", sess.SessionID, state, position, len(sess.Questions))
}

func printResults(ctx context.Context, c *admin.Controller) error {
	sess, err := c.Refresh(ctx)
	if err != nil {
		return err
	}
	results, err := c.Results(ctx)
	if err != nil {
		return err
	}

	fmt.Println("top 5 (raw points):")
	for _, e := range admin.Leaderboard(results, sess.Questions) {
		fmt.Printf("  %d. %-20s %v %s\n", e.Rank, e.Name, e.Score, e.Badge)
	}

	fmt.Println("correct rate per question:")
	for _, r := range admin.CorrectRates(results) {
		fmt.Printf("  %s: %.1f%%\n", r.Question, r.Rate)
	}

	fmt.Println("average response time:")
	for _, t := range admin.AverageResponseTimes(results) {
		if t.Answered == 0 {
			fmt.Printf("  %s: no answers\n", t.Question)
			continue
		}
		fmt.Printf("  %s: %.2fs over %d answers\n", t.Question, t.Seconds, t.Answered)
	}

	fmt.Println("accuracy ranking:")
	for _, a := range admin.AccuracyRanking(results) {
		fmt.Printf("  %-20s %.1f%%\n", a.Name, a.Accuracy)
	}

	fmt.Println("fastest responder:")
	for _, f := range admin.FastestResponders(results) {
		if f.Name == "" {
			fmt.Printf("  %s: nobody answered\n", f.Question)
			continue
		}
		fmt.Printf("  %s: %s (%.2fs)\n", f.Question, f.Name, f.Seconds)
	}
	return nil
}

func exportCSV(ctx context.Context, c *admin.Controller, path string) error {
	sess, err := c.Refresh(ctx)
	if err != nil {
		return err
	}
	results, err := c.Results(ctx)
	if err != nil {
		return err
	}
	csvText := admin.LeaderboardCSV(admin.Leaderboard(results, sess.Questions))
	if err := os.WriteFile(path, []byte(csvText), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
