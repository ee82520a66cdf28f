package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quizpulse/internal/domain"
)

// NewGamesCmd exposes the game-library endpoints: list the library and
// replace it wholesale, which is the only write the backend offers.
func NewGamesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Inspect and replace the admin's game library",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List games and their active sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(opts)
			if err != nil {
				return err
			}
			games, err := client.Games(cmd.Context())
			if err != nil {
				return err
			}
			for _, g := range games {
				active := "-"
				if g.Active != nil {
					active = *g.Active
				}
				fmt.Printf("%-12s %-24s owner=%-16s questions=%d active=%s\n",
					g.ID, g.Name, g.Owner, len(g.Questions), active)
			}
			return nil
		},
	})

	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "Replace the entire game library from a JSON file",
	}
	file := pushCmd.Flags().String("file", "", "JSON file holding the full game list")
	pushCmd.RunE = func(cmd *cobra.Command, args []string) error {
		client, _, err := buildClient(opts)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(*file)
		if err != nil {
			return err
		}

		var games []domain.Game
		if err := json.Unmarshal(data, &games); err != nil {
			// Also accept the wrapped {"games": [...]} shape the backend serves.
			var wrapped struct {
				Games []domain.Game `json:"games"`
			}
			if err2 := json.Unmarshal(data, &wrapped); err2 != nil {
				return fmt.Errorf("parsing %s: %w", *file, err)
			}
			games = wrapped.Games
		}

		for _, g := range games {
			for _, q := range g.Questions {
				if err := q.Validate(); err != nil {
					return fmt.Errorf("game %s: %w", g.ID, err)
				}
			}
		}
		if err := client.PutGames(cmd.Context(), games); err != nil {
			return err
		}
		fmt.Printf("pushed %d games\n", len(games))
		return nil
	}
	cmd.AddCommand(pushCmd)

	return cmd
}
