package cli

import (
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	apiURL     string
	token      string
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	envURL := os.Getenv("QUIZPULSE_API_URL")
	envToken := os.Getenv("QUIZPULSE_TOKEN")
	envConfig := os.Getenv("CONFIG_PATH")

	cmd := &cobra.Command{
		Use:   "quizpulse",
		Short: "Player and admin client for the live quiz platform",
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", envURL, "backend base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.token, "token", envToken, "admin bearer token (overrides config)")

	cmd.AddCommand(NewPlayCmd(opts))
	cmd.AddCommand(NewAdminCmd(opts))
	cmd.AddCommand(NewGamesCmd(opts))
	return cmd
}
