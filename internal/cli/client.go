package cli

import (
	"time"

	"quizpulse/internal/api"
	"quizpulse/internal/config"
)

// buildClient resolves config file and flag overrides into an API client.
func buildClient(opts *rootOptions) (*api.Client, config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, cfg, err
	}
	if opts.apiURL != "" {
		cfg.API.URL = opts.apiURL
	}
	if opts.token != "" {
		cfg.API.Token = opts.token
	}
	timeout := config.Interval(cfg.API.Timeout, 10*time.Second)
	return api.New(cfg.API.URL, cfg.API.Token, timeout), cfg, nil
}
