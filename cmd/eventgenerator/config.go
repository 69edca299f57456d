package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type config struct {
	BaseURL      string   `mapstructure:"base_url"`
	Token        string   `mapstructure:"token"`
	Source       string   `mapstructure:"source"`
	Campaigns    []string `mapstructure:"campaigns"`
	Authors      []string `mapstructure:"authors"`
	Rate         float64  `mapstructure:"rate"`
	Burst        int      `mapstructure:"burst"`
	DiscardRatio float64  `mapstructure:"discard_ratio"`
	SendStarted  bool     `mapstructure:"send_started"`
	Limit        int      `mapstructure:"limit"`
}

func loadConfig(path string) (config, error) {
	if strings.TrimSpace(path) == "" {
		return config{}, fmt.Errorf("config path is required")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("source", "eventgenerator")
	v.SetDefault("rate", 1.0)
	v.SetDefault("burst", 1)
	v.SetDefault("discard_ratio", 0.3)
	if err := v.ReadInConfig(); err != nil {
		return config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Token = strings.TrimSpace(cfg.Token)
	cfg.Source = strings.TrimSpace(cfg.Source)
	cfg.Campaigns = trimAll(cfg.Campaigns)
	cfg.Authors = trimAll(cfg.Authors)

	if cfg.BaseURL == "" || len(cfg.Campaigns) == 0 {
		return config{}, fmt.Errorf("config must include base_url and at least one campaign")
	}
	if cfg.Rate <= 0 {
		return config{}, fmt.Errorf("rate must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.DiscardRatio < 0 || cfg.DiscardRatio > 1 {
		return config{}, fmt.Errorf("discard_ratio must be between 0 and 1")
	}
	if len(cfg.Authors) == 0 {
		cfg.Authors = []string{"ada", "grace", "linus"}
	}

	return cfg, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}
