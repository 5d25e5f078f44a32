package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	singleton "github.com/leangaurav/singleton"
)

type demoConfig struct {
	Threads       int      `toml:"threads"`
	Policies      []string `toml:"policies"`
	LogLevel      string   `toml:"log_level"`
	ReleaseAtExit bool     `toml:"release_at_exit"`
}

func defaultConfig() demoConfig {
	return demoConfig{
		Threads:       10,
		Policies:      []string{string(singleton.PolicyMutex), string(singleton.PolicyOnceFlag)},
		LogLevel:      "info",
		ReleaseAtExit: true,
	}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (demoConfig, error) {
	cfg := defaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return demoConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return demoConfig{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := validateConfig(cfg); err != nil {
		return demoConfig{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func validateConfig(cfg demoConfig) error {
	if cfg.Threads <= 0 {
		return fmt.Errorf("threads must be positive, got %d", cfg.Threads)
	}
	if len(cfg.Policies) == 0 {
		return fmt.Errorf("policies must not be empty")
	}
	for i, raw := range cfg.Policies {
		if _, err := singleton.ParsePolicy(raw); err != nil {
			return fmt.Errorf("policies[%d]: %w", i, err)
		}
	}
	return nil
}

func (c demoConfig) policies() []singleton.Policy {
	out := make([]singleton.Policy, 0, len(c.Policies))
	for _, raw := range c.Policies {
		if p, err := singleton.ParsePolicy(raw); err == nil {
			out = append(out, p)
		}
	}
	return out
}
