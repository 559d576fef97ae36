// Package config loads sms-solvers CLI configuration from TOML, with
// environment and flag overrides layered on top.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	smssolvers "github.com/rlgrpe/sms-solvers"
)

// Config is the top-level CLI configuration.
type Config struct {
	Provider ProviderConfig `toml:"provider"`
	Poll     PollConfig     `toml:"poll"`
	Retry    RetryConfig    `toml:"retry"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ProviderConfig selects and configures the rental backend.
type ProviderConfig struct {
	// Backend is "smsactivate", "herosms", or "memory".
	Backend string `toml:"backend"`
	APIKey  string `toml:"api_key"`
	// Endpoint overrides the backend's production API URL.
	Endpoint string `toml:"endpoint"`
	// BlacklistedDialCodes lists dial codes whose numbers are refused.
	BlacklistedDialCodes []string `toml:"blacklisted_dial_codes"`
}

// PollConfig controls how long and how often to wait for a code.
type PollConfig struct {
	// Preset is "fast", "balanced", or "patient". Explicit timeout or
	// interval values override the preset.
	Preset      string `toml:"preset"`
	TimeoutSecs int    `toml:"timeout"`
	IntervalMS  int    `toml:"interval_ms"`
}

// RetryConfig controls the exponential backoff wrapper around the
// backend.
type RetryConfig struct {
	Enabled     bool    `toml:"enabled"`
	MinDelayMS  int     `toml:"min_delay_ms"`
	MaxDelayMS  int     `toml:"max_delay_ms"`
	Factor      float64 `toml:"factor"`
	MaxAttempts int     `toml:"max_attempts"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text, json
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	policy := smssolvers.DefaultRetryPolicy()
	return &Config{
		Provider: ProviderConfig{
			Backend: "memory",
		},
		Poll: PollConfig{
			Preset: "balanced",
		},
		Retry: RetryConfig{
			Enabled:     true,
			MinDelayMS:  int(policy.MinDelay / time.Millisecond),
			MaxDelayMS:  int(policy.MaxDelay / time.Millisecond),
			Factor:      policy.Factor,
			MaxAttempts: policy.MaxAttempts,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the TOML file at configPath (default
// "sms-solvers.toml"; a missing file is fine), then applies
// environment variables and CLI flag overrides, then validates.
func Load(configPath string, flags map[string]string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		configPath = "sms-solvers.toml"
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", configPath, err)
		}
	}

	applyEnv(cfg)
	applyFlags(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Provider.Backend {
	case "smsactivate", "herosms":
		if c.Provider.APIKey == "" {
			return fmt.Errorf("provider.api_key is required for backend %q", c.Provider.Backend)
		}
	case "memory":
	default:
		return fmt.Errorf("provider.backend must be \"smsactivate\", \"herosms\", or \"memory\", got %q", c.Provider.Backend)
	}

	switch c.Poll.Preset {
	case "", "fast", "balanced", "patient":
	default:
		return fmt.Errorf("poll.preset must be \"fast\", \"balanced\", or \"patient\", got %q", c.Poll.Preset)
	}
	if _, err := c.PollSettings(); err != nil {
		return err
	}

	if c.Retry.Enabled {
		if c.Retry.MaxAttempts < 1 {
			return fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
		}
		if c.Retry.MinDelayMS < 0 || c.Retry.MaxDelayMS < c.Retry.MinDelayMS {
			return fmt.Errorf("retry delays invalid: min %dms, max %dms", c.Retry.MinDelayMS, c.Retry.MaxDelayMS)
		}
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be \"debug\", \"info\", \"warn\", or \"error\", got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}

// PollSettings resolves the preset plus explicit overrides into a core
// poll configuration.
func (c *Config) PollSettings() (smssolvers.PollConfig, error) {
	var pc smssolvers.PollConfig
	switch c.Poll.Preset {
	case "fast":
		pc = smssolvers.FastPollConfig()
	case "patient":
		pc = smssolvers.PatientPollConfig()
	default:
		pc = smssolvers.BalancedPollConfig()
	}
	if c.Poll.TimeoutSecs > 0 {
		pc.Timeout = time.Duration(c.Poll.TimeoutSecs) * time.Second
	}
	if c.Poll.IntervalMS > 0 {
		pc.PollInterval = time.Duration(c.Poll.IntervalMS) * time.Millisecond
	}
	if err := pc.Validate(); err != nil {
		return smssolvers.PollConfig{}, fmt.Errorf("poll settings: %w", err)
	}
	return pc, nil
}

// RetryPolicy resolves the retry section into a core policy.
func (c *Config) RetryPolicy() smssolvers.RetryPolicy {
	return smssolvers.RetryPolicy{
		MinDelay:    time.Duration(c.Retry.MinDelayMS) * time.Millisecond,
		MaxDelay:    time.Duration(c.Retry.MaxDelayMS) * time.Millisecond,
		Factor:      c.Retry.Factor,
		MaxAttempts: c.Retry.MaxAttempts,
	}
}

// BlacklistedDialCodes parses the configured dial code strings.
func (c *Config) BlacklistedDialCodes() ([]smssolvers.DialCode, error) {
	codes := make([]smssolvers.DialCode, 0, len(c.Provider.BlacklistedDialCodes))
	for _, raw := range c.Provider.BlacklistedDialCodes {
		dc, err := smssolvers.NewDialCode(raw)
		if err != nil {
			return nil, fmt.Errorf("provider.blacklisted_dial_codes: %q: %w", raw, err)
		}
		codes = append(codes, dc)
	}
	return codes, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SMS_SOLVERS_BACKEND"); v != "" {
		cfg.Provider.Backend = v
	}
	if v := os.Getenv("SMS_SOLVERS_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("SMS_SOLVERS_ENDPOINT"); v != "" {
		cfg.Provider.Endpoint = v
	}
	if v := os.Getenv("SMS_SOLVERS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func applyFlags(cfg *Config, flags map[string]string) {
	for key, value := range flags {
		if value == "" {
			continue
		}
		switch key {
		case "backend":
			cfg.Provider.Backend = value
		case "api-key":
			cfg.Provider.APIKey = value
		case "endpoint":
			cfg.Provider.Endpoint = value
		case "preset":
			cfg.Poll.Preset = value
		case "timeout":
			if n, err := strconv.Atoi(value); err == nil {
				cfg.Poll.TimeoutSecs = n
			}
		case "interval-ms":
			if n, err := strconv.Atoi(value); err == nil {
				cfg.Poll.IntervalMS = n
			}
		}
	}
}

// ToTOML renders the configuration back to TOML, for `config show`.
func (c *Config) ToTOML() (string, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	return string(out), nil
}
