package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	smssolvers "github.com/rlgrpe/sms-solvers"
	"github.com/rlgrpe/sms-solvers/internal/config"
	"github.com/rlgrpe/sms-solvers/providers/herosms"
	"github.com/rlgrpe/sms-solvers/providers/memory"
	"github.com/rlgrpe/sms-solvers/providers/smsactivate"
)

// loadConfig resolves the config file path and flag overrides for a
// command invocation.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	flags := map[string]string{}
	for _, name := range []string{"backend", "api-key", "endpoint", "preset", "timeout", "interval-ms"} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			flags[name] = f.Value.String()
		}
	}
	return config.Load(path, flags)
}

// buildLogger creates the slog logger the solver and providers share.
func buildLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// buildProvider assembles the configured backend, including the dial
// code blacklist and the retry wrapper.
func buildProvider(cfg *config.Config, logger *slog.Logger) (smssolvers.Provider, error) {
	blacklist, err := cfg.BlacklistedDialCodes()
	if err != nil {
		return nil, err
	}

	var provider smssolvers.Provider
	switch cfg.Provider.Backend {
	case "smsactivate":
		client := smsactivate.NewClient(cfg.Provider.APIKey, cfg.Provider.Endpoint)
		provider = smsactivate.NewProviderWithBlacklist(client, blacklist...)
	case "herosms":
		client := herosms.NewClient(cfg.Provider.APIKey, cfg.Provider.Endpoint)
		provider = herosms.NewProviderWithBlacklist(client, blacklist...)
	case "memory":
		provider = memory.NewProvider(logger)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Provider.Backend)
	}

	if cfg.Retry.Enabled {
		retry := smssolvers.NewRetryProviderWithPolicy(provider, cfg.RetryPolicy())
		retry.WithNotify(func(err error, delay time.Duration) {
			logger.Debug("retrying backend call", "error", err, "delay", delay)
		})
		provider = retry
	}
	return provider, nil
}

// buildSolver assembles the full orchestration stack for a command.
func buildSolver(cmd *cobra.Command) (*smssolvers.Solver, *config.Config, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := buildLogger(cfg)

	provider, err := buildProvider(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	pollCfg, err := cfg.PollSettings()
	if err != nil {
		return nil, nil, nil, err
	}

	return smssolvers.NewSolver(provider, pollCfg, logger), cfg, logger, nil
}
