// Command server runs the concierge chat gateway.
//
// Configuration is layered: built-in defaults, then an optional YAML
// config file, then environment variables (CONCIERGE_ prefix plus the
// conventional provider variables), then command-line flags.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v3"

	"github.com/airtrek/concierge/pkg/config"
	"github.com/airtrek/concierge/pkg/debug"
	"github.com/airtrek/concierge/pkg/engine"
	transporthttp "github.com/airtrek/concierge/pkg/transport/http"
)

const version = "0.3.0"

func main() {
	cmd := &cli.Command{
		Name:    "concierge",
		Usage:   "streaming chat gateway for the AirTrek concierge demo",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to YAML configuration file", Sources: cli.EnvVars("CONCIERGE_CONFIG")},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "listen port (overrides config)", Sources: cli.EnvVars("CONCIERGE_PORT")},
			&cli.StringFlag{Name: "provider", Usage: "force a default provider: openai, azure, ollama, or mock", Sources: cli.EnvVars("CONCIERGE_PROVIDER")},
			&cli.StringFlag{Name: "log-level", Usage: "log level: ERROR, WARN, INFO, DEBUG, or TRACE", Sources: cli.EnvVars("CONCIERGE_LOG_LEVEL")},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Flags win over file and environment.
	if cmd.IsSet("port") {
		cfg.Server.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("provider") {
		cfg.Providers.Default = cmd.String("provider")
	}
	if cmd.IsSet("log-level") {
		cfg.Logging.Level = cmd.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	eng := engine.New(*cfg, logger)
	srv := transporthttp.NewServer(eng, *cfg, logger)

	logger.Info("concierge starting",
		slog.String("version", version),
		slog.Int("port", cfg.Server.Port),
		slog.String("default_provider", cfg.Providers.Default),
		slog.Bool("tools_enabled", cfg.Tools.Enabled))

	return srv.ListenAndServe()
}

// newLogger builds the process logger: tinted output on a terminal,
// with the level and debug categories taken from configuration.
func newLogger(lc config.LoggingConfig) *slog.Logger {
	level := debug.Init(lc.Debug, lc.Level)
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
}
