// Package main implements the entry point for the ISCS gateway, which
// validates client requests and forwards them to the user, product and
// order services.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/phrazzld/iscs-gateway/internal/config"
	"github.com/phrazzld/iscs-gateway/internal/platform/logger"
)

const name = "iscs-gateway"

// overridden during build with ldflags
var version = "dev"

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    name,
		Version: version,
		Usage:   "Validate requests and forward them to the ISCS backend services",
		Description: `Serves GET /user/{id}, GET /product/{id}, POST /user and POST /product,
forwarding admissible requests to the configured backend and relaying its
answer. POST /order is reserved.

Configuration is read from a JSON or YAML file; ISCS_* environment
variables override file values (e.g. ISCS_USERSERVICE_PORT).`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "Path to the configuration file",
				Sources: cli.EnvVars("ISCS_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level (debug, info, warn, error)",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.Server.LogLevel = lvl
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	app, err := newApplication(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}
