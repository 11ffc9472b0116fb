// Package main implements a workload client that replays a text workload
// against the ISCS gateway and reports the outcome of every line.
package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/urfave/cli/v3"

	"github.com/phrazzld/iscs-gateway/internal/config"
	"github.com/phrazzld/iscs-gateway/internal/platform/logger"
	"github.com/phrazzld/iscs-gateway/internal/workload"
)

const name = "iscs-workload"

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     "Replay a workload file against the ISCS gateway",
		ArgsUsage: "<workload-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "Path to the configuration file naming the gateway address",
			},
			&cli.StringFlag{
				Name:  "gateway",
				Usage: "Gateway base URL, e.g. http://127.0.0.1:14000 (overrides --config)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Value:   string(workload.FormatJSON),
				Usage:   "Report format (json, yaml)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the report to this file instead of stdout",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: workload.DefaultTimeout,
				Usage: "Per-request timeout",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "Log level for diagnostics written to stderr (debug, info, warn, error)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one workload file, got %d arguments", cmd.Args().Len())
			}

			format, err := workload.ParseFormat(cmd.String("format"))
			if err != nil {
				return err
			}

			baseURL, err := gatewayURL(cmd)
			if err != nil {
				return err
			}

			log, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: cmd.String("log-level")}, os.Stderr)
			if err != nil {
				return fmt.Errorf("failed to set up logger: %w", err)
			}

			f, err := os.Open(cmd.Args().First())
			if err != nil {
				return fmt.Errorf("failed to open workload: %w", err)
			}
			defer f.Close()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner := workload.NewRunner(baseURL,
				workload.WithLogger(log),
				workload.WithHTTPClient(newHTTPClient(cmd.Duration("timeout"))))

			report, runErr := runner.Run(ctx, f)
			if report != nil {
				if err := writeReport(report, format, cmd.String("output"), stdout); err != nil {
					return err
				}
			}
			return runErr
		},
	}
}

// gatewayURL resolves the gateway base URL from --gateway or from the
// InterServiceCommunication section of the configuration.
func gatewayURL(cmd *cli.Command) (string, error) {
	if u := cmd.String("gateway"); u != "" {
		return u, nil
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}

	addr := cfg.Gateway.Address()
	if ip := net.ParseIP(addr.Host); addr.Host == "" || (ip != nil && ip.IsUnspecified()) {
		addr.Host = "127.0.0.1"
	}
	return addr.BaseURL(), nil
}

func writeReport(report *workload.Report, format workload.Format, path string, stdout io.Writer) error {
	if path == "" {
		return report.Write(stdout, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := report.Write(f, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func newHTTPClient(timeout time.Duration) *http.Client {
	hc := cleanhttp.DefaultClient()
	hc.Timeout = timeout
	return hc
}
