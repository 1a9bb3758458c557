package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arunpandian9159/Booking-agent/internal/backend"
	"github.com/arunpandian9159/Booking-agent/internal/config"
	"github.com/arunpandian9159/Booking-agent/internal/display"
)

// app is the state shared by every subcommand, built once the flags are parsed.
type app struct {
	cfg      config.Client
	logger   *slog.Logger
	client   *backend.Client
	renderer *display.Renderer
	closers  []io.Closer
}

func (a *app) close() {
	for _, c := range a.closers {
		c.Close()
	}
}

func main() {
	a := &app{}
	err := rootCmd(a).Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd(a *app) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "tripbook",
		Short:         "Browse and book travel packages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, configPath)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default: booking.yaml in . or ~/.config/booking-agent)")
	flags.String("backend", "", "booking backend base URL")
	flags.Duration("timeout", 0, "request timeout")
	flags.Bool("plain", false, "disable colors and styling")
	flags.String("log-level", "", "log level: debug|info|warn|error")
	flags.String("log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(
		uiCmd(a),
		destinationsCmd(a),
		packagesCmd(a),
		bookCmd(a),
		renderCmd(a),
	)
	return root
}

// setup loads the configuration and builds the logger, client and renderer.
func (a *app) setup(cmd *cobra.Command, configPath string) error {
	cfg, err := config.LoadClient(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	logOut := io.Writer(os.Stderr)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		a.closers = append(a.closers, f)
		logOut = f
	}
	a.logger, err = config.NewLogger(logOut, cfg.LogLevel)
	if err != nil {
		return err
	}

	a.client = backend.NewClient(cfg.BackendURL,
		backend.WithTimeout(cfg.Timeout),
		backend.WithLogger(a.logger),
	)
	a.renderer = display.NewRenderer(cmd.OutOrStdout(), cfg.Plain)
	return nil
}
