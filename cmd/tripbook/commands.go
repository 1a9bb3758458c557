package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arunpandian9159/Booking-agent/internal/backend"
	"github.com/arunpandian9159/Booking-agent/internal/flow"
	"github.com/arunpandian9159/Booking-agent/internal/offer"
	"github.com/arunpandian9159/Booking-agent/internal/tui"
)

func uiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive booking form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Log lines on stderr would corrupt the screen.
			logger := a.logger
			client := a.client
			if a.cfg.LogFile == "" {
				logger = slog.New(slog.DiscardHandler)
				client = backend.NewClient(a.cfg.BackendURL,
					backend.WithTimeout(a.cfg.Timeout),
					backend.WithLogger(logger),
				)
			}
			ctrl := flow.NewController(client, offer.NewRenderer(logger), logger)
			return tui.Run(cmd.Context(), ctrl, a.renderer)
		},
	}
}

func destinationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "destinations",
		Short: "List destinations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dests, err := a.client.Destinations(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(dests) == 0 {
				fmt.Fprintln(out, flow.NoDestinationsLabel)
				return nil
			}
			for _, d := range dests {
				fmt.Fprintln(out, d)
			}
			return nil
		},
	}
}

func packagesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "packages <destination>",
		Short: "List the packages of a destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkgs, err := a.client.Packages(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(pkgs) == 0 {
				fmt.Fprintln(out, flow.NoPackagesLabel)
				return nil
			}
			for _, p := range pkgs {
				fmt.Fprintf(out, "%s\t%s\n", p.ID, p.Name)
			}
			return nil
		},
	}
}

func bookCmd(a *app) *cobra.Command {
	var destination, pkg, name, date string

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a package and print the best offer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl := flow.NewController(a.client, offer.NewRenderer(a.logger), a.logger)

			s := ctrl.Start(ctx)
			if s.Result == flow.ResultFailed {
				return errors.New(s.Err)
			}

			s = ctrl.Dispatch(ctx, s, flow.DestinationSelected{Destination: destination})
			if s.Result == flow.ResultFailed {
				return errors.New(s.Err)
			}
			p, ok := s.FindPackage(pkg)
			if !ok {
				return fmt.Errorf("package %q not available for %s", pkg, destination)
			}

			s = ctrl.Dispatch(ctx, s, flow.PackageSelected{ID: p.ID})
			s = ctrl.Dispatch(ctx, s, flow.NameChanged{Name: name})
			s = ctrl.Dispatch(ctx, s, flow.DateChanged{Date: date})
			s = ctrl.Dispatch(ctx, s, flow.Submitted{})

			if len(s.Invalid) > 0 {
				fields := make([]string, len(s.Invalid))
				for i, f := range s.Invalid {
					fields[i] = string(f)
				}
				return fmt.Errorf("missing or invalid: %s (dates start at %s)", strings.Join(fields, ", "), flow.MinDate)
			}
			if s.Result == flow.ResultFailed {
				return errors.New(s.Err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.renderer.Tree(s.Tree))
			return nil
		},
	}
	cmd.Flags().StringVar(&destination, "destination", "", "destination name")
	cmd.Flags().StringVar(&pkg, "package", "", "package id or name")
	cmd.Flags().StringVar(&name, "name", "", "traveller name")
	cmd.Flags().StringVar(&date, "date", "", "departure date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("package")
	return cmd
}

func renderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a saved booking response",
		Long: "Render a saved /book response, or a bare result, the way the form shows it.\n" +
			"Reads standard input when the file is - or omitted.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			raw, err := resultOf(data)
			if err != nil {
				return err
			}
			tree := offer.NewRenderer(a.logger).RenderRaw(raw)
			fmt.Fprintln(cmd.OutOrStdout(), a.renderer.Tree(tree))
			return nil
		},
	}
}

// resultOf extracts the result member from a /book response. Input that is
// not such a response is treated as a bare result.
func resultOf(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return data, nil
	}
	var resp struct {
		Status string          `json:"status"`
		Result json.RawMessage `json:"result"`
		Error  *string         `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return data, nil
	}
	if resp.Error != nil && resp.Result == nil {
		return nil, &backend.Error{Message: *resp.Error}
	}
	if resp.Result == nil {
		return data, nil
	}
	return resp.Result, nil
}
