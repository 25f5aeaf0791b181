// Package main provides the chargesense operator CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	app "github.com/okian/chargesense/internal/app"
	"github.com/okian/chargesense/internal/uploadclient"
	"github.com/okian/chargesense/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	verbose bool
	pretty  bool
	output  string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "chargesense",
		Short: "Summarize weekly attendance workbooks",
		Long: `chargesense turns a weekly attendance workbook (one tab per weekday)
into per-customer charges, daily totals, a charge distribution and bus usage.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "warn"
			if g.verbose {
				level = "debug"
			}
			if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr())); err != nil {
				return err
			}
			return logger.SetLevelString(level)
		},
	}
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log pipeline progress to stderr")
	root.PersistentFlags().BoolVar(&g.pretty, "pretty", false, "Pretty-print JSON output")
	root.PersistentFlags().StringVarP(&g.output, "output", "o", "", "Output file path (default: stdout)")

	root.AddCommand(newSummarizeCmd(g), newUploadCmd(g))
	return root
}

func newSummarizeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize [workbook.xlsx|week.csv]",
		Short: "Summarize a local workbook without a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open input: %w", err)
			}
			defer func() { _ = f.Close() }()

			svc := app.New(app.WithLogger(logger.Get().Named("pipeline")))
			summary, err := svc.Summarize(cmd.Context(), filepath.Base(path), f)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), g, summary)
		},
	}
}

func newUploadCmd(g *globalFlags) *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
		workers int
	)
	cmd := &cobra.Command{
		Use:   "upload [file...]",
		Short: "Upload workbooks to a running server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			client := uploadclient.New(baseURL, uploadclient.WithTimeout(timeout))

			if len(args) == 1 {
				summary, err := client.UploadFile(ctx, args[0])
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), g, summary)
			}

			results := client.UploadAll(ctx, args, workers)
			out := make(map[string]any, len(results))
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					out[r.Path] = map[string]string{"error": r.Err.Error()}
					continue
				}
				out[r.Path] = r.Summary
			}
			if err := writeOutput(cmd.OutOrStdout(), g, out); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d uploads failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:9080", "Base URL of the server")
	cmd.Flags().DurationVar(&timeout, "timeout", uploadclient.DefaultTimeout, "Per-request timeout")
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent uploads when several files are given")
	return cmd
}

func writeOutput(stdout io.Writer, g *globalFlags, v any) error {
	var (
		data []byte
		err  error
	)
	if g.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	data = append(data, '\n')

	if g.output != "" {
		if err := os.WriteFile(g.output, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err = stdout.Write(data)
	return err
}
