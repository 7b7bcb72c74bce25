package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/pomobubby/internal/report"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var pdfPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the board and session count as a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pdfPath == "" {
				return errors.New("export requires --pdf <file>")
			}
			ctx := cmd.Context()
			e, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			sessions, err := e.state.SessionCount(ctx)
			if err != nil {
				return fmt.Errorf("read session count: %w", err)
			}
			musicURL, err := e.state.MusicURL(ctx)
			if err != nil {
				return fmt.Errorf("read music url: %w", err)
			}
			tasks, err := e.state.Tasks(ctx)
			if err != nil {
				return fmt.Errorf("read board: %w", err)
			}

			summary := report.Summary{
				GeneratedAt: time.Now(),
				Sessions:    sessions,
				Profile:     string(e.cfg.Profile()),
				MusicURL:    musicURL,
				Tasks:       tasks,
			}
			if err := report.WritePDFFile(pdfPath, summary); err != nil {
				e.log.Error().Err(err).Str("path", pdfPath).Msg("export failed")
				return err
			}
			e.log.Info().Str("path", pdfPath).Int("tasks", len(tasks)).Msg("report exported")
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d tasks, %d sessions)\n", pdfPath, len(tasks), sessions)
			return nil
		},
	}
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Write a PDF report to this file")
	return cmd
}
