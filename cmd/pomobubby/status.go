package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/pomobubby/internal/model"
	"github.com/sandeepkv93/pomobubby/internal/storage"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show completed sessions, theme, music and task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			theme, saved, err := e.state.Theme(ctx)
			if err != nil {
				return fmt.Errorf("read theme: %w", err)
			}
			musicURL, err := e.state.MusicURL(ctx)
			if err != nil {
				return fmt.Errorf("read music url: %w", err)
			}
			tasks, taskErr := e.state.Tasks(ctx)

			out := cmd.OutOrStdout()
			cyan := color.New(color.FgCyan, color.Bold)
			green := color.New(color.FgGreen, color.Bold)
			yellow := color.New(color.FgYellow)
			red := color.New(color.FgRed, color.Bold)

			cyan.Fprintln(out, "PomoBubby")
			fmt.Fprintf(out, "  storage:  %s (%s)\n", e.cfg.Storage.Type, e.cfg.StoragePath())
			fmt.Fprintf(out, "  profile:  %s\n", e.cfg.Profile())
			fmt.Fprint(out, "  sessions: ")
			green.Fprintf(out, "%d\n", sessions)
			if saved {
				fmt.Fprintf(out, "  theme:    %s\n", theme)
			} else {
				fmt.Fprintf(out, "  theme:    %s (not saved)\n", e.cfg.UI.Theme)
			}
			if musicURL == "" {
				fmt.Fprint(out, "  music:    ")
				yellow.Fprintln(out, "none")
			} else {
				fmt.Fprintf(out, "  music:    %s\n", musicURL)
			}
			if sqlite, ok := e.kv.(*storage.SQLiteKV); ok {
				if at, err := sqlite.UpdatedAt(ctx, storage.KeySessionCount); err == nil {
					fmt.Fprintf(out, "  last session saved: %s\n", at.Local().Format(time.RFC3339))
				}
			}

			if taskErr != nil {
				red.Fprintf(out, "  board unreadable: %v\n", taskErr)
				return nil
			}
			counts := model.NewBoardFromTasks(tasks).Counts()
			cyan.Fprintln(out, "Board")
			for _, c := range model.Columns {
				fmt.Fprintf(out, "  %s %-6s %d\n", c.Icon(), c.Label(), counts[c])
			}
			return nil
		},
	}
}
