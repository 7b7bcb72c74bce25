package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/pomobubby/internal/model"
	"github.com/sandeepkv93/pomobubby/internal/storage"
)

func newTasksCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Read and edit the task board without the UI",
	}
	cmd.AddCommand(newTasksAddCmd(opts), newTasksListCmd(opts), newTasksClearCmd(opts))
	return cmd
}

func newTasksAddCmd(opts *rootOptions) *cobra.Command {
	var desc string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to the To Do column",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			tasks, err := e.state.Tasks(ctx)
			if err != nil {
				return fmt.Errorf("read board: %w", err)
			}
			board := model.NewBoardFromTasks(tasks)
			task, err := board.Add(strings.Join(args, " "), desc)
			if err != nil {
				return err
			}
			if err := e.state.SaveTasks(ctx, board.Tasks()); err != nil {
				return fmt.Errorf("save board: %w", err)
			}
			e.log.Info().Str("task_id", task.ID).Msg("task added from cli")
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %q\n", shortID(task.ID), task.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&desc, "desc", "", "Markdown description")
	return cmd
}

func newTasksListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks by column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			tasks, err := e.state.Tasks(ctx)
			if err != nil {
				return fmt.Errorf("read board: %w", err)
			}
			board := model.NewBoardFromTasks(tasks)
			out := cmd.OutOrStdout()
			for _, c := range model.Columns {
				column := board.Column(c)
				fmt.Fprintf(out, "%s %s (%d)\n", c.Icon(), c.Label(), len(column))
				for _, t := range column {
					fmt.Fprintf(out, "  %s  %s\n", shortID(t.ID), t.Title)
				}
			}
			return nil
		},
	}
}

func newTasksClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every task from the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.state.Forget(ctx, storage.KeyTasks); err != nil {
				return fmt.Errorf("clear board: %w", err)
			}
			e.log.Info().Msg("board cleared from cli")
			fmt.Fprintln(cmd.OutOrStdout(), "board cleared")
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
