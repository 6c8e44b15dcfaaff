package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStartCmd() *cobra.Command {
	var (
		width      int
		height     int
		difficulty string
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new game, replacing the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"width":      width,
				"height":     height,
				"difficulty": difficulty,
			}
			var result Game

			if err := client.Post("/start", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 10, "Board width (5-30)")
	cmd.Flags().IntVar(&height, "height", 10, "Board height (5-30)")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "medium", "Difficulty: easy, medium, hard, expert")

	return cmd
}

func newRevealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <x> <y>",
		Short: "Reveal a cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postPosition(cmd, "/reveal", args)
		},
	}
}

func newFlagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flag <x> <y>",
		Short: "Toggle a flag on a hidden cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postPosition(cmd, "/flag", args)
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get("/status", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func postPosition(cmd *cobra.Command, path string, args []string) error {
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}

	y, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}

	req := map[string]int{"x": x, "y": y}
	var result ActionResult

	if err := client.Post(path, req, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output, cmd.OutOrStdout())
	out.Print(result)
	return nil
}
