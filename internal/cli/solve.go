package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	astar "github.com/arcanis/astar-wasm"
	"github.com/arcanis/astar-wasm/internal"
	"github.com/arcanis/astar-wasm/internal/board"
)

func newSolveCmd() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find a route and draw it on the grid",
		Long: `Find a route from start to goal and print the grid with the route marked 'x'.

The command fails when no route exists.`,
		Args: cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindFlags(cmd, gridFlagKeys)
			bindFlags(cmd, map[string]string{colorFlagName: colorKey})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			grid, err := loadGrid()
			if err != nil {
				return err
			}
			start, goal, err := endpoints(grid)
			if err != nil {
				return err
			}

			result, err := astar.Search(grid, start, goal, astar.WithLogger(slog.Default()))
			if err != nil {
				slog.Info("no route", slog.String("start", start.String()), slog.String("goal", goal.String()))
				return fmt.Errorf("solve %v -> %v: %w", start, goal, err)
			}
			if verify {
				if err := internal.ValidatePath(grid, result.Path, start, goal); err != nil {
					return err
				}
			}

			if viper.GetBool(colorKey) {
				fmt.Fprint(cmd.OutOrStdout(), board.RenderStyled(grid, result.Path, start, goal, board.DefaultStyles()))
			} else {
				fmt.Fprint(cmd.OutOrStdout(), board.Render(grid, result.Path))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "route %v -> %v: %d steps, %d nodes expanded\n", start, goal, result.Steps, result.ExpandedNodes)
			slog.Info("route found",
				slog.Int("steps", result.Steps),
				slog.Int("expanded", result.ExpandedNodes))
			return nil
		},
	}

	addGridFlags(cmd)
	cmd.Flags().Bool(colorFlagName, viper.GetBool(colorKey), "colour the board")
	cmd.Flags().BoolVar(&verify, verifyFlagName, false, "check the route against the grid before printing")

	return cmd
}
