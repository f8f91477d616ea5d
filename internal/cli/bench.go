package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	astar "github.com/arcanis/astar-wasm"
)

// benchStats summarises repeated searches of one query.
type benchStats struct {
	cycles   int
	steps    int
	expanded int
	total    time.Duration
	fastest  time.Duration
	slowest  time.Duration
	batch    time.Duration
	parallel int
}

func (s benchStats) average() time.Duration {
	if s.cycles == 0 {
		return 0
	}
	return s.total / time.Duration(s.cycles)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time repeated searches over one grid",
		Long: `Time repeated searches between the same endpoints.

By default a 151x151 maze with seed 42 is searched corner to corner 100 times.
With --parallel above 1 the same number of searches is also run as one batch
across that many workers.`,
		Args: cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindFlags(cmd, gridFlagKeys)
			bindFlags(cmd, map[string]string{
				cyclesFlagName:   benchCyclesKey,
				parallelFlagName: benchParallelKey,
			})
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

			stats, err := runBench(cmd.Context(), grid, astar.Query{Start: start, Goal: goal},
				viper.GetInt(benchCyclesKey), viper.GetInt(benchParallelKey))
			if err != nil {
				return err
			}
			slog.Info("bench finished",
				slog.Int("cycles", stats.cycles),
				slog.Duration("average", stats.average()))

			fmt.Fprint(cmd.OutOrStdout(), renderBenchTable(grid, stats))
			return nil
		},
	}

	addGridFlags(cmd)
	cmd.Flags().IntP(cyclesFlagName, "n", viper.GetInt(benchCyclesKey), "number of searches to time")
	cmd.Flags().IntP(parallelFlagName, "p", viper.GetInt(benchParallelKey), "workers for the batch run (1 skips it)")

	return cmd
}

func runBench(ctx context.Context, grid astar.Grid, query astar.Query, cycles, parallel int) (benchStats, error) {
	if cycles < 1 {
		return benchStats{}, fmt.Errorf("cycles must be positive, got %d", cycles)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	stats := benchStats{cycles: cycles, parallel: parallel}
	for i := range cycles {
		began := time.Now()
		result, err := astar.Search(grid, query.Start, query.Goal)
		elapsed := time.Since(began)
		if err != nil {
			return benchStats{}, fmt.Errorf("bench %v -> %v: %w", query.Start, query.Goal, err)
		}

		stats.total += elapsed
		if i == 0 || elapsed < stats.fastest {
			stats.fastest = elapsed
		}
		if elapsed > stats.slowest {
			stats.slowest = elapsed
		}
		stats.steps = result.Steps
		stats.expanded = result.ExpandedNodes
	}

	if parallel > 1 {
		queries := make([]astar.Query, cycles)
		for i := range queries {
			queries[i] = query
		}
		began := time.Now()
		if _, err := astar.SearchAll(ctx, grid, queries, astar.WithWorkers(parallel)); err != nil {
			return benchStats{}, err
		}
		stats.batch = time.Since(began)
	}

	return stats, nil
}

func renderBenchTable(grid astar.Grid, stats benchStats) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	table.Append([]string{"Grid", fmt.Sprintf("%dx%d", grid.Width(), grid.Height())})
	table.Append([]string{"Cycles", fmt.Sprintf("%d", stats.cycles)})
	table.Append([]string{"Route steps", fmt.Sprintf("%d", stats.steps)})
	table.Append([]string{"Nodes expanded", fmt.Sprintf("%d", stats.expanded)})
	table.Append([]string{"Average", stats.average().String()})
	table.Append([]string{"Fastest", stats.fastest.String()})
	table.Append([]string{"Slowest", stats.slowest.String()})
	if stats.batch > 0 {
		table.Append([]string{fmt.Sprintf("Batch (%d workers)", stats.parallel), stats.batch.String()})
	}

	table.Render()

	return tableBuffer.String()
}
