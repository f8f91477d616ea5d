// Package cli provides the root command and CLI setup for astar.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	astar "github.com/arcanis/astar-wasm"
	"github.com/arcanis/astar-wasm/internal/gridfile"
	"github.com/arcanis/astar-wasm/internal/maze"
)

const rootLongDescription = `astar finds routes across grids of passable and blocked cells.

Grids are read from JSON, YAML or text map files, or generated as seeded mazes.
In every grid a cell cost of 1 is a wall and any other cost is passable.`

func newRootCmd() *cobra.Command {
	var (
		logFile string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:           "astar",
		Short:         "Grid pathfinding tool",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFile, verbose || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&logFile, logFileFlagName, "", "log file path (default from log.filename)")
	cmd.PersistentFlags().BoolVarP(&verbose, verboseFlagName, "v", false, "log at debug level")

	return cmd
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// gridFlagKeys maps the flags added by addGridFlags to their config keys.
var gridFlagKeys = map[string]string{
	gridFlagName:       gridKey,
	mazeWidthFlagName:  mazeWidthKey,
	mazeHeightFlagName: mazeHeightKey,
	seedFlagName:       mazeSeedKey,
	startFlagName:      startKey,
	goalFlagName:       goalKey,
}

// addGridFlags registers the flags shared by commands that need a grid.
func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(gridFlagName, "g", viper.GetString(gridKey), "grid file (.json, .jsonc, .yaml, .txt); a maze is generated when empty")
	addMazeFlags(cmd)
	cmd.Flags().String(startFlagName, viper.GetString(startKey), "start cell as X,Y (default top-left corridor)")
	cmd.Flags().String(goalFlagName, viper.GetString(goalKey), "goal cell as X,Y (default bottom-right corridor)")
}

func addMazeFlags(cmd *cobra.Command) {
	cmd.Flags().Int(mazeWidthFlagName, viper.GetInt(mazeWidthKey), "generated maze width (odd, >= 3)")
	cmd.Flags().Int(mazeHeightFlagName, viper.GetInt(mazeHeightKey), "generated maze height (odd, >= 3)")
	cmd.Flags().Uint64(seedFlagName, viper.GetUint64(mazeSeedKey), "generated maze seed")
}

// bindFlags binds the flags of the command about to run. Several commands
// share flag names, so binding happens at run time rather than at construction.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for name, key := range keys {
		bindFlagToConfig(cmd.Flags().Lookup(name), key)
	}
}

// loadGrid reads the configured grid file or generates the configured maze.
func loadGrid() (*astar.CostGrid, error) {
	if path := viper.GetString(gridKey); path != "" {
		return gridfile.Load(path)
	}
	return maze.Generate(viper.GetInt(mazeWidthKey), viper.GetInt(mazeHeightKey), viper.GetUint64(mazeSeedKey))
}

// endpoints resolves start and goal, defaulting to the maze corners.
func endpoints(grid astar.Grid) (astar.Point, astar.Point, error) {
	start, goal := maze.Corners(grid)
	if value := viper.GetString(startKey); value != "" {
		p, err := parsePoint(value)
		if err != nil {
			return astar.Point{}, astar.Point{}, fmt.Errorf("--%s: %w", startFlagName, err)
		}
		start = p
	}
	if value := viper.GetString(goalKey); value != "" {
		p, err := parsePoint(value)
		if err != nil {
			return astar.Point{}, astar.Point{}, fmt.Errorf("--%s: %w", goalFlagName, err)
		}
		goal = p
	}
	return start, goal, nil
}

// newCommandTree assembles the root command with every subcommand. Flag
// defaults are read from viper, so it must run after the config init.
func newCommandTree() *cobra.Command {
	cmd := newRootCmd()
	cmd.AddCommand(
		newSolveCmd(),
		newMazeCmd(),
		newBenchCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return cmd
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	err := newCommandTree().Execute()
	if err != nil {
		os.Exit(1)
	}
}
