package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arcanis/astar-wasm/internal/board"
	"github.com/arcanis/astar-wasm/internal/gridfile"
	"github.com/arcanis/astar-wasm/internal/maze"
)

func newMazeCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "maze",
		Short: "Generate a seeded maze grid",
		Long:  "Generate a maze and write it to --out, or print it as a text map when --out is empty.",
		Args:  cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindFlags(cmd, map[string]string{
				mazeWidthFlagName:  mazeWidthKey,
				mazeHeightFlagName: mazeHeightKey,
				seedFlagName:       mazeSeedKey,
			})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			grid, err := maze.Generate(viper.GetInt(mazeWidthKey), viper.GetInt(mazeHeightKey), viper.GetUint64(mazeSeedKey))
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), board.Render(grid, nil))
				return nil
			}
			if err := gridfile.Save(out, grid); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %dx%d maze to %s\n", grid.Width(), grid.Height(), out)
			return nil
		},
	}

	addMazeFlags(cmd)
	cmd.Flags().StringVarP(&out, outFlagName, "o", "", "output file (.json, .yaml, .txt)")

	return cmd
}
