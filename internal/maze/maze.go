// Package maze fills grids with seeded perfect mazes.
package maze

import (
	"errors"
	"fmt"
	"math/rand/v2"

	astar "github.com/arcanis/astar-wasm"
)

// ErrInvalidSize is returned for dimensions that cannot hold a maze.
var ErrInvalidSize = errors.New("invalid maze size: only odd numbers of at least 3")

type cellPosition struct {
	col int
	row int
}

var directions = [4]cellPosition{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// Generate returns a width x height grid where walls cost astar.Blocked and
// corridors cost 0. Maze cell (col, row) sits at grid point (2*col+1, 2*row+1),
// and the grid border is always wall. The same seed gives the same maze.
func Generate(width, height int, seed uint64) (*astar.CostGrid, error) {
	if width < 3 || height < 3 || width%2 != 1 || height%2 != 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	cells := make([]int, width*height)
	for i := range cells {
		cells[i] = astar.Blocked
	}
	grid, err := astar.NewCostGrid(width, height, cells)
	if err != nil {
		return nil, err
	}

	cols, rows := (width-1)/2, (height-1)/2
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	visited := make([]bool, cols*rows)

	open := func(c cellPosition) { grid.Set(astar.Pt(2*c.col+1, 2*c.row+1), 0) }

	start := cellPosition{}
	visited[0] = true
	open(start)
	stack := []cellPosition{start}

	for len(stack) > 0 {
		cell := stack[len(stack)-1]

		candidates := make([]cellPosition, 0, len(directions))
		for _, d := range directions {
			next := cellPosition{col: cell.col + d.col, row: cell.row + d.row}
			if next.col < 0 || next.col >= cols || next.row < 0 || next.row >= rows {
				continue
			}
			if !visited[next.row*cols+next.col] {
				candidates = append(candidates, next)
			}
		}
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[rng.IntN(len(candidates))]
		visited[next.row*cols+next.col] = true
		// knock down the wall between the two cells
		grid.Set(astar.Pt(cell.col+next.col+1, cell.row+next.row+1), 0)
		open(next)
		stack = append(stack, next)
	}

	return grid, nil
}

// Corners returns the conventional endpoints of a generated maze: the top-left
// and bottom-right corridor cells.
func Corners(grid astar.Grid) (start, goal astar.Point) {
	return astar.Pt(1, 1), astar.Pt(grid.Width()-2, grid.Height()-2)
}
