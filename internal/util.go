package internal

import (
	"errors"
	"fmt"

	astar "github.com/arcanis/astar-wasm"
)

// ErrInvalidPath is returned by ValidatePath for a route that breaks a path law.
var ErrInvalidPath = errors.New("invalid path")

// ValidatePath checks that path runs from start to goal, that consecutive points
// are one unit offset apart, and that every point before the goal is an in-bounds
// passable cell. The goal cell itself is not cost-checked.
func ValidatePath(grid astar.Grid, path []astar.Point, start, goal astar.Point) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	if path[0] != start {
		return fmt.Errorf("%w: begins at %v, want %v", ErrInvalidPath, path[0], start)
	}
	if path[len(path)-1] != goal {
		return fmt.Errorf("%w: ends at %v, want %v", ErrInvalidPath, path[len(path)-1], goal)
	}

	for i, point := range path {
		if !grid.InBounds(point) {
			return fmt.Errorf("%w: step %d %v out of bounds", ErrInvalidPath, i, point)
		}
		if i > 0 && !astar.Adjacent(path[i-1], point) {
			return fmt.Errorf("%w: step %d jumps from %v to %v", ErrInvalidPath, i, path[i-1], point)
		}
		// start is never cost-checked by the search either
		if i > 0 && i < len(path)-1 && grid.Cost(point) == astar.Blocked {
			return fmt.Errorf("%w: step %d %v is blocked", ErrInvalidPath, i, point)
		}
	}
	return nil
}
