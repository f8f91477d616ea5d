package astar

import (
	"errors"
	"fmt"
	"math"
)

// Blocked is the cell cost that marks a wall. Any other cost is passable.
const Blocked = 1

// ErrInvalidGrid is returned when grid dimensions and cell data disagree.
var ErrInvalidGrid = errors.New("invalid grid")

// Grid is the read-only view the search consults.
//
// Cost is only called for points where InBounds is true.
type Grid interface {
	Width() int
	Height() int
	InBounds(p Point) bool
	Cost(p Point) int
}

// CostGrid is a Grid over a row-major slice of cell costs.
// It borrows the slice; callers must not mutate it while searches run.
type CostGrid struct {
	width  int
	height int
	cells  []int
}

// NewCostGrid wraps cells, which must hold width*height values in row-major order.
func NewCostGrid(width, height int, cells []int) (*CostGrid, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrInvalidGrid, len(cells), width, height)
	}
	return &CostGrid{width: width, height: height, cells: cells}, nil
}

// NewEmptyGrid allocates a width*height grid with every cell passable.
func NewEmptyGrid(width, height int) (*CostGrid, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	return NewCostGrid(width, height, make([]int, width*height))
}

// checkDimensions rejects non-positive sizes and sizes whose cell count overflows int.
func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidGrid, width, height)
	}
	if height > math.MaxInt/width {
		return fmt.Errorf("%w: %dx%d cells overflow", ErrInvalidGrid, width, height)
	}
	return nil
}

func (g *CostGrid) Width() int  { return g.width }
func (g *CostGrid) Height() int { return g.height }

// InBounds reports whether p lies inside the grid.
func (g *CostGrid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Cost returns the stored cost of p. It panics when p is out of bounds.
func (g *CostGrid) Cost(p Point) int {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("astar: cost of %v outside %dx%d grid", p, g.width, g.height))
	}
	return g.cells[p.Y*g.width+p.X]
}

// Blocked reports whether p is a wall.
func (g *CostGrid) Blocked(p Point) bool { return g.Cost(p) == Blocked }

// Set stores cost at p. It exists for grid builders; searches never call it.
func (g *CostGrid) Set(p Point, cost int) {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("astar: set %v outside %dx%d grid", p, g.width, g.height))
	}
	g.cells[p.Y*g.width+p.X] = cost
}

// Cells returns the backing row-major slice.
func (g *CostGrid) Cells() []int { return g.cells }
