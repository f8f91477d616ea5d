package astar

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

var (
	// ErrNoPath is returned when the search exhausts its open set, or when the
	// endpoints can never be connected.
	ErrNoPath = errors.New("no path found")
	// ErrOutOfBounds accompanies ErrNoPath when start or goal lies outside the grid.
	ErrOutOfBounds = errors.New("point out of bounds")
)

// Result contains the outcome of a search
type Result struct {
	Path          []Point
	Steps         int
	ExpandedNodes int
	Found         bool
}

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers int
	Logger          *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many goroutines SearchAll may run at once.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithLogger routes expansion tracing to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.New(slog.DiscardHandler)
	}
	return searchOptions
}

// Search finds a route from start to goal over grid.
//
// The returned path starts at start, ends at goal and moves one unit offset per
// step. The goal cell's own cost is never consulted. When start equals goal the
// path is the single start point. Endpoints outside the grid are rejected with an
// error matching both ErrNoPath and ErrOutOfBounds.
func Search(grid Grid, start, goal Point, options ...Option) (Result, error) {
	searchOptions := applyOptions(options)

	if err := checkEndpoints(grid, start, goal); err != nil {
		return Result{}, err
	}
	if start == goal {
		return Result{Path: []Point{start}, Found: true}, nil
	}

	engine := newEngine(grid, start, goal, searchOptions.Logger)
	engine.run()

	if !engine.found {
		searchOptions.Logger.Debug("search exhausted",
			slog.String("start", start.String()),
			slog.String("goal", goal.String()),
			slog.Int("expanded", engine.expanded))
		return Result{ExpandedNodes: engine.expanded}, ErrNoPath
	}

	path := buildPath(engine.registry.closed, start, goal)
	return Result{
		Path:          path,
		Steps:         len(path) - 1,
		ExpandedNodes: engine.expanded,
		Found:         true,
	}, nil
}

// FindPath is Search without diagnostics: it returns the path and whether one exists.
func FindPath(grid Grid, start, goal Point) ([]Point, bool) {
	result, err := Search(grid, start, goal)
	if err != nil {
		return nil, false
	}
	return result.Path, true
}

func checkEndpoints(grid Grid, start, goal Point) error {
	if !grid.InBounds(start) {
		return fmt.Errorf("%w: %w: start %v outside %dx%d grid", ErrNoPath, ErrOutOfBounds, start, grid.Width(), grid.Height())
	}
	if !grid.InBounds(goal) {
		return fmt.Errorf("%w: %w: goal %v outside %dx%d grid", ErrNoPath, ErrOutOfBounds, goal, grid.Width(), grid.Height())
	}
	return nil
}
