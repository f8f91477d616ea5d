package astar

import "log/slog"

// engine owns the registry and grid for the duration of one search.
type engine struct {
	grid     Grid
	start    Point
	goal     Point
	registry *registry
	logger   *slog.Logger

	expanded int
	done     bool
	found    bool
}

func newEngine(grid Grid, start, goal Point, logger *slog.Logger) *engine {
	e := &engine{
		grid:     grid,
		start:    start,
		goal:     goal,
		registry: newRegistry(),
		logger:   logger,
	}
	// The start parent is a sentinel; path building stops at start before reading it.
	e.registry.open.PushBack(Node{Position: start, Parent: Point{}, G: 0, H: e.heuristic(start)})
	return e
}

// heuristic is the squared Euclidean distance to the goal.
func (e *engine) heuristic(p Point) int {
	dx := e.goal.X - p.X
	dy := e.goal.Y - p.Y
	return dx*dx + dy*dy
}

func (e *engine) run() {
	for !e.done {
		e.step()
	}
}

// step expands the oldest pending node and returns it.
func (e *engine) step() Node {
	current, ok := e.registry.open.PopFront()
	if !ok {
		e.done = true
		return Node{}
	}
	e.registry.closed.PushBack(current)
	e.expanded++

	if e.expand(current) {
		e.done = true
		e.found = true
		e.logger.Debug("goal reached",
			slog.String("from", current.Position.String()),
			slog.Int("expanded", e.expanded))
		return current
	}
	if e.registry.open.Len() == 0 {
		e.done = true
	}
	return current
}

// expand queues the passable neighbors of current. It reports true as soon as a
// neighbor is the goal, without looking at the remaining offsets.
func (e *engine) expand(current Node) bool {
	for _, offset := range Offsets {
		neighbor := current.Position.Add(offset)
		if neighbor == e.goal {
			return true
		}
		if !e.grid.InBounds(neighbor) || e.grid.Cost(neighbor) == Blocked {
			continue
		}

		g := current.G + 1
		h := e.heuristic(neighbor)
		if !e.registry.admit(neighbor, g+h) {
			e.logger.Debug("neighbor rejected",
				slog.String("at", neighbor.String()),
				slog.Int("f", g+h))
			continue
		}
		e.registry.open.PushBack(Node{Position: neighbor, Parent: current.Position, G: g, H: h})
	}
	return false
}
