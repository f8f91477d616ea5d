package astar

// StepSnapshot exposes the per-iteration state of the search.
// Open and Closed list positions in queue order and expansion order.
type StepSnapshot struct {
	Current   Point
	Open      []Point
	Closed    []Point
	Done      bool
	Found     bool
	Path      []Point
	StepIndex int
	Err       error
}

// Stepper runs the same search as Search, one node expansion per Step.
// A Stepper is not safe for concurrent use.
type Stepper struct {
	engine *engine
	start  Point
	goal   Point
	err    error
	path   []Point

	stepCount int
}

// NewStepper creates a stepper positioned before the first expansion.
// Invalid endpoints and start == goal are resolved immediately: the first Step
// reports Done with the same outcome Search would return.
func NewStepper(grid Grid, startNode, goalNode Point, options ...Option) *Stepper {
	opts := applyOptions(options)

	s := &Stepper{start: startNode, goal: goalNode}
	if err := checkEndpoints(grid, startNode, goalNode); err != nil {
		s.err = err
		return s
	}
	if startNode == goalNode {
		s.path = []Point{startNode}
		return s
	}
	s.engine = newEngine(grid, startNode, goalNode, opts.Logger)
	return s
}

// Done reports whether the search has finished.
func (s *Stepper) Done() bool {
	return s.engine == nil || s.engine.done
}

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is done, further calls return the final snapshot again.
func (s *Stepper) Step() StepSnapshot {
	if s.engine == nil {
		return StepSnapshot{
			Current:   s.start,
			Done:      true,
			Found:     s.err == nil,
			Path:      clonePoints(s.path),
			StepIndex: s.stepCount,
			Err:       s.err,
		}
	}
	if s.engine.done {
		return s.snapshot(s.lastExpanded())
	}

	s.stepCount++
	current := s.engine.step()
	if s.engine.found {
		s.path = buildPath(s.engine.registry.closed, s.start, s.goal)
	} else if s.engine.done {
		s.err = ErrNoPath
	}
	return s.snapshot(current.Position)
}

func (s *Stepper) snapshot(current Point) StepSnapshot {
	return StepSnapshot{
		Current:   current,
		Open:      s.engine.registry.open.Positions(),
		Closed:    s.engine.registry.closed.Positions(),
		Done:      s.engine.done,
		Found:     s.engine.found,
		Path:      clonePoints(s.path),
		StepIndex: s.stepCount,
		Err:       s.err,
	}
}

func (s *Stepper) lastExpanded() Point {
	if last, ok := s.engine.registry.closed.Back(); ok {
		return last.Position
	}
	return s.start
}

func clonePoints(points []Point) []Point {
	if points == nil {
		return nil
	}
	c := make([]Point, len(points))
	copy(c, points)
	return c
}
