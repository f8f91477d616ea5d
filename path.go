package astar

import "slices"

// buildPath rebuilds the route from the expanded nodes.
//
// The newest expanded node is the one that touched the goal. Walking the expanded
// nodes from newest to oldest, every node whose position is the parent being looked
// for joins the path, until the chain reaches start.
func buildPath(closed *nodeList, start, goal Point) []Point {
	last, ok := closed.Back()
	if !ok {
		return nil
	}

	reversed := []Point{goal, last.Position}
	parent := last.Parent
	if last.Position != start {
		closed.Backward(func(n Node) bool {
			if n.Position == parent && n.Position != start {
				reversed = append(reversed, n.Position)
				parent = n.Parent
			}
			return true
		})
		reversed = append(reversed, start)
	}

	slices.Reverse(reversed)
	return reversed
}
