// Package astar provides grid pathfinding with a heuristic-guided search.
//
// It exposes three entry points:
//
//   - Search: run the search to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//   - SearchAll: run many independent searches over one shared grid on a worker pool.
//
// The search keeps its pending nodes in a FIFO queue and scores them with the squared
// Euclidean distance to the goal. Nodes are expanded in discovery order, so results are
// reachable routes consistent with the recorded parent links rather than best-first A*
// routes. A cell whose cost is exactly Blocked (1) is a wall; every other cost is passable.
package astar
