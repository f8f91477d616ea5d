package server

import astar "github.com/arcanis/astar-wasm"

// SearchRequest carries a full grid and the endpoints to connect.
type SearchRequest struct {
	Width  int         `json:"width" binding:"required,gt=0"`
	Height int         `json:"height" binding:"required,gt=0"`
	Cells  []int       `json:"cells" binding:"required"`
	Start  astar.Point `json:"start"`
	Goal   astar.Point `json:"goal"`
}

// SearchResponse is the outcome of POST /v1/search.
type SearchResponse struct {
	Found    bool          `json:"found"`
	Path     []astar.Point `json:"path,omitempty"`
	Steps    int           `json:"steps"`
	Expanded int           `json:"expanded"`
	Error    string        `json:"error,omitempty"`
}

// MaxSessionSide bounds the width and height of a session grid.
const MaxSessionSide = 1025

// SessionRequest opens a step-by-step session. Without Cells the grid is a
// maze generated from Seed. Start and goal default to the maze corners.
// Width and height are capped at MaxSessionSide.
type SessionRequest struct {
	Width  int          `json:"width" binding:"required,gt=0,lte=1025"`
	Height int          `json:"height" binding:"required,gt=0,lte=1025"`
	Seed   *uint64      `json:"seed"`
	Cells  []int        `json:"cells"`
	Start  *astar.Point `json:"start"`
	Goal   *astar.Point `json:"goal"`
}

// SessionResponse identifies a created session.
type SessionResponse struct {
	ID     string      `json:"id"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Start  astar.Point `json:"start"`
	Goal   astar.Point `json:"goal"`
}

// SnapshotResponse is one step of a session.
type SnapshotResponse struct {
	Step    int           `json:"step"`
	Current astar.Point   `json:"current"`
	Open    []astar.Point `json:"open,omitempty"`
	Closed  []astar.Point `json:"closed,omitempty"`
	Done    bool          `json:"done"`
	Found   bool          `json:"found"`
	Path    []astar.Point `json:"path,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func newSnapshotResponse(snapshot astar.StepSnapshot) SnapshotResponse {
	response := SnapshotResponse{
		Step:    snapshot.StepIndex,
		Current: snapshot.Current,
		Open:    snapshot.Open,
		Closed:  snapshot.Closed,
		Done:    snapshot.Done,
		Found:   snapshot.Found,
		Path:    snapshot.Path,
	}
	if snapshot.Err != nil {
		response.Error = snapshot.Err.Error()
	}
	return response
}
