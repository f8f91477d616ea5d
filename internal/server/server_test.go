package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	astar "github.com/arcanis/astar-wasm"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	srv := New(Config{
		Mode:     gin.TestMode,
		Registry: prometheus.NewRegistry(),
		Logger:   slog.New(slog.DiscardHandler),
	})
	return srv, srv.Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func wallRequest() SearchRequest {
	return SearchRequest{
		Width:  5,
		Height: 5,
		Cells: []int{
			0, 0, 1, 0, 0,
			0, 0, 1, 0, 0,
			0, 0, 1, 0, 0,
			0, 0, 1, 0, 0,
			0, 0, 0, 0, 0,
		},
		Start: astar.Pt(1, 1),
		Goal:  astar.Pt(3, 1),
	}
}

func TestSearchEndpoint_Found(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/v1/search", wallRequest())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Found)
	assert.Equal(t, 8, response.Steps)
	assert.Equal(t, 15, response.Expanded)
	assert.Equal(t, astar.Pt(1, 1), response.Path[0])
	assert.Equal(t, astar.Pt(3, 1), response.Path[len(response.Path)-1])
}

func TestSearchEndpoint_Failures(t *testing.T) {
	_, handler := newTestServer(t)

	t.Run("no path", func(t *testing.T) {
		request := wallRequest()
		request.Cells[21] = 1 // close the bottom row
		request.Cells[22] = 1
		request.Cells[23] = 1
		rec := doJSON(t, handler, http.MethodPost, "/v1/search", request)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), astar.ErrNoPath.Error())
	})

	t.Run("cell count mismatch", func(t *testing.T) {
		request := wallRequest()
		request.Cells = request.Cells[:10]
		rec := doJSON(t, handler, http.MethodPost, "/v1/search", request)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing dimensions", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/v1/search", map[string]any{"cells": []int{0}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("dimensions overflow cell count", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/v1/search", map[string]any{
			"width":  uint64(1) << 32,
			"height": uint64(1) << 32,
			"cells":  []int{},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("start outside grid", func(t *testing.T) {
		request := wallRequest()
		request.Start = astar.Pt(-1, 0)
		rec := doJSON(t, handler, http.MethodPost, "/v1/search", request)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), astar.ErrOutOfBounds.Error())
	})
}

func createSession(t *testing.T, handler http.Handler, body SessionRequest) SessionResponse {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/v1/sessions", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var response SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func TestSessions_StepToCompletion(t *testing.T) {
	_, handler := newTestServer(t)

	request := wallRequest()
	session := createSession(t, handler, SessionRequest{
		Width:  request.Width,
		Height: request.Height,
		Cells:  request.Cells,
		Start:  &request.Start,
		Goal:   &request.Goal,
	})
	_, err := uuid.Parse(session.ID)
	require.NoError(t, err)

	var snapshot SnapshotResponse
	for i := 0; i < 100 && !snapshot.Done; i++ {
		rec := doJSON(t, handler, http.MethodPost, "/v1/sessions/"+session.ID+"/step", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	}
	require.True(t, snapshot.Done)
	assert.True(t, snapshot.Found)
	assert.Equal(t, 15, snapshot.Step)
	assert.Len(t, snapshot.Path, 9)

	rec := doJSON(t, handler, http.MethodGet, "/v1/sessions/"+session.ID+"/board", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "..#..\n.x#x.\n.x#x.\n.x#x.\n.xxx.\n", rec.Body.String())
}

func TestSessions_MazeDefaults(t *testing.T) {
	_, handler := newTestServer(t)
	seed := uint64(9)

	session := createSession(t, handler, SessionRequest{Width: 11, Height: 9, Seed: &seed})
	assert.Equal(t, astar.Pt(1, 1), session.Start)
	assert.Equal(t, astar.Pt(9, 7), session.Goal)

	rec := doJSON(t, handler, http.MethodGet, "/v1/sessions/"+session.ID+"/board", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimSuffix(rec.Body.String(), "\n"), "\n")
	assert.Len(t, lines, 9)
	assert.Equal(t, strings.Repeat("#", 11), lines[0])

	rec = doJSON(t, handler, http.MethodPost, "/v1/sessions", SessionRequest{Width: 10, Height: 9, Seed: &seed})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessions_RejectsOversizeGrid(t *testing.T) {
	_, handler := newTestServer(t)
	seed := uint64(2)

	tests := []SessionRequest{
		{Width: 99999, Height: 99999, Seed: &seed},
		{Width: MaxSessionSide + 2, Height: 5, Seed: &seed},
		{Width: 5, Height: MaxSessionSide + 2, Seed: &seed},
	}
	for _, request := range tests {
		rec := doJSON(t, handler, http.MethodPost, "/v1/sessions", request)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%dx%d", request.Width, request.Height)
	}
}

func TestSessions_EvictsOldest(t *testing.T) {
	srv := New(Config{
		Mode:     gin.TestMode,
		Registry: prometheus.NewRegistry(),
		Logger:   slog.New(slog.DiscardHandler),
		Sessions: 2,
	})
	handler := srv.Handler()
	seed := uint64(4)

	first := createSession(t, handler, SessionRequest{Width: 5, Height: 5, Seed: &seed})
	second := createSession(t, handler, SessionRequest{Width: 5, Height: 5, Seed: &seed})
	third := createSession(t, handler, SessionRequest{Width: 5, Height: 5, Seed: &seed})
	assert.Equal(t, 2, srv.sessions.count())

	rec := doJSON(t, handler, http.MethodPost, "/v1/sessions/"+first.ID+"/step", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	for _, id := range []string{second.ID, third.ID} {
		rec = doJSON(t, handler, http.MethodPost, "/v1/sessions/"+id+"/step", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/v1/sessions/"+second.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	createSession(t, handler, SessionRequest{Width: 5, Height: 5, Seed: &seed})

	rec = doJSON(t, handler, http.MethodPost, "/v1/sessions/"+third.ID+"/step", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "deleting a session frees its slot")

	rec = doJSON(t, handler, http.MethodGet, "/metrics", nil)
	assert.Contains(t, rec.Body.String(), "astar_sessions_active 2")
}

func TestSessions_Lifecycle(t *testing.T) {
	srv, handler := newTestServer(t)
	seed := uint64(1)
	session := createSession(t, handler, SessionRequest{Width: 5, Height: 5, Seed: &seed})

	rec := doJSON(t, handler, http.MethodDelete, "/v1/sessions/"+session.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/v1/sessions/"+session.ID+"/step", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, handler, http.MethodDelete, "/v1/sessions/"+session.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/v1/sessions/not-a-uuid/board", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, err := srv.sessions.get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMetricsEndpoint(t *testing.T) {
	_, handler := newTestServer(t)

	doJSON(t, handler, http.MethodPost, "/v1/search", wallRequest())

	rec := doJSON(t, handler, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `astar_searches_total{outcome="found"} 1`)
	assert.Contains(t, body, "astar_expanded_nodes_count 1")
	assert.Contains(t, body, "astar_sessions_active 0")
}
