package astar

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Query is one start/goal pair for SearchAll.
type Query struct {
	Start Point
	Goal  Point
}

// Answer pairs a query with its outcome. Err is ErrNoPath (possibly wrapped)
// when no route exists.
type Answer struct {
	Query  Query
	Result Result
	Err    error
}

// SearchAll runs every query against grid using up to NumberOfWorkers goroutines.
// The grid is only read, so one grid is shared by all workers. Answers keep the
// order of queries.
//
// A query that has not started when ctx is cancelled is skipped and SearchAll
// returns ctx.Err(); a running search always completes.
func SearchAll(ctx context.Context, grid Grid, queries []Query, options ...Option) ([]Answer, error) {
	searchOptions := applyOptions(options)
	answers := make([]Answer, len(queries))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(searchOptions.NumberOfWorkers)

	for i, query := range queries {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			result, err := Search(grid, query.Start, query.Goal, WithLogger(searchOptions.Logger))
			answers[i] = Answer{Query: query, Result: result, Err: err}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		searchOptions.Logger.Debug("batch search interrupted", slog.Any("error", err))
		return answers, err
	}
	return answers, nil
}
