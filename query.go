package sidebot

import "context"

// Querier runs read-only SQL against the dataset's "tips" table.
type Querier interface {
	Query(ctx context.Context, query string) (QueryResult, error)
}

// QueryResult is a query's column names and rows rendered as strings.
// NULL values are rendered as "NULL". Truncated is set when the query
// produced more rows than were returned.
type QueryResult struct {
	Columns   []string
	Rows      [][]string
	Truncated bool
}
