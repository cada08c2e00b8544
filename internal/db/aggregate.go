package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Queryer is the read surface the engine needs; *sql.DB and *sql.Tx both
// satisfy it.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// GroupStat is one row of a grouped breakdown. Sum is present only for
// aggregates that request a numeric sum column.
type GroupStat struct {
	Key   string   `json:"key"`
	Count int64    `json:"total"`
	Sum   *float64 `json:"suma_total,omitempty"`
}

// GroupCount runs a grouped COUNT over the same predicate used for listing.
// from is the FROM fragment (table plus any joins), written by the caller.
func GroupCount(ctx context.Context, q Queryer, from string, p *Predicate, groupCol string) ([]GroupStat, error) {
	query := fmt.Sprintf("SELECT %s, COUNT(*) AS total FROM %s %s GROUP BY %s",
		groupCol, from, p.Where(1), groupCol)
	rows, err := q.QueryContext(ctx, query, p.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []GroupStat
	for rows.Next() {
		var s GroupStat
		if err := rows.Scan(&s.Key, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// GroupSum is GroupCount plus SUM over a numeric column, treating NULL as 0.
func GroupSum(ctx context.Context, q Queryer, from string, p *Predicate, groupCol, sumCol string) ([]GroupStat, error) {
	query := fmt.Sprintf("SELECT %s, COUNT(*) AS total, SUM(COALESCE(%s, 0)) AS suma_total FROM %s %s GROUP BY %s",
		groupCol, sumCol, from, p.Where(1), groupCol)
	rows, err := q.QueryContext(ctx, query, p.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []GroupStat
	for rows.Next() {
		var s GroupStat
		var sum float64
		if err := rows.Scan(&s.Key, &s.Count, &sum); err != nil {
			return nil, err
		}
		s.Sum = &sum
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// CountWhere runs the pagination-independent total for a predicate.
func CountWhere(ctx context.Context, q Queryer, from string, p *Predicate) (int, error) {
	var total int
	query := fmt.Sprintf("SELECT COUNT(*) AS total FROM %s %s", from, p.Where(1))
	err := q.QueryRowContext(ctx, query, p.Args()...).Scan(&total)
	return total, err
}

// Parallel runs every fn concurrently and waits for all of them, returning
// the first error observed. Used to issue the page, count and aggregate
// queries of one request against the pool at the same time.
func Parallel(fns ...func() error) error {
	errs := make(chan error, len(fns))
	for _, fn := range fns {
		go func(fn func() error) { errs <- fn() }(fn)
	}
	var first error
	for range fns {
		if err := <-errs; err != nil && first == nil {
			first = err
		}
	}
	return first
}
