package repository

import (
	"context"
	"database/sql"
	"iter"
	"time"
)

// queryRows returns a lazy sequence over the rows of q. The query runs when
// the sequence is ranged over and the rows are closed when ranging stops, so
// the sequence can be consumed any number of times.
func queryRows[T any](ctx context.Context, db *sql.DB, scan func(rowScanner) (T, error), q string, args ...any) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		rows, err := db.QueryContext(ctx, q, args...)
		if err != nil {
			yield(zero, err)
			return
		}
		defer rows.Close()
		for rows.Next() {
			v, err := scan(rows)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, err)
		}
	}
}

// Collect drains a sequence into a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func groupCounts(ctx context.Context, db *sql.DB, q string) ([]GroupCount, error) {
	scan := func(s rowScanner) (GroupCount, error) {
		var g GroupCount
		err := s.Scan(&g.Key, &g.Count)
		return g, err
	}
	return Collect(queryRows(ctx, db, scan, q))
}
