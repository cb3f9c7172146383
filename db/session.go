package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Session executes SQL written with "?" placeholders.
type Session interface {
	// Query executes a statement and returns every row as a column name to value map
	Query(ctx context.Context, query string, values ...interface{}) ([]map[string]interface{}, error)

	Close() error
}

type SqlxSession struct {
	ref *sqlx.DB
}

func (session *SqlxSession) Query(ctx context.Context, query string, values ...interface{}) ([]map[string]interface{}, error) {
	rows, err := session.ref.QueryxContext(ctx, session.ref.Rebind(query), values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]map[string]interface{}, 0)
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("unable to scan row: %w", err)
		}
		items = append(items, normalizeRow(row))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (session *SqlxSession) Close() error {
	return session.ref.Close()
}

// normalizeRow converts driver byte slices (text, numeric and uuid columns for lib/pq)
// into strings so rows can be encoded as JSON.
func normalizeRow(row map[string]interface{}) map[string]interface{} {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
	return row
}
