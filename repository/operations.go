package repository

import (
	"context"
	"strings"
	"time"
)

type operations interface {
	RunSelect(ctx context.Context, query string) ([]map[string]interface{}, error)
	RunMutation(ctx context.Context, query string) (int64, error)
}

const queryTimeout = 3 * time.Second

// RunSelect executes a read-only query and returns its rows as an ordered
// slice of column-name to value mappings. The connection is checked out
// of the pool for the duration of this call only and released on every
// exit path; a failed release is deliberately ignored because the result
// has already been computed by then.
func (r *repository) RunSelect(ctx context.Context, query string) ([]map[string]interface{}, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = conn.Close()
	}()
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	results := []map[string]interface{}{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		row := make(map[string]interface{}, len(columns))
		for i, column := range columns {
			value := values[i]
			if b, ok := value.([]byte); ok {
				value = string(b)
			}
			row[column] = value
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// RunMutation executes an INSERT, UPDATE or DELETE statement and returns
// the number of affected rows.
func (r *repository) RunMutation(ctx context.Context, query string) (int64, error) {
	if strings.TrimSpace(query) == "" {
		return 0, ErrEmptyQuery
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = conn.Close()
	}()
	result, err := conn.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
