package repository

import (
	"context"
	"database/sql"
)

type Repository interface {
	operations
	schema
	Ping(ctx context.Context) error
}

// repository defines the app's repository layer.
type repository struct {
	db *sql.DB
}

// New creates a new instance of Repository.
func New(db *sql.DB) *repository {
	return &repository{db: db}
}

// Ping verifies that the database is reachable.
func (r *repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
