package repository

import (
	"context"
	"time"
)

type schema interface {
	InitSchema(ctx context.Context) error
}

// InitSchema creates the books and reservations tables if they do not
// exist yet. Run once at process start.
func (r *repository) InitSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS books (
			id bigserial PRIMARY KEY,
			title text NOT NULL,
			author text NOT NULL,
			isbn text,
			created_at timestamp(0) with time zone NOT NULL DEFAULT NOW(),
			available boolean NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id bigserial PRIMARY KEY,
			book_id bigint NOT NULL REFERENCES books (id),
			user_email text NOT NULL,
			reserved_at timestamp(0) with time zone NOT NULL DEFAULT NOW(),
			renewed_at timestamp(0) with time zone,
			expires_at timestamp(0) with time zone NOT NULL,
			active boolean NOT NULL DEFAULT TRUE,
			CHECK (expires_at > reserved_at)
		)`,
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	for _, statement := range statements {
		if _, err := r.db.ExecContext(ctx, statement); err != nil {
			return err
		}
	}
	return nil
}
