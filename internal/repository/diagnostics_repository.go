package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// DiagnosticsRepository runs the connectivity checks behind the health endpoints.
type DiagnosticsRepository struct {
	instrumented
	db *sqlx.DB
}

// NewDiagnosticsRepository constructs the repository.
func NewDiagnosticsRepository(db *sqlx.DB) *DiagnosticsRepository {
	return &DiagnosticsRepository{db: db}
}

// Ping issues a trivial round trip.
func (r *DiagnosticsRepository) Ping(ctx context.Context) error {
	defer r.observe("diagnostics.ping", time.Now())
	var one int
	if err := r.db.GetContext(ctx, &one, `SELECT 1`); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Version returns the server version string.
func (r *DiagnosticsRepository) Version(ctx context.Context) (string, error) {
	defer r.observe("diagnostics.version", time.Now())
	var version string
	if err := r.db.GetContext(ctx, &version, `SELECT VERSION()`); err != nil {
		return "", fmt.Errorf("select version: %w", err)
	}
	return version, nil
}

// WriteProbe writes and discards a row in a session temporary table. It runs
// on a single pooled connection since temporary tables are per connection.
func (r *DiagnosticsRepository) WriteProbe(ctx context.Context) error {
	defer r.observe("diagnostics.write_probe", time.Now())
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("write probe: acquire connection: %w", err)
	}
	defer conn.Close()

	stmts := []string{
		`CREATE TEMPORARY TABLE IF NOT EXISTS portal_write_probe (id INT NOT NULL)`,
		`INSERT INTO portal_write_probe (id) VALUES (1)`,
		`DROP TEMPORARY TABLE portal_write_probe`,
	}
	for _, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("write probe: %w", err)
		}
	}
	return nil
}
