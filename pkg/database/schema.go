package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema lists the idempotent DDL applied at startup, in dependency order.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id INT AUTO_INCREMENT PRIMARY KEY,
		matricule VARCHAR(15) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		phone VARCHAR(9) NOT NULL,
		password TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS requests (
		request_id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		all_name VARCHAR(255) NOT NULL,
		matricule VARCHAR(15) NOT NULL,
		cycle VARCHAR(50) NOT NULL,
		level INT NOT NULL,
		nom_code_ue VARCHAR(2048) NOT NULL,
		note_exam BOOLEAN DEFAULT FALSE,
		note_cc BOOLEAN DEFAULT FALSE,
		note_tp BOOLEAN DEFAULT FALSE,
		note_tpe BOOLEAN DEFAULT FALSE,
		autre BOOLEAN DEFAULT FALSE,
		comment TEXT,
		just_p BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_requests_user_created (user_id, created_at),
		FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the users and requests tables when absent.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
