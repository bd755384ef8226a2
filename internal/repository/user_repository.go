package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/grade-request-portal/internal/models"
)

const userColumns = `user_id, matricule, name, last_name, email, phone, password, created_at`

// UserRepository provides database access for registered students.
type UserRepository struct {
	instrumented
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ExistsByEmailOrMatricule reports whether either identifier is taken.
func (r *UserRepository) ExistsByEmailOrMatricule(ctx context.Context, email, matricule string) (bool, error) {
	defer r.observe("users.exists", time.Now())
	const query = `SELECT COUNT(*) FROM users WHERE email = ? OR matricule = ?`
	var n int
	if err := r.db.GetContext(ctx, &n, query, email, matricule); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return n > 0, nil
}

// FindByLogin returns the user whose email or matricule equals login.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	defer r.observe("users.find_by_login", time.Now())
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = ? OR matricule = ? LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, login, login); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by login: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	defer r.observe("users.find_by_id", time.Now())
	const query = `SELECT ` + userColumns + ` FROM users WHERE user_id = ? LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// Create inserts the user and stores the generated id on it.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	defer r.observe("users.create", time.Now())
	const query = `INSERT INTO users (matricule, name, last_name, email, phone, password) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Matricule, user.Name, user.LastName, user.Email, user.Phone, user.PasswordHash)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create user: last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

// Count returns the number of registered users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	defer r.observe("users.count", time.Now())
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
