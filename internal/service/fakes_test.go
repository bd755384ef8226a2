package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/noah-isme/grade-request-portal/internal/models"
)

type fakeUserRepo struct {
	mu        sync.Mutex
	users     []*models.User
	existsErr error
	findErr   error
	createErr error
	countErr  error
	// racedDuplicate makes Create fail as if another request won the insert.
	racedDuplicate bool
}

func (f *fakeUserRepo) ExistsByEmailOrMatricule(ctx context.Context, email, matricule string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, u := range f.users {
		if u.Email == email || u.Matricule == matricule {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.Email == login || u.Matricule == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return 0, f.createErr
	}
	if f.racedDuplicate {
		return 0, &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}
	user.ID = int64(len(f.users) + 1)
	cp := *user
	f.users = append(f.users, &cp)
	return user.ID, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.users), nil
}

type fakeRequestRepo struct {
	mu        sync.Mutex
	rows      []models.GradeRequest
	createErr error
	listErr   error
	clock     time.Time
}

func (f *fakeRequestRepo) Create(ctx context.Context, req *models.GradeRequest) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return 0, f.createErr
	}
	req.ID = int64(len(f.rows) + 1)
	f.clock = f.clock.Add(time.Second)
	req.CreatedAt = f.clock
	f.rows = append(f.rows, *req)
	return req.ID, nil
}

func (f *fakeRequestRepo) ListByUser(ctx context.Context, userID int64) ([]models.GradeRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.GradeRequest, 0)
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeRequestRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	list, err := f.ListByUser(ctx, userID)
	return len(list), err
}

func (f *fakeRequestRepo) Count(ctx context.Context) (int, error) {
	if f.listErr != nil {
		return 0, f.listErr
	}
	return len(f.rows), nil
}

type fakeAttempts struct {
	failures map[string]int
	err      error
}

func (f *fakeAttempts) Failures(ctx context.Context, login string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.failures[login], nil
}

func (f *fakeAttempts) RecordFailure(ctx context.Context, login string, window time.Duration) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.failures == nil {
		f.failures = map[string]int{}
	}
	f.failures[login]++
	return f.failures[login], nil
}

func (f *fakeAttempts) Reset(ctx context.Context, login string) error {
	delete(f.failures, login)
	return f.err
}

// plainHasher stands in for Argon2 where hashing cost is irrelevant.
type plainHasher struct {
	err error
}

func (h plainHasher) Hash(ctx context.Context, pw string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "plain$" + pw, nil
}

func (h plainHasher) Verify(ctx context.Context, pw, encoded string) (bool, error) {
	if h.err != nil {
		return false, h.err
	}
	return strings.TrimPrefix(encoded, "plain$") == pw && strings.HasPrefix(encoded, "plain$"), nil
}

// recordingHasher remembers every hash Verify was asked to check.
type recordingHasher struct {
	plainHasher
	verified []string
}

func (h *recordingHasher) Verify(ctx context.Context, pw, encoded string) (bool, error) {
	h.verified = append(h.verified, encoded)
	return h.plainHasher.Verify(ctx, pw, encoded)
}

var errBackendDown = errors.New("connection refused")

func newUserFixture() *models.User {
	return &models.User{Matricule: "AB12", Name: "Awa", LastName: "Diop", Email: "awa@univ.sn", Phone: "612345678", PasswordHash: "plain$s3cret"}
}
