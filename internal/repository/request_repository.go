package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/grade-request-portal/internal/models"
)

var requestColumns = []string{
	"request_id", "user_id", "all_name", "matricule", "cycle", "level", "nom_code_ue",
	"note_exam", "note_cc", "note_tp", "note_tpe", "autre", "comment", "just_p", "created_at",
}

// RequestRepository persists grade-correction requests.
type RequestRepository struct {
	instrumented
	db *sqlx.DB
	sb squirrel.StatementBuilderType
}

// NewRequestRepository creates a repository using MySQL placeholders.
func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Create inserts req. The user_id foreign key is enforced by the database.
func (r *RequestRepository) Create(ctx context.Context, req *models.GradeRequest) (int64, error) {
	defer r.observe("requests.create", time.Now())
	query, args, err := r.sb.Insert("requests").
		Columns("user_id", "all_name", "matricule", "cycle", "level", "nom_code_ue",
			"note_exam", "note_cc", "note_tp", "note_tpe", "autre", "comment", "just_p").
		Values(req.UserID, req.AllName, req.Matricule, req.Cycle, req.Level, req.CourseUnit,
			req.NoteExam, req.NoteCC, req.NoteTP, req.NoteTPE, req.Other, req.Comment, req.JustificationProvided).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert request: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create request: last insert id: %w", err)
	}
	req.ID = id
	return id, nil
}

// ListByUser returns the user's requests, newest first.
func (r *RequestRepository) ListByUser(ctx context.Context, userID int64) ([]models.GradeRequest, error) {
	defer r.observe("requests.list_by_user", time.Now())
	query, args, err := r.sb.Select(requestColumns...).
		From("requests").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "request_id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list requests: %w", err)
	}
	requests := make([]models.GradeRequest, 0)
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

// CountByUser returns how many requests userID submitted.
func (r *RequestRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx, "requests.count_by_user", squirrel.Eq{"user_id": userID})
}

// Count returns the total number of requests.
func (r *RequestRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, "requests.count", nil)
}

func (r *RequestRepository) count(ctx context.Context, label string, where squirrel.Sqlizer) (int, error) {
	defer r.observe(label, time.Now())
	builder := r.sb.Select("COUNT(*)").From("requests")
	if where != nil {
		builder = builder.Where(where)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count requests: %w", err)
	}
	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return n, nil
}
