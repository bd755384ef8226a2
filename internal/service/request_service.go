package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/grade-request-portal/internal/models"
	"github.com/noah-isme/grade-request-portal/internal/validation"
	"github.com/noah-isme/grade-request-portal/pkg/database"
	appErrors "github.com/noah-isme/grade-request-portal/pkg/errors"
	"github.com/noah-isme/grade-request-portal/pkg/session"
)

type gradeRequestRepository interface {
	Create(ctx context.Context, req *models.GradeRequest) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]models.GradeRequest, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}

// RequestService handles grade-correction submissions for the signed-in student.
type RequestService struct {
	repo      gradeRequestRepository
	validator *validation.Validator
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewRequestService constructs a RequestService.
func NewRequestService(repo gradeRequestRepository, validate *validation.Validator, metrics *MetricsService, logger *zap.Logger) *RequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.Default()
	}
	return &RequestService{repo: repo, validator: validate, metrics: metrics, logger: logger}
}

// Submit stores a request owned by the session user. The name and matricule
// are taken from the session regardless of what the form carried.
func (s *RequestService) Submit(ctx context.Context, owner session.Payload, req models.SubmitRequest) (*models.GradeRequest, error) {
	req.AllName = owner.FullName()
	req.Matricule = owner.Matricule
	req.State = false
	req.Cycle = strings.TrimSpace(req.Cycle)
	req.CourseUnit = strings.TrimSpace(req.CourseUnit)
	if req.Comment != nil {
		trimmed := strings.TrimSpace(*req.Comment)
		if trimmed == "" {
			req.Comment = nil
		} else {
			req.Comment = &trimmed
		}
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, validation.AppError(err)
	}

	record := &models.GradeRequest{
		UserID:                owner.UserID,
		AllName:               req.AllName,
		Matricule:             req.Matricule,
		Cycle:                 req.Cycle,
		Level:                 req.Level,
		CourseUnit:            req.CourseUnit,
		NoteExam:              req.NoteExam,
		NoteCC:                req.NoteCC,
		NoteTP:                req.NoteTP,
		NoteTPE:               req.NoteTPE,
		Other:                 req.Other,
		Comment:               req.Comment,
		JustificationProvided: req.JustificationProvided,
	}
	if _, err := s.repo.Create(ctx, record); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account no longer exists")
		}
		s.logger.Error("failed to store grade request", zap.Int64("user_id", owner.UserID), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to store request")
	}

	s.metrics.RecordSubmission()
	s.logger.Info("grade request submitted", zap.Int64("user_id", owner.UserID), zap.Int64("request_id", record.ID))
	return record, nil
}

// ListMine returns the owner's requests, newest first.
func (s *RequestService) ListMine(ctx context.Context, owner session.Payload) ([]models.GradeRequest, error) {
	list, err := s.repo.ListByUser(ctx, owner.UserID)
	if err != nil {
		s.logger.Error("failed to list grade requests", zap.Int64("user_id", owner.UserID), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load requests")
	}
	return list, nil
}

// CountMine returns how many requests the owner has submitted.
func (s *RequestService) CountMine(ctx context.Context, owner session.Payload) (int, error) {
	n, err := s.repo.CountByUser(ctx, owner.UserID)
	if err != nil {
		s.logger.Error("failed to count grade requests", zap.Int64("user_id", owner.UserID), zap.Error(err))
		return 0, appErrors.Internal(err, "failed to count requests")
	}
	return n, nil
}
