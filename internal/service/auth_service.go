package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/grade-request-portal/internal/models"
	"github.com/noah-isme/grade-request-portal/internal/validation"
	"github.com/noah-isme/grade-request-portal/pkg/database"
	appErrors "github.com/noah-isme/grade-request-portal/pkg/errors"
	"github.com/noah-isme/grade-request-portal/pkg/session"
)

// dummyPasswordHash is verified when no account matches a login so unknown
// logins cost the same Argon2 work as wrong passwords. Its password is unknown.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=3,p=2$fkRZW7KfmO7Hzez4bPGjww$lWE4crrZE7Ek9khLgYHp6TwQrQs6im5rLM8yi5ZfOC0"

type authUserRepository interface {
	ExistsByEmailOrMatricule(ctx context.Context, email, matricule string) (bool, error)
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (int64, error)
}

type loginAttemptStore interface {
	Failures(ctx context.Context, login string) (int, error)
	RecordFailure(ctx context.Context, login string, window time.Duration) (int, error)
	Reset(ctx context.Context, login string) error
}

type credentialHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, encoded string) (bool, error)
}

type sessionCodec interface {
	Encode(p session.Payload) (string, error)
	Decode(token string) (*session.Payload, bool)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	// MaxAttempts is the number of failed logins allowed per window. Zero
	// disables throttling.
	MaxAttempts   int
	AttemptWindow time.Duration
}

// AuthService provides registration, login and session verification.
type AuthService struct {
	repo      authUserRepository
	attempts  loginAttemptStore
	hasher    credentialHasher
	codec     sessionCodec
	validator *validation.Validator
	metrics   *MetricsService
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance. attempts and metrics may be nil.
func NewAuthService(repo authUserRepository, attempts loginAttemptStore, hasher credentialHasher, codec sessionCodec, validate *validation.Validator, metrics *MetricsService, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.Default()
	}
	return &AuthService{
		repo:      repo,
		attempts:  attempts,
		hasher:    hasher,
		codec:     codec,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		config:    config,
	}
}

// Register creates a student account with a hashed password.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.AppError(err)
	}

	exists, err := s.repo.ExistsByEmailOrMatricule(ctx, req.Email, req.Matricule)
	if err != nil {
		s.logger.Error("registration lookup failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to check existing accounts")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email or matricule already in use")
	}

	start := time.Now()
	hash, err := s.hasher.Hash(ctx, req.Password)
	s.metrics.ObservePasswordHash("hash", start)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to hash password")
	}

	user := &models.User{
		Matricule:    req.Matricule,
		Name:         req.Name,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	if _, err := s.repo.Create(ctx, user); err != nil {
		if database.IsDuplicateEntry(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email or matricule already in use")
		}
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to create account")
	}

	s.metrics.RecordRegistration()
	s.logger.Info("user registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and returns a signed session token. Login
// accepts either the email or the matricule.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.AppError(err)
	}

	if s.throttled(ctx, req.Login) {
		s.metrics.RecordLogin(LoginThrottled)
		s.logger.Warn("login throttled", zap.String("ip", req.IP))
		return nil, appErrors.ErrTooManyAttempts
	}

	user, err := s.repo.FindByLogin(ctx, req.Login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			start := time.Now()
			_, _ = s.hasher.Verify(ctx, req.Password, dummyPasswordHash)
			s.metrics.ObservePasswordHash("verify", start)
			return nil, s.rejectLogin(ctx, req)
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to fetch user")
	}

	start := time.Now()
	ok, err := s.hasher.Verify(ctx, req.Password, user.PasswordHash)
	s.metrics.ObservePasswordHash("verify", start)
	if err != nil {
		s.logger.Error("password verification failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to verify credentials")
	}
	if !ok {
		return nil, s.rejectLogin(ctx, req)
	}

	if s.attempts != nil {
		if err := s.attempts.Reset(ctx, req.Login); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	payload := session.Payload{
		UserID:    user.ID,
		Matricule: user.Matricule,
		Name:      user.Name,
		LastName:  user.LastName,
		Email:     user.Email,
	}
	token, err := s.codec.Encode(payload)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to create session")
	}

	s.metrics.RecordLogin(LoginSucceeded)
	s.logger.Info("user logged in", zap.Int64("user_id", user.ID), zap.String("ip", req.IP))
	return &models.LoginResult{Token: token, Session: payload}, nil
}

// Authenticate decodes a session token taken from the user_data cookie.
func (s *AuthService) Authenticate(token string) (*session.Payload, error) {
	if token == "" {
		return nil, appErrors.ErrUnauthorized
	}
	payload, ok := s.codec.Decode(token)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session")
	}
	return payload, nil
}

// throttled fails open: a broken attempt store never blocks logins.
func (s *AuthService) throttled(ctx context.Context, login string) bool {
	if s.attempts == nil || s.config.MaxAttempts <= 0 {
		return false
	}
	failures, err := s.attempts.Failures(ctx, login)
	if err != nil {
		s.logger.Warn("login attempt store unavailable", zap.Error(err))
		return false
	}
	return failures >= s.config.MaxAttempts
}

func (s *AuthService) rejectLogin(ctx context.Context, req models.LoginRequest) error {
	s.metrics.RecordLogin(LoginFailed)
	if s.attempts != nil && s.config.MaxAttempts > 0 {
		if _, err := s.attempts.RecordFailure(ctx, req.Login, s.config.AttemptWindow); err != nil {
			s.logger.Warn("failed to record login attempt", zap.Error(err))
		}
	}
	return appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid login or password")
}
