package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/grade-request-portal/internal/models"
)

const diagnosticsUnavailable = "database unavailable"

type diagnosticsRepository interface {
	Ping(ctx context.Context) error
	Version(ctx context.Context) (string, error)
	WriteProbe(ctx context.Context) error
}

type rowCounter interface {
	Count(ctx context.Context) (int, error)
}

// HealthService backs the unauthenticated diagnostic endpoints. Reports never
// include driver error text; failures are logged instead.
type HealthService struct {
	diag     diagnosticsRepository
	users    rowCounter
	requests rowCounter
	logger   *zap.Logger
	now      func() time.Time
}

// NewHealthService constructs a HealthService.
func NewHealthService(diag diagnosticsRepository, users, requests rowCounter, logger *zap.Logger) *HealthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthService{diag: diag, users: users, requests: requests, logger: logger, now: time.Now}
}

// Health reports liveness of the database connection.
func (s *HealthService) Health(ctx context.Context) models.HealthReport {
	report := models.HealthReport{Status: "healthy", Database: "connected", Timestamp: s.now().UTC()}
	if err := s.diag.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		report.Status = "unhealthy"
		report.Database = "disconnected"
	}
	return report
}

// DBStatus reports connectivity and table sizes.
func (s *HealthService) DBStatus(ctx context.Context) models.DBStatusReport {
	users, requests, err := s.counts(ctx)
	if err != nil {
		s.logger.Warn("db status failed", zap.Error(err))
		return models.DBStatusReport{Status: "error", Connected: false, Message: diagnosticsUnavailable}
	}
	return models.DBStatusReport{Status: "success", Connected: true, Users: users, Requests: requests}
}

// TestDB runs the version, count and write probes.
func (s *HealthService) TestDB(ctx context.Context) models.DBTestReport {
	version, err := s.diag.Version(ctx)
	if err != nil {
		s.logger.Warn("db version probe failed", zap.Error(err))
		return models.DBTestReport{Status: "error", Message: diagnosticsUnavailable}
	}
	users, requests, err := s.counts(ctx)
	if err != nil {
		s.logger.Warn("db count probe failed", zap.Error(err))
		return models.DBTestReport{Status: "error", Message: diagnosticsUnavailable}
	}
	write := "ok"
	if err := s.diag.WriteProbe(ctx); err != nil {
		s.logger.Warn("db write probe failed", zap.Error(err))
		write = "failed"
	}
	return models.DBTestReport{
		Status:     "success",
		Connection: &models.ConnectionCheck{Status: "success", Version: version},
		Tables:     &models.TableCounts{Users: users, Requests: requests},
		WriteTest:  write,
	}
}

func (s *HealthService) counts(ctx context.Context) (int, int, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return 0, 0, err
	}
	requests, err := s.requests.Count(ctx)
	if err != nil {
		return 0, 0, err
	}
	return users, requests, nil
}
