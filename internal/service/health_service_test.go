package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeDiagnostics struct {
	pingErr    error
	versionErr error
	writeErr   error
}

func (f fakeDiagnostics) Ping(ctx context.Context) error { return f.pingErr }

func (f fakeDiagnostics) Version(ctx context.Context) (string, error) {
	if f.versionErr != nil {
		return "", f.versionErr
	}
	return "8.0.36", nil
}

func (f fakeDiagnostics) WriteProbe(ctx context.Context) error { return f.writeErr }

func TestHealth(t *testing.T) {
	svc := NewHealthService(fakeDiagnostics{}, &fakeUserRepo{}, &fakeRequestRepo{}, nil)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	report := svc.Health(context.Background())
	assert.True(t, report.Healthy())
	assert.Equal(t, "connected", report.Database)
	assert.Equal(t, fixed, report.Timestamp)

	down := NewHealthService(fakeDiagnostics{pingErr: errBackendDown}, &fakeUserRepo{}, &fakeRequestRepo{}, nil)
	report = down.Health(context.Background())
	assert.Equal(t, "unhealthy", report.Status)
	assert.Equal(t, "disconnected", report.Database)
}

func TestDBStatus(t *testing.T) {
	users := &fakeUserRepo{}
	_, _ = users.Create(context.Background(), newUserFixture())
	svc := NewHealthService(fakeDiagnostics{}, users, &fakeRequestRepo{}, nil)

	report := svc.DBStatus(context.Background())
	assert.Equal(t, "success", report.Status)
	assert.True(t, report.Connected)
	assert.Equal(t, 1, report.Users)
	assert.Zero(t, report.Requests)

	failing := NewHealthService(fakeDiagnostics{}, &fakeUserRepo{countErr: errors.New("dial tcp 10.0.0.5:3306: secret detail")}, &fakeRequestRepo{}, nil)
	report = failing.DBStatus(context.Background())
	assert.Equal(t, "error", report.Status)
	assert.False(t, report.Connected)
	assert.NotContains(t, report.Message, "10.0.0.5")
}

func TestTestDB(t *testing.T) {
	svc := NewHealthService(fakeDiagnostics{}, &fakeUserRepo{}, &fakeRequestRepo{}, nil)
	report := svc.TestDB(context.Background())
	assert.Equal(t, "success", report.Status)
	assert.Equal(t, "8.0.36", report.Connection.Version)
	assert.Equal(t, "ok", report.WriteTest)

	readOnly := NewHealthService(fakeDiagnostics{writeErr: errBackendDown}, &fakeUserRepo{}, &fakeRequestRepo{}, nil)
	assert.Equal(t, "failed", readOnly.TestDB(context.Background()).WriteTest)

	down := NewHealthService(fakeDiagnostics{versionErr: errBackendDown}, &fakeUserRepo{}, &fakeRequestRepo{}, nil)
	report = down.TestDB(context.Background())
	assert.Equal(t, "error", report.Status)
	assert.Nil(t, report.Connection)
}
