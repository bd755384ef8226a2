package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsPingAndVersion(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDiagnosticsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1")).WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT VERSION()")).WillReturnRows(sqlmock.NewRows([]string{"VERSION()"}).AddRow("8.0.36"))

	require.NoError(t, repo.Ping(context.Background()))
	version, err := repo.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "8.0.36", version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiagnosticsWriteProbe(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDiagnosticsRepository(db)

	mock.ExpectExec("CREATE TEMPORARY TABLE IF NOT EXISTS portal_write_probe").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO portal_write_probe").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DROP TEMPORARY TABLE portal_write_probe").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.WriteProbe(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiagnosticsWriteProbeFailure(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDiagnosticsRepository(db)

	mock.ExpectExec("CREATE TEMPORARY TABLE").WillReturnError(errors.New("read-only"))

	err := repo.WriteProbe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write probe")
}
