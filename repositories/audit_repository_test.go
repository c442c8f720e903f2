package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/audit-trail/models"
)

func TestAuditRepository_CreateError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAuditRepository(db)
	entry := &models.AuditLogEntry{Method: "POST", Path: "/team"}

	mock.ExpectExec("INSERT INTO audit_log").
		WillReturnError(errors.New("disk full"))

	err = repo.Create(context.Background(), entry)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create audit log entry")
	assert.Zero(t, entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepository_CreateArgs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAuditRepository(db)
	ts := time.Date(2025, 10, 6, 12, 0, 0, 0, time.UTC)
	entry := &models.AuditLogEntry{
		Timestamp: ts,
		RequestID: "req-7",
		UserID:    "alice",
		Method:    "DELETE",
		Path:      "/team/3",
		UserAgent: "curl",
		IPAddress: "10.0.0.1",
	}

	mock.ExpectExec("INSERT INTO audit_log").
		WithArgs(ts, "req-7", "alice", "DELETE", "/team/3", "", "curl", "10.0.0.1").
		WillReturnResult(sqlmock.NewResult(12, 1))

	require.NoError(t, repo.Create(context.Background(), entry))
	assert.Equal(t, int64(12), entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepository_ListByRequestScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAuditRepository(db)

	rows := sqlmock.NewRows([]string{"id"}).AddRow(1)
	mock.ExpectQuery("SELECT (.+) FROM audit_log").
		WithArgs("req-1").
		WillReturnRows(rows)

	entries, err := repo.ListByRequest(context.Background(), "req-1")
	assert.Error(t, err)
	assert.Nil(t, entries)
	assert.Contains(t, err.Error(), "failed to scan audit log entry")
}
