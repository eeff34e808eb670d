package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/LENAX/chain-engine/pkg/storage"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordColumns = []string{
	"id", "request_id", "fingerprint", "edge_count", "node_count", "status",
	"first_label", "last_label", "error_kind", "error_message", "cached", "duration_us", "create_time",
}

// newMockRepo 创建基于sqlmock的Repository，自动校验期望
func newMockRepo(t *testing.T) (*storage.SQLCalculationRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS chain_calculation").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_chain_calculation_create_time").WillReturnResult(sqlmock.NewResult(0, 0))

	repo, err := storage.NewSQLCalculationRepo(sqlx.NewDb(db, "postgres"), NewPostgresDialect())
	require.NoError(t, err)
	return repo, mock
}

func TestPostgresDialect_Schema(t *testing.T) {
	d := NewPostgresDialect()
	assert.Equal(t, "postgres", d.DriverName())
	assert.Equal(t, "BOOLEAN", d.BooleanType())
	assert.Equal(t, "TIMESTAMP", d.TimestampType())
	assert.Contains(t, d.CreateIndexSQL("t", "idx", "c"), "IF NOT EXISTS")
}

func TestCalculationRepo_Save(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO chain_calculation .+ VALUES \(\$1, \$2, \$3`).
		WithArgs("calc-1", "req-1", "fp", 1, 2, storage.StatusSuccess, "foo", "bar", "", "", false, int64(7), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), &storage.CalculationRecord{
		ID:          "calc-1",
		RequestID:   "req-1",
		Fingerprint: "fp",
		EdgeCount:   1,
		NodeCount:   2,
		Status:      storage.StatusSuccess,
		FirstLabel:  "foo",
		LastLabel:   "bar",
		DurationUS:  7,
		CreateTime:  time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestCalculationRepo_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .+ FROM chain_calculation WHERE id = \$1`).WithArgs("calc-1").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("calc-1", "req-1", "fp", 1, 2, "failed", "", "", "cycle", `cycle detected in node "x"`, false, 3, now))
	mock.ExpectQuery(`SELECT .+ FROM chain_calculation WHERE id = \$1`).WithArgs("calc-2").
		WillReturnRows(sqlmock.NewRows(recordColumns))

	got, err := repo.GetByID(context.Background(), "calc-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "cycle", got.ErrorKind)
	assert.Equal(t, storage.StatusFailed, got.Status)

	missing, err := repo.GetByID(context.Background(), "calc-2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCalculationRepo_ListWithStatus(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM chain_calculation WHERE status = \$1`).WithArgs("success").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT .+ FROM chain_calculation WHERE status = \$1 ORDER BY create_time DESC, id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("success", 1, 2).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("calc-9", "", "fp", 1, 2, "success", "a", "b", "", "", true, 1, now))

	records, total, err := repo.List(context.Background(), storage.ListOptions{Status: "success", Limit: 1, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, records, 1)
	assert.Equal(t, "calc-9", records[0].ID)
	assert.True(t, records[0].Cached)
}

func TestCalculationRepo_DeleteBefore(t *testing.T) {
	repo, mock := newMockRepo(t)
	cutoff := time.Now().UTC()

	mock.ExpectExec(`DELETE FROM chain_calculation WHERE create_time < \$1`).WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 4))

	deleted, err := repo.DeleteBefore(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
}
