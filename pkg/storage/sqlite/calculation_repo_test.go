package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/LENAX/chain-engine/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRepo(t *testing.T) *storage.SQLCalculationRepo {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "history.db")
	repo, err := storage.OpenSQLCalculationRepo(NewSQLiteDialect(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func record(id, status string, at time.Time) *storage.CalculationRecord {
	rec := &storage.CalculationRecord{
		ID:          id,
		RequestID:   "req-" + id,
		Fingerprint: "fp-" + id,
		EdgeCount:   2,
		NodeCount:   3,
		Status:      status,
		DurationUS:  42,
		CreateTime:  at.UTC(),
	}
	if status == storage.StatusSuccess {
		rec.FirstLabel, rec.LastLabel = "SFO", "EWR"
	} else {
		rec.ErrorKind, rec.ErrorMessage = "cycle", `cycle detected in node "SFO"`
	}
	return rec
}

// TestCalculationRepo_SaveAndGet 测试保存与查询
func TestCalculationRepo_SaveAndGet(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	rec := record("calc-1", storage.StatusSuccess, now)
	rec.Cached = true
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.GetByID(ctx, "calc-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "SFO", got.FirstLabel)
	assert.Equal(t, "EWR", got.LastLabel)
	assert.Equal(t, 3, got.NodeCount)
	assert.True(t, got.Cached)
	assert.True(t, now.Equal(got.CreateTime), "期望 %v，实际 %v", now, got.CreateTime)

	missing, err := repo.GetByID(ctx, "calc-404")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// 主键冲突
	assert.Error(t, repo.Save(ctx, rec))
}

// TestCalculationRepo_List 测试过滤与分页
func TestCalculationRepo_List(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		status := storage.StatusSuccess
		if i%2 == 1 {
			status = storage.StatusFailed
		}
		require.NoError(t, repo.Save(ctx, record(fmt.Sprintf("calc-%d", i), status, base.Add(time.Duration(i)*time.Second))))
	}

	all, total, err := repo.List(ctx, storage.ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, all, 2)
	assert.Equal(t, "calc-4", all[0].ID)
	assert.Equal(t, "calc-3", all[1].ID)

	page, _, err := repo.List(ctx, storage.ListOptions{Limit: 2, Offset: 4})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "calc-0", page[0].ID)

	failed, total, err := repo.List(ctx, storage.ListOptions{Status: storage.StatusFailed})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, rec := range failed {
		assert.Equal(t, storage.StatusFailed, rec.Status)
		assert.Equal(t, "cycle", rec.ErrorKind)
	}
}

// TestCalculationRepo_DeleteBefore 测试过期清理
func TestCalculationRepo_DeleteBefore(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Save(ctx, record("old", storage.StatusSuccess, now.Add(-48*time.Hour))))
	require.NoError(t, repo.Save(ctx, record("new", storage.StatusSuccess, now)))

	deleted, err := repo.DeleteBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, total, err := repo.List(ctx, storage.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

// TestCalculationRepo_ReopenKeepsSchema 重复初始化表结构不报错
func TestCalculationRepo_ReopenKeepsSchema(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "history.db")
	first, err := storage.OpenSQLCalculationRepo(NewSQLiteDialect(), dsn)
	require.NoError(t, err)
	require.NoError(t, first.Save(context.Background(), record("calc-1", storage.StatusSuccess, time.Now())))
	require.NoError(t, first.Close())

	second, err := storage.OpenSQLCalculationRepo(NewSQLiteDialect(), dsn)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.GetByID(context.Background(), "calc-1")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestSQLiteDialect_NormalizeDSNCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	dsn := filepath.Join(dir, "history.db") + "?cache=shared"

	got, err := NewSQLiteDialect().NormalizeDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, dsn, got)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	got, err = NewSQLiteDialect().NormalizeDSN(":memory:")
	require.NoError(t, err)
	assert.Equal(t, ":memory:", got)
}
