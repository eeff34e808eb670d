package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const calculationTable = "chain_calculation"

var calculationColumns = `id, request_id, fingerprint, edge_count, node_count, status,
	first_label, last_label, error_kind, error_message, cached, duration_us, create_time`

// SQLCalculationRepo 基于sqlx的计算历史Repository（对外导出）
// 通过Dialect适配SQLite/PostgreSQL/MySQL
type SQLCalculationRepo struct {
	db      *sqlx.DB
	dialect Dialect
}

// NewSQLCalculationRepo 创建Repository并初始化表结构
func NewSQLCalculationRepo(db *sqlx.DB, dialect Dialect) (*SQLCalculationRepo, error) {
	repo := &SQLCalculationRepo{db: db, dialect: dialect}
	if err := repo.initSchema(); err != nil {
		return nil, fmt.Errorf("初始化表结构失败: %w", err)
	}
	return repo, nil
}

// OpenSQLCalculationRepo 通过DSN打开数据库并创建Repository
func OpenSQLCalculationRepo(dialect Dialect, dsn string) (*SQLCalculationRepo, error) {
	normalized, err := dialect.NormalizeDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("解析DSN失败: %w", err)
	}

	db, err := sqlx.Open(dialect.DriverName(), normalized)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	for _, stmt := range dialect.ConfigureDB() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("配置%s失败: %w", dialect.Name(), err)
		}
	}

	repo, err := NewSQLCalculationRepo(db, dialect)
	if err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// GetDB 获取底层数据库连接（对外导出）
func (r *SQLCalculationRepo) GetDB() *sqlx.DB {
	return r.db
}

// Close 关闭数据库连接（对外导出）
func (r *SQLCalculationRepo) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// initSchema 初始化数据库表结构
func (r *SQLCalculationRepo) initSchema() error {
	createSQL := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id VARCHAR(64) PRIMARY KEY,
		request_id VARCHAR(64) NOT NULL,
		fingerprint VARCHAR(64) NOT NULL,
		edge_count INTEGER NOT NULL,
		node_count INTEGER NOT NULL,
		status VARCHAR(16) NOT NULL,
		first_label %s NOT NULL,
		last_label %s NOT NULL,
		error_kind VARCHAR(16) NOT NULL,
		error_message %s NOT NULL,
		cached %s NOT NULL,
		duration_us BIGINT NOT NULL,
		create_time %s NOT NULL
	)`,
		calculationTable,
		r.dialect.LabelType(),
		r.dialect.LabelType(),
		r.dialect.LabelType(),
		r.dialect.BooleanType(),
		r.dialect.TimestampType(),
	)
	if _, err := r.db.Exec(createSQL); err != nil {
		return err
	}

	indexSQL := r.dialect.CreateIndexSQL(calculationTable, "idx_chain_calculation_create_time", "create_time")
	if _, err := r.db.Exec(indexSQL); err != nil && !r.dialect.IsDuplicateIndex(err) {
		return err
	}
	return nil
}

// Save 保存一条记录
func (r *SQLCalculationRepo) Save(ctx context.Context, rec *CalculationRecord) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (:id, :request_id, :fingerprint, :edge_count,
		:node_count, :status, :first_label, :last_label, :error_kind, :error_message, :cached,
		:duration_us, :create_time)`, calculationTable, calculationColumns)
	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("保存计算记录失败: %w", err)
	}
	return nil
}

// GetByID 按ID查询
func (r *SQLCalculationRepo) GetByID(ctx context.Context, id string) (*CalculationRecord, error) {
	query := r.db.Rebind(fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", calculationColumns, calculationTable))
	var rec CalculationRecord
	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询计算记录失败: %w", err)
	}
	return &rec, nil
}

// List 分页查询
func (r *SQLCalculationRepo) List(ctx context.Context, opts ListOptions) ([]*CalculationRecord, int, error) {
	where := ""
	args := make([]interface{}, 0, 3)
	if opts.Status != "" {
		where = " WHERE status = ?"
		args = append(args, opts.Status)
	}

	var total int
	countSQL := r.db.Rebind(fmt.Sprintf("SELECT COUNT(*) FROM %s%s", calculationTable, where))
	if err := r.db.GetContext(ctx, &total, countSQL, args...); err != nil {
		return nil, 0, fmt.Errorf("统计计算记录失败: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	listSQL := r.db.Rebind(fmt.Sprintf("SELECT %s FROM %s%s ORDER BY create_time DESC, id DESC LIMIT ? OFFSET ?",
		calculationColumns, calculationTable, where))
	args = append(args, limit, opts.Offset)

	records := make([]*CalculationRecord, 0, limit)
	if err := r.db.SelectContext(ctx, &records, listSQL, args...); err != nil {
		return nil, 0, fmt.Errorf("查询计算记录失败: %w", err)
	}
	return records, total, nil
}

// DeleteBefore 删除早于指定时间的记录
func (r *SQLCalculationRepo) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	query := r.db.Rebind(fmt.Sprintf("DELETE FROM %s WHERE create_time < ?", calculationTable))
	result, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("清理计算记录失败: %w", err)
	}
	return result.RowsAffected()
}

// 确保实现接口
var _ CalculationRepository = (*SQLCalculationRepo)(nil)
