package postgres

import (
	"fmt"

	"github.com/LENAX/chain-engine/pkg/storage"
	_ "github.com/lib/pq"
)

// PostgresDialect PostgreSQL方言实现（对外导出）
type PostgresDialect struct{}

// NewPostgresDialect 创建PostgreSQL方言实例
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

// Name 返回方言名称
func (d *PostgresDialect) Name() string {
	return "postgres"
}

// DriverName 返回驱动名（sqlx据此选择$1形式的占位符）
func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

// NormalizeDSN PostgreSQL原样返回
func (d *PostgresDialect) NormalizeDSN(dsn string) (string, error) {
	return dsn, nil
}

// ConfigureDB 返回PostgreSQL配置SQL
func (d *PostgresDialect) ConfigureDB() []string {
	return []string{
		"SET timezone = 'UTC';",
	}
}

// CreateIndexSQL 返回建索引语句
func (d *PostgresDialect) CreateIndexSQL(table, index, column string) string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s)", index, table, column)
}

// IsDuplicateIndex PostgreSQL使用IF NOT EXISTS，不会重复
func (d *PostgresDialect) IsDuplicateIndex(err error) bool {
	return false
}

// BooleanType 返回PostgreSQL布尔类型
func (d *PostgresDialect) BooleanType() string {
	return "BOOLEAN"
}

// TimestampType 返回PostgreSQL时间戳类型
func (d *PostgresDialect) TimestampType() string {
	return "TIMESTAMP"
}

// LabelType 返回PostgreSQL文本类型
func (d *PostgresDialect) LabelType() string {
	return "TEXT"
}

// 确保实现接口
var _ storage.Dialect = (*PostgresDialect)(nil)
