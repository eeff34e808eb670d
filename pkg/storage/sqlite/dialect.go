package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LENAX/chain-engine/pkg/storage"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDialect SQLite方言实现（对外导出）
type SQLiteDialect struct{}

// NewSQLiteDialect 创建SQLite方言实例
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

// Name 返回方言名称
func (d *SQLiteDialect) Name() string {
	return "sqlite"
}

// DriverName 返回驱动名
func (d *SQLiteDialect) DriverName() string {
	return "sqlite3"
}

// NormalizeDSN 文件路径形式的DSN会预先创建所在目录
func (d *SQLiteDialect) NormalizeDSN(dsn string) (string, error) {
	if dsn == "" || strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return dsn, nil
	}
	path, _, _ := strings.Cut(dsn, "?")
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("创建数据库目录失败: %w", err)
		}
	}
	return dsn, nil
}

// ConfigureDB 返回SQLite配置SQL
func (d *SQLiteDialect) ConfigureDB() []string {
	return []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=30000;",
		"PRAGMA wal_autocheckpoint=1000;",
		"PRAGMA synchronous=NORMAL;",
	}
}

// CreateIndexSQL 返回建索引语句
func (d *SQLiteDialect) CreateIndexSQL(table, index, column string) string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s)", index, table, column)
}

// IsDuplicateIndex SQLite使用IF NOT EXISTS，不会重复
func (d *SQLiteDialect) IsDuplicateIndex(err error) bool {
	return false
}

// BooleanType 返回SQLite布尔类型
func (d *SQLiteDialect) BooleanType() string {
	return "INTEGER"
}

// TimestampType 返回SQLite时间戳类型
func (d *SQLiteDialect) TimestampType() string {
	return "DATETIME"
}

// LabelType 返回SQLite文本类型
func (d *SQLiteDialect) LabelType() string {
	return "TEXT"
}

// 确保实现接口
var _ storage.Dialect = (*SQLiteDialect)(nil)
