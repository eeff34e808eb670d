package mysql

import (
	"errors"
	"fmt"
	"time"

	"github.com/LENAX/chain-engine/pkg/storage"
	driver "github.com/go-sql-driver/mysql"
)

// errDupKeyName MySQL索引已存在的错误码
const errDupKeyName = 1061

// MySQLDialect MySQL方言实现（对外导出）
type MySQLDialect struct{}

// NewMySQLDialect 创建MySQL方言实例
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

// Name 返回方言名称
func (d *MySQLDialect) Name() string {
	return "mysql"
}

// DriverName 返回驱动名
func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

// NormalizeDSN 强制parseTime与UTC，保证DATETIME能扫描为time.Time
func (d *MySQLDialect) NormalizeDSN(dsn string) (string, error) {
	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

// ConfigureDB 返回MySQL配置SQL
func (d *MySQLDialect) ConfigureDB() []string {
	return []string{
		"SET SESSION sql_mode='STRICT_TRANS_TABLES,NO_ZERO_IN_DATE,NO_ZERO_DATE,ERROR_FOR_DIVISION_BY_ZERO,NO_ENGINE_SUBSTITUTION';",
	}
}

// CreateIndexSQL MySQL不支持 CREATE INDEX IF NOT EXISTS
func (d *MySQLDialect) CreateIndexSQL(table, index, column string) string {
	return fmt.Sprintf("CREATE INDEX %s ON %s(%s)", index, table, column)
}

// IsDuplicateIndex 判断是否为索引已存在错误
func (d *MySQLDialect) IsDuplicateIndex(err error) bool {
	var myErr *driver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == errDupKeyName
}

// BooleanType 返回MySQL布尔类型
func (d *MySQLDialect) BooleanType() string {
	return "TINYINT(1)"
}

// TimestampType 返回MySQL时间戳类型
func (d *MySQLDialect) TimestampType() string {
	return "DATETIME(6)"
}

// LabelType 返回MySQL文本类型
func (d *MySQLDialect) LabelType() string {
	return "TEXT"
}

// 确保实现接口
var _ storage.Dialect = (*MySQLDialect)(nil)
