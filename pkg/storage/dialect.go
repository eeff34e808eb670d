package storage

// Dialect SQL方言接口（对外导出）
// 封装不同数据库的驱动名、DDL类型与连接初始化差异
type Dialect interface {
	// Name 返回方言名称（如 "sqlite", "mysql", "postgres"）
	Name() string

	// DriverName 返回 database/sql 注册的驱动名
	DriverName() string

	// NormalizeDSN 规范化连接字符串（如MySQL强制parseTime）
	NormalizeDSN(dsn string) (string, error)

	// ConfigureDB 配置数据库连接（如SQLite的PRAGMA）
	// 返回需要执行的SQL语句列表
	ConfigureDB() []string

	// CreateIndexSQL 返回建索引语句
	CreateIndexSQL(table, index, column string) string

	// IsDuplicateIndex 判断建索引失败是否因为索引已存在
	IsDuplicateIndex(err error) bool

	// BooleanType 返回布尔类型
	// SQLite: INTEGER
	// MySQL: TINYINT(1)
	// PostgreSQL: BOOLEAN
	BooleanType() string

	// TimestampType 返回时间戳类型
	// SQLite: DATETIME
	// MySQL: DATETIME(6)
	// PostgreSQL: TIMESTAMP
	TimestampType() string

	// LabelType 返回存储节点标签的文本类型
	LabelType() string
}
