package storage

import (
	"fmt"
	"log"

	"github.com/LENAX/chain-engine/pkg/config"
	"github.com/LENAX/chain-engine/pkg/storage"
	"github.com/LENAX/chain-engine/pkg/storage/mysql"
	"github.com/LENAX/chain-engine/pkg/storage/postgres"
	"github.com/LENAX/chain-engine/pkg/storage/sqlite"
)

// NewDialect 根据数据库类型选择SQL方言（内部方法）
// dbType: 数据库类型（sqlite/mysql/postgres）
func NewDialect(dbType string) (storage.Dialect, error) {
	switch dbType {
	case config.DatabaseSQLite:
		return sqlite.NewSQLiteDialect(), nil
	case config.DatabaseMySQL:
		return mysql.NewMySQLDialect(), nil
	case config.DatabasePostgres, "postgresql":
		return postgres.NewPostgresDialect(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}

// NewCalculationRepository 根据配置创建计算历史Repository
// 未启用历史记录（type=none）时返回 nil, nil
func NewCalculationRepository(cfg *config.EngineConfig) (storage.CalculationRepository, error) {
	if !cfg.HistoryEnabled() {
		return nil, nil
	}

	dialect, err := NewDialect(cfg.GetDatabaseType())
	if err != nil {
		return nil, err
	}

	repo, err := storage.OpenSQLCalculationRepo(dialect, cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("create %s repository failed: %w", dialect.Name(), err)
	}

	dbCfg := cfg.ChainEngine.Storage.Database
	db := repo.GetDB()
	db.SetMaxOpenConns(dbCfg.MaxOpenConns)
	db.SetMaxIdleConns(dbCfg.MaxIdleConns)
	db.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(dbCfg.ConnMaxIdleTime)

	log.Printf("✅ [存储] 已连接%s数据库, MaxOpenConns=%d, MaxIdleConns=%d",
		dialect.Name(), dbCfg.MaxOpenConns, dbCfg.MaxIdleConns)
	return repo, nil
}
