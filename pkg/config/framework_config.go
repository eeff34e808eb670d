package config

import (
	"time"
)

// EngineConfig 引擎框架配置（对外导出）
type EngineConfig struct {
	ChainEngine struct {
		General struct {
			InstanceName string `yaml:"instance_name" toml:"instance_name"`
			LogLevel     string `yaml:"log_level" toml:"log_level"`
			Env          string `yaml:"env" toml:"env"`
		} `yaml:"general" toml:"general"`
		Server struct {
			Host         string        `yaml:"host" toml:"host"`
			Port         int           `yaml:"port" toml:"port"`
			ReadTimeout  time.Duration `yaml:"read_timeout" toml:"read_timeout"`
			WriteTimeout time.Duration `yaml:"write_timeout" toml:"write_timeout"`
			MaxBodyBytes int64         `yaml:"max_body_bytes" toml:"max_body_bytes"`
		} `yaml:"server" toml:"server"`
		Storage struct {
			Database struct {
				Type            string        `yaml:"type" toml:"type"`
				DSN             string        `yaml:"dsn" toml:"dsn"`
				MaxOpenConns    int           `yaml:"max_open_conns" toml:"max_open_conns"`
				MaxIdleConns    int           `yaml:"max_idle_conns" toml:"max_idle_conns"`
				ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" toml:"conn_max_lifetime"`
				ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" toml:"conn_max_idle_time"`
			} `yaml:"database" toml:"database"`
			Cache struct {
				Enabled       bool          `yaml:"enabled" toml:"enabled"`
				DefaultTTL    time.Duration `yaml:"default_ttl" toml:"default_ttl"`
				CleanInterval time.Duration `yaml:"clean_interval" toml:"clean_interval"`
			} `yaml:"cache" toml:"cache"`
		} `yaml:"storage" toml:"storage"`
		History struct {
			Retention struct {
				Enabled  bool          `yaml:"enabled" toml:"enabled"`
				Schedule string        `yaml:"schedule" toml:"schedule"`
				MaxAge   time.Duration `yaml:"max_age" toml:"max_age"`
			} `yaml:"retention" toml:"retention"`
		} `yaml:"history" toml:"history"`
		Events struct {
			Backend    string `yaml:"backend" toml:"backend"`
			NatsURL    string `yaml:"nats_url" toml:"nats_url"`
			BufferSize int64  `yaml:"buffer_size" toml:"buffer_size"`
		} `yaml:"events" toml:"events"`
	} `yaml:"chain-engine" toml:"chain-engine"`
}

// 存储类型
const (
	DatabaseNone     = "none"
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabaseMySQL    = "mysql"
)

// 事件后端类型
const (
	EventsNone      = "none"
	EventsGoChannel = "gochannel"
	EventsNATS      = "nats"
)

// DefaultMaxBodyBytes 默认请求体大小上限（字节）
const DefaultMaxBodyBytes = 4096

// NewDefaultConfig 创建填充了默认值的配置
func NewDefaultConfig() *EngineConfig {
	cfg := &EngineConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// GetDatabaseType 获取数据库类型
func (c *EngineConfig) GetDatabaseType() string {
	return c.ChainEngine.Storage.Database.Type
}

// GetDatabaseDSN 获取数据库DSN
func (c *EngineConfig) GetDatabaseDSN() string {
	return c.ChainEngine.Storage.Database.DSN
}

// HistoryEnabled 是否记录计算历史
func (c *EngineConfig) HistoryEnabled() bool {
	t := c.ChainEngine.Storage.Database.Type
	return t != "" && t != DatabaseNone
}

// ApplyDefaults 应用默认值
func (c *EngineConfig) ApplyDefaults() {
	ce := &c.ChainEngine

	// General默认值
	if ce.General.InstanceName == "" {
		ce.General.InstanceName = "chain-engine"
	}
	if ce.General.LogLevel == "" {
		ce.General.LogLevel = "info"
	}
	if ce.General.Env == "" {
		ce.General.Env = "dev"
	}

	// Server默认值
	if ce.Server.Host == "" {
		ce.Server.Host = "127.0.0.1"
	}
	if ce.Server.Port <= 0 {
		ce.Server.Port = 8080
	}
	if ce.Server.ReadTimeout <= 0 {
		ce.Server.ReadTimeout = 30 * time.Second
	}
	if ce.Server.WriteTimeout <= 0 {
		ce.Server.WriteTimeout = 30 * time.Second
	}
	if ce.Server.MaxBodyBytes <= 0 {
		ce.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}

	// Database默认值
	if ce.Storage.Database.Type == "" {
		ce.Storage.Database.Type = DatabaseNone
	}
	if ce.Storage.Database.MaxOpenConns <= 0 {
		ce.Storage.Database.MaxOpenConns = 10
	}
	if ce.Storage.Database.MaxIdleConns <= 0 {
		ce.Storage.Database.MaxIdleConns = 5
	}
	if ce.Storage.Database.ConnMaxLifetime <= 0 {
		ce.Storage.Database.ConnMaxLifetime = 2 * time.Hour
	}
	if ce.Storage.Database.ConnMaxIdleTime <= 0 {
		ce.Storage.Database.ConnMaxIdleTime = 1 * time.Hour
	}

	// Cache默认值
	if ce.Storage.Cache.DefaultTTL <= 0 {
		ce.Storage.Cache.DefaultTTL = 1 * time.Hour
	}
	if ce.Storage.Cache.CleanInterval <= 0 {
		ce.Storage.Cache.CleanInterval = 30 * time.Minute
	}

	// Retention默认值
	if ce.History.Retention.Schedule == "" {
		ce.History.Retention.Schedule = "@every 1h"
	}
	if ce.History.Retention.MaxAge <= 0 {
		ce.History.Retention.MaxAge = 7 * 24 * time.Hour
	}

	// Events默认值
	if ce.Events.Backend == "" {
		ce.Events.Backend = EventsGoChannel
	}
	if ce.Events.BufferSize <= 0 {
		ce.Events.BufferSize = 64
	}
}
