package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// ValidateFrameworkConfig 校验框架配置合法性
func ValidateFrameworkConfig(cfg *EngineConfig) error {
	if cfg == nil {
		return fmt.Errorf("配置不能为空")
	}
	ce := &cfg.ChainEngine

	// 校验General
	if ce.General.InstanceName == "" {
		return fmt.Errorf("instance_name不能为空")
	}
	if ce.General.LogLevel != "" {
		validLevels := map[string]bool{
			"debug": true,
			"info":  true,
			"warn":  true,
			"error": true,
		}
		if !validLevels[ce.General.LogLevel] {
			return fmt.Errorf("log_level必须是debug/info/warn/error之一")
		}
	}

	// 校验Server
	if ce.Server.Port <= 0 || ce.Server.Port > 65535 {
		return fmt.Errorf("server.port必须在1-65535之间")
	}
	if ce.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes必须大于0")
	}

	// 校验Storage.Database
	validDBTypes := map[string]bool{
		DatabaseNone:     true,
		DatabaseSQLite:   true,
		DatabasePostgres: true,
		"postgresql":     true,
		DatabaseMySQL:    true,
	}
	if !validDBTypes[ce.Storage.Database.Type] {
		return fmt.Errorf("database.type必须是none/sqlite/postgres/mysql之一")
	}
	if cfg.HistoryEnabled() {
		if ce.Storage.Database.DSN == "" {
			return fmt.Errorf("database.dsn不能为空")
		}
		if ce.Storage.Database.MaxOpenConns <= 0 {
			return fmt.Errorf("database.max_open_conns必须大于0")
		}
		if ce.Storage.Database.MaxIdleConns < 0 {
			return fmt.Errorf("database.max_idle_conns不能为负数")
		}
	}

	// 校验Retention
	if ce.History.Retention.Enabled {
		if !cfg.HistoryEnabled() {
			return fmt.Errorf("history.retention需要启用database存储")
		}
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := parser.Parse(ce.History.Retention.Schedule); err != nil {
			return fmt.Errorf("history.retention.schedule无效: %w", err)
		}
		if ce.History.Retention.MaxAge <= 0 {
			return fmt.Errorf("history.retention.max_age必须大于0")
		}
	}

	// 校验Events
	switch ce.Events.Backend {
	case EventsNone, EventsGoChannel:
	case EventsNATS:
		if ce.Events.NatsURL == "" {
			return fmt.Errorf("events.nats_url不能为空")
		}
	default:
		return fmt.Errorf("events.backend必须是none/gochannel/nats之一")
	}

	return nil
}
