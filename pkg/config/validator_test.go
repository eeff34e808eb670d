package config

import (
	"testing"
)

func TestValidateFrameworkConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *EngineConfig)
		wantErr bool
	}{
		{"默认配置合法", func(cfg *EngineConfig) {}, false},
		{"非法日志级别", func(cfg *EngineConfig) { cfg.ChainEngine.General.LogLevel = "trace" }, true},
		{"非法端口", func(cfg *EngineConfig) { cfg.ChainEngine.Server.Port = 70000 }, true},
		{"未知数据库类型", func(cfg *EngineConfig) { cfg.ChainEngine.Storage.Database.Type = "oracle" }, true},
		{"sqlite缺少dsn", func(cfg *EngineConfig) { cfg.ChainEngine.Storage.Database.Type = DatabaseSQLite }, true},
		{"sqlite配置完整", func(cfg *EngineConfig) {
			cfg.ChainEngine.Storage.Database.Type = DatabaseSQLite
			cfg.ChainEngine.Storage.Database.DSN = "./chain.db"
		}, false},
		{"未启用存储时开启清理", func(cfg *EngineConfig) { cfg.ChainEngine.History.Retention.Enabled = true }, true},
		{"清理表达式无效", func(cfg *EngineConfig) {
			cfg.ChainEngine.Storage.Database.Type = DatabaseSQLite
			cfg.ChainEngine.Storage.Database.DSN = "./chain.db"
			cfg.ChainEngine.History.Retention.Enabled = true
			cfg.ChainEngine.History.Retention.Schedule = "every now and then"
		}, true},
		{"nats缺少地址", func(cfg *EngineConfig) { cfg.ChainEngine.Events.Backend = EventsNATS }, true},
		{"未知事件后端", func(cfg *EngineConfig) { cfg.ChainEngine.Events.Backend = "kafka" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := ValidateFrameworkConfig(cfg)
			if tt.wantErr && err == nil {
				t.Errorf("期望校验失败，但没有错误")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("期望校验通过，实际错误: %v", err)
			}
		})
	}

	if err := ValidateFrameworkConfig(nil); err == nil {
		t.Error("nil配置应返回错误")
	}
}
