package engine

import (
	"errors"
	"fmt"

	internalstorage "github.com/LENAX/chain-engine/internal/storage"
	"github.com/LENAX/chain-engine/pkg/config"
	"github.com/LENAX/chain-engine/pkg/events"
	"github.com/LENAX/chain-engine/pkg/storage"
)

// EngineBuilder 引擎构建器（链式调用）
type EngineBuilder struct {
	engineConfigPath string
	cfg              *config.EngineConfig
	repo             storage.CalculationRepository
	bus              events.Bus
	err              error
}

// NewEngineBuilder 创建引擎构建器（入口）
// engineConfigPath 为空或文件不存在时使用默认配置
func NewEngineBuilder(engineConfigPath string) *EngineBuilder {
	return &EngineBuilder{
		engineConfigPath: engineConfigPath,
	}
}

// WithConfig 直接指定配置，跳过配置文件加载（链式）
func (b *EngineBuilder) WithConfig(cfg *config.EngineConfig) *EngineBuilder {
	if b.err != nil {
		return b
	}
	if cfg == nil {
		b.err = errors.New("engine config is nil")
		return b
	}
	b.cfg = cfg
	return b
}

// WithRepository 指定历史记录Repository，覆盖配置中的数据库（链式）
func (b *EngineBuilder) WithRepository(repo storage.CalculationRepository) *EngineBuilder {
	if b.err != nil {
		return b
	}
	if repo == nil {
		b.err = errors.New("calculation repository is nil")
		return b
	}
	b.repo = repo
	return b
}

// WithPublisher 指定事件总线，覆盖配置中的事件后端（链式）
func (b *EngineBuilder) WithPublisher(bus events.Bus) *EngineBuilder {
	if b.err != nil {
		return b
	}
	if bus == nil {
		b.err = errors.New("event bus is nil")
		return b
	}
	b.bus = bus
	return b
}

// Build 构建Engine实例
func (b *EngineBuilder) Build() (*Engine, error) {
	// 检查构建过程是否有错误
	if b.err != nil {
		return nil, b.err
	}

	// 1. 加载引擎配置
	cfg := b.cfg
	if cfg == nil {
		loaded, err := config.LoadFrameworkConfig(b.engineConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load engine config failed: %w", err)
		}
		cfg = loaded
	}

	// 2. 校验配置
	if err := config.ValidateFrameworkConfig(cfg); err != nil {
		return nil, fmt.Errorf("validate engine config failed: %w", err)
	}

	// 3. 初始化存储层
	repo := b.repo
	if repo == nil {
		created, err := internalstorage.NewCalculationRepository(cfg)
		if err != nil {
			return nil, fmt.Errorf("init storage failed: %w", err)
		}
		if created != nil {
			repo = created
		}
	}

	// 4. 初始化事件总线
	bus := b.bus
	if bus == nil {
		created, err := events.NewBusFromConfig(cfg)
		if err != nil {
			if repo != nil && b.repo == nil {
				repo.Close()
			}
			return nil, fmt.Errorf("init events failed: %w", err)
		}
		bus = created
	}

	// 5. 创建Engine实例
	eng, err := NewEngine(cfg, repo, bus)
	if err != nil {
		if b.bus == nil {
			bus.Close()
		}
		if repo != nil && b.repo == nil {
			repo.Close()
		}
		return nil, err
	}
	return eng, nil
}
