package events

import (
	"fmt"

	"github.com/LENAX/chain-engine/pkg/config"
)

// NewBusFromConfig 根据 events.backend 创建事件总线
func NewBusFromConfig(cfg *config.EngineConfig) (Bus, error) {
	ev := cfg.ChainEngine.Events
	switch ev.Backend {
	case config.EventsNone:
		return &NoopBus{}, nil
	case config.EventsGoChannel, "":
		return NewGoChannelBus(ev.BufferSize, cfg.ChainEngine.General.LogLevel == "debug"), nil
	case config.EventsNATS:
		bus, err := NewNATSBus(ev.NatsURL)
		if err != nil {
			return nil, err
		}
		return bus, nil
	default:
		return nil, fmt.Errorf("unsupported events backend: %s", ev.Backend)
	}
}

var (
	_ Bus = (*NoopBus)(nil)
	_ Bus = (*GoChannelBus)(nil)
	_ Bus = (*NATSBus)(nil)
)
