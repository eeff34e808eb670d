package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSBus 将事件以JSON发布到NATS subject
type NATSBus struct {
	conn *nats.Conn
}

// NewNATSBus 连接NATS，断线后自动重连
func NewNATSBus(url string, opts ...nats.Option) (*NATSBus, error) {
	defaults := []nats.Option{
		nats.Name("chain-engine"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	}
	nc, err := nats.Connect(url, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return &NATSBus{conn: nc}, nil
}

func (b *NATSBus) Publish(ctx context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	return b.conn.Publish(topic, data)
}

// Subscribe 订阅subject（支持 "chain.>" 等通配符）
// 订阅者处理不过来时丢弃消息，避免阻塞NATS客户端
func (b *NATSBus) Subscribe(ctx context.Context, topic string) (<-chan []byte, error) {
	ch := make(chan []byte, 64)

	var (
		mu     sync.Mutex
		closed bool
	)

	sub, err := b.conn.Subscribe(topic, func(msg *nats.Msg) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- msg.Data:
		default:
		}
	})
	if err != nil {
		close(ch)
		return nil, fmt.Errorf("subscribing to %s: %w", topic, err)
	}
	if err := b.conn.Flush(); err != nil {
		_ = sub.Unsubscribe()
		close(ch)
		return nil, fmt.Errorf("flushing subscription: %w", err)
	}

	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
		mu.Lock()
		closed = true
		close(ch)
		mu.Unlock()
	}()

	return ch, nil
}

// Flush 等待已发布的消息被服务端确认
func (b *NATSBus) Flush() error {
	return b.conn.Flush()
}

func (b *NATSBus) Close() error {
	b.conn.Close()
	return nil
}
