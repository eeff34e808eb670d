package events

import "context"

// NoopBus 不做任何事的事件总线（events.backend=none 时使用）
type NoopBus struct{}

// Publish 丢弃事件
func (n *NoopBus) Publish(ctx context.Context, topic string, event any) error {
	return nil
}

// Subscribe 返回一个在ctx取消时关闭的空通道
func (n *NoopBus) Subscribe(ctx context.Context, topic string) (<-chan []byte, error) {
	ch := make(chan []byte)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (n *NoopBus) Close() error {
	return nil
}
