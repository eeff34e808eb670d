package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// GoChannelBus 基于watermill gochannel的进程内事件总线
type GoChannelBus struct {
	pubsub *gochannel.GoChannel
}

// NewGoChannelBus 创建进程内事件总线
// bufferSize: 每个订阅者的输出缓冲大小
// debug: 为true时输出watermill日志，否则静默
func NewGoChannelBus(bufferSize int64, debug bool) *GoChannelBus {
	logger := newWatermillLogger(debug)
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            bufferSize,
			Persistent:                     false,
			BlockPublishUntilSubscriberAck: false,
		},
		logger,
	)
	return &GoChannelBus{pubsub: pubsub}
}

// newWatermillLogger 非debug级别下丢弃watermill日志（无订阅者时每次发布都会输出INFO）
func newWatermillLogger(debug bool) watermill.LoggerAdapter {
	if !debug {
		return watermill.NopLogger{}
	}
	return watermill.NewStdLogger(true, false)
}

// Publish 序列化事件并发布到主题
func (b *GoChannelBus) Publish(ctx context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	msgID := watermill.NewUUID()
	if ce, ok := event.(*CalculationEvent); ok && ce.ID != "" {
		msgID = ce.ID
	}
	msg := message.NewMessage(msgID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("topic", topic)

	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("发布事件失败: %w", err)
	}
	return nil
}

// Subscribe 订阅主题，ctx取消后通道关闭
func (b *GoChannelBus) Subscribe(ctx context.Context, topic string) (<-chan []byte, error) {
	messages, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("订阅%s失败: %w", topic, err)
	}

	out := make(chan []byte, 16)
	go func() {
		defer close(out)
		for msg := range messages {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				msg.Ack()
				return
			}
			msg.Ack()
		}
	}()
	return out, nil
}

// Close 关闭总线，所有订阅通道随之关闭
func (b *GoChannelBus) Close() error {
	return b.pubsub.Close()
}
