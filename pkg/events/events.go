// Package events 计算事件的发布与订阅（进程内watermill gochannel / 外部NATS）
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopicCalculated 链计算完成事件主题
const TopicCalculated = "chain.calculated"

// CalculationEvent 一次计算完成后发布的事件
type CalculationEvent struct {
	ID          string    `json:"id"`          // 事件ID（UUID）
	RecordID    string    `json:"record_id"`   // 历史记录ID，未记录时为空
	RequestID   string    `json:"request_id"`  // 关联请求ID
	Fingerprint string    `json:"fingerprint"` // 输入指纹
	Status      string    `json:"status"`      // success / failed
	First       string    `json:"first,omitempty"`
	Last        string    `json:"last,omitempty"`
	ErrorKind   string    `json:"error_kind,omitempty"`
	Error       string    `json:"error,omitempty"`
	EdgeCount   int       `json:"edge_count"`
	NodeCount   int       `json:"node_count"`
	Cached      bool      `json:"cached"`
	DurationUS  int64     `json:"duration_us"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewCalculationEvent 创建计算事件
func NewCalculationEvent(requestID, fingerprint, status string) *CalculationEvent {
	return &CalculationEvent{
		ID:          uuid.NewString(),
		RequestID:   requestID,
		Fingerprint: fingerprint,
		Status:      status,
		Timestamp:   time.Now().UTC(),
	}
}

// Publisher 事件发布者
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Subscriber 事件订阅者
// 返回的通道在ctx取消或订阅者关闭后被关闭，元素为JSON编码的事件
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan []byte, error)
}

// Bus 同时具备发布与订阅能力的事件总线
type Bus interface {
	Publisher
	Subscriber
}
