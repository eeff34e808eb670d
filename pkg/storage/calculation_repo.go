package storage

import (
	"context"
	"errors"
	"time"
)

// ErrRecordNotFound 记录不存在
var ErrRecordNotFound = errors.New("record not found")

// 计算记录状态
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// CalculationRecord 一次链计算的历史记录
type CalculationRecord struct {
	ID           string    `db:"id"`
	RequestID    string    `db:"request_id"`
	Fingerprint  string    `db:"fingerprint"`
	EdgeCount    int       `db:"edge_count"`
	NodeCount    int       `db:"node_count"`
	Status       string    `db:"status"`
	FirstLabel   string    `db:"first_label"`
	LastLabel    string    `db:"last_label"`
	ErrorKind    string    `db:"error_kind"`
	ErrorMessage string    `db:"error_message"`
	Cached       bool      `db:"cached"`
	DurationUS   int64     `db:"duration_us"`
	CreateTime   time.Time `db:"create_time"`
}

// ListOptions 历史记录查询条件
type ListOptions struct {
	Status string // 为空时不过滤
	Limit  int
	Offset int
}

// CalculationRepository 计算历史Repository接口（对外导出）
type CalculationRepository interface {
	// Save 保存一条记录
	Save(ctx context.Context, rec *CalculationRecord) error
	// GetByID 按ID查询，不存在时返回 nil, nil
	GetByID(ctx context.Context, id string) (*CalculationRecord, error)
	// List 按创建时间倒序分页查询，同时返回满足条件的总数
	List(ctx context.Context, opts ListOptions) ([]*CalculationRecord, int, error)
	// DeleteBefore 删除早于指定时间的记录，返回删除条数
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
	// Close 关闭底层连接
	Close() error
}
