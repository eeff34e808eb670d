package dto

import (
	"time"

	"github.com/LENAX/chain-engine/pkg/storage"
)

// APIResponse 通用API响应结构
type APIResponse[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse[T any](data T) APIResponse[T] {
	return APIResponse[T]{
		Code:    0,
		Message: "success",
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string) APIResponse[any] {
	return APIResponse[any]{
		Code:    code,
		Message: message,
	}
}

// PathResponse 完整链响应
type PathResponse struct {
	Path        []string `json:"path"`
	First       string   `json:"first"`
	Last        string   `json:"last"`
	Fingerprint string   `json:"fingerprint"`
	Cached      bool     `json:"cached"`
	RecordID    string   `json:"record_id,omitempty"`
}

// CalculationRecord 计算历史记录
type CalculationRecord struct {
	ID           string    `json:"id"`
	RequestID    string    `json:"request_id,omitempty"`
	Fingerprint  string    `json:"fingerprint"`
	EdgeCount    int       `json:"edge_count"`
	NodeCount    int       `json:"node_count"`
	Status       string    `json:"status"`
	First        string    `json:"first,omitempty"`
	Last         string    `json:"last,omitempty"`
	ErrorKind    string    `json:"error_kind,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Cached       bool      `json:"cached"`
	Duration     string    `json:"duration"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCalculationRecord 由存储记录构造响应
func NewCalculationRecord(rec *storage.CalculationRecord) CalculationRecord {
	return CalculationRecord{
		ID:           rec.ID,
		RequestID:    rec.RequestID,
		Fingerprint:  rec.Fingerprint,
		EdgeCount:    rec.EdgeCount,
		NodeCount:    rec.NodeCount,
		Status:       rec.Status,
		First:        rec.FirstLabel,
		Last:         rec.LastLabel,
		ErrorKind:    rec.ErrorKind,
		ErrorMessage: rec.ErrorMessage,
		Cached:       rec.Cached,
		Duration:     (time.Duration(rec.DurationUS) * time.Microsecond).String(),
		CreatedAt:    rec.CreateTime,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// ListResponse 列表响应
type ListResponse[T any] struct {
	Total   int  `json:"total"`
	Items   []T  `json:"items"`
	HasMore bool `json:"has_more"`
}

// PurgeResponse 历史清理响应
type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}

// CacheClearResponse 缓存清理响应
type CacheClearResponse struct {
	Cleared int `json:"cleared"`
}
