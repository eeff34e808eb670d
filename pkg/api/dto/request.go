package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/LENAX/chain-engine/pkg/core/chain"
)

// EdgePair 一条先后关系，JSON形式为 ["from","to"]
type EdgePair struct {
	From string
	To   string
}

// UnmarshalJSON 只接受恰好包含两个字符串的数组
func (p *EdgePair) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("pair must be an array of two strings: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("pair must be an array of two strings, got null")
	}
	if len(raw) != 2 {
		return fmt.Errorf("pair must contain exactly 2 labels, got %d", len(raw))
	}
	for i, target := range []*string{&p.From, &p.To} {
		if bytes.Equal(bytes.TrimSpace(raw[i]), []byte("null")) {
			return fmt.Errorf("pair label %d must be a string, got null", i)
		}
		if err := json.Unmarshal(raw[i], target); err != nil {
			return fmt.Errorf("pair label %d must be a string: %w", i, err)
		}
	}
	return nil
}

// MarshalJSON 编码为 ["from","to"]
func (p EdgePair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.From, p.To})
}

// CalculateRequest 链计算请求，形如 [["A","B"],["B","C"]]
type CalculateRequest []EdgePair

// Pairs 转换为计算核心的输入
func (r CalculateRequest) Pairs() []chain.Pair {
	pairs := make([]chain.Pair, len(r))
	for i, p := range r {
		pairs[i] = chain.P(p.From, p.To)
	}
	return pairs
}

// NewCalculateRequest 由计算核心的输入构造请求
func NewCalculateRequest(pairs []chain.Pair) CalculateRequest {
	req := make(CalculateRequest, len(pairs))
	for i, p := range pairs {
		req[i] = EdgePair{From: p.From, To: p.To}
	}
	return req
}

// HistoryQueryRequest 计算历史查询请求
type HistoryQueryRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=success failed"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

// GetDefaultLimit 获取默认limit
func (r *HistoryQueryRequest) GetDefaultLimit() int {
	if r.Limit <= 0 {
		return 20
	}
	return r.Limit
}
