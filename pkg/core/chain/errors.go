package chain

import (
	"errors"
	"fmt"
)

// 哨兵错误，便于调用方通过 errors.Is 判断错误类别
var (
	// ErrInvalid 输入无法构成有效链（空输入、节点数溢出、排序结果与节点数不一致）
	ErrInvalid = errors.New("invalid data")
	// ErrCycle 输入构成的图中存在环
	ErrCycle = errors.New("cycle detected")
)

// ErrorKind 链计算错误类别
type ErrorKind int

const (
	// KindInvalid 无效输入
	KindInvalid ErrorKind = iota + 1
	// KindCycle 检测到环
	KindCycle
)

// String 返回错误类别名称（用于响应头和历史记录）
func (k ErrorKind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindCycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// ChainError 链计算错误（带类别标签）
type ChainError struct {
	Kind   ErrorKind
	Label  string // KindCycle 时为环上（或被环阻塞）的节点标签
	Reason string // KindInvalid 时的补充说明，可为空
}

func (e *ChainError) Error() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindCycle:
		return fmt.Sprintf("cycle detected in node %q", e.Label)
	default:
		if e.Reason == "" {
			return ErrInvalid.Error()
		}
		return fmt.Sprintf("%s: %s", ErrInvalid.Error(), e.Reason)
	}
}

// Unwrap 返回对应的哨兵错误
func (e *ChainError) Unwrap() error {
	if e.Kind == KindCycle {
		return ErrCycle
	}
	return ErrInvalid
}

// invalid 创建 KindInvalid 错误
func invalid(reason string) *ChainError {
	return &ChainError{Kind: KindInvalid, Reason: reason}
}

// cycleAt 创建 KindCycle 错误
func cycleAt(label string) *ChainError {
	return &ChainError{Kind: KindCycle, Label: label}
}

// AsChainError 从错误链中提取 ChainError
func AsChainError(err error) (*ChainError, bool) {
	var ce *ChainError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
