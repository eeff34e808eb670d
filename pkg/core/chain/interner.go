package chain

import (
	"math"
	"sort"
)

// maxNodes NodeID可表示的最大节点数
var maxNodes = uint64(math.MaxUint32)

// NodeTable 标签驻留表：标签 <-> NodeID 双向映射
type NodeTable struct {
	labels []string          // NodeID -> 标签（按字典序）
	ids    map[string]NodeID // 标签 -> NodeID
}

// Intern 收集所有出现过的标签，按字典序去重后分配稠密ID
// 输入可以为空；标签数超过NodeID范围时返回 KindInvalid
func Intern(pairs []Pair) (*NodeTable, error) {
	seen := make(map[string]struct{}, len(pairs)*2)
	for _, p := range pairs {
		seen[p.From] = struct{}{}
		seen[p.To] = struct{}{}
	}
	if uint64(len(seen)) > maxNodes {
		return nil, invalid("too many distinct nodes")
	}

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	ids := make(map[string]NodeID, len(labels))
	for i, label := range labels {
		ids[label] = NodeID(i)
	}
	return &NodeTable{labels: labels, ids: ids}, nil
}

// Len 节点总数
func (t *NodeTable) Len() int {
	return len(t.labels)
}

// ID 查询标签对应的NodeID
func (t *NodeTable) ID(label string) (NodeID, bool) {
	id, ok := t.ids[label]
	return id, ok
}

// Label 查询NodeID对应的标签
func (t *NodeTable) Label(id NodeID) string {
	return t.labels[id]
}

// Labels 返回全部标签（按NodeID顺序）
func (t *NodeTable) Labels() []string {
	out := make([]string, len(t.labels))
	copy(out, t.labels)
	return out
}
