package chain

// NodeID 节点ID，取值范围 [0, N)，按标签字典序分配
type NodeID uint32

// Pair 一条先后关系：From 必须排在 To 之前
type Pair struct {
	From string
	To   string
}

// P 创建 Pair（测试与调用方的简写）
func P(from, to string) Pair {
	return Pair{From: from, To: to}
}

// Ordering 拓扑排序结果（NodeID序列）
type Ordering []NodeID

// Result 链的首尾节点
type Result struct {
	First string
	Last  string
}

// Path 完整的链（按拓扑顺序排列的标签）
type Path []string
