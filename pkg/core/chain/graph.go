package chain

import "fmt"

// edgeKey 有向边（用于重复边折叠）
type edgeKey struct {
	from NodeID
	to   NodeID
}

// Graph 由NodeID构成的有向图
type Graph struct {
	table        *NodeTable
	out          [][]NodeID      // 出边邻接表（已去重，按插入顺序）
	inDegree     []int           // 去重后的入度
	multiplicity map[edgeKey]int // 每条逻辑边在输入中出现的次数
}

// BuildGraph 将先后关系转换为有向图，重复边折叠为一条
// table 必须由 Intern(pairs) 生成；标签缺失属于内部不变量被破坏，直接panic
func BuildGraph(table *NodeTable, pairs []Pair) *Graph {
	n := table.Len()
	g := &Graph{
		table:        table,
		out:          make([][]NodeID, n),
		inDegree:     make([]int, n),
		multiplicity: make(map[edgeKey]int, len(pairs)),
	}
	for _, p := range pairs {
		from := g.mustID(p.From)
		to := g.mustID(p.To)
		key := edgeKey{from: from, to: to}
		g.multiplicity[key]++
		if g.multiplicity[key] > 1 {
			continue
		}
		g.out[from] = append(g.out[from], to)
		g.inDegree[to]++
	}
	return g
}

func (g *Graph) mustID(label string) NodeID {
	id, ok := g.table.ID(label)
	if !ok {
		panic(fmt.Sprintf("chain: label %q missing from node table", label))
	}
	return id
}

// NodeCount 节点数
func (g *Graph) NodeCount() int {
	return g.table.Len()
}

// EdgeCount 去重后的边数
func (g *Graph) EdgeCount() int {
	return len(g.multiplicity)
}

// Successors 返回节点的直接后继
func (g *Graph) Successors(id NodeID) []NodeID {
	return g.out[id]
}

// InDegree 返回节点去重后的入度
func (g *Graph) InDegree(id NodeID) int {
	return g.inDegree[id]
}

// Multiplicity 返回边 from->to 在输入中出现的次数（不存在时为0）
func (g *Graph) Multiplicity(from, to NodeID) int {
	return g.multiplicity[edgeKey{from: from, to: to}]
}

// Label 返回节点标签
func (g *Graph) Label(id NodeID) string {
	return g.table.Label(id)
}
