package chain

import (
	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"
)

// TopologicalSort 使用 Kahn 算法对图进行拓扑排序
//
// 同时存在多个可输出节点时，NodeID最小者优先（即标签字典序最小者优先）。
// 若仍有节点无法输出则说明存在环，返回 KindCycle 错误，
// 报告的节点为剩余节点中NodeID最小者（环上或被环阻塞的节点）。
//
// 复杂度：O((V+E) log V)，堆操作带来 log V 因子
func TopologicalSort(g *Graph) (Ordering, error) {
	n := g.NodeCount()
	remaining := make([]int, n)
	ready := binaryheap.NewWith(utils.IntComparator)
	for i := 0; i < n; i++ {
		remaining[i] = g.InDegree(NodeID(i))
		if remaining[i] == 0 {
			ready.Push(i)
		}
	}

	order := make(Ordering, 0, n)
	for !ready.Empty() {
		v, _ := ready.Pop()
		id := NodeID(v.(int))
		order = append(order, id)
		for _, next := range g.Successors(id) {
			remaining[next]--
			if remaining[next] == 0 {
				ready.Push(int(next))
			}
		}
	}

	if len(order) < n {
		// 剩余节点的入度均未清零，取其中ID最小者
		for i := 0; i < n; i++ {
			if remaining[i] > 0 {
				return nil, cycleAt(g.Label(NodeID(i)))
			}
		}
	}
	return order, nil
}
