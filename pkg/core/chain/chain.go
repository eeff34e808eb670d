// Package chain 根据一组无序的先后关系计算其构成的链的首尾节点
//
// 处理流程：标签驻留(Intern) -> 建图(BuildGraph) -> 拓扑排序(TopologicalSort) -> 提取首尾(Extract)。
// 所有数据都在单次调用内创建和丢弃，包内没有共享可变状态，可被并发调用。
package chain

// Extract 校验排序结果覆盖全部节点，并返回首尾节点标签
func Extract(g *Graph, order Ordering) (Result, error) {
	n := g.NodeCount()
	if n == 0 {
		return Result{}, invalid("no nodes")
	}
	if len(order) != n {
		return Result{}, invalid("ordering does not cover every node")
	}
	return Result{
		First: g.Label(order[0]),
		Last:  g.Label(order[n-1]),
	}, nil
}

// Calculate 计算先后关系构成的链的首尾节点
func Calculate(pairs []Pair) (Result, error) {
	g, order, err := sorted(pairs)
	if err != nil {
		return Result{}, err
	}
	return Extract(g, order)
}

// Resolve 计算完整的链（按拓扑顺序排列的全部标签）
// 校验规则与 Calculate 一致
func Resolve(pairs []Pair) (Path, error) {
	g, order, err := sorted(pairs)
	if err != nil {
		return nil, err
	}
	if _, err := Extract(g, order); err != nil {
		return nil, err
	}
	path := make(Path, len(order))
	for i, id := range order {
		path[i] = g.Label(id)
	}
	return path, nil
}

func sorted(pairs []Pair) (*Graph, Ordering, error) {
	table, err := Intern(pairs)
	if err != nil {
		return nil, nil, err
	}
	g := BuildGraph(table, pairs)
	order, err := TopologicalSort(g)
	if err != nil {
		return nil, nil, err
	}
	return g, order, nil
}
