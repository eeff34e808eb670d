package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGraph(t *testing.T, pairs ...Pair) *Graph {
	t.Helper()
	table, err := Intern(pairs)
	require.NoError(t, err)
	return BuildGraph(table, pairs)
}

// TestIntern 测试标签驻留
func TestIntern(t *testing.T) {
	table, err := Intern([]Pair{P("SFO", "ATL"), P("ATL", "EWR"), P("SFO", "EWR")})
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"ATL", "EWR", "SFO"}, table.Labels())

	id, ok := table.ID("SFO")
	require.True(t, ok)
	assert.Equal(t, NodeID(2), id)
	assert.Equal(t, "ATL", table.Label(0))

	_, ok = table.ID("JFK")
	assert.False(t, ok)
}

func TestIntern_Empty(t *testing.T) {
	table, err := Intern(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestIntern_TooManyNodes(t *testing.T) {
	old := maxNodes
	maxNodes = 2
	defer func() { maxNodes = old }()

	_, err := Intern([]Pair{P("a", "b"), P("b", "c")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

// TestBuildGraph 测试建图与重复边折叠
func TestBuildGraph(t *testing.T) {
	g := buildGraph(t, P("A", "B"), P("A", "B"), P("B", "C"))

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, 2, g.Multiplicity(0, 1))
	assert.Equal(t, 1, g.Multiplicity(1, 2))
	assert.Equal(t, 0, g.Multiplicity(2, 0))
	assert.Equal(t, 1, g.InDegree(1))
	assert.Equal(t, []NodeID{1}, g.Successors(0))
}

func TestBuildGraph_MissingLabelPanics(t *testing.T) {
	table, err := Intern([]Pair{P("A", "B")})
	require.NoError(t, err)
	assert.Panics(t, func() {
		BuildGraph(table, []Pair{P("A", "C")})
	})
}

// TestTopologicalSort_LowestIDFirst 多个可输出节点时ID最小者优先
func TestTopologicalSort_LowestIDFirst(t *testing.T) {
	// a、b、c 均无前驱；c -> d
	g := buildGraph(t, P("c", "d"), P("b", "d"), P("a", "d"))
	order, err := TopologicalSort(g)
	require.NoError(t, err)
	assert.Equal(t, Ordering{0, 1, 2, 3}, order)

	// 菱形：s -> {x, m} -> t，m 比 x 先输出
	g = buildGraph(t, P("s", "x"), P("s", "m"), P("x", "t"), P("m", "t"))
	order, err = TopologicalSort(g)
	require.NoError(t, err)
	labels := make([]string, len(order))
	for i, id := range order {
		labels[i] = g.Label(id)
	}
	assert.Equal(t, []string{"s", "m", "x", "t"}, labels)
}

// TestTopologicalSort_RespectsEdges 每条边的起点都排在终点之前
func TestTopologicalSort_RespectsEdges(t *testing.T) {
	pairs := []Pair{P("e", "f"), P("a", "c"), P("c", "e"), P("b", "c"), P("d", "f"), P("a", "d")}
	g := buildGraph(t, pairs...)
	order, err := TopologicalSort(g)
	require.NoError(t, err)
	require.Len(t, order, g.NodeCount())

	pos := make(map[NodeID]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, p := range pairs {
		from, _ := g.table.ID(p.From)
		to, _ := g.table.ID(p.To)
		assert.Less(t, pos[from], pos[to], "%s 应排在 %s 之前", p.From, p.To)
	}
}

func TestTopologicalSort_Cycle(t *testing.T) {
	g := buildGraph(t, P("a", "b"), P("b", "a"))
	_, err := TopologicalSort(g)
	ce, ok := AsChainError(err)
	require.True(t, ok)
	assert.Equal(t, KindCycle, ce.Kind)
	assert.Equal(t, "a", ce.Label)
}

// TestExtract 测试首尾提取的防御校验
func TestExtract(t *testing.T) {
	g := buildGraph(t, P("A", "B"))

	res, err := Extract(g, Ordering{0, 1})
	require.NoError(t, err)
	assert.Equal(t, Result{First: "A", Last: "B"}, res)

	_, err = Extract(g, Ordering{0})
	assert.ErrorIs(t, err, ErrInvalid)

	empty := buildGraph(t)
	_, err = Extract(empty, Ordering{})
	assert.ErrorIs(t, err, ErrInvalid)
}
