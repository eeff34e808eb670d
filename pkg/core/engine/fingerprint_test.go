package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LENAX/chain-engine/pkg/core/chain"
)

func TestComputeFingerprint(t *testing.T) {
	a := ComputeFingerprint([]chain.Pair{chain.P("ATL", "EWR"), chain.P("SFO", "ATL")})
	b := ComputeFingerprint([]chain.Pair{chain.P("SFO", "ATL"), chain.P("ATL", "EWR"), chain.P("SFO", "ATL")})

	assert.Equal(t, a.Hash, b.Hash, "顺序和重复不应影响指纹")
	assert.Len(t, a.Hash, 64)
	assert.Equal(t, 3, b.NodeCount)
	assert.Equal(t, 2, b.EdgeCount)

	c := ComputeFingerprint([]chain.Pair{chain.P("EWR", "ATL"), chain.P("SFO", "ATL")})
	assert.NotEqual(t, a.Hash, c.Hash, "方向不同指纹应不同")

	// 标签拼接有歧义时指纹仍应不同
	d := ComputeFingerprint([]chain.Pair{chain.P("ab", "c")})
	e := ComputeFingerprint([]chain.Pair{chain.P("a", "bc")})
	assert.NotEqual(t, d.Hash, e.Hash)

	empty := ComputeFingerprint(nil)
	assert.Equal(t, 0, empty.NodeCount)
	assert.Len(t, empty.Hash, 64)
}
