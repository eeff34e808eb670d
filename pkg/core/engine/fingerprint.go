package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sort"

	"github.com/LENAX/chain-engine/pkg/core/chain"
)

// Fingerprint 输入指纹
type Fingerprint struct {
	Hash      string // 十六进制sha256
	NodeCount int    // 不同标签数
	EdgeCount int    // 去重后的边数
}

// ComputeFingerprint 计算边集合的指纹
// 链计算结果只取决于去重后的边集合，因此顺序和重复不影响指纹
func ComputeFingerprint(pairs []chain.Pair) Fingerprint {
	uniq := make([]chain.Pair, 0, len(pairs))
	seen := make(map[chain.Pair]struct{}, len(pairs))
	labels := make(map[string]struct{}, len(pairs)*2)
	for _, p := range pairs {
		labels[p.From] = struct{}{}
		labels[p.To] = struct{}{}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		uniq = append(uniq, p)
	}
	sort.Slice(uniq, func(i, j int) bool {
		if uniq[i].From != uniq[j].From {
			return uniq[i].From < uniq[j].From
		}
		return uniq[i].To < uniq[j].To
	})

	h := sha256.New()
	var lenBuf [4]byte
	write := func(s string) {
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(s)))
		h.Write(lenBuf[:])
		h.Write([]byte(s))
	}
	for _, p := range uniq {
		write(p.From)
		write(p.To)
	}

	return Fingerprint{
		Hash:      hex.EncodeToString(h.Sum(nil)),
		NodeCount: len(labels),
		EdgeCount: len(uniq),
	}
}
