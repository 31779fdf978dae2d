// Package workload はキャッシュに流す合成アクセス列を生成します。
package workload

import (
	"fmt"
	"iter"
	"math/rand"
)

// Kind は操作の種類です。
type Kind int

const (
	// Get は読み取り操作です。
	Get Kind = iota
	// Set は書き込み操作です。
	Set
)

func (k Kind) String() string {
	switch k {
	case Get:
		return "GET"
	case Set:
		return "SET"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Op は 1 回分の操作です。
type Op struct {
	Kind Kind
	Key  string
}

// Dist はキーの分布です。
type Dist string

const (
	// Uniform は全キーを等確率で選びます。
	Uniform Dist = "uniform"
	// Zipf は少数のキーに偏ったアクセスを生成します。
	Zipf Dist = "zipf"
)

// Generator は 決定的なアクセス列を生成する構造体です。ゴルーチンセーフではありません。
type Generator struct {
	Keys      int
	ReadRatio float64

	rnd  *rand.Rand
	zipf *rand.Zipf
}

// NewGenerator は指定されたパラメータに基づいて新しい Generator を作成します。
// zipfS は dist が Zipf の場合のみ使われ、1 より大きい必要があります。
func NewGenerator(seed int64, keys int, readRatio float64, dist Dist, zipfS float64) (*Generator, error) {
	if keys < 1 {
		return nil, fmt.Errorf("workload: keys must be >= 1, got %d", keys)
	}
	g := &Generator{
		Keys:      keys,
		ReadRatio: clamp(readRatio, 0, 1),
		rnd:       rand.New(rand.NewSource(seed)),
	}
	switch dist {
	case Uniform:
	case Zipf:
		z := rand.NewZipf(g.rnd, zipfS, 1, uint64(keys-1))
		if z == nil {
			return nil, fmt.Errorf("workload: invalid zipf parameter s=%v", zipfS)
		}
		g.zipf = z
	default:
		return nil, fmt.Errorf("workload: unknown dist %q", dist)
	}
	return g, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Next は次の操作を返します。
func (g *Generator) Next() Op {
	var k int
	if g.zipf != nil {
		k = int(g.zipf.Uint64())
	} else {
		k = g.rnd.Intn(g.Keys)
	}
	kind := Set
	if g.rnd.Float64() < g.ReadRatio {
		kind = Get
	}
	return Op{Kind: kind, Key: fmt.Sprintf("k%06d", k)}
}

// Ops は n 件の操作を列挙します。
func (g *Generator) Ops(n int) iter.Seq[Op] {
	return func(yield func(Op) bool) {
		for range n {
			if !yield(g.Next()) {
				return
			}
		}
	}
}
