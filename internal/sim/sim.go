// Package sim は同じアクセス列を LFU と LRU のキャッシュに流し、ヒット率を比較します。
package sim

import (
	"context"
	"fmt"
	"iter"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/amakane-hakari/lfu"
	"github.com/amakane-hakari/lfu/internal/workload"
	"github.com/amakane-hakari/lfu/metrics"
)

type logLike interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Result は 1 ポリシー分の集計結果です。
type Result struct {
	Policy   string  `json:"policy"`
	Ops      int     `json:"ops"`
	Gets     int     `json:"gets"`
	Hits     int     `json:"hits"`
	Misses   int     `json:"misses"`
	HitRatio float64 `json:"hit_ratio"`
}

func (r *Result) record(hit bool) {
	r.Gets++
	if hit {
		r.Hits++
	} else {
		r.Misses++
	}
}

func (r *Result) finish() {
	if r.Gets > 0 {
		r.HitRatio = float64(r.Hits) / float64(r.Gets)
	}
}

// Report は比較結果です。
type Report struct {
	LFU Result `json:"lfu"`
	LRU Result `json:"lru"`
}

// Runner はシミュレーションを実行します。
type Runner struct {
	Capacity int
	Metrics  metrics.Interface // LFU 側にのみ渡す。nil 可
	Logger   logLike           // nil 可
}

// checkEvery 件ごとにキャンセルを確認する。
const checkEvery = 1024

// Run は ops を最後まで、または ctx がキャンセルされるまで流します。
// Get がミスした場合は同じキーを Set する (リードスルーの補充)。
func (r *Runner) Run(ctx context.Context, ops iter.Seq[workload.Op]) (*Report, error) {
	var opts []lfu.Option
	if r.Metrics != nil {
		opts = append(opts, lfu.WithMetrics(r.Metrics))
	}
	if r.Logger != nil {
		opts = append(opts, lfu.WithLogger(r.Logger))
	}
	lfuCache, err := lfu.New[string, int](r.Capacity, opts...)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	lruCache, err := lru.New[string, int](r.Capacity)
	if err != nil {
		return nil, fmt.Errorf("sim: lru baseline: %w", err)
	}

	rep := &Report{LFU: Result{Policy: "lfu"}, LRU: Result{Policy: "lru"}}
	n := 0
	for op := range ops {
		if n%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return rep, err
			}
		}
		n++

		switch op.Kind {
		case workload.Get:
			_, hit := lfuCache.Get(op.Key)
			rep.LFU.record(hit)
			if !hit {
				lfuCache.Set(op.Key, n)
			}
			_, hit = lruCache.Get(op.Key)
			rep.LRU.record(hit)
			if !hit {
				lruCache.Add(op.Key, n)
			}
		case workload.Set:
			lfuCache.Set(op.Key, n)
			lruCache.Add(op.Key, n)
		}
		rep.LFU.Ops++
		rep.LRU.Ops++
	}
	rep.LFU.finish()
	rep.LRU.finish()

	if r.Logger != nil {
		r.Logger.Info("sim.done",
			"ops", n,
			"lfu_hit_ratio", rep.LFU.HitRatio,
			"lru_hit_ratio", rep.LRU.HitRatio,
			"lfu_len", lfuCache.Len(),
			"lru_len", lruCache.Len(),
		)
	}
	return rep, nil
}
