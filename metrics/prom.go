package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prom は Prometheus を使ったメトリクス実装です。
type Prom struct {
	setNew    prometheus.Counter
	setUpdate prometheus.Counter
	getHit    prometheus.Counter
	getMiss   prometheus.Counter
	evicted   prometheus.Counter
	removed   prometheus.Counter
	size      prometheus.Gauge
}

// NewProm は Prometheus を使ったメトリクス実装を初期化し、reg に登録します。
// reg が nil の場合は prometheus.DefaultRegisterer を使います。
func NewProm(namespace string, reg prometheus.Registerer) (*Prom, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	makeC := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}
	makeG := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}

	p := &Prom{
		setNew:    makeC("set_new_total", "Number of new keys admitted"),
		setUpdate: makeC("set_update_total", "Number of existing keys overwritten"),
		getHit:    makeC("get_hit_total", "Number of cache hits"),
		getMiss:   makeC("get_miss_total", "Number of cache misses"),
		evicted:   makeC("evicted_total", "Number of entries evicted by LFU"),
		removed:   makeC("removed_total", "Number of entries removed explicitly"),
		size:      makeG("entries", "Current number of entries in the cache"),
	}

	for _, c := range []prometheus.Collector{
		p.setNew, p.setUpdate, p.getHit, p.getMiss, p.evicted, p.removed, p.size,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// IncSetNew は新しいキーが追加されたことをカウントします。
func (p *Prom) IncSetNew() { p.setNew.Inc() }

// IncSetUpdate は既存のキーが更新されたことをカウントします。
func (p *Prom) IncSetUpdate() { p.setUpdate.Inc() }

// IncGetHit はキャッシュヒットをカウントします。
func (p *Prom) IncGetHit() { p.getHit.Inc() }

// IncGetMiss はキャッシュミスをカウントします。
func (p *Prom) IncGetMiss() { p.getMiss.Inc() }

// AddEvicted は追い出されたアイテムの数を加算します。
func (p *Prom) AddEvicted(n int) {
	if n > 0 {
		p.evicted.Add(float64(n))
	}
}

// IncRemoved は明示削除をカウントします。
func (p *Prom) IncRemoved() { p.removed.Inc() }

// SetSize は現在のエントリ数を設定します。
func (p *Prom) SetSize(n int) {
	if n >= 0 {
		p.size.Set(float64(n))
	}
}
