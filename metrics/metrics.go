// Package metrics はキャッシュの計測値を受け取る実装を提供します。
package metrics

import (
	"sync/atomic"
)

// Interface はメトリクス更新用抽象
type Interface interface {
	IncSetNew()
	IncSetUpdate()
	IncGetHit()
	IncGetMiss()
	AddEvicted(n int)
	IncRemoved()
	SetSize(n int)
}

// Noop は何もしないメトリクス実装
type Noop struct{}

// IncSetNew は何もしないメトリクス実装
func (Noop) IncSetNew() {}

// IncSetUpdate は何もしないメトリクス実装
func (Noop) IncSetUpdate() {}

// IncGetHit は何もしないメトリクス実装
func (Noop) IncGetHit() {}

// IncGetMiss は何もしないメトリクス実装
func (Noop) IncGetMiss() {}

// AddEvicted は何もしないメトリクス実装
func (Noop) AddEvicted(_ int) {}

// IncRemoved は何もしないメトリクス実装
func (Noop) IncRemoved() {}

// SetSize は何もしないメトリクス実装
func (Noop) SetSize(_ int) {}

// Simple はアトミックカウンタによるメトリクス実装です。
// 複数ゴルーチンから読み出しても安全です。
type Simple struct {
	SetNew    atomic.Uint64
	SetUpdate atomic.Uint64
	GetHit    atomic.Uint64
	GetMiss   atomic.Uint64
	Evicted   atomic.Uint64
	Removed   atomic.Uint64
	Size      atomic.Uint64
}

// NewSimple は新しい Simple メトリクスを作成します。
func NewSimple() *Simple { return &Simple{} }

// IncSetNew は新しいキーが追加されたことをカウントします。
func (m *Simple) IncSetNew() { m.SetNew.Add(1) }

// IncSetUpdate は既存のキーが更新されたことをカウントします。
func (m *Simple) IncSetUpdate() { m.SetUpdate.Add(1) }

// IncGetHit はキャッシュヒットをカウントします。
func (m *Simple) IncGetHit() { m.GetHit.Add(1) }

// IncGetMiss はキャッシュミスをカウントします。
func (m *Simple) IncGetMiss() { m.GetMiss.Add(1) }

// AddEvicted はエビクションされたアイテムの数を加算します。
func (m *Simple) AddEvicted(n int) {
	if n > 0 {
		m.Evicted.Add(uint64(n))
	}
}

// IncRemoved は明示削除をカウントします。
func (m *Simple) IncRemoved() { m.Removed.Add(1) }

// SetSize は現在のエントリ数を設定します。
func (m *Simple) SetSize(n int) {
	if n >= 0 {
		m.Size.Store(uint64(n))
	}
}

// Snapshot は Simple のある時点の値です。
type Snapshot struct {
	SetNew    uint64  `json:"set_new"`
	SetUpdate uint64  `json:"set_update"`
	GetHit    uint64  `json:"get_hit"`
	GetMiss   uint64  `json:"get_miss"`
	Evicted   uint64  `json:"evicted"`
	Removed   uint64  `json:"removed"`
	Size      uint64  `json:"size"`
	HitRatio  float64 `json:"hit_ratio"`
}

// Snapshot は現在のカウンタ値を読み出します。
func (m *Simple) Snapshot() Snapshot {
	s := Snapshot{
		SetNew:    m.SetNew.Load(),
		SetUpdate: m.SetUpdate.Load(),
		GetHit:    m.GetHit.Load(),
		GetMiss:   m.GetMiss.Load(),
		Evicted:   m.Evicted.Load(),
		Removed:   m.Removed.Load(),
		Size:      m.Size.Load(),
	}
	if total := s.GetHit + s.GetMiss; total > 0 {
		s.HitRatio = float64(s.GetHit) / float64(total)
	}
	return s
}

// Multi は複数の実装へ同じイベントを転送します。
type Multi []Interface

// IncSetNew は全実装へ転送します。
func (ms Multi) IncSetNew() {
	for _, m := range ms {
		m.IncSetNew()
	}
}

// IncSetUpdate は全実装へ転送します。
func (ms Multi) IncSetUpdate() {
	for _, m := range ms {
		m.IncSetUpdate()
	}
}

// IncGetHit は全実装へ転送します。
func (ms Multi) IncGetHit() {
	for _, m := range ms {
		m.IncGetHit()
	}
}

// IncGetMiss は全実装へ転送します。
func (ms Multi) IncGetMiss() {
	for _, m := range ms {
		m.IncGetMiss()
	}
}

// AddEvicted は全実装へ転送します。
func (ms Multi) AddEvicted(n int) {
	for _, m := range ms {
		m.AddEvicted(n)
	}
}

// IncRemoved は全実装へ転送します。
func (ms Multi) IncRemoved() {
	for _, m := range ms {
		m.IncRemoved()
	}
}

// SetSize は全実装へ転送します。
func (ms Multi) SetSize(n int) {
	for _, m := range ms {
		m.SetSize(n)
	}
}
