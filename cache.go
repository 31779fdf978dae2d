// Package lfu は容量固定の LFU キャッシュを提供します。
//
// 同じ頻度のキーが複数ある場合は、そのバケットに最も早く置かれたもの
// (最も長く触られていないもの) を追い出します。参照・挿入・追い出しは
// いずれも O(1) です。
//
// Cache はゴルーチンセーフではありません。共有する場合は呼び出し側で排他してください。
package lfu

import (
	"fmt"

	"github.com/amakane-hakari/lfu/metrics"
)

// Cache は LFU (同頻度は LRU) で追い出しを行うキャッシュです。
type Cache[K comparable, V any] struct {
	cfg      Config
	store    valueStore[K, V]
	index    freqIndex[K, V]
	capacity int
	minFreq  int
}

// New は容量 capacity の空のキャッシュを作成します。
// capacity が 1 未満なら ErrInvalidCapacity を返します。
func New[K comparable, V any](capacity int, opts ...Option) (*Cache[K, V], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("new cache with capacity %d: %w", capacity, ErrInvalidCapacity)
	}
	cfg := Config{Metrics: metrics.Noop{}}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Noop{}
	}
	return &Cache[K, V]{
		cfg:      cfg,
		store:    newValueStore[K, V](),
		index:    newFreqIndex[K, V](),
		capacity: capacity,
	}, nil
}

// MustNew は New と同じですが、エラー時に panic します。
func MustNew[K comparable, V any](capacity int, opts ...Option) *Cache[K, V] {
	c, err := New[K, V](capacity, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len は保持しているエントリ数を返します。
func (c *Cache[K, V]) Len() int { return c.store.count() }

// Cap は生成時に指定した容量を返します。
func (c *Cache[K, V]) Cap() int { return c.capacity }

// Contains はキーが存在するかを返します。頻度は変化しません。
func (c *Cache[K, V]) Contains(key K) bool { return c.store.contains(key) }

// Set はキーに値をセットします。
// 既存キーなら値を上書きして頻度を 1 上げ、新規キーなら満杯時に 1 件追い出してから頻度 1 で追加します。
func (c *Cache[K, V]) Set(key K, value V) {
	if e, ok := c.store.lookupMut(key); ok {
		e.val = value
		c.bump(e)
		c.cfg.Metrics.IncSetUpdate()
		if c.cfg.Logger != nil {
			c.cfg.Logger.Debug("lfu.update", "key", key, "freq", e.freq)
		}
		return
	}

	if c.store.count() >= c.capacity {
		c.evict()
	}

	e := &entry[K, V]{key: key, val: value, freq: 1}
	c.store.insert(key, e)
	c.minFreq = 1
	c.index.insertIntoBucket(1, e)

	c.cfg.Metrics.IncSetNew()
	c.cfg.Metrics.SetSize(c.store.count())
	if c.cfg.Logger != nil {
		c.cfg.Logger.Debug("lfu.set", "key", key)
	}
}

// Get はキーに対応する値を返し、頻度を 1 上げます。存在しなければ ok=false です。
func (c *Cache[K, V]) Get(key K) (V, bool) {
	e, ok := c.touch(key)
	if !ok {
		var zero V
		return zero, false
	}
	return e.val, true
}

// GetMut は値へのポインタを返し、頻度を 1 上げます。
// ポインタ経由の書き換えはキャッシュ内の値に反映されます。エントリが削除された後は無関係になります。
func (c *Cache[K, V]) GetMut(key K) (*V, bool) {
	e, ok := c.touch(key)
	if !ok {
		return nil, false
	}
	return &e.val, true
}

// Peek は頻度を変えずに値を返します。
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	e, ok := c.store.lookup(key)
	if !ok {
		var zero V
		return zero, false
	}
	return e.val, true
}

// At は存在が確定しているキーの値を返します。頻度は変化しません。
// キーが無い場合は ErrKeyNotFound で panic します。
func (c *Cache[K, V]) At(key K) V {
	e, ok := c.store.lookup(key)
	if !ok {
		panic(fmt.Errorf("at %v: %w", key, ErrKeyNotFound))
	}
	return e.val
}

// Frequency はキーの現在の参照頻度を返します。
func (c *Cache[K, V]) Frequency(key K) (int, bool) {
	e, ok := c.store.lookup(key)
	if !ok {
		return 0, false
	}
	return e.freq, true
}

// Remove はキーを削除し、存在していたかを返します。
func (c *Cache[K, V]) Remove(key K) bool {
	e, ok := c.store.lookup(key)
	if !ok {
		return false
	}
	c.index.removeFromBucket(e.freq, e)
	c.store.delete(key)

	c.cfg.Metrics.IncRemoved()
	c.cfg.Metrics.SetSize(c.store.count())
	if c.cfg.Logger != nil {
		c.cfg.Logger.Debug("lfu.remove", "key", key, "freq", e.freq)
	}
	return true
}

func (c *Cache[K, V]) touch(key K) (*entry[K, V], bool) {
	e, ok := c.store.lookupMut(key)
	if !ok {
		c.cfg.Metrics.IncGetMiss()
		return nil, false
	}
	c.bump(e)
	c.cfg.Metrics.IncGetHit()
	return e, true
}

// bump は e を次の頻度のバケット末尾へ移します。
func (c *Cache[K, V]) bump(e *entry[K, V]) {
	f := e.freq
	c.index.removeFromBucket(f, e)
	if f == c.minFreq && c.index.isBucketEmpty(f) {
		c.minFreq++
	}
	e.freq = f + 1
	c.index.insertIntoBucket(e.freq, e)
}

// evict は minFreq のバケットで最も古いエントリを追い出します。
// バケットが空なのは内部状態の破損なので panic します。
func (c *Cache[K, V]) evict() {
	victim, ok := c.index.popOldest(c.minFreq)
	if !ok {
		panic(fmt.Errorf("lfu: invariant violated: no entry at min frequency %d (len=%d): %w",
			c.minFreq, c.store.count(), ErrKeyNotFound))
	}
	c.store.delete(victim.key)

	c.cfg.Metrics.AddEvicted(1)
	if c.cfg.Logger != nil {
		c.cfg.Logger.Info("lfu.evict", "key", victim.key, "freq", victim.freq)
	}
}
