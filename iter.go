package lfu

import "iter"

// All は列挙を始めた時点のエントリを (キー, 値) で列挙します。順序は不定で、頻度は変化しません。
// 列挙中に追加されたキーは現れず、列挙中に削除・追い出されたキーは読み飛ばされます。
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		snap := make([]*entry[K, V], 0, c.store.count())
		for _, e := range c.store.m {
			snap = append(snap, e)
		}
		for _, e := range snap {
			if cur, ok := c.store.lookup(e.key); !ok || cur != e {
				continue
			}
			if !yield(e.key, e.val) {
				return
			}
		}
	}
}

// Drain は全エントリをキャッシュから切り離し、それを列挙するイテレータを返します。
// 呼び出した時点でキャッシュは空になり、そのまま再利用できます。
func (c *Cache[K, V]) Drain() iter.Seq2[K, V] {
	detached := c.store
	c.store = newValueStore[K, V]()
	c.index.reset()
	c.minFreq = 0
	c.cfg.Metrics.SetSize(0)

	return func(yield func(K, V) bool) {
		for k, e := range detached.m {
			e.elem = nil
			if !yield(k, e.val) {
				return
			}
		}
	}
}
