package lfu

import (
	"errors"
	"runtime"
	"testing"

	"github.com/amakane-hakari/lfu/metrics"
)

func TestCache_New_InvalidCapacity(t *testing.T) {
	for _, n := range []int{0, -1} {
		c, err := New[int, int](n)
		if !errors.Is(err, ErrInvalidCapacity) {
			t.Fatalf("capacity %d: expected ErrInvalidCapacity, got %v", n, err)
		}
		if c != nil {
			t.Fatalf("capacity %d: expected nil cache", n)
		}
	}
}

func TestCache_MustNew_Panics(t *testing.T) {
	defer func() {
		rec := recover()
		err, ok := rec.(error)
		if !ok || !errors.Is(err, ErrInvalidCapacity) {
			t.Fatalf("expected ErrInvalidCapacity panic, got %v", rec)
		}
	}()
	MustNew[int, int](0)
}

func TestCache_SetGet(t *testing.T) {
	c := MustNew[int, int](20)
	c.Set(10, 10)
	c.Set(20, 30)

	if v, ok := c.Get(10); !ok || v != 10 {
		t.Fatalf("expected 10, got %v (ok=%v)", v, ok)
	}
	if _, ok := c.Get(30); ok {
		t.Fatalf("expected 30 to be absent")
	}
}

func TestCache_OverwriteKeepsHotKey(t *testing.T) {
	// 2 と 3 を置き、3 を上書きすると 3 の頻度が上がる。4 追加で 2 が追い出される。
	c := MustNew[int, int](2)
	c.Set(2, 2)
	c.Set(3, 3)
	c.Set(3, 30)
	c.Set(4, 4)

	if _, ok := c.Get(2); ok {
		t.Fatalf("2 should be evicted")
	}
	if v, ok := c.Get(3); !ok || v != 30 {
		t.Fatalf("expected 30, got %v (ok=%v)", v, ok)
	}
}

func TestCache_TieBreakEvictsOldest(t *testing.T) {
	c := MustNew[int, int](2)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Set(3, 3)

	if _, ok := c.Get(1); ok {
		t.Fatalf("1 should be evicted")
	}
	if !c.Contains(2) || !c.Contains(3) {
		t.Fatalf("2 and 3 should remain")
	}
}

func TestCache_FrequencyUpdate(t *testing.T) {
	c := MustNew[int, int](2)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Set(1, 3)
	c.Set(10, 10)

	if _, ok := c.Get(2); ok {
		t.Fatalf("2 should be evicted")
	}
	if v := c.At(10); v != 10 {
		t.Fatalf("expected 10, got %v", v)
	}
}

func TestCache_At(t *testing.T) {
	c := MustNew[int, int](2)
	c.Set(1, 1)
	if v := c.At(1); v != 1 {
		t.Fatalf("expected 1, got %v", v)
	}
	if f, _ := c.Frequency(1); f != 1 {
		t.Fatalf("At must not bump frequency, got %d", f)
	}
}

func TestCache_At_MissingPanics(t *testing.T) {
	c := MustNew[string, int](2)
	defer func() {
		rec := recover()
		err, ok := rec.(error)
		if !ok || !errors.Is(err, ErrKeyNotFound) {
			t.Fatalf("expected ErrKeyNotFound panic, got %v", rec)
		}
	}()
	_ = c.At("missing")
}

func TestCache_Remove(t *testing.T) {
	c := MustNew[int, int](2)
	c.Set(1, 1)
	c.Set(2, 2)

	if !c.Remove(1) {
		t.Fatalf("Remove should report the key existed")
	}
	if c.Remove(1) {
		t.Fatalf("second Remove should report false")
	}
	if c.Len() != 1 {
		t.Fatalf("expected len=1 got %d", c.Len())
	}
	if _, ok := c.Get(1); ok {
		t.Fatalf("1 should be removed")
	}

	c.Set(3, 3)
	c.Set(4, 4)

	if _, ok := c.Get(2); ok {
		t.Fatalf("2 should be evicted")
	}
	if v, ok := c.Get(3); !ok || v != 3 {
		t.Fatalf("expected 3, got %v (ok=%v)", v, ok)
	}
}

func TestCache_RemoveAbsent(t *testing.T) {
	c := MustNew[int, int](1)
	if c.Remove(42) {
		t.Fatalf("Remove on empty cache should be false")
	}
}

func TestCache_Duplicates(t *testing.T) {
	c := MustNew[int, int](2)
	c.Set(1, 1)
	c.Set(1, 2)
	c.Set(1, 3)
	c.Set(5, 20)

	if v := c.At(1); v != 3 {
		t.Fatalf("expected 3, got %v", v)
	}
	if f, _ := c.Frequency(1); f != 3 {
		t.Fatalf("expected freq 3, got %d", f)
	}
	if c.Len() != 2 {
		t.Fatalf("expected len=2 got %d", c.Len())
	}
}

func TestCache_GetMut(t *testing.T) {
	c := MustNew[string, []int](2)
	c.Set("a", []int{1})

	p, ok := c.GetMut("a")
	if !ok {
		t.Fatalf("expected a")
	}
	*p = append(*p, 2)

	v, _ := c.Peek("a")
	if len(v) != 2 || v[1] != 2 {
		t.Fatalf("mutation not visible: %v", v)
	}
	if f, _ := c.Frequency("a"); f != 2 {
		t.Fatalf("GetMut should bump frequency, got %d", f)
	}
	if p, ok := c.GetMut("missing"); ok || p != nil {
		t.Fatalf("expected miss")
	}
}

func TestCache_ContainsAndPeekDoNotBump(t *testing.T) {
	c := MustNew[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	for range 5 {
		c.Contains("a")
		c.Peek("a")
	}
	c.Set("c", 3)
	if c.Contains("a") {
		t.Fatalf("a should be evicted since Contains/Peek do not count as access")
	}
}

func TestCache_BumpedKeySurvives(t *testing.T) {
	c := MustNew[string, int](3)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	c.Get("a")
	c.Get("b")

	// c は唯一の頻度 1
	c.Set("d", 4)
	if c.Contains("c") {
		t.Fatalf("c should be evicted")
	}

	// 頻度 1 は d のみ
	c.Set("e", 5)
	if c.Contains("d") {
		t.Fatalf("d should be evicted")
	}
	if !c.Contains("a") || !c.Contains("b") {
		t.Fatalf("a and b should remain")
	}
}

func TestCache_TieBreakUsesBucketPlacementOrder(t *testing.T) {
	// a が最初に挿入されたが、頻度 2 のバケットへ最初に移ったのは b。
	c := MustNew[string, int](3)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	c.Get("b")
	c.Get("a")
	c.Get("c")

	c.Set("d", 4)
	if c.Contains("b") {
		t.Fatalf("b should be evicted: oldest placement in min-frequency bucket")
	}
	if !c.Contains("a") || !c.Contains("c") || !c.Contains("d") {
		t.Fatalf("a, c, d should remain")
	}
}

func TestCache_MinFrequencyAdvances(t *testing.T) {
	c := MustNew[int, int](2)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Get(1)
	c.Get(2)
	c.Get(2)
	// 1: freq 2, 2: freq 3
	c.Set(3, 3)
	if c.Contains(1) {
		t.Fatalf("1 has the lowest frequency and should be evicted")
	}
	if !c.Contains(2) || !c.Contains(3) {
		t.Fatalf("2 and 3 should remain")
	}
}

func TestCache_LenNeverExceedsCapacity(t *testing.T) {
	c := MustNew[int, int](5)
	for i := range 100 {
		c.Set(i%13, i)
		if i%3 == 0 {
			c.Get(i % 7)
		}
		if c.Len() > c.Cap() {
			t.Fatalf("len %d exceeds cap %d at step %d", c.Len(), c.Cap(), i)
		}
	}
}

func TestCache_Metrics(t *testing.T) {
	m := metrics.NewSimple()
	c := MustNew[string, int](2, WithMetrics(m))
	c.Set("a", 1)
	c.Set("a", 2)
	c.Set("b", 3)
	c.Set("c", 4) // b を追い出し
	_, _ = c.Get("a")
	_, _ = c.Get("b")
	c.Remove("c")

	s := m.Snapshot()
	if s.SetNew != 3 {
		t.Fatalf("SetNew want 3 got %d", s.SetNew)
	}
	if s.SetUpdate != 1 {
		t.Fatalf("SetUpdate want 1 got %d", s.SetUpdate)
	}
	if s.GetHit != 1 || s.GetMiss != 1 {
		t.Fatalf("hit/miss want 1/1 got %d/%d", s.GetHit, s.GetMiss)
	}
	if s.Evicted != 1 {
		t.Fatalf("Evicted want 1 got %d", s.Evicted)
	}
	if s.Removed != 1 {
		t.Fatalf("Removed want 1 got %d", s.Removed)
	}
	if s.Size != 1 {
		t.Fatalf("Size want 1 got %d", s.Size)
	}
}

type recordLogger struct {
	msgs []string
}

func (l *recordLogger) Debug(msg string, _ ...any) { l.msgs = append(l.msgs, msg) }
func (l *recordLogger) Info(msg string, _ ...any)  { l.msgs = append(l.msgs, msg) }
func (l *recordLogger) Error(msg string, _ ...any) { l.msgs = append(l.msgs, msg) }

func TestCache_Logger(t *testing.T) {
	l := &recordLogger{}
	c := MustNew[int, int](1, WithLogger(l))
	c.Set(1, 1)
	c.Set(1, 2)
	c.Set(2, 2)
	c.Remove(2)

	want := []string{"lfu.set", "lfu.update", "lfu.evict", "lfu.set", "lfu.remove"}
	if len(l.msgs) != len(want) {
		t.Fatalf("want %v got %v", want, l.msgs)
	}
	for i := range want {
		if l.msgs[i] != want[i] {
			t.Fatalf("want %v got %v", want, l.msgs)
		}
	}
}

func TestCache_EvictOnCorruptedStatePanics(t *testing.T) {
	c := MustNew[int, int](1)
	c.Set(1, 1)
	c.minFreq = 7 // 破損状態を作る

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on empty min-frequency bucket")
		}
	}()
	c.Set(2, 2)
}

func TestCache_NewDoesNotPreallocateCapacity(t *testing.T) {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	c := MustNew[int, int](20_000_000)
	runtime.ReadMemStats(&after)

	if d := after.TotalAlloc - before.TotalAlloc; d > 1<<20 {
		t.Fatalf("empty cache with capacity %d allocated %d bytes", c.Cap(), d)
	}
}

func TestCache_EvictAfterRemoveEmptiedCache(t *testing.T) {
	c := MustNew[string, int](2)
	c.Set("a", 1)
	c.Get("a") // 最小頻度は 2 に進む
	if !c.Remove("a") {
		t.Fatalf("expected a to be removed")
	}

	c.Set("b", 2)
	c.Set("c", 3)
	c.Get("c")
	c.Set("d", 4) // 頻度 1 の b が追い出される

	if c.Contains("b") {
		t.Fatalf("expected b to be evicted")
	}
	if !c.Contains("c") || !c.Contains("d") || c.Len() != 2 {
		t.Fatalf("unexpected contents after eviction, len=%d", c.Len())
	}
}
