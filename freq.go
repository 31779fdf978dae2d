package lfu

import "container/list"

// freqIndex は頻度ごとのバケットを保持します。
// バケット内は Front = 最も古く置かれたもの, Back = 最新。
type freqIndex[K comparable, V any] struct {
	buckets map[int]*list.List
}

func newFreqIndex[K comparable, V any]() freqIndex[K, V] {
	return freqIndex[K, V]{buckets: make(map[int]*list.List)}
}

// insertIntoBucket は e を freq のバケット末尾に追加します。バケットは必要時に作成されます。
func (x *freqIndex[K, V]) insertIntoBucket(freq int, e *entry[K, V]) {
	b, ok := x.buckets[freq]
	if !ok {
		b = list.New()
		x.buckets[freq] = b
	}
	e.elem = b.PushBack(e)
}

// removeFromBucket は e をバケットから外します。
// 空になったバケットは破棄するため、呼び出し側は存在ではなく isBucketEmpty で判定すること。
func (x *freqIndex[K, V]) removeFromBucket(freq int, e *entry[K, V]) {
	b, ok := x.buckets[freq]
	if !ok || e.elem == nil {
		return
	}
	b.Remove(e.elem)
	e.elem = nil
	x.dropIfEmpty(freq, b)
}

func (x *freqIndex[K, V]) popOldest(freq int) (*entry[K, V], bool) {
	b, ok := x.buckets[freq]
	if !ok {
		return nil, false
	}
	front := b.Front()
	if front == nil {
		return nil, false
	}
	e := b.Remove(front).(*entry[K, V])
	e.elem = nil
	x.dropIfEmpty(freq, b)
	return e, true
}

// dropIfEmpty は空バケットを捨てます。頻度は単調増加するので残すと際限なく溜まる。
func (x *freqIndex[K, V]) dropIfEmpty(freq int, b *list.List) {
	if b.Len() == 0 {
		delete(x.buckets, freq)
	}
}

func (x *freqIndex[K, V]) isBucketEmpty(freq int) bool {
	return x.bucketLen(freq) == 0
}

func (x *freqIndex[K, V]) bucketLen(freq int) int {
	b, ok := x.buckets[freq]
	if !ok {
		return 0
	}
	return b.Len()
}

func (x *freqIndex[K, V]) reset() {
	x.buckets = make(map[int]*list.List)
}
