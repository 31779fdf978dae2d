package lfu

import "container/list"

// entry はキーの唯一の所有者です。store と頻度バケットは同じ *entry を共有します。
type entry[K comparable, V any] struct {
	key  K
	val  V
	freq int
	elem *list.Element // 所属バケット内の位置
}

type valueStore[K comparable, V any] struct {
	m map[K]*entry[K, V]
}

// newValueStore は空の store を作成します。容量ぶんの事前確保はしません。
func newValueStore[K comparable, V any]() valueStore[K, V] {
	return valueStore[K, V]{m: make(map[K]*entry[K, V])}
}

// insert は e を登録し、既存エントリがあればそれを返します。
func (s *valueStore[K, V]) insert(key K, e *entry[K, V]) (prev *entry[K, V], existed bool) {
	prev, existed = s.m[key]
	s.m[key] = e
	return prev, existed
}

func (s *valueStore[K, V]) lookup(key K) (*entry[K, V], bool) {
	e, ok := s.m[key]
	return e, ok
}

// lookupMut は lookup と同じポインタを返します。呼び出し側が値を書き換える用途です。
func (s *valueStore[K, V]) lookupMut(key K) (*entry[K, V], bool) {
	return s.lookup(key)
}

func (s *valueStore[K, V]) delete(key K) bool {
	if _, ok := s.m[key]; !ok {
		return false
	}
	delete(s.m, key)
	return true
}

func (s *valueStore[K, V]) contains(key K) bool {
	_, ok := s.m[key]
	return ok
}

func (s *valueStore[K, V]) count() int {
	return len(s.m)
}
