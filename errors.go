package lfu

import "errors"

var (
	// ErrInvalidCapacity は容量が 1 未満で生成しようとした場合のエラーです。
	ErrInvalidCapacity = errors.New("lfu: capacity must be at least 1")
	// ErrKeyNotFound はキーが存在しない場合のエラーです。
	// Get 系のミスでは返さず、At と内部整合性チェックでのみ使います。
	ErrKeyNotFound = errors.New("lfu: key not found")
)
