package lfu

import (
	"github.com/amakane-hakari/lfu/metrics"
)

type logLike interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config はキャッシュの設定を表します。
type Config struct {
	Logger  logLike
	Metrics metrics.Interface
}

// Option はキャッシュのオプションを設定する関数です。
type Option func(*Config)

// WithLogger はキャッシュのロガーを設定するオプションです。
func WithLogger(l logLike) Option {
	return func(c *Config) { c.Logger = l }
}

// WithMetrics はキャッシュのメトリクスを設定するオプションです。
func WithMetrics(m metrics.Interface) Option {
	return func(c *Config) { c.Metrics = m }
}
