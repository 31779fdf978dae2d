// Package log は log/slog を使ったロガーを提供します。
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger はキャッシュやサーバが使うロガーのインターフェースです。
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Slog は slog.Logger をラップした Logger 実装です。
type Slog struct {
	l *slog.Logger
}

// New は環境変数 LOG_LEVEL / LOG_FORMAT に従って標準出力へ書くロガーを作成します。
func New() *Slog {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// NewWithWriter は出力先・レベル・形式 (text|json) を指定してロガーを作成します。
func NewWithWriter(w io.Writer, level, format string) *Slog {
	lv := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lv = slog.LevelDebug
	case "error":
		lv = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: lv}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return &Slog{l: slog.New(h)}
}

// With は属性を付与した子ロガーを返します。
func (s *Slog) With(args ...any) *Slog { return &Slog{l: s.l.With(args...)} }

func (s *Slog) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *Slog) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *Slog) Error(msg string, args ...any) { s.l.Error(msg, args...) }
