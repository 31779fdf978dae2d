// Package http はシミュレータの運用向け HTTP エンドポイントを提供します。
// キャッシュの中身を読み書きするエンドポイントは持ちません。
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ilog "github.com/amakane-hakari/lfu/internal/log"
)

// Deps はルータの依存です。nil のフィールドは該当機能を無効にします。
type Deps struct {
	Logger   ilog.Logger
	Gatherer prometheus.Gatherer
	Stats    StatsSource
	Health   *Health
}

// NewRouter は /health, /metrics, /stats を持つルータを作成します。
func NewRouter(d Deps) http.Handler {
	if d.Health == nil {
		d.Health = &Health{}
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware())
	r.Use(AccessLog(d.Logger))
	r.Use(RecoverMiddleware(d.Logger))

	r.NotFound(HandlerFunc(func(_ http.ResponseWriter, r *http.Request) error {
		return NotFound("no route for " + r.URL.Path)
	}).ServeHTTP)
	r.MethodNotAllowed(HandlerFunc(func(_ http.ResponseWriter, r *http.Request) error {
		return MethodNotAllowed(r.Method + " not allowed")
	}).ServeHTTP)

	r.Method(http.MethodGet, "/health", HandlerFunc(d.Health.serve))
	r.Method(http.MethodGet, "/stats", HandlerFunc((&statsHandler{src: d.Stats}).serve))
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}
