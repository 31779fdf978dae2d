package http

import (
	"net/http"

	"github.com/amakane-hakari/lfu/metrics"
)

// StatsSource は /stats が返す値の取得元です。
type StatsSource interface {
	Snapshot() metrics.Snapshot
}

type statsHandler struct {
	src StatsSource
}

func (h *statsHandler) serve(w http.ResponseWriter, _ *http.Request) error {
	if h.src == nil {
		return NotFound("stats not configured")
	}
	writeSuccess(w, http.StatusOK, h.src.Snapshot())
	return nil
}
