// Package main は LFU キャッシュと LRU ベースラインのヒット率を比較するシミュレータです。
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	apphttp "github.com/amakane-hakari/lfu/internal/api/http"
	"github.com/amakane-hakari/lfu/internal/config"
	ilog "github.com/amakane-hakari/lfu/internal/log"
	"github.com/amakane-hakari/lfu/internal/sim"
	"github.com/amakane-hakari/lfu/internal/workload"
	"github.com/amakane-hakari/lfu/metrics"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	logger := ilog.New()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom, err := metrics.NewProm("lfusim", reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	simple := metrics.NewSimple()

	gen, err := workload.NewGenerator(cfg.Seed, cfg.Keys, cfg.ReadRatio, workload.Dist(cfg.Dist), cfg.ZipfS)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	health := &apphttp.Health{}
	var srv *http.Server
	if cfg.HTTPAddr != "" {
		srv = &http.Server{
			Addr: cfg.HTTPAddr,
			Handler: apphttp.NewRouter(apphttp.Deps{
				Logger:   logger,
				Gatherer: reg,
				Stats:    simple,
				Health:   health,
			}),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if srv != nil {
		g.Go(func() error {
			logger.Info("http.start", "addr", cfg.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			health.SetDraining(true)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("http shutdown: %w", err)
			}
			logger.Info("http.stopped")
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("sim.start",
			"capacity", cfg.Capacity,
			"keys", cfg.Keys,
			"ops", cfg.Ops,
			"read_ratio", cfg.ReadRatio,
			"dist", cfg.Dist,
			"seed", cfg.Seed,
		)
		r := &sim.Runner{
			Capacity: cfg.Capacity,
			Metrics:  metrics.Multi{prom, simple},
			Logger:   logger,
		}
		rep, err := r.Run(gctx, gen.Ops(cfg.Ops))
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("sim.canceled")
				return nil
			}
			return err
		}
		b, _ := json.MarshalIndent(rep, "", "  ")
		fmt.Printf("\n=== Summary(JSON) ===\n%s\n", b)

		if cfg.Hold && srv != nil {
			logger.Info("sim.hold", "addr", cfg.HTTPAddr)
			return nil
		}
		// 結果を出したらサーバも止める
		stop()
		return nil
	})

	return g.Wait()
}
