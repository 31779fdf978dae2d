// Package config はシミュレータの設定を環境変数とフラグから読み込みます。
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はシミュレータの設定を表します。
type Config struct {
	Capacity  int
	Keys      int
	Ops       int
	ReadRatio float64
	Dist      string // uniform | zipf
	ZipfS     float64
	Seed      int64
	HTTPAddr  string // 空なら HTTP サーバを起動しない
	Hold      bool   // シミュレーション後もサーバを維持する
	Shutdown  time.Duration
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseFloatEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func parseIntEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func parseBoolEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Load は LFUSIM_* 環境変数を既定値とし、args のフラグで上書きした設定を返します。
func Load(args []string) (*Config, error) {
	var c Config

	shutdown, err := time.ParseDuration(envOr("LFUSIM_SHUTDOWN_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("LFUSIM_SHUTDOWN_TIMEOUT: %w", err)
	}

	fs := flag.NewFlagSet("lfusim", flag.ContinueOnError)
	fs.IntVar(&c.Capacity, "capacity", parseIntEnv("LFUSIM_CAPACITY", 1000), "Cache capacity (entries)")
	fs.IntVar(&c.Keys, "keys", parseIntEnv("LFUSIM_KEYS", 10000), "Size of the key space")
	fs.IntVar(&c.Ops, "ops", parseIntEnv("LFUSIM_OPS", 1_000_000), "Number of operations to replay")
	fs.Float64Var(&c.ReadRatio, "read-ratio", parseFloatEnv("LFUSIM_READ_RATIO", 0.9), "Ratio of read operations")
	fs.StringVar(&c.Dist, "dist", envOr("LFUSIM_DIST", "zipf"), "Key distribution: uniform or zipf")
	fs.Float64Var(&c.ZipfS, "zipf-s", parseFloatEnv("LFUSIM_ZIPF_S", 1.1), "Zipf skew parameter (> 1)")
	fs.Int64Var(&c.Seed, "seed", int64(parseIntEnv("LFUSIM_SEED", 42)), "Random seed")
	fs.StringVar(&c.HTTPAddr, "http-addr", envOr("LFUSIM_HTTP_ADDR", ":8080"), "Address for /health, /metrics and /stats (empty to disable)")
	fs.BoolVar(&c.Hold, "hold", parseBoolEnv("LFUSIM_HOLD", false), "Keep serving HTTP after the simulation finishes")
	fs.DurationVar(&c.Shutdown, "shutdown-timeout", shutdown, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate は設定値の範囲を検査します。
func (c *Config) Validate() error {
	var errs []error
	if c.Capacity < 1 {
		errs = append(errs, fmt.Errorf("capacity must be >= 1, got %d", c.Capacity))
	}
	if c.Keys < 1 {
		errs = append(errs, fmt.Errorf("keys must be >= 1, got %d", c.Keys))
	}
	if c.Ops < 0 {
		errs = append(errs, fmt.Errorf("ops must be >= 0, got %d", c.Ops))
	}
	if c.ReadRatio < 0 || c.ReadRatio > 1 {
		errs = append(errs, fmt.Errorf("read-ratio must be in [0,1], got %v", c.ReadRatio))
	}
	switch c.Dist {
	case "uniform":
	case "zipf":
		if c.ZipfS <= 1 {
			errs = append(errs, fmt.Errorf("zipf-s must be > 1, got %v", c.ZipfS))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown dist %q", c.Dist))
	}
	if c.Hold && c.HTTPAddr == "" {
		errs = append(errs, errors.New("hold requires http-addr"))
	}
	return errors.Join(errs...)
}
