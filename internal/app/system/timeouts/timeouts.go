// Package timeouts holds the request budgets handlers wrap around backend
// calls and draft-store operations.
//
//   - Ping: health checks.
//   - Short: one backend call or one draft read/write.
//   - Medium: a page load (reference collections plus the page's own data).
//   - Publish: the whole publish sequence, every backend call included.
//   - Export: building an Excel export.
//
// Values can be overridden once at startup with Configure.
package timeouts

import (
	"context"
	"sync"
	"time"
)

// Defaults used until Configure is called.
const (
	DefaultPing    = 2 * time.Second
	DefaultShort   = 10 * time.Second
	DefaultMedium  = 20 * time.Second
	DefaultPublish = 2 * time.Minute
	DefaultExport  = 30 * time.Second
)

// Config holds timeout values. Zero fields keep the current value.
type Config struct {
	Ping    time.Duration
	Short   time.Duration
	Medium  time.Duration
	Publish time.Duration
	Export  time.Duration
}

var (
	mu  sync.RWMutex
	cur = defaults()
)

func defaults() Config {
	return Config{
		Ping:    DefaultPing,
		Short:   DefaultShort,
		Medium:  DefaultMedium,
		Publish: DefaultPublish,
		Export:  DefaultExport,
	}
}

func Ping() time.Duration    { return get().Ping }
func Short() time.Duration   { return get().Short }
func Medium() time.Duration  { return get().Medium }
func Publish() time.Duration { return get().Publish }
func Export() time.Duration  { return get().Export }

func get() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cur
}

// Configure overrides the non-zero fields of cfg.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		cur.Ping = cfg.Ping
	}
	if cfg.Short > 0 {
		cur.Short = cfg.Short
	}
	if cfg.Medium > 0 {
		cur.Medium = cfg.Medium
	}
	if cfg.Publish > 0 {
		cur.Publish = cfg.Publish
	}
	if cfg.Export > 0 {
		cur.Export = cfg.Export
	}
}

// Reset restores the defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cur = defaults()
}

// Current returns the active configuration, for startup logging.
func Current() Config { return get() }

// WithShort derives a context bounded by Short.
func WithShort(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Short())
}

// WithMedium derives a context bounded by Medium.
func WithMedium(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Medium())
}
