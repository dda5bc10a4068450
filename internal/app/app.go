// Package app assembles configuration, logging, storage, metrics and the
// stores into one runtime shared by the TUI and the headless commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sandeepkv93/taskflow/internal/config"
	"github.com/sandeepkv93/taskflow/internal/logging"
	"github.com/sandeepkv93/taskflow/internal/metrics"
	"github.com/sandeepkv93/taskflow/internal/notify"
	"github.com/sandeepkv93/taskflow/internal/storage"
	"github.com/sandeepkv93/taskflow/internal/store"
)

const shutdownTimeout = 5 * time.Second

// Options are command-line overrides applied on top of the loaded config.
type Options struct {
	ConfigPath  string
	DBPath      string
	MetricsAddr string
	// Ephemeral keeps all state in memory for the lifetime of the process.
	Ephemeral bool
	// Now overrides the clock; tests use it.
	Now func() time.Time
}

type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Tasks    *store.TaskStore
	Identity *store.IdentityStore
	Toasts   *notify.Feed
	Registry *prometheus.Registry

	kv      storage.KV
	closers []io.Closer
	server  *http.Server
	addr    string
}

func New(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(opts.DBPath); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(opts.MetricsAddr); v != "" {
		cfg.MetricsAddr = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.Open(cfg.LogPath, level)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Logger: logger, closers: []io.Closer{logCloser}}

	if opts.Ephemeral {
		a.kv = storage.NewMemoryKV()
	} else {
		kv, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			_ = a.Close(ctx)
			return nil, fmt.Errorf("open storage: %w", err)
		}
		a.kv = kv
		a.closers = append([]io.Closer{kv}, a.closers...)
	}

	a.Registry = prometheus.NewRegistry()
	collector := metrics.NewCollector(a.Registry)

	a.Toasts = notify.NewFeed(cfg.ToastHistory)
	notifiers := notify.Multi{a.Toasts, notify.Log{Logger: logger}}
	if cfg.DesktopNotifications {
		notifiers = append(notifiers, notify.Desktop{OnError: func(err error) {
			logger.Warn("desktop notification failed", "err", err)
		}})
	}

	storeOpts := store.Options{
		Logger:   logger,
		Notifier: notifiers,
		Metrics:  collector,
		Now:      opts.Now,
	}
	a.Tasks, err = store.NewTaskStore(ctx, a.kv, storeOpts)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	if err := a.Tasks.SetSort(cfg.SortKey()); err != nil {
		logger.Warn("ignoring default sort", "sort", cfg.DefaultSort, "err", err)
	}
	a.Identity, err = store.NewIdentityStore(ctx, a.kv, a.Tasks, store.IdentityConfig{
		SignInDelay:         cfg.SignInDelay,
		PurgeTasksOnSignOut: cfg.PurgeTasksOnSignOut,
	}, storeOpts)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	logger.Info("taskflow started", "db", cfg.DBPath, "ephemeral", opts.Ephemeral, "tasks", a.Tasks.Len(), "signed_in", a.Identity.SignedIn())
	return a, nil
}

// StartMetrics serves /metrics and /healthz on the configured address in the
// background. It is a no-op when no address is configured.
func (a *App) StartMetrics() error {
	if strings.TrimSpace(a.Config.MetricsAddr) == "" || a.server != nil {
		return nil
	}
	ln, err := net.Listen("tcp", a.Config.MetricsAddr)
	if err != nil {
		return fmt.Errorf("listen metrics: %w", err)
	}
	a.addr = ln.Addr().String()
	a.server = &http.Server{
		Handler:      metrics.NewRouter(a.Registry),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		a.Logger.Info("metrics server starting", "addr", a.addr)
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("metrics server error", "err", err)
		}
	}()
	return nil
}

// MetricsAddr is the bound metrics address, empty until StartMetrics runs.
func (a *App) MetricsAddr() string {
	return a.addr
}

// Close stops the metrics server and releases storage and the log file.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("metrics shutdown: %w", err))
		}
		cancel()
		a.server = nil
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
