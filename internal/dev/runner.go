package dev

import (
	"context"
	"log/slog"
	"time"
)

// RunnerConfig configures the dev loop.
type RunnerConfig struct {
	// Paths are the directories to watch.
	Paths []string

	// Ignore patterns forwarded to the watcher.
	Ignore []string

	// Interval is the watcher polling interval.
	Interval time.Duration

	// Reload rescans the content tree and rebuilds the route table.
	Reload func() error

	// Logger receives watch and reload events. Defaults to slog.Default.
	Logger *slog.Logger
}

// Runner drives the development loop: it watches the project paths and,
// on each change, rescans routes and notifies connected browsers.
type Runner struct {
	watcher *Watcher
	reload  *ReloadServer
	rescan  func() error
	logger  *slog.Logger
}

// NewRunner wires a watcher to a reload callback and a browser
// notification server.
func NewRunner(cfg RunnerConfig) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Runner{
		watcher: NewWatcher(WatcherConfig{
			Paths:    cfg.Paths,
			Ignore:   cfg.Ignore,
			Interval: cfg.Interval,
		}),
		reload: NewReloadServer(),
		rescan: cfg.Reload,
		logger: logger,
	}
	r.watcher.OnChange(r.handleChange)
	return r
}

// ReloadServer returns the WebSocket server for mounting at
// ReloadEndpoint.
func (r *Runner) ReloadServer() *ReloadServer {
	return r.reload
}

// Run starts the watcher and blocks until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	defer r.reload.Close()
	return r.watcher.Start(ctx)
}

// Stop stops the watcher.
func (r *Runner) Stop() {
	r.watcher.Stop()
}

func (r *Runner) handleChange(change Change) {
	r.logger.Debug("file changed", "path", change.Path)

	switch change.Type {
	case ChangeCSS:
		r.reload.NotifyCSS(change.Path)
		return
	case ChangeAsset:
		r.reload.NotifyReload()
		return
	}

	// Templates and descriptors shape the route table: rescan before
	// telling browsers anything.
	if r.rescan != nil {
		if err := r.rescan(); err != nil {
			r.logger.Error("route rescan failed", "error", err)
			r.reload.NotifyError(err.Error())
			return
		}
	}

	r.reload.ClearError()
	r.reload.NotifyReload()
}
