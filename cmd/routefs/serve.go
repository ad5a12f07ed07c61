package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/routefs-dev/routefs"
	"github.com/routefs-dev/routefs/internal/config"
	"github.com/routefs-dev/routefs/internal/dev"
	"github.com/routefs-dev/routefs/internal/errors"
	"github.com/routefs-dev/routefs/pkg/middleware"
)

func serveCmd() *cobra.Command {
	var (
		port        int
		host        string
		devMode     bool
		openBrowser bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the project",
		Long: `Serve the content tree over HTTP.

In development mode the server watches the content and static
directories, rebuilds the route table on change, and refreshes
connected browsers over WebSocket.

Examples:
  routefs serve
  routefs serve --dev
  routefs serve --port=8080 --metrics-addr=:9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host, devMode, openBrowser, metricsAddr)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from routefs.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from routefs.json)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "Enable development mode (watch, live reload)")
	cmd.Flags().BoolVarP(&openBrowser, "open", "o", false, "Open browser on start")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Address for the Prometheus /metrics endpoint (disabled when empty)")

	return cmd
}

func runServe(port int, host string, devMode, openBrowser bool, metricsAddr string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	if port > 0 {
		cfg.Dev.Port = port
		cfg.Port = port
	}
	if host != "" {
		cfg.Dev.Host = host
	}
	if openBrowser {
		cfg.Dev.OpenBrowser = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if devMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cacheControl := routefs.CacheControlProduction
	if devMode {
		cacheControl = routefs.CacheControlNone
	}

	app, err := routefs.New(routefs.Config{
		ContentDir: cfg.ContentPath(),
		Static: routefs.StaticConfig{
			Dir:          cfg.StaticPath(),
			Prefix:       cfg.StaticPrefix(),
			CacheControl: cacheControl,
		},
		Logger:  logger,
		DevMode: devMode,
	})
	if err != nil {
		return err
	}
	middleware.RecordReload(len(app.Routes()))

	handler := middleware.Prometheus()(
		middleware.OpenTelemetry(
			middleware.WithRequestFilter(func(r *http.Request) bool {
				return r.URL.Path != dev.ReloadEndpoint
			}),
		)(app),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if devMode {
		runner := dev.NewRunner(dev.RunnerConfig{
			Paths:  dev.CollectWatchPaths(cfg),
			Ignore: cfg.Dev.Ignore,
			Reload: func() error {
				if err := app.Reload(); err != nil {
					return err
				}
				middleware.RecordReload(len(app.Routes()))
				return nil
			},
			Logger: logger,
		})
		go runner.Run(ctx)

		mux := http.NewServeMux()
		mux.HandleFunc(dev.ReloadEndpoint, runner.ReloadServer().HandleWebSocket)
		mux.Handle("/", handler)
		handler = mux
	}

	if metricsAddr != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(metricsAddr, metricsMux); err != nil {
				logger.Error("metrics endpoint failed", "error", err)
			}
		}()
	}

	printBanner()
	info("Serving %d routes on http://%s", len(app.Routes()), cfg.DevAddress())
	if devMode {
		info("Watching %s for changes", cfg.ContentPath())
	}
	fmt.Println()

	srv := &http.Server{
		Addr:    cfg.DevAddress(),
		Handler: handler,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n  Shutting down...")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	if cfg.Dev.OpenBrowser {
		go openURL(cfg.DevURL())
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.New("L004").
			WithDetail("Could not listen on " + cfg.DevAddress()).
			Wrap(err)
	}
	return nil
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd

	switch {
	case commandExists("xdg-open"):
		cmd = exec.Command("xdg-open", url)
	case commandExists("open"):
		cmd = exec.Command("open", url)
	case commandExists("start"):
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}

	cmd.Start()
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
