// Package dev implements the development-mode feedback loop: a polling
// file watcher over the content and static directories, and a WebSocket
// server that pushes reload messages to connected browsers.
//
// The pieces compose through Runner:
//
//	runner := dev.NewRunner(dev.RunnerConfig{
//	    Paths:  dev.CollectWatchPaths(cfg),
//	    Reload: app.Reload,
//	    Logger: logger,
//	})
//	mux.HandleFunc(dev.ReloadEndpoint, runner.ReloadServer().HandleWebSocket)
//	go runner.Run(ctx)
//
// Template and descriptor changes trigger a route table rescan followed
// by a full browser reload; stylesheet changes refresh CSS in place
// without losing page state. A failed rescan keeps the previous route
// table serving and surfaces the error in the browser overlay instead.
package dev
