package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/routefs-dev/routefs"
	"github.com/routefs-dev/routefs/internal/config"
	"github.com/routefs-dev/routefs/pkg/router"
)

func routesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the routes of the project",
		Long: `Scan the content tree and print the resulting route table.

Each line shows the URL pattern, the HTTP method, and the content
directory the route came from.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes()
		},
	}

	return cmd
}

func runRoutes() error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	// Discard logs: the table is the output.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := routefs.New(routefs.Config{
		ContentDir: cfg.ContentPath(),
		Logger:     logger,
		DevMode:    true,
	})
	if err != nil {
		return err
	}

	entries := app.Routes()
	sort.Slice(entries, func(i, j int) bool {
		pi, pj := entries[i].Pattern.String(), entries[j].Pattern.String()
		if pi != pj {
			return pi < pj
		}
		return entries[i].Verb < entries[j].Verb
	})

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATTERN\tSOURCE")
	for _, e := range entries {
		method := "GET"
		if e.Kind == router.KindAPI {
			method = strings.ToUpper(e.Verb)
		}
		source := e.SourceDir
		if source == "" {
			source = "."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", method, e.Pattern.String(), source)
	}
	return w.Flush()
}
