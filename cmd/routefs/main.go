package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬─┐┌─┐┬ ┬┌┬┐┌─┐┌─┐┌─┐
  ├┬┘│ ││ │ │ ├┤ ├┤ └─┐
  ┴└─└─┘└─┘ ┴ └─┘└  └─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "routefs",
		Short: "Filesystem-convention routing and page composition",
		Long: `routefs serves a website straight from a content directory.

The directory shape is the URL shape:

  content/page.html                -> /
  content/blog/[slug]/page.html    -> /blog/{slug}
  content/docs/[[path]]/page.html  -> /docs/{path...}
  content/api/items/route.lua      -> /api/items

Pages nest inside layout.html files along their directory chain,
page.lua descriptors supply template props, and route.lua descriptors
handle API verbs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		createCmd(),
		serveCmd(),
		routesCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
