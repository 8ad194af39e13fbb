package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/snapp-dev/snapp/internal/config"
	"github.com/snapp-dev/snapp/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "snapp",
		Short: "Fine-grained reactive rendering for HTML documents",
		Long: `snapp renders reactive components into HTML documents.

Cells hold values; attributes, styles and text bound to them update
in place when a cell changes. Event handlers are delegated to one
document listener per event type.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(
		initCmd(),
		renderCmd(&verbose),
		serveCmd(&verbose),
		publishCmd(&verbose),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads snapp.json from the nearest project root, or defaults.
func loadConfig() (*config.Config, error) {
	return config.LoadFromWorkingDir()
}

// newLogger builds the CLI logger from the configured level.
func newLogger(w io.Writer, cfg *config.Config, verbose bool) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil || verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
