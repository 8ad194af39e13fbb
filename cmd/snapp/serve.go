package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/snapp-dev/snapp/internal/preview"
)

func serveCmd(verbose *bool) *cobra.Command {
	var (
		port int
		host string
		file string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live preview server",
		Long: `Start the preview server. Browsers connected to it forward their
events over a WebSocket; the runtime handles them and every client
receives the updated document.

Examples:
  snapp serve
  snapp serve --port=8080
  snapp serve --host=0.0.0.0 --file=page.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, port, host, file, *verbose)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from snapp.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from snapp.json)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "HTML document to render into")

	return cmd
}

func runServe(cmd *cobra.Command, port int, host, file string, verbose bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Preview.Port = port
	}
	if host != "" {
		cfg.Preview.Host = host
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	source, err := readDocument(cfg, file)
	if err != nil {
		return err
	}

	server, err := preview.NewServer(preview.Options{
		Config:   cfg,
		Document: source,
		Logger:   newLogger(cmd.ErrOrStderr(), cfg, verbose),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	success(cmd.OutOrStdout(), "Preview at %s", cfg.PreviewURL())
	return server.ListenAndServe(ctx)
}
