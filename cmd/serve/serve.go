// Package serve runs the conversion service.
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fjacquet/fsv-csv/cmd/root"
	"fjacquet/fsv-csv/internal/api"
	"fjacquet/fsv-csv/internal/config"
	"fjacquet/fsv-csv/internal/container"

	"github.com/spf13/cobra"
)

var port int

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve PDF conversion over HTTP",
	Long: `Start the conversion service.

Endpoints:
  GET  /health    service status
  POST /convert   multipart upload in field "file", returns the table as an
                  attachment (.xlsx by default, ?format=csv for CSV)
  GET  /metrics   Prometheus metrics

Example:
  fsv-csv serve --port 8080`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from server.port)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}

	srv, addr, timeouts, err := newServer(appContainer, port)
	if err != nil {
		logger.Fatalf("Error creating server: %v", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, addr, timeouts); err != nil {
		logger.Fatalf("Server error: %v", err)
	}
}

// newServer builds the API server from the container. A zero port falls
// back to the configuration.
func newServer(c *container.Container, port int) (*api.Server, string, api.Timeouts, error) {
	cfg := c.GetConfig()
	if port == 0 {
		port = cfg.Server.Port
	}
	if port < 1 || port > 65535 {
		return nil, "", api.Timeouts{}, fmt.Errorf("invalid port: %d", port)
	}

	p, err := c.GetParser(container.PDF)
	if err != nil {
		return nil, "", api.Timeouts{}, fmt.Errorf("failed to get PDF parser: %w", err)
	}

	c.DisableDebugDump()
	srv := api.NewServer(p, c.GetMetrics(), c.GetLogger(), api.Options{
		MaxUploadBytes:    cfg.Server.MaxUploadBytes,
		AllowedExtensions: cfg.Server.AllowedExtensions,
		Export:            cfg.ExportOptions(),
	})
	return srv, fmt.Sprintf(":%d", port), timeoutsFrom(cfg.Server), nil
}

func timeoutsFrom(cfg config.ServerConfig) api.Timeouts {
	return api.Timeouts{
		Read:     time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		Write:    time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		Shutdown: time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second,
	}
}
