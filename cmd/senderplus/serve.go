package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/senderplus/internal/config"
	"github.com/nao1215/senderplus/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local delivery service",
		Long: `Serve starts a local SenderPlus delivery service backed by SQLite.

The service implements the same endpoints the client talks to, so the
submit, track, and advance commands work against it with their default
configuration. Uploaded photos are stored under the data directory and
checked for privacy-sensitive metadata (GPS coordinates, serial numbers,
author fields), which is reported in the service log.

Examples:
  # Start the service on the default address (localhost:8000)
  senderplus serve

  # Custom address and data directory
  senderplus serve --addr 0.0.0.0:9000 --data-dir /var/lib/senderplus`,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", config.DefaultListenAddress,
		"Listen address in host:port format")
	cmd.Flags().StringP("data-dir", "d", config.XDGDataDir(),
		"Directory for the database and uploaded photos")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}
	dataDir, err := cmd.Flags().GetString("data-dir")
	if err != nil {
		return err
	}

	logger := setupLogger(getVerboseFlag(cmd))

	srv, err := server.NewServer(dataDir,
		server.WithAddress(addr),
		server.WithServerLogger(logger),
	)
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, stopping service...")
		cancel()
	}()

	return srv.Run(ctx)
}
