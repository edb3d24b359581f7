package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adetolu/medfact/internal/knowledge"
	"github.com/adetolu/medfact/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP verification API",
	Long: `Serve starts the HTTP API:
- POST /v1/verify  verifies a claim and returns the structured verdict
- GET  /v1/claims  lists the curated dataset, optionally by category
- GET  /health     reports store connectivity and record count

Example:
  medfact serve
  medfact serve --addr :9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	logger := newLogger(cfg)

	claims, err := knowledge.LoadCurated()
	if err != nil {
		return fmt.Errorf("load curated dataset: %w", err)
	}

	a, provider, store, err := buildAgent(cfg, logger)
	if err != nil {
		return err
	}

	srv := server.New(a, store, claims, provider.Name(), cfg.Server, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if count, cerr := store.Count(ctx); cerr == nil && count == 0 {
		logger.Warn("knowledge store is empty; run `medfact index` first")
	}

	fmt.Fprintf(os.Stderr, "⚙️  Serving on %s (provider: %s)\n", cfg.Server.Addr, provider.Name())
	return srv.Run(ctx)
}
