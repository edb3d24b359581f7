package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/adetolu/medfact/internal/knowledge"
)

var (
	indexTimeout time.Duration
	forceReindex bool
)

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Load the curated myth dataset into the knowledge store",
	Long: `Index embeds every curated claim and writes it to Weaviate:
- Ensure the schema class exists (created if missing)
- Embed each record with the configured embedding provider
- Store records with their vectors for similarity search

Run this once before first use, and with --force after dataset updates:
--force drops the existing class and reindexes from scratch, so edited or
removed records are replaced rather than appended.

Example:
  medfact index
  medfact index --force`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().DurationVar(&indexTimeout, "timeout", 5*time.Minute, "indexing timeout")
	indexCmd.Flags().BoolVar(&forceReindex, "force", false, "drop existing records and reindex from scratch")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	claims, err := knowledge.LoadCurated()
	if err != nil {
		return fmt.Errorf("load curated dataset: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Loaded %d curated claims\n", len(claims))

	store, err := buildStore(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "⚙️  Waiting for knowledge store at %s...\n", cfg.Weaviate.URL)
	if err := store.Ready(ctx); err != nil {
		return fmt.Errorf("knowledge store not ready: %w", err)
	}

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}
	if count > 0 {
		if !forceReindex {
			fmt.Fprintf(os.Stderr, "✓ Store already holds %d records (use --force to reindex)\n", count)
			return nil
		}
		fmt.Fprintf(os.Stderr, "⚙️  Dropping %d existing records...\n", count)
		if err := store.Reset(ctx); err != nil {
			return fmt.Errorf("reset store: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("recreate schema: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "⚙️  Embedding and indexing %d claims...\n", len(claims))
	if err := store.Index(ctx, claims); err != nil {
		return fmt.Errorf("index claims: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Indexed %d claims into class %s\n", len(claims), cfg.Weaviate.Class)
	return nil
}
