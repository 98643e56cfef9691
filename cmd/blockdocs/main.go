package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"blockdocs/internal/block"
	"blockdocs/internal/config"
	"blockdocs/internal/crawler"
	"blockdocs/internal/generator"
	"blockdocs/internal/storage"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "blockdocs",
		Short:         "Generate the core blocks reference from block.json metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	configPath string
	rootDir    string
	dbPath     string
	verbose    bool
	strict     bool
	category   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "blockdocs.yaml", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "Project root (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the block catalog database (SQLite)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print progress")

	generateCmd.Flags().BoolVar(&strict, "strict", false, "Fail when the autogenerated markers are missing")
	listCmd.Flags().StringVar(&category, "category", "", "Only list blocks of this category")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
}

// loadConfig applies command line overrides on top of the config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if rootDir != "" {
		cfg.Project.Root = rootDir
	}
	if dbPath != "" {
		cfg.Catalog.DB = dbPath
	}
	return cfg, nil
}

// openStore opens the block catalog database.
func openStore(path string) (storage.Store, error) {
	store, err := storage.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, nil
}

func logf(cmd *cobra.Command, format string, args ...any) {
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), format, args...)
	}
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Rewrite the autogenerated region of the reference document",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if strict {
			cfg.Docs.Strict = true
		}

		logf(cmd, "📂 Scanning %s for %s...\n", cfg.BlocksDir(), cfg.Blocks.Pattern)
		plan, err := generator.NewDocUpdater(cfg).UpdateDocs(ctx)
		if err != nil {
			return fmt.Errorf("failed to update documentation: %w", err)
		}
		logf(cmd, "✅ Found %d blocks\n", len(plan.Blocks))
		if !plan.Found {
			log.Printf("⚠️ Markers not found in %s; document left unchanged", plan.DocPath)
		}

		if cfg.Catalog.DB == "" {
			return nil
		}
		store, err := openStore(cfg.Catalog.DB)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveCatalog(ctx, plan.Blocks); err != nil {
			return fmt.Errorf("failed to save catalog: %w", err)
		}
		logf(cmd, "💾 Catalog saved to %s\n", cfg.Catalog.DB)
		return nil
	},
}

var errStale = errors.New("reference document is out of date")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether the reference document is up to date",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		plan, err := generator.NewDocUpdater(cfg).Plan(context.Background())
		if err != nil {
			return fmt.Errorf("failed to plan documentation: %w", err)
		}
		if !plan.Found {
			return fmt.Errorf("❌ %s: %w", plan.DocPath, generator.ErrMarkersNotFound)
		}
		if plan.Changed() {
			fmt.Fprint(cmd.OutOrStdout(), plan.Diff())
			return fmt.Errorf("❌ %s: %w; run `blockdocs generate`", plan.DocPath, errStale)
		}
		logf(cmd, "✅ %s is up to date (%d blocks)\n", plan.DocPath, len(plan.Blocks))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List blocks from the catalog database or a fresh scan",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		entries, err := listEntries(context.Background(), cfg, category)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", e.Name, e.Category, e.Title)
		}
		return nil
	},
}

// listEntries reads the catalog database when one is configured and scans
// the block library otherwise. An empty category matches every block.
func listEntries(ctx context.Context, cfg *config.Config, category string) ([]storage.CatalogEntry, error) {
	if cfg.Catalog.DB != "" {
		store, err := openStore(cfg.Catalog.DB)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		var entries []storage.CatalogEntry
		if category != "" {
			entries, err = store.FindByCategory(ctx, category)
		} else {
			entries, err = store.LoadCatalog(ctx)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		return entries, nil
	}

	var entries []storage.CatalogEntry
	c := crawler.NewCrawler(cfg.Blocks.Pattern)
	err := c.ScanBlocks(cfg.BlocksDir(), func(m *block.Metadata) {
		if category == "" || m.Category == category {
			entries = append(entries, storage.EntryFromMetadata(m))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan blocks: %w", err)
	}
	return entries, nil
}
