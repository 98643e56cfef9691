package main

import (
	"context"
	"log"

	"blockdocs/internal/config"
	"blockdocs/internal/generator"
)

// Regenerates the core blocks reference from the block library, run from
// the repository root. Silent on success.
func main() {
	// 1. Load Configuration (defaults when blockdocs.yaml is absent)
	cfg, err := config.LoadConfig("blockdocs.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Scan, format and splice
	if _, err := generator.NewDocUpdater(cfg).UpdateDocs(context.Background()); err != nil {
		log.Fatalf("Failed to update %s: %v", cfg.DocsFile(), err)
	}
}
