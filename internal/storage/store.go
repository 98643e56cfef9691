package storage

import (
	"blockdocs/internal/block"
	"context"
)

// CatalogEntry is one block as persisted in the catalog.
type CatalogEntry struct {
	Name        string
	Title       string
	Description string
	Category    string
	Supports    []string
	Attributes  []string
	Path        string
}

// Store persists the scanned block catalog.
type Store interface {
	CatalogStore
	Close() error
}

// CatalogStore defines operations for persisting block metadata.
type CatalogStore interface {
	// SaveCatalog replaces the stored catalog with the given snapshot.
	SaveCatalog(ctx context.Context, blocks []*block.Metadata) error

	// LoadCatalog returns every stored block ordered by name.
	LoadCatalog(ctx context.Context) ([]CatalogEntry, error)

	// FindByCategory returns the blocks of one category ordered by name.
	FindByCategory(ctx context.Context, category string) ([]CatalogEntry, error)
}

// EntryFromMetadata flattens a decoded block into its catalog form.
func EntryFromMetadata(m *block.Metadata) CatalogEntry {
	return CatalogEntry{
		Name:        m.Name,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Supports:    m.SupportsList(),
		Attributes:  m.AttributesList(),
		Path:        m.Path,
	}
}
