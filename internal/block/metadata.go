package block

import (
	"fmt"
	"os"
)

// Metadata holds the block.json fields the reference document shows.
type Metadata struct {
	Path        string
	Title       string
	Description string
	Name        string
	Category    string
	Supports    Value
	Attributes  Value
}

// ReadMetadata reads and decodes the metadata file at path.
func ReadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	m, err := DecodeMetadata(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// DecodeMetadata parses one metadata document. Absent fields decode as
// empty strings or null values; nothing is validated.
func DecodeMetadata(data []byte) (*Metadata, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		Title:       doc.Field("title").Display(),
		Description: doc.Field("description").Display(),
		Name:        doc.Field("name").Display(),
		Category:    doc.Field("category").Display(),
		Supports:    doc.Field("supports"),
		Attributes:  doc.Field("attributes"),
	}, nil
}

// SupportsList returns the sorted supports entries, with nested keys or
// values in parentheses, e.g. "spacing (margin, padding)".
func (m *Metadata) SupportsList() []string {
	list := InnerKeys(m.Supports)
	SortStrings(list)
	return list
}

// AttributesList returns the sorted attribute names.
func (m *Metadata) AttributesList() []string {
	list := TruthyKeys(m.Attributes)
	SortStrings(list)
	return list
}
