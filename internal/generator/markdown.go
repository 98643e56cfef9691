package generator

import (
	"blockdocs/internal/block"
	"fmt"
	"strings"
)

// FormatEntry renders one block as a markdown section. The leading and
// trailing newlines separate consecutive entries.
func FormatEntry(m *block.Metadata) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n## %s\n\n%s\n\n", m.Title, m.Description)
	fmt.Fprintf(&sb, "-\t**Name:** %s\n", m.Name)
	fmt.Fprintf(&sb, "-\t**Category:** %s\n", m.Category)
	fmt.Fprintf(&sb, "-\t**Supports:** %s\n", strings.Join(m.SupportsList(), ", "))
	fmt.Fprintf(&sb, "-\t**Attributes:** %s\n", strings.Join(m.AttributesList(), ", "))
	return sb.String()
}

// RenderEntries concatenates the entries in the order given.
func RenderEntries(blocks []*block.Metadata) string {
	var sb strings.Builder
	for _, m := range blocks {
		sb.WriteString(FormatEntry(m))
	}
	return sb.String()
}
