package generator

import (
	"blockdocs/internal/block"
	"blockdocs/internal/config"
	"blockdocs/internal/crawler"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
)

// ErrMarkersNotFound is returned in strict mode when the target document
// has no start/end marker pair.
var ErrMarkersNotFound = errors.New("autogenerated markers not found")

type DocUpdater struct {
	cfg     *config.Config
	crawler *crawler.Crawler
}

// UpdatePlan is the outcome of one regeneration: the current document and
// what it becomes.
type UpdatePlan struct {
	DocPath string
	Blocks  []*block.Metadata
	Current string
	Updated string
	Found   bool
}

func NewDocUpdater(cfg *config.Config) *DocUpdater {
	return &DocUpdater{
		cfg:     cfg,
		crawler: crawler.NewCrawler(cfg.Blocks.Pattern),
	}
}

// Plan scans the block library and computes the regenerated document
// without writing anything.
func (u *DocUpdater) Plan(ctx context.Context) (*UpdatePlan, error) {
	files, err := u.crawler.FindMetadataFiles(u.cfg.BlocksDir())
	if err != nil {
		return nil, err
	}

	blocks := make([]*block.Metadata, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, err := block.ReadMetadata(file)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, m)
	}

	docPath := u.cfg.DocsFile()
	current, err := os.ReadFile(docPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	updated, found := Splice(string(current), u.cfg.Docs.StartMarker, u.cfg.Docs.EndMarker, RenderEntries(blocks))
	return &UpdatePlan{
		DocPath: docPath,
		Blocks:  blocks,
		Current: string(current),
		Updated: updated,
		Found:   found,
	}, nil
}

// UpdateDocs regenerates the document and writes it back in place. Without
// strict mode a document lacking markers is rewritten unchanged.
func (u *DocUpdater) UpdateDocs(ctx context.Context) (*UpdatePlan, error) {
	plan, err := u.Plan(ctx)
	if err != nil {
		return nil, err
	}
	if !plan.Found && u.cfg.Docs.Strict {
		return plan, fmt.Errorf("%s: %w", plan.DocPath, ErrMarkersNotFound)
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(plan.DocPath); err == nil {
		perm = info.Mode().Perm()
	}
	if err := WriteFileAtomic(plan.DocPath, []byte(plan.Updated), perm); err != nil {
		return plan, err
	}
	return plan, nil
}

// Changed reports whether the regenerated document differs from the
// current one.
func (p *UpdatePlan) Changed() bool {
	return p.Current != p.Updated
}

// Diff returns a unified diff from the current to the regenerated document,
// or "" when they are identical.
func (p *UpdatePlan) Diff() string {
	if !p.Changed() {
		return ""
	}
	text, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(p.Current),
		B:        difflib.SplitLines(p.Updated),
		FromFile: p.DocPath,
		ToFile:   p.DocPath + " (generated)",
		Context:  3,
	})
	return text
}
