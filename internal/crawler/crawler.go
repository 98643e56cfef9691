package crawler

import (
	"blockdocs/internal/block"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Crawler finds block metadata files below a library directory.
type Crawler struct {
	pattern  string
	segments []string
}

// NewCrawler creates a crawler for a slash-separated glob relative to the
// scanned root, e.g. "*/block.json".
func NewCrawler(pattern string) *Crawler {
	pattern = path.Clean(filepath.ToSlash(pattern))
	return &Crawler{
		pattern:  pattern,
		segments: strings.Split(pattern, "/"),
	}
}

// FindMetadataFiles returns the absolute paths of files under root matching
// the crawler pattern, in traversal order (lexical within each directory).
// Symlinked directories and files are followed; dot entries only match a
// pattern segment that itself starts with a dot. No match is not an error.
func (c *Crawler) FindMetadataFiles(root string) ([]string, error) {
	for _, seg := range c.segments {
		if _, err := path.Match(seg, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", c.pattern, err)
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []string
	if err := c.walk(absRoot, c.segments, &files); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return files, nil
}

// walk matches one pattern segment per directory level. The pattern bounds
// the depth, so following symlinks cannot loop.
func (c *Crawler) walk(dir string, segments []string, files *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	last := len(segments) == 1
	for _, entry := range entries {
		if !matchSegment(segments[0], entry.Name()) {
			continue
		}

		p := filepath.Join(dir, entry.Name())
		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(p)
			if err != nil {
				// Dangling link
				continue
			}
			isDir = info.IsDir()
		}

		switch {
		case last && !isDir:
			*files = append(*files, p)
		case !last && isDir:
			if err := c.walk(p, segments[1:], files); err != nil {
				return err
			}
		}
	}
	return nil
}

func matchSegment(pattern, name string) bool {
	if strings.HasPrefix(name, ".") && !strings.HasPrefix(pattern, ".") {
		return false
	}
	ok, _ := path.Match(pattern, name)
	return ok
}

// ScanBlocks reads every metadata file under root and streams the decoded
// records in discovery order. The first read or parse error stops the scan.
func (c *Crawler) ScanBlocks(root string, onBlock func(*block.Metadata)) error {
	files, err := c.FindMetadataFiles(root)
	if err != nil {
		return err
	}
	for _, file := range files {
		m, err := block.ReadMetadata(file)
		if err != nil {
			return err
		}
		onBlock(m)
	}
	return nil
}
