package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBlocksDir   = "packages/block-library/src"
	DefaultPattern     = "*/block.json"
	DefaultDocsFile    = "docs/reference-guides/core-blocks.md"
	DefaultStartMarker = "<!-- START Autogenerated - DO NOT EDIT -->"
	DefaultEndMarker   = "<!-- END Autogenerated - DO NOT EDIT -->"
)

type Config struct {
	Project struct {
		Root string `yaml:"root"`
	} `yaml:"project"`
	Blocks struct {
		Dir     string `yaml:"dir"`     // relative to project root
		Pattern string `yaml:"pattern"` // relative to blocks dir
	} `yaml:"blocks"`
	Docs struct {
		File        string `yaml:"file"`
		StartMarker string `yaml:"start_marker"`
		EndMarker   string `yaml:"end_marker"`
		Strict      bool   `yaml:"strict"` // fail when markers are missing
	} `yaml:"docs"`
	Catalog struct {
		DB string `yaml:"db"`
	} `yaml:"catalog"`
}

// Default returns the configuration the generator has always run with.
func Default() *Config {
	var cfg Config
	cfg.Project.Root = "."
	cfg.Blocks.Dir = DefaultBlocksDir
	cfg.Blocks.Pattern = DefaultPattern
	cfg.Docs.File = DefaultDocsFile
	cfg.Docs.StartMarker = DefaultStartMarker
	cfg.Docs.EndMarker = DefaultEndMarker
	return &cfg
}

// LoadConfig layers the YAML file at path and BLOCKDOCS_* environment
// variables over Default. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	// 3. Override with Environment Variables if present
	if root := os.Getenv("BLOCKDOCS_ROOT"); root != "" {
		cfg.Project.Root = root
	}
	if dir := os.Getenv("BLOCKDOCS_BLOCKS_DIR"); dir != "" {
		cfg.Blocks.Dir = dir
	}
	if file := os.Getenv("BLOCKDOCS_DOCS_FILE"); file != "" {
		cfg.Docs.File = file
	}
	if db := os.Getenv("BLOCKDOCS_DB"); db != "" {
		cfg.Catalog.DB = db
	}
	if strict := os.Getenv("BLOCKDOCS_STRICT"); strict != "" {
		v, err := strconv.ParseBool(strict)
		if err != nil {
			return nil, fmt.Errorf("invalid BLOCKDOCS_STRICT %q: %w", strict, err)
		}
		cfg.Docs.Strict = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that would make the splice ambiguous.
func (c *Config) Validate() error {
	if c.Blocks.Pattern == "" {
		return errors.New("config: blocks.pattern is empty")
	}
	if c.Docs.StartMarker == "" || c.Docs.EndMarker == "" {
		return errors.New("config: docs markers must not be empty")
	}
	if c.Docs.StartMarker == c.Docs.EndMarker {
		return errors.New("config: start and end markers must differ")
	}
	return nil
}

func (c *Config) BlocksDir() string {
	return c.resolve(c.Blocks.Dir)
}

func (c *Config) DocsFile() string {
	return c.resolve(c.Docs.File)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Project.Root, p)
}
