package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Logging controls log verbosity.
type Logging struct {
	Level string `toml:"level"`
}

// Conversion tunes notebook conversion.
type Conversion struct {
	DropEmptyOutputs bool `toml:"drop_empty_outputs"`
	DedupeBlockIDs   bool `toml:"dedupe_block_ids"`
}

// Index locates the block index database.
type Index struct {
	Path string `toml:"path"`
}

// Export holds export defaults.
type Export struct {
	Format string `toml:"format"`
	OutDir string `toml:"out_dir"`
}

// Config is the deepnote-bridge configuration file.
type Config struct {
	Logging    Logging    `toml:"logging"`
	Conversion Conversion `toml:"conversion"`
	Index      Index      `toml:"index"`
	Export     Export     `toml:"export"`
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/deepnote-bridge/config.toml")
}

// Load reads the config at path (or the default location), applying defaults
// for anything unset. It returns the resolved path and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		path = defaultPath
	}

	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(expanded); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return expanded, true, nil
}

func (c *Config) normalize() error {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Export.Format = strings.ToLower(strings.TrimSpace(c.Export.Format))

	indexPath, err := expandPath(c.Index.Path)
	if err != nil {
		return fmt.Errorf("index path: %w", err)
	}
	c.Index.Path = indexPath

	outDir, err := expandPath(c.Export.OutDir)
	if err != nil {
		return fmt.Errorf("export out_dir: %w", err)
	}
	c.Export.OutDir = outDir
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("logging.level must be one of error, warn, info, debug (got %q)", c.Logging.Level)
	}

	switch c.Export.Format {
	case "deepnote", "json", "jsonl", "md", "markdown":
	default:
		return fmt.Errorf("export.format must be one of deepnote, json, jsonl, md (got %q)", c.Export.Format)
	}

	if c.Index.Path == "" {
		return errors.New("index.path is required")
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return "", nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		pathValue = filepath.Join(home, strings.TrimPrefix(pathValue, "~"))
	}
	return filepath.Clean(pathValue), nil
}

// CreateSample writes the sample configuration to path, refusing to overwrite.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config already exists: %s", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0644)
}
