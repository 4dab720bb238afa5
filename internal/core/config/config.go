package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/nightconcept/dgst/internal/core/hasher"
)

const ConfigTomlName = "dgst.toml"
const DefaultManifestName = "dgst-sums.toml"

// Config represents the structure of the dgst.toml file.
type Config struct {
	Output   OutputConfig   `toml:"output"`
	Manifest ManifestConfig `toml:"manifest"`
}

// OutputConfig controls how digests are printed.
type OutputConfig struct {
	Format string `toml:"format"`
}

// ManifestConfig locates the checksum manifest.
type ManifestConfig struct {
	File string `toml:"file"`
}

// Default returns the configuration used when no dgst.toml is present.
func Default() *Config {
	return &Config{
		Output:   OutputConfig{Format: string(hasher.FormatPrefixed)},
		Manifest: ManifestConfig{File: DefaultManifestName},
	}
}

// Load reads dgst.toml from dirPath. A missing file yields Default(); fields
// left empty in the file keep their default values.
func Load(dirPath string) (*Config, error) {
	cfg := Default()
	fullPath := filepath.Join(dirPath, ConfigTomlName)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", fullPath, err)
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = string(hasher.FormatPrefixed)
	}
	if cfg.Manifest.File == "" {
		cfg.Manifest.File = DefaultManifestName
	}
	if _, err := hasher.ParseFormat(cfg.Output.Format); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", fullPath, err)
	}
	return cfg, nil
}

// OutputFormat returns the configured digest format.
func (c *Config) OutputFormat() hasher.OutputFormat {
	f, err := hasher.ParseFormat(c.Output.Format)
	if err != nil {
		return hasher.FormatPrefixed
	}
	return f
}

// Write marshals cfg and writes it to dirPath, overwriting any existing file.
func Write(dirPath string, cfg *Config) error {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return err
	}

	fullPath := filepath.Join(dirPath, ConfigTomlName)
	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	_, err = file.Write(buf.Bytes())
	return err
}
