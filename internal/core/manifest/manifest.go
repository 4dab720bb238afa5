// Package manifest reads and writes the dgst-sums.toml checksum manifest.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

const APIVersion = "1"

// FileEntry represents a single file entry in the manifest.
// Example:
// [files."src/main.go"]
//
//	hash = "sha256:<hash_value>"
//	size = 1234
type FileEntry struct {
	Hash string `toml:"hash"`
	Size int64  `toml:"size"`
}

// Manifest represents the structure of the dgst-sums.toml file.
type Manifest struct {
	ApiVersion string               `toml:"api_version"`
	Files      map[string]FileEntry `toml:"files"`
}

// New creates a new Manifest instance with default values.
func New() *Manifest {
	return &Manifest{
		ApiVersion: APIVersion,
		Files:      make(map[string]FileEntry),
	}
}

// Load loads the manifest at path.
// If the file doesn't exist, it returns a new, empty Manifest.
func Load(path string) (*Manifest, error) {
	m := New()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return m, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat manifest %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, err)
	}
	if m.ApiVersion == "" {
		m.ApiVersion = APIVersion
	}
	if m.ApiVersion != APIVersion {
		return nil, fmt.Errorf("manifest %s has unsupported api_version %q", path, m.ApiVersion)
	}
	if m.Files == nil {
		m.Files = make(map[string]FileEntry)
	}
	return m, nil
}

// Save writes the manifest to path, creating parent directories as needed.
func Save(path string, m *Manifest) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for manifest %s: %w", path, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create/truncate manifest %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := toml.NewEncoder(file).Encode(m); err != nil {
		return fmt.Errorf("failed to encode manifest %s: %w", path, err)
	}
	return nil
}

// AddOrUpdate records the digest and size of the file at path.
func (m *Manifest) AddOrUpdate(path, hash string, size int64) {
	if m.Files == nil {
		m.Files = make(map[string]FileEntry)
	}
	m.Files[filepath.ToSlash(path)] = FileEntry{
		Hash: hash,
		Size: size,
	}
}

// Remove deletes the entry for path. It reports whether an entry existed.
func (m *Manifest) Remove(path string) bool {
	key := filepath.ToSlash(path)
	if _, ok := m.Files[key]; !ok {
		return false
	}
	delete(m.Files, key)
	return true
}

// Paths returns the recorded paths in lexical order.
func (m *Manifest) Paths() []string {
	paths := make([]string, 0, len(m.Files))
	for p := range m.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// KeyFor returns the entry key for file: its path relative to the directory
// holding the manifest at manifestPath, with forward slashes.
func KeyFor(manifestPath, file string) (string, error) {
	absManifest, err := filepath.Abs(manifestPath)
	if err != nil {
		return "", err
	}
	absFile, err := filepath.Abs(file)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(filepath.Dir(absManifest), absFile)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
