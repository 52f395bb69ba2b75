// Package manifest turns YAML asset manifests into contributors. Each file in
// the manifests directory becomes one contributor, invoked in file name order.
package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"kilometers.ai/assets/internal/core/asset"
	"kilometers.ai/assets/internal/core/ports"
)

// Manifest is the on-disk declaration of one contributor's assets
//
//	name: theme
//	assets:
//	  - type: css
//	    source: theme/style.css
//	    priority: 90
type Manifest struct {
	Name   string         `yaml:"name,omitempty"`
	Assets []asset.Record `yaml:"assets"`
}

// Parse decodes a manifest, rejecting unknown keys. An empty document is an
// empty manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// LoadFile reads and parses the manifest at path. A manifest without a name
// is named after its file.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = nameFromPath(path)
	}
	return m, nil
}

// Contributor serves the assets of one manifest, read once at load time
type Contributor struct {
	path     string
	manifest *Manifest
}

// NewContributor wraps an already parsed manifest
func NewContributor(path string, m *Manifest) *Contributor {
	return &Contributor{path: path, manifest: m}
}

// Name returns the manifest name
func (c *Contributor) Name() string {
	return c.manifest.Name
}

// Path returns the file the manifest was read from
func (c *Contributor) Path() string {
	return c.path
}

// Manifest returns the parsed manifest
func (c *Contributor) Manifest() *Manifest {
	return c.manifest
}

// ContributeAssets adds every declared record in file order
func (c *Contributor) ContributeAssets(_ context.Context, collector *asset.Collector) error {
	collector.Add(c.manifest.Assets...)
	return nil
}

var _ ports.Contributor = (*Contributor)(nil)

// Discover loads every *.yaml and *.yml file directly inside dir, sorted by
// file name. A missing directory yields no contributors.
func Discover(dir string) ([]*Contributor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read manifests directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isManifestFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	contributors := make([]*Contributor, 0, len(paths))
	for _, path := range paths {
		m, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		contributors = append(contributors, NewContributor(path, m))
	}
	return contributors, nil
}

func isManifestFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return (ext == ".yaml" || ext == ".yml") && !strings.HasPrefix(name, ".")
}

func nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
