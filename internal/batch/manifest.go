package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrsinham/markerforge/internal/export"
	"github.com/mrsinham/markerforge/internal/marker"
)

// ManifestName is the file written next to the markers of a batch.
const ManifestName = "manifest.yaml"

// Manifest records what a batch run produced.
type Manifest struct {
	Generated time.Time       `yaml:"generated"`
	Kind      marker.Kind     `yaml:"kind"`
	Size      int             `yaml:"size"`
	Format    export.Format   `yaml:"format"`
	Label     string          `yaml:"label,omitempty"`
	Markers   []ManifestEntry `yaml:"markers"`
}

// ManifestEntry is one marker file. File is relative to the manifest.
type ManifestEntry struct {
	Seed  int32  `yaml:"seed"`
	File  string `yaml:"file"`
	Bytes int64  `yaml:"bytes"`
}

// NewManifest builds the manifest for results produced with opts.
func NewManifest(opts Options, results []Result) Manifest {
	m := Manifest{
		Generated: time.Now().UTC().Truncate(time.Second),
		Kind:      opts.Kind,
		Size:      opts.Size,
		Format:    opts.Format,
		Label:     opts.Label,
		Markers:   make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		m.Markers[i] = ManifestEntry{
			Seed:  r.Seed,
			File:  filepath.Base(r.Path),
			Bytes: r.Bytes,
		}
	}
	return m
}

// WriteManifest saves m as YAML at path.
func WriteManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest written by WriteManifest.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}

// Seeds returns the seeds listed in m, in file order.
func (m Manifest) Seeds() []int32 {
	seeds := make([]int32, len(m.Markers))
	for i, e := range m.Markers {
		seeds[i] = e.Seed
	}
	return seeds
}
