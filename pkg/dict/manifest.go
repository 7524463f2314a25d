package dict

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	manifestFile = "manifest.yaml"
	dataFile     = "data.gob"
)

// Table kinds recorded in a manifest.
const (
	KindRules = "rules"
	KindVocab = "vocab"
)

// Manifest describes a compiled table directory.
type Manifest struct {
	Kind      string  `yaml:"kind" json:"kind"`
	Language  string  `yaml:"language,omitempty" json:"language,omitempty"`
	Source    string  `yaml:"source" json:"source"`
	MinCount  int     `yaml:"min_count,omitempty" json:"min_count,omitempty"`
	Threshold float64 `yaml:"similarity_threshold,omitempty" json:"similarity_threshold,omitempty"`
	Entries   int     `yaml:"entries" json:"entries"`
	DataFile  string  `yaml:"data_file" json:"data_file"`
	BuiltAt   string  `yaml:"built_at" json:"built_at"`
}

// LoadManifest reads and parses a manifest.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	switch m.Kind {
	case KindRules, KindVocab:
	case "":
		return nil, fmt.Errorf("manifest %s: missing kind", path)
	default:
		return nil, fmt.Errorf("manifest %s: unknown kind %q", path, m.Kind)
	}
	if m.DataFile == "" {
		m.DataFile = dataFile
	}
	return &m, nil
}

// WriteManifest writes m as YAML to dir/manifest.yaml.
func WriteManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, manifestFile), data, 0o644)
}
