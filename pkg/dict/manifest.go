// CLAUDE:SUMMARY Manifest YAML schema describing an abbreviation list: provenance, target table and data layout.
package dict

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/abbrev-registry/pkg/abbrev"
)

// Load methods.
const (
	MethodCSV  = "csv"
	MethodSets = "sets"
	MethodGob  = "gob" // rows carry their own jurisdiction and table
)

// Manifest describes an abbreviation list: its source, target table, and format.
type Manifest struct {
	ID           string     `yaml:"id" json:"id"`
	Version      string     `yaml:"version" json:"version"`
	Jurisdiction string     `yaml:"jurisdiction" json:"jurisdiction"`
	Category     string     `yaml:"category" json:"category,omitempty"`
	Source       string     `yaml:"source" json:"source"`
	SourceURL    string     `yaml:"source_url" json:"source_url,omitempty"`
	License      string     `yaml:"license" json:"license"`
	DataFile     string     `yaml:"data_file" json:"data_file"`
	Method       string     `yaml:"method" json:"method,omitempty"`
	Format       FormatSpec `yaml:"format" json:"-"`
}

// FormatSpec describes the CSV layout. Column names require has_header;
// without a header the key is column 0 and the value column 1.
type FormatSpec struct {
	Delimiter          string `yaml:"delimiter"`
	Encoding           string `yaml:"encoding"`
	HasHeader          bool   `yaml:"has_header"`
	KeyColumn          string `yaml:"key_column"`
	ValueColumn        string `yaml:"value_column"`
	JurisdictionColumn string `yaml:"jurisdiction_column"`
	CategoryColumn     string `yaml:"category_column"`
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
	if m.ID == "" {
		return nil, fmt.Errorf("manifest %s: missing id", path)
	}
	if m.Jurisdiction == "" {
		m.Jurisdiction = abbrev.DefaultJurisdiction
	}
	if m.Method == "" {
		m.Method = MethodCSV
	}
	switch m.Method {
	case MethodCSV:
		if m.DataFile == "" {
			m.DataFile = "data.csv"
		}
		if m.Category == "" && m.Format.CategoryColumn == "" {
			return nil, fmt.Errorf("manifest %s: csv list needs category or format.category_column", path)
		}
	case MethodSets:
		if m.DataFile == "" {
			m.DataFile = "sets.yaml"
		}
	case MethodGob:
		m.DataFile = "data.gob"
	default:
		return nil, fmt.Errorf("manifest %s: unknown method %q", path, m.Method)
	}
	if m.Category != "" {
		if _, err := abbrev.ParseTable(m.Category); err != nil {
			return nil, fmt.Errorf("manifest %s: %w", path, err)
		}
	}
	return &m, nil
}
