// CLAUDE:SUMMARY YAML abbreviation sets: per-jurisdiction tables declared inline, as in citation test fixtures.
package dict

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/abbrev-registry/pkg/abbrev"
)

// Set is one block of a sets file: a mapping with an optional jurisdiction
// key and one key per table name, each holding source key -> abbreviation.
// A missing jurisdiction means default. Rows keep document order.
type Set struct {
	Jurisdiction string
	Entries      []Entry
}

// UnmarshalYAML decodes a set mapping, rejecting unknown table names.
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: abbreviation set must be a mapping", node.Line)
	}
	s.Jurisdiction = abbrev.DefaultJurisdiction
	var entries []Entry
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, value := node.Content[i].Value, node.Content[i+1]
		if name == "jurisdiction" {
			if value.Value != "" {
				s.Jurisdiction = value.Value
			}
			continue
		}
		if _, err := abbrev.ParseTable(name); err != nil {
			return fmt.Errorf("line %d: %w", node.Content[i].Line, err)
		}
		if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
			continue
		}
		if value.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: table %s must be a mapping", value.Line, name)
		}
		for j := 0; j+1 < len(value.Content); j += 2 {
			v := value.Content[j+1]
			if v.Tag == "!!null" {
				v.Value = ""
			}
			entries = append(entries, Entry{
				Table: name,
				Key:   value.Content[j].Value,
				Value: v.Value,
			})
		}
	}
	for i := range entries {
		entries[i].Jurisdiction = s.Jurisdiction
	}
	s.Entries = entries
	return nil
}

// ParseSets decodes a YAML list of abbreviation sets.
func ParseSets(data []byte) ([]Set, error) {
	var sets []Set
	if err := yaml.Unmarshal(data, &sets); err != nil {
		return nil, fmt.Errorf("parse abbreviation sets: %w", err)
	}
	return sets, nil
}

// LoadSets reads a YAML file holding a list of abbreviation sets.
func LoadSets(path string) ([]Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sets %s: %w", path, err)
	}
	sets, err := ParseSets(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sets, nil
}

// ApplySets adds every set to d in order and returns the number of entries
// that replaced an earlier one.
func ApplySets(d *abbrev.Dictionary, sets []Set) (int, error) {
	var collisions int
	for _, s := range sets {
		n, err := applyEntries(d, s.Entries)
		collisions += n
		if err != nil {
			return collisions, err
		}
	}
	return collisions, nil
}

// DictionaryFromSets builds a fresh dictionary holding only sets.
func DictionaryFromSets(sets []Set) (*abbrev.Dictionary, error) {
	d := abbrev.NewDictionary()
	if _, err := ApplySets(d, sets); err != nil {
		return nil, err
	}
	return d, nil
}
