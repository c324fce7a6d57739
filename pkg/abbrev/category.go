// Package abbrev resolves bibliographic fields (titles, places, institution
// names) to their abbreviated form.
//
// Resolution runs against an immutable Dictionary and records every result in
// a per-run Cache. A lookup first tries the whole normalized field as a phrase,
// then falls back to abbreviating word by word. Every stage walks the
// jurisdiction chain (requested jurisdiction, then "default") in order.
package abbrev

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultJurisdiction is the fallback tier consulted after any specific jurisdiction.
const DefaultJurisdiction = "default"

// Category is the semantic field being abbreviated.
type Category string

const (
	Title             Category = "title"
	CollectionTitle   Category = "collection-title"
	ContainerTitle    Category = "container-title"
	Place             Category = "place"
	InstitutionPart   Category = "institution-part"
	InstitutionEntire Category = "institution-entire"
	Number            Category = "number"
	Hereinafter       Category = "hereinafter"
)

// Categories lists every recognized category in schema order.
var Categories = []Category{
	Title,
	CollectionTitle,
	ContainerTitle,
	Place,
	InstitutionPart,
	InstitutionEntire,
	Number,
	Hereinafter,
}

// ErrUnknownTable is returned when a table name does not name a known category
// or word table.
var ErrUnknownTable = errors.New("unknown abbreviation table")

const wordSuffix = "-word"

// Valid reports whether c is one of the recognized categories.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// HasWordTable reports whether c has a companion per-word table.
// hereinafter never does.
func (c Category) HasWordTable() bool {
	return c.Valid() && c != Hereinafter
}

// Table addresses one lookup table inside a jurisdiction: either the phrase
// table of a category or its companion word table.
type Table struct {
	Category Category
	Word     bool
}

// PhraseTable returns the whole-field table for c.
func PhraseTable(c Category) Table { return Table{Category: c} }

// WordTable returns the per-word table for c.
func WordTable(c Category) Table { return Table{Category: c, Word: true} }

// String returns the textual table name used in files and on the wire,
// e.g. "container-title" or "container-title-word".
func (t Table) String() string {
	if t.Word {
		return string(t.Category) + wordSuffix
	}
	return string(t.Category)
}

// ParseCategory parses a category id.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTable, s)
	}
	return c, nil
}

// ParseTable parses a textual table name. A "-word" suffix selects the word
// table; "hereinafter-word" is rejected.
func ParseTable(s string) (Table, error) {
	name := strings.TrimSpace(s)
	if base, ok := strings.CutSuffix(name, wordSuffix); ok {
		c := Category(base)
		if !c.HasWordTable() {
			return Table{}, fmt.Errorf("%w: %q", ErrUnknownTable, s)
		}
		return WordTable(c), nil
	}
	c, err := ParseCategory(name)
	if err != nil {
		return Table{}, err
	}
	return PhraseTable(c), nil
}
