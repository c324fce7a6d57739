package abbrev

import "sort"

// Dictionary holds abbreviation tables per jurisdiction. It is filled once with
// Add and must not be modified while any resolution uses it; after that it is
// safe to share between goroutines.
type Dictionary struct {
	tables     map[string]map[Table]map[string]string
	categories map[Category]bool
	entries    int
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		tables:     make(map[string]map[Table]map[string]string),
		categories: make(map[Category]bool),
	}
}

// Add stores value under key in the given jurisdiction table. The key is
// stored in its DictionaryKey form; keys that normalize to "" are ignored.
// An empty jurisdiction means DefaultJurisdiction. Add reports whether an
// existing entry was replaced.
func (d *Dictionary) Add(jurisdiction string, t Table, key, value string) (replaced bool) {
	k := DictionaryKey(key)
	if k == "" {
		return false
	}
	if jurisdiction == "" {
		jurisdiction = DefaultJurisdiction
	}
	jt, ok := d.tables[jurisdiction]
	if !ok {
		jt = make(map[Table]map[string]string)
		d.tables[jurisdiction] = jt
	}
	entries, ok := jt[t]
	if !ok {
		entries = make(map[string]string)
		jt[t] = entries
	}
	if _, replaced = entries[k]; !replaced {
		d.entries++
	}
	entries[k] = value
	d.categories[t.Category] = true
	return replaced
}

// Lookup returns the entry stored under an already normalized lookup key.
func (d *Dictionary) Lookup(jurisdiction string, t Table, key string) (string, bool) {
	if d == nil {
		return "", false
	}
	entries, ok := d.tables[jurisdiction][t]
	if !ok {
		return "", false
	}
	v, ok := entries[key]
	return v, ok
}

// HasJurisdiction reports whether any table exists for jurisdiction.
func (d *Dictionary) HasJurisdiction(jurisdiction string) bool {
	if d == nil {
		return false
	}
	_, ok := d.tables[jurisdiction]
	return ok
}

func (d *Dictionary) hasTable(jurisdiction string, t Table) bool {
	if d == nil {
		return false
	}
	_, ok := d.tables[jurisdiction][t]
	return ok
}

// HasCategory reports whether the phrase or word table of c exists in any
// jurisdiction.
func (d *Dictionary) HasCategory(c Category) bool {
	return d != nil && d.categories[c]
}

// Jurisdictions returns the jurisdictions with at least one table, sorted.
func (d *Dictionary) Jurisdictions() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.tables))
	for j := range d.tables {
		out = append(out, j)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of entries across all tables.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return d.entries
}
