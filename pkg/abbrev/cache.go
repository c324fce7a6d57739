package abbrev

// Snapshot is a copy of a cache: jurisdiction -> category -> raw key -> abbreviation.
type Snapshot map[string]map[Category]map[string]string

// Cache records every abbreviation produced during one run, indexed by the
// requested jurisdiction and the raw field value. A Cache belongs to a single
// run and is not safe for concurrent use.
type Cache struct {
	entries Snapshot
	size    int
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(Snapshot)}
}

// Record stores value for (jurisdiction, c, rawKey). A jurisdiction seen for
// the first time gets an empty table for every category.
func (c *Cache) Record(jurisdiction string, cat Category, rawKey, value string) {
	jt, ok := c.entries[jurisdiction]
	if !ok {
		jt = make(map[Category]map[string]string, len(Categories))
		for _, k := range Categories {
			jt[k] = make(map[string]string)
		}
		c.entries[jurisdiction] = jt
	}
	t, ok := jt[cat]
	if !ok {
		t = make(map[string]string)
		jt[cat] = t
	}
	if _, exists := t[rawKey]; !exists {
		c.size++
	}
	t[rawKey] = value
}

// Lookup returns a previously recorded abbreviation.
func (c *Cache) Lookup(jurisdiction string, cat Category, rawKey string) (string, bool) {
	v, ok := c.entries[jurisdiction][cat][rawKey]
	return v, ok
}

// Len returns the number of recorded keys.
func (c *Cache) Len() int { return c.size }

// Reset discards every entry, starting a new run.
func (c *Cache) Reset() {
	c.entries = make(Snapshot)
	c.size = 0
}

// Snapshot returns a deep copy of the recorded entries.
func (c *Cache) Snapshot() Snapshot {
	out := make(Snapshot, len(c.entries))
	for j, jt := range c.entries {
		cp := make(map[Category]map[string]string, len(jt))
		for cat, t := range jt {
			tc := make(map[string]string, len(t))
			for k, v := range t {
				tc[k] = v
			}
			cp[cat] = tc
		}
		out[j] = cp
	}
	return out
}
