package abbrev

// Resolve returns the abbreviation of rawKey for category c in the requested
// jurisdiction. ok is false when no abbreviation applies and the caller must
// keep the original text without abbreviation styling:
//   - neither the phrase nor the word table of c exists anywhere in d,
//   - rawKey is empty once stop-words and punctuation are stripped,
//   - c is Hereinafter and no phrase entry matches.
//
// Otherwise the result is never empty; rawKey itself is the last fallback.
// Every produced value is recorded in cache (when non-nil) under the requested
// jurisdiction and the unnormalized rawKey.
func Resolve(d *Dictionary, cache *Cache, c Category, jurisdiction, rawKey string) (string, bool) {
	if !d.HasCategory(c) {
		return "", false
	}
	normalized := NormalizeKey(rawKey)
	if normalized == "" {
		return "", false
	}

	chain := Chain(jurisdiction, d)
	abbr, ok := matchPhrase(chain, c, LookupKey(normalized), d)
	if !ok {
		if c == Hereinafter {
			return "", false
		}
		abbr = abbreviateWords(chain, c, normalized, rawKey, d)
	}
	if abbr == "" {
		abbr = rawKey
	}

	if cache != nil {
		cache.Record(jurisdiction, c, rawKey, abbr)
	}
	return abbr, true
}

// Run pairs a dictionary with the cache of one rendering run. The dictionary
// is fixed for the lifetime of the run. A Run is not safe for concurrent use.
type Run struct {
	dict  *Dictionary
	cache *Cache
}

// NewRun starts a run against d with an empty cache.
func NewRun(d *Dictionary) *Run {
	return &Run{dict: d, cache: NewCache()}
}

// Resolve resolves one field and records the result in the run cache.
func (r *Run) Resolve(c Category, jurisdiction, rawKey string) (string, bool) {
	return Resolve(r.dict, r.cache, c, jurisdiction, rawKey)
}

// Recorded returns a copy of every abbreviation recorded so far.
func (r *Run) Recorded() Snapshot { return r.cache.Snapshot() }

// Cache exposes the run cache for lookups.
func (r *Run) Cache() *Cache { return r.cache }

// Dictionary returns the dictionary the run resolves against.
func (r *Run) Dictionary() *Dictionary { return r.dict }

// Reset clears the run cache so the run can be reused for an unrelated document.
func (r *Run) Reset() { r.cache.Reset() }
