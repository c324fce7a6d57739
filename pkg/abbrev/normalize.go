package abbrev

import (
	"regexp"
	"strings"
)

// Normalizer transforms a key before lookup.
type Normalizer func(string) string

// Stop-words are matched whole-word and case-insensitively; the elisions l' and
// d' are removed together with their apostrophe. The hyphen is absent from the
// punctuation class: it delimits words for per-word lookups.
var (
	stripRe       = regexp.MustCompile(`(?i)(?:\b|^)(?:and|et|y|und|l[ae]|the|[ld]')(?:\b|$)|[\x21-\x2C./\x3A-\x40\x5B-\x60\x7B-\x7E]`)
	spacePeriodRe = regexp.MustCompile(`[\s\p{Z}]*\.`)
)

// NormalizeKey strips stop-words and punctuation from a raw field value and
// collapses whitespace. It returns "" when nothing but stop-words and
// punctuation remain.
func NormalizeKey(raw string) string {
	return collapseSpace(stripRe.ReplaceAllString(raw, ""))
}

// LookupKey lower-cases s and drops any whitespace immediately before a period,
// so "U .S ." and "u.s." share a key.
func LookupKey(s string) string {
	return spacePeriodRe.ReplaceAllString(strings.ToLower(s), ".")
}

// DictionaryKey is the form under which entries are stored, in phrase and word
// tables alike: the lookup form of the normalized key. The trailing "-" of
// partial word entries survives it.
func DictionaryKey(s string) string {
	return LookupKey(NormalizeKey(s))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
