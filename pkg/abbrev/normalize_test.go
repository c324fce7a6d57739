package abbrev

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Climate of the Past", "Climate of Past"},
		{"The Journal of Law and Economics", "Journal of Law Economics"},
		{"Revue d'Histoire", "Revue Histoire"},
		{"L'Homme", "Homme"},
		{"U.S. Court of Appeals", "US Court of Appeals"},
		{"New York, N.Y.", "New York N"}, // lone "Y" is a stop-word
		{"Smith & Sons", "Smith Sons"},
		{"Saint-Étienne", "Saint-Étienne"},
		{"Y Tu Mamá", "Tu Mamá"},
		{"  spaced   out  ", "spaced out"},
		{"Theory", "Theory"},
		{"Layer", "Layer"},
		{"and the", ""},
		{"...;;", ""},
		{"-", "-"}, // the hyphen is a word delimiter, not punctuation
		{"", ""},
	}
	for _, tt := range tests {
		got := NormalizeKey(tt.input)
		if got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLookupKey(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"U. S.", "u. s."},
		{"U .S .", "u.s."},
		{"Ann\t. Phys .", "ann. phys."},
		{"U.S.", "u.s."},
		{"Foo Bar", "foo bar"},
		{"A . B", "a. b"},
		{"JOURNAL", "journal"},
		{"", ""},
	}
	for _, tt := range tests {
		got := LookupKey(tt.input)
		if got != tt.want {
			t.Errorf("LookupKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDictionaryKey(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"The New York Times", "new york times"},
		{"abbreviat-", "abbreviat-"},
		{"Anglo-Saxon", "anglo-saxon"},
		{"the", ""},
	}
	for _, tt := range tests {
		got := DictionaryKey(tt.input)
		if got != tt.want {
			t.Errorf("DictionaryKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPropertyLookupKeyIdempotent(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[a-zA-Z .\t]{0,40}`).Draw(t, "s")

		once := LookupKey(s)
		twice := LookupKey(once)
		if once != twice {
			t.Fatalf("not idempotent: first=%q, second=%q", once, twice)
		}
	})
}

func TestPropertyLookupKeyCaseInsensitive(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[a-zA-Z .]{0,40}`).Draw(t, "s")

		upper := LookupKey(strings.ToUpper(s))
		lower := LookupKey(strings.ToLower(s))
		if upper != lower {
			t.Fatalf("case sensitive: %q vs %q for input %q", upper, lower, s)
		}
	})
}

var stopElements = []string{
	"and", "et", "y", "und", "le", "la", "the",
	"!", "\"", "#", "$", "%", "&", "'", "(", ")", "*", "+", ",", ".", "/",
	":", ";", "<", "=", ">", "?", "@", "[", "\\", "]", "^", "_", "`", "{", "|", "}", "~",
}

func TestPropertyNormalizeStopWordsOnly(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOfN(rapid.SampledFrom(stopElements), 0, 12).Draw(t, "parts")
		for i, p := range parts {
			if rapid.Bool().Draw(t, "upper") {
				parts[i] = strings.ToUpper(p)
			}
		}
		s := strings.Join(parts, " ")

		if got := NormalizeKey(s); got != "" {
			t.Fatalf("NormalizeKey(%q) = %q, want empty", s, got)
		}
	})
}

func TestPropertyNormalizeKeyTrimmed(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")

		got := NormalizeKey(s)
		if got != strings.TrimSpace(got) || strings.Contains(got, "  ") {
			t.Fatalf("NormalizeKey(%q) = %q is not whitespace-normalized", s, got)
		}
	})
}
