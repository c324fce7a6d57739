package abbrev

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	wordToken tokenKind = iota
	delimToken
)

// token is one element of a tokenized field. Words sit at even positions and
// delimiters at odd positions; a field always starts and ends with a word,
// which may be empty between two adjacent delimiters.
type token struct {
	kind tokenKind
	text string
}

func isWordDelim(b byte) bool { return b == ' ' || b == '-' }

// tokenize splits a normalized key on single spaces and hyphens, keeping the
// delimiters.
func tokenize(s string) []token {
	toks := make([]token, 0, strings.Count(s, " ")*2+1)
	start := 0
	for i := 0; i < len(s); i++ {
		if !isWordDelim(s[i]) {
			continue
		}
		toks = append(toks,
			token{kind: wordToken, text: s[start:i]},
			token{kind: delimToken, text: s[i : i+1]},
		)
		start = i + 1
	}
	return append(toks, token{kind: wordToken, text: s[start:]})
}

// wordMatch is the outcome of looking one word up in the word tables.
type wordMatch struct {
	text  string
	exact bool
	idiom bool
}

// abbreviateWords shortens a multi-word normalized key word by word. rawKey is
// returned for single words and whenever the result would be empty.
func abbreviateWords(chain []string, c Category, normalized, rawKey string, d *Dictionary) string {
	toks := tokenize(normalized)
	if len(toks) == 1 {
		return rawKey
	}

	t := WordTable(c)
	for i := 0; i < len(toks); i += 2 {
		word := toks[i].text
		m, found := matchWord(chain, t, toks, i, d)
		if m.idiom {
			toks = append(toks[:i+1], toks[i+3:]...)
		}

		newWord := word
		if found {
			newWord = m.text
			// A partial match must strictly shorten the word.
			if newWord != "" && !m.exact && utf8.RuneCountInString(word)-utf8.RuneCountInString(newWord) < 1 {
				newWord = word
			}
		}
		if newWord == "" && i == len(toks)-1 {
			newWord = word
		}
		toks[i].text = restoreCase(word, newWord)
	}

	var b strings.Builder
	b.Grow(len(normalized))
	for _, tok := range toks {
		b.WriteString(tok.text)
	}
	if out := collapseSpace(b.String()); out != "" {
		return out
	}
	return rawKey
}

// matchWord finds the abbreviation for toks[i]. Within each jurisdiction of
// the chain it tries, in order: exact word, word without a trailing "s",
// two-word idiom with the following word, and the longest "prefix-" partial
// entry. The first jurisdiction yielding any match wins.
func matchWord(chain []string, t Table, toks []token, i int, d *Dictionary) (wordMatch, bool) {
	lc := LookupKey(toks[i].text)
	hasNext := i+2 < len(toks)
	var idiomKey string
	if hasNext {
		idiomKey = lc + toks[i+1].text + LookupKey(toks[i+2].text)
	}

	for _, j := range chain {
		if !d.hasTable(j, t) {
			continue
		}
		if v, ok := d.Lookup(j, t, lc); ok {
			return wordMatch{text: v, exact: true}, true
		}
		if singular, ok := strings.CutSuffix(lc, "s"); ok {
			if v, ok := d.Lookup(j, t, singular); ok {
				return wordMatch{text: v, exact: true}, true
			}
		}
		if hasNext {
			if v, ok := d.Lookup(j, t, idiomKey); ok {
				return wordMatch{text: v, exact: true, idiom: true}, true
			}
		}
		if v, ok := matchPartial(j, t, lc, d); ok {
			return wordMatch{text: v}, true
		}
	}
	return wordMatch{}, false
}

// matchPartial tries "prefix-" entries from the full word down to its first
// character.
func matchPartial(jurisdiction string, t Table, lc string, d *Dictionary) (string, bool) {
	for end := len(lc); end > 0; {
		if v, ok := d.Lookup(jurisdiction, t, lc[:end]+"-"); ok {
			return v, true
		}
		_, size := utf8.DecodeLastRuneInString(lc[:end])
		end -= size
	}
	return "", false
}

// restoreCase upper-cases the first letter of abbr when the source word
// started with an upper-case letter. The rest of abbr is kept as stored.
func restoreCase(source, abbr string) string {
	first, _ := utf8.DecodeRuneInString(source)
	if abbr == "" || !unicode.IsUpper(first) {
		return abbr
	}
	r, size := utf8.DecodeRuneInString(abbr)
	if unicode.IsUpper(r) {
		return abbr
	}
	return string(unicode.ToUpper(r)) + abbr[size:]
}
