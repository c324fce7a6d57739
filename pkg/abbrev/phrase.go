package abbrev

// matchPhrase looks up the whole normalized field in the phrase table of c,
// walking the chain in order. Empty entries count as absent.
func matchPhrase(chain []string, c Category, key string, d *Dictionary) (string, bool) {
	t := PhraseTable(c)
	for _, j := range chain {
		if v, ok := d.Lookup(j, t, key); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
