package abbrev

// Chain returns the jurisdictions consulted for a request, in priority order.
// A specific jurisdiction comes first when the dictionary has tables for it;
// DefaultJurisdiction always closes the chain.
func Chain(requested string, d *Dictionary) []string {
	if requested != DefaultJurisdiction && d.HasJurisdiction(requested) {
		return []string{requested, DefaultJurisdiction}
	}
	return []string{DefaultJurisdiction}
}
