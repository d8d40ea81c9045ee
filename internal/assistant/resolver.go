package assistant

import "strings"

// Candidate is a stored entity viewed by the resolver: an identifier and a
// title, nothing more.
type Candidate struct {
	ID    string
	Title string
}

// ResolveEntity maps a user-supplied title fragment to one candidate using
// case-insensitive bidirectional substring containment: a candidate matches
// when its title contains the fragment or the fragment contains its title.
// The first match in candidate order wins. Users refer to entities by
// memory-approximate titles ("my React goal" for "Learn React from
// scratch"), so exact match would fail too often; edit-distance scoring is
// more than short titles need.
func ResolveEntity(fragment string, candidates []Candidate) (Candidate, bool) {
	frag := strings.ToLower(strings.TrimSpace(fragment))
	if frag == "" {
		return Candidate{}, false
	}
	for _, c := range candidates {
		title := strings.ToLower(strings.TrimSpace(c.Title))
		if title == "" {
			continue
		}
		if strings.Contains(title, frag) || strings.Contains(frag, title) {
			return c, true
		}
	}
	return Candidate{}, false
}
