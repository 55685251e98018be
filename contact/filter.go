package contact

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FilterState is the list view's filter input.
type FilterState struct {
	FavoritesOnly bool
	SearchTerm    string
}

// Active reports whether st filters anything at all.
func (st FilterState) Active() bool {
	return st.FavoritesOnly || strings.TrimSpace(st.SearchTerm) != ""
}

// Filter returns the contacts of list that pass st, in their original order.
//
// FavoritesOnly keeps favorites. A non-blank SearchTerm keeps contacts whose
// name, mobile, landline or email contains the trimmed term, ignoring case.
// Both conditions must hold. The result never aliases list.
func Filter(list []Contact, st FilterState) []Contact {
	var m *matcher
	if term := strings.TrimSpace(st.SearchTerm); term != "" {
		m = newMatcher(term)
	}

	out := make([]Contact, 0, len(list))
	for _, c := range list {
		if st.FavoritesOnly && !c.Favorite {
			continue
		}
		if m != nil && !m.match(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// matcher compares NFC-normalized, case-folded text so "JOÃO", "joão" and
// a decomposed "joão" are all equal.
type matcher struct {
	fold cases.Caser
	term string
}

func newMatcher(term string) *matcher {
	m := &matcher{fold: cases.Fold()}
	m.term = m.normalize(term)
	return m
}

func (m *matcher) normalize(s string) string {
	return m.fold.String(norm.NFC.String(s))
}

func (m *matcher) contains(field string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(m.normalize(field), m.term)
}

func (m *matcher) match(c Contact) bool {
	return m.contains(c.Name) ||
		m.contains(c.Mobile) ||
		m.contains(c.Landline) ||
		m.contains(c.Email)
}
