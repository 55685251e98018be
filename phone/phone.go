// Package phone masks and formats the two Brazilian phone shapes used by
// contacts: mobile (DDD + 9 digits, 11 total) and landline (DDD + 8 digits,
// 10 total).
//
// Values are stored as raw digits. The display form only exists at the
// presentation boundary, and Digits always recovers the stored value from it.
package phone

import "strings"

const (
	// MobileLen is the number of digits of a mobile number ("celular").
	MobileLen = 11
	// LandlineLen is the number of digits of a landline number ("telefone").
	LandlineLen = 10
)

// Digits drops every character that is not an ASCII digit.
func Digits(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// IsMobile reports whether s is exactly MobileLen ASCII digits.
func IsMobile(s string) bool { return isDigitsOfLen(s, MobileLen) }

// IsLandline reports whether s is exactly LandlineLen ASCII digits.
func IsLandline(s string) bool { return isDigitsOfLen(s, LandlineLen) }

func isDigitsOfLen(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// truncate keeps at most n leading digits.
func truncate(d string, n int) string {
	if len(d) > n {
		return d[:n]
	}
	return d
}

// join writes the parts separated by single spaces, skipping empty ones.
func join(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	return b.String()
}
