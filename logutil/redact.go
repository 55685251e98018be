// Package logutil masks personal data before it reaches the logs.
package logutil

import (
	"strings"
	"unicode"
)

const (
	shortDigitCount = 4
	keepShortDigits = 1
	keepLongDigits  = 4
)

// MaskDigits hides every digit of s except the last four (the last one when
// s has four digits or fewer). Other characters are kept, so a search term
// like "maria 9876" stays readable.
//
//	"11987654321"    -> "*******4321"
//	"11 9 8765 4321" -> "** * **** 4321"
//	"123"            -> "**3"
func MaskDigits(s string) string {
	runes := []rune(s)
	total := 0
	for _, r := range runes {
		if unicode.IsDigit(r) {
			total++
		}
	}
	if total == 0 {
		return s
	}

	keep := keepLongDigits
	if total <= shortDigitCount {
		keep = keepShortDigits
	}
	seen := 0
	for i := len(runes) - 1; i >= 0; i-- {
		if unicode.IsDigit(runes[i]) {
			seen++
			if seen > keep {
				runes[i] = '*'
			}
		}
	}
	return string(runes)
}

// MaskEmail keeps the first and last character of the local part.
//
//	"joao@example.com" -> "j**o@example.com"
//	"ab@example.com"   -> "a*@example.com"
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return maskToken(email)
	}
	return maskToken(email[:at]) + email[at:]
}

func maskToken(s string) string {
	r := []rune(s)
	switch n := len(r); {
	case n <= 1:
		return s
	case n == 2:
		return string(r[0]) + "*"
	default:
		return string(r[0]) + strings.Repeat("*", n-2) + string(r[n-1])
	}
}
