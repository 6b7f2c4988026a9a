// Package textutils provides the string normalization used when matching
// vendor field names that vary in case and accents.
package textutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips diacritics, so "Descrição" becomes "descricao".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// ContainsAny reports whether the folded form of s contains any of the
// needles. Needles are expected to be folded already.
func ContainsAny(s string, needles ...string) bool {
	folded := Fold(s)
	for _, n := range needles {
		if n != "" && strings.Contains(folded, n) {
			return true
		}
	}
	return false
}

// EqualFoldAny reports whether s equals any candidate ignoring case and accents.
func EqualFoldAny(s string, candidates ...string) bool {
	folded := Fold(s)
	for _, c := range candidates {
		if folded == Fold(c) {
			return true
		}
	}
	return false
}

// Snippet returns at most n runes of s with whitespace runs collapsed, for
// error messages.
func Snippet(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
