// Package textmatch does case- and accent-insensitive keyword matching over
// free-form Spanish marketing copy.
package textmatch

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips combining marks, so "Básico" and "basico"
// compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// FirstMatch returns the first keyword (in keyword order) found in text.
// A keyword only counts when it starts a word, so "go" does not hit "Tigo"
// while stems like "emprend" still hit "emprendedor".
func FirstMatch(text string, keywords []string) (string, bool) {
	folded := Fold(text)
	if folded == "" {
		return "", false
	}
	for _, kw := range keywords {
		k := Fold(kw)
		if k != "" && startsWord(folded, k) {
			return kw, true
		}
	}
	return "", false
}

// startsWord reports whether kw occurs in s at a word start: the rune before
// it is not of the same class (letter or digit) as kw's first rune.
func startsWord(s, kw string) bool {
	first, _ := utf8.DecodeRuneInString(kw)
	for i := 0; i <= len(s)-len(kw); {
		j := strings.Index(s[i:], kw)
		if j < 0 {
			return false
		}
		at := i + j
		if at == 0 {
			return true
		}
		prev, _ := utf8.DecodeLastRuneInString(s[:at])
		if !sameClass(prev, first) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[at:])
		i = at + size
	}
	return false
}

func sameClass(a, b rune) bool {
	switch {
	case unicode.IsLetter(b):
		return unicode.IsLetter(a)
	case unicode.IsDigit(b):
		return unicode.IsDigit(a)
	}
	return false
}

// CountMatches returns how many of the texts contain at least one keyword.
func CountMatches(texts []string, keywords []string) int {
	n := 0
	for _, t := range texts {
		if _, ok := FirstMatch(t, keywords); ok {
			n++
		}
	}
	return n
}
