// Package grading normalizes and compares answer text. Stored answers have
// been observed with stray whitespace and mixed case; every comparison in the
// system goes through Equal so a cosmetic difference never grades as wrong.
package grading

import "strings"

// Normalize trims surrounding whitespace and casefolds.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Equal reports whether two answers match after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
