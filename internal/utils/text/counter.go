// Package text provides small helpers for measuring user-supplied text.
package text

import "unicode/utf8"

// CountRunes counts the number of Unicode characters (runes) in the given text.
// Length limits on submitted fields are expressed in characters, not bytes.
//
// Examples:
//
//	CountRunes("hello")      // returns 5
//	CountRunes("Zürich")     // returns 6
//	CountRunes("")           // returns 0
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}
