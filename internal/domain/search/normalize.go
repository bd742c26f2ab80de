// Package search implements the text comparison used by the app filter.
//
// Normalize maps text to a canonical form (lowercase, separators removed).
// Matches checks a pre-normalized query against a raw candidate. The two are
// kept apart so a caller can normalize a query once and test it against
// every candidate in a list.
package search

import "strings"

// separators are the characters dropped during normalization.
// "android-assistant", "android_assistant" and "Android Assistant" all
// compare equal once they are gone.
var separators = strings.NewReplacer("-", "", "_", "", " ", "")

// Normalize returns the canonical comparison form of text: lowercased with
// simple case mapping, then stripped of every hyphen, underscore and space.
//
//	"Hello World"       -> "helloworld"
//	"Android-Assistant" -> "androidassistant"
//	"---"               -> ""
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return separators.Replace(strings.ToLower(text))
}
