// Package slug maps between article titles and URL-safe identifiers.
package slug

import (
	"regexp"
	"strings"
	"unicode"
)

const maxSlugLen = 255

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the title, collapses every run of non-alphanumeric
// characters into a single dash, strips leading and trailing dashes and
// truncates to 255 characters. Total and idempotent.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonAlnumRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	return s
}

// Unslugify turns a slug back into a display title: dashes become spaces,
// repeated whitespace collapses and each word is capitalized. Lossy on
// purpose; original casing and punctuation are not recoverable.
func Unslugify(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "-", " "))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
