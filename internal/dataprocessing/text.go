package dataprocessing

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText composes s into NFC and trims surrounding whitespace
func NormalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// TitleCase upper-cases the first letter of each word and lower-cases the rest.
// A Caser keeps state, so a fresh one is used per call.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
