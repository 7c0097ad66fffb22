// Package textnorm cleans the free-text fields of the source extracts:
// amenity blobs are tokenized into discrete lowercase tokens, and long-form
// text (host about, listing description, review comments) has embedded line
// breaks flattened and unencodable characters dropped.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// NoAmenitiesToken is the single token returned when an amenity field is
// empty or unusable. The taxonomy carries a matching category, so the token
// classifies to "No Amenities" rather than the catch-all.
const NoAmenitiesToken = "no amenities listed"

var (
	bracketQuoteRe = regexp.MustCompile(`[\[\]"]`)
	punctRe        = regexp.MustCompile(`[^\w\s,]`)
	andWordRe      = regexp.MustCompile(`\band\b`)
	commaSpaceRe   = regexp.MustCompile(`\s*,\s*`)
	multiSpaceRe   = regexp.MustCompile(`\s+`)
	lineBreakRe    = regexp.MustCompile(`[\r\n]+`)
)

// SplitAmenities cleans a raw amenity blob and splits it into tokens.
// The input arrives as a bracketed, quoted, comma/"and"-joined string.
// Duplicates are not removed at this stage. An empty or unusable input
// yields the single token NoAmenitiesToken.
func SplitAmenities(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{NoAmenitiesToken}
	}

	text = strings.ToLower(text)
	text = bracketQuoteRe.ReplaceAllString(text, "")
	text = punctRe.ReplaceAllString(text, "")
	text = andWordRe.ReplaceAllString(text, ",")
	text = commaSpaceRe.ReplaceAllString(text, ", ")
	text = strings.TrimSpace(multiSpaceRe.ReplaceAllString(text, " "))

	if text == "" {
		return []string{NoAmenitiesToken}
	}

	var tokens []string
	for _, part := range strings.Split(text, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		return []string{NoAmenitiesToken}
	}
	return tokens
}

// asciiOnly drops every rune outside the printable ASCII range.
var asciiOnly = runes.Remove(runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII
}))

// FlattenText collapses embedded line breaks to single spaces, drops
// characters that cannot be re-encoded (invalid UTF-8 sequences and
// non-ASCII runes), and collapses the resulting whitespace.
func FlattenText(s string) string {
	s = lineBreakRe.ReplaceAllString(s, " ")
	s = strings.ToValidUTF8(s, "")
	if out, _, err := transform.String(asciiOnly, s); err == nil {
		s = out
	}
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(s, " "))
}
