package namematch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldMap covers the characters that show up in Premier League squad
// lists. NFKD stripping below catches the rest, but ligatures like æ and
// the Nordic ø do not decompose, so they are mapped explicitly.
var foldMap = map[rune]string{
	'ø': "o", 'å': "a", 'æ': "ae",
	'ä': "a", 'ö': "o", 'ú': "u", 'ü': "u",
	'é': "e", 'ñ': "n", 'ï': "i", 'í': "i",
	'ã': "a", 'á': "a", 'č': "c", 'ć': "c", 'š': "s",
}

var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases a name, folds diacritics to ASCII, and turns
// hyphens and apostrophes into token breaks, so "Sævar O'Shéa-Nuñez"
// normalizes to "saevar o shea nunez".
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if repl, ok := foldMap[r]; ok {
			b.WriteString(repl)
			continue
		}
		switch r {
		case '-', '\'', '’', '`':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	folded, _, err := transform.String(stripMarks, b.String())
	if err != nil {
		folded = b.String()
	}
	return strings.Join(strings.Fields(folded), " ")
}

// Tokens splits a normalized name into its word tokens.
func Tokens(name string) []string {
	return strings.Fields(Normalize(name))
}

// tokensSubset reports whether every token of a appears in b.
func tokensSubset(a, b []string) bool {
	if len(a) == 0 {
		return false
	}
	for _, t := range a {
		found := false
		for _, u := range b {
			if t == u {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
