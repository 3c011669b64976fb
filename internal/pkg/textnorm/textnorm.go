// Package textnorm normalizes raw participant names as exported by the
// videoconferencing tool: it strips institutional prefixes, diacritics and
// noise characters so that downstream identity resolution compares clean,
// lowercase, letters-only names.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var academicTitles = []string{
	"mtr", "msc", "lic", "sr", "srta", "dra", "est", "prof", "doc", "aux",
}

var universityAcronyms = []string{
	"unprg", "unsa", "unmsm", "unt", "utp", "ucv", "upao", "ulima", "udep", "unfv",
	"ucsm", "upsjb", "uigv", "unp", "uni", "usmp", "unsaac", "uancv",
}

var genericPrefixes = []string{
	"ix", "x", "piu", "chi", "tru", "sal", "invitado", "participante", "usuario", "alumno",
}

// PersonalTitles are honorifics that may precede an otherwise identical name.
// Identity resolution strips them before comparing token sets.
var PersonalTitles = map[string]bool{
	"ing": true, "dr": true, "dra": true, "lic": true,
	"mtr": true, "msc": true, "sr": true, "srta": true,
}

var (
	parenRe       = regexp.MustCompile(`\(.*?\)`)
	knownPrefixRe = regexp.MustCompile(`^(?:` + strings.Join(allPrefixes(), "|") + `)[\s\-_]+`)
	idPrefixRe    = regexp.MustCompile(`^[a-z]{2,6}[\-_]`)
	nonLetterRe   = regexp.MustCompile(`[^a-z\s]`)
	spaceRe       = regexp.MustCompile(`\s+`)
)

func allPrefixes() []string {
	out := make([]string, 0, len(academicTitles)+len(universityAcronyms)+len(genericPrefixes))
	out = append(out, academicTitles...)
	out = append(out, universityAcronyms...)
	out = append(out, genericPrefixes...)
	return out
}

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize cleans a raw name into its canonical comparable form. It is pure
// and idempotent, and never returns an empty string for non-empty input: when
// stripping removes everything, the lowercased original is returned instead.
// Names longer than four tokens are reduced to the first token plus the last
// two, on the assumption of a first name followed by two surnames.
func Normalize(raw string) string {
	name := strings.ToLower(raw)
	original := name

	name = parenRe.ReplaceAllString(name, "")
	name = knownPrefixRe.ReplaceAllString(name, "")
	name = idPrefixRe.ReplaceAllString(name, "")

	if stripped, _, err := transform.String(deaccent, name); err == nil {
		name = stripped
	}

	name = nonLetterRe.ReplaceAllString(name, "")
	name = strings.TrimSpace(spaceRe.ReplaceAllString(name, " "))

	// Removing punctuation can expose a prefix the first strip missed, as in
	// "dra. maria" becoming "dra maria". Strip again until stable so a single
	// pass reaches the fixed point.
	for {
		stripped := knownPrefixRe.ReplaceAllString(name, "")
		if stripped == name {
			break
		}
		name = stripped
	}

	if name == "" {
		return original
	}

	words := strings.Fields(name)
	if len(words) > 4 {
		words = append(words[:1], words[len(words)-2:]...)
	}

	return strings.Join(words, " ")
}

// StripSearchText prepares free-text search input: lowercase, diacritics
// removed and ñ folded to n. Unlike Normalize it keeps digits and symbols so
// substring matching stays literal.
func StripSearchText(text string) string {
	lowered := strings.ToLower(text)
	stripped, _, err := transform.String(deaccent, lowered)
	if err != nil {
		stripped = lowered
	}
	return strings.ReplaceAll(stripped, "ñ", "n")
}
