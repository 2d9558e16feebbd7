package content

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Alias builds a URL-safe alias from a title: diacritics stripped, lower
// case, runs of other characters collapsed to a single dash. A title with no
// usable characters yields a timestamp alias.
func Alias(title string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(stripper, title)
	if err != nil {
		plain = title
	}
	plain = cases.Lower(language.Und).String(plain)

	var b strings.Builder
	b.Grow(len(plain))
	dash := false
	for _, r := range plain {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	alias := strings.TrimRight(b.String(), "-")
	if alias == "" {
		return time.Now().UTC().Format("2006-01-02-15-04-05")
	}
	return alias
}

// DisplayTitle title-cases a label for terminal output.
func DisplayTitle(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return cases.Title(language.Und).String(value)
}
