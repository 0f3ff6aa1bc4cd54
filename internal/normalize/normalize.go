// Package normalize maps heterogeneous CSV/XLSX column headers onto the
// canonical field names the rest of the system keys rows by.
package normalize

import (
	"strings"
	"unicode"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

func lower(s string) string { return strings.ToLower(s) }

// FieldName converts a raw header into its canonical field name. It trims
// whitespace and line-ending noise, consults the synonym table (exact spelling
// first, then lower-cased), and falls back to a generic camel-case conversion
// for unknown headers. Unknown headers never error; tolerating unfamiliar
// datasets is more useful than rejecting them.
func FieldName(header string) string {
	trimmed := strings.TrimSpace(strings.Trim(header, "\r\n\t"))
	if trimmed == "" {
		return trimmed
	}

	if canonical, ok := synonymIndex[trimmed]; ok {
		return canonical
	}
	if canonical, ok := synonymIndex[lower(trimmed)]; ok {
		return canonical
	}

	return toCamelCase(trimmed)
}

// Row applies FieldName to every key of a raw row. When two headers collapse
// onto the same canonical name the later one wins; collisions are not treated
// as errors.
func Row(raw domain.Row) domain.Row {
	normalized := make(domain.Row, len(raw))
	for key, value := range raw {
		normalized[FieldName(key)] = value
	}
	return normalized
}

// Headers normalizes a header list in order, preserving duplicates so callers
// can detect collisions if they care to.
func Headers(raw []string) []string {
	normalized := make([]string, len(raw))
	for i, header := range raw {
		normalized[i] = FieldName(header)
	}
	return normalized
}

// toCamelCase converts snake_case, kebab-case, or space-separated words to
// camelCase with a lower-cased first letter. Inputs with no letters degrade
// to the trimmed original.
func toCamelCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	if len(words) == 0 {
		return s
	}

	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return s
	}

	var b strings.Builder
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		if i == 0 {
			runes[0] = unicode.ToLower(runes[0])
		} else {
			runes[0] = unicode.ToUpper(runes[0])
		}
		// Preserve interior casing so already-camelCased words survive.
		b.WriteString(string(runes))
	}
	return b.String()
}
