package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlnum    = regexp.MustCompile(`[^A-Za-z0-9]+`)
	camelSplit  = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	underscores = regexp.MustCompile(`_+`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// RemoveAccents removes accents from a string, converting accented characters to their base forms
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// SplitWords splits a string into words, handling camelCase, PascalCase, snake_case, and kebab-case
func SplitWords(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	s = RemoveAccents(s)
	s = camelSplit.ReplaceAllString(s, "$1 $2")

	parts := nonAlnum.Split(s, -1)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// ToPascalCase converts a string to PascalCase
func ToPascalCase(s string) string {
	parts := SplitWords(s)
	if len(parts) == 0 {
		return ""
	}

	b := strings.Builder{}
	for _, p := range parts {
		b.WriteString(strings.ToUpper(p[:1]))
		if len(p) > 1 {
			b.WriteString(strings.ToLower(p[1:]))
		}
	}
	return b.String()
}

// ToSnakeCase converts a string to snake_case
func ToSnakeCase(s string) string {
	parts := SplitWords(s)
	if len(parts) == 0 {
		return ""
	}

	for i := range parts {
		parts[i] = strings.ToLower(parts[i])
	}
	return strings.Join(parts, "_")
}

// Underscore lower-cases s and joins its whitespace separated words with a
// single underscore. Unlike ToSnakeCase it keeps every other character, so
// callers can still match on punctuation afterwards.
func Underscore(s string) string {
	s = strings.ToLower(strings.TrimSpace(RemoveAccents(s)))
	return whitespace.ReplaceAllString(s, "_")
}

// CollapseUnderscores squeezes runs of underscores and trims them from both ends.
func CollapseUnderscores(s string) string {
	return strings.Trim(underscores.ReplaceAllString(s, "_"), "_")
}
