package command

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Normalize case-folds s, trims it and collapses internal whitespace runs to a
// single space. It works the same for Latin and Cyrillic input.
func Normalize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	// A Caser keeps state, so each call gets its own.
	folded := cases.Fold().String(s)
	return strings.Join(strings.Fields(folded), " ")
}

// Tokens splits a normalized utterance into word tokens. Apostrophes inside a
// word are kept so Ukrainian words like "ім'я" stay whole.
func Tokens(normalized string) []string {
	parts := strings.FieldsFunc(normalized, func(r rune) bool {
		return !isWordRune(r) && !isApostrophe(r)
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimFunc(part, isApostrophe)
		if token == "" {
			continue
		}
		out = append(out, token)
	}
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isApostrophe(r rune) bool {
	switch r {
	case '\'', '’', 'ʼ':
		return true
	default:
		return false
	}
}
