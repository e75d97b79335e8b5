package model

import (
	"fmt"
	"strings"
)

// Language identifies the language a piece of feedback is written in.
type Language string

const (
	// LanguageSpanish tags Spanish feedback.
	LanguageSpanish Language = "es"
	// LanguageEnglish tags English feedback.
	LanguageEnglish Language = "en"
	// LanguageAuto is the capability of extractors that accept mixed-language batches.
	// It is never used as the tag of a single text.
	LanguageAuto Language = "auto"
)

// DefaultLanguage is used when language inference cannot tell Spanish from English.
const DefaultLanguage = LanguageEnglish

// String returns the ISO code of the language.
func (l Language) String() string {
	return string(l)
}

// Valid reports whether l is one of the known languages.
func (l Language) Valid() bool {
	switch l {
	case LanguageSpanish, LanguageEnglish, LanguageAuto:
		return true
	}
	return false
}

// ParseLanguage converts an ISO code or English language name into a Language.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "es", "spa", "spanish", "español", "espanol":
		return LanguageSpanish, nil
	case "en", "eng", "english":
		return LanguageEnglish, nil
	case "auto":
		return LanguageAuto, nil
	}
	return "", fmt.Errorf("unknown language %q", s)
}

// Marker words used to guess the language of untagged feedback.
var (
	spanishMarkers = []string{"el", "la", "de", "que", "y", "en", "un", "es"}
	englishMarkers = []string{"the", "a", "an", "and", "or", "but", "in", "on"}
)

// DetectLanguage guesses whether text is Spanish or English by counting how many
// marker words of each language appear as whole words. Spanish wins only with a
// strictly greater count; ties (including no markers at all) fall back to DefaultLanguage.
func DetectLanguage(text string) Language {
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(strings.ToLower(text), isWordSeparator) {
		words[w] = struct{}{}
	}

	spanish := countMarkers(words, spanishMarkers)
	english := countMarkers(words, englishMarkers)

	if spanish > english {
		return LanguageSpanish
	}
	return DefaultLanguage
}

func countMarkers(words map[string]struct{}, markers []string) int {
	n := 0
	for _, m := range markers {
		if _, ok := words[m]; ok {
			n++
		}
	}
	return n
}

func isWordSeparator(r rune) bool {
	return !(r == '\'' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127)
}
