package model

import (
	"fmt"
	"strings"

	"github.com/Veraticus/feedback-topics/internal/common"
	"golang.org/x/text/unicode/norm"
)

// BusinessCategory is a language-independent business topic.
type BusinessCategory string

// Business categories. The values double as topic names.
const (
	CategoryProduct  BusinessCategory = "producto"
	CategoryService  BusinessCategory = "servicio"
	CategoryDelivery BusinessCategory = "entrega"
	CategoryPrice    BusinessCategory = "precio"
)

// AllBusinessCategories returns the categories in their canonical order.
func AllBusinessCategories() []BusinessCategory {
	return []BusinessCategory{CategoryProduct, CategoryService, CategoryDelivery, CategoryPrice}
}

// String returns the category identifier.
func (c BusinessCategory) String() string {
	return string(c)
}

// Valid reports whether c is a known category.
func (c BusinessCategory) Valid() bool {
	switch c {
	case CategoryProduct, CategoryService, CategoryDelivery, CategoryPrice:
		return true
	}
	return false
}

// TopicCategory is the per-language definition of a business category: the
// keywords and higher-precision phrases that attribute a text to it.
type TopicCategory struct {
	Category BusinessCategory
	Language Language
	Keywords []string
	Phrases  []string
}

// NewTopicCategory validates and normalizes a category definition. Keywords and
// phrases are NFC-composed, lower-cased and trimmed; blank entries are dropped. A definition
// without keywords is a configuration error.
func NewTopicCategory(category BusinessCategory, language Language, keywords, phrases []string) (TopicCategory, error) {
	if !category.Valid() {
		return TopicCategory{}, fmt.Errorf("%w: unknown business category %q", common.ErrInvalidConfig, category)
	}
	if !language.Valid() || language == LanguageAuto {
		return TopicCategory{}, fmt.Errorf("%w: category %s has invalid language %q", common.ErrInvalidConfig, category, language)
	}

	kws := normalizeTerms(keywords)
	if len(kws) == 0 {
		return TopicCategory{}, fmt.Errorf("%w: category %s (%s)", common.ErrEmptyKeywords, category, language)
	}

	return TopicCategory{
		Category: category,
		Language: language,
		Keywords: kws,
		Phrases:  normalizeTerms(phrases),
	}, nil
}

// MustTopicCategory is like NewTopicCategory but panics on error. It is meant
// for static tables built during package initialization.
func MustTopicCategory(category BusinessCategory, language Language, keywords, phrases []string) TopicCategory {
	tc, err := NewTopicCategory(category, language, keywords, phrases)
	if err != nil {
		panic(err)
	}
	return tc
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(norm.NFC.String(t)))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
