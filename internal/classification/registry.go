// Package classification holds the per-language category tables and the
// keyword matchers compiled from them.
package classification

import (
	"fmt"

	"github.com/Veraticus/feedback-topics/internal/common"
	"github.com/Veraticus/feedback-topics/internal/model"
)

// Table is the category table of one language.
type Table struct {
	Language   model.Language
	Categories []model.TopicCategory
}

// Registry maps each supported language to its category table and compiled
// matchers. It is immutable after construction and safe for concurrent use.
type Registry struct {
	tables   map[model.Language][]model.TopicCategory
	matchers map[model.Language][]*CategoryMatcher
	order    []model.Language
}

// NewRegistry validates the tables and compiles their matchers. Any problem
// in a table is a configuration error.
func NewRegistry(tables ...Table) (*Registry, error) {
	r := &Registry{
		tables:   make(map[model.Language][]model.TopicCategory, len(tables)),
		matchers: make(map[model.Language][]*CategoryMatcher, len(tables)),
	}

	for _, table := range tables {
		if _, exists := r.tables[table.Language]; exists {
			return nil, fmt.Errorf("%w: duplicate table for language %s", common.ErrInvalidConfig, table.Language)
		}
		if len(table.Categories) == 0 {
			return nil, fmt.Errorf("%w: table for language %s has no categories", common.ErrInvalidConfig, table.Language)
		}

		seen := make(map[model.BusinessCategory]struct{}, len(table.Categories))
		matchers := make([]*CategoryMatcher, 0, len(table.Categories))
		for _, tc := range table.Categories {
			if tc.Language != table.Language {
				return nil, fmt.Errorf("%w: category %s is tagged %s inside the %s table",
					common.ErrInvalidConfig, tc.Category, tc.Language, table.Language)
			}
			if _, dup := seen[tc.Category]; dup {
				return nil, fmt.Errorf("%w: category %s defined twice for %s", common.ErrInvalidConfig, tc.Category, table.Language)
			}
			seen[tc.Category] = struct{}{}

			m, err := NewCategoryMatcher(tc)
			if err != nil {
				return nil, err
			}
			matchers = append(matchers, m)
		}

		categories := make([]model.TopicCategory, len(table.Categories))
		copy(categories, table.Categories)

		r.tables[table.Language] = categories
		r.matchers[table.Language] = matchers
		r.order = append(r.order, table.Language)
	}

	return r, nil
}

// DefaultRegistry returns a registry with the built-in Spanish and English tables.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultTables()...)
	if err != nil {
		panic(fmt.Sprintf("built-in category tables are invalid: %v", err))
	}
	return r
}

// Lookup returns the category table of a language, in registry order.
func (r *Registry) Lookup(language model.Language) ([]model.TopicCategory, error) {
	categories, ok := r.tables[language]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedLanguage, language)
	}
	out := make([]model.TopicCategory, len(categories))
	copy(out, categories)
	return out, nil
}

// Matchers returns the compiled matchers of a language, in registry order.
func (r *Registry) Matchers(language model.Language) ([]*CategoryMatcher, error) {
	matchers, ok := r.matchers[language]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedLanguage, language)
	}
	out := make([]*CategoryMatcher, len(matchers))
	copy(out, matchers)
	return out, nil
}

// Languages returns the registered languages in registration order.
func (r *Registry) Languages() []model.Language {
	out := make([]model.Language, len(r.order))
	copy(out, r.order)
	return out
}

// Supports reports whether the registry has a table for language.
func (r *Registry) Supports(language model.Language) bool {
	_, ok := r.tables[language]
	return ok
}
