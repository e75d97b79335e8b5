package classification

import (
	"fmt"
	"slices"

	"github.com/Veraticus/feedback-topics/internal/model"
)

// CategoryConfig is the user-supplied definition of one category.
type CategoryConfig struct {
	Keywords []string `mapstructure:"keywords" yaml:"keywords"`
	Phrases  []string `mapstructure:"phrases" yaml:"phrases"`
}

// TablesConfig maps a language code to its categories, keyed by category
// identifier ("producto", "servicio", "entrega", "precio").
type TablesConfig map[string]map[string]CategoryConfig

// TablesFromConfig builds category tables from configuration. Categories are
// emitted in canonical order regardless of map order.
func TablesFromConfig(cfg TablesConfig) ([]Table, error) {
	languages := make([]model.Language, 0, len(cfg))
	byLanguage := make(map[model.Language]map[string]CategoryConfig, len(cfg))
	for code, categories := range cfg {
		lang, err := model.ParseLanguage(code)
		if err != nil {
			return nil, fmt.Errorf("categories config: %w", err)
		}
		if _, dup := byLanguage[lang]; dup {
			return nil, fmt.Errorf("categories config: language %s configured twice", lang)
		}
		byLanguage[lang] = categories
		languages = append(languages, lang)
	}
	slices.Sort(languages)

	tables := make([]Table, 0, len(languages))
	for _, lang := range languages {
		categories := byLanguage[lang]
		for name := range categories {
			if !model.BusinessCategory(name).Valid() {
				return nil, fmt.Errorf("categories config: unknown category %q for %s", name, lang)
			}
		}

		table := Table{Language: lang}
		for _, bc := range model.AllBusinessCategories() {
			cc, ok := categories[bc.String()]
			if !ok {
				continue
			}
			tc, err := model.NewTopicCategory(bc, lang, cc.Keywords, cc.Phrases)
			if err != nil {
				return nil, fmt.Errorf("categories config: %w", err)
			}
			table.Categories = append(table.Categories, tc)
		}
		tables = append(tables, table)
	}

	return tables, nil
}

// MergeTables replaces tables in base with overrides of the same language and
// appends overrides for new languages.
func MergeTables(base, overrides []Table) []Table {
	out := make([]Table, 0, len(base)+len(overrides))
	replaced := make(map[model.Language]bool, len(overrides))
	for _, o := range overrides {
		replaced[o.Language] = false
	}

	for _, b := range base {
		if _, ok := replaced[b.Language]; ok {
			for _, o := range overrides {
				if o.Language == b.Language {
					out = append(out, o)
				}
			}
			replaced[b.Language] = true
			continue
		}
		out = append(out, b)
	}
	for _, o := range overrides {
		if !replaced[o.Language] {
			out = append(out, o)
		}
	}
	return out
}

// DefaultTables returns the built-in tables.
func DefaultTables() []Table {
	return []Table{
		{Language: model.LanguageSpanish, Categories: SpanishCategories()},
		{Language: model.LanguageEnglish, Categories: EnglishCategories()},
	}
}
