package topics

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/feedback-topics/internal/classification"
	"github.com/Veraticus/feedback-topics/internal/common"
	"github.com/Veraticus/feedback-topics/internal/model"
)

// KeywordExtractor assigns texts of one language to business categories by
// phrase and keyword lookup.
type KeywordExtractor struct {
	matchers []*classification.CategoryMatcher
	language model.Language
}

// NewKeywordExtractor builds an extractor for language from the registry.
func NewKeywordExtractor(language model.Language, registry *classification.Registry) (*KeywordExtractor, error) {
	matchers, err := registry.Matchers(language)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s extractor: %w", language, err)
	}
	return &KeywordExtractor{
		language: language,
		matchers: matchers,
	}, nil
}

// NewSpanishExtractor returns an extractor over the built-in Spanish table.
func NewSpanishExtractor() *KeywordExtractor {
	return mustExtractor(model.LanguageSpanish)
}

// NewEnglishExtractor returns an extractor over the built-in English table.
func NewEnglishExtractor() *KeywordExtractor {
	return mustExtractor(model.LanguageEnglish)
}

func mustExtractor(language model.Language) *KeywordExtractor {
	e, err := NewKeywordExtractor(language, classification.DefaultRegistry())
	if err != nil {
		panic(err)
	}
	return e
}

// SupportedLanguage implements Extractor.
func (e *KeywordExtractor) SupportedLanguage() model.Language {
	return e.language
}

// Extract implements Extractor. A text may contribute to several categories.
// Inputs are assumed to be in the extractor's language.
func (e *KeywordExtractor) Extract(ctx context.Context, texts []model.AnalyzedText) ([]model.Topic, error) {
	buckets := make([][]model.AnalyzedText, len(e.matchers))
	kinds := make(map[classification.MatchKind]int, 2)

	for _, text := range texts {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		lowered := classification.Normalize(text.Text)
		if strings.TrimSpace(lowered) == "" {
			continue
		}

		for i, m := range e.matchers {
			kind := m.Match(lowered)
			if kind == classification.MatchNone {
				continue
			}
			kinds[kind]++
			buckets[i] = append(buckets[i], text)
		}
	}

	common.LogDebug("Matched texts to categories", common.Fields{
		"language":        e.language,
		"texts":           len(texts),
		"phrase_matches":  kinds[classification.MatchPhrase],
		"keyword_matches": kinds[classification.MatchKeyword],
	})

	topics := make([]model.Topic, 0, len(e.matchers))
	for i, m := range e.matchers {
		if topic, ok := BuildTopic(m.Category, e.language, buckets[i]); ok {
			topics = append(topics, topic)
		}
	}

	return topics, nil
}
