// Package topics groups analyzed feedback into business topics per language.
package topics

import (
	"context"

	"github.com/Veraticus/feedback-topics/internal/model"
)

// Extractor turns analyzed texts into topics.
type Extractor interface {
	// SupportedLanguage is the language the extractor accepts, or
	// model.LanguageAuto for extractors that accept mixed batches.
	SupportedLanguage() model.Language
	// Extract groups texts into topics.
	Extract(ctx context.Context, texts []model.AnalyzedText) ([]model.Topic, error)
}
