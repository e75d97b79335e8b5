// Package model defines the domain types of the topic extraction engine.
package model

import (
	"fmt"
	"strings"

	"github.com/Veraticus/feedback-topics/internal/common"
)

// DefaultConfidence is assumed for legacy records that carry no confidence score.
const DefaultConfidence = 0.5

// AnalyzedText is a piece of feedback after sentiment analysis. It is treated
// as immutable once created.
type AnalyzedText struct {
	Text       string
	Language   Language
	Sentiment  SentimentLabel
	Confidence float64
}

// NewAnalyzedText validates its inputs and returns an AnalyzedText.
func NewAnalyzedText(text string, sentiment SentimentLabel, confidence float64, language Language) (AnalyzedText, error) {
	if strings.TrimSpace(text) == "" {
		return AnalyzedText{}, fmt.Errorf("%w: text cannot be empty", common.ErrInvalidInput)
	}
	if !sentiment.Valid() {
		return AnalyzedText{}, fmt.Errorf("%w: invalid sentiment %d", common.ErrInvalidInput, int(sentiment))
	}
	if confidence < 0 || confidence > 1 {
		return AnalyzedText{}, fmt.Errorf("%w: confidence %.3f outside [0,1]", common.ErrInvalidInput, confidence)
	}
	if !language.Valid() || language == LanguageAuto {
		return AnalyzedText{}, fmt.Errorf("%w: invalid language %q", common.ErrInvalidInput, language)
	}

	return AnalyzedText{
		Text:       text,
		Sentiment:  sentiment,
		Confidence: confidence,
		Language:   language,
	}, nil
}

// LegacyResult is the flat record emitted by the sentiment analysis service.
type LegacyResult struct {
	Confidence *float64 `json:"confidence,omitempty"`
	Text       string   `json:"text"`
	Sentiment  string   `json:"sentiment,omitempty"`
	Language   string   `json:"language,omitempty"`
}

// FromLegacy converts a legacy record into an AnalyzedText. It never fails:
// unknown sentiments become neutral, a missing confidence becomes
// DefaultConfidence and a missing or unknown language is inferred from the text.
func FromLegacy(r LegacyResult) AnalyzedText {
	sentiment, err := ParseSentimentLabel(r.Sentiment)
	if err != nil {
		sentiment = SentimentNeutral
	}

	confidence := DefaultConfidence
	if r.Confidence != nil {
		confidence = clamp01(*r.Confidence)
	}

	language, err := ParseLanguage(r.Language)
	if err != nil || language == LanguageAuto {
		language = DetectLanguage(r.Text)
	}

	return AnalyzedText{
		Text:       r.Text,
		Sentiment:  sentiment,
		Confidence: confidence,
		Language:   language,
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
