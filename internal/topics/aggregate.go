package topics

import (
	"unicode/utf8"

	"github.com/Veraticus/feedback-topics/internal/model"
)

const (
	// MinMentions is the number of texts a category needs before it becomes a topic.
	MinMentions = 2
	// MaxExamples is the number of example excerpts kept per topic.
	MaxExamples = 3
	// PreviewLength is the maximum number of characters of an example excerpt.
	PreviewLength = 100
	// Ellipsis marks a truncated excerpt.
	Ellipsis = "..."
)

// BuildTopic aggregates the texts matched to one category into a topic.
// It returns false when the bucket is below MinMentions.
func BuildTopic(category model.BusinessCategory, language model.Language, bucket []model.AnalyzedText) (model.Topic, bool) {
	if len(bucket) < MinMentions {
		return model.Topic{}, false
	}

	return model.Topic{
		Name:                  category.String(),
		Category:              category,
		Frequency:             len(bucket),
		SentimentDistribution: SentimentDistribution(bucket),
		Examples:              Examples(bucket),
		Language:              language,
	}, true
}

// SentimentDistribution counts texts per label. Every label is present.
func SentimentDistribution(texts []model.AnalyzedText) map[model.SentimentLabel]int {
	distribution := make(map[model.SentimentLabel]int, 5)
	for _, label := range model.AllSentimentLabels() {
		distribution[label] = 0
	}
	for _, t := range texts {
		distribution[t.Sentiment]++
	}
	return distribution
}

// Examples returns previews of the first MaxExamples texts.
func Examples(texts []model.AnalyzedText) []string {
	n := min(len(texts), MaxExamples)
	examples := make([]string, 0, n)
	for _, t := range texts[:n] {
		examples = append(examples, Preview(t.Text))
	}
	return examples
}

// Preview truncates text to PreviewLength characters, appending Ellipsis only
// when something was cut.
func Preview(text string) string {
	if utf8.RuneCountInString(text) <= PreviewLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:PreviewLength]) + Ellipsis
}
