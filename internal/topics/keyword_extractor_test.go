package topics

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/Veraticus/feedback-topics/internal/classification"
	"github.com/Veraticus/feedback-topics/internal/common"
	"github.com/Veraticus/feedback-topics/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordExtractor_SpanishServiceScenario(t *testing.T) {
	e := NewSpanishExtractor()
	assert.Equal(t, model.LanguageSpanish, e.SupportedLanguage())

	topics, err := e.Extract(context.Background(), []model.AnalyzedText{
		newText("mal servicio", model.SentimentNegative, model.LanguageSpanish),
		newText("mala atención", model.SentimentNegative, model.LanguageSpanish),
	})
	require.NoError(t, err)
	require.Len(t, topics, 1)

	topic := topics[0]
	assert.Equal(t, "servicio", topic.Name)
	assert.Equal(t, model.CategoryService, topic.Category)
	assert.Equal(t, 2, topic.Frequency)
	assert.Equal(t, map[model.SentimentLabel]int{
		model.SentimentVeryNegative: 0,
		model.SentimentNegative:     2,
		model.SentimentNeutral:      0,
		model.SentimentPositive:     0,
		model.SentimentVeryPositive: 0,
	}, topic.SentimentDistribution)
	assert.InDelta(t, 1.0, topic.NegativeRatio(), 1e-9)
}

func TestKeywordExtractor_DecomposedAccents(t *testing.T) {
	topics, err := NewSpanishExtractor().Extract(context.Background(), []model.AnalyzedText{
		newText("la atenci\u0301n fue pésima", model.SentimentNegative, model.LanguageSpanish),
		newText("la atenci\u0301n fue pésima otra vez", model.SentimentNegative, model.LanguageSpanish),
	})
	require.NoError(t, err)
	require.Len(t, topics, 1)

	assert.Equal(t, model.CategoryService, topics[0].Category)
	assert.Equal(t, 2, topics[0].Frequency)
}

func TestKeywordExtractor_LogsMatchKinds(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
	var logs bytes.Buffer
	require.NoError(t, common.SetupLogger(&logs, slog.LevelDebug, "json"))

	_, err := NewSpanishExtractor().Extract(context.Background(), []model.AnalyzedText{
		newText("mal servicio", model.SentimentNegative, model.LanguageSpanish),
		newText("el servicio fue lento", model.SentimentNegative, model.LanguageSpanish),
	})
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, "Matched texts to categories")
	assert.Contains(t, out, `"phrase_matches":1`)
	assert.Contains(t, out, `"keyword_matches":1`)
}

func TestKeywordExtractor_BelowThreshold(t *testing.T) {
	topics, err := NewEnglishExtractor().Extract(context.Background(), []model.AnalyzedText{
		newText("great product quality", model.SentimentVeryPositive, model.LanguageEnglish),
	})
	require.NoError(t, err)
	assert.Empty(t, topics)
}

func TestKeywordExtractor_MultiCategoryText(t *testing.T) {
	text := newText("The product is great and the staff were friendly", model.SentimentPositive, model.LanguageEnglish)

	topics, err := NewEnglishExtractor().Extract(context.Background(), []model.AnalyzedText{text, text})
	require.NoError(t, err)
	require.Len(t, topics, 2)

	assert.Equal(t, model.CategoryProduct, topics[0].Category)
	assert.Equal(t, model.CategoryService, topics[1].Category)
	for _, topic := range topics {
		assert.Equal(t, 2, topic.Frequency)
		assert.Equal(t, []string{text.Text, text.Text}, topic.Examples)
	}
}

func TestKeywordExtractor_MultiMatchProductAndPrice(t *testing.T) {
	texts := []model.AnalyzedText{
		newText("Good quality for the price", model.SentimentPositive, model.LanguageEnglish),
		newText("The design is nice but the cost is high", model.SentimentNeutral, model.LanguageEnglish),
	}

	topics, err := NewEnglishExtractor().Extract(context.Background(), texts)
	require.NoError(t, err)

	byCategory := indexByCategory(topics)
	require.Contains(t, byCategory, model.CategoryProduct)
	require.Contains(t, byCategory, model.CategoryPrice)
	assert.Equal(t, 2, byCategory[model.CategoryProduct].Frequency)
	assert.Equal(t, 2, byCategory[model.CategoryPrice].Frequency)
}

func TestKeywordExtractor_OutputFollowsRegistryOrder(t *testing.T) {
	texts := []model.AnalyzedText{
		newText("muy caro", model.SentimentNegative, model.LanguageSpanish),
		newText("el precio subió", model.SentimentNegative, model.LanguageSpanish),
		newText("precio alto", model.SentimentNegative, model.LanguageSpanish),
		newText("el envío tardó", model.SentimentNegative, model.LanguageSpanish),
		newText("el paquete llegó roto", model.SentimentNegative, model.LanguageSpanish),
		newText("buen producto", model.SentimentPositive, model.LanguageSpanish),
		newText("producto excelente", model.SentimentPositive, model.LanguageSpanish),
	}

	topics, err := NewSpanishExtractor().Extract(context.Background(), texts)
	require.NoError(t, err)

	got := make([]model.BusinessCategory, 0, len(topics))
	for _, topic := range topics {
		got = append(got, topic.Category)
	}
	assert.Equal(t, []model.BusinessCategory{model.CategoryProduct, model.CategoryDelivery, model.CategoryPrice}, got)
	assert.Equal(t, 3, indexByCategory(topics)[model.CategoryPrice].Frequency)
}

func TestKeywordExtractor_SkipsBlankTexts(t *testing.T) {
	topics, err := NewEnglishExtractor().Extract(context.Background(), []model.AnalyzedText{
		newText("", model.SentimentNeutral, model.LanguageEnglish),
		newText("   ", model.SentimentNeutral, model.LanguageEnglish),
		newText("no keywords here", model.SentimentNeutral, model.LanguageEnglish),
	})
	require.NoError(t, err)
	assert.Empty(t, topics)
}

func TestKeywordExtractor_Properties(t *testing.T) {
	texts := []model.AnalyzedText{
		newText("Terrible customer service", model.SentimentVeryNegative, model.LanguageEnglish),
		newText("Support was helpful", model.SentimentPositive, model.LanguageEnglish),
		newText("Shipping took forever and the package was damaged", model.SentimentNegative, model.LanguageEnglish),
		newText("Delivery was quick", model.SentimentVeryPositive, model.LanguageEnglish),
		newText("Too expensive for the quality", model.SentimentNegative, model.LanguageEnglish),
		newText("Cheap and the product works", model.SentimentPositive, model.LanguageEnglish),
	}
	e := NewEnglishExtractor()

	first, err := e.Extract(context.Background(), texts)
	require.NoError(t, err)
	second, err := e.Extract(context.Background(), append([]model.AnalyzedText(nil), texts...))
	require.NoError(t, err)
	assert.Equal(t, first, second, "extraction must be idempotent")

	require.NotEmpty(t, first)
	for _, topic := range first {
		assert.GreaterOrEqual(t, topic.Frequency, MinMentions)
		assert.Equal(t, topic.Frequency, topic.Total())
		assert.LessOrEqual(t, len(topic.Examples), MaxExamples)
		assert.Len(t, topic.SentimentDistribution, 5)
	}
}

func TestKeywordExtractor_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEnglishExtractor().Extract(ctx, []model.AnalyzedText{
		newText("price", model.SentimentNeutral, model.LanguageEnglish),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewKeywordExtractor_UnsupportedLanguage(t *testing.T) {
	_, err := NewKeywordExtractor(model.LanguageAuto, classification.DefaultRegistry())
	assert.ErrorIs(t, err, common.ErrUnsupportedLanguage)
}

func indexByCategory(topics []model.Topic) map[model.BusinessCategory]model.Topic {
	out := make(map[model.BusinessCategory]model.Topic, len(topics))
	for _, topic := range topics {
		out[topic.Category] = topic
	}
	return out
}
