package report

import (
	"testing"
	"time"

	"github.com/Veraticus/feedback-topics/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func distribution(counts map[model.SentimentLabel]int) map[model.SentimentLabel]int {
	dist := make(map[model.SentimentLabel]int, 5)
	for _, label := range model.AllSentimentLabels() {
		dist[label] = counts[label]
	}
	return dist
}

func topic(name string, counts map[model.SentimentLabel]int) model.Topic {
	dist := distribution(counts)
	total := 0
	for _, n := range dist {
		total += n
	}
	return model.Topic{
		Name:                  name,
		Category:              model.BusinessCategory(name),
		Language:              model.LanguageSpanish,
		Frequency:             total,
		SentimentDistribution: dist,
		Examples:              []string{name + " example"},
	}
}

func texts(labels ...model.SentimentLabel) []model.AnalyzedText {
	out := make([]model.AnalyzedText, 0, len(labels))
	for _, l := range labels {
		out = append(out, model.AnalyzedText{Text: "x", Sentiment: l, Confidence: 1, Language: model.LanguageSpanish})
	}
	return out
}

func TestBuild_Summary(t *testing.T) {
	in := texts(model.SentimentVeryNegative, model.SentimentNegative, model.SentimentNeutral, model.SentimentVeryPositive)
	r := Build(in, nil, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, 4, r.Summary.TotalReviews)
	assert.InDelta(t, 2.75, r.Summary.AverageStars, 1e-9)
	assert.InDelta(t, 50.0, r.Summary.NegativePercentage, 1e-9)
	assert.InDelta(t, 25.0, r.Summary.PositivePercentage, 1e-9)
	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 1, 4: 0, 5: 1}, r.Summary.StarDistribution)
	assert.Empty(t, r.CriticalIssues)
	assert.Empty(t, r.Strengths)
	assert.Empty(t, r.Recommendations)
	assert.NotNil(t, r.Topics)
}

func TestBuild_EmptyInput(t *testing.T) {
	r := Build(nil, nil, time.Now())

	assert.Zero(t, r.Summary.TotalReviews)
	assert.Zero(t, r.Summary.AverageStars)
	assert.Len(t, r.Summary.StarDistribution, 5)
}

func TestBuild_IssuesAndStrengths(t *testing.T) {
	topics := []model.Topic{
		topic("precio", map[model.SentimentLabel]int{model.SentimentNegative: 2, model.SentimentPositive: 2}),
		topic("servicio", map[model.SentimentLabel]int{model.SentimentVeryNegative: 4, model.SentimentNeutral: 1}),
		topic("producto", map[model.SentimentLabel]int{model.SentimentVeryPositive: 3}),
		topic("entrega", map[model.SentimentLabel]int{model.SentimentNeutral: 3, model.SentimentPositive: 1}),
	}

	r := Build(nil, topics, time.Now())

	require.Len(t, r.CriticalIssues, 2)
	assert.Equal(t, "servicio", r.CriticalIssues[0].Topic, "ordered by negative count")
	assert.Equal(t, 4, r.CriticalIssues[0].Count)
	assert.InDelta(t, 0.8, r.CriticalIssues[0].Ratio, 1e-9)
	assert.Equal(t, "precio", r.CriticalIssues[1].Topic)

	require.Len(t, r.Strengths, 2)
	assert.Equal(t, "producto", r.Strengths[0].Topic, "ordered by positive ratio")
	assert.Equal(t, "precio", r.Strengths[1].Topic)

	require.Len(t, r.Recommendations, 2)
	assert.Equal(t, PriorityHigh, r.Recommendations[0].Priority)
	assert.Contains(t, r.Recommendations[0].Action, "servicio")
	assert.Equal(t, PriorityMedium, r.Recommendations[1].Priority)
	assert.Contains(t, r.Recommendations[1].Action, "producto")

	require.Len(t, r.Topics, 4)
	assert.Equal(t, "servicio", r.Topics[1].Name)
	assert.Equal(t, map[int]int{1: 4, 2: 0, 3: 1, 4: 0, 5: 0}, r.Topics[1].StarCounts)
}

func TestBuild_Limits(t *testing.T) {
	var topics []model.Topic
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		topics = append(topics, topic(name, map[model.SentimentLabel]int{model.SentimentNegative: 2}))
	}
	for _, name := range []string{"p", "q", "r", "s"} {
		topics = append(topics, topic(name, map[model.SentimentLabel]int{model.SentimentPositive: 2}))
	}

	r := Build(nil, topics, time.Now())

	assert.Len(t, r.CriticalIssues, MaxCriticalIssues)
	assert.Equal(t, "a", r.CriticalIssues[0].Topic, "ties keep input order")
	assert.Len(t, r.Strengths, MaxStrengths)
}

func TestBuild_ExamplesAreCopied(t *testing.T) {
	topics := []model.Topic{topic("servicio", map[model.SentimentLabel]int{model.SentimentNegative: 2})}
	r := Build(nil, topics, time.Now())

	r.CriticalIssues[0].Examples[0] = "changed"
	assert.Equal(t, "servicio example", topics[0].Examples[0])
}

func TestFormat(t *testing.T) {
	topics := []model.Topic{
		topic("servicio", map[model.SentimentLabel]int{model.SentimentNegative: 2}),
		topic("producto", map[model.SentimentLabel]int{model.SentimentVeryPositive: 2}),
	}
	r := Build(texts(model.SentimentNegative, model.SentimentVeryPositive), topics, time.Now())

	out := Format(r)
	for _, want := range []string{"Feedback Report", "Summary", "Critical Issues", "Strengths", "Recommendations", "HIGH", "MEDIUM", "servicio example"} {
		assert.Contains(t, out, want)
	}
}

func TestFormat_NoTopics(t *testing.T) {
	out := Format(Build(nil, nil, time.Now()))

	assert.NotContains(t, out, "Critical Issues")
	assert.Contains(t, out, "No topics")
}
