// Package report turns extracted topics into an executive summary: overall
// sentiment, the topics driving complaints, the topics customers praise and
// what to do about them.
package report

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/Veraticus/feedback-topics/internal/model"
)

// Report limits and thresholds.
const (
	MaxCriticalIssues = 5
	MaxStrengths      = 3
	IssueThreshold    = 0.5
	StrengthThreshold = 0.5
)

// Priority ranks a recommendation.
type Priority string

// Recommendation priorities.
const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
)

// Summary aggregates the sentiment of every analyzed text.
type Summary struct {
	StarDistribution   map[int]int `json:"star_distribution"`
	TotalReviews       int         `json:"total_reviews"`
	AverageStars       float64     `json:"average_stars"`
	NegativePercentage float64     `json:"negative_percentage"`
	PositivePercentage float64     `json:"positive_percentage"`
}

// TopicInsight is a topic highlighted as an issue or a strength.
type TopicInsight struct {
	Topic     string   `json:"topic"`
	Language  string   `json:"language"`
	Examples  []string `json:"examples"`
	Frequency int      `json:"frequency"`
	Count     int      `json:"count"`
	Ratio     float64  `json:"ratio"`
}

// TopicEntry is a topic with its per-star mention counts.
type TopicEntry struct {
	StarCounts map[int]int `json:"star_counts"`
	model.LegacyTopic
}

// Recommendation is an action derived from the top issue or strength.
type Recommendation struct {
	Priority Priority `json:"priority"`
	Action   string   `json:"action"`
	Impact   string   `json:"impact"`
}

// Report is the executive view of one extraction run.
type Report struct {
	GeneratedAt     time.Time        `json:"generated_at"`
	Topics          []TopicEntry     `json:"topics"`
	CriticalIssues  []TopicInsight   `json:"critical_issues"`
	Strengths       []TopicInsight   `json:"strengths"`
	Recommendations []Recommendation `json:"recommendations"`
	Summary         Summary          `json:"summary"`
}

// Build assembles a report from the analyzed texts and the topics extracted from them.
func Build(texts []model.AnalyzedText, topics []model.Topic, now time.Time) Report {
	issues := criticalIssues(topics)
	strengths := strengths(topics)

	entries := make([]TopicEntry, 0, len(topics))
	for _, t := range topics {
		counts := make(map[int]int, len(model.AllSentimentLabels()))
		for _, label := range model.AllSentimentLabels() {
			counts[label.Stars()] = t.SentimentDistribution[label]
		}
		entries = append(entries, TopicEntry{LegacyTopic: t.ToLegacy(), StarCounts: counts})
	}

	return Report{
		GeneratedAt:     now.UTC(),
		Summary:         summarize(texts),
		Topics:          entries,
		CriticalIssues:  issues,
		Strengths:       strengths,
		Recommendations: recommend(issues, strengths),
	}
}

func summarize(texts []model.AnalyzedText) Summary {
	s := Summary{
		TotalReviews:     len(texts),
		StarDistribution: make(map[int]int, len(model.AllSentimentLabels())),
	}
	for _, label := range model.AllSentimentLabels() {
		s.StarDistribution[label.Stars()] = 0
	}
	if len(texts) == 0 {
		return s
	}

	var stars, negative, positive int
	for _, t := range texts {
		stars += t.Sentiment.Stars()
		s.StarDistribution[t.Sentiment.Stars()]++
		switch {
		case model.NegativeSentiments.Contains(t.Sentiment):
			negative++
		case model.PositiveSentiments.Contains(t.Sentiment):
			positive++
		}
	}

	total := float64(len(texts))
	s.AverageStars = float64(stars) / total
	s.NegativePercentage = float64(negative) / total * 100
	s.PositivePercentage = float64(positive) / total * 100
	return s
}

func criticalIssues(topics []model.Topic) []TopicInsight {
	out := make([]TopicInsight, 0, len(topics))
	for _, t := range topics {
		if t.NegativeRatio() >= IssueThreshold {
			out = append(out, insight(t, t.Count(model.NegativeSentiments), t.NegativeRatio()))
		}
	}
	slices.SortStableFunc(out, func(a, b TopicInsight) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out[:min(len(out), MaxCriticalIssues)]
}

func strengths(topics []model.Topic) []TopicInsight {
	out := make([]TopicInsight, 0, len(topics))
	for _, t := range topics {
		if t.PositiveRatio() >= StrengthThreshold {
			out = append(out, insight(t, t.Count(model.PositiveSentiments), t.PositiveRatio()))
		}
	}
	slices.SortStableFunc(out, func(a, b TopicInsight) int {
		return cmp.Compare(b.Ratio, a.Ratio)
	})
	return out[:min(len(out), MaxStrengths)]
}

func insight(t model.Topic, count int, ratio float64) TopicInsight {
	examples := make([]string, len(t.Examples))
	copy(examples, t.Examples)
	return TopicInsight{
		Topic:     t.Name,
		Language:  t.Language.String(),
		Frequency: t.Frequency,
		Count:     count,
		Ratio:     ratio,
		Examples:  examples,
	}
}

func recommend(issues, strengths []TopicInsight) []Recommendation {
	recs := make([]Recommendation, 0, 2)
	if len(issues) > 0 {
		top := issues[0]
		recs = append(recs, Recommendation{
			Priority: PriorityHigh,
			Action:   fmt.Sprintf("Address issues with %s (%d complaints)", top.Topic, top.Count),
			Impact:   fmt.Sprintf("Could improve %d of %d mentions", top.Count, top.Frequency),
		})
	}
	if len(strengths) > 0 {
		top := strengths[0]
		recs = append(recs, Recommendation{
			Priority: PriorityMedium,
			Action:   fmt.Sprintf("Leverage strength in %s in marketing", top.Topic),
			Impact:   fmt.Sprintf("Highlighted in %d positive mentions", top.Count),
		})
	}
	return recs
}
