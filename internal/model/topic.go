package model

// Topic is a business theme detected across several texts of one language.
type Topic struct {
	SentimentDistribution map[SentimentLabel]int
	Name                  string
	Category              BusinessCategory
	Language              Language
	Examples              []string
	Frequency             int
}

// Total returns the number of mentions recorded in the sentiment distribution.
func (t Topic) Total() int {
	total := 0
	for _, n := range t.SentimentDistribution {
		total += n
	}
	return total
}

// Count returns the number of mentions whose sentiment is in set.
func (t Topic) Count(set SentimentSet) int {
	n := 0
	for label, count := range t.SentimentDistribution {
		if set.Contains(label) {
			n += count
		}
	}
	return n
}

// NegativeRatio is the share of mentions rated one or two stars.
// It is 0 when the topic has no mentions.
func (t Topic) NegativeRatio() float64 {
	return t.ratio(NegativeSentiments)
}

// PositiveRatio is the share of mentions rated four or five stars.
func (t Topic) PositiveRatio() float64 {
	return t.ratio(PositiveSentiments)
}

func (t Topic) ratio(set SentimentSet) float64 {
	total := t.Total()
	if total == 0 {
		return 0
	}
	return float64(t.Count(set)) / float64(total)
}

// LegacyTopic is the flat representation consumed by dashboards and reports.
type LegacyTopic struct {
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Language      string   `json:"language"`
	Examples      []string `json:"examples"`
	Frequency     int      `json:"frequency"`
	NegativeRatio float64  `json:"negative_ratio"`
}

// ToLegacy flattens the topic.
func (t Topic) ToLegacy() LegacyTopic {
	examples := make([]string, len(t.Examples))
	copy(examples, t.Examples)

	return LegacyTopic{
		Name:          t.Name,
		Category:      t.Category.String(),
		Frequency:     t.Frequency,
		NegativeRatio: t.NegativeRatio(),
		Examples:      examples,
		Language:      t.Language.String(),
	}
}
