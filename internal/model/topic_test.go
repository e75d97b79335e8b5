package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopic_NegativeRatio(t *testing.T) {
	tests := []struct {
		distribution map[SentimentLabel]int
		name         string
		want         float64
	}{
		{
			name:         "all negative",
			distribution: map[SentimentLabel]int{SentimentNegative: 2},
			want:         1.0,
		},
		{
			name: "mixed",
			distribution: map[SentimentLabel]int{
				SentimentVeryNegative: 1,
				SentimentNegative:     1,
				SentimentNeutral:      1,
				SentimentPositive:     1,
				SentimentVeryPositive: 0,
			},
			want: 0.5,
		},
		{
			name:         "zero total",
			distribution: map[SentimentLabel]int{SentimentNegative: 0},
			want:         0,
		},
		{
			name: "nil distribution",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic := Topic{SentimentDistribution: tt.distribution}
			assert.InDelta(t, tt.want, topic.NegativeRatio(), 1e-9)
		})
	}
}

func TestTopic_PositiveRatioAndCount(t *testing.T) {
	topic := Topic{SentimentDistribution: map[SentimentLabel]int{
		SentimentVeryPositive: 3,
		SentimentNeutral:      1,
	}}
	assert.Equal(t, 4, topic.Total())
	assert.Equal(t, 3, topic.Count(PositiveSentiments))
	assert.InDelta(t, 0.75, topic.PositiveRatio(), 1e-9)
}

func TestTopic_ToLegacy(t *testing.T) {
	topic := Topic{
		Name:      "servicio",
		Category:  CategoryService,
		Frequency: 2,
		SentimentDistribution: map[SentimentLabel]int{
			SentimentNegative: 1,
			SentimentPositive: 1,
		},
		Examples: []string{"mal servicio", "buen servicio"},
		Language: LanguageSpanish,
	}

	legacy := topic.ToLegacy()
	assert.Equal(t, LegacyTopic{
		Name:          "servicio",
		Category:      "servicio",
		Frequency:     2,
		NegativeRatio: 0.5,
		Examples:      []string{"mal servicio", "buen servicio"},
		Language:      "es",
	}, legacy)

	legacy.Examples[0] = "changed"
	assert.Equal(t, "mal servicio", topic.Examples[0])
}
