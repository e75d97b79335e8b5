package model

import (
	"fmt"
	"strings"
)

// SentimentLabel is the 1-5 star rating assigned by the sentiment model.
// Labels are ordered: VeryNegative < Negative < Neutral < Positive < VeryPositive.
type SentimentLabel int

// Sentiment labels, one per star.
const (
	SentimentVeryNegative SentimentLabel = iota + 1
	SentimentNegative
	SentimentNeutral
	SentimentPositive
	SentimentVeryPositive
)

var sentimentNames = map[SentimentLabel]string{
	SentimentVeryNegative: "1 star",
	SentimentNegative:     "2 stars",
	SentimentNeutral:      "3 stars",
	SentimentPositive:     "4 stars",
	SentimentVeryPositive: "5 stars",
}

// AllSentimentLabels returns every label from most negative to most positive.
func AllSentimentLabels() []SentimentLabel {
	return []SentimentLabel{
		SentimentVeryNegative,
		SentimentNegative,
		SentimentNeutral,
		SentimentPositive,
		SentimentVeryPositive,
	}
}

// String returns the star label as produced by the sentiment model, e.g. "2 stars".
func (s SentimentLabel) String() string {
	if name, ok := sentimentNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SentimentLabel(%d)", int(s))
}

// Stars returns the numeric star rating.
func (s SentimentLabel) Stars() int {
	return int(s)
}

// Valid reports whether s is one of the five labels.
func (s SentimentLabel) Valid() bool {
	return s >= SentimentVeryNegative && s <= SentimentVeryPositive
}

// MarshalText encodes the label as its star string.
func (s SentimentLabel) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid sentiment label %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a star string.
func (s *SentimentLabel) UnmarshalText(text []byte) error {
	label, err := ParseSentimentLabel(string(text))
	if err != nil {
		return err
	}
	*s = label
	return nil
}

// ParseSentimentLabel accepts the model's star strings ("1 star" .. "5 stars")
// as well as bare digits.
func ParseSentimentLabel(s string) (SentimentLabel, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for label, name := range sentimentNames {
		if normalized == name {
			return label, nil
		}
	}
	if len(normalized) == 1 && normalized[0] >= '1' && normalized[0] <= '5' {
		return SentimentLabel(normalized[0] - '0'), nil
	}
	return 0, fmt.Errorf("unknown sentiment label %q", s)
}

// SentimentSet groups labels, e.g. all negative ratings.
type SentimentSet map[SentimentLabel]struct{}

// NewSentimentSet builds a set from labels.
func NewSentimentSet(labels ...SentimentLabel) SentimentSet {
	set := make(SentimentSet, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}

// Contains reports whether label belongs to the set.
func (s SentimentSet) Contains(label SentimentLabel) bool {
	_, ok := s[label]
	return ok
}

// Predefined sentiment groups.
var (
	NegativeSentiments = NewSentimentSet(SentimentVeryNegative, SentimentNegative)
	PositiveSentiments = NewSentimentSet(SentimentPositive, SentimentVeryPositive)
)
