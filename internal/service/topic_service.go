package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/feedback-topics/internal/common"
	"github.com/Veraticus/feedback-topics/internal/model"
)

// TopicService converts legacy sentiment results into domain texts, runs the
// extractor over them and flattens the resulting topics.
type TopicService struct {
	extractor TopicExtractor
	scorer    Scorer
	progress  func()
}

// Option configures a TopicService.
type Option func(*TopicService)

// WithProgress registers fn to be called once per converted record.
func WithProgress(fn func()) Option {
	return func(s *TopicService) {
		s.progress = fn
	}
}

// NewTopicService creates a service around extractor. scorer may be nil, in
// which case records without sentiment are treated as neutral.
func NewTopicService(extractor TopicExtractor, scorer Scorer, opts ...Option) *TopicService {
	s := &TopicService{
		extractor: extractor,
		scorer:    scorer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze converts legacy records into analyzed texts. Records without text are
// dropped; they still count towards progress.
func (s *TopicService) Analyze(results []model.LegacyResult) []model.AnalyzedText {
	texts := make([]model.AnalyzedText, 0, len(results))
	scored := 0

	for _, r := range results {
		if strings.TrimSpace(r.Text) == "" {
			if s.progress != nil {
				s.progress()
			}
			continue
		}
		if s.scorer != nil && strings.TrimSpace(r.Sentiment) == "" {
			label, confidence := s.scorer.Score(r.Text)
			r.Sentiment = label.String()
			if r.Confidence == nil {
				r.Confidence = &confidence
			}
			scored++
		}
		texts = append(texts, model.FromLegacy(r))
		if s.progress != nil {
			s.progress()
		}
	}

	if scored > 0 {
		common.LogDebug("Scored records without sentiment", common.Fields{"count": scored})
	}
	return texts
}

// ExtractTopics runs extraction over already analyzed texts.
func (s *TopicService) ExtractTopics(ctx context.Context, texts []model.AnalyzedText) ([]model.Topic, error) {
	topics, err := s.extractor.Extract(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to extract topics: %w", err)
	}
	return topics, nil
}

// ExtractFromLegacy is the legacy entry point: records in, flat topics out.
func (s *TopicService) ExtractFromLegacy(ctx context.Context, results []model.LegacyResult) ([]model.LegacyTopic, error) {
	topics, err := s.ExtractTopics(ctx, s.Analyze(results))
	if err != nil {
		return nil, err
	}
	return ToLegacy(topics), nil
}

// ToLegacy flattens topics. The result is never nil.
func ToLegacy(topics []model.Topic) []model.LegacyTopic {
	out := make([]model.LegacyTopic, 0, len(topics))
	for _, t := range topics {
		out = append(out, t.ToLegacy())
	}
	return out
}
