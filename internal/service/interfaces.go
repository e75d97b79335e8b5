// Package service defines the services that sit between the topic engine and
// its collaborators.
package service

import (
	"context"

	"github.com/Veraticus/feedback-topics/internal/model"
)

// Scorer assigns a sentiment label to text that arrived without one.
type Scorer interface {
	Score(text string) (model.SentimentLabel, float64)
}

// TopicExtractor is the engine contract the service depends on.
type TopicExtractor interface {
	Extract(ctx context.Context, texts []model.AnalyzedText) ([]model.Topic, error)
}

// RunStore keeps the history of extraction runs.
type RunStore interface {
	SaveRun(ctx context.Context, run *model.ExtractionRun) (int64, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error)
	GetRun(ctx context.Context, id int64) (*model.ExtractionRun, error)
	GetRunTopics(ctx context.Context, id int64) ([]model.Topic, error)
	DeleteRun(ctx context.Context, id int64) error
	Close() error
}
