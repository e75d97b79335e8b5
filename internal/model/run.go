package model

import "time"

// ExtractionRun records one topic extraction over an input batch.
type ExtractionRun struct {
	CreatedAt time.Time
	Source    string
	Topics    []Topic
	ID        int64
	TextCount int
}

// RunSummary is the listing view of a stored run.
type RunSummary struct {
	CreatedAt  time.Time
	Source     string
	ID         int64
	TextCount  int
	TopicCount int
}
