// Package storage keeps a SQLite history of extraction runs and their topics.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/feedback-topics/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidRun   = errors.New("invalid run")
	ErrInvalidTopic = errors.New("invalid topic")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateRun(run *model.ExtractionRun) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if strings.TrimSpace(run.Source) == "" {
		return fmt.Errorf("%w: source is required", ErrInvalidRun)
	}
	if run.TextCount < 0 {
		return fmt.Errorf("%w: text count cannot be negative", ErrInvalidRun)
	}
	for i := range run.Topics {
		if err := validateTopic(&run.Topics[i]); err != nil {
			return fmt.Errorf("topic at index %d: %w", i, err)
		}
	}
	return nil
}

func validateTopic(t *model.Topic) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTopic)
	}
	if !t.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidTopic, t.Category)
	}
	if t.Language != model.LanguageSpanish && t.Language != model.LanguageEnglish {
		return fmt.Errorf("%w: unsupported language %q", ErrInvalidTopic, t.Language)
	}
	if t.Frequency < 0 {
		return fmt.Errorf("%w: frequency cannot be negative", ErrInvalidTopic)
	}
	return nil
}
