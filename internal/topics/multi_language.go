package topics

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Veraticus/feedback-topics/internal/classification"
	"github.com/Veraticus/feedback-topics/internal/model"
	"golang.org/x/sync/errgroup"
)

// MultiLanguageExtractor splits a mixed batch by language and delegates each
// partition to the extractor registered for it.
type MultiLanguageExtractor struct {
	extractors map[model.Language]Extractor
	logger     *slog.Logger
	parallel   bool
}

// Option configures a MultiLanguageExtractor.
type Option func(*MultiLanguageExtractor)

// WithParallel runs language partitions concurrently. Output order is unchanged.
func WithParallel(parallel bool) Option {
	return func(m *MultiLanguageExtractor) {
		m.parallel = parallel
	}
}

// WithLogger sets the logger used for skipped partitions and extractor failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *MultiLanguageExtractor) {
		m.logger = logger
	}
}

// NewMultiLanguageExtractor creates a coordinator over the given extractors,
// keyed by the language each one supports.
func NewMultiLanguageExtractor(extractors []Extractor, opts ...Option) (*MultiLanguageExtractor, error) {
	m := &MultiLanguageExtractor{
		extractors: make(map[model.Language]Extractor, len(extractors)),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, e := range extractors {
		lang := e.SupportedLanguage()
		if lang == model.LanguageAuto {
			return nil, fmt.Errorf("extractor for %s cannot be nested in a multi-language extractor", lang)
		}
		if _, dup := m.extractors[lang]; dup {
			return nil, fmt.Errorf("duplicate extractor for language %s", lang)
		}
		m.extractors[lang] = e
	}

	return m, nil
}

// NewFromRegistry builds one KeywordExtractor per language in the registry.
func NewFromRegistry(registry *classification.Registry, opts ...Option) (*MultiLanguageExtractor, error) {
	extractors := make([]Extractor, 0, len(registry.Languages()))
	for _, lang := range registry.Languages() {
		e, err := NewKeywordExtractor(lang, registry)
		if err != nil {
			return nil, err
		}
		extractors = append(extractors, e)
	}
	return NewMultiLanguageExtractor(extractors, opts...)
}

// SupportedLanguage implements Extractor.
func (m *MultiLanguageExtractor) SupportedLanguage() model.Language {
	return model.LanguageAuto
}

// Languages reports the languages with a registered extractor, sorted by code.
func (m *MultiLanguageExtractor) Languages() []model.Language {
	langs := make([]model.Language, 0, len(m.extractors))
	for lang := range m.extractors {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

type partition struct {
	language model.Language
	texts    []model.AnalyzedText
}

// Extract implements Extractor. Partitions are processed in the order their
// language first appears in texts. Languages without an extractor are skipped,
// and a failing extractor contributes no topics; neither aborts the batch.
// Only context cancellation is returned as an error.
func (m *MultiLanguageExtractor) Extract(ctx context.Context, texts []model.AnalyzedText) ([]model.Topic, error) {
	partitions := partitionByLanguage(texts)
	results := make([][]model.Topic, len(partitions))

	if m.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, p := range partitions {
			i, p := i, p
			g.Go(func() error {
				results[i] = m.extractPartition(gctx, p)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, p := range partitions {
			results[i] = m.extractPartition(ctx, p)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	topics := make([]model.Topic, 0, total)
	for _, r := range results {
		topics = append(topics, r...)
	}
	return topics, nil
}

func (m *MultiLanguageExtractor) extractPartition(ctx context.Context, p partition) (topics []model.Topic) {
	extractor, ok := m.extractors[p.language]
	if !ok {
		m.logger.Warn("No topic extractor for language, skipping texts",
			"language", p.language,
			"texts", len(p.texts))
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Topic extractor panicked, skipping language",
				"language", p.language,
				"panic", r)
			topics = nil
		}
	}()

	topics, err := extractor.Extract(ctx, p.texts)
	if err != nil {
		m.logger.Error("Topic extraction failed, skipping language",
			"language", p.language,
			"texts", len(p.texts),
			"error", err)
		return nil
	}

	m.logger.Debug("Extracted topics",
		"language", p.language,
		"texts", len(p.texts),
		"topics", len(topics))
	return topics
}

func partitionByLanguage(texts []model.AnalyzedText) []partition {
	index := make(map[model.Language]int)
	var partitions []partition

	for _, t := range texts {
		i, ok := index[t.Language]
		if !ok {
			i = len(partitions)
			index[t.Language] = i
			partitions = append(partitions, partition{language: t.Language})
		}
		partitions[i].texts = append(partitions[i].texts, t)
	}
	return partitions
}
