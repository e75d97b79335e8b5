package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/feedback-topics/internal/common"
	"github.com/Veraticus/feedback-topics/internal/model"
)

// DefaultListLimit caps ListRuns when the caller passes a non-positive limit.
const DefaultListLimit = 20

// SaveRun stores a run and its topics in one transaction and returns the run ID.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.ExtractionRun) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateRun(run); err != nil {
		return 0, err
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (source, text_count, created_at) VALUES (?, ?, ?)`,
		run.Source, run.TextCount, createdAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_topics (run_id, position, name, category, language, frequency, negative_ratio, distribution, examples)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare topic insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i, topic := range run.Topics {
		distribution, examples, err := encodeTopic(topic)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, id, i, topic.Name, topic.Category.String(), topic.Language.String(),
			topic.Frequency, topic.NegativeRatio(), distribution, examples); err != nil {
			return 0, fmt.Errorf("failed to insert topic %s: %w", topic.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	run.ID = id
	run.CreatedAt = createdAt
	return id, nil
}

// ListRuns returns the most recent runs first.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.source, r.text_count, r.created_at, COUNT(t.id)
		FROM runs r
		LEFT JOIN run_topics t ON t.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	runs := []model.RunSummary{}
	for rows.Next() {
		var r model.RunSummary
		if err := rows.Scan(&r.ID, &r.Source, &r.TextCount, &r.CreatedAt, &r.TopicCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun loads a run with its topics in their original order.
func (s *SQLiteStorage) GetRun(ctx context.Context, id int64) (*model.ExtractionRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	run := &model.ExtractionRun{ID: id}
	err := s.db.QueryRowContext(ctx,
		`SELECT source, text_count, created_at FROM runs WHERE id = ?`, id).
		Scan(&run.Source, &run.TextCount, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run %d: %w", id, err)
	}

	topics, err := s.getRunTopics(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Topics = topics
	return run, nil
}

// GetRunTopics returns the topics of a stored run.
func (s *SQLiteStorage) GetRunTopics(ctx context.Context, id int64) ([]model.Topic, error) {
	run, err := s.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}
	return run.Topics, nil
}

func (s *SQLiteStorage) getRunTopics(ctx context.Context, id int64) ([]model.Topic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, category, language, frequency, distribution, examples
		FROM run_topics
		WHERE run_id = ?
		ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics for run %d: %w", id, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	topics := []model.Topic{}
	for rows.Next() {
		var (
			t                      model.Topic
			category, language     string
			distribution, examples string
		)
		if err := rows.Scan(&t.Name, &category, &language, &t.Frequency, &distribution, &examples); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		t.Category = model.BusinessCategory(category)
		t.Language = model.Language(language)
		if err := json.Unmarshal([]byte(distribution), &t.SentimentDistribution); err != nil {
			return nil, fmt.Errorf("failed to decode distribution of topic %s: %w", t.Name, err)
		}
		if err := json.Unmarshal([]byte(examples), &t.Examples); err != nil {
			return nil, fmt.Errorf("failed to decode examples of topic %s: %w", t.Name, err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate topics: %w", err)
	}
	return topics, nil
}

// DeleteRun removes a run and its topics.
func (s *SQLiteStorage) DeleteRun(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted run %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("run %d: %w", id, common.ErrNotFound)
	}
	return nil
}

func encodeTopic(t model.Topic) (distribution, examples string, err error) {
	dist := make(map[model.SentimentLabel]int, len(model.AllSentimentLabels()))
	for _, label := range model.AllSentimentLabels() {
		dist[label] = t.SentimentDistribution[label]
	}
	d, err := json.Marshal(dist)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode distribution of topic %s: %w", t.Name, err)
	}

	ex := t.Examples
	if ex == nil {
		ex = []string{}
	}
	e, err := json.Marshal(ex)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode examples of topic %s: %w", t.Name, err)
	}
	return string(d), string(e), nil
}
