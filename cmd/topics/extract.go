package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Veraticus/feedback-topics/internal/cli"
	"github.com/Veraticus/feedback-topics/internal/common"
	"github.com/Veraticus/feedback-topics/internal/model"
	"github.com/Veraticus/feedback-topics/internal/service"
	"github.com/spf13/cobra"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file.json>",
		Short: "Extract business topics from analyzed feedback",
		Long: `Read a JSON array of sentiment results and group them into business topics.

Each record looks like:
  {"text": "El servicio fue lento", "sentiment": "2 stars", "confidence": 0.9, "language": "es"}

Sentiment, confidence and language are optional. Missing sentiment is treated as
"3 stars" unless --score-missing is set, missing language is detected from the text.
Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().StringP("output", "o", "table", "output format (table, json)")
	cmd.Flags().Bool("score-missing", false, "score records without sentiment using VADER")
	cmd.Flags().Bool("save", false, "save the run to history")
	cmd.Flags().Bool("progress", false, "show a progress bar while analyzing")
	cmd.Flags().Bool("parallel", false, "extract languages concurrently (default from extraction.parallel)")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	output, _ := cmd.Flags().GetString("output")
	if err := validateOutput(output); err != nil {
		return err
	}
	scoreMissing, _ := cmd.Flags().GetBool("score-missing")
	save, _ := cmd.Flags().GetBool("save")
	progress, _ := cmd.Flags().GetBool("progress")

	results, err := loadResults(cmd, args[0])
	if err != nil {
		return err
	}

	svc, finish, err := newTopicService(cmd, serviceOptions{
		scoreMissing: scoreMissing,
		progress:     progress,
		parallel:     parallelEnabled(cmd),
		total:        len(results),
	})
	if err != nil {
		return err
	}

	texts := svc.Analyze(results)
	finish()

	extracted, err := svc.ExtractTopics(ctx, texts)
	if err != nil {
		return err
	}

	common.LogInfo("Extracted topics", common.Fields{"records": len(results), "topics": len(extracted)})

	if save {
		id, err := saveRun(ctx, args[0], len(texts), extracted)
		if err != nil {
			return err
		}
		common.LogInfo("Saved run to history", common.Fields{"id": id})
	}

	legacy := service.ToLegacy(extracted)
	if output == "json" {
		return writeJSON(cmd.OutOrStdout(), legacy)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTopics(legacy))
	return err
}

func saveRun(ctx context.Context, source string, textCount int, extracted []model.Topic) (int64, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return 0, common.NewUserError("cannot open history database", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogWarn("Failed to close history database", common.Fields{"error": closeErr})
		}
	}()

	if source != "-" {
		if abs, err := filepath.Abs(source); err == nil {
			source = abs
		}
	} else {
		source = "stdin"
	}

	return store.SaveRun(ctx, &model.ExtractionRun{
		Source:    source,
		TextCount: textCount,
		CreatedAt: time.Now(),
		Topics:    extracted,
	})
}
