package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/feedback-topics/internal/common"
	"github.com/Veraticus/feedback-topics/internal/config"
	"github.com/Veraticus/feedback-topics/internal/model"
	"github.com/Veraticus/feedback-topics/internal/sentiment"
	"github.com/Veraticus/feedback-topics/internal/service"
	"github.com/Veraticus/feedback-topics/internal/storage"
	"github.com/Veraticus/feedback-topics/internal/topics"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initStorage opens the history database with proper path expansion.
func initStorage(ctx context.Context) (service.RunStore, error) {
	dbPath := viper.GetString("storage.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadResults reads a JSON array of sentiment results from path, or stdin when path is "-".
func loadResults(cmd *cobra.Command, path string) ([]model.LegacyResult, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path) // #nosec G304
		if err != nil {
			return nil, common.NewUserError("cannot open input file", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	return decodeResults(r)
}

func decodeResults(r io.Reader) ([]model.LegacyResult, error) {
	var results []model.LegacyResult
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, common.NewUserError("input must be a JSON array of {text, sentiment, confidence, language} records", err)
	}

	blank := 0
	for _, res := range results {
		if strings.TrimSpace(res.Text) == "" {
			blank++
		}
	}
	if blank > 0 {
		common.LogWarn("Input contains records without text; they are ignored", common.Fields{"count": blank})
	}
	return results, nil
}

type serviceOptions struct {
	scoreMissing bool
	progress     bool
	parallel     bool
	total        int
}

// newTopicService wires the registry from config, the extractor, the optional
// scorer and the optional progress bar. The returned finish func closes the bar.
func newTopicService(cmd *cobra.Command, opts serviceOptions) (*service.TopicService, func(), error) {
	registry, err := config.LoadRegistry(viper.GetViper())
	if err != nil {
		return nil, nil, common.NewUserError("invalid category configuration", err)
	}

	extractor, err := topics.NewFromRegistry(registry,
		topics.WithParallel(opts.parallel),
		topics.WithLogger(slog.Default()))
	if err != nil {
		return nil, nil, err
	}
	common.LogDebug("Topic extractor ready", common.Fields{
		"languages": extractor.Languages(),
		"parallel":  opts.parallel,
	})

	var scorer service.Scorer
	if opts.scoreMissing {
		scorer = sentiment.NewVaderScorer()
	}

	finish := func() {}
	var svcOpts []service.Option
	if opts.progress && opts.total > 0 {
		bar := newProgressBar(cmd.ErrOrStderr(), opts.total)
		svcOpts = append(svcOpts, service.WithProgress(func() {
			if err := bar.Add(1); err != nil {
				common.LogWarn("Failed to update progress bar", common.Fields{"error": err})
			}
		}))
		finish = func() { _ = bar.Finish() }
	}

	return service.NewTopicService(extractor, scorer, svcOpts...), finish, nil
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Analyzing feedback...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}

// parallelEnabled prefers an explicit --parallel flag over extraction.parallel.
func parallelEnabled(cmd *cobra.Command) bool {
	if f := cmd.Flags().Lookup("parallel"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetBool("parallel")
		return v
	}
	return viper.GetBool("extraction.parallel")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func validateOutput(format string) error {
	switch format {
	case "table", "json":
		return nil
	}
	return common.NewUserError(fmt.Sprintf("unknown output format %q (use table or json)", format), nil)
}
