package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/feedback-topics/internal/cli"
	"github.com/Veraticus/feedback-topics/internal/common"
	"github.com/Veraticus/feedback-topics/internal/config"
	"github.com/Veraticus/feedback-topics/internal/report"
	"github.com/Veraticus/feedback-topics/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <file.json>",
		Short: "Generate an executive report from analyzed feedback",
		Long: `Extract topics and summarize them: overall sentiment, critical issues,
strengths and recommended actions. Use --sheets to export the report to Google Sheets.`,
		Args: cobra.ExactArgs(1),
		RunE: runReport,
	}

	cmd.Flags().StringP("output", "o", "table", "output format (table, json)")
	cmd.Flags().Bool("score-missing", false, "score records without sentiment using VADER")
	cmd.Flags().Bool("parallel", false, "extract languages concurrently (default from extraction.parallel)")
	cmd.Flags().Bool("sheets", false, "export the report to Google Sheets")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	output, _ := cmd.Flags().GetString("output")
	if err := validateOutput(output); err != nil {
		return err
	}
	scoreMissing, _ := cmd.Flags().GetBool("score-missing")
	exportSheets, _ := cmd.Flags().GetBool("sheets")

	results, err := loadResults(cmd, args[0])
	if err != nil {
		return err
	}

	svc, _, err := newTopicService(cmd, serviceOptions{
		scoreMissing: scoreMissing,
		parallel:     parallelEnabled(cmd),
	})
	if err != nil {
		return err
	}

	texts := svc.Analyze(results)
	extracted, err := svc.ExtractTopics(ctx, texts)
	if err != nil {
		return err
	}

	r := report.Build(texts, extracted, time.Now())

	if exportSheets {
		cfg, err := config.LoadSheetsConfig(viper.GetViper())
		if err != nil {
			return common.NewUserError("Google Sheets is not configured (run 'topics auth sheets')", err)
		}
		writer, err := sheets.NewWriter(ctx, *cfg, slog.Default())
		if err != nil {
			return err
		}
		id, err := writer.Write(ctx, r)
		if err != nil {
			common.LogError(err, "Sheets export failed", common.Fields{"spreadsheet_id": cfg.SpreadsheetID})
			return common.NewUserError("failed to export report to Google Sheets", err)
		}
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Exported report to spreadsheet "+id))
	}

	if output == "json" {
		return writeJSON(cmd.OutOrStdout(), r)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), report.Format(r))
	return err
}
