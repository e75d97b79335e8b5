package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Veraticus/feedback-topics/internal/cli"
	"github.com/Veraticus/feedback-topics/internal/common"
	"github.com/Veraticus/feedback-topics/internal/model"
	"github.com/Veraticus/feedback-topics/internal/service"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved extraction runs",
		Long:  `List extraction runs saved with 'topics extract --save', newest first.`,
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	}

	cmd.Flags().IntP("limit", "n", 20, "maximum number of runs to show")

	cmd.AddCommand(historyShowCmd())
	cmd.AddCommand(historyDeleteCmd())

	return cmd
}

func historyShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the topics of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}
	cmd.Flags().StringP("output", "o", "table", "output format (table, json)")
	return cmd
}

func historyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryDelete,
	}
}

func withStore(cmd *cobra.Command, fn func(store service.RunStore) error) error {
	store, err := initStorage(cmd.Context())
	if err != nil {
		return common.NewUserError("cannot open history database", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogWarn("Failed to close history database", common.Fields{"error": closeErr})
		}
	}()
	return fn(store)
}

func parseRunID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("invalid run id %q", arg), common.ErrInvalidInput)
	}
	return id, nil
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	return withStore(cmd, func(store service.RunStore) error {
		runs, err := store.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), renderRuns(runs))
		return err
	})
}

func renderRuns(runs []model.RunSummary) string {
	if len(runs) == 0 {
		return cli.FormatInfo("No saved runs yet. Use 'topics extract --save' to record one.")
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.CreatedAt.Local().Format(time.DateTime),
			strconv.Itoa(r.TextCount),
			strconv.Itoa(r.TopicCount),
			r.Source,
		})
	}
	return cli.RenderTable([]string{"ID", "Created", "Texts", "Topics", "Source"}, rows)
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if err := validateOutput(output); err != nil {
		return err
	}
	id, err := parseRunID(args[0])
	if err != nil {
		return err
	}

	return withStore(cmd, func(store service.RunStore) error {
		run, err := store.GetRun(cmd.Context(), id)
		if err != nil {
			return err
		}

		legacy := service.ToLegacy(run.Topics)
		if output == "json" {
			return writeJSON(cmd.OutOrStdout(), legacy)
		}

		header := cli.SubtleStyle.Render(fmt.Sprintf("Run %d: %s (%d texts, %s)",
			run.ID, run.Source, run.TextCount, run.CreatedAt.Local().Format(time.DateTime)))
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", header, cli.RenderTopics(legacy))
		return err
	})
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	id, err := parseRunID(args[0])
	if err != nil {
		return err
	}

	return withStore(cmd, func(store service.RunStore) error {
		if err := store.DeleteRun(cmd.Context(), id); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted run %d", id)))
		return err
	})
}
