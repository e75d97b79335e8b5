package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/feedback-topics/internal/classification"
	"github.com/Veraticus/feedback-topics/internal/cli"
	"github.com/Veraticus/feedback-topics/internal/common"
	"github.com/Veraticus/feedback-topics/internal/config"
	"github.com/Veraticus/feedback-topics/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the business categories and their keywords",
		Long: `List the category tables used for matching, including any overrides from
the "categories" section of the config file.`,
		Args: cobra.NoArgs,
		RunE: runCategories,
	}

	cmd.Flags().StringP("language", "l", "", "only show one language (es, en)")
	cmd.Flags().StringP("output", "o", "table", "output format (table, json)")

	return cmd
}

type categoryView struct {
	Category string   `json:"category"`
	Language string   `json:"language"`
	Keywords []string `json:"keywords"`
	Phrases  []string `json:"phrases"`
}

func runCategories(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")
	if err := validateOutput(output); err != nil {
		return err
	}

	registry, err := config.LoadRegistry(viper.GetViper())
	if err != nil {
		return common.NewUserError("invalid category configuration", err)
	}

	languages := registry.Languages()
	if code, _ := cmd.Flags().GetString("language"); code != "" {
		lang, err := model.ParseLanguage(code)
		if err != nil {
			return common.NewUserError("unknown language", err)
		}
		if !registry.Supports(lang) {
			return common.NewUserError(fmt.Sprintf("no categories configured for %s", lang), common.ErrUnsupportedLanguage)
		}
		languages = []model.Language{lang}
	}

	views, err := categoryViews(registry, languages)
	if err != nil {
		return err
	}

	if output == "json" {
		return writeJSON(cmd.OutOrStdout(), views)
	}

	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{v.Language, v.Category, strings.Join(v.Keywords, ", "), strings.Join(v.Phrases, ", ")})
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTable([]string{"Lang", "Category", "Keywords", "Phrases"}, rows))
	return err
}

func categoryViews(registry *classification.Registry, languages []model.Language) ([]categoryView, error) {
	var views []categoryView
	for _, lang := range languages {
		categories, err := registry.Lookup(lang)
		if err != nil {
			return nil, err
		}
		for _, c := range categories {
			views = append(views, categoryView{
				Category: c.Category.String(),
				Language: lang.String(),
				Keywords: c.Keywords,
				Phrases:  c.Phrases,
			})
		}
	}
	return views, nil
}
