package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/feedback-topics/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// RenderTable lays out rows under a header with left-aligned padded columns.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	renderRow := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = TableCellStyle.Width(widths[i] + 2).Render(cell)
		}
		return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, renderRow(headers, TableHeaderStyle))
	for _, row := range rows {
		lines = append(lines, renderRow(row, lipgloss.NewStyle()))
	}
	return strings.Join(lines, "\n")
}

// RenderTopics renders extracted topics with their frequency and negative ratio.
func RenderTopics(topics []model.LegacyTopic) string {
	if len(topics) == 0 {
		return FormatInfo("No topics reached the mention threshold")
	}

	rows := make([][]string, 0, len(topics))
	for _, t := range topics {
		rows = append(rows, []string{
			t.Name,
			t.Language,
			fmt.Sprintf("%d", t.Frequency),
			RatioStyle(t.NegativeRatio).Render(fmt.Sprintf("%.0f%%", t.NegativeRatio*100)),
			firstExample(t.Examples),
		})
	}

	return RenderTable([]string{"Topic", "Lang", "Mentions", "Negative", "Example"}, rows)
}

func firstExample(examples []string) string {
	if len(examples) == 0 {
		return ""
	}
	return examples[0]
}
