package report

import (
	"fmt"
	"strings"

	"github.com/Veraticus/feedback-topics/internal/cli"
	"github.com/Veraticus/feedback-topics/internal/model"
)

const barWidth = 20

// Format renders the report for a terminal.
func Format(r Report) string {
	sections := []string{
		cli.FormatTitle("Feedback Report"),
		cli.SubtleStyle.Render("Generated " + r.GeneratedAt.Format("2006-01-02 15:04 MST")),
		formatSummary(r.Summary),
	}

	if len(r.CriticalIssues) > 0 {
		sections = append(sections, formatInsights("Critical Issues", r.CriticalIssues, "negative"))
	}
	if len(r.Strengths) > 0 {
		sections = append(sections, formatInsights("Strengths", r.Strengths, "positive"))
	}
	if len(r.Recommendations) > 0 {
		sections = append(sections, formatRecommendations(r.Recommendations))
	}

	legacy := make([]model.LegacyTopic, 0, len(r.Topics))
	for _, t := range r.Topics {
		legacy = append(legacy, t.LegacyTopic)
	}
	sections = append(sections, cli.BoldStyle.Render("Topics"), cli.RenderTopics(legacy))
	return strings.Join(sections, "\n\n")
}

func formatSummary(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reviews:       %d\n", s.TotalReviews)
	fmt.Fprintf(&b, "Average:       %.2f stars\n", s.AverageStars)
	fmt.Fprintf(&b, "Negative:      %s\n", cli.ErrorStyle.Render(fmt.Sprintf("%.1f%%", s.NegativePercentage)))
	fmt.Fprintf(&b, "Positive:      %s\n", cli.SuccessStyle.Render(fmt.Sprintf("%.1f%%", s.PositivePercentage)))

	for _, label := range model.AllSentimentLabels() {
		n := s.StarDistribution[label.Stars()]
		fraction := 0.0
		if s.TotalReviews > 0 {
			fraction = float64(n) / float64(s.TotalReviews)
		}
		fmt.Fprintf(&b, "\n%-8s %s %d", label, cli.RenderBar(fraction, barWidth), n)
	}

	return cli.RenderBox("Summary", b.String())
}

func formatInsights(title string, insights []TopicInsight, kind string) string {
	lines := []string{cli.BoldStyle.Render(title)}
	for i, in := range insights {
		style := cli.SuccessStyle
		if kind == "negative" {
			style = cli.RatioStyle(in.Ratio)
		}
		lines = append(lines, fmt.Sprintf("%d. %s (%s) %s",
			i+1, in.Topic, in.Language,
			style.Render(fmt.Sprintf("%d/%d %s, %.0f%%", in.Count, in.Frequency, kind, in.Ratio*100))))
		for _, ex := range in.Examples {
			lines = append(lines, cli.SubtleStyle.Render("   \""+ex+"\""))
		}
	}
	return strings.Join(lines, "\n")
}

func formatRecommendations(recs []Recommendation) string {
	lines := []string{cli.BoldStyle.Render("Recommendations")}
	for _, rec := range recs {
		style := cli.InfoStyle
		if rec.Priority == PriorityHigh {
			style = cli.WarningStyle
		}
		lines = append(lines,
			fmt.Sprintf("[%s] %s", style.Render(string(rec.Priority)), rec.Action),
			cli.SubtleStyle.Render("   "+rec.Impact))
	}
	return strings.Join(lines, "\n")
}
