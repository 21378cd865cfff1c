package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdidvp/dqscore/internal/application"
	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderValidation lists failed results grouped by constraint. At most
// limit failures are printed per constraint; zero prints all.
func RenderValidation(summary *application.ValidationSummary, limit int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("dqscore validate") + dimStyle.Render(" · "+summary.Dataset) + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	tally := fmt.Sprintf("%d records · %s passed · %s failed · %s skipped",
		summary.Records,
		passStyle.Render(fmt.Sprint(summary.Passed)),
		failStyle.Render(fmt.Sprint(summary.Failed)),
		skipStyle.Render(fmt.Sprint(summary.Skipped)))
	b.WriteString("  " + tally + "\n\n")

	failures := summary.Failures()
	if len(failures) == 0 {
		b.WriteString("  " + passStyle.Render("✓ Every record satisfies every constraint.") + "\n\n")
		return b.String()
	}

	var order []string
	groups := make(map[string][]domain.ValidationResult)
	for _, r := range failures {
		if _, ok := groups[r.Constraint]; !ok {
			order = append(order, r.Constraint)
		}
		groups[r.Constraint] = append(groups[r.Constraint], r)
	}

	for _, name := range order {
		group := groups[name]
		head := group[0]
		fmt.Fprintf(&b, "  %s %s %s\n",
			failStyle.Render("✗"),
			sectionHeaderStyle.Render(name),
			dimStyle.Render(fmt.Sprintf("[%s] %d failed", head.Dimension, len(group))))

		shown := group
		if limit > 0 && len(shown) > limit {
			shown = shown[:limit]
		}
		for _, r := range shown {
			line := fmt.Sprintf("record %d: %s", r.Record, r.Message)
			if r.Expected != "" {
				line += faintStyle.Render(fmt.Sprintf("  (expected %s, got %s)", r.Expected, r.Actual))
			}
			b.WriteString("      " + line + "\n")
		}
		if rest := len(group) - len(shown); rest > 0 {
			b.WriteString("      " + dimStyle.Render(fmt.Sprintf("… %d more", rest)) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderStats prints a table of numeric field statistics.
func RenderStats(rows []application.FieldStats) string {
	if len(rows) == 0 {
		return "  " + dimStyle.Render("No numeric fields found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Field Statistics") + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	header := fmt.Sprintf("  %-20s %6s %10s %10s %10s %10s %s",
		"FIELD", "COUNT", "MEAN", "MEDIAN", "STDDEV", "RANGE", "OUTLIERS")
	b.WriteString(dimStyle.Render(header) + "\n")

	for _, r := range rows {
		s := r.Summary
		outliers := passStyle.Render("none")
		if len(r.Outliers) > 0 {
			parts := make([]string, len(r.Outliers))
			for i, o := range r.Outliers {
				parts[i] = fmt.Sprintf("%g", o)
			}
			outliers = warnStyle.Render(strings.Join(parts, ", "))
		}
		fmt.Fprintf(&b, "  %s %6d %10.2f %10.2f %10.2f %10s %s\n",
			padRight(r.Field, 20), s.Count, s.Mean, s.Median, s.StdDev,
			fmt.Sprintf("%g..%g", s.Min, s.Max), outliers)
	}
	b.WriteString("\n")
	return b.String()
}

// RenderDrift prints the drift of every tracked field against the baseline.
func RenderDrift(report *application.DriftReport) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Drift") + dimStyle.Render(fmt.Sprintf(" · %s · baseline %s · threshold %.0f%%",
		report.Dataset, report.Baseline.Format("2006-01-02 15:04"), report.Threshold*100)) + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	for _, f := range report.Fields {
		name := padRight(Humanize(f.Field), 24)
		switch {
		case f.Error != "":
			fmt.Fprintf(&b, "  %s %s %s\n", skipStyle.Render("–"), name, skipStyle.Render(f.Error))
		case f.Drifted:
			fmt.Fprintf(&b, "  %s %s %s  %s\n", failStyle.Render("✗"), name,
				failStyle.Render(fmt.Sprintf("%5.1f%%", f.Ratio*100)),
				dimStyle.Render(fmt.Sprintf("mean %.2f → %.2f", f.ReferenceMean, f.CurrentMean)))
		default:
			fmt.Fprintf(&b, "  %s %s %s  %s\n", passStyle.Render("✓"), name,
				passStyle.Render(fmt.Sprintf("%5.1f%%", f.Ratio*100)),
				dimStyle.Render(fmt.Sprintf("mean %.2f → %.2f", f.ReferenceMean, f.CurrentMean)))
		}
	}

	b.WriteString("\n")
	if report.Drifted() {
		b.WriteString("  " + failStyle.Render("Distribution drift detected.") + "\n")
	} else {
		b.WriteString("  " + passStyle.Render("No drift detected.") + "\n")
	}
	return b.String()
}

// RenderDuplicates prints exact duplicates and near-duplicate pairs.
func RenderDuplicates(report *application.DuplicateReport) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Duplicates") + dimStyle.Render(fmt.Sprintf(" · %d records", report.Records)) + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	if len(report.Exact) == 0 {
		b.WriteString("  " + passStyle.Render("✓ No exact duplicates") + "\n")
	} else {
		dups := make([]int, 0, len(report.Exact))
		for idx := range report.Exact {
			dups = append(dups, idx)
		}
		sort.Ints(dups)
		fmt.Fprintf(&b, "  %s %d exact duplicates\n", failStyle.Render("✗"), len(dups))
		for _, idx := range dups {
			fmt.Fprintf(&b, "      record %d repeats record %d\n", idx, report.Exact[idx])
		}
	}

	if report.Field != "" {
		b.WriteString("\n")
		title := fmt.Sprintf("near duplicates on %s (%s ≥ %.2f)", Humanize(report.Field), report.Metric, report.Threshold)
		if len(report.Near) == 0 {
			b.WriteString("  " + passStyle.Render("✓ No "+title) + "\n")
		} else {
			fmt.Fprintf(&b, "  %s %d %s\n", warnStyle.Render("~"), len(report.Near), title)
			for _, p := range report.Near {
				sim := lipgloss.NewStyle().Foreground(scoreColor(p.Similarity * 100)).Render(fmt.Sprintf("%.3f", p.Similarity))
				fmt.Fprintf(&b, "      %s  %d %q ↔ %d %q\n", sim, p.First, p.A, p.Second, p.B)
			}
		}
	}
	b.WriteString("\n")
	return b.String()
}

// RenderSummary prints one line per dataset of a multi-dataset run. Paths
// are shown relative to root.
func RenderSummary(root string, results []application.DatasetResult) string {
	if len(results) == 0 {
		return "  " + dimStyle.Render("No configured datasets found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Datasets") + dimStyle.Render(" · "+root) + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	for _, r := range results {
		name := r.Path
		if rel, err := filepath.Rel(root, r.Path); err == nil {
			name = rel
		}
		name = padRight(filepath.ToSlash(name), 36)

		if r.Err != nil {
			fmt.Fprintf(&b, "  %s %s %s\n", failStyle.Render("✗"), name, failStyle.Render(r.Err.Error()))
			continue
		}
		rep := r.Report
		score := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(rep.OverallScore)).Render(fmt.Sprintf("%5.1f", rep.OverallScore))
		grade := lipgloss.NewStyle().Foreground(gradeColor(rep.Grade)).Render(padRight(rep.Grade, 2))
		status := passStyle.Render("✓")
		if !rep.Passed {
			status = warnStyle.Render("!")
		}
		fmt.Fprintf(&b, "  %s %s %s %s  %s\n", status, name, coloredBar(rep.OverallScore, 12), score, grade)
	}
	b.WriteString("\n")
	return b.String()
}
