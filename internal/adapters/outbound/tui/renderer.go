package tui

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/abdidvp/dqscore/internal/domain/stats"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	skipColor = lipgloss.Color("#4B5563") // dark gray
	lime      = lipgloss.Color("#A3E635")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	gradeColors = map[string]lipgloss.Color{
		"A+": success,
		"A":  success,
		"B":  lime,
		"C":  warning,
		"D":  lipgloss.Color("#FB923C"), // orange
		"F":  danger,
	}

	dimStyle           = lipgloss.NewStyle().Foreground(dim)
	faintStyle         = lipgloss.NewStyle().Foreground(faint)
	passStyle          = lipgloss.NewStyle().Foreground(success)
	failStyle          = lipgloss.NewStyle().Foreground(danger)
	warnStyle          = lipgloss.NewStyle().Foreground(warning)
	skipStyle          = lipgloss.NewStyle().Foreground(skipColor)
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimNameStyle       = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	separatorLine      = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats a quality report for the terminal.
func RenderReport(report *domain.QualityReport) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("dqscore")
	subtitle := dimStyle.Render("Data Quality Score")
	if report.Dataset != "" {
		subtitle = dimStyle.Render("Data Quality Score · " + report.Dataset)
	}
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(report.Grade)).
		Render(fmt.Sprintf("%.1f / 100", report.OverallScore))
	gradeStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(report.Grade)).
		Render(report.Grade)
	meta := faintStyle.Render(fmt.Sprintf("%d records · %s vs industry %.0f",
		report.RecordCount, strings.ReplaceAll(report.Benchmark.Level, "_", " "), report.Benchmark.IndustryAverage))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + gradeStyled + "\n" + meta))
	b.WriteString("\n\n")

	// ── Dimensions ──
	for i, d := range report.Dimensions {
		renderDimension(&b, d)
		if i < len(report.Dimensions)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Recommendations ──
	if len(report.Recommendations) > 0 {
		b.WriteString("  " + titleStyle.Render("Recommendations") + "\n\n")
		for _, r := range report.Recommendations {
			fmt.Fprintf(&b, "    %s %s\n", warnStyle.Render("→"), r)
		}
	} else {
		b.WriteString("  " + passStyle.Render("Every dimension meets its threshold.") + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

func renderDimension(b *strings.Builder, d domain.DimensionScore) {
	scoreText := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(d.Percentage)).Render(fmt.Sprintf("%5.1f", d.Percentage))
	bar := coloredBar(d.Percentage, 20)
	weight := dimStyle.Render(fmt.Sprintf("%d%%", int(math.Round(d.Weight*100))))

	marker := passStyle.Render("✓")
	if d.BelowThreshold() {
		marker = failStyle.Render(fmt.Sprintf("✗ < %.0f", d.Threshold))
	}

	name := dimNameStyle.Render(padRight(string(d.Dimension), 14))
	fmt.Fprintf(b, "  %s %s  %s %s %s\n", name, bar, scoreText, weight, marker)

	for _, f := range d.Fields {
		renderField(b, f)
	}
}

func renderField(b *strings.Builder, f domain.FieldScore) {
	name := padRight(Humanize(f.Field), 34)

	var icon string
	switch {
	case f.Percentage >= 90:
		icon = passStyle.Render("●")
	case f.Percentage >= 60:
		icon = warnStyle.Render("●")
	default:
		icon = failStyle.Render("●")
	}

	counts := dimStyle.Render(fmt.Sprintf("%d/%d", f.Passed, f.Total))
	fmt.Fprintf(b, "    %s %s %s  %s\n", icon, name, counts, faintStyle.Render(fmt.Sprintf("%.1f%%", f.Percentage)))
}

func coloredBar(score float64, width int) string {
	filled := max(0, min(int(score)*width/100, width))
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score float64) lipgloss.Color {
	switch {
	case score >= 90:
		return success
	case score >= 75:
		return lime
	case score >= 50:
		return warning
	default:
		return danger
	}
}

func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// Humanize turns field identifiers into words: "orderAmount",
// "order_amount" and "OrderAmount" all become "order amount".
func Humanize(name string) string {
	var words []string
	for _, part := range camelcase.Split(name) {
		if strings.IndexFunc(part, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) < 0 {
			continue
		}
		words = append(words, strings.ToLower(part))
	}
	if len(words) == 0 {
		return name
	}
	return strings.Join(words, " ")
}

// RenderHistory formats report history, with the trend when there are at
// least two entries.
func RenderHistory(entries []domain.ReportEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No report history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Report History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	series := make([]float64, len(entries))
	for i, e := range entries {
		series[i] = e.Overall
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		scoreStyled := lipgloss.NewStyle().
			Foreground(scoreColor(e.Overall)).
			Render(fmt.Sprintf("%5.1f/100", e.Overall))

		line := fmt.Sprintf("  %s  %s  %s  %-2s  %s",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			scoreStyled,
			e.Grade,
			faintStyle.Render(fmt.Sprintf("%d records", e.Records)),
		)

		if i > 0 {
			diff := e.Overall - entries[i-1].Overall
			if diff > 0.05 {
				line += "  " + passStyle.Render(fmt.Sprintf("↑%.1f", diff))
			} else if diff < -0.05 {
				line += "  " + failStyle.Render(fmt.Sprintf("↓%.1f", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	if trend, err := stats.Trend(series); err == nil {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s  %s\n",
			titleStyle.Render("Trend"),
			trendStyle(trend.Direction).Render(string(trend.Direction)),
			dimStyle.Render(fmt.Sprintf("avg %+.2f · volatility %.2f · strength %.2f",
				trend.AverageChange, trend.Volatility, trend.Strength)),
		)
	}

	return b.String()
}

func trendStyle(d stats.Direction) lipgloss.Style {
	switch d {
	case stats.Increasing:
		return passStyle
	case stats.Decreasing:
		return failStyle
	default:
		return skipStyle
	}
}

func gradeColor(grade string) lipgloss.Color {
	if c, ok := gradeColors[grade]; ok {
		return c
	}
	return fg
}
