package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/penwyp/TubeWrapped/calculations"
	"github.com/penwyp/TubeWrapped/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	highlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// RenderSummary renders WrappedStats as a styled terminal report.
func RenderSummary(stats *models.WrappedStats) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Your %d Wrapped", stats.Year)))
	b.WriteString("\n\n")

	totalHours := float64(stats.TotalWatchTimeSeconds) / 3600
	b.WriteString(sectionStyle.Render("Totals"))
	b.WriteString("\n")
	b.WriteString(statStyle.Render(fmt.Sprintf("  %s videos watched across %d days\n",
		FormatNumber(int64(stats.TotalVideos)), stats.ActiveDays)))
	if stats.TotalWatchTimeSeconds > 0 {
		b.WriteString(statStyle.Render(fmt.Sprintf("  %s of watch time\n", FormatDuration(stats.TotalWatchTimeSeconds))))
		b.WriteString(dimStyle.Render("  " + calculations.FunComparison(totalHours) + "\n"))
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Personality"))
	b.WriteString("\n")
	b.WriteString(highlightStyle.Render("  " + stats.GenrePersonality))
	b.WriteString("\n\n")

	if len(stats.TopChannels) > 0 {
		b.WriteString(sectionStyle.Render("Top Channels"))
		b.WriteString("\n")
		for i, ch := range stats.TopChannels {
			if i >= 5 {
				break
			}
			b.WriteString(statStyle.Render(fmt.Sprintf("  %d. %s", i+1, truncate(ch.Name, 40))))
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %d watches, %s\n", ch.WatchCount, FormatDuration(ch.TotalSeconds))))
		}
		b.WriteString("\n")
	}

	if len(stats.TopCategories) > 0 {
		b.WriteString(sectionStyle.Render("Top Categories"))
		b.WriteString("\n")
		for i, cat := range stats.TopCategories {
			if i >= 5 {
				break
			}
			b.WriteString(statStyle.Render(fmt.Sprintf("  %d. %s", i+1, cat.Name)))
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %d watches\n", cat.WatchCount)))
		}
		b.WriteString("\n")
	}

	if stats.LongestDay.Count > 0 {
		b.WriteString(sectionStyle.Render("Biggest Day"))
		b.WriteString("\n")
		b.WriteString(statStyle.Render(fmt.Sprintf("  %s with %d videos (%s)\n\n",
			stats.LongestDay.Date, stats.LongestDay.Count, FormatDuration(stats.LongestDay.TotalSeconds))))
	}

	if stats.MostRewatched.Count > 1 {
		b.WriteString(sectionStyle.Render("Most Rewatched"))
		b.WriteString("\n")
		b.WriteString(statStyle.Render(fmt.Sprintf("  %s by %s", truncate(stats.MostRewatched.Title, 50), stats.MostRewatched.ChannelName)))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  watched %d times\n\n", stats.MostRewatched.Count)))
	}

	if stats.LateNightCount > 0 {
		b.WriteString(sectionStyle.Render("Late Nights"))
		b.WriteString("\n")
		b.WriteString(statStyle.Render(fmt.Sprintf("  %d videos watched between midnight and 4am\n\n", stats.LateNightCount)))
	}

	if len(stats.BingeSessions) > 0 {
		top := stats.BingeSessions[0]
		b.WriteString(sectionStyle.Render("Longest Binge"))
		b.WriteString("\n")
		b.WriteString(statStyle.Render(fmt.Sprintf("  %d videos in a row from %s\n\n", top.VideoCount, truncate(top.ChannelName, 40))))
	}

	if stats.ShortsStats.ShortsCount > 0 {
		b.WriteString(sectionStyle.Render("Shorts"))
		b.WriteString("\n")
		b.WriteString(statStyle.Render(fmt.Sprintf("  %d shorts, %s of your watches\n",
			stats.ShortsStats.ShortsCount, FormatPercentage(stats.ShortsStats.ShortsPercentage))))
	}

	return b.String()
}
