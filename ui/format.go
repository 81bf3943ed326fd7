package ui

import (
	"fmt"
	"math"
	"strconv"
)

// FormatDuration renders a watch time in seconds as a compact human
// string: "3d 7h", "2h 15m" or "42m".
func FormatDuration(totalSeconds int) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60

	if hours >= 24 {
		days := hours / 24
		remainingHours := hours % 24
		return fmt.Sprintf("%dd %dh", days, remainingHours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatNumber abbreviates large counts: 1234567 -> "1.2M", 5678 -> "5.7K".
func FormatNumber(n int64) string {
	if n >= 1_000_000 {
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	}
	if n >= 1_000 {
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return strconv.FormatInt(n, 10)
}

// FormatPercentage renders a ratio as "NN%" with sane handling of NaN.
func FormatPercentage(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "0%"
	}
	return fmt.Sprintf("%d%%", int(math.Round(value)))
}

// truncate shortens a string for table display. Operates on runes so
// multibyte titles and channel names never get cut mid-character.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
