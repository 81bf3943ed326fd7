package calculations

import (
	"fmt"
	"math"
)

// FunComparison turns a total watch time in hours into a relatable
// one-liner for the summary output.
func FunComparison(totalHours float64) string {
	h := totalHours
	switch {
	case h >= 1000:
		return fmt.Sprintf("That's %d flights from NYC to Tokyo", round(h/12))
	case h >= 500:
		return fmt.Sprintf("That's %d movies worth of content", round(h/2))
	case h >= 200:
		return fmt.Sprintf("That's %d full days of non-stop watching", round(h/24))
	case h >= 100:
		return fmt.Sprintf("That's like binging %d full TV seasons", round(h/8))
	case h >= 50:
		return fmt.Sprintf("That's %d hours of YouTube — nearly %d full days", round(h), round(h/24))
	default:
		return fmt.Sprintf("That's %d hours — about %d minutes of content", round(h), round(h*60))
	}
}

func round(v float64) int {
	return int(math.Round(v))
}
