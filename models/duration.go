package models

import "regexp"

var iso8601DurationRegex = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseISODuration converts an ISO-8601 "PT#H#M#S" duration string to whole
// seconds. Malformed input yields 0.
func ParseISODuration(duration string) int {
	match := iso8601DurationRegex.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}

	seconds := 0
	multipliers := []int{3600, 60, 1}
	for i, part := range match[1:] {
		if part == "" {
			continue
		}
		seconds += atoiDigits(part) * multipliers[i]
	}
	return seconds
}

// atoiDigits parses a string of decimal digits. The regex guarantees the
// input contains only digits.
func atoiDigits(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
