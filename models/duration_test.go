package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"PT1H2M3S", 3723},
		{"PT15M33S", 933},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"PT1M", 60},
		{"P0D", 0},
		{"", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseISODuration(tt.input))
		})
	}
}
