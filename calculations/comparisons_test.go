package calculations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunComparison(t *testing.T) {
	assert.Equal(t, "That's 100 flights from NYC to Tokyo", FunComparison(1200))
	assert.Equal(t, "That's 300 movies worth of content", FunComparison(600))
	assert.Equal(t, "That's 10 full days of non-stop watching", FunComparison(240))
	assert.Equal(t, "That's like binging 19 full TV seasons", FunComparison(150))
	assert.Equal(t, "That's 60 hours of YouTube — nearly 3 full days", FunComparison(60))
	assert.Equal(t, "That's 10 hours — about 600 minutes of content", FunComparison(10))
}
