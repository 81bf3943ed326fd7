package calculations

import (
	"testing"

	"github.com/penwyp/TubeWrapped/models"
	"github.com/stretchr/testify/assert"
)

func categoryStats(names ...string) []models.CategoryStat {
	stats := make([]models.CategoryStat, len(names))
	for i, name := range names {
		stats[i] = models.CategoryStat{Name: name}
	}
	return stats
}

func TestGenrePersonality_TopCategoryMapped(t *testing.T) {
	assert.Equal(t, "The Gamer", GenrePersonality(categoryStats("Gaming", "Music")))
	assert.Equal(t, "The Audiophile", GenrePersonality(categoryStats("Music")))
}

func TestGenrePersonality_EclecticFallback(t *testing.T) {
	// "Shorts" has no label; the second-ranked category supplies the last
	// word of its label wrapped as Eclectic.
	assert.Equal(t, "The Eclectic Gamer", GenrePersonality(categoryStats("Shorts", "Gaming")))
	assert.Equal(t, "The Eclectic Buff", GenrePersonality(categoryStats("Unknown", "Entertainment")))
}

func TestGenrePersonality_Default(t *testing.T) {
	assert.Equal(t, DefaultPersonality, GenrePersonality(categoryStats("Shorts", "Unknown")))
	assert.Equal(t, DefaultPersonality, GenrePersonality(nil))
	assert.Equal(t, DefaultPersonality, GenrePersonality(categoryStats()))
}
