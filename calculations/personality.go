package calculations

import (
	"strings"

	"github.com/penwyp/TubeWrapped/models"
)

// DefaultPersonality is used when neither of the top two categories maps
// to a label.
const DefaultPersonality = "The YouTube Explorer"

// genrePersonalities maps category display names to personality labels.
var genrePersonalities = map[string]string{
	"Music":                 "The Audiophile",
	"Gaming":                "The Gamer",
	"Entertainment":         "The Entertainment Buff",
	"Education":             "The Lifelong Learner",
	"Science & Technology":  "The Tech Enthusiast",
	"Comedy":                "The Comedy Connoisseur",
	"News & Politics":       "The Informed Citizen",
	"Sports":                "The Sports Fanatic",
	"Howto & Style":         "The DIY Master",
	"People & Blogs":        "The Community Builder",
	"Film & Animation":      "The Cinephile",
	"Pets & Animals":        "The Animal Lover",
	"Travel & Events":       "The Explorer",
	"Autos & Vehicles":      "The Gearhead",
	"Nonprofits & Activism": "The Change Maker",
}

// GenrePersonality derives the viewer's personality label from their ranked
// categories. The top category wins outright; when it has no label the
// second one contributes an "Eclectic" variant built from the last word of
// its label.
func GenrePersonality(topCategories []models.CategoryStat) string {
	var top, second string
	if len(topCategories) > 0 {
		top = topCategories[0].Name
	}
	if len(topCategories) > 1 {
		second = topCategories[1].Name
	}

	if label, ok := genrePersonalities[top]; ok {
		return label
	}
	if label, ok := genrePersonalities[second]; ok {
		words := strings.Fields(label)
		return "The Eclectic " + words[len(words)-1]
	}
	return DefaultPersonality
}
