package scoring

import (
	"strings"

	"github.com/maxviazov/fantasy-cricket-service/internal/model"
)

// NormalizeCategory maps free-text role input onto one of the three categories.
// Substrings are tested in order: "bat", "bowl", then "all" or "rounder"; first match wins.
// Anything unrecognized, including the empty string, becomes Batsman.
func NormalizeCategory(raw string) model.Category {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "bat"):
		return model.CategoryBatsman
	case strings.Contains(s, "bowl"):
		return model.CategoryBowler
	case strings.Contains(s, "all"), strings.Contains(s, "rounder"):
		return model.CategoryAllRounder
	default:
		// TODO: reject unknown categories once product confirms the Batsman fallback is unintended.
		return model.CategoryBatsman
	}
}
