package progress

import (
	"strings"
	"time"

	"github.com/abhisek/mathspace/internal/quiz"
)

// BadgeID identifies a badge. Perfect-mission badges are per category.
type BadgeID string

const (
	BadgeFirstMission BadgeID = "first-mission"
	BadgeCentury      BadgeID = "century"
	BadgeExplorer     BadgeID = "explorer"
)

// CenturyPoints is the point total that earns BadgeCentury.
const CenturyPoints = 100

// PerfectBadge returns the badge for a flawless mission in category.
func PerfectBadge(category quiz.Category) BadgeID {
	return BadgeID("perfect-" + strings.ToLower(string(category)))
}

// Badge is an earned badge.
type Badge struct {
	ID       BadgeID
	Name     string
	EarnedAt time.Time
}

// BadgeName returns the display name for id.
func BadgeName(id BadgeID) string {
	switch id {
	case BadgeFirstMission:
		return "First Launch"
	case BadgeCentury:
		return "Century Pilot"
	case BadgeExplorer:
		return "Galaxy Explorer"
	}
	if cat, ok := strings.CutPrefix(string(id), "perfect-"); ok {
		if c, err := quiz.ParseCategory(cat); err == nil {
			return "Perfect " + string(c)
		}
	}
	return string(id)
}
