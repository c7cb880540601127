package tracker

import (
	"fmt"
	"time"

	"github.com/Althaf00710/resq-livemap/internal/config"
)

// IsStale classifies a vehicle as stale when it has never been observed
// directly (nil timestamp) or when more than the stale threshold has
// elapsed since its last update. The boundary is strict: a vehicle seen
// exactly 120s ago is still fresh. Never cached; callers recompute per
// render so the classification self-corrects with the passage of time.
func IsStale(lastActiveAt *time.Time, now time.Time) bool {
	if lastActiveAt == nil {
		return true
	}
	return now.Sub(*lastActiveAt) > config.StaleThreshold
}

// RelativeAge formats the elapsed time since lastActiveAt as a coarse
// string: seconds under a minute, minutes under an hour, hours beyond.
func RelativeAge(lastActiveAt *time.Time, now time.Time) string {
	if lastActiveAt == nil {
		return "—"
	}
	s := int(now.Sub(*lastActiveAt).Seconds())
	if s < 0 {
		s = 0
	}
	if s < 60 {
		return fmt.Sprintf("%ds ago", s)
	}
	m := s / 60
	if m < 60 {
		return fmt.Sprintf("%dm ago", m)
	}
	return fmt.Sprintf("%dh ago", m/60)
}
