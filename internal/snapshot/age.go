package snapshot

import (
	"fmt"
	"time"
)

// Age describes how long ago the analysis was generated, e.g. "3 hours".
func (a *Analysis) Age(now time.Time) string {
	if a.GeneratedAt.IsZero() {
		return "unknown"
	}
	return humanDuration(now.Sub(a.GeneratedAt))
}

// humanDuration formats a duration in human-readable form.
func humanDuration(d time.Duration) string {
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	days := int(d.Hours() / 24)
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
