package worker

import (
	"fmt"
	"strings"
	"time"
)

// PeriodKey maps a frequency to the storage period key for the given time:
// daily -> "2006-01-02", weekly -> "2006-W02" (ISO week).
func PeriodKey(frequency string, now time.Time) string {
	now = now.UTC()
	switch strings.ToLower(strings.TrimSpace(frequency)) {
	case "weekly":
		year, week := now.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return now.Format("2006-01-02")
	}
}
