// Package trash holds the collection-day schedule and the evening-before
// reminder. Pure calendar arithmetic; the cutoff time is always passed in.
package trash

import (
	"fmt"
	"strings"
	"time"
)

// Schedule maps weekdays to the trash collected that day.
type Schedule map[time.Weekday][]string

// DefaultSchedule is the municipal pickup plan the household lives under.
func DefaultSchedule() Schedule {
	return Schedule{
		time.Monday:   {"burnable"},
		time.Tuesday:  {"plastics"},
		time.Thursday: {"burnable"},
		time.Friday:   {"cans", "bottles"},
		time.Saturday: {"paper"},
	}
}

// Tomorrow returns the trash types collected the day after now.
func (s Schedule) Tomorrow(now time.Time) []string {
	return s[now.AddDate(0, 0, 1).Weekday()]
}

// ReminderMessage renders the evening-before notice, or "" when nothing is
// collected tomorrow so no message should be sent at all.
func (s Schedule) ReminderMessage(now time.Time) string {
	types := s.Tomorrow(now)
	if len(types) == 0 {
		return ""
	}
	return fmt.Sprintf("Trash day tomorrow: %s", strings.Join(types, ", "))
}
