package services

import (
	"time"

	"github.com/imbris22/Chore-Buddy/internal/models"
)

const cycleKeyLayout = "2006-01-02T15:04:05.000Z07:00"

// CurrentWeek returns the Monday-to-Sunday cycle containing now, in now's location.
func CurrentWeek(now time.Time) models.Cycle {
	start := WeekStart(now)
	end := time.Date(start.Year(), start.Month(), start.Day()+6, 23, 59, 59, int(999*time.Millisecond), start.Location())

	return models.Cycle{
		Start: start,
		End:   end,
		Key:   start.Format(cycleKeyLayout),
	}
}

// WeekStart returns local midnight of the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
}
