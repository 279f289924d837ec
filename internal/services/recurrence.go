package services

import (
	"time"

	"github.com/imbris22/Chore-Buddy/internal/models"
)

// Occurrence is an all-day slot, Start inclusive and End exclusive.
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// Occurrences lists the slots within the cycle on which a chore of the given
// frequency is due. Daily chores get one slot per day; weekly and monthly
// chores get a single slot spanning the whole cycle.
func Occurrences(frequency models.Frequency, cycle models.Cycle) []Occurrence {
	start := cycle.Start
	switch frequency {
	case models.FrequencyDaily:
		occurrences := make([]Occurrence, 0, 7)
		for day := 0; day < 7; day++ {
			occurrences = append(occurrences, Occurrence{
				Start: start.AddDate(0, 0, day),
				End:   start.AddDate(0, 0, day+1),
			})
		}
		return occurrences
	default:
		return []Occurrence{{Start: start, End: start.AddDate(0, 0, 7)}}
	}
}
