package services

import (
	"sort"

	"github.com/imbris22/Chore-Buddy/internal/models"
)

const (
	MinChorePoints = 1
	MaxChorePoints = 5
)

// ClampPoints maps a stored point value into [MinChorePoints, MaxChorePoints].
// Unset (zero) values count as the minimum.
func ClampPoints(points int) int {
	if points < MinChorePoints {
		return MinChorePoints
	}
	if points > MaxChorePoints {
		return MaxChorePoints
	}
	return points
}

// Assign distributes chores across members for one cycle.
//
// Recurring chores rotate through the roster independently of each other.
// One-off chores are handed out largest first to whichever member currently
// carries the least load, with ties resolved by scanning from the tie cursor.
// The input state is not modified.
func Assign(members []models.Member, chores []models.Chore, state models.FairnessState) (models.AssignmentMap, models.FairnessState) {
	assignments := make(models.AssignmentMap)
	next := copyState(state)
	if len(members) == 0 {
		return assignments, next
	}

	count := len(members)
	points := make([]int, count)
	for i, member := range members {
		points[i] = next.MemberPoints[member.ID]
	}

	var recurring, oneOff []models.Chore
	for _, chore := range chores {
		if chore.Recurring {
			recurring = append(recurring, chore)
		} else {
			oneOff = append(oneOff, chore)
		}
	}

	for _, chore := range recurring {
		index := positiveMod(next.RecurringNextIdx[chore.ID], count)
		assignments[chore.ID] = members[index].ID
		points[index] += ClampPoints(chore.Points)
		next.RecurringNextIdx[chore.ID] = (index + 1) % count
	}

	sort.SliceStable(oneOff, func(i, j int) bool {
		return ClampPoints(oneOff[i].Points) > ClampPoints(oneOff[j].Points)
	})

	tieCursor := next.TieCursor
	for _, chore := range oneOff {
		index := leastLoaded(points, tieCursor)
		assignments[chore.ID] = members[index].ID
		points[index] += ClampPoints(chore.Points)
		tieCursor = (index + 1) % count
	}
	next.TieCursor = tieCursor

	for i, member := range members {
		next.MemberPoints[member.ID] = points[i]
	}

	return assignments, next
}

// leastLoaded returns the index of the smallest load, preferring the first
// match found when scanning from start and wrapping around.
func leastLoaded(points []int, start int) int {
	minimum := points[0]
	for _, value := range points[1:] {
		if value < minimum {
			minimum = value
		}
	}

	start = positiveMod(start, len(points))
	for offset := 0; offset < len(points); offset++ {
		index := (start + offset) % len(points)
		if points[index] == minimum {
			return index
		}
	}
	return 0
}

func positiveMod(value, modulus int) int {
	result := value % modulus
	if result < 0 {
		result += modulus
	}
	return result
}

func copyState(state models.FairnessState) models.FairnessState {
	next := models.FairnessState{
		MemberPoints:     make(map[string]int, len(state.MemberPoints)),
		TieCursor:        state.TieCursor,
		RecurringNextIdx: make(map[string]int, len(state.RecurringNextIdx)),
	}
	for id, points := range state.MemberPoints {
		next.MemberPoints[id] = points
	}
	for id, index := range state.RecurringNextIdx {
		next.RecurringNextIdx[id] = index
	}
	return next
}
