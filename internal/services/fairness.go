package services

import (
	"sort"
	"time"

	"github.com/imbris22/Chore-Buddy/internal/models"
)

// MonthlyWindow is how far back the monthly ranking looks.
const MonthlyWindow = 30 * 24 * time.Hour

type Totals struct {
	Done int `json:"done"`
	Max  int `json:"max"`
}

type Stats struct {
	TotalPoints int `json:"total_points"`
	ChoresDone  int `json:"chores_done"`
}

type HistoryWeek struct {
	WeekStart time.Time             `json:"week_start"`
	Entries   []models.HistoryEntry `json:"entries"`
}

type Ranking struct {
	Rank   int           `json:"rank"`
	Member models.Member `json:"member"`
	Points int           `json:"points"`
}

// WeeklyTotals sums the points of the chores assigned to memberID in the
// cycle, and the subset of those already marked done.
func WeeklyTotals(memberID, cycleKey string, chores []models.Chore, assignments models.AssignmentMap, status models.CompletionStatus) Totals {
	var totals Totals
	for _, chore := range chores {
		if assignments[chore.ID] != memberID {
			continue
		}
		points := ClampPoints(chore.Points)
		totals.Max += points
		if status[models.StatusKey(cycleKey, chore.ID)] == models.StatusDone {
			totals.Done += points
		}
	}
	return totals
}

func AllTimeStats(history []models.HistoryEntry) Stats {
	stats := Stats{ChoresDone: len(history)}
	for _, entry := range history {
		stats.TotalPoints += entry.Points
	}
	return stats
}

// WeeklyStreak counts consecutive weeks with at least one completion, walking
// back from the week containing now. A week without activity ends the streak.
func WeeklyStreak(history []models.HistoryEntry, now time.Time) int {
	if len(history) == 0 {
		return 0
	}

	active := make(map[int64]bool, len(history))
	for _, entry := range history {
		active[WeekStart(entry.Timestamp.In(now.Location())).Unix()] = true
	}

	streak := 0
	for cursor := WeekStart(now); active[cursor.Unix()]; cursor = cursor.AddDate(0, 0, -7) {
		streak++
	}
	return streak
}

// GroupHistoryByWeek buckets entries by the Monday of their week in loc.
// Weeks and the entries inside them are ordered most recent first.
func GroupHistoryByWeek(history []models.HistoryEntry, loc *time.Location) []HistoryWeek {
	indexByWeek := make(map[int64]int)
	var weeks []HistoryWeek
	for _, entry := range history {
		start := WeekStart(entry.Timestamp.In(loc))
		index, ok := indexByWeek[start.Unix()]
		if !ok {
			index = len(weeks)
			indexByWeek[start.Unix()] = index
			weeks = append(weeks, HistoryWeek{WeekStart: start})
		}
		weeks[index].Entries = append(weeks[index].Entries, entry)
	}

	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].WeekStart.After(weeks[j].WeekStart)
	})
	for _, week := range weeks {
		sort.SliceStable(week.Entries, func(i, j int) bool {
			return week.Entries[i].Timestamp.After(week.Entries[j].Timestamp)
		})
	}
	return weeks
}

// ScopeScores computes each member's points for a ranking scope. The weekly
// scope reads live completion status for the current cycle; the others read
// completion history.
func ScopeScores(
	scope models.RankingScope,
	members []models.Member,
	cycleKey string,
	chores []models.Chore,
	assignments models.AssignmentMap,
	status models.CompletionStatus,
	history map[string][]models.HistoryEntry,
	now time.Time,
) map[string]int {
	scores := make(map[string]int, len(members))
	for _, member := range members {
		switch scope {
		case models.RankingScopeWeekly:
			scores[member.ID] = WeeklyTotals(member.ID, cycleKey, chores, assignments, status).Done
		case models.RankingScopeMonthly:
			cutoff := now.Add(-MonthlyWindow)
			for _, entry := range history[member.ID] {
				if !entry.Timestamp.Before(cutoff) {
					scores[member.ID] += entry.Points
				}
			}
		default:
			scores[member.ID] = AllTimeStats(history[member.ID]).TotalPoints
		}
	}
	return scores
}

// RankMembers orders members by score, highest first. Equal scores keep roster
// order and share a rank.
func RankMembers(members []models.Member, scores map[string]int) []Ranking {
	rankings := make([]Ranking, len(members))
	for i, member := range members {
		rankings[i] = Ranking{Member: member, Points: scores[member.ID]}
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Points > rankings[j].Points
	})

	for i := range rankings {
		if i > 0 && rankings[i].Points == rankings[i-1].Points {
			rankings[i].Rank = rankings[i-1].Rank
		} else {
			rankings[i].Rank = i + 1
		}
	}
	return rankings
}

func ParseRankingScope(value string) (models.RankingScope, bool) {
	switch models.RankingScope(value) {
	case "", models.RankingScopeWeekly:
		return models.RankingScopeWeekly, true
	case models.RankingScopeMonthly:
		return models.RankingScopeMonthly, true
	case models.RankingScopeAll:
		return models.RankingScopeAll, true
	}
	return "", false
}
