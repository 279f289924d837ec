package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/imbris22/Chore-Buddy/internal/models"
)

type BoardChore struct {
	Chore  models.Chore  `json:"chore"`
	Points int           `json:"points"`
	Status models.Status `json:"status"`
}

type MemberTotals struct {
	Member models.Member `json:"member"`
	Totals Totals        `json:"totals"`
}

// Board is one member's view of the current cycle.
type Board struct {
	Cycle     models.Cycle   `json:"cycle"`
	Generated bool           `json:"generated"`
	Chores    []BoardChore   `json:"chores"`
	Totals    Totals         `json:"totals"`
	Members   []MemberTotals `json:"members"`
}

type HistoryReport struct {
	Weeks       []HistoryWeek `json:"weeks"`
	ChoresDone  int           `json:"chores_done"`
	TotalPoints int           `json:"total_points"`
	Streak      int           `json:"streak"`
}

type Profile struct {
	Member     models.Member `json:"member"`
	Stats      Stats         `json:"stats"`
	Streak     int           `json:"streak"`
	Rank       int           `json:"rank"`
	CircleSize int           `json:"circle_size"`
}

// cycleSnapshot is everything the boards and rankings read about a circle.
type cycleSnapshot struct {
	cycle       models.Cycle
	generated   bool
	members     []models.Member
	chores      []models.Chore
	assignments models.AssignmentMap
	status      models.CompletionStatus
	history     map[string][]models.HistoryEntry
}

func (service *CircleService) loadSnapshot(ctx context.Context, circleID string, withHistory bool) (cycleSnapshot, error) {
	snapshot := cycleSnapshot{cycle: service.CurrentCycle()}
	key := snapshot.cycle.Key

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		snapshot.generated, err = service.allocationRepo.IsAllocated(ctx, circleID, key)
		return err
	})
	group.Go(func() (err error) {
		snapshot.members, err = service.memberRepo.FindByCircle(ctx, circleID)
		return err
	})
	group.Go(func() (err error) {
		snapshot.chores, err = service.choreRepo.FindByCircle(ctx, circleID)
		return err
	})
	group.Go(func() (err error) {
		snapshot.assignments, err = service.allocationRepo.FindAssignments(ctx, circleID, key)
		return err
	})
	group.Go(func() (err error) {
		snapshot.status, err = service.completionRepo.FindStatus(ctx, circleID, key)
		return err
	})
	if withHistory {
		group.Go(func() (err error) {
			snapshot.history, err = service.historyRepo.FindByCircle(ctx, circleID)
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return cycleSnapshot{}, fmt.Errorf("loading circle snapshot: %w", err)
	}
	return snapshot, nil
}

func (service *CircleService) Board(ctx context.Context, member models.Member) (Board, error) {
	snapshot, err := service.loadSnapshot(ctx, member.CircleID, false)
	if err != nil {
		return Board{}, err
	}
	key := snapshot.cycle.Key

	board := Board{
		Cycle:     snapshot.cycle,
		Generated: snapshot.generated,
		Chores:    []BoardChore{},
		Totals:    WeeklyTotals(member.ID, key, snapshot.chores, snapshot.assignments, snapshot.status),
	}
	for _, chore := range snapshot.chores {
		if snapshot.assignments[chore.ID] != member.ID {
			continue
		}
		status := snapshot.status[models.StatusKey(key, chore.ID)]
		if status == "" {
			status = models.StatusPending
		}
		board.Chores = append(board.Chores, BoardChore{Chore: chore, Points: ClampPoints(chore.Points), Status: status})
	}
	for _, other := range snapshot.members {
		board.Members = append(board.Members, MemberTotals{
			Member: other,
			Totals: WeeklyTotals(other.ID, key, snapshot.chores, snapshot.assignments, snapshot.status),
		})
	}
	return board, nil
}

func (service *CircleService) History(ctx context.Context, memberID string) (HistoryReport, error) {
	history, err := service.historyRepo.FindByMember(ctx, memberID)
	if err != nil {
		return HistoryReport{}, err
	}

	now := service.now()
	stats := AllTimeStats(history)
	weeks := GroupHistoryByWeek(history, now.Location())
	if weeks == nil {
		weeks = []HistoryWeek{}
	}
	return HistoryReport{
		Weeks:       weeks,
		ChoresDone:  stats.ChoresDone,
		TotalPoints: stats.TotalPoints,
		Streak:      WeeklyStreak(history, now),
	}, nil
}

// Profile reports the member's all-time stats and where those put them in
// their circle.
func (service *CircleService) Profile(ctx context.Context, member models.Member) (Profile, error) {
	rankings, err := service.Rankings(ctx, member.CircleID, models.RankingScopeAll)
	if err != nil {
		return Profile{}, err
	}
	history, err := service.historyRepo.FindByMember(ctx, member.ID)
	if err != nil {
		return Profile{}, err
	}

	profile := Profile{
		Member:     member,
		Stats:      AllTimeStats(history),
		Streak:     WeeklyStreak(history, service.now()),
		CircleSize: len(rankings),
	}
	for _, ranking := range rankings {
		if ranking.Member.ID == member.ID {
			profile.Rank = ranking.Rank
			break
		}
	}
	return profile, nil
}

func (service *CircleService) Rankings(ctx context.Context, circleID string, scope models.RankingScope) ([]Ranking, error) {
	snapshot, err := service.loadSnapshot(ctx, circleID, scope != models.RankingScopeWeekly)
	if err != nil {
		return nil, err
	}

	scores := ScopeScores(scope, snapshot.members, snapshot.cycle.Key, snapshot.chores, snapshot.assignments, snapshot.status, snapshot.history, service.now())
	return RankMembers(snapshot.members, scores), nil
}

// MemberWeek returns the chores assigned to a member in the current cycle,
// looked up through the circle's invite code.
func (service *CircleService) MemberWeek(ctx context.Context, inviteCode string, memberID string) (models.Cycle, models.Member, []models.Chore, error) {
	circle, err := service.findCircleByCode(ctx, inviteCode)
	if err != nil {
		return models.Cycle{}, models.Member{}, nil, err
	}
	member, err := service.findMember(ctx, circle.ID, memberID)
	if err != nil {
		return models.Cycle{}, models.Member{}, nil, err
	}

	snapshot, err := service.loadSnapshot(ctx, circle.ID, false)
	if err != nil {
		return models.Cycle{}, models.Member{}, nil, err
	}

	var chores []models.Chore
	for _, chore := range snapshot.chores {
		if snapshot.assignments[chore.ID] == member.ID {
			chores = append(chores, chore)
		}
	}
	return snapshot.cycle, member, chores, nil
}
