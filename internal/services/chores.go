package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/imbris22/Chore-Buddy/internal/models"
	"github.com/imbris22/Chore-Buddy/internal/repository"
)

var (
	ErrChoreNotFound        = errors.New("chore not found")
	ErrChoreAlreadyComplete = errors.New("chore is already completed")
	ErrChoreNotAssigned     = errors.New("chore is not assigned to this member")
)

type ChoreInput struct {
	Title     string           `json:"title"`
	Points    int              `json:"points"`
	Recurring bool             `json:"recurring"`
	Frequency models.Frequency `json:"frequency"`
	Icon      string           `json:"icon"`
	// AssignTo puts the new chore straight into the current cycle for this
	// member instead of waiting for the next allocation.
	AssignTo string `json:"assign_to,omitempty"`
}

// Allocation is the assignment map of one cycle. Created is false when the
// cycle had already been allocated and the stored map was returned.
type Allocation struct {
	Cycle       models.Cycle         `json:"cycle"`
	Assignments models.AssignmentMap `json:"assignments"`
	Created     bool                 `json:"created"`
}

func (input ChoreInput) validate() (ChoreInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return input, fmt.Errorf("%w: chore title is required", ErrInvalidInput)
	}
	switch input.Frequency {
	case "":
		input.Frequency = models.FrequencyWeekly
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly:
	default:
		return input, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, input.Frequency)
	}
	return input, nil
}

func (service *CircleService) Chores(ctx context.Context, circleID string) ([]models.Chore, error) {
	return service.choreRepo.FindByCircle(ctx, circleID)
}

// CreateChore stores the chore with its points as given; clamping happens
// wherever points are read.
func (service *CircleService) CreateChore(ctx context.Context, circleID string, input ChoreInput) (models.Chore, error) {
	input, err := input.validate()
	if err != nil {
		return models.Chore{}, err
	}

	if input.AssignTo != "" {
		if _, err := service.findMember(ctx, circleID, input.AssignTo); err != nil {
			return models.Chore{}, err
		}
	}

	chore, err := service.choreRepo.Create(ctx, models.Chore{
		CircleID:  circleID,
		Title:     input.Title,
		Points:    input.Points,
		Recurring: input.Recurring,
		Frequency: input.Frequency,
		Icon:      input.Icon,
		CreatedAt: service.now(),
	})
	if err != nil {
		return models.Chore{}, err
	}

	if input.AssignTo != "" {
		cycle := service.CurrentCycle()
		if err := service.allocationRepo.Assign(ctx, circleID, cycle.Key, chore.ID, input.AssignTo); err != nil {
			return models.Chore{}, fmt.Errorf("assigning new chore: %w", err)
		}
	}

	return chore, nil
}

// UpdateChore edits a chore in place. History entries keep the title and
// points they were recorded with.
func (service *CircleService) UpdateChore(ctx context.Context, circleID string, choreID string, input ChoreInput) (models.Chore, error) {
	input, err := input.validate()
	if err != nil {
		return models.Chore{}, err
	}

	chore, err := service.findChore(ctx, circleID, choreID)
	if err != nil {
		return models.Chore{}, err
	}

	chore.Title = input.Title
	chore.Points = input.Points
	chore.Recurring = input.Recurring
	chore.Frequency = input.Frequency
	chore.Icon = input.Icon
	chore.UpdatedAt = service.now()

	if err := service.choreRepo.Update(ctx, chore); err != nil {
		return models.Chore{}, err
	}
	return chore, nil
}

// GenerateWeek allocates the current cycle for the circle. A cycle is
// allocated at most once; later calls return the stored map. Chores that were
// assigned directly before allocation keep their assignee.
func (service *CircleService) GenerateWeek(ctx context.Context, circleID string) (Allocation, error) {
	cycle := service.CurrentCycle()

	result, err, _ := service.allocationGroup.Do(circleID+"|"+cycle.Key, func() (interface{}, error) {
		service.allocationMutex.Lock()
		defer service.allocationMutex.Unlock()
		return service.allocate(ctx, circleID, cycle)
	})
	if err != nil {
		return Allocation{}, err
	}
	return result.(Allocation), nil
}

func (service *CircleService) allocate(ctx context.Context, circleID string, cycle models.Cycle) (Allocation, error) {
	started := time.Now()

	allocated, err := service.allocationRepo.IsAllocated(ctx, circleID, cycle.Key)
	if err != nil {
		return Allocation{}, err
	}
	if allocated {
		return service.storedAllocation(ctx, circleID, cycle)
	}

	members, err := service.memberRepo.FindByCircle(ctx, circleID)
	if err != nil {
		return Allocation{}, err
	}
	if len(members) == 0 {
		return service.storedAllocation(ctx, circleID, cycle)
	}
	chores, err := service.choreRepo.FindByCircle(ctx, circleID)
	if err != nil {
		return Allocation{}, err
	}
	existing, err := service.allocationRepo.FindAssignments(ctx, circleID, cycle.Key)
	if err != nil {
		return Allocation{}, err
	}
	state, err := service.allocationRepo.LoadState(ctx, circleID)
	if err != nil {
		return Allocation{}, err
	}

	var pending []models.Chore
	recurring := 0
	for _, chore := range chores {
		if _, ok := existing[chore.ID]; ok {
			continue
		}
		pending = append(pending, chore)
		if chore.Recurring {
			recurring++
		}
	}

	assignments, next := Assign(members, pending, state)

	created, err := service.allocationRepo.SaveAllocation(ctx, circleID, cycle.Key, assignments, next, service.now())
	if err != nil {
		return Allocation{}, fmt.Errorf("saving allocation: %w", err)
	}
	if !created {
		return service.storedAllocation(ctx, circleID, cycle)
	}

	for choreID, memberID := range existing {
		assignments[choreID] = memberID
	}

	service.recorder.RecordAllocation(time.Since(started), recurring, len(pending)-recurring)
	slog.Info("generated week", "circle_id", circleID, "cycle", cycle.Key, "chores", len(assignments), "members", len(members))
	return Allocation{Cycle: cycle, Assignments: assignments, Created: true}, nil
}

func (service *CircleService) storedAllocation(ctx context.Context, circleID string, cycle models.Cycle) (Allocation, error) {
	assignments, err := service.allocationRepo.FindAssignments(ctx, circleID, cycle.Key)
	if err != nil {
		return Allocation{}, err
	}
	return Allocation{Cycle: cycle, Assignments: assignments}, nil
}

// CompleteChore marks the member's chore done for the current cycle and
// credits them with the chore's clamped points.
func (service *CircleService) CompleteChore(ctx context.Context, circleID string, memberID string, choreID string) (models.HistoryEntry, error) {
	chore, err := service.findChore(ctx, circleID, choreID)
	if err != nil {
		return models.HistoryEntry{}, err
	}

	cycle := service.CurrentCycle()
	assignments, err := service.allocationRepo.FindAssignments(ctx, circleID, cycle.Key)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	if assignments[chore.ID] != memberID {
		return models.HistoryEntry{}, ErrChoreNotAssigned
	}

	entry, err := service.completionRepo.Complete(ctx, circleID, models.HistoryEntry{
		MemberID:  memberID,
		Timestamp: service.now(),
		CycleKey:  cycle.Key,
		ChoreID:   chore.ID,
		Title:     chore.Title,
		Points:    ClampPoints(chore.Points),
	})
	if errors.Is(err, repository.ErrAlreadyRecorded) {
		return models.HistoryEntry{}, ErrChoreAlreadyComplete
	}
	if err != nil {
		return models.HistoryEntry{}, err
	}

	service.recorder.RecordCompletion(entry.Points)
	return entry, nil
}

func (service *CircleService) findChore(ctx context.Context, circleID string, choreID string) (models.Chore, error) {
	chore, err := service.choreRepo.FindByID(ctx, choreID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && chore.CircleID != circleID) {
		return models.Chore{}, ErrChoreNotFound
	}
	return chore, err
}
