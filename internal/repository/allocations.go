package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/imbris22/Chore-Buddy/internal/models"
)

// AllocationRepository persists a circle's fairness state together with the
// per-cycle assignment maps the allocator produces from it.
type AllocationRepository interface {
	LoadState(ctx context.Context, circleID string) (models.FairnessState, error)
	FindAssignments(ctx context.Context, circleID string, cycleKey string) (models.AssignmentMap, error)
	IsAllocated(ctx context.Context, circleID string, cycleKey string) (bool, error)
	Assign(ctx context.Context, circleID string, cycleKey string, choreID string, memberID string) error
	SaveAllocation(ctx context.Context, circleID string, cycleKey string, assignments models.AssignmentMap, state models.FairnessState, allocatedAt time.Time) (bool, error)
}

type SQLiteAllocationRepository struct {
	database *sql.DB
}

func NewAllocationRepository(database *sql.DB) *SQLiteAllocationRepository {
	return &SQLiteAllocationRepository{database: database}
}

// LoadState returns the zero state, with empty maps, for a circle that has
// never been allocated.
func (repository *SQLiteAllocationRepository) LoadState(ctx context.Context, circleID string) (models.FairnessState, error) {
	state := models.FairnessState{
		MemberPoints:     map[string]int{},
		RecurringNextIdx: map[string]int{},
	}

	err := repository.database.QueryRowContext(ctx,
		"SELECT tie_cursor FROM fairness_state WHERE circle_id = ?", circleID,
	).Scan(&state.TieCursor)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.FairnessState{}, fmt.Errorf("loading tie cursor: %w", err)
	}

	if err := repository.loadCounters(ctx,
		"SELECT member_id, points FROM fairness_member_points WHERE circle_id = ?", circleID, state.MemberPoints,
	); err != nil {
		return models.FairnessState{}, fmt.Errorf("loading member points: %w", err)
	}

	if err := repository.loadCounters(ctx,
		"SELECT chore_id, next_index FROM fairness_recurring_cursors WHERE circle_id = ?", circleID, state.RecurringNextIdx,
	); err != nil {
		return models.FairnessState{}, fmt.Errorf("loading recurring cursors: %w", err)
	}

	return state, nil
}

func (repository *SQLiteAllocationRepository) loadCounters(ctx context.Context, query string, circleID string, into map[string]int) error {
	rows, err := repository.database.QueryContext(ctx, query, circleID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		into[key] = value
	}
	return rows.Err()
}

func (repository *SQLiteAllocationRepository) FindAssignments(ctx context.Context, circleID string, cycleKey string) (models.AssignmentMap, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT chore_id, member_id FROM cycle_assignments WHERE circle_id = ? AND cycle_key = ?",
		circleID, cycleKey,
	)
	if err != nil {
		return nil, fmt.Errorf("finding assignments: %w", err)
	}
	defer rows.Close()

	assignments := make(models.AssignmentMap)
	for rows.Next() {
		var choreID, memberID string
		if err := rows.Scan(&choreID, &memberID); err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		assignments[choreID] = memberID
	}
	return assignments, rows.Err()
}

func (repository *SQLiteAllocationRepository) IsAllocated(ctx context.Context, circleID string, cycleKey string) (bool, error) {
	var count int
	err := repository.database.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM cycle_allocations WHERE circle_id = ? AND cycle_key = ?",
		circleID, cycleKey,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking allocation: %w", err)
	}
	return count > 0, nil
}

// Assign sets a single chore's assignee in a cycle, replacing any previous one.
func (repository *SQLiteAllocationRepository) Assign(ctx context.Context, circleID string, cycleKey string, choreID string, memberID string) error {
	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO cycle_assignments (circle_id, cycle_key, chore_id, member_id, assigned_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (circle_id, cycle_key, chore_id) DO UPDATE SET member_id = excluded.member_id, assigned_at = excluded.assigned_at`,
		circleID, cycleKey, choreID, memberID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("assigning chore: %w", err)
	}
	return nil
}

// SaveAllocation records the cycle as allocated, stores its assignments and
// replaces the fairness state, all in one transaction. It returns false and
// writes nothing when the cycle was already allocated. Assignments that
// already exist for the cycle are kept.
func (repository *SQLiteAllocationRepository) SaveAllocation(
	ctx context.Context,
	circleID string,
	cycleKey string,
	assignments models.AssignmentMap,
	state models.FairnessState,
	allocatedAt time.Time,
) (bool, error) {
	transaction, err := repository.database.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer transaction.Rollback()

	result, err := transaction.ExecContext(ctx,
		`INSERT INTO cycle_allocations (circle_id, cycle_key, allocated_at) VALUES (?, ?, ?)
		ON CONFLICT (circle_id, cycle_key) DO NOTHING`,
		circleID, cycleKey, allocatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("marking cycle allocated: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("marking cycle allocated: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	for choreID, memberID := range assignments {
		if _, err := transaction.ExecContext(ctx,
			`INSERT INTO cycle_assignments (circle_id, cycle_key, chore_id, member_id, assigned_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (circle_id, cycle_key, chore_id) DO NOTHING`,
			circleID, cycleKey, choreID, memberID, allocatedAt,
		); err != nil {
			return false, fmt.Errorf("inserting assignment: %w", err)
		}
	}

	if _, err := transaction.ExecContext(ctx,
		`INSERT INTO fairness_state (circle_id, tie_cursor, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (circle_id) DO UPDATE SET tie_cursor = excluded.tie_cursor, updated_at = excluded.updated_at`,
		circleID, state.TieCursor, allocatedAt,
	); err != nil {
		return false, fmt.Errorf("saving tie cursor: %w", err)
	}

	for memberID, points := range state.MemberPoints {
		if _, err := transaction.ExecContext(ctx,
			`INSERT INTO fairness_member_points (circle_id, member_id, points) VALUES (?, ?, ?)
			ON CONFLICT (circle_id, member_id) DO UPDATE SET points = excluded.points`,
			circleID, memberID, points,
		); err != nil {
			return false, fmt.Errorf("saving member points: %w", err)
		}
	}

	for choreID, nextIndex := range state.RecurringNextIdx {
		if _, err := transaction.ExecContext(ctx,
			`INSERT INTO fairness_recurring_cursors (circle_id, chore_id, next_index) VALUES (?, ?, ?)
			ON CONFLICT (circle_id, chore_id) DO UPDATE SET next_index = excluded.next_index`,
			circleID, choreID, nextIndex,
		); err != nil {
			return false, fmt.Errorf("saving recurring cursor: %w", err)
		}
	}

	if err := transaction.Commit(); err != nil {
		return false, fmt.Errorf("committing allocation: %w", err)
	}
	return true, nil
}
