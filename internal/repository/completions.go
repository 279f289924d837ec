package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/imbris22/Chore-Buddy/internal/models"
)

type CompletionRepository interface {
	FindStatus(ctx context.Context, circleID string, cycleKey string) (models.CompletionStatus, error)
	Complete(ctx context.Context, circleID string, entry models.HistoryEntry) (models.HistoryEntry, error)
}

type SQLiteCompletionRepository struct {
	database *sql.DB
}

func NewCompletionRepository(database *sql.DB) *SQLiteCompletionRepository {
	return &SQLiteCompletionRepository{database: database}
}

// FindStatus returns the completion status of every chore marked in the
// cycle. Chores missing from the map are pending.
func (repository *SQLiteCompletionRepository) FindStatus(ctx context.Context, circleID string, cycleKey string) (models.CompletionStatus, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT chore_id, status FROM completion_status WHERE circle_id = ? AND cycle_key = ?",
		circleID, cycleKey,
	)
	if err != nil {
		return nil, fmt.Errorf("finding completion status: %w", err)
	}
	defer rows.Close()

	status := make(models.CompletionStatus)
	for rows.Next() {
		var choreID string
		var value models.Status
		if err := rows.Scan(&choreID, &value); err != nil {
			return nil, fmt.Errorf("scanning completion status: %w", err)
		}
		status[models.StatusKey(cycleKey, choreID)] = value
	}
	return status, rows.Err()
}

// Complete marks entry.ChoreID done for entry.CycleKey and appends entry to
// the member's history in one transaction. A chore that is already done
// returns ErrAlreadyRecorded and nothing is written.
func (repository *SQLiteCompletionRepository) Complete(ctx context.Context, circleID string, entry models.HistoryEntry) (models.HistoryEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	transaction, err := repository.database.BeginTx(ctx, nil)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer transaction.Rollback()

	result, err := transaction.ExecContext(ctx,
		`INSERT INTO completion_status (circle_id, cycle_key, chore_id, status, completed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (circle_id, cycle_key, chore_id) DO NOTHING`,
		circleID, entry.CycleKey, entry.ChoreID, models.StatusDone, entry.Timestamp,
	)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("marking chore done: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("marking chore done: %w", err)
	}
	if affected == 0 {
		return models.HistoryEntry{}, ErrAlreadyRecorded
	}

	if _, err := transaction.ExecContext(ctx,
		`INSERT INTO history_entries (id, member_id, timestamp, cycle_key, chore_id, title, points)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.MemberID, entry.Timestamp, entry.CycleKey, entry.ChoreID, entry.Title, entry.Points,
	); err != nil {
		return models.HistoryEntry{}, fmt.Errorf("appending history entry: %w", err)
	}

	if err := transaction.Commit(); err != nil {
		return models.HistoryEntry{}, fmt.Errorf("committing completion: %w", err)
	}
	return entry, nil
}
