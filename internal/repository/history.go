package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/imbris22/Chore-Buddy/internal/models"
)

// HistoryRepository reads completion history. Entries are written by
// CompletionRepository.Complete and never change afterwards.
type HistoryRepository interface {
	FindByMember(ctx context.Context, memberID string) ([]models.HistoryEntry, error)
	FindByCircle(ctx context.Context, circleID string) (map[string][]models.HistoryEntry, error)
}

type SQLiteHistoryRepository struct {
	database *sql.DB
}

func NewHistoryRepository(database *sql.DB) *SQLiteHistoryRepository {
	return &SQLiteHistoryRepository{database: database}
}

// FindByMember returns the member's history, newest first.
func (repository *SQLiteHistoryRepository) FindByMember(ctx context.Context, memberID string) ([]models.HistoryEntry, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, member_id, timestamp, cycle_key, chore_id, title, points
		FROM history_entries WHERE member_id = ? ORDER BY timestamp DESC, id`, memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding history: %w", err)
	}
	defer rows.Close()

	return scanHistory(rows)
}

// FindByCircle returns the history of every current member of the circle,
// keyed by member id.
func (repository *SQLiteHistoryRepository) FindByCircle(ctx context.Context, circleID string) (map[string][]models.HistoryEntry, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT h.id, h.member_id, h.timestamp, h.cycle_key, h.chore_id, h.title, h.points
		FROM history_entries h
		JOIN members m ON m.id = h.member_id
		WHERE m.circle_id = ?
		ORDER BY h.timestamp DESC, h.id`, circleID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding circle history: %w", err)
	}
	defer rows.Close()

	entries, err := scanHistory(rows)
	if err != nil {
		return nil, err
	}

	byMember := make(map[string][]models.HistoryEntry)
	for _, entry := range entries {
		byMember[entry.MemberID] = append(byMember[entry.MemberID], entry)
	}
	return byMember, nil
}

func scanHistory(rows *sql.Rows) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	for rows.Next() {
		var entry models.HistoryEntry
		if err := rows.Scan(
			&entry.ID, &entry.MemberID, &entry.Timestamp, &entry.CycleKey,
			&entry.ChoreID, &entry.Title, &entry.Points,
		); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
