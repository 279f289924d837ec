package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/imbris22/Chore-Buddy/internal/models"
)

type ChoreRepository interface {
	FindByID(ctx context.Context, id string) (models.Chore, error)
	FindByCircle(ctx context.Context, circleID string) ([]models.Chore, error)
	Create(ctx context.Context, chore models.Chore) (models.Chore, error)
	Update(ctx context.Context, chore models.Chore) error
}

type SQLiteChoreRepository struct {
	database *sql.DB
}

func NewChoreRepository(database *sql.DB) *SQLiteChoreRepository {
	return &SQLiteChoreRepository{database: database}
}

func (repository *SQLiteChoreRepository) FindByID(ctx context.Context, id string) (models.Chore, error) {
	var chore models.Chore
	err := repository.database.QueryRowContext(ctx,
		`SELECT id, circle_id, title, points, recurring, frequency, icon, created_at, updated_at
		FROM chores WHERE id = ?`, id,
	).Scan(
		&chore.ID, &chore.CircleID, &chore.Title, &chore.Points, &chore.Recurring,
		&chore.Frequency, &chore.Icon, &chore.CreatedAt, &chore.UpdatedAt,
	)
	if err != nil {
		return models.Chore{}, fmt.Errorf("finding chore by id: %w", notFound(err))
	}
	return chore, nil
}

// FindByCircle returns chores in creation order, which is the order the
// allocator sees them in.
func (repository *SQLiteChoreRepository) FindByCircle(ctx context.Context, circleID string) ([]models.Chore, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, circle_id, title, points, recurring, frequency, icon, created_at, updated_at
		FROM chores WHERE circle_id = ? ORDER BY created_at, id`, circleID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding chores: %w", err)
	}
	defer rows.Close()

	return scanChores(rows)
}

func (repository *SQLiteChoreRepository) Create(ctx context.Context, chore models.Chore) (models.Chore, error) {
	if chore.ID == "" {
		chore.ID = uuid.New().String()
	}
	if chore.CreatedAt.IsZero() {
		chore.CreatedAt = time.Now()
	}
	chore.UpdatedAt = chore.CreatedAt
	if chore.Frequency == "" {
		chore.Frequency = models.FrequencyWeekly
	}

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO chores (id, circle_id, title, points, recurring, frequency, icon, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		chore.ID, chore.CircleID, chore.Title, chore.Points, chore.Recurring,
		chore.Frequency, chore.Icon, chore.CreatedAt, chore.UpdatedAt,
	)
	if err != nil {
		return models.Chore{}, fmt.Errorf("creating chore: %w", err)
	}
	return chore, nil
}

func (repository *SQLiteChoreRepository) Update(ctx context.Context, chore models.Chore) error {
	if chore.UpdatedAt.IsZero() {
		chore.UpdatedAt = time.Now()
	}
	result, err := repository.database.ExecContext(ctx,
		`UPDATE chores SET title = ?, points = ?, recurring = ?, frequency = ?, icon = ?, updated_at = ?
		WHERE id = ?`,
		chore.Title, chore.Points, chore.Recurring, chore.Frequency, chore.Icon, chore.UpdatedAt,
		chore.ID,
	)
	if err != nil {
		return fmt.Errorf("updating chore: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("updating chore: %w", ErrNotFound)
	}
	return nil
}

func scanChores(rows *sql.Rows) ([]models.Chore, error) {
	var chores []models.Chore
	for rows.Next() {
		var chore models.Chore
		if err := rows.Scan(
			&chore.ID, &chore.CircleID, &chore.Title, &chore.Points, &chore.Recurring,
			&chore.Frequency, &chore.Icon, &chore.CreatedAt, &chore.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning chore: %w", err)
		}
		chores = append(chores, chore)
	}
	return chores, rows.Err()
}
