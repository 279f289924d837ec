package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/imbris22/Chore-Buddy/internal/models"
)

type GroceryRepository interface {
	FindByCircle(ctx context.Context, circleID string) ([]models.GroceryItem, error)
	Create(ctx context.Context, item models.GroceryItem) (models.GroceryItem, error)
	Delete(ctx context.Context, circleID string, id string) error
}

type SQLiteGroceryRepository struct {
	database *sql.DB
}

func NewGroceryRepository(database *sql.DB) *SQLiteGroceryRepository {
	return &SQLiteGroceryRepository{database: database}
}

func (repository *SQLiteGroceryRepository) FindByCircle(ctx context.Context, circleID string) ([]models.GroceryItem, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT id, circle_id, title, created_at FROM grocery_items WHERE circle_id = ? ORDER BY created_at, id",
		circleID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding grocery items: %w", err)
	}
	defer rows.Close()

	var items []models.GroceryItem
	for rows.Next() {
		var item models.GroceryItem
		if err := rows.Scan(&item.ID, &item.CircleID, &item.Title, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning grocery item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (repository *SQLiteGroceryRepository) Create(ctx context.Context, item models.GroceryItem) (models.GroceryItem, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO grocery_items (id, circle_id, title, created_at) VALUES (?, ?, ?, ?)",
		item.ID, item.CircleID, item.Title, item.CreatedAt,
	)
	if err != nil {
		return models.GroceryItem{}, fmt.Errorf("creating grocery item: %w", err)
	}
	return item, nil
}

// Delete is scoped to the circle so one circle cannot remove another's items.
func (repository *SQLiteGroceryRepository) Delete(ctx context.Context, circleID string, id string) error {
	result, err := repository.database.ExecContext(ctx,
		"DELETE FROM grocery_items WHERE id = ? AND circle_id = ?", id, circleID,
	)
	if err != nil {
		return fmt.Errorf("deleting grocery item: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("deleting grocery item: %w", ErrNotFound)
	}
	return nil
}
