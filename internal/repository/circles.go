package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/imbris22/Chore-Buddy/internal/models"
)

type CircleRepository interface {
	FindByID(ctx context.Context, id string) (models.Circle, error)
	FindByInviteCode(ctx context.Context, code string) (models.Circle, error)
	FindByName(ctx context.Context, name string) (models.Circle, error)
	Create(ctx context.Context, circle models.Circle) (models.Circle, error)
}

type SQLiteCircleRepository struct {
	database *sql.DB
}

func NewCircleRepository(database *sql.DB) *SQLiteCircleRepository {
	return &SQLiteCircleRepository{database: database}
}

func (repository *SQLiteCircleRepository) FindByID(ctx context.Context, id string) (models.Circle, error) {
	return repository.findOne(ctx, "id", id)
}

func (repository *SQLiteCircleRepository) FindByInviteCode(ctx context.Context, code string) (models.Circle, error) {
	return repository.findOne(ctx, "invite_code", code)
}

// FindByName matches case-insensitively.
func (repository *SQLiteCircleRepository) FindByName(ctx context.Context, name string) (models.Circle, error) {
	return repository.findOne(ctx, "name", name)
}

func (repository *SQLiteCircleRepository) findOne(ctx context.Context, column string, value string) (models.Circle, error) {
	var circle models.Circle
	err := repository.database.QueryRowContext(ctx,
		"SELECT id, name, invite_code, created_at FROM circles WHERE "+column+" = ?", value,
	).Scan(&circle.ID, &circle.Name, &circle.InviteCode, &circle.CreatedAt)
	if err != nil {
		return models.Circle{}, fmt.Errorf("finding circle by %s: %w", column, notFound(err))
	}
	return circle, nil
}

func (repository *SQLiteCircleRepository) Create(ctx context.Context, circle models.Circle) (models.Circle, error) {
	if circle.ID == "" {
		circle.ID = uuid.New().String()
	}
	if circle.CreatedAt.IsZero() {
		circle.CreatedAt = time.Now()
	}

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO circles (id, name, invite_code, created_at) VALUES (?, ?, ?, ?)",
		circle.ID, circle.Name, circle.InviteCode, circle.CreatedAt,
	)
	if err != nil {
		return models.Circle{}, fmt.Errorf("creating circle: %w", err)
	}
	return circle, nil
}
