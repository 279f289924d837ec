package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/imbris22/Chore-Buddy/internal/models"
)

type MemberRepository interface {
	FindByID(ctx context.Context, id string) (models.Member, error)
	FindByCircle(ctx context.Context, circleID string) ([]models.Member, error)
	Create(ctx context.Context, member models.Member) (models.Member, error)
	Delete(ctx context.Context, id string) error
}

type SQLiteMemberRepository struct {
	database *sql.DB
}

func NewMemberRepository(database *sql.DB) *SQLiteMemberRepository {
	return &SQLiteMemberRepository{database: database}
}

func (repository *SQLiteMemberRepository) FindByID(ctx context.Context, id string) (models.Member, error) {
	var member models.Member
	err := repository.database.QueryRowContext(ctx,
		"SELECT id, circle_id, name, avatar_ref, joined_at FROM members WHERE id = ?", id,
	).Scan(&member.ID, &member.CircleID, &member.Name, &member.AvatarRef, &member.JoinedAt)
	if err != nil {
		return models.Member{}, fmt.Errorf("finding member by id: %w", notFound(err))
	}
	return member, nil
}

// FindByCircle returns the roster in join order. The allocator depends on
// this order being stable.
func (repository *SQLiteMemberRepository) FindByCircle(ctx context.Context, circleID string) ([]models.Member, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, circle_id, name, avatar_ref, joined_at
		FROM members WHERE circle_id = ? ORDER BY joined_at, id`, circleID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var member models.Member
		if err := rows.Scan(&member.ID, &member.CircleID, &member.Name, &member.AvatarRef, &member.JoinedAt); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (repository *SQLiteMemberRepository) Create(ctx context.Context, member models.Member) (models.Member, error) {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO members (id, circle_id, name, avatar_ref, joined_at) VALUES (?, ?, ?, ?, ?)",
		member.ID, member.CircleID, member.Name, member.AvatarRef, member.JoinedAt,
	)
	if err != nil {
		return models.Member{}, fmt.Errorf("creating member: %w", err)
	}
	return member, nil
}

func (repository *SQLiteMemberRepository) Delete(ctx context.Context, id string) error {
	result, err := repository.database.ExecContext(ctx, "DELETE FROM members WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("deleting member: %w", ErrNotFound)
	}
	return nil
}
