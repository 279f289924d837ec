package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/imbris22/Chore-Buddy/internal/models"
	"github.com/imbris22/Chore-Buddy/internal/repository"
	"github.com/imbris22/Chore-Buddy/internal/testutil"
)

func createTestCircle(t *testing.T, repo *repository.SQLiteCircleRepository, name string) models.Circle {
	t.Helper()
	circle, err := repo.Create(context.Background(), models.Circle{Name: name, InviteCode: "code-" + name})
	if err != nil {
		t.Fatalf("creating test circle: %v", err)
	}
	return circle
}

func createTestMember(t *testing.T, repo *repository.SQLiteMemberRepository, circleID string, name string, joinedAt time.Time) models.Member {
	t.Helper()
	member, err := repo.Create(context.Background(), models.Member{CircleID: circleID, Name: name, JoinedAt: joinedAt})
	if err != nil {
		t.Fatalf("creating test member: %v", err)
	}
	return member
}

func TestCircleRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewCircleRepository(db)
	ctx := context.Background()

	created := createTestCircle(t, repo, "Flat 4B")
	if created.ID == "" {
		t.Fatal("expected non-empty ID")
	}

	byID, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("finding by id: %v", err)
	}
	if byID.Name != "Flat 4B" {
		t.Errorf("expected name 'Flat 4B', got '%s'", byID.Name)
	}

	byCode, err := repo.FindByInviteCode(ctx, "code-Flat 4B")
	if err != nil {
		t.Fatalf("finding by invite code: %v", err)
	}
	if byCode.ID != created.ID {
		t.Errorf("expected circle %s, got %s", created.ID, byCode.ID)
	}
}

func TestCircleRepository_FindByName_IgnoresCase(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewCircleRepository(db)

	created := createTestCircle(t, repo, "Flat 4B")

	found, err := repo.FindByName(context.Background(), "flat 4b")
	if err != nil {
		t.Fatalf("finding by name: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("expected circle %s, got %s", created.ID, found.ID)
	}
}

func TestCircleRepository_NameIsUnique(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewCircleRepository(db)

	createTestCircle(t, repo, "Flat 4B")

	_, err := repo.Create(context.Background(), models.Circle{Name: "FLAT 4B", InviteCode: "other"})
	if err == nil {
		t.Fatal("expected error for duplicate circle name")
	}
}

func TestCircleRepository_NotFound(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewCircleRepository(db)

	_, err := repo.FindByInviteCode(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
