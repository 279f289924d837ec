package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/imbris22/Chore-Buddy/internal/repository"
	"github.com/imbris22/Chore-Buddy/internal/testutil"
)

func TestMemberRepository_FindByCircle_OrderedByJoinTime(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	circleRepo := repository.NewCircleRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	ctx := context.Background()

	circle := createTestCircle(t, circleRepo, "Home")
	other := createTestCircle(t, circleRepo, "Elsewhere")
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	createTestMember(t, memberRepo, circle.ID, "Sam", base.Add(2*time.Hour))
	createTestMember(t, memberRepo, circle.ID, "Alex", base)
	createTestMember(t, memberRepo, circle.ID, "Jo", base.Add(time.Hour))
	createTestMember(t, memberRepo, other.ID, "Stranger", base)

	members, err := memberRepo.FindByCircle(ctx, circle.ID)
	if err != nil {
		t.Fatalf("finding members: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(members))
	}
	for i, name := range []string{"Alex", "Jo", "Sam"} {
		if members[i].Name != name {
			t.Errorf("position %d: expected '%s', got '%s'", i, name, members[i].Name)
		}
	}
}

func TestMemberRepository_Delete(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	circleRepo := repository.NewCircleRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	ctx := context.Background()

	circle := createTestCircle(t, circleRepo, "Home")
	member := createTestMember(t, memberRepo, circle.ID, "Alex", time.Now())

	if err := memberRepo.Delete(ctx, member.ID); err != nil {
		t.Fatalf("deleting member: %v", err)
	}

	if _, err := memberRepo.FindByID(ctx, member.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := memberRepo.Delete(ctx, member.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}
