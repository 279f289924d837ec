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

func TestGroceryRepository_CreateListDelete(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	circle := createTestCircle(t, repository.NewCircleRepository(db), "Home")
	repo := repository.NewGroceryRepository(db)
	ctx := context.Background()
	base := time.Date(2025, 1, 14, 9, 0, 0, 0, time.UTC)

	milk, err := repo.Create(ctx, models.GroceryItem{CircleID: circle.ID, Title: "Milk", CreatedAt: base})
	if err != nil {
		t.Fatalf("creating item: %v", err)
	}
	repo.Create(ctx, models.GroceryItem{CircleID: circle.ID, Title: "Eggs", CreatedAt: base.Add(time.Minute)})

	items, err := repo.FindByCircle(ctx, circle.ID)
	if err != nil {
		t.Fatalf("listing items: %v", err)
	}
	if len(items) != 2 || items[0].Title != "Milk" || items[1].Title != "Eggs" {
		t.Errorf("unexpected items %+v", items)
	}

	if err := repo.Delete(ctx, circle.ID, milk.ID); err != nil {
		t.Fatalf("deleting item: %v", err)
	}
	items, _ = repo.FindByCircle(ctx, circle.ID)
	if len(items) != 1 || items[0].Title != "Eggs" {
		t.Errorf("unexpected items after delete %+v", items)
	}
}

func TestGroceryRepository_DeleteScopedToCircle(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	circleRepo := repository.NewCircleRepository(db)
	circle := createTestCircle(t, circleRepo, "Home")
	other := createTestCircle(t, circleRepo, "Other")
	repo := repository.NewGroceryRepository(db)
	ctx := context.Background()

	item, _ := repo.Create(ctx, models.GroceryItem{CircleID: circle.ID, Title: "Milk"})

	if err := repo.Delete(ctx, other.ID, item.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting from another circle, got %v", err)
	}
	items, _ := repo.FindByCircle(ctx, circle.ID)
	if len(items) != 1 {
		t.Errorf("expected item to survive, got %d items", len(items))
	}
}
