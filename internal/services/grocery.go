package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/imbris22/Chore-Buddy/internal/models"
	"github.com/imbris22/Chore-Buddy/internal/repository"
)

var ErrGroceryItemNotFound = errors.New("grocery item not found")

func (service *CircleService) GroceryList(ctx context.Context, circleID string) ([]models.GroceryItem, error) {
	return service.groceryRepo.FindByCircle(ctx, circleID)
}

func (service *CircleService) AddGroceryItem(ctx context.Context, circleID string, title string) (models.GroceryItem, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.GroceryItem{}, fmt.Errorf("%w: item title is required", ErrInvalidInput)
	}
	return service.groceryRepo.Create(ctx, models.GroceryItem{
		CircleID:  circleID,
		Title:     title,
		CreatedAt: service.now(),
	})
}

// RemoveGroceryItem is how an item is ticked off the list.
func (service *CircleService) RemoveGroceryItem(ctx context.Context, circleID string, itemID string) error {
	err := service.groceryRepo.Delete(ctx, circleID, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrGroceryItemNotFound
	}
	return err
}
