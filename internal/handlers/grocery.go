package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imbris22/Chore-Buddy/internal/middleware"
	"github.com/imbris22/Chore-Buddy/internal/models"
	"github.com/imbris22/Chore-Buddy/internal/services"
)

type GroceryHandler struct {
	circleService *services.CircleService
}

func NewGroceryHandler(circleService *services.CircleService) *GroceryHandler {
	return &GroceryHandler{circleService: circleService}
}

func (handler *GroceryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := handler.circleService.GroceryList(ctx, middleware.GetMember(ctx).CircleID)
	if err != nil {
		writeError(w, "loading grocery list", err)
		return
	}
	if items == nil {
		items = []models.GroceryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (handler *GroceryHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request struct {
		Title string `json:"title"`
	}
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, "adding grocery item", err)
		return
	}

	item, err := handler.circleService.AddGroceryItem(ctx, middleware.GetMember(ctx).CircleID, request.Title)
	if err != nil {
		writeError(w, "adding grocery item", err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (handler *GroceryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := handler.circleService.RemoveGroceryItem(ctx, middleware.GetMember(ctx).CircleID, chi.URLParam(r, "id")); err != nil {
		writeError(w, "removing grocery item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
