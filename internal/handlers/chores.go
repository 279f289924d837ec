package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imbris22/Chore-Buddy/internal/middleware"
	"github.com/imbris22/Chore-Buddy/internal/models"
	"github.com/imbris22/Chore-Buddy/internal/services"
)

type ChoreHandler struct {
	circleService *services.CircleService
}

func NewChoreHandler(circleService *services.CircleService) *ChoreHandler {
	return &ChoreHandler{circleService: circleService}
}

func (handler *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	member := middleware.GetMember(ctx)

	chores, err := handler.circleService.Chores(ctx, member.CircleID)
	if err != nil {
		writeError(w, "loading chores", err)
		return
	}
	if chores == nil {
		chores = []models.Chore{}
	}
	writeJSON(w, http.StatusOK, chores)
}

// Create adds a chore to the member's circle. An assign_to of "me" assigns
// it to the caller for the current week.
func (handler *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	member := middleware.GetMember(ctx)

	var input services.ChoreInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, "creating chore", err)
		return
	}
	if input.AssignTo == "me" {
		input.AssignTo = member.ID
	}

	chore, err := handler.circleService.CreateChore(ctx, member.CircleID, input)
	if err != nil {
		writeError(w, "creating chore", err)
		return
	}
	writeJSON(w, http.StatusCreated, chore)
}

func (handler *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	member := middleware.GetMember(ctx)

	var input services.ChoreInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, "updating chore", err)
		return
	}

	chore, err := handler.circleService.UpdateChore(ctx, member.CircleID, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, "updating chore", err)
		return
	}
	writeJSON(w, http.StatusOK, chore)
}

func (handler *ChoreHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	member := middleware.GetMember(ctx)

	entry, err := handler.circleService.CompleteChore(ctx, member.CircleID, member.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "completing chore", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
