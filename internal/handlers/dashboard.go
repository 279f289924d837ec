package handlers

import (
	"fmt"
	"net/http"

	"github.com/imbris22/Chore-Buddy/internal/middleware"
	"github.com/imbris22/Chore-Buddy/internal/services"
)

// DashboardHandler serves the member's weekly board and the progress views
// built on completion history.
type DashboardHandler struct {
	circleService *services.CircleService
}

func NewDashboardHandler(circleService *services.CircleService) *DashboardHandler {
	return &DashboardHandler{circleService: circleService}
}

func (handler *DashboardHandler) Board(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	board, err := handler.circleService.Board(ctx, middleware.GetMember(ctx))
	if err != nil {
		writeError(w, "loading board", err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// Generate allocates the current week. It answers 201 the first time and 200
// with the stored assignments afterwards.
func (handler *DashboardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	member := middleware.GetMember(ctx)

	allocation, err := handler.circleService.GenerateWeek(ctx, member.CircleID)
	if err != nil {
		writeError(w, "generating week", err)
		return
	}

	status := http.StatusOK
	if allocation.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, allocation)
}

func (handler *DashboardHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := handler.circleService.History(ctx, middleware.GetMember(ctx).ID)
	if err != nil {
		writeError(w, "loading history", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (handler *DashboardHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := handler.circleService.Profile(ctx, middleware.GetMember(ctx))
	if err != nil {
		writeError(w, "loading profile", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (handler *DashboardHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	member := middleware.GetMember(ctx)

	scope, ok := services.ParseRankingScope(r.URL.Query().Get("scope"))
	if !ok {
		writeError(w, "loading rankings", fmt.Errorf("%w: scope must be weekly, monthly or all", services.ErrInvalidInput))
		return
	}

	rankings, err := handler.circleService.Rankings(ctx, member.CircleID, scope)
	if err != nil {
		writeError(w, "loading rankings", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scope":    scope,
		"rankings": rankings,
	})
}
