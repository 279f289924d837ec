package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/imbris22/Chore-Buddy/internal/middleware"
	"github.com/imbris22/Chore-Buddy/internal/models"
	"github.com/imbris22/Chore-Buddy/internal/services"
)

type CircleHandler struct {
	circleService  *services.CircleService
	sessionService *services.SessionService
}

func NewCircleHandler(circleService *services.CircleService, sessionService *services.SessionService) *CircleHandler {
	return &CircleHandler{circleService: circleService, sessionService: sessionService}
}

type createCircleRequest struct {
	CircleName string `json:"circle_name"`
	MemberName string `json:"member_name"`
	AvatarRef  string `json:"avatar_ref"`
}

type joinCircleRequest struct {
	InviteCode string `json:"invite_code"`
	Name       string `json:"name"`
	AvatarRef  string `json:"avatar_ref"`
}

type membershipResponse struct {
	Circle models.Circle `json:"circle"`
	Member models.Member `json:"member"`
}

// Create makes a new circle and signs its founder in as the first member.
func (handler *CircleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request createCircleRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, "creating circle", err)
		return
	}

	if strings.TrimSpace(request.MemberName) == "" {
		writeError(w, "creating circle", fmt.Errorf("%w: member name is required", services.ErrInvalidInput))
		return
	}

	circle, err := handler.circleService.CreateCircle(r.Context(), request.CircleName)
	if err != nil {
		writeError(w, "creating circle", err)
		return
	}

	handler.join(w, r, circle.InviteCode, request.MemberName, request.AvatarRef)
}

func (handler *CircleHandler) Join(w http.ResponseWriter, r *http.Request) {
	var request joinCircleRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, "joining circle", err)
		return
	}

	handler.join(w, r, request.InviteCode, request.Name, request.AvatarRef)
}

func (handler *CircleHandler) join(w http.ResponseWriter, r *http.Request, inviteCode string, name string, avatarRef string) {
	circle, member, err := handler.circleService.JoinCircle(r.Context(), inviteCode, name, avatarRef)
	if err != nil {
		writeError(w, "joining circle", err)
		return
	}

	if err := handler.sessionService.SetSession(w, member); err != nil {
		writeError(w, "starting session", err)
		return
	}
	writeJSON(w, http.StatusCreated, membershipResponse{Circle: circle, Member: member})
}

func (handler *CircleHandler) Logout(w http.ResponseWriter, r *http.Request) {
	handler.sessionService.ClearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

// Leave removes the signed-in member from their circle.
func (handler *CircleHandler) Leave(w http.ResponseWriter, r *http.Request) {
	member := middleware.GetMember(r.Context())

	if err := handler.circleService.LeaveCircle(r.Context(), member.ID); err != nil {
		writeError(w, "leaving circle", err)
		return
	}

	handler.sessionService.ClearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

func (handler *CircleHandler) Members(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	member := middleware.GetMember(ctx)

	circle, err := handler.circleService.Circle(ctx, member.CircleID)
	if err != nil {
		writeError(w, "loading circle", err)
		return
	}
	roster, err := handler.circleService.Roster(ctx, member.CircleID)
	if err != nil {
		writeError(w, "loading members", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"circle":  circle,
		"members": roster,
	})
}
