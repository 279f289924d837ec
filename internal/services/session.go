package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/imbris22/Chore-Buddy/internal/models"
	"github.com/imbris22/Chore-Buddy/internal/repository"
)

const sessionCookieName = "session"

var ErrNoSession = errors.New("no valid session")

// SessionService keeps the signed-in member in a signed cookie.
type SessionService struct {
	secureCookie *securecookie.SecureCookie
	memberRepo   repository.MemberRepository
}

type SessionData struct {
	MemberID string `json:"member_id"`
	CircleID string `json:"circle_id"`
}

func NewSessionService(secret string, memberRepo repository.MemberRepository) *SessionService {
	secureCookie := securecookie.New([]byte(secret), nil)
	secureCookie.SetSerializer(securecookie.JSONEncoder{})
	return &SessionService{secureCookie: secureCookie, memberRepo: memberRepo}
}

func (service *SessionService) SetSession(w http.ResponseWriter, member models.Member) error {
	value, err := service.secureCookie.Encode(sessionCookieName, SessionData{MemberID: member.ID, CircleID: member.CircleID})
	if err != nil {
		return fmt.Errorf("encoding session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 365,
	})
	return nil
}

func (service *SessionService) GetSession(r *http.Request) (SessionData, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return SessionData{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}

	var session SessionData
	if err := service.secureCookie.Decode(sessionCookieName, cookie.Value, &session); err != nil {
		return SessionData{}, fmt.Errorf("%w: decoding session cookie: %v", ErrNoSession, err)
	}
	return session, nil
}

func (service *SessionService) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// GetCurrentMember resolves the session to a member that still belongs to
// the circle recorded in it.
func (service *SessionService) GetCurrentMember(r *http.Request) (models.Member, error) {
	session, err := service.GetSession(r)
	if err != nil {
		return models.Member{}, err
	}

	member, err := service.memberRepo.FindByID(r.Context(), session.MemberID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Member{}, fmt.Errorf("%w: member left the circle", ErrNoSession)
	}
	if err != nil {
		return models.Member{}, fmt.Errorf("finding member: %w", err)
	}
	if member.CircleID != session.CircleID {
		return models.Member{}, fmt.Errorf("%w: circle mismatch", ErrNoSession)
	}
	return member, nil
}
