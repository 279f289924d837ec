package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/imbris22/Chore-Buddy/internal/models"
	"github.com/imbris22/Chore-Buddy/internal/repository"
	"github.com/imbris22/Chore-Buddy/internal/testutil"
)

func newTestSessionService(t *testing.T) (*SessionService, models.Member, *repository.SQLiteMemberRepository) {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	circle, err := repository.NewCircleRepository(db).Create(context.Background(), models.Circle{Name: "Home", InviteCode: "home"})
	if err != nil {
		t.Fatalf("creating circle: %v", err)
	}
	memberRepo := repository.NewMemberRepository(db)
	member, err := memberRepo.Create(context.Background(), models.Member{CircleID: circle.ID, Name: "Alex"})
	if err != nil {
		t.Fatalf("creating member: %v", err)
	}
	return NewSessionService("test-secret", memberRepo), member, memberRepo
}

func requestWithCookies(recorder *httptest.ResponseRecorder) *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range recorder.Result().Cookies() {
		request.AddCookie(cookie)
	}
	return request
}

func TestSession_RoundTrip(t *testing.T) {
	service, member, _ := newTestSessionService(t)

	recorder := httptest.NewRecorder()
	if err := service.SetSession(recorder, member); err != nil {
		t.Fatalf("setting session: %v", err)
	}

	current, err := service.GetCurrentMember(requestWithCookies(recorder))
	if err != nil {
		t.Fatalf("resolving member: %v", err)
	}
	if current.ID != member.ID {
		t.Errorf("expected member %s, got %s", member.ID, current.ID)
	}
}

func TestSession_MissingCookie(t *testing.T) {
	service, _, _ := newTestSessionService(t)

	_, err := service.GetCurrentMember(httptest.NewRequest(http.MethodGet, "/", nil))
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestSession_TamperedCookie(t *testing.T) {
	service, _, _ := newTestSessionService(t)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: "session", Value: "forged"})

	if _, err := service.GetCurrentMember(request); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestSession_MemberLeft(t *testing.T) {
	service, member, memberRepo := newTestSessionService(t)

	recorder := httptest.NewRecorder()
	service.SetSession(recorder, member)
	memberRepo.Delete(context.Background(), member.ID)

	if _, err := service.GetCurrentMember(requestWithCookies(recorder)); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession after leaving, got %v", err)
	}
}

func TestSession_Clear(t *testing.T) {
	service, _, _ := newTestSessionService(t)

	recorder := httptest.NewRecorder()
	service.ClearSession(recorder)

	cookies := recorder.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Errorf("expected an expiring session cookie, got %+v", cookies)
	}
}
