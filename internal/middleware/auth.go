package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/imbris22/Chore-Buddy/internal/models"
	"github.com/imbris22/Chore-Buddy/internal/services"
)

type contextKey string

const MemberContextKey contextKey = "member"

// RequireMember rejects requests without a valid member session and makes the
// member available through GetMember.
func RequireMember(sessionService *services.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			member, err := sessionService.GetCurrentMember(r)
			if err != nil {
				slog.Debug("rejecting request without session", "path", r.URL.Path, "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "join or create a circle first"})
				return
			}

			ctx := WithMember(r.Context(), member)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetMember(ctx context.Context) models.Member {
	member, _ := ctx.Value(MemberContextKey).(models.Member)
	return member
}

func WithMember(ctx context.Context, member models.Member) context.Context {
	return context.WithValue(ctx, MemberContextKey, member)
}
