package api

import (
	"context"
	"net/http"

	models "github.com/tripwell/tripwell/internal"
	"github.com/tripwell/tripwell/internal/ports"
	"github.com/tripwell/tripwell/internal/utils"
)

type contextKey int

const sessionContextKey contextKey = iota

// SessionFromContext returns the identity RequireAuth attached, or nil on
// unauthenticated paths.
func SessionFromContext(ctx context.Context) *models.Session {
	sess, _ := ctx.Value(sessionContextKey).(*models.Session)
	return sess
}

// RequireAuth resolves the session cookie against the store and rejects the
// request with 401 when there is no live session.
func RequireAuth(sessions ports.SessionStore, cookieName string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ae := resolveSession(r, sessions, cookieName)
		if ae != nil {
			utils.RenderJSON(w, ae.StatusCode, ae)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), sessionContextKey, sess)))
	}
}

// RequireAdmin is RequireAuth plus the admin capability check.
func RequireAdmin(sessions ports.SessionStore, cookieName string, next http.HandlerFunc) http.HandlerFunc {
	return RequireAuth(sessions, cookieName, func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if !sess.IsAdmin {
			ae := utils.NewForbidden(models.ErrForbidden.Error())
			utils.RenderJSON(w, ae.StatusCode, ae)
			return
		}
		next(w, r)
	})
}

func resolveSession(r *http.Request, sessions ports.SessionStore, cookieName string) (*models.Session, *utils.ApiError) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		ae := utils.NewUnauthorized(models.ErrUnauthenticated.Error())
		return nil, &ae
	}

	sess, err := sessions.Get(r.Context(), cookie.Value)
	if err != nil {
		ae := utils.NewInternalServerError("session store unavailable")
		return nil, &ae
	}
	if sess == nil {
		ae := utils.NewUnauthorized(models.ErrUnauthenticated.Error())
		return nil, &ae
	}
	return sess, nil
}
