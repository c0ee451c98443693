package auth

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/worktrack/pkg/httpx"
	"github.com/ghuser/worktrack/pkg/logger"
)

const (
	sessionName      = "worktrack_session"
	sessionUserIDKey = "user_id"
)

// RequireAuth rejects requests without a session carrying a valid user_id
// with 401 and otherwise puts the user into the request context. The user id
// is also added to the request's log attributes.
//
// After this middleware, handlers can call auth.UserIDFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			raw, ok := session.Values[sessionUserIDKey].(string)
			if !ok || raw == "" {
				log.WarnContext(r.Context(), "session missing user_id")
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			userID, err := uuid.Parse(raw)
			if err != nil {
				log.WarnContext(r.Context(), "invalid user_id in session", "user_id", raw, "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid session data"})
				return
			}

			logger.AddAttrs(r.Context(), "user_id", userID.String())
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// StartSession binds userID to the caller's session and writes the cookie.
func StartSession(store sessions.Store, w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	session, err := store.Get(r, sessionName)
	if err != nil && session == nil {
		return fmt.Errorf("load session: %w", err)
	}
	session.Values[sessionUserIDKey] = userID.String()
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// EndSession expires the caller's session.
func EndSession(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, err := store.Get(r, sessionName)
	if err != nil && session == nil {
		return fmt.Errorf("load session: %w", err)
	}
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
