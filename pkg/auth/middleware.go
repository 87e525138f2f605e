package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/cheeseshop/pkg/httpx"
	"github.com/ghuser/cheeseshop/pkg/logger"
)

const (
	sessionName      = "cheeseshop_session"
	sessionUserIDKey = "user_id"
)

// RequireAuth rejects requests without a session holding a positive user_id
// with 401. Otherwise the user ID is available through UserIDFromCtx.
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			userID, ok := session.Values[sessionUserIDKey].(int64)
			if !ok {
				log.WarnContext(r.Context(), "session missing user_id")
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if userID <= 0 {
				log.WarnContext(r.Context(), "invalid user_id in session", "user_id", userID)
				httpx.JSONError(w, http.StatusUnauthorized, "invalid session data")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
