package middleware

import (
	"net/http"

	"github.com/xy-planning-network/weblog"
	"github.com/xy-planning-network/weblog/http/session"
	"github.com/xy-planning-network/weblog/logger"
)

// RequireAuthed passes the request on only when the session in *http.Request.Context
// is logged in.
//
// Otherwise, RequireAuthed writes 401 without calling the next handler:
// nothing is changed and no flash is set.
// A request without a session is treated as anonymous.
func RequireAuthed(log logger.Logger) Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := r.Context().Value(weblog.SessionKey).(session.AuthSessionable)
			if !ok || !s.IsAuthenticated() {
				if log != nil {
					log.Info(weblog.ErrUnauthorized.Error(), &logger.LogContext{Request: r})
				}

				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			h.ServeHTTP(w, r)
		})
	}
}
