package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/weblog"
	"github.com/xy-planning-network/weblog/http/session"
	"github.com/xy-planning-network/weblog/logger"
)

// InjectSession stores the session associated with the *http.Request in *http.Request.Context
// under weblog.SessionKey.
//
// A session failing verification is replaced by an anonymous one;
// the failure is logged at warn level and the request carries on.
//
// If store is nil, NoopAdapter returns and this middleware does nothing.
func InjectSession(store session.SessionStorer, log logger.Logger) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := store.GetSession(r)
			if err != nil && log != nil {
				log.Warn(err.Error(), &logger.LogContext{Request: r, Error: err})
			}

			ctx := context.WithValue(r.Context(), weblog.SessionKey, s)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
