package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/weblog"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-Id"

// RequestID stashes an ID under weblog.RequestIDKey and sets it on the response.
//
// An incoming RequestIDHeader holding a UUID is kept, so a proxy's ID follows
// the request into the logs; anything else is replaced with a new UUID.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(r.Header.Get(RequestIDHeader))
			if err != nil {
				id = uuid.New()
			}

			w.Header().Set(RequestIDHeader, id.String())
			h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), weblog.RequestIDKey, id.String())))
		})
	}
}
