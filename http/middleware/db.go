package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/weblog"
	"github.com/xy-planning-network/weblog/logger"
	"github.com/xy-planning-network/weblog/store"
)

// InjectDB opens a *store.Scope for every request,
// storing it in *http.Request.Context under weblog.DBScopeKey.
//
// The scope acquires a connection only once a handler asks for one
// and is closed when the handler returns, however it returns.
// Failing to release the connection is logged.
//
// If pool is nil, NoopAdapter returns and this middleware does nothing.
func InjectDB(pool *store.Pool, log logger.Logger) Adapter {
	if pool == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := pool.NewScope(r.Context())
			defer func() {
				if err := scope.Close(); err != nil && log != nil {
					log.Error(err.Error(), &logger.LogContext{Request: r, Error: err})
				}
			}()

			ctx := context.WithValue(r.Context(), weblog.DBScopeKey, scope)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
