package ranger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/weblog/http/session"
	"github.com/xy-planning-network/weblog/logger"
	"github.com/xy-planning-network/weblog/store"
)

// A RangerOption configures a *Ranger before New fills in
// whichever components remain with defaults.
type RangerOption func(rng *Ranger) error

// WithContext exposes the provided context.Context to the weblog.
// Cancelling ctx stops (*Ranger).Guide.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) error {
		if ctx == nil {
			return fmt.Errorf("nil context")
		}

		rng.ctx = ctx
		return nil
	}
}

// WithLogger exposes the provided logger.Logger to the weblog.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) error {
		rng.l = l
		l.Debug(fmt.Sprintf("using logger %T", l), nil)
		return nil
	}
}

// WithPool exposes the provided *store.Pool to the weblog.
//
// WithPool assumes a connection has already been established.
func WithPool(pool *store.Pool) RangerOption {
	return func(rng *Ranger) error {
		rng.pool = pool
		return nil
	}
}

// WithSessionStore exposes the session.SessionStorer to the weblog.
func WithSessionStore(store session.SessionStorer) RangerOption {
	return func(rng *Ranger) error {
		rng.sessions = store
		return nil
	}
}

// WithServer exposes the *http.Server to the weblog.
// New replaces its Handler with the weblog's router.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) error {
		rng.srv = s
		return nil
	}
}
