package middleware

import (
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/weblog"
)

// AccessLog writes each request to out in the Apache Combined Log Format.
//
// In the TESTING environment, or with a nil out,
// NoopAdapter returns and this middleware does nothing.
func AccessLog(env weblog.Environment, out io.Writer) Adapter {
	if out == nil || env.IsTesting() {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return handlers.CombinedLoggingHandler(out, h)
	}
}
