package middleware

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/weblog"
	"github.com/xy-planning-network/weblog/logger"
)

// LogRequest writes one info line per request to ls:
//
//	[request id] [ip address] METHOD /path?query
//
// The request id and IP address appear when RequestID and InjectIPAddress
// ran earlier in the chain. A "password" query value is masked.
//
// LogRequest is a NoopAdapter when ls is nil.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ls.Info(requestLine(r), nil)
			h.ServeHTTP(w, r)
		})
	}
}

func requestLine(r *http.Request) string {
	uri := r.URL.Path
	q := r.URL.Query()
	weblog.Mask(q, "password")
	if query := q.Encode(); query != "" {
		uri += "?" + query
	}

	var parts []string
	for _, key := range []weblog.Key{weblog.RequestIDKey, weblog.IpAddrKey} {
		if v, ok := r.Context().Value(key).(string); ok && v != "" {
			parts = append(parts, v)
		}
	}

	return strings.Join(append(parts, r.Method, uri), " ")
}
