package middleware

import (
	"net/http"
)

// An Adapter wraps an http.Handler with behavior run around it.
type Adapter func(http.Handler) http.Handler

// Chain wraps handler so a request passes through adapters in the order given,
// the first adapter seeing the request first.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	for i := len(adapters) - 1; i >= 0; i-- {
		if adapters[i] == nil {
			continue
		}
		handler = adapters[i](handler)
	}

	return handler
}

// NoopAdapter returns h as is.
// Constructors return it when missing a dependency they need.
func NoopAdapter(h http.Handler) http.Handler { return h }
