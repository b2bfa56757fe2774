package middleware

import (
	"fmt"
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/weblog"
	"github.com/xy-planning-network/weblog/logger"
)

// ReportPanic recovers from a panicking handler,
// logging the panic and responding with http.StatusInternalServerError.
//
// Outside the DEVELOPMENT environment, the panic is also reported to Sentry
// through sentryhttp before it is recovered.
func ReportPanic(env weblog.Environment, log logger.Logger) Adapter {
	return func(h http.Handler) http.Handler {
		handler := h
		if !env.IsDevelopment() {
			sh := sentryhttp.New(sentryhttp.Options{
				Repanic:         true,
				WaitForDelivery: true,
			})
			handler = sh.Handle(h)
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err := fmt.Errorf("%w: recovered from panic: %v", weblog.ErrUnexpected, rec)
				if log != nil {
					log.Error(err.Error(), &logger.LogContext{Request: r, Error: err})
				}

				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			handler.ServeHTTP(w, r)
		})
	}
}
