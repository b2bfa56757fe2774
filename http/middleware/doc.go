/*
The middleware package defines what a middleware is in weblog and a set of basic middlewares.

The available middlewares are:
- AccessLog
- Idempotent
- InjectDB
- InjectIPAddress
- InjectSession
- LogRequest
- RateLimit
- ReportPanic
- RequestID
- RequireAuthed

Due to the amount of configuration required, middleware does not provide a default middleware chain
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.ReportPanic(env, log),
		middleware.RateLimit(vs),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.AccessLog(env, os.Stdout),
		middleware.LogRequest(log),
		middleware.InjectSession(sessionStore, log),
		middleware.InjectDB(pool, log),
	}
*/
package middleware
