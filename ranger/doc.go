/*
Package ranger initializes and manages a weblog with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New] using a [*config.Config].
[New] connects to the entry store, creating its schema if need be,
and wires the session store, the templates, the middleware stack and the weblog's routes.

[*Ranger.Guide] begins the weblog's web server,
listening on the configured port (:3000 by default).

Stop that web server with [*Ranger.Shutdown],
cancel the context.Context passed to [WithContext],
or send a signal [*Ranger.Guide] listens for.

# Middleware

Every routed request passes through, in order:
  - [middleware.ReportPanic]
  - [middleware.RequestID]
  - [middleware.InjectIPAddress]
  - [middleware.AccessLog], outside the TESTING environment
  - [middleware.LogRequest]
  - [middleware.RateLimit], when RATE_LIMIT is true
  - [middleware.InjectSession]
  - [middleware.InjectDB]

Routes requiring a logged in session then pass through [middleware.RequireAuthed]
and [middleware.Idempotent], so a replayed response only ever reaches a logged in session.

Cf. package config for the settings a [Ranger] reads.
*/
package ranger
