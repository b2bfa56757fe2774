/*
Package router routes HTTP requests to the handlers of a weblog.

A [Router] wraps [mux.Router] and leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An implementation of [http.Handler] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

Routes share the middleware stack set with OnEveryRequest.
Routes registered through AuthedRoutes additionally refuse anonymous sessions,
then run the stack set with OnAuthedRequest.
Files in the static directory are served under [StaticPath].
*/
package router
