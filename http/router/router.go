package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/weblog"
	"github.com/xy-planning-network/weblog/http/middleware"
	"github.com/xy-planning-network/weblog/logger"
)

// StaticPath is the URL prefix files from the static directory are served under.
const StaticPath = "/static/"

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests for resources to their handlers in a weblog app.
type Router struct {
	Env           weblog.Environment
	authedStack   []middleware.Adapter
	everyReqStack []middleware.Adapter
	logger        logger.Logger
	r             *mux.Router
}

// New constructs a [*Router] for the given environment,
// serving the files in staticDir under StaticPath.
//
// If staticDir is empty, no files are served.
func New(env weblog.Environment, log logger.Logger, staticDir string) *Router {
	r := mux.NewRouter()

	if staticDir != "" {
		r.PathPrefix(StaticPath).Handler(middleware.Chain(
			http.StripPrefix(StaticPath, http.FileServer(http.Dir(staticDir))),
			cacheControlMiddleware(),
			middleware.LogRequest(log),
		)).Methods(http.MethodGet, http.MethodHead)
	}

	return &Router{Env: env, logger: log, r: r}
}

// AuthedRoutes registers the set of Routes as those requiring a logged in session.
// AuthedRoutes applies the given middlewares before performing that check,
// using middleware.RequireAuthed, and the OnAuthedRequest stack after it.
func (r *Router) AuthedRoutes(routes []Route, middlewares ...middleware.Adapter) {
	mws := append([]middleware.Adapter(nil), middlewares...)
	mws = append(mws, middleware.RequireAuthed(r.logger))
	mws = append(mws, r.authedStack...)
	r.HandleRoutes(routes, mws...)
}

// OnAuthedRequest appends the middlewares to the stack run by AuthedRoutes
// once a request is known to come from a logged in session.
//
// Only routes registered afterwards include them.
func (r *Router) OnAuthedRequest(middlewares ...middleware.Adapter) {
	r.authedStack = append(r.authedStack, middlewares...)
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(
		handler,
		middleware.ReportPanic(r.Env, r.logger),
		middleware.LogRequest(r.logger),
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := []middleware.Adapter{middleware.ReportPanic(r.Env, r.logger)}
		mws = append(mws, r.everyReqStack...)
		mws = append(mws, middlewares...)
		mws = append(mws, route.Middlewares...)
		handler := middleware.Chain(route.Handler, mws...)
		r.r.Handle(route.Path, handler).Methods(route.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
//
// Only routes registered afterwards include them.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// cacheControlMiddleware helps by adding a "Cache-Control" header to the response.
func cacheControlMiddleware() middleware.Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "max-age=2592000") // 30 days
			handler.ServeHTTP(w, r)
		})
	}
}
