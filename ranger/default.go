package ranger

import (
	"context"
	"net"
	"net/http"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/xy-planning-network/weblog/config"
	"github.com/xy-planning-network/weblog/http/middleware"
	"github.com/xy-planning-network/weblog/http/resp"
	"github.com/xy-planning-network/weblog/http/router"
	"github.com/xy-planning-network/weblog/http/session"
	"github.com/xy-planning-network/weblog/http/template"
	"github.com/xy-planning-network/weblog/logger"
	"github.com/xy-planning-network/weblog/showcase"
	"github.com/xy-planning-network/weblog/store"
)

const (
	// Default HTML template files
	defaultTmplDir    = "tmpl"
	defaultErrTmpl    = defaultTmplDir + "/error.tmpl"
	defaultLayoutTmpl = defaultTmplDir + "/layout.tmpl"

	// Showcase defaults
	catsDir = "cats"

	sessionName = "weblog"
)

// defaultLogger constructs a logger.Logger writing to os.Stdout at the configured level,
// forwarding errors to Sentry when a DSN is configured.
func defaultLogger(cfg *config.Config) logger.Logger {
	return logger.New(
		logger.WithEnv(cfg.Environment.String()),
		logger.WithLevel(logger.NewLogLevel(cfg.LogLevel)),
		logger.WithSentryDSN(cfg.SentryDSN),
	)
}

// defaultPool connects to the entry store named by DATABASE_URL.
func defaultPool(cfg *config.Config) (*store.Pool, error) {
	return store.Connect(&store.CxnConfig{
		URL:         cfg.Database,
		MaxIdleCxns: cfg.DatabaseMaxIdleCxns,
	}, cfg.Environment)
}

// defaultSessionStore constructs a session.SessionStorer keeping sessions in signed cookies
// or, when SESSION_REDIS_ADDR is set, in Redis.
func defaultSessionStore(cfg *config.Config) (session.SessionStorer, error) {
	sc := session.Config{
		Env:         cfg.Environment,
		SessionName: sessionName,
		SecretKey:   cfg.SecretKey,
		EncryptKey:  cfg.SessionEncryptionKey,
	}

	args := []session.ServiceOpt{session.WithMaxAge(cfg.SessionMaxAge)}
	if cfg.SessionRedisAddr != "" {
		args = append(args, session.WithRedis(cfg.SessionRedisAddr, cfg.SessionRedisPassword))
	}

	return session.NewStoreService(sc, args...)
}

// defaultParser constructs a template.Parser to be used
// when responding to HTTP requests with [*resp.Responder.Html].
//
// Templates in the working directory take precedence over the embedded ones.
func defaultParser(cfg *config.Config) template.Parser {
	return template.NewParser(
		template.WithFS(os.DirFS(".")),
		template.WithFn(template.Env(cfg.Environment)),
	)
}

// defaultResponder configures the [*resp.Responder] to be used by http.Handlers.
func defaultResponder(l logger.Logger, cfg *config.Config, p template.Parser) *resp.Responder {
	return resp.NewResponder(
		resp.WithErrTemplate(defaultErrTmpl),
		resp.WithLayoutTemplate(defaultLayoutTmpl),
		resp.WithLogger(l),
		resp.WithParser(p),
		resp.WithRootUrl(cfg.BaseURL),
	)
}

// defaultMiddlewares assembles the middleware.Adapter stack every routed request passes through.
// The router itself recovers panics ahead of this stack.
func defaultMiddlewares(
	cfg *config.Config,
	l logger.Logger,
	sessions session.SessionStorer,
	pool *store.Pool,
) []middleware.Adapter {
	var visitors *middleware.Visitors
	if cfg.RateLimit {
		visitors = middleware.NewVisitors()
	}

	return []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.AccessLog(cfg.Environment, os.Stdout),
		middleware.LogRequest(l),
		middleware.RateLimit(visitors),
		middleware.InjectSession(sessions, l),
		middleware.InjectDB(pool, l),
	}
}

// defaultIdempotencyCache caches idempotent responses in Redis when IDEMPOTENCY_REDIS_ADDR is set
// and in memory otherwise.
func defaultIdempotencyCache(cfg *config.Config) middleware.IdempotencyCacher {
	if cfg.IdempotencyRedisAddr == "" {
		return middleware.NewIdemResMap()
	}

	return middleware.NewRedisCache(&redis.Options{Addr: cfg.IdempotencyRedisAddr})
}

// defaultRouter constructs a [*router.Router] to be used by the web server.
func defaultRouter(cfg *config.Config, l logger.Logger, mws []middleware.Adapter) *router.Router {
	route := router.New(cfg.Environment, l, cfg.StaticDir)
	route.OnEveryRequest(mws...)
	route.OnAuthedRequest(middleware.Idempotent(defaultIdempotencyCache(cfg), nil))
	route.HandleNotFound(http.NotFound)

	return route
}

// defaultPicker constructs a *showcase.Picker over the cat images
// served under the static path.
func defaultPicker(cfg *config.Config) *showcase.Picker {
	return showcase.NewPicker(os.DirFS(cfg.StaticDir), catsDir, router.StaticPath+catsDir)
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context, cfg *config.Config) *http.Server {
	srv := &http.Server{
		Addr:         cfg.Address(),
		IdleTimeout:  cfg.ServerIdleTimeout,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
