package ranger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xy-planning-network/weblog"
	"github.com/xy-planning-network/weblog/blog"
	"github.com/xy-planning-network/weblog/config"
	"github.com/xy-planning-network/weblog/http/resp"
	"github.com/xy-planning-network/weblog/http/router"
	"github.com/xy-planning-network/weblog/http/session"
	"github.com/xy-planning-network/weblog/logger"
	"github.com/xy-planning-network/weblog/store"
)

const shutdownTimeout = 5 * time.Second

// A Ranger manages and exposes all components of a weblog to one another.
type Ranger struct {
	*resp.Responder
	*router.Router

	cfg      *config.Config
	ctx      context.Context
	l        logger.Logger
	pool     *store.Pool
	sessions session.SessionStorer
	srv      *http.Server
}

// New constructs a *Ranger serving a weblog configured by cfg.
// Options set components first; defaults built from cfg fill in the rest.
//
// New creates the entries table if it does not exist yet.
func New(cfg *config.Config, opts ...RangerOption) (*Ranger, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: no config", weblog.ErrBadConfig)
	}

	r := &Ranger{cfg: cfg}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("%w: %s", weblog.ErrBadConfig, err)
		}
	}

	if r.ctx == nil {
		r.ctx = context.Background()
	}

	if r.l == nil {
		r.l = defaultLogger(cfg)
	}

	// closePool releases a pool New opened itself when New fails.
	closePool := func() {}
	if r.pool == nil {
		pool, err := defaultPool(cfg)
		if err != nil {
			return nil, err
		}
		r.pool = pool
		closePool = func() { pool.Close() }
	}

	if err := r.pool.EnsureSchema(r.ctx); err != nil {
		closePool()
		return nil, fmt.Errorf("%w: %s", weblog.ErrBadConfig, err)
	}

	if r.sessions == nil {
		sessions, err := defaultSessionStore(cfg)
		if err != nil {
			closePool()
			return nil, err
		}
		r.sessions = sessions
	}

	r.Responder = defaultResponder(r.l, cfg, defaultParser(cfg))
	r.Router = defaultRouter(cfg, r.l, defaultMiddlewares(cfg, r.l, r.sessions, r.pool))

	creds := blog.Credentials{Username: cfg.Username, Password: cfg.Password}
	blog.NewHandler(creds, r.Responder, defaultPicker(cfg)).Register(r.Router)

	if r.srv == nil {
		r.srv = defaultServer(r.ctx, cfg)
	}
	r.srv.Handler = r.Router

	r.l.Debug(fmt.Sprintf("weblog configured for %s", cfg.Environment), nil)

	return r, nil
}

func (r *Ranger) EmitLogger() logger.Logger { return r.l }
func (r *Ranger) EmitPool() *store.Pool     { return r.pool }

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGQUIT
// - syscall.SIGTERM
// - cancelling the context.Context set by WithContext
func (r *Ranger) Guide() error {
	ctx, stop := signal.NotifyContext(r.ctx, os.Interrupt, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)

		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen: %w", err)
		}
	}()

	select {
	case err, ok := <-errCh:
		if !ok {
			return nil
		}

		r.l.Error(err.Error(), nil)
		if cerr := r.pool.Close(); cerr != nil {
			r.l.Error(fmt.Sprintf("could not close database: %s", cerr), nil)
		}

		return err

	case <-ctx.Done():
		r.l.Info("received shutdown signal", nil)
	}

	return r.Shutdown()
}

// Shutdown stops the web server, waiting on requests in flight,
// and closes the connections to the entry store.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if cerr := r.pool.Close(); cerr != nil {
		r.l.Error(fmt.Sprintf("could not close database: %s", cerr), nil)
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
