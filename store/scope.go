package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xy-planning-network/weblog"
	"gorm.io/gorm"
)

// A Scope owns at most one connection for the lifetime of a single request.
//
// A Scope is not safe for concurrent use.
type Scope struct {
	ctx    context.Context
	pool   *Pool
	conn   *sql.Conn
	db     *DB
	closed bool
}

// ScopeFromContext retrieves the *Scope stashed in ctx.
func ScopeFromContext(ctx context.Context) (*Scope, error) {
	s, ok := ctx.Value(weblog.DBScopeKey).(*Scope)
	if !ok || s == nil {
		return nil, fmt.Errorf("%w: no *store.Scope in context", weblog.ErrNotExist)
	}

	return s, nil
}

// DB opens a connection on first use and returns a *DB bound to it.
// Later calls return the same *DB.
func (s *Scope) DB() (*DB, error) {
	if s.closed {
		return nil, fmt.Errorf("%w: scope already closed", weblog.ErrNotValid)
	}

	if s.db != nil {
		return s.db, nil
	}

	sqlDB, err := s.pool.db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", weblog.ErrUnexpected, err)
	}

	conn, err := sqlDB.Conn(s.ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", weblog.ErrUnexpected, err)
	}

	tx := s.pool.db.Session(&gorm.Session{NewDB: true, Context: s.ctx})
	tx.Statement.ConnPool = conn

	s.conn = conn
	s.db = &DB{db: tx}
	return s.db, nil
}

// Opened asserts whether the Scope has opened its connection.
func (s *Scope) Opened() bool { return s.conn != nil }

// Close releases the connection, if one was opened.
// Calls after the first do nothing.
func (s *Scope) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true
	if s.conn == nil {
		return nil
	}

	return s.conn.Close()
}
