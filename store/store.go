package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/xy-planning-network/weblog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqliteParams are appended to every SQLite DSN.
const sqliteParams = "_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

// CxnConfig holds connection information used to connect to the entry store.
type CxnConfig struct {
	// URL is either a postgres:// URL or the path to a SQLite file.
	URL string

	// MaxIdleCxns is the number of released connections kept open for reuse.
	// Zero closes every connection once its request finishes.
	MaxIdleCxns int
}

// A Pool hands out request-scoped connections to the entry store.
type Pool struct {
	db *gorm.DB
}

// Connect opens the entry store described by cfg.
//
// Connect does not create the schema; see [*Pool.EnsureSchema] and [*Pool.Initialize].
func Connect(cfg *CxnConfig, env weblog.Environment) (*Pool, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("%w: no database URL", weblog.ErrBadConfig)
	}

	// https://gorm.io/docs/logger.html
	c := logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  env.IsDevelopment(),
	}

	db, err := gorm.Open(dialector(cfg.URL), &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), c),
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Microsecond)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", weblog.ErrBadConfig, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", weblog.ErrUnexpected, err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleCxns)

	return NewPool(db), nil
}

// NewPool constructs a *Pool from an already opened *gorm.DB.
func NewPool(db *gorm.DB) *Pool { return &Pool{db: db} }

// Close closes every connection the Pool holds.
func (p *Pool) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// DB returns a *DB drawing on the whole Pool,
// for work happening outside of a request.
func (p *Pool) DB(ctx context.Context) *DB {
	return &DB{db: p.db.Session(&gorm.Session{NewDB: true, Context: ctx})}
}

// EnsureSchema creates the entries table if it does not yet exist.
// Existing entries are left alone.
func (p *Pool) EnsureSchema(ctx context.Context) error {
	db := p.db.WithContext(ctx)
	if db.Migrator().HasTable(&entryRow{}) {
		return nil
	}

	return migrateUp(db, []Migration{createEntries})
}

// Initialize drops and recreates the entries table,
// discarding every entry.
func (p *Pool) Initialize(ctx context.Context) error {
	return migrateUp(p.db.WithContext(ctx), []Migration{dropEntries, createEntries})
}

// NewScope constructs a *Scope whose connection, once opened, lives as long as ctx.
func (p *Pool) NewScope(ctx context.Context) *Scope {
	return &Scope{ctx: ctx, pool: p}
}

// Stats reports on the connections the Pool holds.
func (p *Pool) Stats() sql.DBStats {
	sqlDB, err := p.db.DB()
	if err != nil {
		return sql.DBStats{}
	}

	return sqlDB.Stats()
}

func dialector(url string) gorm.Dialector {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return postgres.Open(url)
	}

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}

	return sqlite.Open(url + sep + sqliteParams)
}
