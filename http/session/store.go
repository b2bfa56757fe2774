package session

import (
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/boj/redistore"
	gorilla "github.com/gorilla/sessions"
	"github.com/xy-planning-network/weblog"
)

// defaultRedisMaxAge bounds sessions kept in Redis when no max age is configured.
const defaultRedisMaxAge = 86400 // 1 day

// The SessionStorer defines methods for interacting with a Session for the given *http.Request.
type SessionStorer interface {
	GetSession(r *http.Request) (Session, error)
}

// A Service wraps a gorilla.Store to manage constructing a new one
// and accessing the sessions contained in it.
//
// Service implements SessionStorer.
type Service struct {
	// The authentication key.
	ak []byte

	// The encryption key.
	ek []byte

	// The name this Service's sessions are stored under.
	// Also used as the name of the cookie.
	sn string

	// The environment the Service is operating within.
	env weblog.Environment

	// The number of seconds a session is valid.
	// Zero lets a cookie live as long as the browser session.
	maxAge int

	// how the Service actually implements storing sessions.
	store gorilla.Store
}

// A Config provides the required values
type Config struct {
	Env weblog.Environment

	// The name sessions are stored under.
	// Also used as the name of the cookie.
	SessionName string

	// The secret sessions are signed with.
	SecretKey string

	// Hex-encoded key, 16, 24 or 32 bytes long, encrypting sessions.
	// Optional.
	EncryptKey string
}

func validateConfig(c Config) error {
	if err := c.Env.Valid(); err != nil {
		return fmt.Errorf("%w: Env %q", err, c.Env)
	}

	if c.SessionName == "" {
		return fmt.Errorf("%w: SessionName cannot be %q", weblog.ErrBadConfig, c.SessionName)
	}

	if c.SecretKey == "" {
		return fmt.Errorf("%w: SecretKey cannot be empty", weblog.ErrBadConfig)
	}

	return nil
}

// NewStoreService initiates a data store for web sessions
// with the provided config.
// If no backing storage is provided through a functional option -
// like WithRedis - NewStoreService stores sessions in signed cookies.
func NewStoreService(cfg Config, opts ...ServiceOpt) (Service, error) {
	var err error
	gob.Register(Flash{})

	if err := validateConfig(cfg); err != nil {
		return Service{}, fmt.Errorf("%w: %s", weblog.ErrBadConfig, err)
	}

	s := Service{
		ak:  []byte(cfg.SecretKey),
		env: cfg.Env,
		sn:  cfg.SessionName,
	}

	if cfg.EncryptKey != "" {
		s.ek, err = hex.DecodeString(cfg.EncryptKey)
		if err != nil {
			return Service{}, fmt.Errorf("%w: encryption key is not valid: %s", weblog.ErrBadConfig, err)
		}

		switch len(s.ek) {
		case 16, 24, 32:
		default:
			return Service{}, fmt.Errorf("%w: encryption key must be 16, 24 or 32 bytes, not %d", weblog.ErrBadConfig, len(s.ek))
		}
	}

	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return Service{}, fmt.Errorf("%w: %s", weblog.ErrBadConfig, err)
		}
	}

	if s.store == nil {
		if err := WithCookie()(&s); err != nil {
			return Service{}, fmt.Errorf("%w: %s", weblog.ErrBadConfig, err)
		}
	}

	return s, nil
}

// GetSession retrieves the Session for the *http.Request,
// or creates a brand new one.
//
// A session that fails verification is replaced by a brand new, anonymous one;
// the verification error is returned alongside it for logging.
func (s Service) GetSession(r *http.Request) (Session, error) {
	session, err := s.store.Get(r, s.sn)
	if err != nil {
		fresh := gorilla.NewSession(s.store, s.sn)
		opts := *s.options()
		fresh.Options = &opts
		fresh.IsNew = true
		return Session{s: fresh}, fmt.Errorf("%w: session discarded: %s", weblog.ErrNotValid, err)
	}

	return Session{s: session}, nil
}

// options returns the cookie options the backing store applies.
func (s Service) options() *gorilla.Options {
	switch st := s.store.(type) {
	case *gorilla.CookieStore:
		return st.Options
	case *redistore.RediStore:
		return st.Options
	default:
		return &gorilla.Options{Path: "/", MaxAge: s.maxAge}
	}
}

// keyPairs returns the keys sessions are signed, and perhaps encrypted, with.
func (s Service) keyPairs() [][]byte {
	if len(s.ek) == 0 {
		return [][]byte{s.ak}
	}

	return [][]byte{s.ak, s.ek}
}

// A ServiceOpt configures the provided *Service,
// returning an error if unable to.
type ServiceOpt func(*Service) error

// WithCookie configures the Service to back session storage with signed cookies.
func WithCookie() ServiceOpt {
	return func(s *Service) error {
		c := gorilla.NewCookieStore(s.keyPairs()...)
		c.Options.Secure = s.env.SecureCookies()
		c.Options.HttpOnly = true
		c.Options.SameSite = http.SameSiteLaxMode
		c.MaxAge(s.maxAge)
		s.store = c
		return nil
	}
}

// WithMaxAge sets the time-to-live of a session, in seconds.
//
// Call before other options so this value is available.
//
// Otherwise, cookies live as long as the browser session.
func WithMaxAge(secs int) ServiceOpt {
	return func(s *Service) error {
		if secs < 0 {
			return fmt.Errorf("max age cannot be negative: %d", secs)
		}

		s.maxAge = secs
		return nil
	}
}

// WithRedis configures the Service to back session storage with Redis.
// The cookie then carries only a signed session ID.
//
// Sessions in Redis always expire: after the configured max age or, lacking one, after a day.
//
// To authenticate to the Redis server, provide pass, otherwise its zero-value is acceptable.
func WithRedis(addr, pass string) ServiceOpt {
	return func(s *Service) error {
		r, err := redistore.NewRediStore(10, "tcp", addr, pass, s.keyPairs()...)
		if err != nil {
			return fmt.Errorf("failed initializing Redis: %s", err)
		}

		maxAge := s.maxAge
		if maxAge == 0 {
			maxAge = defaultRedisMaxAge
		}

		r.Options.Secure = s.env.SecureCookies()
		r.Options.HttpOnly = true
		r.Options.SameSite = http.SameSiteLaxMode
		r.SetMaxAge(maxAge)
		s.store = r
		return nil
	}
}
