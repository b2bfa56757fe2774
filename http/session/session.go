package session

import (
	"net/http"

	gorilla "github.com/gorilla/sessions"
)

// loggedInKey marks a session as authenticated.
const loggedInKey = "logged_in"

// The Sessionable wraps methods for basic adding values to, deleting, and getting values from a session
// associated with an *http.Request and saving those to the session store.
type Sessionable interface {
	Delete(w http.ResponseWriter, r *http.Request) error
	Get(key string) any
	Save(w http.ResponseWriter, r *http.Request) error
	Set(w http.ResponseWriter, r *http.Request, key string, val any) error
}

// The AuthSessionable wraps moving a session between anonymous and authenticated.
type AuthSessionable interface {
	IsAuthenticated() bool
	LogIn(w http.ResponseWriter, r *http.Request) error
	LogOut(w http.ResponseWriter, r *http.Request) error
}

// The WeblogSessionable composes session's major interfaces.
type WeblogSessionable interface {
	AuthSessionable
	FlashSessionable
	Sessionable
}

var _ WeblogSessionable = Session{}

// A Session is the state a single client carries between requests:
// whether it is logged in and which flashes it has yet to see.
//
// Its functionality is implemented by lightly wrapping a gorilla.Session.
type Session struct {
	s *gorilla.Session
}

// NewSession constructs a Session from a *gorilla.Session.
func NewSession(g *gorilla.Session) Session { return Session{s: g} }

// Delete removes a session by making the MaxAge negative.
func (s Session) Delete(w http.ResponseWriter, r *http.Request) error {
	s.s.Options.MaxAge = -1
	return s.Save(w, r)
}

// Flashes retrieves []Flash stored in the session,
// removing them from it.
func (s Session) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	raw := s.s.Flashes()
	fs := make([]Flash, 0)
	for _, r := range raw {
		f, ok := r.(Flash)
		if !ok {
			continue
		}

		fs = append(fs, f)
	}
	if len(raw) > 0 {
		// NOTE: Flashes are removed after they are accessed,
		// but the session needs to be saved for them to be finally removed
		if err := s.Save(w, r); err != nil {
			return nil
		}
	}

	return fs
}

// Get retrieves a value from the session according to the key passed in.
func (s Session) Get(key string) any {
	return s.s.Values[key]
}

// IsAuthenticated asserts whether the session has logged in.
// A missing or malformed flag reads as anonymous.
func (s Session) IsAuthenticated() bool {
	loggedIn, ok := s.s.Values[loggedInKey].(bool)
	return ok && loggedIn
}

// LogIn marks the session as authenticated.
func (s Session) LogIn(w http.ResponseWriter, r *http.Request) error {
	return s.Set(w, r, loggedInKey, true)
}

// LogOut returns the session to anonymous.
// LogOut on an anonymous session is not an error.
func (s Session) LogOut(w http.ResponseWriter, r *http.Request) error {
	delete(s.s.Values, loggedInKey)
	return s.Save(w, r)
}

// Save wraps gorilla.Session.Save, saving the session in the request.
func (s Session) Save(w http.ResponseWriter, r *http.Request) error { return s.s.Save(r, w) }

// Set stores a value according to the key passed in on the session.
func (s Session) Set(w http.ResponseWriter, r *http.Request, key string, val any) error {
	s.s.Values[key] = val
	return s.Save(w, r)
}

// SetFlash stores the passed in Flash in the session.
func (s Session) SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error {
	s.s.AddFlash(flash)
	return s.Save(w, r)
}
