package session_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/weblog"
	"github.com/xy-planning-network/weblog/http/session"
)

const testSessionName = "weblog-session-test"

func newTestService(t *testing.T, secret string, opts ...session.ServiceOpt) session.Service {
	t.Helper()

	svc, err := session.NewStoreService(session.Config{
		Env:         weblog.Testing,
		SessionName: testSessionName,
		SecretKey:   secret,
	}, opts...)
	require.Nil(t, err)

	return svc
}

// lastCookie returns the final session cookie written to w,
// the one a browser keeps.
func lastCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	var c *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == testSessionName {
			c = cookie
		}
	}
	require.NotNil(t, c)

	return c
}

func TestNewStoreService(t *testing.T) {
	for _, tc := range []struct {
		name string
		cfg  session.Config
		opts []session.ServiceOpt
	}{
		{"zero", session.Config{}, nil},
		{"bad-env", session.Config{Env: "LOCAL", SessionName: "s", SecretKey: "k"}, nil},
		{"no-name", session.Config{Env: weblog.Testing, SecretKey: "k"}, nil},
		{"no-secret", session.Config{Env: weblog.Testing, SessionName: "s"}, nil},
		{"not-hex", session.Config{Env: weblog.Testing, SessionName: "s", SecretKey: "k", EncryptKey: "ðŸ˜…"}, nil},
		{"short-key", session.Config{Env: weblog.Testing, SessionName: "s", SecretKey: "k", EncryptKey: "ABCD"}, nil},
		{"negative-max-age", session.Config{Env: weblog.Testing, SessionName: "s", SecretKey: "k"}, []session.ServiceOpt{session.WithMaxAge(-1)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			svc, err := session.NewStoreService(tc.cfg, tc.opts...)

			// Assert
			require.ErrorIs(t, err, weblog.ErrBadConfig)
			require.Zero(t, svc)
		})
	}

	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	svc, err := session.NewStoreService(session.Config{
		Env:         weblog.Testing,
		SessionName: testSessionName,
		SecretKey:   "development_key",
		EncryptKey:  "000102030405060708090a0b0c0d0e0f",
	})

	// Assert
	require.Nil(t, err)
	require.NotZero(t, svc)
	require.NotPanics(t, func() { svc.GetSession(r) })
}

func TestSessionLogInLogOut(t *testing.T) {
	// Arrange
	svc := newTestService(t, "development_key")
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	s, err := svc.GetSession(r)
	require.Nil(t, err)
	require.False(t, s.IsAuthenticated())

	// Act
	err = s.LogIn(w, r)

	// Assert
	require.Nil(t, err)
	require.True(t, s.IsAuthenticated())

	cookie := lastCookie(t, w)
	require.Zero(t, cookie.MaxAge)
	require.True(t, cookie.Expires.IsZero())
	require.True(t, cookie.HttpOnly)

	// Arrange
	r = httptest.NewRequest(http.MethodPost, "/add", nil)
	r.AddCookie(cookie)
	w = httptest.NewRecorder()

	// Act
	s, err = svc.GetSession(r)

	// Assert
	require.Nil(t, err)
	require.True(t, s.IsAuthenticated())

	// Act
	err = s.LogOut(w, r)

	// Assert
	require.Nil(t, err)
	require.False(t, s.IsAuthenticated())

	// Arrange
	cookie = lastCookie(t, w)
	r = httptest.NewRequest(http.MethodGet, "/logout", nil)
	r.AddCookie(cookie)
	w = httptest.NewRecorder()

	s, err = svc.GetSession(r)
	require.Nil(t, err)
	require.False(t, s.IsAuthenticated())

	// Act
	err = s.LogOut(w, r)

	// Assert
	require.Nil(t, err)
	require.False(t, s.IsAuthenticated())
}

func TestSessionUnverified(t *testing.T) {
	// Arrange
	svc := newTestService(t, "development_key")
	other := newTestService(t, "some_other_key")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s, err := other.GetSession(r)
	require.Nil(t, err)
	require.Nil(t, s.LogIn(w, r))
	forged := lastCookie(t, w)

	tampered := *forged
	tampered.Value = tampered.Value[:len(tampered.Value)-2] + "xx"

	for _, tc := range []struct {
		name   string
		cookie *http.Cookie
	}{
		{"other-secret", forged},
		{"tampered", &tampered},
		{"garbage", &http.Cookie{Name: testSessionName, Value: "logged_in=true"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodPost, "/add", nil)
			r.AddCookie(tc.cookie)
			w := httptest.NewRecorder()

			// Act
			s, err := svc.GetSession(r)

			// Assert
			require.ErrorIs(t, err, weblog.ErrNotValid)
			require.False(t, s.IsAuthenticated())
			require.Nil(t, s.SetFlash(w, r, session.Flash{Class: session.FlashInfo, Msg: "still usable"}))
		})
	}
}

func TestSessionFlashes(t *testing.T) {
	// Arrange
	svc := newTestService(t, "development_key")
	r := httptest.NewRequest(http.MethodGet, "/logout", nil)
	w := httptest.NewRecorder()

	s, err := svc.GetSession(r)
	require.Nil(t, err)
	require.Nil(t, s.SetFlash(w, r, session.Flash{Class: session.FlashSuccess, Msg: "first"}))
	require.Nil(t, s.SetFlash(w, r, session.Flash{Class: session.FlashSuccess, Msg: "second"}))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(lastCookie(t, w))
	w = httptest.NewRecorder()
	s, err = svc.GetSession(r)
	require.Nil(t, err)

	// Act
	flashes := s.Flashes(w, r)

	// Assert
	require.Equal(t, []session.Flash{
		{Class: session.FlashSuccess, Msg: "first"},
		{Class: session.FlashSuccess, Msg: "second"},
	}, flashes)

	// Arrange
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(lastCookie(t, w))
	w = httptest.NewRecorder()
	s, err = svc.GetSession(r)
	require.Nil(t, err)

	// Act
	flashes = s.Flashes(w, r)

	// Assert
	require.Empty(t, flashes)
}

func TestSessionMaxAge(t *testing.T) {
	// Arrange
	svc := newTestService(t, "development_key", session.WithMaxAge(60))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s, err := svc.GetSession(r)
	require.Nil(t, err)

	// Act
	err = s.LogIn(w, r)

	// Assert
	require.Nil(t, err)
	require.Equal(t, 60, lastCookie(t, w).MaxAge)
}

func TestSessionRedis(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	// Arrange
	svc := newTestService(t, "development_key", session.WithRedis(addr, os.Getenv("REDIS_TEST_PASSWORD")))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s, err := svc.GetSession(r)
	require.Nil(t, err)
	require.Nil(t, s.LogIn(w, r))

	cookie := lastCookie(t, w)
	require.NotContains(t, cookie.Value, "logged_in")
	require.Equal(t, 86400, cookie.MaxAge)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)

	// Act
	s, err = svc.GetSession(r)

	// Assert
	require.Nil(t, err)
	require.True(t, s.IsAuthenticated())
}
