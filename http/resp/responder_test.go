package resp_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/weblog"
	"github.com/xy-planning-network/weblog/http/resp"
	"github.com/xy-planning-network/weblog/http/session"
	"github.com/xy-planning-network/weblog/http/template"
	"github.com/xy-planning-network/weblog/logger"
)

const (
	testLayout  = "tmpl/layout.tmpl"
	testErr     = "tmpl/error.tmpl"
	testContent = "tmpl/content.tmpl"
)

var testFS = fstest.MapFS{
	testLayout: &fstest.MapFile{
		Data: []byte(`{{ range .Flashes }}[{{ .Class }}:{{ .Msg }}]{{ end }}{{ if .LoggedIn }}in{{ else }}out{{ end }}|{{ template "content" . }}`),
	},
	testErr: &fstest.MapFile{
		Data: []byte(`{{ define "content" }}oops: {{ .Data.Msg }}{{ end }}`),
	},
	testContent: &fstest.MapFile{
		Data: []byte(`{{ define "content" }}{{ .Data }}{{ end }}`),
	},
	"tmpl/broken.tmpl": &fstest.MapFile{
		Data: []byte(`{{ define "content" }}{{ .Data.Missing }}{{ end }}`),
	},
}

type testHarness struct {
	d   *resp.Responder
	svc session.Service
	log *bytes.Buffer
}

func newHarness(t *testing.T, opts ...resp.ResponderOptFn) testHarness {
	t.Helper()

	svc, err := session.NewStoreService(session.Config{
		Env:         weblog.Testing,
		SessionName: "resp-test",
		SecretKey:   "resp-test-secret",
	})
	require.Nil(t, err)

	b := new(bytes.Buffer)
	l := logger.New(
		logger.WithLogger(log.New(b, "", 0)),
		logger.WithSentryDSN(""),
	)

	opts = append([]resp.ResponderOptFn{
		resp.WithLogger(l),
		resp.WithParser(template.NewParser(template.WithFS(testFS))),
		resp.WithLayoutTemplate(testLayout),
		resp.WithErrTemplate(testErr),
	}, opts...)

	return testHarness{d: resp.NewResponder(opts...), svc: svc, log: b}
}

// request builds a request carrying a session,
// replaying any cookies set on prior.
func (h testHarness) request(t *testing.T, method string, prior *httptest.ResponseRecorder) *http.Request {
	t.Helper()

	r := httptest.NewRequest(method, "/", nil)
	if prior != nil {
		for _, c := range prior.Result().Cookies() {
			r.AddCookie(c)
		}
	}

	s, err := h.svc.GetSession(r)
	require.Nil(t, err)

	return r.WithContext(context.WithValue(r.Context(), weblog.SessionKey, s))
}

func TestResponderHtml(t *testing.T) {
	// Arrange
	h := newHarness(t)
	w := httptest.NewRecorder()
	r := h.request(t, http.MethodGet, nil)

	// Act
	err := h.d.Html(w, r, resp.Layout(), resp.Tmpls(testContent), resp.Data("<b>hi</b>"))

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	require.Equal(t, "out|&lt;b&gt;hi&lt;/b&gt;", w.Body.String())
}

func TestResponderHtmlCode(t *testing.T) {
	// Arrange
	h := newHarness(t)
	w := httptest.NewRecorder()
	r := h.request(t, http.MethodGet, nil)

	// Act
	err := h.d.Html(w, r, resp.Code(http.StatusBadRequest), resp.Layout(), resp.Tmpls(testContent))

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResponderHtmlFlashesOnce(t *testing.T) {
	// Arrange
	h := newHarness(t)
	w := httptest.NewRecorder()
	r := h.request(t, http.MethodPost, nil)
	require.Nil(t, h.d.Redirect(w, r, resp.Success("saved")))

	// Act
	first := httptest.NewRecorder()
	require.Nil(t, h.d.Html(first, h.request(t, http.MethodGet, w), resp.Layout(), resp.Tmpls(testContent)))

	second := httptest.NewRecorder()
	require.Nil(t, h.d.Html(second, h.request(t, http.MethodGet, first), resp.Layout(), resp.Tmpls(testContent)))

	// Assert
	require.Equal(t, "[success:saved]out|", first.Body.String())
	require.Equal(t, "out|", second.Body.String())
}

func TestResponderHtmlLoggedIn(t *testing.T) {
	// Arrange
	h := newHarness(t)
	w := httptest.NewRecorder()
	r := h.request(t, http.MethodPost, nil)
	s, err := h.d.Session(r.Context())
	require.Nil(t, err)
	require.Nil(t, s.LogIn(w, r))

	// Act
	next := httptest.NewRecorder()
	err = h.d.Html(next, h.request(t, http.MethodGet, w), resp.Layout(), resp.Tmpls(testContent))

	// Assert
	require.Nil(t, err)
	require.Equal(t, "in|", next.Body.String())
}

func TestResponderHtmlNoSession(t *testing.T) {
	// Arrange
	h := newHarness(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	// Act
	err := h.d.Html(w, r, resp.Layout(), resp.Tmpls(testContent), resp.Data("x"))

	// Assert
	require.Nil(t, err)
	require.Equal(t, "out|x", w.Body.String())
}

func TestResponderHtmlErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts []resp.Fn
	}{
		{"no-tmpls", nil},
		{"missing-file", []resp.Fn{resp.Layout(), resp.Tmpls("tmpl/nope.tmpl")}},
		{"exec-fails", []resp.Fn{resp.Layout(), resp.Tmpls("tmpl/broken.tmpl"), resp.Data("not a struct")}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			h := newHarness(t, resp.WithContactErrMsg("call us"))
			w := httptest.NewRecorder()
			r := h.request(t, http.MethodGet, nil)

			// Act
			err := h.d.Html(w, r, tc.opts...)

			// Assert
			require.NotNil(t, err)
			require.Equal(t, http.StatusInternalServerError, w.Code)
			require.Equal(t, "out|oops: call us", w.Body.String())
			require.Contains(t, h.log.String(), "[ERROR]")
		})
	}
}

func TestResponderHtmlNoErrTemplate(t *testing.T) {
	// Arrange
	h := newHarness(t, resp.WithErrTemplate(""))
	w := httptest.NewRecorder()
	r := h.request(t, http.MethodGet, nil)

	// Act
	err := h.d.Html(w, r, resp.Layout(), resp.Tmpls("tmpl/nope.tmpl"))

	// Assert
	require.ErrorIs(t, err, resp.ErrBadConfig)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestResponderErr(t *testing.T) {
	for _, tc := range []struct {
		name     string
		opts     []resp.Fn
		expected int
	}{
		{"default", nil, http.StatusInternalServerError},
		{"code", []resp.Fn{resp.Code(http.StatusUnauthorized)}, http.StatusUnauthorized},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			h := newHarness(t)
			w := httptest.NewRecorder()
			r := h.request(t, http.MethodGet, nil)

			// Act
			h.d.Err(w, r, errors.New("disk on fire"), tc.opts...)

			// Assert
			require.Equal(t, tc.expected, w.Code)
			require.Equal(t, http.StatusText(tc.expected)+"\n", w.Body.String())
			require.NotContains(t, w.Body.String(), "disk on fire")
			require.Contains(t, h.log.String(), "disk on fire")
		})
	}
}

func TestResponderRedirect(t *testing.T) {
	for _, tc := range []struct {
		name     string
		opts     []resp.Fn
		code     int
		location string
	}{
		{"root", nil, http.StatusFound, "/"},
		{"url", []resp.Fn{resp.Url("/login")}, http.StatusFound, "/login"},
		{"param", []resp.Fn{resp.Url("/login"), resp.Param("next", "/add")}, http.StatusFound, "/login?next=%2Fadd"},
		{"4xx", []resp.Fn{resp.Code(http.StatusUnauthorized)}, http.StatusSeeOther, "/"},
		{"5xx", []resp.Fn{resp.Code(http.StatusInternalServerError)}, http.StatusTemporaryRedirect, "/"},
		{"3xx", []resp.Fn{resp.Code(http.StatusMovedPermanently)}, http.StatusMovedPermanently, "/"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			h := newHarness(t, resp.WithRootUrl("http://example.com/"))
			w := httptest.NewRecorder()
			r := h.request(t, http.MethodGet, nil)

			// Act
			err := h.d.Redirect(w, r, tc.opts...)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.location, w.Header().Get("Location"))
		})
	}
}

func TestResponderRedirectBadUrl(t *testing.T) {
	// Arrange
	h := newHarness(t)
	w := httptest.NewRecorder()
	r := h.request(t, http.MethodGet, nil)

	// Act
	err := h.d.Redirect(w, r, resp.Url("not a url"))

	// Assert
	require.ErrorIs(t, err, resp.ErrInvalid)
}

func TestResponderRedirectFlashNeedsSession(t *testing.T) {
	// Arrange
	h := newHarness(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	// Act
	err := h.d.Redirect(w, r, resp.Success("saved"))

	// Assert
	require.ErrorIs(t, err, resp.ErrNotFound)
}

func TestResponderSession(t *testing.T) {
	// Arrange
	h := newHarness(t)
	ctx := context.WithValue(context.Background(), weblog.SessionKey, "not a session")

	// Act
	_, missing := h.d.Session(context.Background())
	_, invalid := h.d.Session(ctx)

	// Assert
	require.ErrorIs(t, missing, resp.ErrNotFound)
	require.ErrorIs(t, invalid, resp.ErrInvalid)
}

func TestResponderDone(t *testing.T) {
	// Arrange
	h := newHarness(t)
	w := httptest.NewRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

	// Act
	err := h.d.Redirect(w, r)

	// Assert
	require.ErrorIs(t, err, resp.ErrDone)
}
