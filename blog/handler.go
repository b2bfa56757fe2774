package blog

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/weblog"
	"github.com/xy-planning-network/weblog/http/req"
	"github.com/xy-planning-network/weblog/http/resp"
	"github.com/xy-planning-network/weblog/http/router"
	"github.com/xy-planning-network/weblog/showcase"
	"github.com/xy-planning-network/weblog/store"
)

const (
	catsTmpl    = "tmpl/cats.tmpl"
	entriesTmpl = "tmpl/show_entries.tmpl"
	loginTmpl   = "tmpl/login.tmpl"

	loggedInMsg  = "You were logged in"
	loggedOutMsg = "You were logged out"
	postedMsg    = "New entry was successfully posted"
)

// A Handler serves every route of a weblog.
type Handler struct {
	creds  Credentials
	d      *resp.Responder
	parser *req.Parser
	picker *showcase.Picker
}

// NewHandler constructs a *Handler.
//
// Requests reaching it need the session and store scope
// middleware.InjectSession and middleware.InjectDB put in their context.
func NewHandler(creds Credentials, d *resp.Responder, picker *showcase.Picker) *Handler {
	return &Handler{
		creds:  creds,
		d:      d,
		parser: req.NewParser(),
		picker: picker,
	}
}

// Register adds the weblog's routes to rt.
// Posting an entry goes through rt.AuthedRoutes.
func (h *Handler) Register(rt *router.Router) {
	rt.HandleRoutes([]router.Route{
		{Path: "/", Method: http.MethodGet, Handler: h.ListEntries},
		{Path: "/login", Method: http.MethodGet, Handler: h.LoginForm},
		{Path: "/login", Method: http.MethodPost, Handler: h.Login},
		{Path: "/logout", Method: http.MethodGet, Handler: h.Logout},
		{Path: "/cats", Method: http.MethodGet, Handler: h.Cats},
	})

	rt.AuthedRoutes([]router.Route{
		{Path: "/add", Method: http.MethodPost, Handler: h.AddEntry},
	})
}

type entriesData struct {
	Entries []weblog.Entry
}

// ListEntries renders every entry, newest first.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	db, err := h.db(r)
	if err != nil {
		h.d.Err(w, r, err)
		return
	}

	entries, err := db.ListEntries()
	if err != nil {
		h.d.Err(w, r, err)
		return
	}

	h.d.Html(w, r, resp.Layout(), resp.Tmpls(entriesTmpl), resp.Data(entriesData{Entries: entries}))
}

type entryForm struct {
	Title *string `schema:"title" validate:"required"`
	Text  *string `schema:"text" validate:"required"`
}

// AddEntry stores the posted entry and redirects to the list.
func (h *Handler) AddEntry(w http.ResponseWriter, r *http.Request) {
	var form entryForm
	if err := h.parser.ParseForm(r, &form); err != nil {
		h.badRequest(w, r, err)
		return
	}

	db, err := h.db(r)
	if err != nil {
		h.d.Err(w, r, err)
		return
	}

	if _, err := db.AddEntry(*form.Title, *form.Text); err != nil {
		h.d.Err(w, r, err)
		return
	}

	if err := h.d.Redirect(w, r, resp.Success(postedMsg)); err != nil {
		h.d.Err(w, r, err)
	}
}

type loginData struct {
	Error    string
	Username string
}

// LoginForm renders the login form.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.d.Html(w, r, resp.Layout(), resp.Tmpls(loginTmpl), resp.Data(loginData{}))
}

type loginForm struct {
	Username *string `schema:"username" validate:"required"`
	Password *string `schema:"password" validate:"required"`
}

// Login logs the session in when the posted credentials match,
// otherwise it renders the form again with the reason.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := h.parser.ParseForm(r, &form); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.creds.Check(*form.Username, *form.Password); err != nil {
		data := loginData{Error: checkMsg(err), Username: *form.Username}
		h.d.Html(w, r, resp.Layout(), resp.Tmpls(loginTmpl), resp.Data(data))
		return
	}

	s, err := h.d.Session(r.Context())
	if err != nil {
		h.d.Err(w, r, err)
		return
	}

	if err := s.LogIn(w, r); err != nil {
		h.d.Err(w, r, err)
		return
	}

	if err := h.d.Redirect(w, r, resp.Success(loggedInMsg)); err != nil {
		h.d.Err(w, r, err)
	}
}

// Logout returns the session to anonymous and redirects to the list.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	s, err := h.d.Session(r.Context())
	if err != nil {
		h.d.Err(w, r, err)
		return
	}

	if err := s.LogOut(w, r); err != nil {
		h.d.Err(w, r, err)
		return
	}

	if err := h.d.Redirect(w, r, resp.Success(loggedOutMsg)); err != nil {
		h.d.Err(w, r, err)
	}
}

type catsData struct {
	Cats []showcase.Cat
}

// Cats renders two different, randomly picked cats.
func (h *Handler) Cats(w http.ResponseWriter, r *http.Request) {
	cats, err := h.picker.Pick()
	if err != nil {
		h.d.Err(w, r, err)
		return
	}

	h.d.Html(w, r, resp.Layout(), resp.Tmpls(catsTmpl), resp.Data(catsData{Cats: cats[:]}))
}

// badRequest answers 400 to a payload missing fields,
// and 500 to anything else going wrong reading it.
func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var verrs req.ValidationErrors
	if errors.As(err, &verrs) {
		h.d.Err(w, r, err, resp.Code(http.StatusBadRequest), resp.Data(map[string]any{"fields": verrs.Fields()}))
		return
	}

	if req.IsInvalid(err) {
		h.d.Err(w, r, err, resp.Code(http.StatusBadRequest))
		return
	}

	h.d.Err(w, r, err)
}

// db retrieves the request's connection to the store.
func (h *Handler) db(r *http.Request) (*store.DB, error) {
	scope, err := store.ScopeFromContext(r.Context())
	if err != nil {
		return nil, fmt.Errorf("no store scope: %w", err)
	}

	return scope.DB()
}
