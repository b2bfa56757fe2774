package template

import (
	html "html/template"
	"net/url"

	"github.com/google/uuid"
	"github.com/xy-planning-network/weblog"
)

// The helpers below each return a name and a function,
// matching the arguments of AddFn and WithFn:
//
//	p.AddFn(template.Env(weblog.Development))

// AddFn makes fn callable as name in every template p parses afterwards.
// A later call with the same name replaces the earlier fn.
func (p *Parse) AddFn(name string, fn any) {
	if p.fns == nil {
		p.fns = make(html.FuncMap)
	}
	p.fns[name] = fn
}

// Env exposes e as "env".
func Env(e weblog.Environment) (string, func() string) {
	return "env", e.String
}

// Nonce exposes "nonce", producing a fresh UUID on each call.
func Nonce() (string, func() string) {
	return "nonce", uuid.NewString
}

// RootUrl exposes u as "rootUrl"; a nil u renders as "".
func RootUrl(u *url.URL) (string, func() string) {
	var s string
	if u != nil {
		s = u.String()
	}

	return "rootUrl", func() string { return s }
}

// Safe exposes "safe", which renders its argument as HTML without escaping.
// Entry text is passed through it, so only logged in authors can post.
func Safe() (string, func(string) html.HTML) {
	return "safe", func(s string) html.HTML { return html.HTML(s) }
}
