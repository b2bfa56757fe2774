package template

import (
	"errors"
	html "html/template"
	"io/fs"
	"os"
	"path"
)

// ErrNoFiles is returned by Parse when given no file paths.
var ErrNoFiles = errors.New("no files provided")

// Parser is the interface for parsing HTML templates with the functions provided.
type Parser interface {
	AddFn(name string, fn any)
	Parse(fps ...string) (*html.Template, error)
}

// Parse implements Parser with a focus on utilizing embedded HTML templates through fs.FS.
type Parse struct {
	fs  fs.FS
	fns html.FuncMap
}

// NewParser constructs a Parse with the provided functional options.
//
// Templates are looked up first in the fs.FS set by WithFS,
// the working directory by default,
// then in the templates embedded in this package.
func NewParser(opts ...ParserOptFn) Parser {
	p := &Parse{fns: make(html.FuncMap)}
	for _, opt := range opts {
		opt(p)
	}

	userFS := p.fs
	if userFS == nil {
		userFS = os.DirFS(".")
	}

	p.fs = newMergeFS(userFS, pkgFS)

	return p
}

// Parse parses files found in the *Parse.fs with those functions provided previously.
// The returned template is named after the base of the first file.
func (p *Parse) Parse(fps ...string) (*html.Template, error) {
	files := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp != "" {
			files = append(files, fp)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	return html.New(path.Base(files[0])).Funcs(p.fns).ParseFS(p.fs, files...)
}
