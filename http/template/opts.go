package template

import "io/fs"

// A ParserOptFn configures a *Parse inside NewParser.
type ParserOptFn func(*Parse)

// WithFn adds fn to the function map under name; see AddFn.
func WithFn(name string, fn any) ParserOptFn {
	return func(p *Parse) { p.AddFn(name, fn) }
}

// WithFS replaces the working directory as the filesystem searched
// ahead of the embedded templates.
func WithFS(filesys fs.FS) ParserOptFn {
	return func(p *Parse) { p.fs = filesys }
}
