package weblog

import "errors"

// Sentinels wrapped with fmt.Errorf("%w: ...") throughout the weblog
// so callers can branch with errors.Is.
var (
	ErrBadAny         = errors.New("bad value passed in")
	ErrBadConfig      = errors.New("bad config")      // settings failed to load or validate
	ErrBadFormat      = errors.New("bad format")      // input could not be decoded
	ErrMissingData    = errors.New("missing data")    // a required value was empty
	ErrNotExist       = errors.New("not exist")       // no such record or file
	ErrNotImplemented = errors.New("not implemented") // unsupported type or driver
	ErrNotValid       = errors.New("invalid")
	ErrUnauthorized   = errors.New("unauthorized") // request lacks a logged in session
	ErrUnexpected     = errors.New("unexpected")
)
