package session

import (
	"net/http"
)

// Classes a Flash renders with; the layout template styles each differently.
const (
	FlashError   = "error"
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashWarning = "warning"
)

// DefaultErrMsg is flashed when a failure has nothing better to say.
const DefaultErrMsg = "Uh oh! We've run into an issue."

// A FlashSessionable queues messages shown on the next rendered page.
type FlashSessionable interface {
	Flashes(w http.ResponseWriter, r *http.Request) []Flash
	SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error
}

// A Flash is a one-time message, consumed the first time a page lists it.
type Flash struct {
	Class string
	Msg   string
}
