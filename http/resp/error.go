package resp

import (
	"errors"

	"github.com/xy-planning-network/weblog"
)

var (
	ErrBadConfig   = weblog.ErrBadConfig
	ErrDone        = errors.New("request ctx done")
	ErrInvalid     = weblog.ErrNotValid
	ErrMissingData = weblog.ErrMissingData
	ErrNotFound    = weblog.ErrNotExist
)
