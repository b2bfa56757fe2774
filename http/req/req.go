package req

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/weblog"
)

// A Parser decodes and validates request payloads.
type Parser struct {
	formDecoder formDecoder
	validator
}

// NewParser constructs a *Parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		formDecoder: newFormDecoder(),
		validator:   newValidator(),
	}
}

// ParseForm decodes into a pointer to a struct the form data in the *http.Request body.
// Query parameters are ignored.
// If successful, ParseForm runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseForm(r *http.Request, structPtr any) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("weblog/http/req: %w: failed reading request form: %s", weblog.ErrBadFormat, err)
	}

	return p.ParseValues(r.PostForm, structPtr)
}

// ParseValues decodes url.Values into a pointer to a struct.
// If successful, ParseValues runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseValues(vals url.Values, structPtr any) error {
	if err := p.formDecoder.decode(structPtr, vals); err != nil {
		return fmt.Errorf("weblog/http/req: failed decoding request values: %w", err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("weblog/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// IsInvalid reports whether err stems from a payload not matching its rules,
// as opposed to a misconfigured struct.
func IsInvalid(err error) bool {
	var verrs ValidationErrors
	return errors.As(err, &verrs) || errors.Is(err, weblog.ErrBadFormat)
}
