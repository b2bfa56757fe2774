package req

import (
	"fmt"
	"slices"
	"strings"

	"github.com/xy-planning-network/weblog"
)

// A ValidationError names a form field whose value broke the rule set on it.
type ValidationError struct {
	Field string
	Got   any
	Rule  string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("field=%q rule=%q got=%q", e.Field, e.Rule, fmt.Sprint(e.Got))
}

// ValidationErrors collects every ValidationError found in one request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}

	return strings.Join(msgs, "\n")
}

// Fields lists the fields in v in the order found, each once.
func (v ValidationErrors) Fields() []string {
	var fields []string
	for _, err := range v {
		if !slices.Contains(fields, err.Field) {
			fields = append(fields, err.Field)
		}
	}

	return fields
}

func (ValidationErrors) Unwrap() error { return weblog.ErrNotValid }
