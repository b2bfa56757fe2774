package req

import (
	"errors"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
)

type validator struct {
	valid *v10.Validate
}

// newValidator constructs a validator reporting fields by their "schema" tag,
// so a ValidationError names the form key a client sent.
func newValidator() validator {
	v := v10.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("schema"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return validator{valid: v}
}

// validate checks structPtr against its "validate" struct tags,
// translating each broken rule into a ValidationError.
func (v validator) validate(structPtr any) error {
	err := v.valid.Struct(structPtr)

	var fieldErrs v10.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verrs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		verrs = append(verrs, ValidationError{
			Field: fieldPath(fe.Namespace()),
			Got:   fe.Value(),
			Rule:  rule(fe),
		})
	}

	return verrs
}

// fieldPath drops the struct's name from ns.
func fieldPath(ns string) string {
	if _, path, ok := strings.Cut(ns, "."); ok {
		return path
	}

	return ns
}

// rule formats the tag fe broke, with its parameter, and the type of the field,
// e.g. "gt=10; int64".
func rule(fe v10.FieldError) string {
	tag := fe.Tag()
	if fe.Param() != "" {
		tag += "=" + fe.Param()
	}

	return tag + "; " + fe.Type().String()
}
