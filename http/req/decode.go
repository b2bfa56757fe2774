package req

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/weblog"
)

type formDecoder struct {
	dec *schema.Decoder
}

func newFormDecoder() formDecoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return formDecoder{dec}
}

// decode fills structPtr with vals, translating any error.
func (d formDecoder) decode(structPtr any, vals url.Values) error {
	if v := reflect.ValueOf(structPtr); v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: expected pointer to struct, got %T", weblog.ErrBadAny, structPtr)
	}

	if err := d.dec.Decode(structPtr, vals); err != nil {
		return translateDecoderError(err)
	}

	return nil
}

// translateDecoderError converts an error returned by *schema.Decoder into standardized errors.
// Some *schema.Decoder errors are issues with calling code;
// some errors are unexpected issues;
// still some are issues with mismatches between a request's values and the expected shape.
func translateDecoderError(err error) error {
	var pkgErrs schema.MultiError
	if !errors.As(err, &pkgErrs) {
		return fmt.Errorf("%w: %s", weblog.ErrBadFormat, err)
	}

	var validErrs ValidationErrors
	for _, pkgErr := range pkgErrs {
		switch err := pkgErr.(type) {
		case schema.ConversionError:
			// NOTE: for non-slice values, err.Index is -1
			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				Got:   fmt.Sprintf("bad value at index %d", max(0, err.Index)),
				Rule:  "must be " + err.Type.String(),
			})

		case schema.EmptyFieldError:
			return fmt.Errorf(`%w: use validate tags to set "required" fields, not schema`, weblog.ErrNotImplemented)

		case schema.UnknownKeyError:
			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				Got:   "value is set",
				Rule:  "unexpected key should not be set",
			})

		default:
			// NOTE: a field without a registered converter
			// only fails once a value for it arrives.
			if strings.Contains(err.Error(), "schema: converter not found for") {
				return fmt.Errorf("%w: cannot convert values into unsupported type", weblog.ErrNotImplemented)
			}

			return fmt.Errorf("%w: %s", weblog.ErrUnexpected, err)
		}
	}

	return validErrs
}
