package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"condohub/server/internal/unitgen"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationDetails flattens validator errors into field/reason pairs keyed
// by JSON path, e.g. "units[2].resident_emails[0]".
func validationDetails(err error) []unitgen.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []unitgen.FieldError{{Field: "body", Reason: err.Error()}}
	}

	details := make([]unitgen.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		details = append(details, unitgen.FieldError{Field: field, Reason: reasonFor(fe)})
	}
	return details
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must contain at least " + fe.Param() + " item(s)"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
