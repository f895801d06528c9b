package unitgen

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"condohub/server/internal/models"
)

// maxLetterBlocks is the number of blocks that have a single-letter label.
const maxLetterBlocks = 26

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

// Validate checks that cfg can be expanded for condoID. It returns an
// *InvalidConfigurationError listing every rejected field.
func Validate(condoID string, cfg models.PropertyConfiguration) error {
	var fields []FieldError

	if strings.TrimSpace(condoID) == "" {
		fields = append(fields, FieldError{Field: "condo_id", Reason: "is required"})
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("failed to validate configuration: %w", err)
		}
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fieldPath(fe), Reason: reason(fe)})
		}
	}

	if cfg.NamingScheme.SchemeType == models.SchemeAnalyzeExisting && cfg.Blocks > maxLetterBlocks {
		fields = append(fields, FieldError{
			Field:  "blocks",
			Reason: fmt.Sprintf("must not exceed %d when scheme_type is %s", maxLetterBlocks, models.SchemeAnalyzeExisting),
		})
	}

	if len(fields) > 0 {
		return &InvalidConfigurationError{Fields: fields}
	}
	return nil
}

// fieldPath drops the root struct name from the namespace:
// "PropertyConfiguration.naming_scheme.scheme_type" -> "naming_scheme.scheme_type".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "required":
		return "is required"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
