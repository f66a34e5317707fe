// Package validation checks entity payloads at the API and seed boundary.
// Rules live in `validate` struct tags on the models; each failing field
// contributes one FieldError to a multierror.
package validation

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

var (
	mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	strict        = bluemonday.StrictPolicy()
	validate      = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Money is compared as a float so gt=0 applies to decimals
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("inmobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("failed to register inmobile rule: %v", err))
	}

	// Optional contact fields may be present but blank
	v.RegisterAlias("optemail", "eq=|email")
	v.RegisterAlias("optmobile", "eq=|inmobile")

	return v
}

// FieldError describes one invalid field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Fields extracts the field errors carried by err, if any
func Fields(err error) []FieldError {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		var fe *FieldError
		if errors.As(err, &fe) {
			return []FieldError{*fe}
		}
		return nil
	}
	out := make([]FieldError, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		var fe *FieldError
		if errors.As(e, &fe) {
			out = append(out, *fe)
		}
	}
	return out
}

// IsValidationError reports whether err carries field errors
func IsValidationError(err error) bool {
	return len(Fields(err)) > 0
}

// Sanitize strips all markup from free text and trims surrounding space.
// Entities are decoded before the policy runs so encoded tags are stripped too,
// and the policy's own escapes for quotes and ampersands are undone afterwards.
func Sanitize(s string) string {
	clean := strict.Sanitize(html.UnescapeString(s))
	return strings.TrimSpace(plainText.Replace(clean))
}

// plainText reverses the escapes bluemonday applies to harmless characters.
// Angle brackets stay escaped.
var plainText = strings.NewReplacer(
	"&#39;", "'",
	"&#34;", `"`,
	"&quot;", `"`,
	"&amp;", "&",
)

// SanitizePtr sanitizes an optional string in place
func SanitizePtr(s *string) {
	if s != nil {
		*s = Sanitize(*s)
	}
}

// check runs the tag rules on v and converts failures into field errors
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate %T: %w", v, err)
	}
	var merr *multierror.Error
	for _, fe := range verrs {
		merr = multierror.Append(merr, &FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return merr.ErrorOrNil()
}

// fieldPath drops the struct name from the namespace, e.g. Tenant.additional_members[0].name
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			if fe.Param() == "1" {
				return "is required"
			}
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		case reflect.Slice:
			return fmt.Sprintf("at most %s entries allowed", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be positive"
	case "oneof":
		return fmt.Sprintf("invalid value %q", fmt.Sprint(fe.Value()))
	case "email", "optemail":
		return "invalid email address"
	case "inmobile", "optmobile":
		return "enter a valid Indian mobile number"
	}
	return "is invalid"
}
