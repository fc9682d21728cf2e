package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kki/product-catalog/internal/core/domain"
)

// usernamePattern accepts Unicode letters and digits plus @ . + - _
var usernamePattern = regexp.MustCompile(`^[\p{L}\p{M}\p{N}_.@+-]+$`)

// formValidator wraps go-playground/validator so Echo can call c.Validate(form).
// Failures come back as domain.ValidationErrors keyed by the form field name.
type formValidator struct {
	v *validator.Validate
}

// NewValidator returns a formValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *formValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		_, err := parseInt(fl.Field().String())
		return err == nil || errors.Is(err, strconv.ErrRange)
	})
	_ = v.RegisterValidation("intmin", func(fl validator.FieldLevel) bool {
		n, _ := parseInt(fl.Field().String())
		bound, err := strconv.ParseInt(fl.Param(), 10, 64)
		return err == nil && n >= bound
	})
	_ = v.RegisterValidation("intmax", func(fl validator.FieldLevel) bool {
		n, _ := parseInt(fl.Field().String())
		bound, err := strconv.ParseInt(fl.Param(), 10, 64)
		return err == nil && n <= bound
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notnumeric", func(fl validator.FieldLevel) bool {
		_, err := strconv.ParseUint(fl.Field().String(), 10, 64)
		return err != nil
	})
	return &formValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (fv *formValidator) Validate(i any) error {
	if err := fv.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			errs := domain.ValidationErrors{}
			for _, fe := range ve {
				errs.Add(fe.Field(), fieldError(fe))
			}
			return errs
		}
		return err
	}
	return nil
}

// fieldError converts a single FieldError into the message shown under the field.
func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("This password is too short. It must contain at least %s characters.", fe.Param())
	case "integer":
		return "Enter a whole number."
	case "intmin":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "intmax":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "notnumeric":
		return "This password is entirely numeric."
	case "eqfield":
		return "The two password fields didn't match."
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}

// parseInt parses a base-10 integer. Out-of-range input yields the clamped
// int64 value together with strconv.ErrRange.
func parseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
