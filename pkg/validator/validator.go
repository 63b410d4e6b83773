package validator

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator"
)

var (
	global        *validator.Validate
	personNameRe  = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	groupNameRe   = regexp.MustCompile(`^[a-zA-Z0-9\s'&.-]+$`)
	simpleEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const (
	ErrFieldRequired      = "Field is required"
	ErrFieldExceedsMaxLen = "Field exceeds maximum length"
	ErrFieldBelowMinLen   = "Field is below minimum length"
	ErrInvalidChoice      = "Value is not one of the allowed options"
	ErrPersonName         = "Can only contain letters, spaces, hyphens, and apostrophes"
	ErrGroupName          = "Can only contain letters, numbers, spaces, and common punctuation"
	ErrEmail              = "Please enter a valid email address"
	ErrUnknownValidation  = "Unknown validation error"
)

func init() {
	SetValidator(New())
}

func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("person_name", validatePersonName)
	_ = v.RegisterValidation("group_name", validateGroupName)
	_ = v.RegisterValidation("simple_email", validateSimpleEmail)
	return v
}

func SetValidator(v *validator.Validate) {
	global = v
}

func Validator() *validator.Validate {
	return global
}

func validatePersonName(fl validator.FieldLevel) bool {
	return personNameRe.MatchString(fl.Field().String())
}

func validateGroupName(fl validator.FieldLevel) bool {
	return groupNameRe.MatchString(fl.Field().String())
}

// validateSimpleEmail matches the loose pattern the sign-up forms use, plus
// the dot placement rules the backend rejects anyway.
func validateSimpleEmail(fl validator.FieldLevel) bool {
	email := strings.TrimSpace(fl.Field().String())
	if len(email) > 254 {
		return false
	}
	if strings.Contains(email, "..") {
		return false
	}
	local := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local = email[:at]
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return false
	}
	return simpleEmailRe.MatchString(email)
}

func Validate(ctx context.Context, structure any) error {
	return parseValidationErrors(Validator().StructCtx(ctx, structure))
}

func parseValidationErrors(err error) error {
	if err == nil {
		return nil
	}
	vErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(vErrors) == 0 {
		return nil
	}
	ve := vErrors[0]
	var msg string
	switch ve.Tag() {
	case "required":
		msg = ErrFieldRequired
	case "max":
		msg = ErrFieldExceedsMaxLen
	case "min":
		msg = ErrFieldBelowMinLen
	case "oneof":
		msg = ErrInvalidChoice
	case "person_name":
		msg = ErrPersonName
	case "group_name":
		msg = ErrGroupName
	case "simple_email":
		msg = ErrEmail
	default:
		msg = ErrUnknownValidation
	}
	return errors.New(msg + ": " + ve.Namespace())
}
