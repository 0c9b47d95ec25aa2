package http

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// public entity ids are 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return reHex32.MatchString(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// ToFieldErrors maps validator.ValidationErrors to readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: e.Field(), Message: "is required"})
		case "hex32":
			out = append(out, FieldError{Field: e.Field(), Message: "must be 32-char lowercase hex"})
		case "datetime":
			out = append(out, FieldError{Field: e.Field(), Message: "must be a date in YYYY-MM-DD form"})
		case "gt":
			out = append(out, FieldError{Field: e.Field(), Message: "must be greater than " + e.Param()})
		default:
			out = append(out, FieldError{Field: e.Field(), Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
