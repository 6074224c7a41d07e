package http

import (
	"math"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"loan-portal/internal/domain/application"
	"loan-portal/internal/domain/document"
	"loan-portal/internal/domain/loan"
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

// backend document names: letters, digits and a few separators
var reDocName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ._@-]{0,139}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report json names, not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("docname", func(fl validator.FieldLevel) bool {
		return reDocName.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(document.DateLayout, fl.Field().String())
		return err == nil
	})
	// max 2 decimal places
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-(math.Round(f*100)/100)) < 1e-9
	})
	_ = v.RegisterValidation("employment", func(fl validator.FieldLevel) bool {
		return application.EmploymentType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("appstatus", func(fl validator.FieldLevel) bool {
		return application.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("paymethod", func(fl validator.FieldLevel) bool {
		return loan.PaymentMethod(fl.Field().String()).Valid()
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "docname":
			out = append(out, FieldError{Field: field, Message: "must be a document name"})
		case "isodate":
			out = append(out, FieldError{Field: field, Message: "must be a date in YYYY-MM-DD format"})
		case "dec2":
			out = append(out, FieldError{Field: field, Message: "must have at most 2 decimal places"})
		case "employment":
			out = append(out, FieldError{Field: field, Message: "must be a known employment type"})
		case "appstatus":
			out = append(out, FieldError{Field: field, Message: "must be a known application status"})
		case "paymethod":
			out = append(out, FieldError{Field: field, Message: "must be a known payment method"})
		case "eq":
			out = append(out, FieldError{Field: field, Message: "must be " + e.Param()})
		case "eqfield":
			out = append(out, FieldError{Field: field, Message: "must match " + e.Param()})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must be at least " + e.Param() + " characters"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
