package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the struct validator used across services and handlers.
type Validator struct {
	validate *validator.Validate
}

// New creates the validator with the custom rules registered.
func New() *Validator {
	validate := validator.New()
	registerCustomRules(validate)
	return &Validator{validate: validate}
}

// Validate validates tagged fields of any struct.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func registerCustomRules(validate *validator.Validate) {
	// inventory_no: short uppercase token like "NB-2024-0042"
	_ = validate.RegisterValidation("inventory_no", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if len(value) < 3 || len(value) > 50 {
			return false
		}
		return value == strings.ToUpper(value)
	})
}

// ValidationError is one failed rule on one field.
type ValidationError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors aggregates all failed rules of one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Message
	}
	return strings.Join(msgs, "; ")
}

// HasErrors reports whether any rule failed.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// ToValidationErrors converts a go-playground validation error.
func ToValidationErrors(err error) ValidationErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Field: "", Rule: "", Message: err.Error()}}
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: fmt.Sprintf("field %s failed on rule %s", fe.Field(), fe.Tag()),
		})
	}
	return out
}
