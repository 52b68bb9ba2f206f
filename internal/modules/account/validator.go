package account

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var digitsRe = regexp.MustCompile(`^[0-9]+$`)

// FormValidator wraps go-playground/validator with the rules and messages
// used by the account forms.
type FormValidator struct {
	validator *validator.Validate
}

// NewValidator creates a FormValidator. It panics if a custom rule can not
// be registered.
func NewValidator() *FormValidator {
	v := validator.New()
	if err := v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsRe.MatchString(fl.Field().String())
	}); err != nil {
		panic("account: register digits rule: " + err.Error())
	}
	return &FormValidator{validator: v}
}

// Validate checks i and returns the failures keyed by form field name. The
// map is empty when i is valid.
func (fv *FormValidator) Validate(i interface{}) map[string]string {
	failures := map[string]string{}

	err := fv.validator.Struct(i)
	if err == nil {
		return failures
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		failures[""] = err.Error()
		return failures
	}

	for _, fe := range verrs {
		field := formFieldName(fe.StructField())
		if _, seen := failures[field]; seen {
			continue
		}
		failures[field] = fieldMessage(field, fe)
	}
	return failures
}

func formFieldName(structField string) string {
	switch structField {
	case "Email":
		return "email"
	case "MotDePasse":
		return "mot_de_passe"
	case "Identite":
		return "identite"
	case "Tel":
		return "tel"
	case "Position":
		return "position"
	case "CodeComptable":
		return "code_comptable"
	case "CodeEntreprise":
		return "code_entreprise"
	case "Role":
		return "role"
	default:
		return structField
	}
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch field {
	case "email":
		return "Invalid email address"
	case "mot_de_passe":
		if fe.Tag() == "min" {
			return "Password must contain at least 4 characters"
		}
		return "Password is required"
	case "tel":
		return "Phone number must contain exactly 8 digits"
	case "identite":
		return "Identity is required"
	case "position":
		return "Position is required"
	case "code_comptable":
		return "Accountant code is required"
	case "code_entreprise":
		return "Enterprise code is required"
	case "role":
		return "Choose an account type"
	default:
		return fe.Error()
	}
}
