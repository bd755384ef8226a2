// Package validation holds the field rules applied to registration, login
// and grade-correction submissions before anything is persisted.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// whitespace is the Unicode whitespace set, so a no-break space inside a
// name counts as a space. RE2's \s and [:space:] are ASCII only.
const whitespace = `\t\n\v\f\r\x1c-\x1f\x{85}\p{Z}`

var (
	matriculePattern  = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	personNamePattern = regexp.MustCompile(`^[A-Za-zÀ-ÿ'\-` + whitespace + `]+$`)
	emailPattern      = regexp.MustCompile(`^[^@` + whitespace + `]+@[^@` + whitespace + `]+\.[^@` + whitespace + `]+$`)
	phonePattern      = regexp.MustCompile(`^[0-9]{9}$`)
)

var labels = map[string]string{
	"matricule":   "matricule",
	"name":        "first name",
	"last_name":   "last name",
	"email":       "email",
	"phone":       "phone",
	"password":    "password",
	"login":       "login",
	"all_name":    "full name",
	"cycle":       "cycle",
	"level":       "level",
	"nom_code_ue": "course unit",
	"comment":     "comment",
}

func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return strings.ReplaceAll(field, "_", " ")
}

// Validator applies the portal's struct tags. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	mustRegister(v, "matricule", matriculePattern)
	mustRegister(v, "personname", personNamePattern)
	mustRegister(v, "looseemail", emailPattern)
	mustRegister(v, "phone9", phonePattern)
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, pattern *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Struct validates s and returns Errors on failure.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe.Field(), fe.Tag(), fe.Param(), fe.Kind())})
	}
	return out
}

// Var validates a single value against tag and reports failures as field.
func (v *Validator) Var(field string, value interface{}, tag string) error {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return FieldError{Field: field, Message: message(field, fe.Tag(), fe.Param(), fe.Kind())}
}

func message(field, tag, param string, kind reflect.Kind) string {
	name := label(field)
	if field == "level" && (tag == "min" || tag == "max") {
		return "level must be an integer between 0 and 32767"
	}
	switch tag {
	case "required":
		return name + " is required"
	case "max":
		if kind == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", name, param)
		}
		return fmt.Sprintf("%s must be at most %s", name, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, param)
	case "matricule":
		return "matricule may only contain letters, digits, dots, hyphens and underscores"
	case "personname":
		return name + " may only contain letters, spaces, hyphens and apostrophes"
	case "looseemail":
		return "invalid email format"
	case "phone9":
		return "phone must contain exactly 9 digits"
	default:
		return name + " is invalid"
	}
}
