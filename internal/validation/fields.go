package validation

import (
	"strconv"
	"strings"
)

var std = New()

// Default returns the shared Validator.
func Default() *Validator { return std }

func checkString(field, raw, tag string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", FieldError{Field: field, Message: label(field) + " is required"}
	}
	if err := std.Var(field, v, tag); err != nil {
		return "", err
	}
	return v, nil
}

// Matricule normalises and checks a student identifier.
func Matricule(raw string) (string, error) {
	return checkString("matricule", raw, "max=15,matricule")
}

// PersonName checks a first or last name. field is used in the error.
func PersonName(field, raw string) (string, error) {
	return checkString(field, raw, "max=255,personname")
}

// Email checks the loose email shape accepted at registration.
func Email(raw string) (string, error) {
	return checkString("email", raw, "max=255,looseemail")
}

// Phone requires exactly nine ASCII digits.
func Phone(raw string) (string, error) {
	return checkString("phone", raw, "phone9")
}

// checkLength trims raw and applies tag only. Blank values are allowed.
func checkLength(field, raw, tag string) (string, error) {
	v := strings.TrimSpace(raw)
	if err := std.Var(field, v, tag); err != nil {
		return "", err
	}
	return v, nil
}

// Cycle trims the study cycle and caps it at 50 characters. It may be blank.
func Cycle(raw string) (string, error) {
	return checkLength("cycle", raw, "max=50")
}

// CourseUnit trims the course unit codes and caps them at 2048 characters. It may be blank.
func CourseUnit(raw string) (string, error) {
	return checkLength("nom_code_ue", raw, "max=2048")
}

// Level parses the academic level and checks the 0..32767 range.
func Level(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, FieldError{Field: "level", Message: message("level", "min", "0", 0)}
	}
	if err := std.Var("level", n, "min=0,max=32767"); err != nil {
		return 0, err
	}
	return n, nil
}

// Comment returns nil for a blank comment.
func Comment(raw string) (*string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil, nil
	}
	if err := std.Var("comment", v, "max=5000"); err != nil {
		return nil, err
	}
	return &v, nil
}
