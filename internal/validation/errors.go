package validation

import "strings"

// FieldError describes a rejected form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors is an ordered list of field failures. Order follows the form
// definition, unknown fields first.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// First returns the first failure, or a zero FieldError when empty.
func (e Errors) First() FieldError {
	if len(e) == 0 {
		return FieldError{}
	}
	return e[0]
}

// ByField maps each field to its first message, for form re-rendering.
func (e Errors) ByField() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		if _, seen := out[fe.Field]; !seen {
			out[fe.Field] = fe.Message
		}
	}
	return out
}
