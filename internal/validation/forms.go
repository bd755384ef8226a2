package validation

import (
	"net/url"
	"sort"
	"strings"

	"github.com/noah-isme/grade-request-portal/internal/models"
)

var (
	registrationFields = fieldSet("matricule", "name", "last_name", "email", "phone", "password")
	loginFields        = fieldSet("login", "password")
	submissionFields   = fieldSet(
		"cycle", "level", "nom_code_ue",
		"note_exam", "note_cc", "note_tp", "note_tpe", "autre",
		"comment", "just_p",
	)
	// Read-only display inputs on the submission form. Their values are
	// always replaced by the session identity.
	submissionIgnored = fieldSet("all_name", "matricule")
)

func fieldSet(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

type formDecoder struct {
	form url.Values
	errs Errors
}

func newFormDecoder(form url.Values, allowed, ignored map[string]struct{}) *formDecoder {
	d := &formDecoder{form: form}
	unknown := make([]string, 0)
	for key := range form {
		if _, ok := allowed[key]; ok {
			continue
		}
		if _, ok := ignored[key]; ok {
			continue
		}
		unknown = append(unknown, key)
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		d.fail(key, "unknown field")
	}
	return d
}

func (d *formDecoder) fail(field, msg string) {
	d.errs = append(d.errs, FieldError{Field: field, Message: msg})
}

// raw returns the single value for key. ok is false when the key is absent
// or was sent more than once.
func (d *formDecoder) raw(key string) (string, bool) {
	vals, present := d.form[key]
	if !present || len(vals) == 0 {
		return "", false
	}
	if len(vals) > 1 {
		d.fail(key, label(key)+" must be sent once")
		return "", false
	}
	return vals[0], true
}

func (d *formDecoder) required(key string, trim bool) string {
	vals := d.form[key]
	if len(vals) > 1 {
		d.fail(key, label(key)+" must be sent once")
		return ""
	}
	v := ""
	if len(vals) == 1 {
		v = vals[0]
	}
	if trim {
		v = strings.TrimSpace(v)
	}
	if strings.TrimSpace(v) == "" {
		d.fail(key, label(key)+" is required")
	}
	return v
}

// present requires key to be sent but accepts a blank value, trimmed to "".
func (d *formDecoder) present(key string) string {
	if _, sent := d.form[key]; !sent {
		d.fail(key, label(key)+" is required")
		return ""
	}
	v, _ := d.raw(key)
	return strings.TrimSpace(v)
}

func (d *formDecoder) checkbox(key string) bool {
	v, ok := d.raw(key)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	case "", "off", "false", "0", "no":
		return false
	default:
		d.fail(key, label(key)+" must be a checkbox value")
		return false
	}
}

func (d *formDecoder) optional(key string) *string {
	v, ok := d.raw(key)
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func (d *formDecoder) err() error {
	if len(d.errs) == 0 {
		return nil
	}
	return d.errs
}

// DecodeRegistration extracts the registration form. Field rules are applied
// later by Struct; this step enforces the whitelist and presence.
func DecodeRegistration(form url.Values) (models.RegisterRequest, error) {
	d := newFormDecoder(form, registrationFields, nil)
	req := models.RegisterRequest{
		Matricule: d.required("matricule", true),
		Name:      d.required("name", true),
		LastName:  d.required("last_name", true),
		Email:     d.required("email", true),
		Phone:     d.required("phone", true),
		Password:  d.required("password", false),
	}
	return req, d.err()
}

// DecodeLogin extracts the login form. The password is kept verbatim.
func DecodeLogin(form url.Values) (models.LoginRequest, error) {
	d := newFormDecoder(form, loginFields, nil)
	req := models.LoginRequest{
		Login:    d.required("login", true),
		Password: d.required("password", false),
	}
	return req, d.err()
}

// DecodeSubmission extracts a grade-correction form. AllName and Matricule
// are left empty for the caller to fill from the session.
func DecodeSubmission(form url.Values) (models.SubmitRequest, error) {
	d := newFormDecoder(form, submissionFields, submissionIgnored)
	req := models.SubmitRequest{
		Cycle:                 d.present("cycle"),
		CourseUnit:            d.present("nom_code_ue"),
		NoteExam:              d.checkbox("note_exam"),
		NoteCC:                d.checkbox("note_cc"),
		NoteTP:                d.checkbox("note_tp"),
		NoteTPE:               d.checkbox("note_tpe"),
		Other:                 d.checkbox("autre"),
		Comment:               d.optional("comment"),
		JustificationProvided: d.checkbox("just_p"),
	}
	if raw := d.required("level", true); raw != "" {
		level, err := Level(raw)
		if err != nil {
			if fe, ok := err.(FieldError); ok {
				d.errs = append(d.errs, fe)
			} else {
				d.fail("level", err.Error())
			}
		}
		req.Level = level
	}
	return req, d.err()
}
