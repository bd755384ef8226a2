package models

import "time"

// GradeRequest is a stored grade-correction request. AllName and Matricule
// are copied from the owner at submission time and never re-synced.
type GradeRequest struct {
	ID                    int64     `db:"request_id" json:"request_id"`
	UserID                int64     `db:"user_id" json:"user_id"`
	AllName               string    `db:"all_name" json:"all_name"`
	Matricule             string    `db:"matricule" json:"matricule"`
	Cycle                 string    `db:"cycle" json:"cycle"`
	Level                 int       `db:"level" json:"level"`
	CourseUnit            string    `db:"nom_code_ue" json:"nom_code_ue"`
	NoteExam              bool      `db:"note_exam" json:"note_exam"`
	NoteCC                bool      `db:"note_cc" json:"note_cc"`
	NoteTP                bool      `db:"note_tp" json:"note_tp"`
	NoteTPE               bool      `db:"note_tpe" json:"note_tpe"`
	Other                 bool      `db:"autre" json:"autre"`
	Comment               *string   `db:"comment" json:"comment,omitempty"`
	JustificationProvided bool      `db:"just_p" json:"just_p"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
}

// DisputedComponents lists the grade components flagged on the request.
func (r GradeRequest) DisputedComponents() []string {
	var out []string
	if r.NoteExam {
		out = append(out, "exam")
	}
	if r.NoteCC {
		out = append(out, "continuous assessment")
	}
	if r.NoteTP {
		out = append(out, "practical")
	}
	if r.NoteTPE {
		out = append(out, "practical exam")
	}
	if r.Other {
		out = append(out, "other")
	}
	return out
}

// CommentText returns the comment or an empty string.
func (r GradeRequest) CommentText() string {
	if r.Comment == nil {
		return ""
	}
	return *r.Comment
}

// SubmitRequest is the validated submission. AllName and Matricule come from
// the session, never from the form.
type SubmitRequest struct {
	AllName               string  `form:"all_name" validate:"max=255"`
	Matricule             string  `form:"matricule" validate:"max=15"`
	Cycle                 string  `form:"cycle" validate:"max=50"`
	Level                 int     `form:"level" validate:"min=0,max=32767"`
	CourseUnit            string  `form:"nom_code_ue" validate:"max=2048"`
	NoteExam              bool    `form:"note_exam"`
	NoteCC                bool    `form:"note_cc"`
	NoteTP                bool    `form:"note_tp"`
	NoteTPE               bool    `form:"note_tpe"`
	Other                 bool    `form:"autre"`
	Comment               *string `form:"comment" validate:"omitempty,max=5000"`
	JustificationProvided bool    `form:"just_p"`
	// State is the review flag. It defaults to false and is neither read from
	// clients nor persisted yet.
	State bool `form:"state"`
}
