package models

import "github.com/noah-isme/grade-request-portal/pkg/session"

// RegisterRequest holds the registration form after decoding and trimming.
type RegisterRequest struct {
	Matricule string `form:"matricule" validate:"max=15,matricule"`
	Name      string `form:"name" validate:"max=255,personname"`
	LastName  string `form:"last_name" validate:"max=255,personname"`
	Email     string `form:"email" validate:"max=255,looseemail"`
	Phone     string `form:"phone" validate:"phone9"`
	Password  string `form:"password" validate:"required"`
}

// LoginRequest holds credentials. Login accepts either an email or a matricule.
type LoginRequest struct {
	Login    string `form:"login" validate:"required"`
	Password string `form:"password" validate:"required"`
	IP       string `form:"-"`
}

// LoginResult carries the signed session token and the identity it encodes.
type LoginResult struct {
	Token   string
	Session session.Payload
}
