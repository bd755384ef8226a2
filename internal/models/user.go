package models

import "time"

// User represents a registered student stored in the users table.
type User struct {
	ID           int64     `db:"user_id" json:"user_id"`
	Matricule    string    `db:"matricule" json:"matricule"`
	Name         string    `db:"name" json:"name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	PasswordHash string    `db:"password" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return u.Name + " " + u.LastName
}
