package models

import "time"

// Role is the access level assigned to a user.
type Role string

// Supported roles.
const (
	RoleAdmin      Role = "ADMIN"
	RoleAuthor     Role = "AUTHOR"
	RoleSubscriber Role = "SUBSCRIBER"
)

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAuthor, RoleSubscriber:
		return true
	}
	return false
}

// User represents a CMS user. Email doubles as the login identifier.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(100)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password  string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Role      Role      `json:"role" gorm:"type:varchar(20)"`
	Image     string    `json:"image" gorm:"type:varchar(500)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sanitized returns a copy of the user with the stored credential removed.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
