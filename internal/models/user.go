package models

import "time"

// User is an account row: a login credential's local record. The identity
// fields are copied from the claimed person at signup and are not kept in
// sync with later person edits.
type User struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	PersonID            int64      `json:"person_id"`
	FirstName           string     `json:"first_name"`
	MiddleName          *string    `json:"middle_name"`
	LastName            *string    `json:"last_name"`
	BirthDate           string     `json:"birth_date"`
	BirthPlace          *string    `json:"birth_place"`
	Role                string     `json:"role"`
	FailedLoginAttempts int        `json:"-"`
	LockoutUntil        *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
}

const RoleAdmin = "admin"

// Session is the descriptor returned by signup and login. ExpiresAt is
// epoch milliseconds, computed locally rather than taken from the token.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}
