package models

import (
	"time"

	"github.com/google/uuid"
)

// Credential is a login identity owned by the credential service. Account
// rows share its id.
type Credential struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NewCredential creates a credential with a generated UUID
func NewCredential(email, passwordHash string) *Credential {
	return &Credential{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
	}
}
