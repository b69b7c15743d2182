package repositories

import (
	"database/sql"

	"github.com/chasonjia/familytree/internal/models"
)

type CredentialRepository struct {
	db *sql.DB
}

func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Create creates a new credential
func (r *CredentialRepository) Create(cred *models.Credential) error {
	query := `INSERT INTO credentials (id, email, password_hash) VALUES (?, ?, ?)`
	_, err := r.db.Exec(query, cred.ID, cred.Email, cred.PasswordHash)
	return err
}

// GetByEmail retrieves a credential by email
func (r *CredentialRepository) GetByEmail(email string) (*models.Credential, error) {
	query := `SELECT id, email, password_hash, created_at FROM credentials WHERE email = ?`

	cred := &models.Credential{}
	err := r.db.QueryRow(query, email).Scan(&cred.ID, &cred.Email, &cred.PasswordHash, &cred.CreatedAt)
	if err != nil {
		return nil, err
	}
	return cred, nil
}

// Delete deletes a credential by ID
func (r *CredentialRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM credentials WHERE id = ?`, id)
	return err
}
