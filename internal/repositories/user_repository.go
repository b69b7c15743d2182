package repositories

import (
	"database/sql"
	"time"

	"github.com/chasonjia/familytree/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, person_id, first_name, middle_name, last_name, birth_date, birth_place, role, failed_login_attempts, lockout_until, created_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.PersonID, &user.FirstName, &user.MiddleName,
		&user.LastName, &user.BirthDate, &user.BirthPlace, &user.Role,
		&user.FailedLoginAttempts, &user.LockoutUntil, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create creates a new account row
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (
			id, email, person_id, first_name, middle_name, last_name,
			birth_date, birth_place, role
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		user.ID, user.Email, user.PersonID, user.FirstName, user.MiddleName,
		user.LastName, user.BirthDate, user.BirthPlace, user.Role,
	)
	return err
}

// GetByID retrieves an account by ID
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(r.db.QueryRow(query, id))
}

// GetByEmail retrieves an account by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return scanUser(r.db.QueryRow(query, email))
}

// GetAll retrieves all accounts
func (r *UserRepository) GetAll() ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY email ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Update updates an account's mutable identity fields
func (r *UserRepository) Update(user *models.User) error {
	query := `
		UPDATE users SET
			email = ?, first_name = ?, middle_name = ?, last_name = ?,
			birth_date = ?, birth_place = ?, role = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		user.Email, user.FirstName, user.MiddleName, user.LastName,
		user.BirthDate, user.BirthPlace, user.Role, user.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// Delete deletes an account by ID
func (r *UserRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// IncrementFailedAttempts bumps the failed-login counter in a single
// statement and returns the new count. The increment happens in SQL so
// concurrent failures cannot under-count.
func (r *UserRepository) IncrementFailedAttempts(id string) (int, error) {
	query := `
		UPDATE users SET failed_login_attempts = failed_login_attempts + 1
		WHERE id = ?
		RETURNING failed_login_attempts
	`

	var attempts int
	err := r.db.QueryRow(query, id).Scan(&attempts)
	return attempts, err
}

// SetLockout sets the lockout expiry for an account
func (r *UserRepository) SetLockout(id string, until time.Time) error {
	_, err := r.db.Exec(`UPDATE users SET lockout_until = ? WHERE id = ?`, until, id)
	return err
}

// ResetLockout clears the failed-attempt counter and lockout expiry
func (r *UserRepository) ResetLockout(id string) error {
	_, err := r.db.Exec(`UPDATE users SET failed_login_attempts = 0, lockout_until = NULL WHERE id = ?`, id)
	return err
}
