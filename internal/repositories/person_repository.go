package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/chasonjia/familytree/internal/models"
)

type PersonRepository struct {
	db *sql.DB
}

func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

const personColumns = `id, first_name, middle_name, last_name, birth_date, birth_place, story, role, created_at, updated_at`

func scanPerson(row interface{ Scan(...interface{}) error }) (*models.Person, error) {
	person := &models.Person{}
	err := row.Scan(
		&person.ID, &person.FirstName, &person.MiddleName, &person.LastName,
		&person.BirthDate, &person.BirthPlace, &person.Story, &person.Role,
		&person.CreatedAt, &person.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return person, nil
}

// Create creates a new person and fills in the generated ID
func (r *PersonRepository) Create(person *models.Person) error {
	query := `
		INSERT INTO people (
			first_name, middle_name, last_name, birth_date, birth_place, story, role
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if person.Role == "" {
		person.Role = "member"
	}

	result, err := r.db.Exec(query,
		person.FirstName, person.MiddleName, person.LastName,
		person.BirthDate, person.BirthPlace, person.Story, person.Role,
	)
	if err != nil {
		return err
	}

	person.ID, err = result.LastInsertId()
	return err
}

// GetByID retrieves a person by ID
func (r *PersonRepository) GetByID(id int64) (*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE id = ?`
	return scanPerson(r.db.QueryRow(query, id))
}

// GetAll retrieves all people ordered by first name
func (r *PersonRepository) GetAll() ([]*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people ORDER BY first_name ASC`
	return r.queryPeople(query)
}

// Search retrieves people whose name parts contain the term, case-insensitively
func (r *PersonRepository) Search(term string) ([]*models.Person, error) {
	query := `
		SELECT ` + personColumns + ` FROM people
		WHERE first_name LIKE ? COLLATE NOCASE
		   OR middle_name LIKE ? COLLATE NOCASE
		   OR last_name LIKE ? COLLATE NOCASE
		ORDER BY first_name ASC
	`

	pattern := "%" + term + "%"
	return r.queryPeople(query, pattern, pattern, pattern)
}

// GetByIDs retrieves the people with the given ids, keyed by id
func (r *PersonRepository) GetByIDs(ids []int64) (map[int64]*models.Person, error) {
	if len(ids) == 0 {
		return map[int64]*models.Person{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT %s FROM people WHERE id IN (%s)`,
		personColumns, strings.Join(placeholders, ", "))

	people, err := r.queryPeople(query, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*models.Person, len(people))
	for _, person := range people {
		byID[person.ID] = person
	}
	return byID, nil
}

// FindUnclaimedMatches finds people not yet referenced by any account whose
// first name matches case-insensitively and whose birth date matches exactly.
// An absent middle or last name only matches a stored NULL; a supplied one
// must match case-insensitively. At most two rows are returned so the caller
// can distinguish a unique match from an ambiguous one.
func (r *PersonRepository) FindUnclaimedMatches(firstName, birthDate string, middleName, lastName *string) ([]*models.Person, error) {
	query := `
		SELECT ` + personColumns + ` FROM people
		WHERE first_name = ? COLLATE NOCASE
		  AND birth_date = ?
		  AND NOT EXISTS (SELECT 1 FROM users WHERE users.person_id = people.id)
	`
	args := []interface{}{firstName, birthDate}

	if middleName != nil {
		query += ` AND middle_name = ? COLLATE NOCASE`
		args = append(args, *middleName)
	} else {
		query += ` AND middle_name IS NULL`
	}

	if lastName != nil {
		query += ` AND last_name = ? COLLATE NOCASE`
		args = append(args, *lastName)
	} else {
		query += ` AND last_name IS NULL`
	}

	query += ` LIMIT 2`
	return r.queryPeople(query, args...)
}

// GetUnclaimedByFirstName lists unclaimed people sharing a first name, used
// as a diagnostic echo when a signup match fails
func (r *PersonRepository) GetUnclaimedByFirstName(firstName string, limit int) ([]*models.Person, error) {
	query := `
		SELECT ` + personColumns + ` FROM people
		WHERE first_name = ? COLLATE NOCASE
		  AND NOT EXISTS (SELECT 1 FROM users WHERE users.person_id = people.id)
		ORDER BY birth_date ASC
		LIMIT ?
	`
	return r.queryPeople(query, firstName, limit)
}

// Update updates an existing person
func (r *PersonRepository) Update(person *models.Person) error {
	query := `
		UPDATE people SET
			first_name = ?, middle_name = ?, last_name = ?, birth_date = ?,
			birth_place = ?, role = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		person.FirstName, person.MiddleName, person.LastName, person.BirthDate,
		person.BirthPlace, person.Role, person.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// UpdateBirthPlace sets only the birth place of a person
func (r *PersonRepository) UpdateBirthPlace(id int64, birthPlace string) error {
	query := `UPDATE people SET birth_place = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	result, err := r.db.Exec(query, birthPlace, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// UpdateStory sets the life story text of a person
func (r *PersonRepository) UpdateStory(id int64, story string) error {
	query := `UPDATE people SET story = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	result, err := r.db.Exec(query, story, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// Delete deletes a person by ID
func (r *PersonRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM people WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *PersonRepository) queryPeople(query string, args ...interface{}) ([]*models.Person, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []*models.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, person)
	}

	return people, rows.Err()
}

// requireRowAffected maps a zero-row write to sql.ErrNoRows so callers can
// treat missing targets uniformly
func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
