package services

import (
	"testing"

	"github.com/chasonjia/familytree/internal/apperrors"
	"github.com/chasonjia/familytree/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (*UserService, *repositories.PersonRepository) {
	db := newTestDB(t)
	personRepo := repositories.NewPersonRepository(db)
	return NewUserService(repositories.NewUserRepository(db), personRepo), personRepo
}

func TestCreateUserCopiesPersonFields(t *testing.T) {
	service, personRepo := newUserFixture(t)

	person := seedPerson(t, personRepo, "John", strPtr("Albert"), strPtr("Doe"), "1950-02-01")

	user, err := service.CreateUser("john@example.com", person.ID, "admin")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, person.ID, user.PersonID)
	assert.Equal(t, "John", user.FirstName)
	require.NotNil(t, user.MiddleName)
	assert.Equal(t, "Albert", *user.MiddleName)
	assert.Equal(t, "admin", user.Role)
}

func TestCreateUserDefaultsRoleFromPerson(t *testing.T) {
	service, personRepo := newUserFixture(t)

	person := seedPerson(t, personRepo, "John", nil, nil, "1950-02-01")

	user, err := service.CreateUser("john@example.com", person.ID, "")
	require.NoError(t, err)
	assert.Equal(t, person.Role, user.Role)
}

func TestCreateUserDuplicateEmailConflicts(t *testing.T) {
	service, personRepo := newUserFixture(t)

	first := seedPerson(t, personRepo, "John", nil, nil, "1950-02-01")
	second := seedPerson(t, personRepo, "Mary", nil, nil, "1960-05-05")

	_, err := service.CreateUser("shared@example.com", first.ID, "")
	require.NoError(t, err)

	_, err = service.CreateUser("shared@example.com", second.ID, "")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCreateUserValidation(t *testing.T) {
	service, personRepo := newUserFixture(t)
	person := seedPerson(t, personRepo, "John", nil, nil, "1950-02-01")

	_, err := service.CreateUser("", person.ID, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = service.CreateUser("a@x.com", 0, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = service.CreateUser("a@x.com", 9999, "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
