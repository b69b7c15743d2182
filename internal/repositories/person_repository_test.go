package repositories

import (
	"database/sql"
	"testing"

	"github.com/chasonjia/familytree/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllOrdersByFirstName(t *testing.T) {
	db := newTestDB(t)
	repo := NewPersonRepository(db)

	seedPerson(t, repo, "Zoe", nil, nil, "1970-01-01")
	seedPerson(t, repo, "Adam", nil, nil, "1970-01-01")
	seedPerson(t, repo, "Mia", nil, nil, "1970-01-01")

	people, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, people, 3)
	assert.Equal(t, "Adam", people[0].FirstName)
	assert.Equal(t, "Mia", people[1].FirstName)
	assert.Equal(t, "Zoe", people[2].FirstName)
}

func TestSearchMatchesSubstringCaseInsensitively(t *testing.T) {
	db := newTestDB(t)
	repo := NewPersonRepository(db)

	seedPerson(t, repo, "Johnathan", nil, strPtr("Smith"), "1970-01-01")
	seedPerson(t, repo, "Mary", strPtr("John"), nil, "1970-01-01")
	seedPerson(t, repo, "Alice", nil, strPtr("Johnson"), "1970-01-01")
	seedPerson(t, repo, "Bob", nil, strPtr("Brown"), "1970-01-01")

	people, err := repo.Search("JOHN")
	require.NoError(t, err)
	require.Len(t, people, 3)

	// Ordered by first name.
	assert.Equal(t, "Alice", people[0].FirstName)
	assert.Equal(t, "Johnathan", people[1].FirstName)
	assert.Equal(t, "Mary", people[2].FirstName)
}

func TestGetByIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewPersonRepository(db)

	a := seedPerson(t, repo, "Adam", nil, nil, "1970-01-01")
	b := seedPerson(t, repo, "Mia", nil, nil, "1971-01-01")

	people, err := repo.GetByIDs([]int64{a.ID, b.ID, 9999})
	require.NoError(t, err)
	assert.Len(t, people, 2)
	assert.Equal(t, "Adam", people[a.ID].FirstName)
	assert.Equal(t, "Mia", people[b.ID].FirstName)

	empty, err := repo.GetByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFindUnclaimedMatchesExcludesClaimedPeople(t *testing.T) {
	db := newTestDB(t)
	repo := NewPersonRepository(db)
	userRepo := NewUserRepository(db)

	person := seedPerson(t, repo, "John", nil, strPtr("Doe"), "1950-02-01")

	matches, err := repo.FindUnclaimedMatches("john", "1950-02-01", nil, strPtr("doe"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, person.ID, matches[0].ID)

	require.NoError(t, userRepo.Create(&models.User{
		ID:        "u1",
		Email:     "john@example.com",
		PersonID:  person.ID,
		FirstName: "John",
		BirthDate: "1950-02-01",
		Role:      "member",
	}))

	matches, err = repo.FindUnclaimedMatches("john", "1950-02-01", nil, strPtr("doe"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindUnclaimedMatchesNullSemantics(t *testing.T) {
	db := newTestDB(t)
	repo := NewPersonRepository(db)

	// One person with a middle name, one without.
	withMiddle := seedPerson(t, repo, "John", strPtr("Albert"), strPtr("Doe"), "1950-02-01")
	withoutMiddle := seedPerson(t, repo, "John", nil, strPtr("Doe"), "1950-02-01")

	matches, err := repo.FindUnclaimedMatches("John", "1950-02-01", strPtr("Albert"), strPtr("Doe"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, withMiddle.ID, matches[0].ID)

	matches, err = repo.FindUnclaimedMatches("John", "1950-02-01", nil, strPtr("Doe"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, withoutMiddle.ID, matches[0].ID)
}

func TestGetUnclaimedByFirstNameLimits(t *testing.T) {
	db := newTestDB(t)
	repo := NewPersonRepository(db)

	for _, birthDate := range []string{"1950-01-01", "1951-01-01", "1952-01-01"} {
		seedPerson(t, repo, "John", nil, nil, birthDate)
	}

	candidates, err := repo.GetUnclaimedByFirstName("john", 2)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "1950-01-01", candidates[0].BirthDate)
}

func TestUpdateStoryAndBirthPlace(t *testing.T) {
	db := newTestDB(t)
	repo := NewPersonRepository(db)

	person := seedPerson(t, repo, "John", nil, nil, "1950-02-01")

	require.NoError(t, repo.UpdateStory(person.ID, "A long life."))
	require.NoError(t, repo.UpdateBirthPlace(person.ID, "Springfield"))

	updated, err := repo.GetByID(person.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Story)
	assert.Equal(t, "A long life.", *updated.Story)
	require.NotNil(t, updated.BirthPlace)
	assert.Equal(t, "Springfield", *updated.BirthPlace)
}

func TestWritesToMissingPersonReportNoRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewPersonRepository(db)

	assert.ErrorIs(t, repo.UpdateStory(42, "x"), sql.ErrNoRows)
	assert.ErrorIs(t, repo.Delete(42), sql.ErrNoRows)
	assert.ErrorIs(t, repo.Update(&models.Person{ID: 42, FirstName: "X", BirthDate: "1950-01-01"}), sql.ErrNoRows)
}
