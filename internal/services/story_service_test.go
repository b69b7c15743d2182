package services

import (
	"testing"

	"github.com/chasonjia/familytree/internal/models"
	"github.com/chasonjia/familytree/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoryFixture(t *testing.T) (*StoryService, *repositories.PersonRepository) {
	db := newTestDB(t)
	personRepo := repositories.NewPersonRepository(db)
	return NewStoryService(personRepo), personRepo
}

func seedPerson(t *testing.T, repo *repositories.PersonRepository, first string, middle, last *string, birthDate string) *models.Person {
	t.Helper()
	person := &models.Person{
		FirstName:  first,
		MiddleName: middle,
		LastName:   last,
		BirthDate:  birthDate,
	}
	require.NoError(t, repo.Create(person))
	return person
}

func strPtr(s string) *string { return &s }

func TestRenderPlainTextIsEscapedOnce(t *testing.T) {
	service, _ := newStoryFixture(t)

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "No markup characters",
			input:    "Born in a small village.",
			expected: "Born in a small village.",
		},
		{
			name:     "Reserved characters escaped exactly once",
			input:    "Fish & chips <for> dinner",
			expected: "Fish &amp; chips &lt;for&gt; dinner",
		},
		{
			name:     "Ampersand already followed by entity-like text",
			input:    "a &amp; b",
			expected: "a &amp;amp; b",
		},
		{
			name:     "Empty story",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			html, err := service.Render(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, html)
		})
	}
}

func TestRenderResolvesPersonMarkers(t *testing.T) {
	service, personRepo := newStoryFixture(t)

	person := seedPerson(t, personRepo, "John", strPtr("A"), strPtr("Doe"), "1950-02-01")

	html, err := service.Render("Married [person:" + itoa(person.ID) + "] in 1975.")
	assert.NoError(t, err)
	assert.Equal(t, `Married <a href="/people/`+itoa(person.ID)+`">John A Doe</a> in 1975.`, html)
}

func TestRenderUnknownPersonMarker(t *testing.T) {
	service, _ := newStoryFixture(t)

	html, err := service.Render("Met [person:7] once.")
	assert.NoError(t, err)
	assert.Equal(t, "Met Unknown (7) once.", html)
}

func TestRenderRepeatedAndMixedMarkers(t *testing.T) {
	service, personRepo := newStoryFixture(t)

	person := seedPerson(t, personRepo, "Mary", nil, nil, "1960-05-05")
	id := itoa(person.ID)

	html, err := service.Render("[person:" + id + "] & [person:" + id + "] <saw> [person:9999]")
	assert.NoError(t, err)
	expected := `<a href="/people/` + id + `">Mary</a> &amp; <a href="/people/` + id + `">Mary</a> &lt;saw&gt; Unknown (9999)`
	assert.Equal(t, expected, html)
}

func TestRenderEscapesDisplayName(t *testing.T) {
	service, personRepo := newStoryFixture(t)

	person := seedPerson(t, personRepo, "Mary <Jane>", nil, nil, "1960-05-05")

	html, err := service.Render("[person:" + itoa(person.ID) + "]")
	assert.NoError(t, err)
	assert.Equal(t, `<a href="/people/`+itoa(person.ID)+`">Mary &lt;Jane&gt;</a>`, html)
}

func TestRenderIgnoresMalformedMarkers(t *testing.T) {
	service, _ := newStoryFixture(t)

	html, err := service.Render("[person:abc] and [person:]")
	assert.NoError(t, err)
	assert.Equal(t, "[person:abc] and [person:]", html)
}
