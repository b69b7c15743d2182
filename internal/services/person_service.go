package services

import (
	"database/sql"
	"errors"

	"github.com/chasonjia/familytree/internal/apperrors"
	"github.com/chasonjia/familytree/internal/models"
	"github.com/chasonjia/familytree/internal/repositories"
)

type PersonService struct {
	personRepo   *repositories.PersonRepository
	storyService *StoryService
}

func NewPersonService(personRepo *repositories.PersonRepository, storyService *StoryService) *PersonService {
	return &PersonService{
		personRepo:   personRepo,
		storyService: storyService,
	}
}

// PersonDetails is a person plus their rendered story.
type PersonDetails struct {
	*models.PersonView
	StoryHTML string `json:"story_html"`
}

// GetAllPeople lists every person ordered by first name
func (s *PersonService) GetAllPeople() ([]*models.PersonView, error) {
	people, err := s.personRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return toViews(people), nil
}

// SearchPeople finds people by case-insensitive substring across name parts
func (s *PersonService) SearchPeople(term string) ([]*models.PersonView, error) {
	if term == "" {
		return nil, apperrors.Validation("Search query is required")
	}

	people, err := s.personRepo.Search(term)
	if err != nil {
		return nil, err
	}
	return toViews(people), nil
}

// GetPersonByID retrieves a single person
func (s *PersonService) GetPersonByID(id int64) (*models.PersonView, error) {
	person, err := s.personRepo.GetByID(id)
	if err != nil {
		return nil, mapNoRows(err, "person not found")
	}
	return person.ToView(), nil
}

// GetPersonDetails retrieves a person together with their story rendered
// as HTML
func (s *PersonService) GetPersonDetails(id int64) (*PersonDetails, error) {
	person, err := s.personRepo.GetByID(id)
	if err != nil {
		return nil, mapNoRows(err, "person not found")
	}

	var storyHTML string
	if person.Story != nil {
		storyHTML, err = s.storyService.Render(*person.Story)
		if err != nil {
			return nil, err
		}
	}

	return &PersonDetails{PersonView: person.ToView(), StoryHTML: storyHTML}, nil
}

// CreatePerson creates a new person
func (s *PersonService) CreatePerson(person *models.Person) (*models.PersonView, error) {
	if person.FirstName == "" || person.BirthDate == "" {
		return nil, apperrors.Validation("first_name and birth_date are required")
	}

	if err := s.personRepo.Create(person); err != nil {
		return nil, err
	}

	created, err := s.personRepo.GetByID(person.ID)
	if err != nil {
		return nil, err
	}
	return created.ToView(), nil
}

// UpdatePerson applies a partial update: fields absent from the request
// keep their stored values, so an update that only renames someone cannot
// wipe their role or optional name parts.
func (s *PersonService) UpdatePerson(person *models.Person) (*models.PersonView, error) {
	existing, err := s.personRepo.GetByID(person.ID)
	if err != nil {
		return nil, mapNoRows(err, "person not found")
	}

	if person.FirstName == "" {
		person.FirstName = existing.FirstName
	}
	if person.BirthDate == "" {
		person.BirthDate = existing.BirthDate
	}
	if person.MiddleName == nil {
		person.MiddleName = existing.MiddleName
	}
	if person.LastName == nil {
		person.LastName = existing.LastName
	}
	if person.BirthPlace == nil {
		person.BirthPlace = existing.BirthPlace
	}
	if person.Role == "" {
		person.Role = existing.Role
	}

	if err := s.personRepo.Update(person); err != nil {
		return nil, mapNoRows(err, "person not found")
	}

	updated, err := s.personRepo.GetByID(person.ID)
	if err != nil {
		return nil, err
	}
	return updated.ToView(), nil
}

// SaveStory updates a person's life story text
func (s *PersonService) SaveStory(id int64, story string) error {
	return mapNoRowsNil(s.personRepo.UpdateStory(id, story), "person not found")
}

// DeletePerson deletes a person
func (s *PersonService) DeletePerson(id int64) error {
	return mapNoRowsNil(s.personRepo.Delete(id), "person not found")
}

func toViews(people []*models.Person) []*models.PersonView {
	views := make([]*models.PersonView, 0, len(people))
	for _, person := range people {
		views = append(views, person.ToView())
	}
	return views
}

func mapNoRows(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(msg)
	}
	return err
}

func mapNoRowsNil(err error, msg string) error {
	if err == nil {
		return nil
	}
	return mapNoRows(err, msg)
}
