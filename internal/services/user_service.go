package services

import (
	"strings"

	"github.com/chasonjia/familytree/internal/apperrors"
	"github.com/chasonjia/familytree/internal/models"
	"github.com/chasonjia/familytree/internal/repositories"
	"github.com/google/uuid"
)

type UserService struct {
	userRepo   *repositories.UserRepository
	personRepo *repositories.PersonRepository
}

func NewUserService(userRepo *repositories.UserRepository, personRepo *repositories.PersonRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		personRepo: personRepo,
	}
}

// GetAllUsers retrieves all accounts
func (s *UserService) GetAllUsers() ([]*models.User, error) {
	return s.userRepo.GetAll()
}

// GetUserByID retrieves an account by ID
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, mapNoRows(err, "user not found")
	}
	return user, nil
}

// CreateUser provisions an account row against an existing person, copying
// the person's identity fields. No credential is created; the admin-made
// row is claimed later through the normal signup flow email.
func (s *UserService) CreateUser(email string, personID int64, role string) (*models.User, error) {
	if email == "" || personID == 0 {
		return nil, apperrors.Validation("email and person_id are required")
	}

	person, err := s.personRepo.GetByID(personID)
	if err != nil {
		return nil, mapNoRows(err, "person not found")
	}

	if role == "" {
		role = person.Role
	}

	user := &models.User{
		ID:         uuid.New().String(),
		Email:      email,
		PersonID:   person.ID,
		FirstName:  person.FirstName,
		MiddleName: person.MiddleName,
		LastName:   person.LastName,
		BirthDate:  person.BirthDate,
		BirthPlace: person.BirthPlace,
		Role:       role,
	}

	if err := s.userRepo.Create(user); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, apperrors.Conflict("email already in use")
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser updates an account's email and name fields
func (s *UserService) UpdateUser(user *models.User) (*models.User, error) {
	if user.Email == "" {
		return nil, apperrors.Validation("email is required")
	}

	if err := s.userRepo.Update(user); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, apperrors.Conflict("email already in use")
		}
		return nil, mapNoRows(err, "user not found")
	}
	return s.userRepo.GetByID(user.ID)
}

// DeleteUser deletes an account by ID
func (s *UserService) DeleteUser(id string) error {
	return mapNoRowsNil(s.userRepo.Delete(id), "user not found")
}
