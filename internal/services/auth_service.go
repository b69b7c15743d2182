package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chasonjia/familytree/internal/apperrors"
	"github.com/chasonjia/familytree/internal/models"
	"github.com/chasonjia/familytree/internal/repositories"
	"github.com/chasonjia/familytree/pkg/config"
	"github.com/chasonjia/familytree/pkg/logger"
	"github.com/sirupsen/logrus"
)

// AuthService orchestrates signup person-claiming and the login lockout
// bookkeeping around the credential service.
type AuthService struct {
	credService *CredentialService
	userRepo    *repositories.UserRepository
	personRepo  *repositories.PersonRepository
}

func NewAuthService(credService *CredentialService, userRepo *repositories.UserRepository, personRepo *repositories.PersonRepository) *AuthService {
	return &AuthService{
		credService: credService,
		userRepo:    userRepo,
		personRepo:  personRepo,
	}
}

// SignupRequest carries signup input with optional fields normalized at the
// boundary: an empty or missing middle/last name or birth place is nil here.
type SignupRequest struct {
	Email      string
	Password   string
	FirstName  string
	MiddleName *string
	LastName   *string
	BirthDate  string
	BirthPlace *string
}

// AuthResult is the response of a successful signup or login.
type AuthResult struct {
	Session *models.Session
	User    *models.User
}

// MatchCriteria echoes the fields a failed signup match searched on.
type MatchCriteria struct {
	FirstName  string  `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   *string `json:"last_name"`
	BirthDate  string  `json:"birth_date"`
}

// MatchNotFoundError reports a failed person match along with unclaimed
// people sharing the first name, as a correction aid.
type MatchNotFoundError struct {
	Criteria   MatchCriteria
	Candidates []*models.PersonView
}

func (e *MatchNotFoundError) Error() string { return "person not found" }
func (e *MatchNotFoundError) Unwrap() error { return apperrors.ErrNotFound }

// LockedError rejects a login while a lockout is active.
type LockedError struct {
	HoursLeft int
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("Account locked due to multiple failed login attempts. Please try again in approximately %d hours.", e.HoursLeft)
}

func (e *LockedError) Unwrap() error { return apperrors.ErrForbidden }

// Signup claims an unclaimed person: it requires exactly one person whose
// first name and birth date match, registers the credentials, links an
// account row copying the person's identity fields, and best-effort updates
// the person's birth place.
func (s *AuthService) Signup(req SignupRequest) (*AuthResult, error) {
	matches, err := s.personRepo.FindUnclaimedMatches(req.FirstName, req.BirthDate, req.MiddleName, req.LastName)
	if err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, s.matchNotFound(req)
	case 1:
	default:
		return nil, apperrors.Conflict("multiple matching people; contact an administrator")
	}
	person := matches[0]

	// Nothing is persisted locally before this call, so a credential
	// failure (e.g. duplicate email) needs no compensation.
	credentialID, err := s.credService.SignUp(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:         credentialID,
		Email:      req.Email,
		PersonID:   person.ID,
		FirstName:  person.FirstName,
		MiddleName: person.MiddleName,
		LastName:   person.LastName,
		BirthDate:  person.BirthDate,
		BirthPlace: person.BirthPlace,
		Role:       person.Role,
	}

	if err := s.userRepo.Create(user); err != nil {
		// Compensate the registration; without this the credential
		// would be orphaned.
		if delErr := s.credService.Delete(credentialID); delErr != nil {
			logger.WithFields(logrus.Fields{
				"credential_id": credentialID,
				"error":         delErr.Error(),
			}).Error("orphaned credential: account insert and compensating delete both failed")
		}
		logger.WithError(err).Error("account insert failed during signup")
		return nil, errors.New("signup failed")
	}

	if req.BirthPlace != nil && (person.BirthPlace == nil || *person.BirthPlace != *req.BirthPlace) {
		if err := s.personRepo.UpdateBirthPlace(person.ID, *req.BirthPlace); err != nil {
			// Best effort; the account already exists.
			logger.WithFields(logrus.Fields{
				"person_id": person.ID,
				"error":     err.Error(),
			}).Warn("failed to update birth place during signup")
		} else {
			user.BirthPlace = req.BirthPlace
		}
	}

	pair, _, err := s.credService.SignInWithPassword(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Session: s.session(pair), User: user}, nil
}

// Login verifies credentials behind the lockout state machine: an active
// lockout short-circuits, a failure increments the counter and may lock,
// a success clears any failure history.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	auth := config.AppConfig.Auth

	tracked, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	// A missing account row skips lockout bookkeeping but still attempts
	// the sign-in, so the response does not reveal whether the email exists.

	if tracked != nil && tracked.LockoutUntil != nil && tracked.LockoutUntil.After(time.Now()) {
		remaining := time.Until(*tracked.LockoutUntil)
		hours := int((remaining + time.Hour - 1) / time.Hour)
		return nil, &LockedError{HoursLeft: hours}
	}

	pair, credentialID, err := s.credService.SignInWithPassword(email, password)
	if err != nil {
		if tracked != nil && errors.Is(err, apperrors.ErrUnauthorized) {
			s.recordFailedAttempt(tracked, auth)
		}
		return nil, err
	}

	if tracked != nil && (tracked.FailedLoginAttempts > 0 || tracked.LockoutUntil != nil) {
		if err := s.userRepo.ResetLockout(tracked.ID); err != nil {
			logger.WithError(err).Warnf("failed to reset lockout for user %s", tracked.ID)
		}
	}

	user, err := s.userRepo.GetByID(credentialID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Unauthorized("no account for this login")
		}
		return nil, err
	}

	return &AuthResult{Session: s.session(pair), User: user}, nil
}

func (s *AuthService) recordFailedAttempt(tracked *models.User, auth config.AuthConfig) {
	attempts, err := s.userRepo.IncrementFailedAttempts(tracked.ID)
	if err != nil {
		logger.WithError(err).Warnf("failed to record login failure for user %s", tracked.ID)
		return
	}

	if attempts >= auth.LockoutThreshold {
		until := time.Now().Add(time.Duration(auth.LockoutHours) * time.Hour)
		if err := s.userRepo.SetLockout(tracked.ID, until); err != nil {
			logger.WithError(err).Warnf("failed to set lockout for user %s", tracked.ID)
		}
	}
}

func (s *AuthService) matchNotFound(req SignupRequest) error {
	notFound := &MatchNotFoundError{
		Criteria: MatchCriteria{
			FirstName:  req.FirstName,
			MiddleName: req.MiddleName,
			LastName:   req.LastName,
			BirthDate:  req.BirthDate,
		},
	}

	candidates, err := s.personRepo.GetUnclaimedByFirstName(req.FirstName, 5)
	if err != nil {
		logger.WithError(err).Warn("failed to load signup candidates")
		return notFound
	}
	for _, person := range candidates {
		notFound.Candidates = append(notFound.Candidates, person.ToView())
	}
	return notFound
}

// session reports an expiry one short window out, regardless of the actual
// token lifetime, so clients see a known validity horizon.
func (s *AuthService) session(pair *TokenPair) *models.Session {
	window := time.Duration(config.AppConfig.Auth.SessionWindowMinutes) * time.Minute
	return &models.Session{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    time.Now().Add(window).UnixMilli(),
	}
}
