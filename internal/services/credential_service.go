package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/chasonjia/familytree/internal/apperrors"
	"github.com/chasonjia/familytree/internal/models"
	"github.com/chasonjia/familytree/internal/repositories"
	"github.com/chasonjia/familytree/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// CredentialService owns password verification and token issuance. The rest
// of the system treats it as a collaborator and never touches its storage.
type CredentialService struct {
	credRepo *repositories.CredentialRepository
}

func NewCredentialService(credRepo *repositories.CredentialRepository) *CredentialService {
	return &CredentialService{credRepo: credRepo}
}

// TokenPair is an access/refresh token set issued at sign-in.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type tokenPayload struct {
	CredentialID string    `json:"credential_id"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SignUp registers a new credential and returns its id
func (s *CredentialService) SignUp(email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	cred := models.NewCredential(email, string(hash))
	if err := s.credRepo.Create(cred); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return "", apperrors.Conflict("email already registered")
		}
		return "", err
	}

	return cred.ID, nil
}

// SignInWithPassword verifies a password and issues a token pair. Unknown
// emails and wrong passwords fail identically.
func (s *CredentialService) SignInWithPassword(email, password string) (*TokenPair, string, error) {
	cred, err := s.credRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", apperrors.Unauthorized("invalid email or password")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}

	auth := config.AppConfig.Auth
	access, err := s.issueToken(cred.ID, time.Duration(auth.AccessTokenHours)*time.Hour)
	if err != nil {
		return nil, "", err
	}
	refresh, err := s.issueToken(cred.ID, time.Duration(auth.RefreshTokenHours)*time.Hour)
	if err != nil {
		return nil, "", err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, cred.ID, nil
}

// VerifyToken checks a token's signature and expiry and returns the
// credential id it was issued for
func (s *CredentialService) VerifyToken(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return "", apperrors.Unauthorized("invalid token format")
	}

	signature, data := parts[0], parts[1]
	if !verifySignature(data, signature) {
		return "", apperrors.Unauthorized("invalid token signature")
	}

	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		return "", apperrors.Unauthorized("invalid token encoding")
	}

	var payload tokenPayload
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return "", apperrors.Unauthorized("invalid token payload")
	}

	if time.Now().After(payload.ExpiresAt) {
		return "", apperrors.Unauthorized("token expired")
	}

	return payload.CredentialID, nil
}

// Delete removes a credential; used to compensate a failed signup
func (s *CredentialService) Delete(credentialID string) error {
	return s.credRepo.Delete(credentialID)
}

func (s *CredentialService) issueToken(credentialID string, ttl time.Duration) (string, error) {
	payload := tokenPayload{
		CredentialID: credentialID,
		ExpiresAt:    time.Now().Add(ttl),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	encoded := base64.URLEncoding.EncodeToString(data)
	return createSignature(encoded) + "." + encoded, nil
}

// createSignature creates HMAC signature for data
func createSignature(data string) string {
	h := hmac.New(sha256.New, []byte(config.AppConfig.Auth.TokenSecret))
	h.Write([]byte(data))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}

// verifySignature verifies HMAC signature
func verifySignature(data, signature string) bool {
	expectedSignature := createSignature(data)
	return hmac.Equal([]byte(signature), []byte(expectedSignature))
}
