package services

import (
	"strings"
	"testing"
	"time"

	"github.com/chasonjia/familytree/internal/apperrors"
	"github.com/chasonjia/familytree/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCredentialService(t *testing.T) *CredentialService {
	db := newTestDB(t)
	return NewCredentialService(repositories.NewCredentialRepository(db))
}

func TestTokenRoundTrip(t *testing.T) {
	service := newCredentialService(t)

	credentialID, err := service.SignUp("a@x.com", "secret-password")
	require.NoError(t, err)
	require.NotEmpty(t, credentialID)

	pair, signedInID, err := service.SignInWithPassword("a@x.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, credentialID, signedInID)

	verifiedID, err := service.VerifyToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, credentialID, verifiedID)

	verifiedID, err = service.VerifyToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, credentialID, verifiedID)
}

func TestSignInWrongPassword(t *testing.T) {
	service := newCredentialService(t)

	_, err := service.SignUp("a@x.com", "secret-password")
	require.NoError(t, err)

	_, _, err = service.SignInWithPassword("a@x.com", "not-the-password")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// Unknown email fails the same way.
	_, _, err = service.SignInWithPassword("b@x.com", "secret-password")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	service := newCredentialService(t)

	credentialID, err := service.SignUp("a@x.com", "secret-password")
	require.NoError(t, err)

	token, err := service.issueToken(credentialID, time.Hour)
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{"Empty token", ""},
		{"Missing separator", strings.ReplaceAll(token, ".", "")},
		{"Bad signature", "AAAA" + token},
		{"Swapped payload", strings.Split(token, ".")[0] + ".eyJmb28iOiJiYXIifQ=="},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.VerifyToken(tc.token)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		})
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	service := newCredentialService(t)

	credentialID, err := service.SignUp("a@x.com", "secret-password")
	require.NoError(t, err)

	token, err := service.issueToken(credentialID, -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestDeleteCredential(t *testing.T) {
	service := newCredentialService(t)

	credentialID, err := service.SignUp("a@x.com", "secret-password")
	require.NoError(t, err)

	require.NoError(t, service.Delete(credentialID))

	_, _, err = service.SignInWithPassword("a@x.com", "secret-password")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
