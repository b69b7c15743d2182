package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/chasonjia/familytree/internal/models"
	"github.com/chasonjia/familytree/internal/repositories"
	"github.com/chasonjia/familytree/internal/services"
	"github.com/chasonjia/familytree/pkg/config"
	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *repositories.PersonRepository) {
	require.NoError(t, config.Load())
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../migrations/001_schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	personRepo := repositories.NewPersonRepository(db)
	userRepo := repositories.NewUserRepository(db)
	credService := services.NewCredentialService(repositories.NewCredentialRepository(db))
	authService := services.NewAuthService(credService, userRepo, personRepo)
	handler := NewAuthHandler(authService)

	router := gin.New()
	router.POST("/auth/signup", handler.Signup)
	router.POST("/auth/login", handler.Login)

	return router, personRepo
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignupEndpointValidation(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := postJSON(router, "/auth/signup", gin.H{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupEndpointNotFoundIncludesCriteria(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := postJSON(router, "/auth/signup", gin.H{
		"email":      "a@x.com",
		"password":   "secret-password",
		"first_name": "John",
		"birth_date": "1950-02-01",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Error    string `json:"error"`
		Criteria struct {
			FirstName string `json:"first_name"`
		} `json:"criteria"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Person not found", body.Error)
	assert.Equal(t, "John", body.Criteria.FirstName)
}

func TestLoginEndpointLockoutScenario(t *testing.T) {
	router, personRepo := newAuthRouter(t)

	require.NoError(t, personRepo.Create(&models.Person{
		FirstName: "John",
		BirthDate: "1950-02-01",
	}))

	w := postJSON(router, "/auth/signup", gin.H{
		"email":      "a@x.com",
		"password":   "secret-password",
		"first_name": "John",
		"birth_date": "1950-02-01",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Five failures lock the account.
	for i := 0; i < 5; i++ {
		w = postJSON(router, "/auth/login", gin.H{"email": "a@x.com", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code, "attempt %d", i+1)
	}

	// The sixth attempt is rejected before credentials are checked, even
	// though the password is right.
	w = postJSON(router, "/auth/login", gin.H{"email": "a@x.com", "password": "secret-password"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "approximately 24 hours")
}

func TestLoginEndpointSuccessShape(t *testing.T) {
	router, personRepo := newAuthRouter(t)

	require.NoError(t, personRepo.Create(&models.Person{
		FirstName: "John",
		BirthDate: "1950-02-01",
	}))

	w := postJSON(router, "/auth/signup", gin.H{
		"email":      "a@x.com",
		"password":   "secret-password",
		"first_name": "John",
		"birth_date": "1950-02-01",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(router, "/auth/login", gin.H{"email": "a@x.com", "password": "secret-password"})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Message string `json:"message"`
		Session struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
			ExpiresAt    int64  `json:"expires_at"`
		} `json:"session"`
		User struct {
			Email    string `json:"email"`
			PersonID int64  `json:"person_id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Login successful", body.Message)
	assert.NotEmpty(t, body.Session.AccessToken)
	assert.NotEmpty(t, body.Session.RefreshToken)
	assert.NotZero(t, body.Session.ExpiresAt)
	assert.Equal(t, "a@x.com", body.User.Email)
	assert.NotZero(t, body.User.PersonID)
}
