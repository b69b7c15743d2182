package handlers

import (
	"errors"
	"net/http"

	"github.com/chasonjia/familytree/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	BirthDate  string `json:"birth_date"`
	BirthPlace string `json:"birth_place"`
}

// Signup claims a person record and creates an account for it
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.BirthDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email, password, first_name, and birth_date are required"})
		return
	}

	result, err := h.authService.Signup(services.SignupRequest{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		MiddleName: optional(req.MiddleName),
		LastName:   optional(req.LastName),
		BirthDate:  req.BirthDate,
		BirthPlace: optional(req.BirthPlace),
	})
	if err != nil {
		var notFound *services.MatchNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":      "Person not found",
				"criteria":   notFound.Criteria,
				"candidates": notFound.Candidates,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signup successful",
		"session": result.Session,
		"user":    result.User,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an account, enforcing the lockout policy
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"session": result.Session,
		"user":    result.User,
	})
}
