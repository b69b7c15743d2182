package handlers

import (
	"net/http"

	"github.com/chasonjia/familytree/internal/middleware"
	"github.com/chasonjia/familytree/internal/models"
	"github.com/chasonjia/familytree/internal/services"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns all accounts
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type createUserRequest struct {
	Email    string `json:"email"`
	PersonID int64  `json:"person_id"`
	Role     string `json:"role"`
}

// CreateUser provisions an account row against an existing person
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.userService.CreateUser(req.Email, req.PersonID, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type updateUserRequest struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	BirthDate  string `json:"birth_date"`
	BirthPlace string `json:"birth_place"`
}

// UpdateUser updates an account. Admins may update anyone; everyone else
// only their own record.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")

	caller := middleware.CurrentUser(c)
	if caller == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if caller.Role != models.RoleAdmin && caller.ID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: cannot update other users"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	existing, err := h.userService.GetUserByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	existing.Email = req.Email
	if req.FirstName != "" {
		existing.FirstName = req.FirstName
	}
	existing.MiddleName = optional(req.MiddleName)
	existing.LastName = optional(req.LastName)
	if req.BirthDate != "" {
		existing.BirthDate = req.BirthDate
	}
	existing.BirthPlace = optional(req.BirthPlace)

	updated, err := h.userService.UpdateUser(existing)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteUser deletes an account
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// Profile returns the authenticated caller's own record
func (h *UserHandler) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"role":     user.Role,
		"name":     user.FirstName,
		"personId": user.PersonID,
	})
}
