package handlers

import (
	"net/http"

	"github.com/chasonjia/familytree/internal/services"
	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	mailerService *services.MailerService
}

func NewContactHandler(mailerService *services.MailerService) *ContactHandler {
	return &ContactHandler{mailerService: mailerService}
}

type contactRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Submit forwards a contact-form submission by email
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.mailerService.SendContact(req.Email, req.Message); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
