package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/chasonjia/familytree/internal/models"
	"github.com/chasonjia/familytree/internal/services"
	"github.com/gin-gonic/gin"
)

type PersonHandler struct {
	personService *services.PersonService
	exportService *services.ExportService
}

func NewPersonHandler(personService *services.PersonService, exportService *services.ExportService) *PersonHandler {
	return &PersonHandler{
		personService: personService,
		exportService: exportService,
	}
}

// ListPeople returns every person ordered by first name
func (h *PersonHandler) ListPeople(c *gin.Context) {
	people, err := h.personService.GetAllPeople()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, people)
}

// SearchPeople filters people by a case-insensitive substring of any name part
func (h *PersonHandler) SearchPeople(c *gin.Context) {
	people, err := h.personService.SearchPeople(c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, people)
}

// GetPerson returns a single person
func (h *PersonHandler) GetPerson(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	person, err := h.personService.GetPersonByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

// GetPersonDetails returns a person with their story rendered as HTML
func (h *PersonHandler) GetPersonDetails(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	details, err := h.personService.GetPersonDetails(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

type personRequest struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	BirthDate  string `json:"birth_date"`
	BirthPlace string `json:"birth_place"`
	Role       string `json:"role"`
}

func (r *personRequest) toModel() *models.Person {
	return &models.Person{
		FirstName:  r.FirstName,
		MiddleName: optional(r.MiddleName),
		LastName:   optional(r.LastName),
		BirthDate:  r.BirthDate,
		BirthPlace: optional(r.BirthPlace),
		Role:       r.Role,
	}
}

// CreatePerson creates a new person record
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	person, err := h.personService.CreatePerson(req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, person)
}

// UpdatePerson updates an existing person record
func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	person := req.toModel()
	person.ID = id

	updated, err := h.personService.UpdatePerson(person)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type storyRequest struct {
	Story string `json:"story"`
}

// SaveStory updates a person's life story text
func (h *PersonHandler) SaveStory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req storyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.personService.SaveStory(id, req.Story); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Story saved successfully"})
}

// DeletePerson deletes a person record
func (h *PersonHandler) DeletePerson(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.personService.DeletePerson(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Person deleted successfully"})
}

// ExportPeople streams the person directory as a spreadsheet
func (h *PersonHandler) ExportPeople(c *gin.Context) {
	workbook, err := h.exportService.BuildPeopleWorkbook()
	if err != nil {
		respondError(c, err)
		return
	}

	filename := "people-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}

// paramID parses an integer path parameter, responding 400 on garbage
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}
