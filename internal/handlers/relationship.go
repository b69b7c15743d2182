package handlers

import (
	"net/http"
	"strconv"

	"github.com/chasonjia/familytree/internal/models"
	"github.com/chasonjia/familytree/internal/services"
	"github.com/gin-gonic/gin"
)

type RelationshipHandler struct {
	relationshipService *services.RelationshipService
}

func NewRelationshipHandler(relationshipService *services.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{relationshipService: relationshipService}
}

// List returns all family trees, or a single tree's edges when
// family_tree_id is supplied
func (h *RelationshipHandler) List(c *gin.Context) {
	treeParam := c.Query("family_tree_id")
	if treeParam == "" {
		trees, err := h.relationshipService.GetFamilyTrees()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, trees)
		return
	}

	treeID, err := strconv.ParseInt(treeParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid family_tree_id"})
		return
	}

	relationships, err := h.relationshipService.GetTreeRelationships(treeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, relationships)
}

// ByPerson returns a person's edges grouped by side
func (h *RelationshipHandler) ByPerson(c *gin.Context) {
	personID, ok := paramID(c, "personId")
	if !ok {
		return
	}

	grouped, err := h.relationshipService.GetPersonRelationships(personID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, grouped)
}

// ByParent returns the edges where the person is the parent
func (h *RelationshipHandler) ByParent(c *gin.Context) {
	parentID, ok := paramID(c, "parentId")
	if !ok {
		return
	}

	relationships, err := h.relationshipService.GetByParent(parentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, relationships)
}

// ByChild returns the edges where the person is the child
func (h *RelationshipHandler) ByChild(c *gin.Context) {
	childID, ok := paramID(c, "childId")
	if !ok {
		return
	}

	relationships, err := h.relationshipService.GetByChild(childID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, relationships)
}

type relationshipRequest struct {
	ParentID     int64  `json:"parent_id"`
	ChildID      int64  `json:"child_id"`
	RelationType int64  `json:"relation_type"`
	Notes        string `json:"notes"`
	FamilyTreeID *int64 `json:"family_tree_id"`
}

func (r *relationshipRequest) toModel() *models.Relationship {
	return &models.Relationship{
		ParentID:     r.ParentID,
		ChildID:      r.ChildID,
		RelationType: r.RelationType,
		Notes:        optional(r.Notes),
		FamilyTreeID: r.FamilyTreeID,
	}
}

// Create creates a parent-child edge
func (h *RelationshipHandler) Create(c *gin.Context) {
	var req relationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	view, err := h.relationshipService.CreateRelationship(req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// Update updates a parent-child edge
func (h *RelationshipHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req relationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	rel := req.toModel()
	rel.ID = id

	view, err := h.relationshipService.UpdateRelationship(rel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Delete deletes a parent-child edge
func (h *RelationshipHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.relationshipService.DeleteRelationship(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Relationship deleted successfully"})
}
