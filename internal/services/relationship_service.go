package services

import (
	"github.com/chasonjia/familytree/internal/apperrors"
	"github.com/chasonjia/familytree/internal/models"
	"github.com/chasonjia/familytree/internal/repositories"
)

type RelationshipService struct {
	relationshipRepo *repositories.RelationshipRepository
	familyTreeRepo   *repositories.FamilyTreeRepository
}

func NewRelationshipService(relationshipRepo *repositories.RelationshipRepository, familyTreeRepo *repositories.FamilyTreeRepository) *RelationshipService {
	return &RelationshipService{
		relationshipRepo: relationshipRepo,
		familyTreeRepo:   familyTreeRepo,
	}
}

// GetFamilyTrees lists all family trees ordered by name
func (s *RelationshipService) GetFamilyTrees() ([]*models.FamilyTree, error) {
	return s.familyTreeRepo.GetAll()
}

// GetTreeRelationships lists a family tree's edges, newest first
func (s *RelationshipService) GetTreeRelationships(familyTreeID int64) ([]*models.RelationshipView, error) {
	return s.relationshipRepo.GetByFamilyTree(familyTreeID)
}

// GetPersonRelationships lists a person's edges grouped by the side they
// appear on
func (s *RelationshipService) GetPersonRelationships(personID int64) (*models.PersonRelationships, error) {
	asParent, err := s.relationshipRepo.GetByParent(personID)
	if err != nil {
		return nil, err
	}
	asChild, err := s.relationshipRepo.GetByChild(personID)
	if err != nil {
		return nil, err
	}

	all := make([]*models.RelationshipView, 0, len(asParent)+len(asChild))
	all = append(all, asParent...)
	all = append(all, asChild...)

	return &models.PersonRelationships{
		AsParent: emptyIfNil(asParent),
		AsChild:  emptyIfNil(asChild),
		All:      all,
	}, nil
}

// GetByParent lists the edges where the person is the parent
func (s *RelationshipService) GetByParent(parentID int64) ([]*models.RelationshipView, error) {
	return s.relationshipRepo.GetByParent(parentID)
}

// GetByChild lists the edges where the person is the child
func (s *RelationshipService) GetByChild(childID int64) ([]*models.RelationshipView, error) {
	return s.relationshipRepo.GetByChild(childID)
}

// CreateRelationship creates an edge and returns its joined view
func (s *RelationshipService) CreateRelationship(rel *models.Relationship) (*models.RelationshipView, error) {
	if rel.ParentID == 0 || rel.ChildID == 0 || rel.RelationType == 0 {
		return nil, apperrors.Validation("parent_id, child_id, and relation_type are required")
	}

	if err := s.relationshipRepo.Create(rel); err != nil {
		return nil, err
	}
	return s.relationshipRepo.GetViewByID(rel.ID)
}

// UpdateRelationship updates an edge and returns its joined view
func (s *RelationshipService) UpdateRelationship(rel *models.Relationship) (*models.RelationshipView, error) {
	if rel.ParentID == 0 || rel.ChildID == 0 || rel.RelationType == 0 {
		return nil, apperrors.Validation("parent_id, child_id, and relation_type are required")
	}

	if err := s.relationshipRepo.Update(rel); err != nil {
		return nil, mapNoRows(err, "relationship not found")
	}
	return s.relationshipRepo.GetViewByID(rel.ID)
}

// DeleteRelationship deletes an edge
func (s *RelationshipService) DeleteRelationship(id int64) error {
	return mapNoRowsNil(s.relationshipRepo.Delete(id), "relationship not found")
}

func emptyIfNil(views []*models.RelationshipView) []*models.RelationshipView {
	if views == nil {
		return []*models.RelationshipView{}
	}
	return views
}
