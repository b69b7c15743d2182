package repositories

import (
	"database/sql"

	"github.com/chasonjia/familytree/internal/models"
)

type RelationshipRepository struct {
	db *sql.DB
}

func NewRelationshipRepository(db *sql.DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

// relationshipViewQuery joins the people on both sides, the relation type
// and the optional family tree into one row per edge.
const relationshipViewQuery = `
	SELECT r.id, r.created_at, r.notes,
	       p.id, p.first_name, p.middle_name, p.last_name,
	       c.id, c.first_name, c.middle_name, c.last_name,
	       rt.id, rt.type_name,
	       ft.id, ft.name
	FROM relationships r
	JOIN people p ON p.id = r.parent_id
	JOIN people c ON c.id = r.child_id
	JOIN relationship_type rt ON rt.id = r.relation_type
	LEFT JOIN family_tree ft ON ft.id = r.family_tree_id
`

func scanRelationshipView(row interface{ Scan(...interface{}) error }) (*models.RelationshipView, error) {
	view := &models.RelationshipView{
		Parent:       &models.PersonRef{},
		Child:        &models.PersonRef{},
		RelationType: &models.RelationType{},
	}
	var treeID *int64
	var treeName *string

	err := row.Scan(
		&view.ID, &view.CreatedAt, &view.Notes,
		&view.Parent.ID, &view.Parent.FirstName, &view.Parent.MiddleName, &view.Parent.LastName,
		&view.Child.ID, &view.Child.FirstName, &view.Child.MiddleName, &view.Child.LastName,
		&view.RelationType.ID, &view.RelationType.TypeName,
		&treeID, &treeName,
	)
	if err != nil {
		return nil, err
	}

	view.Parent.Name = refName(view.Parent)
	view.Child.Name = refName(view.Child)
	if treeID != nil && treeName != nil {
		view.FamilyTree = &models.FamilyTreeRef{ID: *treeID, Name: *treeName}
	}
	return view, nil
}

func refName(ref *models.PersonRef) string {
	person := models.Person{
		FirstName:  ref.FirstName,
		MiddleName: ref.MiddleName,
		LastName:   ref.LastName,
	}
	return person.DisplayName()
}

// GetViewByID retrieves a single edge with its joined rows
func (r *RelationshipRepository) GetViewByID(id int64) (*models.RelationshipView, error) {
	return scanRelationshipView(r.db.QueryRow(relationshipViewQuery+` WHERE r.id = ?`, id))
}

// GetByFamilyTree retrieves a tree's edges, newest first
func (r *RelationshipRepository) GetByFamilyTree(familyTreeID int64) ([]*models.RelationshipView, error) {
	return r.queryViews(relationshipViewQuery+` WHERE r.family_tree_id = ? ORDER BY r.created_at DESC`, familyTreeID)
}

// GetByParent retrieves the edges where the given person is the parent
func (r *RelationshipRepository) GetByParent(parentID int64) ([]*models.RelationshipView, error) {
	return r.queryViews(relationshipViewQuery+` WHERE r.parent_id = ?`, parentID)
}

// GetByChild retrieves the edges where the given person is the child
func (r *RelationshipRepository) GetByChild(childID int64) ([]*models.RelationshipView, error) {
	return r.queryViews(relationshipViewQuery+` WHERE r.child_id = ?`, childID)
}

// Create inserts a new edge and fills in the generated ID
func (r *RelationshipRepository) Create(rel *models.Relationship) error {
	query := `
		INSERT INTO relationships (parent_id, child_id, relation_type, notes, family_tree_id)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, rel.ParentID, rel.ChildID, rel.RelationType, rel.Notes, rel.FamilyTreeID)
	if err != nil {
		return err
	}

	rel.ID, err = result.LastInsertId()
	return err
}

// Update updates an existing edge
func (r *RelationshipRepository) Update(rel *models.Relationship) error {
	query := `
		UPDATE relationships SET
			parent_id = ?, child_id = ?, relation_type = ?, notes = ?, family_tree_id = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, rel.ParentID, rel.ChildID, rel.RelationType, rel.Notes, rel.FamilyTreeID, rel.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// Delete deletes an edge by ID
func (r *RelationshipRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM relationships WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *RelationshipRepository) queryViews(query string, args ...interface{}) ([]*models.RelationshipView, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []*models.RelationshipView
	for rows.Next() {
		view, err := scanRelationshipView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, rows.Err()
}
