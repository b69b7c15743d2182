package repositories

import (
	"database/sql"

	"github.com/chasonjia/familytree/internal/models"
)

type FamilyTreeRepository struct {
	db *sql.DB
}

func NewFamilyTreeRepository(db *sql.DB) *FamilyTreeRepository {
	return &FamilyTreeRepository{db: db}
}

// GetAll retrieves all family trees ordered by name
func (r *FamilyTreeRepository) GetAll() ([]*models.FamilyTree, error) {
	rows, err := r.db.Query(`SELECT id, name FROM family_tree ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trees []*models.FamilyTree
	for rows.Next() {
		tree := &models.FamilyTree{}
		if err := rows.Scan(&tree.ID, &tree.Name); err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}

	return trees, rows.Err()
}

// GetByID retrieves a family tree by ID
func (r *FamilyTreeRepository) GetByID(id int64) (*models.FamilyTree, error) {
	tree := &models.FamilyTree{}
	err := r.db.QueryRow(`SELECT id, name FROM family_tree WHERE id = ?`, id).Scan(&tree.ID, &tree.Name)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// Create creates a new family tree and fills in the generated ID
func (r *FamilyTreeRepository) Create(tree *models.FamilyTree) error {
	result, err := r.db.Exec(`INSERT INTO family_tree (name) VALUES (?)`, tree.Name)
	if err != nil {
		return err
	}
	tree.ID, err = result.LastInsertId()
	return err
}
