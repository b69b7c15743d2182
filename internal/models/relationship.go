package models

import "time"

// Relationship is a directed parent-to-child edge between two people,
// tagged with a relation type and optionally grouped into a family tree.
type Relationship struct {
	ID           int64     `json:"id"`
	ParentID     int64     `json:"parent_id"`
	ChildID      int64     `json:"child_id"`
	RelationType int64     `json:"relation_type"`
	Notes        *string   `json:"notes"`
	FamilyTreeID *int64    `json:"family_tree_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// PersonRef is the nested person shape inside a relationship response.
type PersonRef struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	FirstName  string  `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   *string `json:"last_name"`
}

type FamilyTreeRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RelationshipView nests the joined parent, child, relation type and
// family tree rows the way clients consume them.
type RelationshipView struct {
	ID           int64          `json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	Notes        *string        `json:"notes"`
	Parent       *PersonRef     `json:"parent"`
	Child        *PersonRef     `json:"child"`
	RelationType *RelationType  `json:"relation_type"`
	FamilyTree   *FamilyTreeRef `json:"family_tree,omitempty"`
}

// PersonRelationships groups a person's edges by the side they appear on.
type PersonRelationships struct {
	AsParent []*RelationshipView `json:"asParent"`
	AsChild  []*RelationshipView `json:"asChild"`
	All      []*RelationshipView `json:"all"`
}
