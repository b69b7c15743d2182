package models

// FamilyTree is a named partition of the relationship edge set.
type FamilyTree struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RelationType categorizes a parent-child edge (biological, adoptive, ...).
type RelationType struct {
	ID       int64  `json:"id"`
	TypeName string `json:"type_name"`
}
