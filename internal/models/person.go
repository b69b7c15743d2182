package models

import (
	"strings"
	"time"
)

// Person is a biographical record in the directory. A person exists
// independently of any login; an account claims it at signup.
type Person struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"first_name"`
	MiddleName *string   `json:"middle_name"`
	LastName   *string   `json:"last_name"`
	BirthDate  string    `json:"birth_date"`
	BirthPlace *string   `json:"birth_place"`
	Story      *string   `json:"story"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DisplayName joins the non-empty name parts with single spaces.
func (p *Person) DisplayName() string {
	parts := make([]string, 0, 3)
	parts = append(parts, p.FirstName)
	if p.MiddleName != nil {
		parts = append(parts, *p.MiddleName)
	}
	if p.LastName != nil {
		parts = append(parts, *p.LastName)
	}
	joined := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			joined = append(joined, part)
		}
	}
	if len(joined) == 0 {
		return "Unknown"
	}
	return strings.Join(joined, " ")
}

// PersonView is the wire shape for a person: all stored fields plus the
// joined display name.
type PersonView struct {
	Person
	Name string `json:"name"`
}

// ToView builds the response shape for a person.
func (p *Person) ToView() *PersonView {
	return &PersonView{Person: *p, Name: p.DisplayName()}
}
