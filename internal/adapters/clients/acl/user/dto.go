// Package user implements the Anti-Corruption Layer translator for the
// identity provider's user profile resource.
package user

// MeDTO matches the identity provider's authenticated-profile schema as
// returned by GET /api/users/me with role and department populated.
type MeDTO struct {
	ID         int64          `json:"id"`
	DocumentID string         `json:"documentId"`
	Username   string         `json:"username"`
	Email      string         `json:"email"`
	Blocked    bool           `json:"blocked"`
	Role       *RoleDTO       `json:"role"`
	Department *DepartmentDTO `json:"department"`
}

// RoleDTO matches the provider's role relation. Name and Type are free-text
// labels maintained in the provider's role catalog.
type RoleDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// DepartmentDTO matches the provider's department relation.
type DepartmentDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
