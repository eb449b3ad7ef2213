package app

import (
	"fmt"

	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/identity"
	"github.com/nnmc-digital/projectboard/internal/domain/project"
)

// Policy implements the authorization gates: the administrator gate for
// hard deletes, the read-visibility gate hiding soft-deleted projects from
// ordinary callers, and the assignment/department gate on mutations. All
// checks operate on the enumerated role kind resolved at the identity
// boundary; no free-text role matching happens here.
type Policy struct{}

// NewPolicy creates a Policy.
func NewPolicy() *Policy {
	return &Policy{}
}

// IsAdmin is the non-throwing administrator check, used by read paths to
// decide visibility. Nil-safe.
func (*Policy) IsAdmin(caller *identity.Caller) bool {
	return caller.IsAdmin()
}

// RequireAdmin is the throwing administrator check used by the hard-delete
// path: an anonymous caller gets domain.ErrUnauthenticated, an
// authenticated caller without the role gets domain.ErrForbidden.
func (p *Policy) RequireAdmin(caller *identity.Caller) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}
	if !caller.IsAdmin() {
		return fmt.Errorf("%w: only administrators can delete projects permanently", domain.ErrForbidden)
	}
	return nil
}

// CanSeeProject reports whether the caller may observe the project at all.
// Non-administrators never see DELETED projects; for them such a project is
// indistinguishable from an absent one.
func (p *Policy) CanSeeProject(caller *identity.Caller, proj *project.Project) bool {
	if proj.Status != project.StatusDeleted {
		return true
	}
	return p.IsAdmin(caller)
}

// FilterVisible removes projects the caller may not see from a list result.
func (p *Policy) FilterVisible(caller *identity.Caller, projects []project.Project) []project.Project {
	if p.IsAdmin(caller) {
		return projects
	}
	visible := make([]project.Project, 0, len(projects))
	for i := range projects {
		if projects[i].Status != project.StatusDeleted {
			visible = append(visible, projects[i])
		}
	}
	return visible
}

// RequireProjectAccess is the assignment/department gate on project and
// task mutations. The caller must be an administrator, an assigned
// participant (owner, supporting specialist, or responsible user), or
// belong to the project's department. Runs before any other lifecycle step;
// a violation leaves no state change and no audit entry.
func (p *Policy) RequireProjectAccess(caller *identity.Caller, proj *project.Project) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}
	if caller.IsAdmin() {
		return nil
	}
	if proj.IsMember(caller.UserID) {
		return nil
	}
	if proj.DepartmentID != nil && caller.DepartmentID != nil && *proj.DepartmentID == *caller.DepartmentID {
		return nil
	}
	return fmt.Errorf("%w: caller is not assigned to the project or its department", domain.ErrForbidden)
}

// RequireCreateAccess gates project creation. The caller must be
// authenticated and, when the payload names a department, either belong to
// it or be an administrator.
func (p *Policy) RequireCreateAccess(caller *identity.Caller, departmentID *int64) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}
	if caller.IsAdmin() || departmentID == nil {
		return nil
	}
	if caller.DepartmentID != nil && *caller.DepartmentID == *departmentID {
		return nil
	}
	return fmt.Errorf("%w: caller does not belong to the project's department", domain.ErrForbidden)
}
