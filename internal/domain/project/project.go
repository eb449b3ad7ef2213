// Package project defines the Project aggregate: the entity itself, its
// partial-update payload, lifecycle status rules, and the derived progress
// indicators attached on read paths.
package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/identity"
	"github.com/nnmc-digital/projectboard/internal/domain/task"
)

// Project represents an organizational project tracked on the delivery board.
// StageID is the manual stage override: set once at creation (lowest-order
// stage by default) and afterwards moved only by explicit caller action.
type Project struct {
	ID                      int64
	DocumentID              string
	Title                   string
	Description             string
	DepartmentID            *int64
	StartDate               *time.Time
	DueDate                 *time.Time
	Status                  Status
	Priority                Priority
	OwnerID                 *int64
	SupportingSpecialistIDs []int64
	ResponsibleUserIDs      []int64
	StageID                 *int64
	Tasks                   []task.Task
	Meetings                []Meeting
	CreatedAt               time.Time
	UpdatedAt               time.Time

	// Progress is derived at read time and never persisted.
	Progress *Progress
}

// Meeting is a related record included on project reads. Owned elsewhere;
// this service only surfaces it.
type Meeting struct {
	ID          int64
	Title       string
	ScheduledAt time.Time
	AuthorID    *int64
	Author      *identity.UserRef
}

// Validate checks business rules for the Project entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (p *Project) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(p.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if !p.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", p.Status)
	}
	if !p.Priority.IsValid() {
		fields["priorityLight"] = fmt.Sprintf("invalid: %q", p.Priority)
	}
	if p.StartDate != nil && p.DueDate != nil && domain.DateAfter(*p.StartDate, *p.DueDate) {
		fields["startDate"] = "must not be after dueDate"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// IsMember reports whether the given user is assigned to the project as
// owner, supporting specialist, or responsible user.
func (p *Project) IsMember(userID int64) bool {
	if p.OwnerID != nil && *p.OwnerID == userID {
		return true
	}
	for _, id := range p.SupportingSpecialistIDs {
		if id == userID {
			return true
		}
	}
	for _, id := range p.ResponsibleUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Change is a partial project mutation payload. Every field carries
// touched/untouched semantics; untouched fields are left unchanged by the
// store and do not participate in audit classification.
type Change struct {
	Title                   domain.Field[string]
	Description             domain.Field[string]
	DepartmentID            domain.Field[*int64]
	StartDate               domain.Field[*time.Time]
	DueDate                 domain.Field[*time.Time]
	Status                  domain.Field[Status]
	Priority                domain.Field[Priority]
	OwnerID                 domain.Field[*int64]
	SupportingSpecialistIDs domain.Field[[]int64]
	ResponsibleUserIDs      domain.Field[[]int64]
	StageID                 domain.Field[*int64]
}

// IsEmpty reports whether no field was touched.
func (c Change) IsEmpty() bool {
	return len(c.FieldNames()) == 0
}

// FieldNames returns the payload names of all touched fields, in a fixed
// order. The names match the external payload vocabulary so that audit
// metadata stays comparable across clients.
func (c Change) FieldNames() []string {
	var names []string
	if c.Title.IsSet() {
		names = append(names, "title")
	}
	if c.Description.IsSet() {
		names = append(names, "description")
	}
	if c.DepartmentID.IsSet() {
		names = append(names, "department")
	}
	if c.StartDate.IsSet() {
		names = append(names, "startDate")
	}
	if c.DueDate.IsSet() {
		names = append(names, "dueDate")
	}
	if c.Status.IsSet() {
		names = append(names, "status")
	}
	if c.Priority.IsSet() {
		names = append(names, "priorityLight")
	}
	if c.OwnerID.IsSet() {
		names = append(names, "owner")
	}
	if c.SupportingSpecialistIDs.IsSet() {
		names = append(names, "supportingSpecialists")
	}
	if c.ResponsibleUserIDs.IsSet() {
		names = append(names, "responsibleUsers")
	}
	if c.StageID.IsSet() {
		names = append(names, "manualStageOverride")
	}
	return names
}

// TouchesAssignment reports whether the payload touches any of the
// assignment fields (owner, supportingSpecialists, responsibleUsers).
func (c Change) TouchesAssignment() bool {
	return c.OwnerID.IsSet() || c.SupportingSpecialistIDs.IsSet() || c.ResponsibleUserIDs.IsSet()
}

// DeletesProject reports whether the payload sets status to DELETED.
func (c Change) DeletesProject() bool {
	s, ok := c.Status.Get()
	return ok && s == StatusDeleted
}

// Validate checks business rules for the touched fields only.
func (c Change) Validate() error {
	fields := make(map[string]string)

	if v, ok := c.Title.Get(); ok && strings.TrimSpace(v) == "" {
		fields["title"] = domain.MsgRequired
	}
	if v, ok := c.Status.Get(); ok && !v.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", v)
	}
	if v, ok := c.Priority.Get(); ok && !v.IsValid() {
		fields["priorityLight"] = fmt.Sprintf("invalid: %q", v)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Apply copies the touched fields onto p. Used by store implementations to
// realize partial updates.
func (c Change) Apply(p *Project) {
	if v, ok := c.Title.Get(); ok {
		p.Title = v
	}
	if v, ok := c.Description.Get(); ok {
		p.Description = v
	}
	if v, ok := c.DepartmentID.Get(); ok {
		p.DepartmentID = v
	}
	if v, ok := c.StartDate.Get(); ok {
		p.StartDate = v
	}
	if v, ok := c.DueDate.Get(); ok {
		p.DueDate = v
	}
	if v, ok := c.Status.Get(); ok {
		p.Status = v
	}
	if v, ok := c.Priority.Get(); ok {
		p.Priority = v
	}
	if v, ok := c.OwnerID.Get(); ok {
		p.OwnerID = v
	}
	if v, ok := c.SupportingSpecialistIDs.Get(); ok {
		p.SupportingSpecialistIDs = v
	}
	if v, ok := c.ResponsibleUserIDs.Get(); ok {
		p.ResponsibleUserIDs = v
	}
	if v, ok := c.StageID.Get(); ok {
		p.StageID = v
	}
}
