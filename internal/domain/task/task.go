// Package task defines the Task entity scoped to a single project, its
// partial-update payload with the polymorphic project reference, and the
// cross-entity deadline rule against the owning project.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/nnmc-digital/projectboard/internal/domain"
)

// Task is a unit of work owned by exactly one project. The project
// reference is required and, in practice, immutable after creation.
type Task struct {
	ID          int64
	DocumentID  string
	Title       string
	Description string
	Status      Status
	StartDate   *time.Time
	EndDate     *time.Time
	DueDate     *time.Time
	Order       int
	ProjectID   *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks business rules for the Task entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (t *Task) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(t.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if !t.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", t.Status)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Change is a partial task mutation payload.
type Change struct {
	Title       domain.Field[string]
	Description domain.Field[string]
	Status      domain.Field[Status]
	StartDate   domain.Field[*time.Time]
	EndDate     domain.Field[*time.Time]
	DueDate     domain.Field[*time.Time]
	Order       domain.Field[int]
	Project     domain.Field[ProjectRef]
}

// TouchesDates reports whether the payload carries any of the date fields
// that participate in deadline validation. A payload that does not touch a
// date field never triggers the validator.
func (c Change) TouchesDates() bool {
	return c.StartDate.IsSet() || c.EndDate.IsSet() || c.DueDate.IsSet()
}

// FieldNames returns the payload names of all touched fields, in a fixed
// order, using the external payload vocabulary.
func (c Change) FieldNames() []string {
	var names []string
	if c.Title.IsSet() {
		names = append(names, "title")
	}
	if c.Description.IsSet() {
		names = append(names, "description")
	}
	if c.Status.IsSet() {
		names = append(names, "status")
	}
	if c.StartDate.IsSet() {
		names = append(names, "startDate")
	}
	if c.EndDate.IsSet() {
		names = append(names, "endDate")
	}
	if c.DueDate.IsSet() {
		names = append(names, "dueDate")
	}
	if c.Order.IsSet() {
		names = append(names, "order")
	}
	if c.Project.IsSet() {
		names = append(names, "project")
	}
	return names
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

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Apply copies the touched fields onto t. The project reference is resolved
// by the application layer before Apply and is therefore skipped here.
func (c Change) Apply(t *Task) {
	if v, ok := c.Title.Get(); ok {
		t.Title = v
	}
	if v, ok := c.Description.Get(); ok {
		t.Description = v
	}
	if v, ok := c.Status.Get(); ok {
		t.Status = v
	}
	if v, ok := c.StartDate.Get(); ok {
		t.StartDate = v
	}
	if v, ok := c.EndDate.Get(); ok {
		t.EndDate = v
	}
	if v, ok := c.DueDate.Get(); ok {
		t.DueDate = v
	}
	if v, ok := c.Order.Get(); ok {
		t.Order = v
	}
}
