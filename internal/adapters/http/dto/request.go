package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/project"
	"github.com/nnmc-digital/projectboard/internal/domain/task"
)

const msgMustNotEmpty = "must not be empty"

// Optional is a JSON field wrapper that records payload presence. Its
// UnmarshalJSON runs only when the key appears in the body, which gives
// partial-update requests the touched/untouched distinction the domain
// payloads need. An explicit null marks the field present with its zero
// value.
type Optional[T any] struct {
	Value   T
	Present bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Present = true
	if string(b) == "null" {
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// Date is a calendar date in a request body. It accepts both date-only
// ("2006-01-02") and RFC 3339 values; clients send either depending on
// whether a picker or a timestamp produced the field.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	d.Time = t
	return nil
}

// timePtr converts an optional request date to the domain's nullable time.
func timePtr(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// ProjectRef is the polymorphic project reference as it appears in task
// payloads. Clients send one of: a numeric id, a document-id string, an
// object carrying id or documentId, or a connect-style descriptor listing
// references. Present records whether the key appeared at all.
type ProjectRef struct {
	Ref     task.ProjectRef
	Present bool
}

// ProjectRefOf builds a present reference to the given project id. Used by
// nested routes where the owning project comes from the URL.
func ProjectRefOf(id int64) ProjectRef {
	return ProjectRef{Ref: task.ProjectRef{ID: id}, Present: true}
}

// UnmarshalJSON implements json.Unmarshaler for the accepted reference
// shapes. A null reference is present but empty.
func (p *ProjectRef) UnmarshalJSON(b []byte) error {
	p.Present = true

	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	ref, err := parseProjectRef(b)
	if err != nil {
		return err
	}
	p.Ref = ref
	return nil
}

func parseProjectRef(b []byte) (task.ProjectRef, error) {
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return task.ProjectRef{}, err
		}
		return task.ProjectRef{DocumentID: s}, nil

	case '{':
		var obj struct {
			ID         int64             `json:"id"`
			DocumentID string            `json:"documentId"`
			Connect    []json.RawMessage `json:"connect"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return task.ProjectRef{}, err
		}
		ref := task.ProjectRef{ID: obj.ID, DocumentID: obj.DocumentID}
		for _, raw := range obj.Connect {
			inner, err := parseProjectRef(bytes.TrimSpace(raw))
			if err != nil {
				return task.ProjectRef{}, err
			}
			ref.Connect = append(ref.Connect, inner)
		}
		return ref, nil

	default:
		var id int64
		if err := json.Unmarshal(b, &id); err != nil {
			return task.ProjectRef{}, fmt.Errorf("invalid project reference: %w", err)
		}
		return task.ProjectRef{ID: id}, nil
	}
}

// CreateProjectRequest represents the JSON body for creating a new project.
type CreateProjectRequest struct {
	Title                 string  `json:"title"`
	Description           string  `json:"description"`
	Department            *int64  `json:"department"`
	StartDate             *Date   `json:"startDate"`
	DueDate               *Date   `json:"dueDate"`
	Status                string  `json:"status"`
	PriorityLight         string  `json:"priorityLight"`
	Owner                 *int64  `json:"owner"`
	SupportingSpecialists []int64 `json:"supportingSpecialists"`
	ResponsibleUsers      []int64 `json:"responsibleUsers"`
	ManualStageOverride   *int64  `json:"manualStageOverride"`
}

// Validate checks that required fields are present and enum fields carry
// recognized values. Returns a *domain.ValidationError if any checks fail.
func (r *CreateProjectRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if r.Status != "" && !project.Status(r.Status).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", r.Status)
	}
	if r.PriorityLight != "" && !project.Priority(r.PriorityLight).IsValid() {
		fields["priorityLight"] = fmt.Sprintf("invalid: %q", r.PriorityLight)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToDomain converts the request to a domain Project entity. Lifecycle
// defaults for omitted status and priority are applied by the service.
func (r *CreateProjectRequest) ToDomain() *project.Project {
	return &project.Project{
		Title:                   r.Title,
		Description:             r.Description,
		DepartmentID:            r.Department,
		StartDate:               timePtr(r.StartDate),
		DueDate:                 timePtr(r.DueDate),
		Status:                  project.Status(r.Status),
		Priority:                project.Priority(r.PriorityLight),
		OwnerID:                 r.Owner,
		SupportingSpecialistIDs: r.SupportingSpecialists,
		ResponsibleUserIDs:      r.ResponsibleUsers,
		StageID:                 r.ManualStageOverride,
	}
}

// UpdateProjectRequest represents the JSON body for a partial project
// update. Absent keys leave the corresponding field unchanged; an explicit
// null clears a nullable field.
type UpdateProjectRequest struct {
	Title                 Optional[string]  `json:"title"`
	Description           Optional[string]  `json:"description"`
	Department            Optional[*int64]  `json:"department"`
	StartDate             Optional[*Date]   `json:"startDate"`
	DueDate               Optional[*Date]   `json:"dueDate"`
	Status                Optional[string]  `json:"status"`
	PriorityLight         Optional[string]  `json:"priorityLight"`
	Owner                 Optional[*int64]  `json:"owner"`
	SupportingSpecialists Optional[[]int64] `json:"supportingSpecialists"`
	ResponsibleUsers      Optional[[]int64] `json:"responsibleUsers"`
	ManualStageOverride   Optional[*int64]  `json:"manualStageOverride"`
}

// Validate checks that any provided fields have valid values.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateProjectRequest) Validate() error {
	fields := make(map[string]string)

	if r.Title.Present && strings.TrimSpace(r.Title.Value) == "" {
		fields["title"] = msgMustNotEmpty
	}
	if r.Status.Present && !project.Status(r.Status.Value).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", r.Status.Value)
	}
	if r.PriorityLight.Present && !project.Priority(r.PriorityLight.Value).IsValid() {
		fields["priorityLight"] = fmt.Sprintf("invalid: %q", r.PriorityLight.Value)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToChange converts the request to a domain change payload carrying only
// the touched fields.
func (r *UpdateProjectRequest) ToChange() project.Change {
	var ch project.Change
	if r.Title.Present {
		ch.Title = domain.Set(r.Title.Value)
	}
	if r.Description.Present {
		ch.Description = domain.Set(r.Description.Value)
	}
	if r.Department.Present {
		ch.DepartmentID = domain.Set(r.Department.Value)
	}
	if r.StartDate.Present {
		ch.StartDate = domain.Set(timePtr(r.StartDate.Value))
	}
	if r.DueDate.Present {
		ch.DueDate = domain.Set(timePtr(r.DueDate.Value))
	}
	if r.Status.Present {
		ch.Status = domain.Set(project.Status(r.Status.Value))
	}
	if r.PriorityLight.Present {
		ch.Priority = domain.Set(project.Priority(r.PriorityLight.Value))
	}
	if r.Owner.Present {
		ch.OwnerID = domain.Set(r.Owner.Value)
	}
	if r.SupportingSpecialists.Present {
		ch.SupportingSpecialistIDs = domain.Set(r.SupportingSpecialists.Value)
	}
	if r.ResponsibleUsers.Present {
		ch.ResponsibleUserIDs = domain.Set(r.ResponsibleUsers.Value)
	}
	if r.ManualStageOverride.Present {
		ch.StageID = domain.Set(r.ManualStageOverride.Value)
	}
	return ch
}

// UpdateProjectStageRequest represents the JSON body for moving a project
// on the board. A null stage clears the manual override.
type UpdateProjectStageRequest struct {
	Stage Optional[*int64] `json:"stage"`
}

// Validate checks that the stage key is present (possibly null).
// Returns a *domain.ValidationError if it is missing.
func (r *UpdateProjectStageRequest) Validate() error {
	if !r.Stage.Present {
		return &domain.ValidationError{
			Fields: map[string]string{"stage": domain.MsgRequired},
		}
	}
	return nil
}

// CreateTaskRequest represents the JSON body for creating a new task.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	StartDate   *Date      `json:"startDate"`
	EndDate     *Date      `json:"endDate"`
	DueDate     *Date      `json:"dueDate"`
	Order       *int       `json:"order"`
	Project     ProjectRef `json:"project"`
}

// Validate checks that required fields are present and enum fields carry
// recognized values. Returns a *domain.ValidationError if any checks fail.
func (r *CreateTaskRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if r.Status != "" && !task.Status(r.Status).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", r.Status)
	}
	if !r.Project.Present || r.Project.Ref.IsZero() {
		fields["project"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToChange converts the request to a domain change payload.
func (r *CreateTaskRequest) ToChange() task.Change {
	ch := task.Change{
		Title:       domain.Set(r.Title),
		Description: domain.Set(r.Description),
	}
	if r.Status != "" {
		ch.Status = domain.Set(task.Status(r.Status))
	}
	if r.StartDate != nil {
		ch.StartDate = domain.Set(timePtr(r.StartDate))
	}
	if r.EndDate != nil {
		ch.EndDate = domain.Set(timePtr(r.EndDate))
	}
	if r.DueDate != nil {
		ch.DueDate = domain.Set(timePtr(r.DueDate))
	}
	if r.Order != nil {
		ch.Order = domain.Set(*r.Order)
	}
	if r.Project.Present {
		ch.Project = domain.Set(r.Project.Ref)
	}
	return ch
}

// UpdateTaskRequest represents the JSON body for a partial task update.
// Absent keys leave the corresponding field unchanged.
type UpdateTaskRequest struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Status      Optional[string] `json:"status"`
	StartDate   Optional[*Date]  `json:"startDate"`
	EndDate     Optional[*Date]  `json:"endDate"`
	DueDate     Optional[*Date]  `json:"dueDate"`
	Order       Optional[int]    `json:"order"`
	Project     ProjectRef       `json:"project"`
}

// Validate checks that any provided fields have valid values.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateTaskRequest) Validate() error {
	fields := make(map[string]string)

	if r.Title.Present && strings.TrimSpace(r.Title.Value) == "" {
		fields["title"] = msgMustNotEmpty
	}
	if r.Status.Present && !task.Status(r.Status.Value).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", r.Status.Value)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToChange converts the request to a domain change payload carrying only
// the touched fields.
func (r *UpdateTaskRequest) ToChange() task.Change {
	var ch task.Change
	if r.Title.Present {
		ch.Title = domain.Set(r.Title.Value)
	}
	if r.Description.Present {
		ch.Description = domain.Set(r.Description.Value)
	}
	if r.Status.Present {
		ch.Status = domain.Set(task.Status(r.Status.Value))
	}
	if r.StartDate.Present {
		ch.StartDate = domain.Set(timePtr(r.StartDate.Value))
	}
	if r.EndDate.Present {
		ch.EndDate = domain.Set(timePtr(r.EndDate.Value))
	}
	if r.DueDate.Present {
		ch.DueDate = domain.Set(timePtr(r.DueDate.Value))
	}
	if r.Order.Present {
		ch.Order = domain.Set(r.Order.Value)
	}
	if r.Project.Present {
		ch.Project = domain.Set(r.Project.Ref)
	}
	return ch
}
