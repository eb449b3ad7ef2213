// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
// Entity fields use the camelCase payload vocabulary shared with the board
// clients; derived and server-assigned fields use snake_case.
package dto

import (
	"time"

	"github.com/nnmc-digital/projectboard/internal/domain/activity"
	"github.com/nnmc-digital/projectboard/internal/domain/project"
	"github.com/nnmc-digital/projectboard/internal/domain/stage"
	"github.com/nnmc-digital/projectboard/internal/domain/task"
)

// formatDate renders a nullable calendar date for a response body.
func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

// ProjectResponse represents a single project in HTTP responses. The
// progress block is derived on every read; it is present even when zero.
type ProjectResponse struct {
	ID                    int64             `json:"id"`
	DocumentID            string            `json:"documentId"`
	Title                 string            `json:"title"`
	Description           string            `json:"description,omitempty"`
	Department            *int64            `json:"department,omitempty"`
	StartDate             *string           `json:"startDate,omitempty"`
	DueDate               *string           `json:"dueDate,omitempty"`
	Status                string            `json:"status"`
	PriorityLight         string            `json:"priorityLight"`
	Owner                 *int64            `json:"owner,omitempty"`
	SupportingSpecialists []int64           `json:"supportingSpecialists,omitempty"`
	ResponsibleUsers      []int64           `json:"responsibleUsers,omitempty"`
	ManualStageOverride   *int64            `json:"manualStageOverride,omitempty"`
	Tasks                 []TaskResponse    `json:"tasks,omitempty"`
	Meetings              []MeetingResponse `json:"meetings,omitempty"`
	TotalTasks            int               `json:"total_tasks"`
	DoneTasks             int               `json:"done_tasks"`
	ProgressPercent       int               `json:"progress_percent"`
	ProgressStage         *int64            `json:"progress_stage,omitempty"`
	Overdue               bool              `json:"overdue"`
	DueSoon               bool              `json:"due_soon"`
	CreatedAt             string            `json:"created_at"`
	UpdatedAt             string            `json:"updated_at"`
}

// ProjectListResponse represents a list of projects in HTTP responses.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Count    int               `json:"count"`
}

// ToProjectResponse converts a domain Project entity to an HTTP response
// DTO. Tasks and meetings are included only when populated on the entity.
func ToProjectResponse(p *project.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:                    p.ID,
		DocumentID:            p.DocumentID,
		Title:                 p.Title,
		Description:           p.Description,
		Department:            p.DepartmentID,
		StartDate:             formatDate(p.StartDate),
		DueDate:               formatDate(p.DueDate),
		Status:                p.Status.String(),
		PriorityLight:         p.Priority.String(),
		Owner:                 p.OwnerID,
		SupportingSpecialists: p.SupportingSpecialistIDs,
		ResponsibleUsers:      p.ResponsibleUserIDs,
		ManualStageOverride:   p.StageID,
		CreatedAt:             p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             p.UpdatedAt.Format(time.RFC3339),
	}

	if p.Progress != nil {
		resp.TotalTasks = p.Progress.TotalTasks
		resp.DoneTasks = p.Progress.DoneTasks
		resp.ProgressPercent = p.Progress.Percent
		resp.ProgressStage = p.Progress.StageHintID
		resp.Overdue = p.Progress.Overdue
		resp.DueSoon = p.Progress.DueSoon
	}

	if len(p.Tasks) > 0 {
		resp.Tasks = make([]TaskResponse, len(p.Tasks))
		for i := range p.Tasks {
			resp.Tasks[i] = ToTaskResponse(&p.Tasks[i])
		}
	}

	if len(p.Meetings) > 0 {
		resp.Meetings = make([]MeetingResponse, len(p.Meetings))
		for i := range p.Meetings {
			resp.Meetings[i] = toMeetingResponse(&p.Meetings[i])
		}
	}

	return resp
}

// ToProjectListResponse converts a slice of domain Project entities to an
// HTTP list response DTO.
func ToProjectListResponse(projects []project.Project) ProjectListResponse {
	items := make([]ProjectResponse, len(projects))
	for i := range projects {
		items[i] = ToProjectResponse(&projects[i])
	}
	return ProjectListResponse{
		Projects: items,
		Count:    len(items),
	}
}

// TaskResponse represents a single task in HTTP responses.
type TaskResponse struct {
	ID          int64   `json:"id"`
	DocumentID  string  `json:"documentId"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	Order       int     `json:"order"`
	Project     *int64  `json:"project,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ToTaskResponse converts a domain Task entity to an HTTP response DTO.
func ToTaskResponse(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		DocumentID:  t.DocumentID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		StartDate:   formatDate(t.StartDate),
		EndDate:     formatDate(t.EndDate),
		DueDate:     formatDate(t.DueDate),
		Order:       t.Order,
		Project:     t.ProjectID,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

// MeetingResponse represents a related meeting record on a project read.
type MeetingResponse struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	ScheduledAt string         `json:"scheduledAt"`
	Author      *AuthorRef     `json:"author,omitempty"`
}

// AuthorRef is a lightweight user reference on included meeting records.
type AuthorRef struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

func toMeetingResponse(m *project.Meeting) MeetingResponse {
	resp := MeetingResponse{
		ID:          m.ID,
		Title:       m.Title,
		ScheduledAt: m.ScheduledAt.Format(time.RFC3339),
	}
	if m.Author != nil {
		resp.Author = &AuthorRef{
			ID:        m.Author.ID,
			Username:  m.Author.Username,
			FirstName: m.Author.FirstName,
			LastName:  m.Author.LastName,
		}
	}
	return resp
}

// StageResponse represents a board stage in HTTP responses.
type StageResponse struct {
	ID         int64  `json:"id"`
	Order      int    `json:"order"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	MinPercent int    `json:"min_percent"`
	MaxPercent int    `json:"max_percent"`
}

// StageListResponse represents the stage catalog in HTTP responses.
type StageListResponse struct {
	Stages []StageResponse `json:"stages"`
	Count  int             `json:"count"`
}

// ToStageListResponse converts the stage catalog to an HTTP list response DTO.
func ToStageListResponse(stages []stage.Stage) StageListResponse {
	items := make([]StageResponse, len(stages))
	for i, s := range stages {
		items[i] = StageResponse{
			ID:         s.ID,
			Order:      s.Order,
			Name:       s.Name,
			Color:      s.Color,
			MinPercent: s.MinPercent,
			MaxPercent: s.MaxPercent,
		}
	}
	return StageListResponse{Stages: items, Count: len(items)}
}

// ActivityResponse represents a single audit entry in HTTP responses.
type ActivityResponse struct {
	ID          int64          `json:"id"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	Project     *int64         `json:"project,omitempty"`
	User        *int64         `json:"user,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   string         `json:"created_at"`
}

// ActivityListResponse represents the audit trail in HTTP responses.
type ActivityListResponse struct {
	Activity []ActivityResponse `json:"activity"`
	Count    int                `json:"count"`
}

// ToActivityListResponse converts audit entries to an HTTP list response DTO.
func ToActivityListResponse(entries []activity.Entry) ActivityListResponse {
	items := make([]ActivityResponse, len(entries))
	for i := range entries {
		e := &entries[i]
		items[i] = ActivityResponse{
			ID:          e.ID,
			Action:      e.Action.String(),
			Description: e.Description,
			Project:     e.ProjectID,
			User:        e.UserID,
			Metadata:    e.Metadata,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		}
	}
	return ActivityListResponse{Activity: items, Count: len(items)}
}
