package activity

import (
	"fmt"

	"github.com/nnmc-digital/projectboard/internal/domain/project"
	"github.com/nnmc-digital/projectboard/internal/domain/task"
)

// assignmentFields are the payload fields whose presence classifies a
// mutation as an assignment change.
var assignmentFields = []string{"owner", "supportingSpecialists", "responsibleUsers"}

// ProjectCreated derives the single audit entry for a project creation.
func ProjectCreated(p *project.Project, actor *int64) Entry {
	return Entry{
		Action:      ActionCreateProject,
		Description: fmt.Sprintf("Created project %q", p.Title),
		ProjectID:   &p.ID,
		UserID:      actor,
		Metadata:    map[string]any{"projectTitle": p.Title},
	}
}

// ProjectUpdated derives zero or more audit entries from a project update
// payload. The rules are evaluated independently, so one mutation may yield
// several entries:
//
//   - manualStageOverride present        -> MOVE_STAGE
//   - status set to DELETED              -> DELETE_PROJECT (suppresses UPDATE_PROJECT)
//   - any assignment field present       -> ASSIGN_USER
//   - any other field present, not a     -> UPDATE_PROJECT
//     delete
//
// Classification looks only at the fields present in the payload, never at
// the full resulting record.
func ProjectUpdated(p *project.Project, ch project.Change, actor *int64) []Entry {
	changes := ch.FieldNames()
	var entries []Entry

	add := func(action Action, description string, metadata map[string]any) {
		if metadata == nil {
			metadata = map[string]any{"projectTitle": p.Title, "changes": changes}
		}
		entries = append(entries, Entry{
			Action:      action,
			Description: description,
			ProjectID:   &p.ID,
			UserID:      actor,
			Metadata:    metadata,
		})
	}

	if ch.StageID.IsSet() {
		add(ActionMoveStage, fmt.Sprintf("Moved project %q", p.Title), nil)
	}

	deleted := ch.DeletesProject()
	if deleted {
		add(ActionDeleteProject, fmt.Sprintf("Deleted project %q", p.Title), nil)
	}

	if ch.TouchesAssignment() {
		add(ActionAssignUser, fmt.Sprintf("Assigned project participants: %q", p.Title), map[string]any{
			"projectTitle": p.Title,
			"changes":      changes,
			"fields":       assignmentFields,
		})
	}

	if !deleted && hasPlainUpdateFields(changes) {
		add(ActionUpdateProject, fmt.Sprintf("Updated project %q", p.Title), nil)
	}

	return entries
}

// hasPlainUpdateFields reports whether any touched field remains after
// removing the stage override and the assignment fields.
func hasPlainUpdateFields(changes []string) bool {
	for _, name := range changes {
		if name == "manualStageOverride" {
			continue
		}
		if isAssignmentField(name) {
			continue
		}
		return true
	}
	return false
}

func isAssignmentField(name string) bool {
	for _, f := range assignmentFields {
		if name == f {
			return true
		}
	}
	return false
}

// TaskCreated derives the audit entry for a task creation. The parent
// project's title is resolved by the caller so the description reads in
// board terms.
func TaskCreated(t *task.Task, projectTitle string, actor *int64) Entry {
	return Entry{
		Action:      ActionCreateTask,
		Description: fmt.Sprintf("Added task %q to project %q", t.Title, projectTitle),
		ProjectID:   t.ProjectID,
		UserID:      actor,
		Metadata:    map[string]any{"taskTitle": t.Title, "projectTitle": projectTitle},
	}
}

// TaskUpdated derives the audit entry for a task update. When the payload
// changes the task status, the description names the new status by its
// display label instead of the generic message.
func TaskUpdated(t *task.Task, ch task.Change, projectTitle string, actor *int64) Entry {
	description := fmt.Sprintf("Updated task %q", t.Title)
	if status, ok := ch.Status.Get(); ok {
		description = fmt.Sprintf("Changed status of task %q to %q", t.Title, status.Label())
	}

	return Entry{
		Action:      ActionUpdateTask,
		Description: description,
		ProjectID:   t.ProjectID,
		UserID:      actor,
		Metadata: map[string]any{
			"taskTitle":    t.Title,
			"projectTitle": projectTitle,
			"changes":      ch.FieldNames(),
		},
	}
}

// TaskDeleted derives the audit entry for a task deletion. It must be built
// from the pre-delete snapshot: once the record is removed there is no other
// source for the task's title or project.
func TaskDeleted(t *task.Task, projectTitle string, actor *int64) Entry {
	return Entry{
		Action:      ActionDeleteTask,
		Description: fmt.Sprintf("Deleted task %q from project %q", t.Title, projectTitle),
		ProjectID:   t.ProjectID,
		UserID:      actor,
		Metadata:    map[string]any{"taskTitle": t.Title, "projectTitle": projectTitle},
	}
}
