// Package activity defines the append-only audit trail: entry records, the
// action vocabulary, and the pure derivation of entries from mutation
// payloads. Deriving here keeps the classification rules testable without a
// store; the application layer owns the best-effort append.
package activity

import "time"

// Action tags an audit entry with the kind of state change it records.
type Action string

const (
	ActionCreateProject Action = "CREATE_PROJECT"
	ActionUpdateProject Action = "UPDATE_PROJECT"
	ActionDeleteProject Action = "DELETE_PROJECT"
	ActionMoveStage     Action = "MOVE_STAGE"
	ActionAssignUser    Action = "ASSIGN_USER"
	ActionCreateTask    Action = "CREATE_TASK"
	ActionUpdateTask    Action = "UPDATE_TASK"
	ActionDeleteTask    Action = "DELETE_TASK"
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	switch a {
	case ActionCreateProject, ActionUpdateProject, ActionDeleteProject,
		ActionMoveStage, ActionAssignUser,
		ActionCreateTask, ActionUpdateTask, ActionDeleteTask:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (a Action) String() string {
	return string(a)
}

// Entry is a single audit record. Append-only: never updated or deleted by
// this service. ProjectID and UserID are nullable (orphaned tasks, system
// mutations). Metadata captures a snapshot sufficient to reconstruct what
// changed, at minimum the touched field names.
type Entry struct {
	ID          int64
	Action      Action
	Description string
	ProjectID   *int64
	UserID      *int64
	Metadata    map[string]any
	CreatedAt   time.Time
}

// Filter holds optional criteria for listing audit entries. Zero-value
// fields mean "no filter" for that dimension.
type Filter struct {
	ProjectID *int64
	Action    Action
}
