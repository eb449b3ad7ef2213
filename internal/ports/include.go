package ports

import (
	"fmt"

	"github.com/nnmc-digital/projectboard/internal/domain"
)

// Include is the strongly-typed inclusion spec for project reads. It names
// the fixed set of relations a read may populate; anything outside this set
// is rejected at the boundary rather than patched per request.
type Include struct {
	Tasks                 bool
	Department            bool
	Owner                 bool
	SupportingSpecialists bool
	Stage                 bool
	Meetings              bool
	MeetingAuthors        bool
}

// FullInclude returns an Include with every recognized relation enabled.
// Single-project reads default to this so derived progress and the board
// view always have their inputs loaded.
func FullInclude() Include {
	return Include{
		Tasks:                 true,
		Department:            true,
		Owner:                 true,
		SupportingSpecialists: true,
		Stage:                 true,
		Meetings:              true,
		MeetingAuthors:        true,
	}
}

// ParseInclude validates a list of relation paths and builds an Include.
// Recognized paths: tasks, department, owner, supporting_specialists,
// stage, meetings, meetings.author. Requesting meetings.author implies
// meetings. Unknown paths fail with a validation error.
func ParseInclude(paths []string) (Include, error) {
	var inc Include
	for _, p := range paths {
		switch p {
		case "tasks":
			inc.Tasks = true
		case "department":
			inc.Department = true
		case "owner":
			inc.Owner = true
		case "supporting_specialists":
			inc.SupportingSpecialists = true
		case "stage":
			inc.Stage = true
		case "meetings":
			inc.Meetings = true
		case "meetings.author":
			inc.Meetings = true
			inc.MeetingAuthors = true
		default:
			return Include{}, &domain.ValidationError{
				Fields: map[string]string{"include": fmt.Sprintf("unknown relation %q", p)},
			}
		}
	}
	return inc, nil
}
