package project

// Status represents the lifecycle state of a Project.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusArchived Status = "ARCHIVED"
	StatusDeleted  Status = "DELETED"
)

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusArchived, StatusDeleted:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether the soft lifecycle allows moving from s
// to the target status. ACTIVE and ARCHIVED convert freely between each
// other and either may be soft-deleted. DELETED is terminal for soft
// mutation; only an administrator hard delete removes the record.
func (s Status) CanTransitionTo(target Status) bool {
	if s == target {
		return true
	}
	switch s {
	case StatusActive:
		return target == StatusArchived || target == StatusDeleted
	case StatusArchived:
		return target == StatusActive || target == StatusDeleted
	case StatusDeleted:
		return false
	default:
		return false
	}
}
