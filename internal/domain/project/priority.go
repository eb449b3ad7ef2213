package project

// Priority is the traffic-light priority indicator shown on the board.
type Priority string

const (
	PriorityRed    Priority = "RED"
	PriorityYellow Priority = "YELLOW"
	PriorityGreen  Priority = "GREEN"
)

// IsValid returns true if the priority is one of the defined constants.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityRed, PriorityYellow, PriorityGreen:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (p Priority) String() string {
	return string(p)
}
