package task

import (
	"fmt"
	"time"

	"github.com/nnmc-digital/projectboard/internal/domain"
)

// CheckDeadline validates the touched date fields of a task payload against
// the owning project's due date. A nil projectDue passes trivially (the
// project has no deadline). All comparisons use calendar-date granularity;
// a touched date fails only when it falls strictly after the deadline.
func CheckDeadline(c Change, projectDue *time.Time) error {
	if projectDue == nil {
		return nil
	}
	due := domain.DateOnly(*projectDue)
	msg := fmt.Sprintf("must not exceed project deadline %s", due.Format(time.DateOnly))

	fields := make(map[string]string)
	if v, ok := c.StartDate.Get(); ok && v != nil && domain.DateAfter(*v, due) {
		fields["startDate"] = msg
	}
	if v, ok := c.EndDate.Get(); ok && v != nil && domain.DateAfter(*v, due) {
		fields["endDate"] = msg
	}
	if v, ok := c.DueDate.Get(); ok && v != nil && domain.DateAfter(*v, due) {
		fields["dueDate"] = msg
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
