package project

import (
	"math"
	"time"

	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/task"
)

// dueSoonWindowDays is the inclusive warning window before a deadline.
const dueSoonWindowDays = 3

// Progress holds the indicators derived from a project's current task state
// and deadline. Computed on every read path; never stored.
type Progress struct {
	TotalTasks int
	DoneTasks  int
	Percent    int
	Overdue    bool
	DueSoon    bool

	// StageHintID names the board stage whose percent range contains
	// Percent. Informational only: it is filled from the stage catalog by
	// the read path, stays independent of the manual override, and never
	// moves the project. Nil when the catalog is empty.
	StageHintID *int64
}

// ComputeProgress derives the progress indicators for p as of the given
// calendar date. Pure function of current state.
//
// Percent is round(done/total*100), or 0 when the project has no tasks.
// Overdue is true only for ACTIVE projects whose due date lies strictly in
// the past; DueSoon is true only for ACTIVE, non-overdue projects whose due
// date is within the next dueSoonWindowDays days (inclusive of today).
// ARCHIVED and DELETED projects never report either flag.
func ComputeProgress(p *Project, today time.Time) Progress {
	prog := Progress{TotalTasks: len(p.Tasks)}

	for i := range p.Tasks {
		if p.Tasks[i].Status == task.StatusDone {
			prog.DoneTasks++
		}
	}
	if prog.TotalTasks > 0 {
		prog.Percent = int(math.Round(float64(prog.DoneTasks) / float64(prog.TotalTasks) * 100))
	}

	if p.Status != StatusActive || p.DueDate == nil {
		return prog
	}

	if domain.DateAfter(today, *p.DueDate) {
		prog.Overdue = true
		return prog
	}

	days := domain.DaysBetween(today, *p.DueDate)
	prog.DueSoon = days >= 0 && days <= dueSoonWindowDays

	return prog
}
