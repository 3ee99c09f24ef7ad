package todo

import (
	"slices"
	"time"
)

// SortByDeadline puts tasks with a deadline first, earliest first, with
// calendar-day deadlines falling due at midnight in loc. Tasks without a
// deadline follow. Equal keys keep their relative order.
func SortByDeadline(tasks []Task, loc *time.Location) {
	slices.SortStableFunc(tasks, deadlineOrder(loc))
}

func deadlineOrder(loc *time.Location) func(a, b Task) int {
	return func(a, b Task) int {
		switch {
		case !a.Deadline.IsZero() && !b.Deadline.IsZero():
			return a.Deadline.Compare(b.Deadline, loc)
		case !a.Deadline.IsZero():
			return -1
		case !b.Deadline.IsZero():
			return 1
		}
		return 0
	}
}

// IsSortedByDeadline reports whether tasks already satisfy SortByDeadline's order.
func IsSortedByDeadline(tasks []Task, loc *time.Location) bool {
	return slices.IsSortedFunc(tasks, deadlineOrder(loc))
}
