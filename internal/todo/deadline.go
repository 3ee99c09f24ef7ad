package todo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Deadline is an optional due date. The zero value means no deadline.
//
// Deadlines entered in the UI are calendar days. A stored deadline may also
// carry a time of day, in which case it is kept as an instant.
type Deadline struct {
	at       time.Time
	dateOnly bool
}

// Date returns the deadline for a calendar day.
func Date(year int, month time.Month, day int) Deadline {
	return Deadline{at: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), dateOnly: true}
}

// DeadlineAt returns a deadline at an exact instant.
func DeadlineAt(t time.Time) Deadline {
	if t.IsZero() {
		return Deadline{}
	}
	return Deadline{at: t.Round(0)}
}

// ParseDeadline accepts "", YYYY-MM-DD and RFC 3339 timestamps.
func ParseDeadline(s string) (Deadline, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Deadline{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date(t.Date()), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DeadlineAt(t), nil
	}
	return Deadline{}, fmt.Errorf("invalid deadline %q: want YYYY-MM-DD", s)
}

func (d Deadline) IsZero() bool { return d.at.IsZero() }

// Day returns the calendar day of the deadline as seen from loc.
func (d Deadline) Day(loc *time.Location) (int, time.Month, int) {
	if d.dateOnly {
		return d.at.Date()
	}
	return d.at.In(loc).Date()
}

// Instant returns the moment the deadline falls due. A calendar-day deadline
// falls due at midnight in loc.
func (d Deadline) Instant(loc *time.Location) time.Time {
	if d.dateOnly {
		y, m, day := d.at.Date()
		return time.Date(y, m, day, 0, 0, 0, 0, loc)
	}
	return d.at
}

// Compare orders deadlines by the moment they fall due in loc.
func (d Deadline) Compare(o Deadline, loc *time.Location) int {
	return d.Instant(loc).Compare(o.Instant(loc))
}

func (d Deadline) Equal(o Deadline) bool {
	return d.dateOnly == o.dateOnly && d.at.Equal(o.at)
}

func (d Deadline) String() string {
	switch {
	case d.IsZero():
		return ""
	case d.dateOnly:
		return d.at.Format(dateLayout)
	default:
		return d.at.Format(time.RFC3339Nano)
	}
}

func (d Deadline) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON treats null, "" and unreadable dates as no deadline.
func (d *Deadline) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*d = Deadline{}
	if s == nil {
		return nil
	}
	if parsed, err := ParseDeadline(*s); err == nil {
		*d = parsed
	}
	return nil
}

// IsOverdue reports whether an open task's deadline day lies before the
// calendar day of now, read in now's location.
func IsOverdue(t Task, now time.Time) bool {
	if t.Deadline.IsZero() || t.Completed {
		return false
	}
	y, m, d := t.Deadline.Day(now.Location())
	due := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ny, nm, nd := now.Date()
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}

// IsDeadlineNear reports whether an open task falls due between now and one
// day from now, both bounds included.
func IsDeadlineNear(t Task, now time.Time) bool {
	if t.Deadline.IsZero() || t.Completed {
		return false
	}
	diff := t.Deadline.Instant(now.Location()).Sub(now)
	return diff >= 0 && diff <= 24*time.Hour
}
