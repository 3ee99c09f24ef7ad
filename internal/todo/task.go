// Package todo holds the task list engine: the task collection, its
// mutations, deadline ordering, tag colors and persistence.
package todo

import (
	"encoding/json"
	"slices"
	"strings"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the priorities from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority accepts the priority names and a few short forms.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l", "1":
		return PriorityLow, true
	case "medium", "med", "m", "2":
		return PriorityMedium, true
	case "high", "h", "3":
		return PriorityHigh, true
	}
	return PriorityMedium, false
}

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// OrDefault returns p, or medium when p is not a known priority.
func (p Priority) OrDefault() Priority {
	if p.Valid() {
		return p
	}
	return PriorityMedium
}

func (p Priority) String() string {
	return string(p.OrDefault())
}

func (p Priority) Label() string {
	switch p.OrDefault() {
	case PriorityLow:
		return "LOW"
	case PriorityHigh:
		return "HIGH"
	default:
		return "MEDIUM"
	}
}

func (p Priority) Color() string {
	switch p.OrDefault() {
	case PriorityLow:
		return "#22c55e" // Green
	case PriorityHigh:
		return "#dc2626" // Red
	default:
		return "#facc15" // Yellow
	}
}

func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Priority) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		*p = PriorityMedium
		return nil
	}
	*p = Priority(*s).OrDefault()
	return nil
}

// Task represents one to-do item.
type Task struct {
	ID          int64    `json:"id"`
	Text        string   `json:"text"`
	Completed   bool     `json:"completed"`
	Description string   `json:"description"`
	Deadline    Deadline `json:"deadline"`
	Tags        []string `json:"tags"`
	Priority    Priority `json:"priority"`
}

func (t *Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// RemoveTag drops tag from the task. The tag keeps its registry color.
func (t *Task) RemoveTag(tag string) {
	if !t.HasTag(tag) {
		return
	}
	out := make([]string, 0, len(t.Tags)-1)
	for _, existing := range t.Tags {
		if existing != tag {
			out = append(out, existing)
		}
	}
	t.Tags = out
}

// Clone returns a copy that shares no slices with t.
func (t Task) Clone() Task {
	t.Tags = slices.Clone(t.Tags)
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t
}

// Details are the fields the detail view edits.
type Details struct {
	Priority    Priority
	Description string
	Deadline    Deadline
	Tags        []string
}

// DetailsOf returns the editable fields of t.
func DetailsOf(t Task) Details {
	return Details{
		Priority:    t.Priority,
		Description: t.Description,
		Deadline:    t.Deadline,
		Tags:        slices.Clone(t.Tags),
	}
}

func uniqueTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !slices.Contains(out, tag) {
			out = append(out, tag)
		}
	}
	return out
}
