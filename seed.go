package main

import (
	"time"

	"github.com/WillyV3/todobi/internal/todo"
)

type seedTask struct {
	Text        string
	Description string
	Priority    todo.Priority
	// DueIn is the deadline in days from today; negative is overdue, nil is none.
	DueIn *int
	Tags  []string
}

func days(n int) *int { return &n }

// sampleTasks is a small list that shows every part of the list view:
// an overdue task, one due tomorrow, completed work and a few tags.
var sampleTasks = []seedTask{
	{Text: "Renew car insurance", Description: "Compare two quotes before renewing", Priority: todo.PriorityHigh, DueIn: days(-2), Tags: []string{"admin"}},
	{Text: "Book dentist appointment", Priority: todo.PriorityMedium, DueIn: days(1), Tags: []string{"health"}},
	{Text: "Review pull requests", Description: "Two open on the backend repo", Priority: todo.PriorityHigh, DueIn: days(3), Tags: []string{"work"}},
	{Text: "Plan weekend hike", Priority: todo.PriorityLow, DueIn: days(5), Tags: []string{"outdoors", "friends"}},
	{Text: "Write quarterly report", Description: "Numbers are in the shared sheet", Priority: todo.PriorityMedium, DueIn: days(10), Tags: []string{"work"}},
	{Text: "Water the plants", Priority: todo.PriorityLow},
	{Text: "Clean out the garage", Priority: todo.PriorityLow, Tags: []string{"home"}},
}

// SeedTasks adds the sample tasks to e through its normal write path and
// returns how many were added. Deadlines are relative to now.
func SeedTasks(e *todo.Engine, now time.Time) int {
	added := 0
	for _, s := range sampleTasks {
		t, ok := e.Add(s.Text, s.Description, s.Priority)
		if !ok {
			continue
		}
		for _, tag := range s.Tags {
			e.AddTag(&t, tag)
		}
		if s.DueIn != nil {
			t.Deadline = todo.Date(now.Year(), now.Month(), now.Day()+*s.DueIn)
		}
		e.SaveDetails(t.ID, todo.DetailsOf(t))
		added++
	}
	return added
}
