package todo

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WillyV3/todobi/internal/store"
)

func TestParseDeadline(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "empty", in: "", want: ""},
		{name: "blank", in: "  ", want: ""},
		{name: "date", in: "2024-05-02", want: "2024-05-02"},
		{name: "timestamp", in: "2024-05-02T10:00:00Z", want: "2024-05-02T10:00:00Z"},
		{name: "garbage", in: "next week", wantErr: true},
		{name: "impossible date", in: "2024-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDeadline(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDeadlineJSON(t *testing.T) {
	var d Deadline
	require.NoError(t, json.Unmarshal([]byte(`"2024-05-02"`), &d))
	assert.True(t, d.Equal(Date(2024, 5, 2)))

	for _, raw := range []string{`""`, `null`, `"soon"`} {
		d = Date(2024, 1, 1)
		require.NoError(t, json.Unmarshal([]byte(raw), &d), raw)
		assert.True(t, d.IsZero(), raw)
	}

	assert.Error(t, json.Unmarshal([]byte(`12`), &d))

	out, err := json.Marshal(Date(2024, 12, 31))
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-12-31"`, string(out))

	out, err = json.Marshal(Deadline{})
	require.NoError(t, err)
	assert.JSONEq(t, `""`, string(out))
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{name: "no deadline", task: Task{}, want: false},
		{name: "yesterday", task: Task{Deadline: Date(2024, 5, 9)}, want: true},
		{name: "today", task: Task{Deadline: Date(2024, 5, 10)}, want: false},
		{name: "tomorrow", task: Task{Deadline: Date(2024, 5, 11)}, want: false},
		{name: "yesterday but completed", task: Task{Deadline: Date(2024, 5, 9), Completed: true}, want: false},
		{name: "earlier today as instant", task: Task{Deadline: DeadlineAt(now.Add(-time.Hour))}, want: false},
		{name: "yesterday as instant", task: Task{Deadline: DeadlineAt(now.Add(-24 * time.Hour))}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOverdue(tt.task, now))
		})
	}
}

func TestIsOverdue_UsesCalendarOfNow(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-05-10 01:00 UTC is still 2024-05-09 in New York.
	now := time.Date(2024, 5, 10, 1, 0, 0, 0, time.UTC)
	task := Task{Deadline: Date(2024, 5, 9)}

	assert.True(t, IsOverdue(task, now))
	assert.False(t, IsOverdue(task, now.In(ny)))
}

func TestIsDeadlineNear(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{name: "in 12 hours", task: Task{Deadline: DeadlineAt(now.Add(12 * time.Hour))}, want: true},
		{name: "in 12 hours but completed", task: Task{Deadline: DeadlineAt(now.Add(12 * time.Hour)), Completed: true}, want: false},
		{name: "in 36 hours", task: Task{Deadline: DeadlineAt(now.Add(36 * time.Hour))}, want: false},
		{name: "exactly now", task: Task{Deadline: DeadlineAt(now)}, want: true},
		{name: "exactly one day", task: Task{Deadline: DeadlineAt(now.Add(24 * time.Hour))}, want: true},
		{name: "just past one day", task: Task{Deadline: DeadlineAt(now.Add(24*time.Hour + time.Millisecond))}, want: false},
		{name: "just passed", task: Task{Deadline: DeadlineAt(now.Add(-time.Millisecond))}, want: false},
		{name: "tomorrow's date", task: Task{Deadline: Date(2024, 5, 11)}, want: true},
		{name: "today's date already started", task: Task{Deadline: Date(2024, 5, 10)}, want: false},
		{name: "no deadline", task: Task{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDeadlineNear(tt.task, now))
		})
	}
}

func TestEngineDeadlineChecksUseConfiguredLocation(t *testing.T) {
	ist, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	clock := &fakeClock{t: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)}
	e := New(store.NewMemory(), Options{Clock: clock, Location: ist})

	// Midnight of 2024-05-11 in Istanbul is 21:00 UTC on the 10th: 9h away.
	task := Task{Deadline: Date(2024, 5, 11)}
	assert.True(t, e.IsDeadlineNear(task))
	assert.False(t, e.IsOverdue(task))
	assert.Equal(t, ist, e.Now().Location())
}

func TestSortByDeadline(t *testing.T) {
	tasks := []Task{
		{ID: 1},
		{ID: 2, Deadline: Date(2024, 6, 2)},
		{ID: 3},
		{ID: 4, Deadline: Date(2024, 6, 1)},
		{ID: 5, Deadline: Date(2024, 6, 2)},
		{ID: 6, Deadline: DeadlineAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))},
	}

	SortByDeadline(tasks, time.UTC)
	assert.Equal(t, []int64{4, 6, 2, 5, 1, 3}, ids(tasks))
	assert.True(t, IsSortedByDeadline(tasks, time.UTC))
}

func TestSortByDeadline_CalendarDaysFallDueInLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// Midnight of June 2 in Tokyo is 15:00 UTC on June 1.
	tasks := []Task{
		{ID: 1, Deadline: Date(2024, 6, 2)},
		{ID: 2, Deadline: DeadlineAt(time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC))},
	}

	SortByDeadline(tasks, tokyo)
	assert.Equal(t, []int64{1, 2}, ids(tasks))
	assert.True(t, IsSortedByDeadline(tasks, tokyo))
	assert.False(t, IsSortedByDeadline(tasks, time.UTC))
}

func TestDeadlineKeepsSubsecondInstant(t *testing.T) {
	d, err := ParseDeadline("2099-05-02T10:00:00.5Z")
	require.NoError(t, err)
	assert.Equal(t, "2099-05-02T10:00:00.5Z", d.String())

	again, err := ParseDeadline(d.String())
	require.NoError(t, err)
	assert.True(t, d.Equal(again))

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2099-05-02T10:00:00.5Z"`, string(data))
}
