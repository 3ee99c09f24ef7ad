package todo

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WillyV3/todobi/internal/store"
)

func TestLoad_SortsStoredTasks(t *testing.T) {
	s := store.NewMemory()
	require.NoError(t, s.Set(KeyTodos, `[
		{"id": 1, "text": "no deadline", "completed": false},
		{"id": 2, "text": "later", "completed": false, "deadline": "2024-06-02", "tags": ["a"], "priority": "high"},
		{"id": 3, "text": "sooner", "completed": true, "deadline": "2024-06-01", "description": "d"}
	]`))

	e, _ := newTestEngine(t, s)
	tasks := e.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, []int64{3, 2, 1}, ids(tasks))

	assert.Equal(t, "d", tasks[0].Description)
	assert.True(t, tasks[0].Completed)
	assert.Equal(t, PriorityMedium, tasks[0].Priority)
	assert.Equal(t, []string{}, tasks[0].Tags)
	assert.Equal(t, PriorityHigh, tasks[1].Priority)
	assert.Equal(t, []string{"a"}, tasks[1].Tags)
}

func TestLoad_MalformedStateStartsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		todos  string
		colors string
	}{
		{name: "not json", todos: `[{"id":`, colors: `{"a":`},
		{name: "wrong shape", todos: `{"id": 1}`, colors: `["#FFB3BA"]`},
		{name: "null", todos: `null`, colors: `null`},
		{name: "wrong field types", todos: `[{"id": "1", "text": "x"}]`, colors: `{"a": 1}`},
		{name: "missing text", todos: `[{"id": 1}]`, colors: `{}`},
		{name: "fractional id", todos: `[{"id": 1.5, "text": "x"}]`, colors: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemory()
			require.NoError(t, s.Set(KeyTodos, tt.todos))
			require.NoError(t, s.Set(KeyTagsColors, tt.colors))

			e, _ := newTestEngine(t, s)
			assert.Equal(t, 0, e.Len())
			assert.Empty(t, e.Colors())

			// The engine keeps working and overwrites the bad entries.
			_, ok := e.Add("fresh", "", PriorityMedium)
			require.True(t, ok)
			raw, _, err := s.Get(KeyTodos)
			require.NoError(t, err)
			var stored []Task
			require.NoError(t, json.Unmarshal([]byte(raw), &stored))
			assert.Len(t, stored, 1)
		})
	}
}

func TestLoad_NullCompletedKeepsRecords(t *testing.T) {
	s := store.NewMemory()
	require.NoError(t, s.Set(KeyTodos, `[
		{"id": 1, "text": "keep me", "completed": false},
		{"id": 2, "text": "x", "completed": null},
		{"id": 3, "text": "no flag"}
	]`))

	e, _ := newTestEngine(t, s)
	tasks := e.Tasks()
	require.Len(t, tasks, 3)
	for _, task := range tasks {
		assert.False(t, task.Completed, "task %d", task.ID)
	}
	assert.Equal(t, []int64{1, 2, 3}, ids(tasks))
}

type unreadableStore struct {
	*store.Memory
}

func (unreadableStore) Get(key string) (string, bool, error) {
	return "", false, errors.New("read failed")
}

func TestLoad_UnreadableStoreStartsEmpty(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.Set(KeyTodos, `[{"id": 1, "text": "hidden"}]`))
	require.NoError(t, mem.Set(KeyTagsColors, `{"a": "#FFB3BA"}`))

	e, _ := newTestEngine(t, unreadableStore{Memory: mem})
	assert.Equal(t, 0, e.Len())
	assert.Empty(t, e.Colors())

	task, ok := e.Add("fresh", "", PriorityMedium)
	require.True(t, ok)
	require.NoError(t, e.Err())

	raw, found, err := mem.Get(KeyTodos)
	require.NoError(t, err)
	require.True(t, found)
	var stored []Task
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, task.ID, stored[0].ID)
}

func TestLoad_CorruptFileStoreStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	file, err := store.NewFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	e, _ := newTestEngine(t, file)
	assert.Equal(t, 0, e.Len())
	assert.Empty(t, e.Colors())

	_, ok := e.Add("fresh", "", PriorityMedium)
	require.True(t, ok)
	require.NoError(t, e.Err())

	reopened, err := store.NewFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })
	e2, _ := newTestEngine(t, reopened)
	tasks := e2.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "fresh", tasks[0].Text)
}

func TestLoad_MissingKeysStartEmpty(t *testing.T) {
	e, _ := newTestEngine(t, store.NewMemory())
	assert.Equal(t, 0, e.Len())
	assert.NotNil(t, e.Colors())
	assert.Empty(t, e.Colors())
}

func TestLoad_InvalidDeadlineMeansNoDeadline(t *testing.T) {
	s := store.NewMemory()
	require.NoError(t, s.Set(KeyTodos, `[{"id": 1, "text": "x", "deadline": "someday"}]`))

	e, _ := newTestEngine(t, s)
	tasks := e.Tasks()
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Deadline.IsZero())
}

func TestLoad_DuplicateIDsReassigned(t *testing.T) {
	s := store.NewMemory()
	require.NoError(t, s.Set(KeyTodos, `[
		{"id": 5, "text": "a"},
		{"id": 5, "text": "b"},
		{"id": 9, "text": "c"}
	]`))

	e, _ := newTestEngine(t, s)
	tasks := e.Tasks()
	require.Len(t, tasks, 3)

	seen := map[int64]bool{}
	for _, task := range tasks {
		assert.False(t, seen[task.ID])
		seen[task.ID] = true
	}
	assert.Equal(t, int64(5), tasks[0].ID)
	assert.Equal(t, "b", tasks[1].Text)
}

func TestLoad_TagColors(t *testing.T) {
	s := store.NewMemory()
	require.NoError(t, s.Set(KeyTagsColors, `{"errand": "#FFB3BA", "custom": "#123456"}`))

	e, _ := newTestEngine(t, s)
	assert.Equal(t, map[string]string{"errand": "#FFB3BA", "custom": "#123456"}, e.Colors())

	task, _ := e.Add("x", "", PriorityMedium)
	e.AddTag(&task, "new")
	c, _ := e.ColorOf("new")
	assert.NotEqual(t, "#FFB3BA", c)
}

func TestSave_RoundTrip(t *testing.T) {
	s := store.NewMemory()
	e, clock := newTestEngine(t, s)

	a, _ := e.Add("a", "desc", PriorityLow)
	clock.Advance(1)
	b, _ := e.Add("b", "", PriorityHigh)
	e.AddTag(&b, "work")
	b.Deadline = Date(2024, 6, 1)
	e.SaveDetails(b.ID, DetailsOf(b))
	e.ToggleComplete(a.ID)

	reloaded, _ := newTestEngine(t, s)
	assert.Equal(t, e.Tasks(), reloaded.Tasks())
	assert.Equal(t, e.Colors(), reloaded.Colors())
}
