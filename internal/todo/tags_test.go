package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WillyV3/todobi/internal/store"
)

func TestAddTag(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	task, _ := e.Add("x", "", PriorityMedium)

	e.AddTag(&task, "errand")
	e.AddTag(&task, "errand")
	e.AddTag(&task, "Errand")
	assert.Equal(t, []string{"errand", "Errand"}, task.Tags)

	c1, ok := e.ColorOf("errand")
	require.True(t, ok)
	assert.True(t, InPalette(c1))
	_, ok = e.ColorOf("Errand")
	assert.True(t, ok)
}

func TestAddTag_BlankIgnored(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	task, _ := e.Add("x", "", PriorityMedium)

	e.AddTag(&task, "")
	e.AddTag(&task, "   ")
	assert.Empty(t, task.Tags)
	assert.Empty(t, e.Colors())

	e.AddTag(nil, "errand")
	assert.Empty(t, e.Colors())
}

func TestAddTag_WorksOnDraftUntilSaved(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	task, _ := e.Add("x", "", PriorityMedium)

	draft, _ := e.Task(task.ID)
	e.AddTag(&draft, "home")

	stored, _ := e.Task(task.ID)
	assert.Empty(t, stored.Tags)

	e.SaveDetails(draft.ID, DetailsOf(draft))
	stored, _ = e.Task(task.ID)
	assert.Equal(t, []string{"home"}, stored.Tags)
}

func TestTagColorsAreSticky(t *testing.T) {
	s := store.NewMemory()
	e, _ := newTestEngine(t, s)
	a, _ := e.Add("a", "", PriorityMedium)
	b, _ := e.Add("b", "", PriorityMedium)

	e.AddTag(&a, "work")
	color, _ := e.ColorOf("work")

	e.DeleteTag(&a, "work")
	assert.Empty(t, a.Tags)
	e.SaveDetails(a.ID, DetailsOf(a))

	got, ok := e.ColorOf("work")
	require.True(t, ok)
	assert.Equal(t, color, got)

	e.AddTag(&b, "work")
	got, _ = e.ColorOf("work")
	assert.Equal(t, color, got)

	// Survives a reload from the store.
	reloaded, _ := newTestEngine(t, s)
	got, _ = reloaded.ColorOf("work")
	assert.Equal(t, color, got)
}

func TestDeleteTag(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	task := Task{Tags: []string{"a", "b", "c"}}

	e.DeleteTag(&task, "b")
	assert.Equal(t, []string{"a", "c"}, task.Tags)

	e.DeleteTag(&task, "missing")
	assert.Equal(t, []string{"a", "c"}, task.Tags)

	e.DeleteTag(nil, "a")
}

func TestAddTag_PrefersUnusedColors(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	task, _ := e.Add("x", "", PriorityMedium)

	seen := map[string]bool{}
	for i := range len(Palette) {
		tag := string(rune('a' + i))
		e.AddTag(&task, tag)
		c, _ := e.ColorOf(tag)
		assert.False(t, seen[c], "color %s reused before palette exhausted", c)
		seen[c] = true
	}
	assert.Len(t, seen, len(Palette))
}
