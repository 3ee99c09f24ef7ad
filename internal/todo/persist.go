package todo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Store keys.
const (
	KeyTodos      = "todos"
	KeyTagsColors = "tagsColors"
)

var (
	//go:embed schema/todos.schema.json
	todosSchemaText string
	//go:embed schema/tagsColors.schema.json
	colorsSchemaText string

	todosSchema  = jsonschema.MustCompileString("todos.schema.json", todosSchemaText)
	colorsSchema = jsonschema.MustCompileString("tagsColors.schema.json", colorsSchemaText)
)

// load replaces the in-memory state with what the store holds. Missing or
// unreadable entries start empty.
func (e *Engine) load() {
	var tasks []Task
	if !e.read(KeyTodos, todosSchema, &tasks) {
		tasks = nil
	}
	colors := map[string]string{}
	if !e.read(KeyTagsColors, colorsSchema, &colors) {
		colors = map[string]string{}
	}

	e.ids = idGen{}
	for _, t := range tasks {
		e.ids.observe(t.ID)
	}

	seen := make(map[int64]bool, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		if seen[t.ID] {
			old := t.ID
			t.ID = e.ids.next(e.clock.Now())
			e.logger.Warn("duplicate task id in store, reassigned", "old", old, "new", t.ID)
		}
		seen[t.ID] = true
		if t.Tags == nil {
			t.Tags = []string{}
		}
		t.Tags = uniqueTags(t.Tags)
		t.Priority = t.Priority.OrDefault()
	}
	SortByDeadline(tasks, e.loc)

	e.tasks = tasks
	e.colors = colors
	e.logger.Debug("state loaded", "tasks", len(tasks), "tags", len(colors))
}

func (e *Engine) read(key string, schema *jsonschema.Schema, v any) bool {
	raw, ok, err := e.store.Get(key)
	if err != nil {
		e.logger.Warn("reading store failed, starting empty", "key", key, "err", err)
		return false
	}
	if !ok {
		return false
	}
	if err := decodeValidated(raw, schema, v); err != nil {
		e.logger.Warn("discarding unreadable state", "key", key, "err", err)
		return false
	}
	return true
}

func decodeValidated(raw string, schema *jsonschema.Schema, v any) error {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func (e *Engine) saveTasks() {
	tasks := e.tasks
	if tasks == nil {
		tasks = []Task{}
	}
	e.write(KeyTodos, tasks)
}

func (e *Engine) saveColors() {
	e.write(KeyTagsColors, e.colors)
}

func (e *Engine) write(key string, v any) {
	data, err := json.Marshal(v)
	if err == nil {
		err = e.store.Set(key, string(data))
	}
	if err != nil {
		e.err = fmt.Errorf("saving %s: %w", key, err)
		e.logger.Error("saving state failed", "key", key, "err", err)
		return
	}
	e.err = nil
}
