package todo

import "strings"

// AddTag appends tag to t, the caller's working copy of a task. A tag seen
// for the first time gets a registry color, which is persisted at once; the
// tag itself reaches the collection when the copy is saved with SaveDetails.
func (e *Engine) AddTag(t *Task, tag string) {
	if t == nil || strings.TrimSpace(tag) == "" || t.HasTag(tag) {
		return
	}

	e.mu.Lock()
	if _, ok := e.colors[tag]; !ok {
		color := pickColor(e.colors, e.rnd)
		e.colors[tag] = color
		e.saveColors()
		e.logger.Debug("tag color assigned", "tag", tag, "color", color)
	}
	e.mu.Unlock()

	t.Tags = append(t.Tags, tag)
}

// DeleteTag removes tag from t. The registry keeps the tag's color.
func (e *Engine) DeleteTag(t *Task, tag string) {
	if t == nil {
		return
	}
	t.RemoveTag(tag)
}
