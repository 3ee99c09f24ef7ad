package todo

import (
	"io"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Store is the key-value string store the engine persists into.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Options configures an Engine. Zero fields get defaults.
type Options struct {
	Logger *log.Logger
	Clock  Clock
	Random RandomSource
	// Location is the calendar used for overdue and near-deadline checks.
	Location *time.Location
}

// Engine owns the task collection and the tag color registry. Its methods
// are the only write path; every mutation is persisted before it returns.
type Engine struct {
	mu     sync.Mutex
	store  Store
	tasks  []Task
	colors map[string]string
	ids    idGen

	clock  Clock
	rnd    RandomSource
	loc    *time.Location
	logger *log.Logger
	err    error
}

// New loads the engine state from s.
func New(s Store, opts Options) *Engine {
	e := &Engine{
		store:  s,
		clock:  opts.Clock,
		rnd:    opts.Random,
		loc:    opts.Location,
		logger: opts.Logger,
	}
	if e.clock == nil {
		e.clock = RealClock{}
	}
	if e.rnd == nil {
		e.rnd = defaultRandom{}
	}
	if e.loc == nil {
		e.loc = time.UTC
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.load()
	return e
}

// Reload discards in-memory state and reads it again from the store.
func (e *Engine) Reload() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.load()
}

// Err returns the last persistence error, or nil once a later write succeeds.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Now returns the engine clock's time in the engine's calendar.
func (e *Engine) Now() time.Time {
	return e.clock.Now().In(e.loc)
}

// Add creates a task. Text that is blank after trimming is ignored.
func (e *Engine) Add(text, description string, priority Priority) (Task, bool) {
	if strings.TrimSpace(text) == "" {
		return Task{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	t := Task{
		ID:          e.ids.next(e.clock.Now()),
		Text:        text,
		Description: description,
		Tags:        []string{},
		Priority:    priority.OrDefault(),
	}
	e.tasks = append(e.tasks, t)
	SortByDeadline(e.tasks, e.loc)
	e.saveTasks()

	e.logger.Debug("task added", "id", t.ID, "priority", t.Priority)
	return t.Clone(), true
}

// ToggleComplete flips the completed flag of the task with id.
func (e *Engine) ToggleComplete(id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOf(id)
	if i < 0 {
		return
	}
	e.tasks[i].Completed = !e.tasks[i].Completed
	completed := e.tasks[i].Completed
	SortByDeadline(e.tasks, e.loc)
	e.saveTasks()

	e.logger.Debug("task toggled", "id", id, "completed", completed)
}

// Delete removes the task with id. The remaining tasks keep their order.
func (e *Engine) Delete(id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOf(id)
	if i < 0 {
		return
	}
	e.tasks = append(e.tasks[:i], e.tasks[i+1:]...)
	e.saveTasks()

	e.logger.Debug("task deleted", "id", id)
}

// SaveDetails overwrites the detail fields of the task with id.
func (e *Engine) SaveDetails(id int64, d Details) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOf(id)
	if i < 0 {
		return
	}
	t := &e.tasks[i]
	t.Priority = d.Priority.OrDefault()
	t.Description = d.Description
	t.Deadline = d.Deadline
	t.Tags = uniqueTags(d.Tags)
	SortByDeadline(e.tasks, e.loc)
	e.saveTasks()

	e.logger.Debug("task details saved", "id", id, "deadline", d.Deadline, "tags", len(d.Tags))
}

// Tasks returns a copy of the collection in its current order.
func (e *Engine) Tasks() []Task {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Task, len(e.tasks))
	for i, t := range e.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Task returns a copy of the task with id.
func (e *Engine) Task(id int64) (Task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return e.tasks[i].Clone(), true
}

func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tasks)
}

// Colors returns a copy of the tag color registry.
func (e *Engine) Colors() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.colors)
}

func (e *Engine) ColorOf(tag string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.colors[tag]
	return c, ok
}

func (e *Engine) IsOverdue(t Task) bool {
	return IsOverdue(t, e.Now())
}

func (e *Engine) IsDeadlineNear(t Task) bool {
	return IsDeadlineNear(t, e.Now())
}

// Stats summarizes the collection for the dashboard.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int
	Near      int
}

// Progress returns the completed share in whole percent.
func (s Stats) Progress() int {
	if s.Total == 0 {
		return 0
	}
	return (s.Completed * 100) / s.Total
}

func (e *Engine) Stats() Stats {
	now := e.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	var s Stats
	for _, t := range e.tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
		if IsOverdue(t, now) {
			s.Overdue++
		}
		if IsDeadlineNear(t, now) {
			s.Near++
		}
	}
	return s
}

func (e *Engine) indexOf(id int64) int {
	for i := range e.tasks {
		if e.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
