package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/WillyV3/todobi/internal/todo"
)

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ec9b0"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	cursorStyle  = focusedStyle
	noStyle      = lipgloss.NewStyle()

	focusedButton = focusedStyle.Render("[ Save ]")
	blurredButton = blurredStyle.Render("[ Save ]")
	cancelButton  = blurredStyle.Render("[ Cancel (Esc) ]")
)

// Messages the forms send back to the main model.
type (
	addTaskMsg struct {
		text        string
		description string
		priority    todo.Priority
	}
	saveDetailsMsg struct {
		id      int64
		details todo.Details
	}
	formCancelledMsg struct{}
)

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func newInput(placeholder string, limit int) textinput.Model {
	t := textinput.New()
	t.Cursor.Style = cursorStyle
	t.Placeholder = placeholder
	t.CharLimit = limit
	return t
}

// focusInputs focuses inputs[index] and blurs the rest. An index past the
// last input means the Save button has focus.
func focusInputs(inputs []textinput.Model, index int) tea.Cmd {
	cmds := make([]tea.Cmd, len(inputs))
	for i := range inputs {
		if i == index {
			cmds[i] = inputs[i].Focus()
			inputs[i].PromptStyle = focusedStyle
			inputs[i].TextStyle = focusedStyle
			continue
		}
		inputs[i].Blur()
		inputs[i].PromptStyle = noStyle
		inputs[i].TextStyle = noStyle
	}
	return tea.Batch(cmds...)
}

// cycleFocus moves index by delta over the inputs plus the Save button.
func cycleFocus(index, delta, inputs int) int {
	index += delta
	if index > inputs {
		return 0
	}
	if index < 0 {
		return inputs
	}
	return index
}

func focusDelta(s string) int {
	if s == "up" || s == "shift+tab" {
		return -1
	}
	return 1
}

func updateInputs(inputs []textinput.Model, msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(inputs))
	for i := range inputs {
		inputs[i], cmds[i] = inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

// priorityPreview renders what the priority field currently parses to.
func priorityPreview(raw string) string {
	p, ok := todo.ParsePriority(raw)
	if !ok {
		return errorStyle.Render("  low, medium or high")
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Color())).
		Render("  " + p.Label())
}

func renderField(b *strings.Builder, label string, focused bool, input textinput.Model) {
	if focused {
		label = focusedStyle.Render(label)
	} else {
		label = blurredStyle.Render(label)
	}
	b.WriteString(label)
	b.WriteString("\n")
	b.WriteString(input.View())
	b.WriteString("\n")
}

func renderButtons(b *strings.Builder, focused bool) {
	button := blurredButton
	if focused {
		button = focusedButton
	}
	b.WriteString("\n")
	b.WriteString(button)
	b.WriteString("  ")
	b.WriteString(cancelButton)
	b.WriteString("\n\n")
}

const (
	addText = iota
	addDescription
	addPriority
)

// addForm collects a new task.
type addForm struct {
	focusIndex int
	inputs     []textinput.Model
	err        string
}

func newAddForm() addForm {
	m := addForm{inputs: make([]textinput.Model, 3)}

	m.inputs[addText] = newInput("What needs doing? (required)", 200)
	m.inputs[addDescription] = newInput("Description (optional)", 500)
	m.inputs[addPriority] = newInput("low, medium or high", 6)
	m.inputs[addPriority].SetValue(string(todo.PriorityMedium))

	focusInputs(m.inputs, addText)
	return m
}

func (m addForm) Init() tea.Cmd {
	return textinput.Blink
}

func (m addForm) Update(msg tea.Msg) (addForm, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch s := msg.String(); s {
		case "esc":
			return m, emit(formCancelledMsg{})

		case "tab", "shift+tab", "up", "down":
			m.focusIndex = cycleFocus(m.focusIndex, focusDelta(s), len(m.inputs))
			return m, focusInputs(m.inputs, m.focusIndex)

		case "enter":
			if m.focusIndex < len(m.inputs)-1 {
				m.focusIndex++
				return m, focusInputs(m.inputs, m.focusIndex)
			}
			return m.submit()
		}
	}

	cmd := updateInputs(m.inputs, msg)
	return m, cmd
}

func (m addForm) submit() (addForm, tea.Cmd) {
	text := m.inputs[addText].Value()
	if strings.TrimSpace(text) == "" {
		m.err = "Task text is required"
		return m, nil
	}
	priority, ok := todo.ParsePriority(m.inputs[addPriority].Value())
	if !ok {
		m.err = "Priority must be low, medium or high"
		return m, nil
	}
	m.err = ""
	return m, emit(addTaskMsg{
		text:        text,
		description: m.inputs[addDescription].Value(),
		priority:    priority,
	})
}

func (m addForm) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#569cd6")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("➕ New Task"))
	b.WriteString("\n\n")

	labels := []string{"Task:", "Description:", "Priority:"}
	for i := range m.inputs {
		renderField(&b, labels[i], i == m.focusIndex, m.inputs[i])
		if i == addPriority {
			b.WriteString(priorityPreview(m.inputs[i].Value()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	renderButtons(&b, m.focusIndex == len(m.inputs))
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n\n")
	}
	b.WriteString(blurredStyle.Render("Tab: next field • Enter: save • Esc: cancel"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(b.String())
}

const (
	detailDescription = iota
	detailDeadline
	detailPriority
	detailTag
)

// detailForm edits a draft copy of one task. Tags typed here are registered
// with the engine right away; the draft itself is only written on save.
type detailForm struct {
	engine     *todo.Engine
	draft      todo.Task
	original   todo.Deadline
	focusIndex int
	inputs     []textinput.Model
	err        string
}

func newDetailForm(e *todo.Engine, t todo.Task) detailForm {
	m := detailForm{
		engine:   e,
		draft:    t.Clone(),
		original: t.Deadline,
		inputs:   make([]textinput.Model, 4),
	}

	m.inputs[detailDescription] = newInput("Description (optional)", 500)
	m.inputs[detailDescription].SetValue(t.Description)

	m.inputs[detailDeadline] = newInput("YYYY-MM-DD, empty for none", 25)
	m.inputs[detailDeadline].SetValue(t.Deadline.String())

	m.inputs[detailPriority] = newInput("low, medium or high", 6)
	m.inputs[detailPriority].SetValue(string(t.Priority.OrDefault()))

	m.inputs[detailTag] = newInput("Type a tag and press enter", 40)

	focusInputs(m.inputs, detailDescription)
	return m
}

func (m detailForm) Init() tea.Cmd {
	return textinput.Blink
}

func (m detailForm) Update(msg tea.Msg) (detailForm, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch s := msg.String(); s {
		case "esc":
			return m, emit(formCancelledMsg{})

		case "ctrl+s":
			return m.submit()

		case "ctrl+d":
			if n := len(m.draft.Tags); n > 0 {
				m.engine.DeleteTag(&m.draft, m.draft.Tags[n-1])
			}
			return m, nil

		case "tab", "shift+tab", "up", "down":
			m.focusIndex = cycleFocus(m.focusIndex, focusDelta(s), len(m.inputs))
			return m, focusInputs(m.inputs, m.focusIndex)

		case "enter":
			switch {
			case m.focusIndex == detailTag:
				m.engine.AddTag(&m.draft, m.inputs[detailTag].Value())
				m.inputs[detailTag].SetValue("")
				return m, nil
			case m.focusIndex < len(m.inputs):
				m.focusIndex++
				return m, focusInputs(m.inputs, m.focusIndex)
			}
			return m.submit()
		}
	}

	cmd := updateInputs(m.inputs, msg)
	return m, cmd
}

func (m detailForm) submit() (detailForm, tea.Cmd) {
	deadline, err := todo.ParseDeadline(m.inputs[detailDeadline].Value())
	if err != nil {
		m.err = "Deadline must be YYYY-MM-DD"
		return m, nil
	}
	if !deadline.Equal(m.original) && todo.IsOverdue(todo.Task{Deadline: deadline}, m.engine.Now()) {
		m.err = "Deadline cannot be in the past"
		return m, nil
	}
	priority, ok := todo.ParsePriority(m.inputs[detailPriority].Value())
	if !ok {
		m.err = "Priority must be low, medium or high"
		return m, nil
	}

	m.err = ""
	m.draft.Description = m.inputs[detailDescription].Value()
	m.draft.Deadline = deadline
	m.draft.Priority = priority
	return m, emit(saveDetailsMsg{id: m.draft.ID, details: todo.DetailsOf(m.draft)})
}

func (m detailForm) View(badges *badgeCache) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#569cd6")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("✏️  " + m.draft.Text))
	b.WriteString("\n\n")

	labels := []string{"Description:", "Deadline:", "Priority:", "Add tag:"}
	for i := range m.inputs {
		renderField(&b, labels[i], i == m.focusIndex, m.inputs[i])
		switch i {
		case detailPriority:
			b.WriteString(priorityPreview(m.inputs[i].Value()))
			b.WriteString("\n")
		case detailTag:
			b.WriteString(m.tagsView(badges))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	renderButtons(&b, m.focusIndex == len(m.inputs))
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n\n")
	}
	b.WriteString(blurredStyle.Render("Tab: next field • Enter on tag: add • Ctrl+D: remove last tag • Ctrl+S: save • Esc: cancel"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(b.String())
}

func (m detailForm) tagsView(badges *badgeCache) string {
	if len(m.draft.Tags) == 0 {
		return blurredStyle.Render("  no tags")
	}
	parts := make([]string, len(m.draft.Tags))
	for i, tag := range m.draft.Tags {
		color, _ := m.engine.ColorOf(tag)
		parts[i] = badges.tag(tag, color)
	}
	return fmt.Sprintf("  %s", strings.Join(parts, " "))
}
