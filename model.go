package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/WillyV3/todobi/internal/todo"
)

type viewMode int

const (
	dashboardView viewMode = iota
	listView
	addView
	detailView
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Add     key.Binding
	Details key.Binding
	View    key.Binding
	Help    key.Binding
	Quit    key.Binding
	Refresh key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "toggle task"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "x"),
		key.WithHelp("d/x", "delete task"),
	),
	Add: key.NewBinding(
		key.WithKeys("a", "n"),
		key.WithHelp("a/n", "add new task"),
	),
	Details: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit details"),
	),
	View: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666")).Strikethrough(true)
	nearBadge    = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1f2937")).
			Background(lipgloss.Color("#facc15")).
			Padding(0, 1).
			Render("1 day left")
)

type model struct {
	engine       *todo.Engine
	mode         viewMode
	prevMode     viewMode
	cursor       int
	width        int
	height       int
	progress     progress.Model
	badges       *badgeCache
	showHelp     bool
	statusMsg    string
	statusExpire time.Time
	add          addForm
	detail       detailForm
}

type tickMsg time.Time

func NewModel(e *todo.Engine) model {
	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
	)

	return model{
		engine:   e,
		mode:     dashboardView,
		progress: prog,
		badges:   newBadgeCache(),
	}
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(msg.Width-40, 10)
		return m, nil

	case tickMsg:
		return m, tick()

	case addTaskMsg:
		if t, ok := m.engine.Add(msg.text, msg.description, msg.priority); ok {
			m.setSaved("Task added!")
			m.cursor = m.indexOf(t.ID)
		}
		m.mode = m.prevMode
		return m, nil

	case saveDetailsMsg:
		m.engine.SaveDetails(msg.id, msg.details)
		m.setSaved("Details saved!")
		m.cursor = m.indexOf(msg.id)
		m.mode = m.prevMode
		return m, nil

	case formCancelledMsg:
		m.mode = m.prevMode
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case addView:
			var cmd tea.Cmd
			m.add, cmd = m.add.Update(msg)
			return m, cmd
		case detailView:
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	// Blink and other input messages belong to the open form.
	switch m.mode {
	case addView:
		var cmd tea.Cmd
		m.add, cmd = m.add.Update(msg)
		return m, cmd
	case detailView:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.View):
		if m.mode == dashboardView {
			m.mode = listView
		} else {
			m.mode = dashboardView
		}
		return m, nil

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, keys.Refresh):
		m.engine.Reload()
		m.clampCursor()
		m.setStatus(fmt.Sprintf("Reloaded %d tasks", m.engine.Len()))
		return m, nil

	case key.Matches(msg, keys.Add):
		m.prevMode = m.mode
		m.mode = addView
		m.add = newAddForm()
		return m, m.add.Init()
	}

	if m.mode != listView {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < m.engine.Len()-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Toggle):
		if t, ok := m.selected(); ok {
			m.engine.ToggleComplete(t.ID)
			if t.Completed {
				m.setSaved("Task reopened")
			} else {
				m.setSaved("✓ Task completed!")
			}
			m.cursor = m.indexOf(t.ID)
		}

	case key.Matches(msg, keys.Delete):
		if t, ok := m.selected(); ok {
			m.engine.Delete(t.ID)
			m.setSaved("Task deleted")
			m.clampCursor()
		}

	case key.Matches(msg, keys.Details):
		if t, ok := m.selected(); ok {
			m.prevMode = m.mode
			m.mode = detailView
			m.detail = newDetailForm(m.engine, t)
			return m, m.detail.Init()
		}
	}
	return m, nil
}

func (m model) selected() (todo.Task, bool) {
	tasks := m.engine.Tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return todo.Task{}, false
	}
	return tasks[m.cursor], true
}

// indexOf returns the list position of id, keeping the cursor on a task
// after re-sorting moves it. Unknown ids leave the cursor clamped.
func (m *model) indexOf(id int64) int {
	for i, t := range m.engine.Tasks() {
		if t.ID == id {
			return i
		}
	}
	return min(m.cursor, max(m.engine.Len()-1, 0))
}

func (m *model) clampCursor() {
	m.cursor = min(m.cursor, max(m.engine.Len()-1, 0))
}

func (m *model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusExpire = time.Now().Add(3 * time.Second)
}

// setSaved reports msg, or the store error if the last write failed.
func (m *model) setSaved(msg string) {
	if err := m.engine.Err(); err != nil {
		m.setStatus(fmt.Sprintf("Error: %v", err))
		return
	}
	m.setStatus(msg)
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.mode {
	case listView:
		return m.listView()
	case addView:
		return m.add.View()
	case detailView:
		return m.detail.View(m.badges)
	default:
		return m.dashboardView()
	}
}

func (m model) dashboardView() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#4ec9b0")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#4ec9b0")).
		Width(m.width - 4).
		Align(lipgloss.Center)

	b.WriteString(titleStyle.Render("🚀 TODOBI - Task Dashboard"))
	b.WriteString("\n\n")

	stats := m.engine.Stats()
	percent := float64(stats.Progress()) / 100

	progressLabel := fmt.Sprintf("Progress: %d/%d completed (%d%%)", stats.Completed, stats.Total, stats.Progress())
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(progressLabel))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Pending: %d", stats.Pending))
	if stats.Overdue > 0 {
		b.WriteString("  •  ")
		b.WriteString(overdueStyle.Render(fmt.Sprintf("Overdue: %d", stats.Overdue)))
	}
	if stats.Near > 0 {
		b.WriteString(fmt.Sprintf("  •  Due within a day: %d", stats.Near))
	}
	b.WriteString("\n")

	tasks := m.engine.Tasks()
	for _, p := range []todo.Priority{todo.PriorityHigh, todo.PriorityMedium, todo.PriorityLow} {
		var pending []todo.Task
		for _, t := range tasks {
			if !t.Completed && t.Priority == p {
				pending = append(pending, t)
			}
		}
		if len(pending) == 0 {
			continue
		}

		headerStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Color())).
			MarginTop(1)

		b.WriteString(headerStyle.Render(p.Label()))
		b.WriteString(fmt.Sprintf(" (%d pending)\n", len(pending)))

		taskStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d4")).
			MarginLeft(2)
		for i, t := range pending {
			if i == 5 {
				b.WriteString(fmt.Sprintf("  ... and %d more\n", len(pending)-5))
				break
			}
			line := "☐ " + t.Text
			if !t.Deadline.IsZero() {
				line += "  📅 " + t.Deadline.String()
			}
			if m.engine.IsOverdue(t) {
				b.WriteString(overdueStyle.MarginLeft(2).Render(line))
			} else {
				b.WriteString(taskStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}

	m.writeFooter(&b)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(b.String())
}

func (m model) listView() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#569cd6")).
		Width(m.width - 4).
		Align(lipgloss.Center)

	b.WriteString(titleStyle.Render("📋 All Tasks"))
	b.WriteString("\n\n")

	tasks := m.engine.Tasks()
	if len(tasks) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666")).
			Italic(true).
			Render("No tasks yet! Press a to add one."))
		m.writeFooter(&b)
		return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	}

	colors := m.engine.Colors()
	start, end := m.window(len(tasks))
	if start > 0 {
		b.WriteString(blurredStyle.Render(fmt.Sprintf("  ↑ %d more", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(m.taskLine(tasks[i], i == m.cursor, colors))
		b.WriteString("\n")

		if tasks[i].Description != "" && i == m.cursor {
			descStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color("#999")).
				Italic(true).
				MarginLeft(5)
			b.WriteString(descStyle.Render(tasks[i].Description))
			b.WriteString("\n")
		}
	}
	if end < len(tasks) {
		b.WriteString(blurredStyle.Render(fmt.Sprintf("  ↓ %d more", len(tasks)-end)))
		b.WriteString("\n")
	}

	m.writeFooter(&b)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(b.String())
}

// window returns the slice of rows that fits the terminal with the cursor
// in view.
func (m model) window(n int) (int, int) {
	rows := m.height - 12
	if rows <= 0 || n <= rows {
		return 0, n
	}
	start := max(m.cursor-rows/2, 0)
	end := min(start+rows, n)
	return end - rows, end
}

func (m model) taskLine(t todo.Task, selected bool, colors map[string]string) string {
	cursor := "  "
	if selected {
		cursor = "→ "
	}

	checkbox := "☐"
	if t.Completed {
		checkbox = "☑"
	}

	priority := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#111")).
		Background(lipgloss.Color(t.Priority.Color())).
		Padding(0, 1).
		Render(t.Priority.Label())

	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#d4d4d4"))
	switch {
	case t.Completed:
		textStyle = doneStyle
	case m.engine.IsOverdue(t):
		textStyle = overdueStyle
	}
	if selected {
		textStyle = textStyle.Bold(true)
		if !t.Completed && !m.engine.IsOverdue(t) {
			textStyle = textStyle.Foreground(lipgloss.Color("#4ec9b0"))
		}
	}

	parts := []string{cursor + checkbox, priority, textStyle.Render(t.Text)}
	if !t.Deadline.IsZero() {
		deadline := "📅 " + t.Deadline.String()
		if m.engine.IsOverdue(t) {
			deadline = overdueStyle.Render(deadline)
		}
		parts = append(parts, deadline)
	}
	if m.engine.IsDeadlineNear(t) {
		parts = append(parts, nearBadge)
	}
	for _, tag := range t.Tags {
		parts = append(parts, m.badges.tag(tag, colors[tag]))
	}
	return strings.Join(parts, " ")
}

func (m model) writeFooter(b *strings.Builder) {
	if time.Now().Before(m.statusExpire) {
		b.WriteString("\n")
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ec9b0")).
			Italic(true)
		b.WriteString(statusStyle.Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(m.helpView())
}

func (m model) helpView() string {
	if !m.showHelp {
		helpStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666"))
		return helpStyle.Render("Press ? for help • Tab to switch views • a to add task • q to quit")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#999")).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#666")).
		Padding(0, 1)

	help := []string{
		"Navigation:",
		"  ↑/k      - Move up",
		"  ↓/j      - Move down",
		"  tab      - Switch view",
		"",
		"Actions (list view):",
		"  space    - Toggle task",
		"  e        - Edit details",
		"  d/x      - Delete task",
		"",
		"Anywhere:",
		"  a/n      - Add new task",
		"  r        - Reload from store",
		"  ?        - Toggle help",
		"  q/ctrl+c - Quit",
	}

	return helpStyle.Render(strings.Join(help, "\n"))
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
