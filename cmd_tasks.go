package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/WillyV3/todobi/internal/todo"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

func parsePriorityFlag(s string) (todo.Priority, error) {
	p, ok := todo.ParsePriority(s)
	if !ok {
		return "", fmt.Errorf("invalid priority %q: want low, medium or high", s)
	}
	return p, nil
}

func newAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			priorityName, _ := cmd.Flags().GetString("priority")
			priority, err := parsePriorityFlag(priorityName)
			if err != nil {
				return err
			}

			task, ok := a.engine.Add(strings.Join(args, " "), description, priority)
			if !ok {
				fmt.Fprintln(a.stdout, "Nothing added: task text is empty")
				return nil
			}
			if err := a.saved(); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Added %d: %s\n", task.ID, task.Text)
			return nil
		},
	}
	cmd.Flags().StringP("description", "d", "", "task description")
	cmd.Flags().StringP("priority", "p", string(todo.PriorityMedium), "priority: low, medium or high")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in deadline order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			pending, _ := cmd.Flags().GetBool("pending")

			tasks := a.engine.Tasks()
			if pending {
				open := tasks[:0]
				for _, t := range tasks {
					if !t.Completed {
						open = append(open, t)
					}
				}
				tasks = open
			}

			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(tasks)
			}

			if len(tasks) == 0 {
				fmt.Fprintln(a.stdout, "No tasks.")
				return nil
			}
			colors := a.engine.Colors()
			for _, t := range tasks {
				fmt.Fprintln(a.stdout, a.formatTaskLine(t, colors))
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "output JSON")
	cmd.Flags().Bool("pending", false, "hide completed tasks")
	return cmd
}

func (a *app) formatTaskLine(t todo.Task, colors map[string]string) string {
	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}

	priority := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Priority.Color())).
		Render(fmt.Sprintf("%-6s", t.Priority.Label()))

	text := t.Text
	if a.engine.IsOverdue(t) {
		text = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")).Render(text + " (overdue)")
	}

	parts := []string{fmt.Sprintf("%d", t.ID), checkbox, priority}
	if !t.Deadline.IsZero() {
		parts = append(parts, t.Deadline.String())
	}
	parts = append(parts, text)
	if a.engine.IsDeadlineNear(t) {
		parts = append(parts, "! due within a day")
	}
	for _, tag := range t.Tags {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors[tag])).
			Render("#"+tag))
	}
	return strings.Join(parts, "  ")
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task with its details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, ok := a.engine.Task(id)
			if !ok {
				fmt.Fprintf(a.stdout, "No task with id %d\n", id)
				return nil
			}
			writeTaskDetails(a.stdout, t, a.engine)
			return nil
		},
	}
}

func writeTaskDetails(w io.Writer, t todo.Task, e *todo.Engine) {
	fmt.Fprintf(w, "ID:          %d\n", t.ID)
	fmt.Fprintf(w, "Task:        %s\n", t.Text)
	fmt.Fprintf(w, "Completed:   %t\n", t.Completed)
	fmt.Fprintf(w, "Priority:    %s\n", t.Priority)
	deadline := "none"
	if !t.Deadline.IsZero() {
		deadline = t.Deadline.String()
		switch {
		case e.IsOverdue(t):
			deadline += " (overdue)"
		case e.IsDeadlineNear(t):
			deadline += " (due within a day)"
		}
	}
	fmt.Fprintf(w, "Deadline:    %s\n", deadline)
	fmt.Fprintf(w, "Tags:        %s\n", strings.Join(t.Tags, ", "))
	if t.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", t.Description)
	}
}

// withTask runs fn for the task named by args[0], printing a notice when the
// id is unknown. Unknown ids are not an error.
func (a *app) withTask(args []string, fn func(t todo.Task) error) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	t, ok := a.engine.Task(id)
	if !ok {
		fmt.Fprintf(a.stdout, "No task with id %d\n", id)
		return nil
	}
	if err := fn(t); err != nil {
		return err
	}
	return a.saved()
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a task's completed flag",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTask(args, func(t todo.Task) error {
				a.engine.ToggleComplete(t.ID)
				if t.Completed {
					fmt.Fprintf(a.stdout, "Reopened %d: %s\n", t.ID, t.Text)
				} else {
					fmt.Fprintf(a.stdout, "Completed %d: %s\n", t.ID, t.Text)
				}
				return nil
			})
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTask(args, func(t todo.Task) error {
				a.engine.Delete(t.ID)
				fmt.Fprintf(a.stdout, "Deleted %d: %s\n", t.ID, t.Text)
				return nil
			})
		},
	}
}

func newDetailsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "details <id>",
		Short: "Edit a task's description, deadline or priority",
		Long:  "Only the flags given are changed. Pass --deadline \"\" to clear the deadline.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTask(args, func(t todo.Task) error {
				d := todo.DetailsOf(t)
				flags := cmd.Flags()
				if flags.Changed("description") {
					d.Description, _ = flags.GetString("description")
				}
				if flags.Changed("deadline") {
					raw, _ := flags.GetString("deadline")
					deadline, err := todo.ParseDeadline(raw)
					if err != nil {
						return err
					}
					d.Deadline = deadline
				}
				if flags.Changed("priority") {
					raw, _ := flags.GetString("priority")
					p, err := parsePriorityFlag(raw)
					if err != nil {
						return err
					}
					d.Priority = p
				}
				a.engine.SaveDetails(t.ID, d)
				fmt.Fprintf(a.stdout, "Saved %d: %s\n", t.ID, t.Text)
				return nil
			})
		},
	}
	cmd.Flags().String("description", "", "new description")
	cmd.Flags().String("deadline", "", "deadline as YYYY-MM-DD, empty to clear")
	cmd.Flags().StringP("priority", "p", "", "priority: low, medium or high")
	return cmd
}

func newTagCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <id> <tag>...",
		Short: "Add tags to a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTask(args, func(t todo.Task) error {
				for _, tag := range args[1:] {
					a.engine.AddTag(&t, tag)
				}
				a.engine.SaveDetails(t.ID, todo.DetailsOf(t))
				fmt.Fprintf(a.stdout, "Tags of %d: %s\n", t.ID, strings.Join(t.Tags, ", "))
				return nil
			})
		},
	}
}

func newUntagCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "untag <id> <tag>...",
		Short: "Remove tags from a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTask(args, func(t todo.Task) error {
				for _, tag := range args[1:] {
					a.engine.DeleteTag(&t, tag)
				}
				a.engine.SaveDetails(t.ID, todo.DetailsOf(t))
				fmt.Fprintf(a.stdout, "Tags of %d: %s\n", t.ID, strings.Join(t.Tags, ", "))
				return nil
			})
		},
	}
}

func newColorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "List tag colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			colors := a.engine.Colors()
			if len(colors) == 0 {
				fmt.Fprintln(a.stdout, "No tags yet.")
				return nil
			}
			tags := make([]string, 0, len(colors))
			for tag := range colors {
				tags = append(tags, tag)
			}
			slices.Sort(tags)
			for _, tag := range tags {
				swatch := lipgloss.NewStyle().Background(lipgloss.Color(colors[tag])).Render("  ")
				fmt.Fprintf(a.stdout, "%s %s %s\n", swatch, colors[tag], tag)
			}
			return nil
		},
	}
}
