// Package export renders the task list as JSON, CSV or PDF.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/WillyV3/todobi/internal/todo"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// Report is what gets exported: the tasks in display order, the tag colors
// and the instant used for overdue flags.
type Report struct {
	Tasks  []todo.Task
	Colors map[string]string
	Now    time.Time
}

// Write renders r to w in the given format.
func Write(w io.Writer, format Format, r Report) error {
	switch Format(strings.ToLower(string(format))) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r.Tasks)
	case FormatCSV:
		return writeCSV(w, r)
	case FormatPDF:
		return writePDF(w, r)
	default:
		return fmt.Errorf("unknown format %s", format)
	}
}

func writeCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "text", "completed", "priority", "deadline", "overdue", "tags", "description"}); err != nil {
		return err
	}
	for _, t := range r.Tasks {
		err := cw.Write([]string{
			strconv.FormatInt(t.ID, 10),
			t.Text,
			strconv.FormatBool(t.Completed),
			t.Priority.String(),
			t.Deadline.String(),
			strconv.FormatBool(todo.IsOverdue(t, r.Now)),
			strings.Join(t.Tags, ";"),
			t.Description,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Task List")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.Cell(0, 6, tr(fmt.Sprintf("%d tasks, exported %s", len(r.Tasks), r.Now.Format("2006-01-02 15:04"))))
	pdf.Ln(10)

	for _, t := range r.Tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}

		pdf.SetFont("Arial", "B", 11)
		switch {
		case t.Completed:
			pdf.SetTextColor(130, 130, 130)
		case todo.IsOverdue(t, r.Now):
			pdf.SetTextColor(220, 38, 38)
		default:
			pdf.SetTextColor(23, 37, 84)
		}
		pdf.MultiCell(0, 6, tr(box+" "+t.Text), "", "L", false)

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(90, 90, 90)
		meta := "Priority: " + t.Priority.Label()
		if !t.Deadline.IsZero() {
			meta += "   Deadline: " + t.Deadline.String()
		}
		if todo.IsDeadlineNear(t, r.Now) {
			meta += "   (due within a day)"
		}
		pdf.Cell(0, 5, tr(meta))
		pdf.Ln(5)

		if t.Description != "" {
			pdf.MultiCell(0, 5, tr(t.Description), "", "L", false)
		}

		if len(t.Tags) > 0 {
			pdf.SetTextColor(40, 40, 40)
			for _, tag := range t.Tags {
				red, green, blue := hexRGB(r.Colors[tag])
				pdf.SetFillColor(red, green, blue)
				width := pdf.GetStringWidth(tr(tag)) + 4
				pdf.CellFormat(width, 5, tr(tag), "", 0, "C", true, 0, "")
				pdf.Cell(2, 5, "")
			}
			pdf.Ln(5)
		}
		pdf.Ln(3)
	}

	return pdf.Output(w)
}

// hexRGB parses "#RRGGBB", falling back to light gray.
func hexRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 229, 231, 235
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 229, 231, 235
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
