package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WillyV3/todobi/internal/todo"
)

func sampleReport() Report {
	return Report{
		Tasks: []todo.Task{
			{ID: 1, Text: "Pay rent", Deadline: todo.Date(2024, 4, 30), Tags: []string{"home"}, Priority: todo.PriorityHigh},
			{ID: 2, Text: "Çay al", Description: "iki paket", Completed: true, Tags: []string{}, Priority: todo.PriorityLow},
		},
		Colors: map[string]string{"home": "#BAE1FF"},
		Now:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleReport()))

	var got []todo.Task
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Pay rent", got[0].Text)
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "CSV", sampleReport()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "Pay rent", "false", "high", "2024-04-30", "true", "home", ""}, rows[1])
	assert.Equal(t, "iki paket", rows[2][7])
}

func TestWrite_PDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPDF, sampleReport()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

type failingWriter struct{ writes int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errors.New("disk full")
}

func TestWrite_CSVReportsWriteErrors(t *testing.T) {
	tests := []struct {
		name string
		desc string
	}{
		{"short rows fail on flush", "short"},
		{"long row fails mid write", strings.Repeat("x", 8192)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sampleReport()
			r.Tasks[1].Description = tt.desc

			w := &failingWriter{}
			err := Write(w, FormatCSV, r)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "disk full")
			assert.Equal(t, 1, w.writes, "writing stops at the first error")
		})
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, "xml", sampleReport()))
}

func TestHexRGB(t *testing.T) {
	r, g, b := hexRGB("#FFB3BA")
	assert.Equal(t, []int{255, 179, 186}, []int{r, g, b})

	r, g, b = hexRGB("nope")
	assert.Equal(t, []int{229, 231, 235}, []int{r, g, b})
}
