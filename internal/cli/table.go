package cli

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable writes a table with the given headers and rows to w.
func RenderTable(w io.Writer, headers []string, rows [][]any) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	headerRow := table.Row{}
	for _, h := range headers {
		headerRow = append(headerRow, h)
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}
	if len(rows) == 0 {
		t.AppendFooter(table.Row{"(none)"})
	}

	t.Render()
}
