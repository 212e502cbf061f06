package cmd

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/example/holdbot/internal/application/runner"
)

func renderSummary(w io.Writer, sum runner.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Title", "State", "Result", "URL"})

	for i, o := range sum.Outcomes {
		result := "skipped"
		switch {
		case o.Succeeded:
			result = string(o.Action)
		case o.ErrorDetail != "":
			result = "error: " + o.ErrorDetail
		}
		t.AppendRow(table.Row{i + 1, o.BookTitle, o.State, result, o.URL})
	}
	t.AppendFooter(table.Row{"", "", "", "succeeded", sum.Successes})

	t.SetStyle(table.StyleRounded)
	t.Render()
}
