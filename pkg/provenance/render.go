package provenance

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render writes the flattened tree as a two-column table (option, source).
func Render(w io.Writer, tree Tree) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Option", "Source"})
	for _, e := range Entries(tree) {
		t.AppendRow(table.Row{e.Path, string(e.Source)})
	}
	t.Render()
}
