package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// OperationRecord is the outcome of binding one statement of a script.
// Exactly one of Summary and Error is set.
type OperationRecord struct {
	Source    string `json:"source" yaml:"source"`
	Index     int    `json:"index" yaml:"index"`
	Statement string `json:"statement" yaml:"statement"`
	Kind      string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Summary   string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the statement did not bind.
func (r OperationRecord) Failed() bool { return r.Error != "" }

// Operations renders bind results.
func (r *Renderer) Operations(records []OperationRecord) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(records)
	case ModeYAML:
		return r.YAML(records)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"source", "#", "kind", "result"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, WidthMax: 100, WidthMaxEnforcer: text.WrapSoft},
	})

	failed := 0
	for _, rec := range records {
		kind, result := rec.Kind, rec.Summary
		if rec.Failed() {
			failed++
			kind = r.styles.Error.Render("ERROR")
			result = rec.Error
		}
		t.AppendRow(table.Row{rec.Source, rec.Index, kind, strings.TrimSpace(result)})
	}
	t.Render()

	msg := fmt.Sprintf("%d statements, %d failed", len(records), failed)
	if failed > 0 {
		r.Println(r.styles.Warning.Render(msg))
	} else {
		r.Println(r.Muted(msg))
	}
	return nil
}
