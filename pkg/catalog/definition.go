package catalog

import (
	"maps"
	"slices"

	"github.com/leapstack-labs/sqlbind/pkg/types"
)

// Column is one column of a table.
type Column struct {
	Name string
	Type types.DataType
	// Expr is the expression text of a computed column, empty otherwise.
	Expr    string
	Comment string
}

// IsComputed reports whether the column is computed from an expression.
func (c Column) IsComputed() bool { return c.Expr != "" }

// TableDefinition describes a table. Column order is significant.
type TableDefinition struct {
	Columns       []Column
	PartitionKeys []string
	Options       map[string]string
	Comment       string
	PrimaryKey    []string
}

// ColumnNames returns the column names in declaration order.
func (t *TableDefinition) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name.
func (t *TableDefinition) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Clone returns a deep copy.
func (t *TableDefinition) Clone() *TableDefinition {
	if t == nil {
		return nil
	}
	c := *t
	c.Columns = slices.Clone(t.Columns)
	c.PartitionKeys = slices.Clone(t.PartitionKeys)
	c.PrimaryKey = slices.Clone(t.PrimaryKey)
	c.Options = cloneOptions(t.Options)
	return &c
}

// DatabaseDefinition describes a database. A nil Comment means none was given.
type DatabaseDefinition struct {
	Comment *string
	Options map[string]string
}

// Clone returns a deep copy.
func (d *DatabaseDefinition) Clone() *DatabaseDefinition {
	if d == nil {
		return nil
	}
	c := *d
	if d.Comment != nil {
		comment := *d.Comment
		c.Comment = &comment
	}
	c.Options = cloneOptions(d.Options)
	return &c
}

func cloneOptions(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return maps.Clone(m)
}
