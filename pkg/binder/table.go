package binder

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/catalog"
	"github.com/leapstack-labs/sqlbind/pkg/core"
	"github.com/leapstack-labs/sqlbind/pkg/operation"
	"github.com/leapstack-labs/sqlbind/pkg/typemap"
	"github.com/leapstack-labs/sqlbind/pkg/types"
)

func (c *call) bindCreateTable(st *core.CreateTableStmt) (operation.Operation, error) {
	id, err := c.resolve(st.Name)
	if err != nil {
		return nil, err
	}
	if st.Watermark != nil {
		return nil, c.fail(KindUnsupported, nil, MsgWatermarkUnsupported)
	}

	columns, err := c.bindColumns(st.Columns)
	if err != nil {
		return nil, err
	}

	pk, err := c.bindPrimaryKey(st, columns)
	if err != nil {
		return nil, err
	}
	for i := range columns {
		if slices.Contains(pk, columns[i].Name) {
			columns[i].Type = columns[i].Type.NotNull()
		}
	}

	partitionKeys, err := c.bindPartitionKeys(st.PartitionKeys, columns)
	if err != nil {
		return nil, err
	}

	def := catalog.TableDefinition{
		Columns:       columns,
		PartitionKeys: partitionKeys,
		Options:       properties(st.Properties),
		PrimaryKey:    pk,
	}
	if st.Comment != nil {
		def.Comment = *st.Comment
	}
	return &operation.CreateTableOperation{Identifier: id, Definition: def, IgnoreIfExists: st.IfNotExists}, nil
}

// bindColumns maps every column definition. Computed columns may only
// reference columns declared before them.
func (c *call) bindColumns(defs []*core.ColumnDef) ([]catalog.Column, error) {
	columns := make([]catalog.Column, 0, len(defs))
	declared := make(map[string]types.DataType, len(defs))

	for _, def := range defs {
		if _, dup := declared[def.Name]; dup {
			return nil, c.fail(KindValidation, nil, fmt.Sprintf(MsgDuplicateColumn, def.Name))
		}
		if def.Metadata {
			return nil, c.fail(KindUnsupported, nil, MsgOnlyRegularColumns)
		}

		col := catalog.Column{Name: def.Name}
		if def.Comment != nil {
			col.Comment = *def.Comment
		}

		if def.IsComputed() {
			if !c.b.computed {
				return nil, c.fail(KindUnsupported, nil, MsgOnlyRegularColumns)
			}
			dt, err := inferType(def.Expr, declared)
			if err != nil {
				return nil, c.fail(KindValidation, err, fmt.Sprintf(MsgInvalidComputed, def.Name))
			}
			col.Type = dt
			col.Expr = def.ExprText
		} else {
			dt, err := c.mapType(def.Type)
			if err != nil {
				return nil, err
			}
			col.Type = dt
		}

		declared[def.Name] = col.Type
		columns = append(columns, col)
	}
	return columns, nil
}

// mapType runs the type mapper, classifying its errors.
func (c *call) mapType(t core.TypeExpr) (types.DataType, error) {
	dt, err := typemap.Map(t)
	if err == nil {
		return dt, nil
	}
	var unsupported *typemap.UnsupportedTypeError
	if errors.As(err, &unsupported) {
		return types.DataType{}, c.fail(KindUnsupported, err, unsupported.Error())
	}
	return types.DataType{}, c.fail(KindValidation, err, err.Error())
}

// bindPrimaryKey returns the primary key columns. A table may declare one
// primary key and no UNIQUE constraints.
func (c *call) bindPrimaryKey(st *core.CreateTableStmt, columns []catalog.Column) ([]string, error) {
	var pk []string
	for _, col := range st.Columns {
		if col.PrimaryKey {
			if pk != nil {
				return nil, c.fail(KindValidation, nil, MsgDuplicatePrimaryKey)
			}
			pk = []string{col.Name}
		}
	}
	for _, con := range st.Constraints {
		if con.Kind == core.ConstraintUnique {
			return nil, c.fail(KindUnsupported, nil, MsgUniqueNotSupported)
		}
		if pk != nil {
			return nil, c.fail(KindValidation, nil, MsgDuplicatePrimaryKey)
		}
		pk = slices.Clone(con.Columns)
	}
	for _, name := range pk {
		if !slices.ContainsFunc(columns, func(col catalog.Column) bool { return col.Name == name }) {
			return nil, c.fail(KindValidation, nil, fmt.Sprintf(MsgUnknownPKColumn, name))
		}
	}
	return pk, nil
}

// bindPartitionKeys checks the keys name distinct columns. Order is kept.
func (c *call) bindPartitionKeys(keys []string, columns []catalog.Column) ([]string, error) {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}

	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !slices.Contains(names, k) {
			quoted := make([]string, len(names))
			for i, n := range names {
				quoted[i] = "'" + n + "'"
			}
			return nil, c.fail(KindValidation, nil, fmt.Sprintf(MsgUnknownPartition, k, strings.Join(quoted, ", ")))
		}
		if seen[k] {
			return nil, c.fail(KindValidation, nil, fmt.Sprintf(MsgDuplicatePartition, k))
		}
		seen[k] = true
	}
	return slices.Clone(keys), nil
}

func (c *call) bindAlterTableRename(st *core.AlterTableRenameStmt) (operation.Operation, error) {
	source, _, err := c.lookupTable(st.Name)
	if err != nil {
		return nil, err
	}
	target, err := catalog.ResolveRenameTarget(st.NewName, source)
	if err != nil {
		return nil, c.catalogError(err)
	}
	return &operation.AlterTableRenameOperation{Source: source, Target: target}, nil
}

// bindAlterTableSet merges the new options onto the existing table.
func (c *call) bindAlterTableSet(st *core.AlterTableSetStmt) (operation.Operation, error) {
	id, existing, err := c.lookupTable(st.Name)
	if err != nil {
		return nil, err
	}
	def := existing.Clone()
	maps.Copy(def.Options, properties(st.Properties))
	return &operation.AlterTableOptionsOperation{Identifier: id, Definition: *def}, nil
}

func (c *call) bindDropTable(st *core.DropTableStmt) (operation.Operation, error) {
	id, err := c.resolve(st.Name)
	if err != nil {
		return nil, err
	}
	return &operation.DropTableOperation{Identifier: id, IfExists: st.IfExists}, nil
}

func (c *call) bindDescribeTable(st *core.DescribeTableStmt) (operation.Operation, error) {
	id, _, err := c.lookupTable(st.Name)
	if err != nil {
		return nil, err
	}
	return &operation.DescribeTableOperation{Identifier: id}, nil
}
