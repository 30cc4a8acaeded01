package binder

import (
	"context"
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqlbind/pkg/catalog"
	"github.com/leapstack-labs/sqlbind/pkg/core"
	"github.com/leapstack-labs/sqlbind/pkg/operation"
	"github.com/leapstack-labs/sqlbind/pkg/parser"
	"github.com/leapstack-labs/sqlbind/pkg/types"
)

// QueryCompiler validates the query text of a SELECT or of an INSERT and
// reports the tables it reads. Source identifiers must be fully qualified
// against the given session.
type QueryCompiler interface {
	Compile(ctx context.Context, sql string, s catalog.Session) (*operation.QueryOperation, error)
}

// PassthroughCompiler accepts any query text and reports no sources.
type PassthroughCompiler struct{}

// Compile implements QueryCompiler.
func (PassthroughCompiler) Compile(_ context.Context, sql string, _ catalog.Session) (*operation.QueryOperation, error) {
	return &operation.QueryOperation{SQL: sql}, nil
}

// bindQuery compiles query and checks every source table it reads.
func (c *call) bindQuery(query string) (*operation.QueryOperation, error) {
	q, err := c.b.compiler.Compile(c.ctx, query, c.session)
	if err != nil {
		var nf *catalog.NotFoundError
		if errors.As(err, &nf) {
			return nil, c.fail(KindResolution, err, nf.Error())
		}
		var be *Error
		if errors.As(err, &be) {
			return nil, be
		}
		return nil, c.fail(KindValidation, err, fmt.Sprintf("Invalid query: %v", err))
	}

	for _, src := range q.Sources {
		def, err := c.b.catalog.GetTable(c.ctx, src)
		if err != nil {
			return nil, c.fail(KindResolution, err, fmt.Sprintf("Failed to look up table %s: %v", src, err))
		}
		if def == nil {
			nf := &catalog.NotFoundError{Kind: "Table", Name: src.String()}
			return nil, c.fail(KindResolution, nf, nf.Error())
		}
		if err := c.checkStoredComputed(def); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// checkStoredComputed validates the computed columns of a stored table.
// With computed columns disabled any computed column is invalid.
func (c *call) checkStoredComputed(def *catalog.TableDefinition) error {
	declared := make(map[string]types.DataType, len(def.Columns))
	for _, col := range def.Columns {
		if col.IsComputed() {
			if err := c.checkComputedColumn(col, declared); err != nil {
				return c.fail(KindValidation, err, fmt.Sprintf(MsgInvalidComputed, col.Name))
			}
		}
		declared[col.Name] = col.Type
	}
	return nil
}

func (c *call) checkComputedColumn(col catalog.Column, declared map[string]types.DataType) error {
	if !c.b.computed {
		return errors.New("computed columns are not enabled")
	}
	expr, err := parser.ParseExpression(col.Expr)
	if err != nil {
		return err
	}
	dt, err := inferType(expr, declared)
	if err != nil {
		return err
	}
	if !types.CanAssign(dt, col.Type) {
		return fmt.Errorf("expression of type %s cannot be assigned to column of type %s", dt, col.Type)
	}
	return nil
}

func (c *call) bindInsert(st *core.InsertStmt) (operation.Operation, error) {
	target, def, err := c.lookupTable(st.Table)
	if err != nil {
		return nil, err
	}

	partitions := make(map[string]string, len(st.Partition))
	for _, p := range st.Partition {
		if _, ok := def.Column(p.Column); !ok {
			return nil, c.fail(KindValidation, nil,
				fmt.Sprintf("Static partition column '%s' is not defined in table %s.", p.Column, target))
		}
		if _, dup := partitions[p.Column]; dup {
			return nil, c.fail(KindValidation, nil, fmt.Sprintf(MsgDuplicatePartition, p.Column))
		}
		partitions[p.Column] = p.Value
	}

	q, err := c.bindQuery(st.Query)
	if err != nil {
		return nil, err
	}
	return &operation.InsertOperation{
		Target:           target,
		StaticPartitions: partitions,
		Overwrite:        st.Overwrite,
		Query:            *q,
	}, nil
}
