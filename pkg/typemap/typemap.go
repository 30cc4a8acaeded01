// Package typemap maps declared SQL types onto semantic data types.
//
// Map is pure and total over the supported syntax. Recognized types that
// are not implemented fail with *UnsupportedTypeError, whose message names
// the semantic type root (e.g. "Type is not supported: VARBINARY").
//
// CHAR(n) and VARCHAR(n) map to the unbounded STRING type: the declared
// length is not retained.
package typemap

import (
	"fmt"

	"github.com/leapstack-labs/sqlbind/pkg/core"
	"github.com/leapstack-labs/sqlbind/pkg/types"
)

// UnsupportedTypeError reports a recognized type the binder does not implement.
type UnsupportedTypeError struct {
	Kind types.Kind
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("Type is not supported: %s", e.Kind)
}

// InvalidTypeError reports a type with arguments that make no sense,
// such as DECIMAL(1, 2, 3).
type InvalidTypeError struct {
	Type    string
	Message string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type %s: %s", e.Type, e.Message)
}

// Map converts a declared type into a semantic data type.
func Map(t core.TypeExpr) (types.DataType, error) {
	var (
		dt  types.DataType
		err error
	)

	switch tt := t.(type) {
	case *core.BasicType:
		dt, err = mapBasic(tt)
	case *core.CollectionType:
		var elem types.DataType
		elem, err = Map(tt.Elem)
		if err != nil {
			return types.DataType{}, err
		}
		if tt.Kind == core.CollectionMultiset {
			dt = types.Multiset(elem)
		} else {
			dt = types.Array(elem)
		}
	case *core.MapType:
		var key, value types.DataType
		if key, err = Map(tt.Key); err != nil {
			return types.DataType{}, err
		}
		if value, err = Map(tt.Value); err != nil {
			return types.DataType{}, err
		}
		dt = types.Map(key, value)
	case *core.RowType:
		fields := make([]types.Field, 0, len(tt.Fields))
		for _, f := range tt.Fields {
			ft, ferr := Map(f.Type)
			if ferr != nil {
				return types.DataType{}, ferr
			}
			// Field comments are documentation only and are dropped.
			fields = append(fields, types.NewField(f.Name, ft))
		}
		dt = types.Row(fields...)
	default:
		return types.DataType{}, fmt.Errorf("unknown type node %T", t)
	}
	if err != nil {
		return types.DataType{}, err
	}

	return dt.WithNullable(!t.IsNotNull()), nil
}

// mapBasic converts a scalar type.
func mapBasic(t *core.BasicType) (types.DataType, error) {
	switch t.Name {
	case "CHAR", "VARCHAR", "STRING":
		if err := maxArgs(t, 1); err != nil {
			return types.DataType{}, err
		}
		return types.String(), nil
	case "BOOLEAN":
		return noArgs(t, types.Boolean())
	case "TINYINT":
		return noArgs(t, types.TinyInt())
	case "SMALLINT":
		return noArgs(t, types.SmallInt())
	case "INT", "INTEGER":
		return noArgs(t, types.Int())
	case "BIGINT":
		return noArgs(t, types.BigInt())
	case "FLOAT":
		return noArgs(t, types.Float())
	case "DOUBLE":
		return noArgs(t, types.Double())
	case "DECIMAL", "DEC", "NUMERIC":
		return mapDecimal(t)
	case "DATE":
		return noArgs(t, types.Date())
	case "TIME":
		if t.WithLocalTimeZone {
			return types.DataType{}, &UnsupportedTypeError{Kind: types.KindTimestampLTZ}
		}
		p, err := precision(t, types.DefaultTimePrecision, 9)
		if err != nil {
			return types.DataType{}, err
		}
		return types.Time(p), nil
	case "TIMESTAMP":
		if t.WithLocalTimeZone {
			return types.DataType{}, &UnsupportedTypeError{Kind: types.KindTimestampLTZ}
		}
		p, err := precision(t, types.DefaultTimestampPrecision, 9)
		if err != nil {
			return types.DataType{}, err
		}
		return types.Timestamp(p), nil
	case "BYTES", "VARBINARY":
		return types.DataType{}, &UnsupportedTypeError{Kind: types.KindVarBinary}
	case "BINARY":
		return types.DataType{}, &UnsupportedTypeError{Kind: types.KindBinary}
	case "NULL":
		return noArgs(t, types.Null())
	}
	return types.DataType{}, &InvalidTypeError{Type: t.Name, Message: "unknown type"}
}

func mapDecimal(t *core.BasicType) (types.DataType, error) {
	if err := maxArgs(t, 2); err != nil {
		return types.DataType{}, err
	}
	p, s := types.DefaultDecimalPrecision, types.DefaultDecimalScale
	if len(t.Args) > 0 {
		p = t.Args[0]
	}
	if len(t.Args) > 1 {
		s = t.Args[1]
	}
	if p < 1 || p > types.MaxDecimalPrecision {
		return types.DataType{}, &InvalidTypeError{Type: t.Name, Message: fmt.Sprintf("precision %d must be between 1 and %d", p, types.MaxDecimalPrecision)}
	}
	if s < 0 || s > p {
		return types.DataType{}, &InvalidTypeError{Type: t.Name, Message: fmt.Sprintf("scale %d must be between 0 and the precision %d", s, p)}
	}
	return types.Decimal(p, s), nil
}

func precision(t *core.BasicType, def, limit int) (int, error) {
	if err := maxArgs(t, 1); err != nil {
		return 0, err
	}
	if len(t.Args) == 0 {
		return def, nil
	}
	p := t.Args[0]
	if p < 0 || p > limit {
		return 0, &InvalidTypeError{Type: t.Name, Message: fmt.Sprintf("precision %d must be between 0 and %d", p, limit)}
	}
	return p, nil
}

func noArgs(t *core.BasicType, dt types.DataType) (types.DataType, error) {
	if err := maxArgs(t, 0); err != nil {
		return types.DataType{}, err
	}
	return dt, nil
}

func maxArgs(t *core.BasicType, n int) error {
	if len(t.Args) > n {
		return &InvalidTypeError{Type: t.Name, Message: fmt.Sprintf("expected at most %d arguments, got %d", n, len(t.Args))}
	}
	return nil
}
