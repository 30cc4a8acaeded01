package adapter

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/typemap"
	"github.com/leapstack-labs/sqlbind/pkg/types"
)

// Dialect describes how an adapter reads its information_schema.
type Dialect struct {
	Name string

	// Placeholder formats the n-th (1-based) bind parameter.
	Placeholder func(n int) string

	// CatalogsQuery lists catalog names, one per row.
	CatalogsQuery string

	// SessionQuery returns the current catalog and schema as one row.
	SessionQuery string

	// Rewrite, when set, normalizes native type text before lookup.
	Rewrite func(native string) string

	// NativeTypes maps lower case information_schema data_type names to
	// SQL type text understood by typemap.Parse. Types missing here are
	// parsed as written.
	NativeTypes map[string]string
}

// QuestionPlaceholder formats placeholders as ?.
func QuestionPlaceholder(int) string { return "?" }

// DollarPlaceholder formats placeholders as $1, $2, ...
func DollarPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

// ConvertType maps a native column type onto a semantic data type.
func (d *Dialect) ConvertType(native string, nullable bool) (types.DataType, error) {
	text := strings.TrimSpace(native)
	if d.Rewrite != nil {
		text = d.Rewrite(text)
	}
	if mapped, ok := d.NativeTypes[strings.ToLower(text)]; ok {
		text = mapped
	}
	dt, err := typemap.Parse(text)
	if err != nil {
		return types.DataType{}, fmt.Errorf("column type %s: %w", native, err)
	}
	return dt.WithNullable(nullable), nil
}
