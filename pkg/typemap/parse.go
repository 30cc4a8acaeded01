package typemap

import (
	"github.com/leapstack-labs/sqlbind/pkg/parser"
	"github.com/leapstack-labs/sqlbind/pkg/types"
)

// Parse parses a type string such as "ARRAY<INT NOT NULL>" and maps it.
// Catalog backends use it to read types they stored as text.
func Parse(s string) (types.DataType, error) {
	t, err := parser.ParseType(s)
	if err != nil {
		return types.DataType{}, err
	}
	return Map(t)
}
