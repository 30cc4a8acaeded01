// Package types defines the semantic data types the binder produces for
// declared SQL types.
//
// A DataType is a plain value: it is compared with Equal, rendered with
// String, and never mutated after construction. Constructors return
// nullable types; NotNull derives the non-nullable variant.
package types

import (
	"fmt"
	"strings"
)

// Kind is the root of a data type.
type Kind int

// Kind constants. String returns the root name used in error messages.
const (
	KindNull Kind = iota
	KindString
	KindBoolean
	KindTinyInt
	KindSmallInt
	KindInt
	KindBigInt
	KindFloat
	KindDouble
	KindDecimal
	KindDate
	KindTime
	KindTimestamp
	KindTimestampLTZ
	KindBinary
	KindVarBinary
	KindArray
	KindMultiset
	KindMap
	KindRow
)

var kindNames = map[Kind]string{
	KindNull:         "NULL",
	KindString:       "VARCHAR",
	KindBoolean:      "BOOLEAN",
	KindTinyInt:      "TINYINT",
	KindSmallInt:     "SMALLINT",
	KindInt:          "INTEGER",
	KindBigInt:       "BIGINT",
	KindFloat:        "FLOAT",
	KindDouble:       "DOUBLE",
	KindDecimal:      "DECIMAL",
	KindDate:         "DATE",
	KindTime:         "TIME_WITHOUT_TIME_ZONE",
	KindTimestamp:    "TIMESTAMP_WITHOUT_TIME_ZONE",
	KindTimestampLTZ: "TIMESTAMP_WITH_LOCAL_TIME_ZONE",
	KindBinary:       "BINARY",
	KindVarBinary:    "VARBINARY",
	KindArray:        "ARRAY",
	KindMultiset:     "MULTISET",
	KindMap:          "MAP",
	KindRow:          "ROW",
}

// String returns the type root name, e.g. VARBINARY or TIMESTAMP_WITH_LOCAL_TIME_ZONE.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// IsNumeric reports whether the kind is an exact or approximate number.
func (k Kind) IsNumeric() bool {
	return k >= KindTinyInt && k <= KindDecimal
}

// IsCollection reports whether the kind is ARRAY or MULTISET.
func (k Kind) IsCollection() bool {
	return k == KindArray || k == KindMultiset
}

// Default precisions.
const (
	DefaultDecimalPrecision   = 10
	DefaultDecimalScale       = 0
	DefaultTimePrecision      = 0
	DefaultTimestampPrecision = 6
)

// DataType is a semantic data type.
type DataType struct {
	Kind     Kind
	Nullable bool
	// Precision and Scale apply to DECIMAL; Precision alone to TIME and TIMESTAMP.
	Precision int
	Scale     int
	// Elem is the element type of ARRAY and MULTISET.
	Elem *DataType
	// Key and Value are the entry types of MAP.
	Key   *DataType
	Value *DataType
	// Fields are the ordered fields of ROW.
	Fields []Field
}

// Field is a named field of a ROW type.
type Field struct {
	Name string
	Type DataType
}

func scalar(k Kind) DataType { return DataType{Kind: k, Nullable: true} }

// Null returns the type of an untyped NULL literal.
func Null() DataType { return scalar(KindNull) }

// String returns the unbounded character string type.
func String() DataType { return scalar(KindString) }

// Boolean returns BOOLEAN.
func Boolean() DataType { return scalar(KindBoolean) }

// TinyInt returns TINYINT.
func TinyInt() DataType { return scalar(KindTinyInt) }

// SmallInt returns SMALLINT.
func SmallInt() DataType { return scalar(KindSmallInt) }

// Int returns INT.
func Int() DataType { return scalar(KindInt) }

// BigInt returns BIGINT.
func BigInt() DataType { return scalar(KindBigInt) }

// Float returns FLOAT.
func Float() DataType { return scalar(KindFloat) }

// Double returns DOUBLE.
func Double() DataType { return scalar(KindDouble) }

// MaxDecimalPrecision is the largest DECIMAL precision.
const MaxDecimalPrecision = 38

// Decimal returns DECIMAL(precision, scale).
func Decimal(precision, scale int) DataType {
	t := scalar(KindDecimal)
	t.Precision, t.Scale = precision, scale
	return t
}

// Date returns DATE.
func Date() DataType { return scalar(KindDate) }

// Time returns TIME(precision).
func Time(precision int) DataType {
	t := scalar(KindTime)
	t.Precision = precision
	return t
}

// Timestamp returns TIMESTAMP(precision).
func Timestamp(precision int) DataType {
	t := scalar(KindTimestamp)
	t.Precision = precision
	return t
}

// Array returns ARRAY<elem>.
func Array(elem DataType) DataType {
	return DataType{Kind: KindArray, Nullable: true, Elem: &elem}
}

// Multiset returns MULTISET<elem>.
func Multiset(elem DataType) DataType {
	return DataType{Kind: KindMultiset, Nullable: true, Elem: &elem}
}

// Map returns MAP<key, value>.
func Map(key, value DataType) DataType {
	return DataType{Kind: KindMap, Nullable: true, Key: &key, Value: &value}
}

// Row returns ROW<fields...>. An empty field list is allowed.
func Row(fields ...Field) DataType {
	if fields == nil {
		fields = []Field{}
	}
	return DataType{Kind: KindRow, Nullable: true, Fields: fields}
}

// NewField returns a ROW field.
func NewField(name string, t DataType) Field {
	return Field{Name: name, Type: t}
}

// NotNull returns a non-nullable copy of t.
func (t DataType) NotNull() DataType {
	t.Nullable = false
	return t
}

// AsNullable returns a nullable copy of t.
func (t DataType) AsNullable() DataType {
	t.Nullable = true
	return t
}

// WithNullable returns a copy of t with the given nullability.
func (t DataType) WithNullable(nullable bool) DataType {
	t.Nullable = nullable
	return t
}

// Equal reports whether two types are structurally identical, including
// nullability at every level.
func (t DataType) Equal(o DataType) bool {
	if t.Kind != o.Kind || t.Nullable != o.Nullable || t.Precision != o.Precision || t.Scale != o.Scale {
		return false
	}
	if !equalPtr(t.Elem, o.Elem) || !equalPtr(t.Key, o.Key) || !equalPtr(t.Value, o.Value) {
		return false
	}
	if len(t.Fields) != len(o.Fields) {
		return false
	}
	for i := range t.Fields {
		if t.Fields[i].Name != o.Fields[i].Name || !t.Fields[i].Type.Equal(o.Fields[i].Type) {
			return false
		}
	}
	return true
}

func equalPtr(a, b *DataType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// String renders the type in SQL syntax, e.g. ARRAY<INT NOT NULL>.
func (t DataType) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t DataType) write(sb *strings.Builder) {
	switch t.Kind {
	case KindString:
		sb.WriteString("STRING")
	case KindInt:
		sb.WriteString("INT")
	case KindDecimal:
		fmt.Fprintf(sb, "DECIMAL(%d, %d)", t.Precision, t.Scale)
	case KindTime:
		fmt.Fprintf(sb, "TIME(%d)", t.Precision)
	case KindTimestamp:
		fmt.Fprintf(sb, "TIMESTAMP(%d)", t.Precision)
	case KindTimestampLTZ:
		fmt.Fprintf(sb, "TIMESTAMP(%d) WITH LOCAL TIME ZONE", t.Precision)
	case KindArray, KindMultiset:
		sb.WriteString(t.Kind.String())
		sb.WriteByte('<')
		t.Elem.write(sb)
		sb.WriteByte('>')
	case KindMap:
		sb.WriteString("MAP<")
		t.Key.write(sb)
		sb.WriteString(", ")
		t.Value.write(sb)
		sb.WriteByte('>')
	case KindRow:
		sb.WriteString("ROW<")
		for i, f := range t.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "`%s` ", strings.ReplaceAll(f.Name, "`", "``"))
			f.Type.write(sb)
		}
		sb.WriteByte('>')
	default:
		sb.WriteString(t.Kind.String())
	}
	if !t.Nullable {
		sb.WriteString(" NOT NULL")
	}
}
