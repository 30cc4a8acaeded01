package core

// ---------- Declared Types ----------

// BasicType is a named scalar type such as INT, DECIMAL(10, 2) or
// TIMESTAMP(3) WITH LOCAL TIME ZONE. Name is upper-cased and multi-word
// names are normalized with a single space (DOUBLE PRECISION).
type BasicType struct {
	NodeInfo
	Name string
	Args []int
	// WithLocalTimeZone is set for TIME/TIMESTAMP ... WITH LOCAL TIME ZONE.
	WithLocalTimeZone bool
	NotNull           bool
}

func (*BasicType) typeNode() {}

// IsNotNull implements TypeExpr.
func (t *BasicType) IsNotNull() bool { return t.NotNull }

// CollectionKind distinguishes ARRAY and MULTISET.
type CollectionKind int

// CollectionKind constants.
const (
	CollectionArray CollectionKind = iota
	CollectionMultiset
)

// String returns the SQL keyword of the collection kind.
func (k CollectionKind) String() string {
	if k == CollectionMultiset {
		return "MULTISET"
	}
	return "ARRAY"
}

// CollectionType is ARRAY<T>, T ARRAY, MULTISET<T> or T MULTISET.
// Element nullability lives on Elem; NotNull applies to the collection.
type CollectionType struct {
	NodeInfo
	Kind    CollectionKind
	Elem    TypeExpr
	NotNull bool
}

func (*CollectionType) typeNode() {}

// IsNotNull implements TypeExpr.
func (t *CollectionType) IsNotNull() bool { return t.NotNull }

// MapType is MAP<K, V>.
type MapType struct {
	NodeInfo
	Key     TypeExpr
	Value   TypeExpr
	NotNull bool
}

func (*MapType) typeNode() {}

// IsNotNull implements TypeExpr.
func (t *MapType) IsNotNull() bool { return t.NotNull }

// RowField is a named field of a ROW type.
type RowField struct {
	Name    string
	Type    TypeExpr
	Comment *string
}

// RowType is ROW<...> or ROW(...).
type RowType struct {
	NodeInfo
	Fields  []RowField
	NotNull bool
}

func (*RowType) typeNode() {}

// IsNotNull implements TypeExpr.
func (t *RowType) IsNotNull() bool { return t.NotNull }
