package types

// numericRank orders numeric kinds from narrowest to widest.
var numericRank = map[Kind]int{
	KindTinyInt:  1,
	KindSmallInt: 2,
	KindInt:      3,
	KindBigInt:   4,
	KindDecimal:  5,
	KindFloat:    6,
	KindDouble:   7,
}

// CanAssign reports whether a value of type from may be stored in a column
// of type to without an explicit cast. Nullability is not considered.
//
// Numbers widen (TINYINT to DOUBLE), untyped NULL fits anything, and
// collections, maps and rows are compared element by element.
func CanAssign(from, to DataType) bool {
	if from.Kind == KindNull {
		return true
	}
	if from.Kind.IsNumeric() && to.Kind.IsNumeric() {
		if from.Kind == KindDecimal && to.Kind == KindDecimal {
			return from.Precision-from.Scale <= to.Precision-to.Scale && from.Scale <= to.Scale
		}
		return numericRank[from.Kind] <= numericRank[to.Kind]
	}
	if from.Kind != to.Kind {
		return false
	}

	switch from.Kind {
	case KindTime, KindTimestamp, KindTimestampLTZ:
		return from.Precision <= to.Precision
	case KindArray, KindMultiset:
		return CanAssign(*from.Elem, *to.Elem)
	case KindMap:
		return CanAssign(*from.Key, *to.Key) && CanAssign(*from.Value, *to.Value)
	case KindRow:
		if len(from.Fields) != len(to.Fields) {
			return false
		}
		for i := range from.Fields {
			if !CanAssign(from.Fields[i].Type, to.Fields[i].Type) {
				return false
			}
		}
	}
	return true
}

// integerDigits is the number of decimal digits each integer kind needs.
var integerDigits = map[Kind]int{
	KindTinyInt:  3,
	KindSmallInt: 5,
	KindInt:      10,
	KindBigInt:   19,
}

// Wider returns the narrowest numeric type both a and b widen to. The
// result is nullable when either input is. ok is false when either type is
// not numeric.
//
// Decimals keep enough integer digits and scale for both inputs, and an
// integer meeting a decimal counts as a decimal of its digit count.
// Precision is capped at MaxDecimalPrecision, giving up scale first.
func Wider(a, b DataType) (DataType, bool) {
	if !a.Kind.IsNumeric() || !b.Kind.IsNumeric() {
		return DataType{}, false
	}
	nullable := a.Nullable || b.Nullable

	if a.Kind != KindDecimal && b.Kind == KindDecimal {
		a, b = b, a
	}
	if a.Kind == KindDecimal {
		switch {
		case b.Kind == KindDecimal:
			return widerDecimal(max(a.Precision-a.Scale, b.Precision-b.Scale), max(a.Scale, b.Scale)).WithNullable(nullable), true
		case integerDigits[b.Kind] > 0:
			return widerDecimal(max(integerDigits[b.Kind], a.Precision-a.Scale), a.Scale).WithNullable(nullable), true
		}
	}

	if numericRank[a.Kind] >= numericRank[b.Kind] {
		return a.WithNullable(nullable), true
	}
	return b.WithNullable(nullable), true
}

func widerDecimal(integer, scale int) DataType {
	precision := min(integer+scale, MaxDecimalPrecision)
	return Decimal(precision, min(scale, max(precision-integer, 0)))
}
