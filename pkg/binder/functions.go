package binder

import (
	"fmt"

	"github.com/leapstack-labs/sqlbind/pkg/types"
)

// function describes a built-in function usable in computed columns.
type function struct {
	minArgs int
	maxArgs int // -1 for variadic
	// niladic functions may be written without parentheses.
	niladic bool
	infer   func(args []types.DataType) (types.DataType, error)
}

var functions = map[string]function{
	"UPPER":             {1, 1, false, stringToString},
	"LOWER":             {1, 1, false, stringToString},
	"TRIM":              {1, 1, false, stringToString},
	"LTRIM":             {1, 1, false, stringToString},
	"RTRIM":             {1, 1, false, stringToString},
	"CHAR_LENGTH":       {1, 1, false, stringLength},
	"CHARACTER_LENGTH":  {1, 1, false, stringLength},
	"CONCAT":            {1, -1, false, concat},
	"SUBSTRING":         {2, 3, false, substring},
	"ABS":               {1, 1, false, sameNumeric},
	"FLOOR":             {1, 1, false, sameNumeric},
	"CEIL":              {1, 1, false, sameNumeric},
	"ROUND":             {1, 2, false, sameNumeric},
	"MOD":               {2, 2, false, mod},
	"COALESCE":          {1, -1, false, coalesce},
	"TO_TIMESTAMP":      {1, 2, false, parseTemporal(types.Timestamp(3))},
	"TO_DATE":           {1, 2, false, parseTemporal(types.Date())},
	"DATE_FORMAT":       {2, 2, false, dateFormat},
	"CURRENT_DATE":      {0, 0, true, constant(types.Date().NotNull())},
	"CURRENT_TIME":      {0, 0, true, constant(types.Time(0).NotNull())},
	"CURRENT_TIMESTAMP": {0, 0, true, constant(types.Timestamp(3).NotNull())},
	"LOCALTIMESTAMP":    {0, 0, true, constant(types.Timestamp(3).NotNull())},
	"NOW":               {0, 0, false, constant(types.Timestamp(3).NotNull())},
	"PROCTIME":          {0, 0, false, constant(types.Timestamp(3).NotNull())},
}

func anyNullable(args []types.DataType) bool {
	for _, a := range args {
		if a.Nullable {
			return true
		}
	}
	return false
}

func constant(dt types.DataType) func([]types.DataType) (types.DataType, error) {
	return func([]types.DataType) (types.DataType, error) { return dt, nil }
}

func stringToString(args []types.DataType) (types.DataType, error) {
	if !isStringLike(args[0]) {
		return types.DataType{}, fmt.Errorf("expected STRING argument, got %s", args[0])
	}
	return types.String().WithNullable(args[0].Nullable), nil
}

func stringLength(args []types.DataType) (types.DataType, error) {
	if !isStringLike(args[0]) {
		return types.DataType{}, fmt.Errorf("expected STRING argument, got %s", args[0])
	}
	return types.Int().WithNullable(args[0].Nullable), nil
}

func concat(args []types.DataType) (types.DataType, error) {
	for _, a := range args {
		if !isStringLike(a) {
			return types.DataType{}, fmt.Errorf("expected STRING arguments, got %s", a)
		}
	}
	return types.String().WithNullable(anyNullable(args)), nil
}

func substring(args []types.DataType) (types.DataType, error) {
	if !isStringLike(args[0]) {
		return types.DataType{}, fmt.Errorf("expected STRING argument, got %s", args[0])
	}
	for _, a := range args[1:] {
		if !isInteger(a) {
			return types.DataType{}, fmt.Errorf("expected integer position, got %s", a)
		}
	}
	return types.String().WithNullable(anyNullable(args)), nil
}

func sameNumeric(args []types.DataType) (types.DataType, error) {
	if !args[0].Kind.IsNumeric() {
		return types.DataType{}, fmt.Errorf("expected numeric argument, got %s", args[0])
	}
	if len(args) > 1 && !isInteger(args[1]) {
		return types.DataType{}, fmt.Errorf("expected integer scale, got %s", args[1])
	}
	return args[0].WithNullable(anyNullable(args)), nil
}

func mod(args []types.DataType) (types.DataType, error) {
	if !isExact(args[0]) || !isExact(args[1]) {
		return types.DataType{}, fmt.Errorf("expected exact numeric arguments, got %s and %s", args[0], args[1])
	}
	return args[1].WithNullable(anyNullable(args)), nil
}

// coalesce returns the common type of its arguments. The result is
// nullable only when every argument is.
func coalesce(args []types.DataType) (types.DataType, error) {
	result := args[0]
	for _, a := range args[1:] {
		switch {
		case a.Kind == types.KindNull:
		case result.Kind == types.KindNull:
			result = a.AsNullable()
		case result.Kind.IsNumeric() && a.Kind.IsNumeric():
			result, _ = types.Wider(result, a)
		case result.Kind == a.Kind && !result.Kind.IsCollection():
		default:
			return types.DataType{}, fmt.Errorf("no common type for %s and %s", result, a)
		}
	}
	nullable := true
	for _, a := range args {
		if !a.Nullable {
			nullable = false
		}
	}
	return result.WithNullable(nullable), nil
}

func parseTemporal(dt types.DataType) func([]types.DataType) (types.DataType, error) {
	return func(args []types.DataType) (types.DataType, error) {
		for _, a := range args {
			if !isStringLike(a) {
				return types.DataType{}, fmt.Errorf("expected STRING arguments, got %s", a)
			}
		}
		return dt.WithNullable(true), nil
	}
}

func dateFormat(args []types.DataType) (types.DataType, error) {
	if !isTemporal(args[0].Kind) && !isStringLike(args[0]) {
		return types.DataType{}, fmt.Errorf("expected TIMESTAMP or STRING argument, got %s", args[0])
	}
	if !isStringLike(args[1]) {
		return types.DataType{}, fmt.Errorf("expected STRING format, got %s", args[1])
	}
	return types.String().WithNullable(anyNullable(args)), nil
}

func isInteger(dt types.DataType) bool {
	switch dt.Kind {
	case types.KindTinyInt, types.KindSmallInt, types.KindInt, types.KindBigInt, types.KindNull:
		return true
	}
	return false
}

func isExact(dt types.DataType) bool {
	return isInteger(dt) || dt.Kind == types.KindDecimal
}
