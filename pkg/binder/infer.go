package binder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/core"
	"github.com/leapstack-labs/sqlbind/pkg/token"
	"github.com/leapstack-labs/sqlbind/pkg/typemap"
	"github.com/leapstack-labs/sqlbind/pkg/types"
)

// inferType derives the type of a computed column expression. columns
// holds the columns visible to the expression.
func inferType(expr core.Expr, columns map[string]types.DataType) (types.DataType, error) {
	switch e := expr.(type) {
	case *core.Literal:
		return literalType(e)
	case *core.ColumnRef:
		if dt, ok := columns[e.Column]; ok {
			return dt, nil
		}
		if fn, ok := functions[strings.ToUpper(e.Column)]; ok && fn.niladic {
			return fn.infer(nil)
		}
		return types.DataType{}, fmt.Errorf("column '%s' not found in any table", e.Column)
	case *core.ParenExpr:
		return inferType(e.Expr, columns)
	case *core.UnaryExpr:
		return inferUnary(e, columns)
	case *core.BinaryExpr:
		return inferBinary(e, columns)
	case *core.IsNullExpr:
		if _, err := inferType(e.Expr, columns); err != nil {
			return types.DataType{}, err
		}
		return types.Boolean().NotNull(), nil
	case *core.CastExpr:
		return inferCast(e, columns)
	case *core.FuncCall:
		return inferCall(e, columns)
	}
	return types.DataType{}, fmt.Errorf("unsupported expression %T", expr)
}

func literalType(l *core.Literal) (types.DataType, error) {
	switch l.Type {
	case core.LiteralString:
		return types.String().NotNull(), nil
	case core.LiteralBool:
		return types.Boolean().NotNull(), nil
	case core.LiteralNull:
		return types.Null(), nil
	}

	v := l.Value
	if strings.ContainsAny(v, "eE") {
		return types.Double().NotNull(), nil
	}
	if intPart, frac, ok := strings.Cut(v, "."); ok {
		intPart = strings.TrimLeft(intPart, "0")
		p := max(len(intPart)+len(frac), 1)
		if p > types.MaxDecimalPrecision {
			return types.DataType{}, fmt.Errorf("numeric literal %s is out of range", v)
		}
		return types.Decimal(p, len(frac)).NotNull(), nil
	}
	if _, err := strconv.ParseInt(v, 10, 32); err == nil {
		return types.Int().NotNull(), nil
	}
	if _, err := strconv.ParseInt(v, 10, 64); err == nil {
		return types.BigInt().NotNull(), nil
	}
	if len(v) <= types.MaxDecimalPrecision {
		return types.Decimal(len(v), 0).NotNull(), nil
	}
	return types.DataType{}, fmt.Errorf("numeric literal %s is out of range", v)
}

func inferUnary(e *core.UnaryExpr, columns map[string]types.DataType) (types.DataType, error) {
	dt, err := inferType(e.Expr, columns)
	if err != nil {
		return types.DataType{}, err
	}
	if e.Op == token.NOT {
		if dt.Kind != types.KindBoolean && dt.Kind != types.KindNull {
			return types.DataType{}, fmt.Errorf("cannot apply NOT to %s", dt)
		}
		return types.Boolean().WithNullable(dt.Nullable), nil
	}
	if !dt.Kind.IsNumeric() {
		return types.DataType{}, fmt.Errorf("cannot apply unary %s to %s", e.Op, dt)
	}
	return dt, nil
}

func inferBinary(e *core.BinaryExpr, columns map[string]types.DataType) (types.DataType, error) {
	left, err := inferType(e.Left, columns)
	if err != nil {
		return types.DataType{}, err
	}

	// Temporal arithmetic: ts + INTERVAL '1' SECOND.
	if call, ok := unwrapParen(e.Right).(*core.FuncCall); ok && call.Name == "INTERVAL" {
		if (e.Op == token.PLUS || e.Op == token.MINUS) && isTemporal(left.Kind) {
			return left, nil
		}
		return types.DataType{}, fmt.Errorf("cannot apply %s to %s and INTERVAL", e.Op, left)
	}

	right, err := inferType(e.Right, columns)
	if err != nil {
		return types.DataType{}, err
	}
	nullable := left.Nullable || right.Nullable

	switch e.Op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		if left.Kind == types.KindNull {
			return right.AsNullable(), nil
		}
		if right.Kind == types.KindNull {
			return left.AsNullable(), nil
		}
		if dt, ok := types.Wider(left, right); ok {
			return dt, nil
		}
		return types.DataType{}, fmt.Errorf("cannot apply '%s' to arguments of type %s and %s", e.Op, left, right)

	case token.DPIPE:
		if !isStringLike(left) || !isStringLike(right) {
			return types.DataType{}, fmt.Errorf("cannot apply '||' to arguments of type %s and %s", left, right)
		}
		return types.String().WithNullable(nullable), nil

	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		if !canCompare(left, right) {
			return types.DataType{}, fmt.Errorf("cannot compare %s with %s", left, right)
		}
		return types.Boolean().WithNullable(nullable), nil

	case token.AND, token.OR:
		if !isBooleanLike(left) || !isBooleanLike(right) {
			return types.DataType{}, fmt.Errorf("cannot apply %s to arguments of type %s and %s", e.Op, left, right)
		}
		return types.Boolean().WithNullable(nullable), nil
	}
	return types.DataType{}, fmt.Errorf("unsupported operator %s", e.Op)
}

func inferCast(e *core.CastExpr, columns map[string]types.DataType) (types.DataType, error) {
	src, err := inferType(e.Expr, columns)
	if err != nil {
		return types.DataType{}, err
	}
	target, err := typemap.Map(e.Type)
	if err != nil {
		return types.DataType{}, err
	}
	if src.Kind != types.KindNull {
		srcCollection := src.Kind.IsCollection() || src.Kind == types.KindMap || src.Kind == types.KindRow
		dstCollection := target.Kind.IsCollection() || target.Kind == types.KindMap || target.Kind == types.KindRow
		if (srcCollection || dstCollection) && src.Kind != target.Kind {
			return types.DataType{}, fmt.Errorf("cannot cast %s to %s", src, target)
		}
	}
	return target.WithNullable(target.Nullable || src.Nullable), nil
}

func inferCall(e *core.FuncCall, columns map[string]types.DataType) (types.DataType, error) {
	fn, ok := functions[e.Name]
	if !ok {
		return types.DataType{}, fmt.Errorf("no match found for function signature %s", e.Name)
	}
	args := make([]types.DataType, len(e.Args))
	for i, arg := range e.Args {
		dt, err := inferType(arg, columns)
		if err != nil {
			return types.DataType{}, err
		}
		args[i] = dt
	}
	if len(args) < fn.minArgs || (fn.maxArgs >= 0 && len(args) > fn.maxArgs) {
		return types.DataType{}, fmt.Errorf("invalid number of arguments to function %s: %d", e.Name, len(args))
	}
	dt, err := fn.infer(args)
	if err != nil {
		return types.DataType{}, fmt.Errorf("%s: %w", e.Name, err)
	}
	return dt, nil
}

func unwrapParen(e core.Expr) core.Expr {
	for {
		p, ok := e.(*core.ParenExpr)
		if !ok {
			return e
		}
		e = p.Expr
	}
}

func isTemporal(k types.Kind) bool {
	switch k {
	case types.KindDate, types.KindTime, types.KindTimestamp, types.KindTimestampLTZ:
		return true
	}
	return false
}

func isStringLike(dt types.DataType) bool {
	return dt.Kind == types.KindString || dt.Kind == types.KindNull
}

func isBooleanLike(dt types.DataType) bool {
	return dt.Kind == types.KindBoolean || dt.Kind == types.KindNull
}

func canCompare(a, b types.DataType) bool {
	if a.Kind == types.KindNull || b.Kind == types.KindNull {
		return true
	}
	if a.Kind.IsNumeric() && b.Kind.IsNumeric() {
		return true
	}
	return a.Kind == b.Kind && !a.Kind.IsCollection() && a.Kind != types.KindMap && a.Kind != types.KindRow
}
