package core

import "github.com/leapstack-labs/sqlbind/pkg/token"

// ---------- Expression Types ----------

// ColumnRef represents a column reference.
type ColumnRef struct {
	NodeInfo
	Column string
}

func (*ColumnRef) exprNode() {}

// Literal represents a literal value.
type Literal struct {
	NodeInfo
	Type  LiteralType
	Value string
}

func (*Literal) exprNode() {}

// LiteralType represents the type of a literal.
type LiteralType int

// LiteralType constants for SQL literal value types.
const (
	LiteralNumber LiteralType = iota
	LiteralString
	LiteralBool
	LiteralNull
)

// BinaryExpr represents a binary expression.
type BinaryExpr struct {
	NodeInfo
	Left  Expr
	Op    token.TokenType
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr represents a unary expression (NOT, -, +).
type UnaryExpr struct {
	NodeInfo
	Op   token.TokenType
	Expr Expr
}

func (*UnaryExpr) exprNode() {}

// FuncCall represents a function call. Name is upper-cased.
type FuncCall struct {
	NodeInfo
	Name string
	Args []Expr
}

func (*FuncCall) exprNode() {}

// CastExpr represents CAST(expr AS type).
type CastExpr struct {
	NodeInfo
	Expr Expr
	Type TypeExpr
}

func (*CastExpr) exprNode() {}

// IsNullExpr represents expr IS [NOT] NULL.
type IsNullExpr struct {
	NodeInfo
	Expr Expr
	Not  bool
}

func (*IsNullExpr) exprNode() {}

// ParenExpr represents a parenthesized expression.
type ParenExpr struct {
	NodeInfo
	Expr Expr
}

func (*ParenExpr) exprNode() {}

// Walk calls fn for expr and every sub-expression, depth first.
// Walking stops descending into a node when fn returns false.
func Walk(expr Expr, fn func(Expr) bool) {
	if expr == nil || !fn(expr) {
		return
	}
	switch e := expr.(type) {
	case *BinaryExpr:
		Walk(e.Left, fn)
		Walk(e.Right, fn)
	case *UnaryExpr:
		Walk(e.Expr, fn)
	case *FuncCall:
		for _, arg := range e.Args {
			Walk(arg, fn)
		}
	case *CastExpr:
		Walk(e.Expr, fn)
	case *IsNullExpr:
		Walk(e.Expr, fn)
	case *ParenExpr:
		Walk(e.Expr, fn)
	}
}
