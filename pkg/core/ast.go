package core

import (
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() token.Position
	// End returns the position of the character immediately after the node.
	End() token.Position
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode() // Marker method to distinguish statements
}

// TypeExpr is a marker interface for declared data type nodes.
type TypeExpr interface {
	Node
	// IsNotNull reports whether NOT NULL was declared directly on this type.
	IsNotNull() bool
	typeNode()
}

// NodeInfo carries the source span of a node.
type NodeInfo struct {
	Span token.Span
}

// Pos implements Node.
func (n NodeInfo) Pos() token.Position { return n.Span.Start }

// End implements Node.
func (n NodeInfo) End() token.Position { return n.Span.End }

// ObjectName is a possibly qualified, dot separated name as written.
type ObjectName []string

// String joins the parts with dots.
func (n ObjectName) String() string {
	return strings.Join(n, ".")
}

// Property is a single 'key' = 'value' entry of a WITH or SET list.
// Keys are kept verbatim.
type Property struct {
	Key   string
	Value string
}
