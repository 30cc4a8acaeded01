// Package core defines the syntax tree shared by the statement parser and
// the binder.
//
// This package contains:
//   - Base AST interfaces (Node, Stmt, Expr, TypeExpr)
//   - Statement nodes for the DDL, DML and SHOW statements the parser accepts
//   - Declared type expressions, kept exactly as written
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
