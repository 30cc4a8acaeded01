package parser

import "fmt"

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken      = "unexpected token %s, expected %s"
	ErrUnexpectedWord       = "unexpected %q, expected %s"
	ErrUnterminatedString   = "unterminated string literal"
	ErrUnterminatedIdent    = "unterminated quoted identifier"
	ErrIllegalCharacter     = "illegal character %q"
	ErrInvalidNumber        = "invalid number literal %q"
	ErrUnsupportedStatement = "unsupported statement starting with %s"
	ErrEmptyStatement       = "empty statement"
	ErrTrailingInput        = "unexpected %s after end of statement"
	ErrUnknownType          = "unknown data type %q"
)
