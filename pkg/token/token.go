// Package token defines the token types for SQL statement parsing.
//
// Reserved keywords are defined as constants for switch performance.
// Words that are only meaningful in a few positions (CATALOG, USER, TIME,
// ZONE, type names, ...) stay IDENT tokens and are matched by the parser
// by spelling, so they remain usable as identifiers.
package token

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // identifier
	NUMBER // 123, 45.67, 1e10
	STRING // 'hello'

	// Operators
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	DPIPE     // ||
	EQ        // =
	NE        // != or <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	DOT       // .
	COMMA     // ,
	LPAREN    // (
	RPAREN    // )
	SEMICOLON // ;

	// Keywords (alphabetical)
	ALTER
	AND
	AS
	BY
	CASCADE
	CAST
	COMMENT
	CONSTRAINT
	CREATE
	DATABASE
	DESC
	DESCRIBE
	DROP
	EXISTS
	FALSE
	FOR
	FROM
	FUNCTIONS
	IF
	INSERT
	INTO
	KEY
	METADATA
	NOT
	NULL
	OR
	OVERWRITE
	PARTITION
	PARTITIONED
	PRIMARY
	RENAME
	RESTRICT
	SELECT
	SET
	SHOW
	TABLE
	TO
	TRUE
	UNIQUE
	USE
	VALUES
	WATERMARK
	WITH
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	DPIPE:     "||",
	EQ:        "=",
	NE:        "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	DOT:       ".",
	COMMA:     ",",
	LPAREN:    "(",
	RPAREN:    ")",
	SEMICOLON: ";",

	ALTER:       "ALTER",
	AND:         "AND",
	AS:          "AS",
	BY:          "BY",
	CASCADE:     "CASCADE",
	CAST:        "CAST",
	COMMENT:     "COMMENT",
	CONSTRAINT:  "CONSTRAINT",
	CREATE:      "CREATE",
	DATABASE:    "DATABASE",
	DESC:        "DESC",
	DESCRIBE:    "DESCRIBE",
	DROP:        "DROP",
	EXISTS:      "EXISTS",
	FALSE:       "FALSE",
	FOR:         "FOR",
	FROM:        "FROM",
	FUNCTIONS:   "FUNCTIONS",
	IF:          "IF",
	INSERT:      "INSERT",
	INTO:        "INTO",
	KEY:         "KEY",
	METADATA:    "METADATA",
	NOT:         "NOT",
	NULL:        "NULL",
	OR:          "OR",
	OVERWRITE:   "OVERWRITE",
	PARTITION:   "PARTITION",
	PARTITIONED: "PARTITIONED",
	PRIMARY:     "PRIMARY",
	RENAME:      "RENAME",
	RESTRICT:    "RESTRICT",
	SELECT:      "SELECT",
	SET:         "SET",
	SHOW:        "SHOW",
	TABLE:       "TABLE",
	TO:          "TO",
	TRUE:        "TRUE",
	UNIQUE:      "UNIQUE",
	USE:         "USE",
	VALUES:      "VALUES",
	WATERMARK:   "WATERMARK",
	WITH:        "WITH",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{}

func init() {
	for t := ALTER; t <= WITH; t++ {
		keywords[strings.ToLower(tokenNames[t])] = t
	}
}

// LookupIdent returns the token type for the given lowercase identifier.
// If the identifier is a keyword, the keyword token type is returned.
// Otherwise, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= ALTER && t <= WITH
}

// IsOperator returns true if the token type is an operator.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= SEMICOLON
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	// Quoted is set for identifiers written with backticks or double quotes.
	Quoted bool
}

// Is reports whether the token is an unquoted identifier spelled word,
// compared case-insensitively. Used for non-reserved words.
func (t Token) Is(word string) bool {
	return t.Type == IDENT && !t.Quoted && strings.EqualFold(t.Literal, word)
}
