package parser

import "strings"

// SplitStatements splits a script into statements on top level semicolons.
// Semicolons inside string literals, quoted identifiers and comments do not
// split. Pieces that hold only whitespace or comments are dropped.
func SplitStatements(script string) []string {
	l := NewLexer(script)
	var stmts []string
	start := 0
	hasTokens := false

	for {
		tok := l.NextToken()
		switch tok.Type {
		case TOKEN_EOF:
			if hasTokens {
				stmts = append(stmts, strings.TrimSpace(script[start:]))
			}
			return stmts
		case TOKEN_SEMICOLON:
			if hasTokens {
				stmts = append(stmts, strings.TrimSpace(script[start:tok.Pos.Offset]))
			}
			start = tok.Pos.Offset + 1
			hasTokens = false
		default:
			hasTokens = true
		}
	}
}
