// Package parser turns SQL statement text into pkg/core syntax trees.
//
// # Usage
//
//	stmt, err := parser.ParseStatement("CREATE DATABASE IF NOT EXISTS cat1.db1")
//	if err != nil {
//	    // handle error
//	}
//
// # Grammar Overview
//
// The parser implements a recursive descent parser for the catalog DDL,
// INSERT and SHOW statements the binder understands:
//
//	statement  → use | create | alter | drop | insert | show | describe | query
//	create     → CREATE DATABASE ... | CREATE TABLE ...
//	insert     → INSERT (INTO|OVERWRITE) name [PARTITION (k = v, ...)] query
//	query      → (SELECT|WITH|VALUES|'(') ...   kept as raw text
//
// Data types are parsed by parser_type.go and computed column expressions
// by parser_expr.go. See each file for detailed grammar rules.
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/core"
	"github.com/leapstack-labs/sqlbind/pkg/token"
)

// Parser parses SQL into an AST.
type Parser struct {
	input  string
	lexer  *Lexer
	token  Token // current token
	peek   Token // lookahead token
	peek2  Token // second lookahead token
	errors []error
}

// NewParser creates a new parser for the given SQL input.
func NewParser(sql string) *Parser {
	p := &Parser{
		input: sql,
		lexer: NewLexer(sql),
	}
	// Read three tokens to initialize current, peek, and peek2
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// ParseStatement parses exactly one statement. A trailing semicolon is allowed.
func ParseStatement(sql string) (core.Stmt, error) {
	p := NewParser(sql)
	if p.check(TOKEN_EOF) {
		return nil, &ParseError{Pos: p.token.Pos, Message: ErrEmptyStatement}
	}
	stmt := p.parseStatement()
	p.finish()
	if err := p.err(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// ParseType parses a standalone data type such as "ARRAY<INT NOT NULL>".
func ParseType(s string) (core.TypeExpr, error) {
	p := NewParser(s)
	t := p.parseType()
	p.expectEOF()
	if err := p.err(); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseExpression parses a standalone scalar expression such as "a + 1".
func ParseExpression(s string) (core.Expr, error) {
	p := NewParser(s)
	e := p.parseExpression()
	p.expectEOF()
	if err := p.err(); err != nil {
		return nil, err
	}
	return e, nil
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// matchWord consumes the current token if it is the non-reserved word.
func (p *Parser) matchWord(word string) bool {
	if p.token.Is(word) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), t))
	return false
}

// expectWord consumes the non-reserved word, otherwise adds an error.
func (p *Parser) expectWord(word string) bool {
	if p.matchWord(word) {
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), word))
	return false
}

// expectEOF reports an error unless the whole input was consumed.
func (p *Parser) expectEOF() {
	if !p.check(TOKEN_EOF) && len(p.errors) == 0 {
		p.addError(fmt.Sprintf(ErrTrailingInput, p.describe(p.token)))
	}
}

// finish consumes trailing semicolons and checks for end of input.
func (p *Parser) finish() {
	for p.match(TOKEN_SEMICOLON) {
	}
	p.expectEOF()
}

// addError adds a parse error.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// err returns the first lexer or parser error.
func (p *Parser) err() error {
	if len(p.lexer.Errors) > 0 {
		return p.lexer.Errors[0]
	}
	if len(p.errors) > 0 {
		return p.errors[0]
	}
	return nil
}

// failed reports whether any error has been recorded.
func (p *Parser) failed() bool {
	return len(p.errors) > 0 || len(p.lexer.Errors) > 0
}

// describe renders a token for error messages.
func (p *Parser) describe(tok Token) string {
	switch tok.Type {
	case TOKEN_EOF:
		return "end of input"
	case TOKEN_IDENT, TOKEN_NUMBER:
		return fmt.Sprintf("%q", tok.Literal)
	case TOKEN_STRING:
		return fmt.Sprintf("'%s'", tok.Literal)
	}
	return tok.Type.String()
}

// span returns the span from start to the current token.
func (p *Parser) span(start Position) token.Span {
	return token.Span{Start: start, End: p.token.Pos}
}

// textFrom returns the trimmed source text between start and the current token.
func (p *Parser) textFrom(start Position) string {
	return strings.TrimSpace(p.span(start).Text(p.input))
}

// ---------- Names and Literals ----------

// parseIdent parses a single identifier, quoted or not.
func (p *Parser) parseIdent() (string, bool) {
	if !p.check(TOKEN_IDENT) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "identifier"))
		return "", false
	}
	name := p.token.Literal
	p.nextToken()
	return name, true
}

// parseObjectName parses ident {'.' ident}.
//
//	object_name → ident ('.' ident)*
func (p *Parser) parseObjectName() core.ObjectName {
	var name core.ObjectName
	for {
		part, ok := p.parseIdent()
		if !ok {
			return nil
		}
		name = append(name, part)
		if !p.match(TOKEN_DOT) {
			return name
		}
	}
}

// parseIdentList parses '(' ident {',' ident} ')'.
func (p *Parser) parseIdentList() []string {
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}
	var names []string
	for {
		name, ok := p.parseIdent()
		if !ok {
			return nil
		}
		names = append(names, name)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.expect(TOKEN_RPAREN)
	return names
}

// parseString parses a single-quoted string literal.
func (p *Parser) parseString() (string, bool) {
	if !p.check(TOKEN_STRING) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "string literal"))
		return "", false
	}
	s := p.token.Literal
	p.nextToken()
	return s, true
}

// parseComment parses an optional COMMENT 'text'.
func (p *Parser) parseComment() *string {
	if !p.match(TOKEN_COMMENT) {
		return nil
	}
	s, ok := p.parseString()
	if !ok {
		return nil
	}
	return &s
}

// parseProperties parses '(' 'key' = 'value' {',' 'key' = 'value'} ')'.
// Keys are returned verbatim and in source order; duplicates are kept.
func (p *Parser) parseProperties() []core.Property {
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}
	props := []core.Property{}
	if p.match(TOKEN_RPAREN) {
		return props
	}
	for {
		key, ok := p.parseString()
		if !ok {
			return nil
		}
		if !p.expect(TOKEN_EQ) {
			return nil
		}
		value, ok := p.parseString()
		if !ok {
			return nil
		}
		props = append(props, core.Property{Key: key, Value: value})
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.expect(TOKEN_RPAREN)
	return props
}

// parseIfNotExists parses an optional IF NOT EXISTS.
func (p *Parser) parseIfNotExists() bool {
	if p.check(TOKEN_IF) && p.checkPeek(TOKEN_NOT) {
		p.nextToken()
		p.nextToken()
		p.expect(TOKEN_EXISTS)
		return true
	}
	return false
}

// parseIfExists parses an optional IF EXISTS.
func (p *Parser) parseIfExists() bool {
	if p.match(TOKEN_IF) {
		p.expect(TOKEN_EXISTS)
		return true
	}
	return false
}
