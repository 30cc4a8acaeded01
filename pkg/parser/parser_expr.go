package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/core"
	"github.com/leapstack-labs/sqlbind/pkg/token"
)

// Expression precedence parsing using a Pratt parser.
//
// Precedence levels:
//
//	precedenceOr         = 1
//	precedenceAnd        = 2
//	precedenceNot        = 3
//	precedenceComparison = 4  (=, !=, <, >, <=, >=, IS)
//	precedenceAddition   = 5  (+, -, ||)
//	precedenceMultiply   = 6  (*, /, %)
//	precedenceUnary      = 7  (-, +)
const (
	precedenceNone = iota
	precedenceOr
	precedenceAnd
	precedenceNot
	precedenceComparison
	precedenceAddition
	precedenceMultiply
	precedenceUnary
)

// parseExpression parses an expression using precedence climbing.
func (p *Parser) parseExpression() core.Expr {
	return p.parseExpressionWithPrecedence(precedenceNone + 1)
}

// parseExpressionWithPrecedence implements Pratt parsing.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) core.Expr {
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for {
		prec := p.infixPrecedence(p.token.Type)
		if prec < minPrecedence || prec == precedenceNone {
			break
		}

		left = p.parseInfixExpr(left, prec)
		if left == nil {
			break
		}
	}

	return left
}

// parsePrefixExpr parses prefix expressions (unary operators and primary expressions).
func (p *Parser) parsePrefixExpr() core.Expr {
	start := p.token.Pos
	switch p.token.Type {
	case TOKEN_NOT:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(precedenceNot)
		return &core.UnaryExpr{NodeInfo: core.NodeInfo{Span: p.span(start)}, Op: token.NOT, Expr: expr}

	case TOKEN_MINUS:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(precedenceUnary)
		return &core.UnaryExpr{NodeInfo: core.NodeInfo{Span: p.span(start)}, Op: token.MINUS, Expr: expr}

	case TOKEN_PLUS:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(precedenceUnary)
		return &core.UnaryExpr{NodeInfo: core.NodeInfo{Span: p.span(start)}, Op: token.PLUS, Expr: expr}

	default:
		return p.parsePrimary()
	}
}

// infixPrecedence returns the precedence of t as an infix operator.
func (p *Parser) infixPrecedence(t TokenType) int {
	switch t {
	case TOKEN_OR:
		return precedenceOr
	case TOKEN_AND:
		return precedenceAnd
	case TOKEN_EQ, TOKEN_NE, TOKEN_LT, TOKEN_GT, TOKEN_LE, TOKEN_GE:
		return precedenceComparison
	case TOKEN_PLUS, TOKEN_MINUS, TOKEN_DPIPE:
		return precedenceAddition
	case TOKEN_STAR, TOKEN_SLASH, TOKEN_MOD:
		return precedenceMultiply
	}
	if p.token.Is("IS") {
		return precedenceComparison
	}
	return precedenceNone
}

// parseInfixExpr parses an infix expression given the left operand and current precedence.
func (p *Parser) parseInfixExpr(left core.Expr, prec int) core.Expr {
	start := left.Pos()
	if p.token.Is("IS") {
		p.nextToken()
		not := p.match(TOKEN_NOT)
		if !p.expect(TOKEN_NULL) {
			return nil
		}
		return &core.IsNullExpr{NodeInfo: core.NodeInfo{Span: p.span(start)}, Expr: left, Not: not}
	}

	op := p.token.Type
	p.nextToken()
	right := p.parseExpressionWithPrecedence(prec + 1)
	if right == nil {
		return nil
	}
	return &core.BinaryExpr{NodeInfo: core.NodeInfo{Span: p.span(start)}, Left: left, Op: op, Right: right}
}

// parsePrimary parses literals, column references, function calls,
// CAST and parenthesized expressions.
func (p *Parser) parsePrimary() core.Expr {
	start := p.token.Pos
	switch p.token.Type {
	case TOKEN_NUMBER:
		lit := &core.Literal{Type: core.LiteralNumber, Value: p.token.Literal}
		p.nextToken()
		lit.Span = p.span(start)
		return lit
	case TOKEN_STRING:
		lit := &core.Literal{Type: core.LiteralString, Value: p.token.Literal}
		p.nextToken()
		lit.Span = p.span(start)
		return lit
	case TOKEN_TRUE, TOKEN_FALSE:
		lit := &core.Literal{Type: core.LiteralBool, Value: strings.ToUpper(p.token.Literal)}
		p.nextToken()
		lit.Span = p.span(start)
		return lit
	case TOKEN_NULL:
		p.nextToken()
		return &core.Literal{NodeInfo: core.NodeInfo{Span: p.span(start)}, Type: core.LiteralNull, Value: "NULL"}
	case TOKEN_CAST:
		return p.parseCast()
	case TOKEN_LPAREN:
		p.nextToken()
		inner := p.parseExpression()
		if inner == nil || !p.expect(TOKEN_RPAREN) {
			return nil
		}
		return &core.ParenExpr{NodeInfo: core.NodeInfo{Span: p.span(start)}, Expr: inner}
	case TOKEN_IDENT:
		if p.token.Is("INTERVAL") && p.checkPeek(TOKEN_STRING) {
			return p.parseInterval()
		}
		name := p.token.Literal
		quoted := p.token.Quoted
		p.nextToken()
		if !quoted && p.check(TOKEN_LPAREN) {
			return p.parseFuncCall(start, strings.ToUpper(name))
		}
		return &core.ColumnRef{NodeInfo: core.NodeInfo{Span: p.span(start)}, Column: name}
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "expression"))
		return nil
	}
}

// parseFuncCall parses the argument list of name(...).
func (p *Parser) parseFuncCall(start Position, name string) core.Expr {
	p.nextToken() // consume (
	call := &core.FuncCall{Name: name}
	if !p.match(TOKEN_RPAREN) {
		for {
			arg := p.parseExpression()
			if arg == nil {
				return nil
			}
			call.Args = append(call.Args, arg)
			if !p.match(TOKEN_COMMA) {
				break
			}
		}
		if !p.expect(TOKEN_RPAREN) {
			return nil
		}
	}
	call.Span = p.span(start)
	return call
}

// parseCast parses CAST(expr AS type).
func (p *Parser) parseCast() core.Expr {
	start := p.token.Pos
	p.nextToken() // consume CAST
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}
	expr := p.parseExpression()
	if expr == nil || !p.expect(TOKEN_AS) {
		return nil
	}
	t := p.parseType()
	if t == nil || !p.expect(TOKEN_RPAREN) {
		return nil
	}
	return &core.CastExpr{NodeInfo: core.NodeInfo{Span: p.span(start)}, Expr: expr, Type: t}
}

// parseInterval parses INTERVAL 'n' unit as a call to INTERVAL.
func (p *Parser) parseInterval() core.Expr {
	start := p.token.Pos
	p.nextToken() // consume INTERVAL
	value := &core.Literal{Type: core.LiteralString, Value: p.token.Literal}
	p.nextToken()
	unit := "SECOND"
	if p.check(TOKEN_IDENT) && !p.token.Quoted {
		unit = strings.ToUpper(p.token.Literal)
		p.nextToken()
	}
	unitLit := &core.Literal{Type: core.LiteralString, Value: unit}
	return &core.FuncCall{NodeInfo: core.NodeInfo{Span: p.span(start)}, Name: "INTERVAL", Args: []core.Expr{value, unitLit}}
}
