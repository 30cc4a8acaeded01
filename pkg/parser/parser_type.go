package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/core"
)

// Data type parsing.
//
//	type       → type_core [nullability] {(ARRAY | MULTISET) [nullability]}
//	type_core  → (ARRAY | MULTISET) '<' type '>'
//	           | MAP '<' type ',' type '>'
//	           | ROW '<' [field {',' field}] '>' | ROW '(' [field {',' field}] ')'
//	           | TIME ['(' int ')'] [WITHOUT TIME ZONE | WITH LOCAL TIME ZONE]
//	           | TIMESTAMP ['(' int ')'] [WITHOUT TIME ZONE | WITH LOCAL TIME ZONE]
//	           | DOUBLE [PRECISION]
//	           | name ['(' int [',' int] ')']
//	field      → ident type [str]
//	nullability → NOT NULL | NULL
//
// NOT NULL binds to the type it directly follows: in "INT NOT NULL ARRAY"
// it marks the element, in "INT ARRAY NOT NULL" the array.

// knownTypes lists the scalar type names the grammar accepts.
var knownTypes = map[string]bool{
	"CHAR": true, "VARCHAR": true, "STRING": true,
	"BOOLEAN": true,
	"TINYINT": true, "SMALLINT": true, "INT": true, "INTEGER": true, "BIGINT": true,
	"FLOAT": true, "DOUBLE": true,
	"DECIMAL": true, "DEC": true, "NUMERIC": true,
	"DATE": true, "TIME": true, "TIMESTAMP": true, "TIMESTAMP_LTZ": true,
	"BYTES": true, "BINARY": true, "VARBINARY": true,
	"NULL": true,
}

// parseType parses a full data type including nullability and postfix
// collection constructors.
func (p *Parser) parseType() core.TypeExpr {
	start := p.token.Pos
	t := p.parseTypeCore()
	if t == nil {
		return nil
	}
	p.parseNullability(t)

	for {
		var kind core.CollectionKind
		switch {
		case p.token.Is("ARRAY"):
			kind = core.CollectionArray
		case p.token.Is("MULTISET"):
			kind = core.CollectionMultiset
		default:
			return t
		}
		p.nextToken()
		c := &core.CollectionType{Kind: kind, Elem: t}
		p.parseNullability(c)
		c.Span = p.span(start)
		t = c
	}
}

// parseNullability parses an optional NOT NULL or NULL onto t.
func (p *Parser) parseNullability(t core.TypeExpr) {
	notNull := false
	switch {
	case p.check(TOKEN_NOT) && p.checkPeek(TOKEN_NULL):
		p.nextToken()
		p.nextToken()
		notNull = true
	case p.match(TOKEN_NULL):
	default:
		return
	}

	switch tt := t.(type) {
	case *core.BasicType:
		tt.NotNull = notNull
	case *core.CollectionType:
		tt.NotNull = notNull
	case *core.MapType:
		tt.NotNull = notNull
	case *core.RowType:
		tt.NotNull = notNull
	}
}

// parseTypeCore parses a type without trailing nullability.
func (p *Parser) parseTypeCore() core.TypeExpr {
	start := p.token.Pos
	if !p.check(TOKEN_IDENT) && !p.check(TOKEN_NULL) || p.token.Quoted {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "data type"))
		return nil
	}
	name := strings.ToUpper(p.token.Literal)

	switch name {
	case "ARRAY", "MULTISET":
		p.nextToken()
		kind := core.CollectionArray
		if name == "MULTISET" {
			kind = core.CollectionMultiset
		}
		if !p.expect(TOKEN_LT) {
			return nil
		}
		elem := p.parseType()
		if elem == nil || !p.expect(TOKEN_GT) {
			return nil
		}
		return &core.CollectionType{NodeInfo: core.NodeInfo{Span: p.span(start)}, Kind: kind, Elem: elem}

	case "MAP":
		p.nextToken()
		if !p.expect(TOKEN_LT) {
			return nil
		}
		key := p.parseType()
		if key == nil || !p.expect(TOKEN_COMMA) {
			return nil
		}
		value := p.parseType()
		if value == nil || !p.expect(TOKEN_GT) {
			return nil
		}
		return &core.MapType{NodeInfo: core.NodeInfo{Span: p.span(start)}, Key: key, Value: value}

	case "ROW":
		p.nextToken()
		return p.parseRowType(start)
	}

	if !knownTypes[name] {
		p.addError(fmt.Sprintf(ErrUnknownType, p.token.Literal))
		return nil
	}
	p.nextToken()

	t := &core.BasicType{Name: name}
	if name == "DOUBLE" {
		p.matchWord("PRECISION")
	}
	if name == "TIMESTAMP_LTZ" {
		t.Name = "TIMESTAMP"
		t.WithLocalTimeZone = true
	}
	if p.check(TOKEN_LPAREN) {
		t.Args = p.parseTypeArgs()
		if p.failed() {
			return nil
		}
	}
	if name == "TIME" || name == "TIMESTAMP" {
		p.parseTimeZoneSuffix(t)
	}
	t.Span = p.span(start)
	return t
}

// parseTypeArgs parses '(' int [',' int] ')'.
func (p *Parser) parseTypeArgs() []int {
	p.expect(TOKEN_LPAREN)
	var args []int
	for {
		if !p.check(TOKEN_NUMBER) {
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "integer"))
			return nil
		}
		n, err := strconv.Atoi(p.token.Literal)
		if err != nil {
			p.addError(fmt.Sprintf(ErrInvalidNumber, p.token.Literal))
			return nil
		}
		args = append(args, n)
		p.nextToken()
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.expect(TOKEN_RPAREN)
	return args
}

// parseTimeZoneSuffix parses WITHOUT TIME ZONE or WITH LOCAL TIME ZONE.
func (p *Parser) parseTimeZoneSuffix(t *core.BasicType) {
	switch {
	case p.matchWord("WITHOUT"):
		p.expectWord("TIME")
		p.expectWord("ZONE")
	case p.check(TOKEN_WITH) && p.peek.Is("LOCAL"):
		p.nextToken()
		p.nextToken()
		p.expectWord("TIME")
		p.expectWord("ZONE")
		t.WithLocalTimeZone = true
	}
}

// parseRowType parses the field list of ROW<...> or ROW(...).
func (p *Parser) parseRowType(start Position) core.TypeExpr {
	row := &core.RowType{Fields: []core.RowField{}}

	var closing TokenType
	switch {
	case p.match(TOKEN_NE):
		// ROW<> lexes as a single "<>" token.
		row.Span = p.span(start)
		return row
	case p.match(TOKEN_LT):
		closing = TOKEN_GT
	case p.match(TOKEN_LPAREN):
		closing = TOKEN_RPAREN
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "< or ("))
		return nil
	}

	if p.match(closing) {
		row.Span = p.span(start)
		return row
	}

	for {
		name, ok := p.parseIdent()
		if !ok {
			return nil
		}
		ft := p.parseType()
		if ft == nil {
			return nil
		}
		field := core.RowField{Name: name, Type: ft}
		if p.check(TOKEN_STRING) {
			comment := p.token.Literal
			field.Comment = &comment
			p.nextToken()
		}
		row.Fields = append(row.Fields, field)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	if !p.expect(closing) {
		return nil
	}
	row.Span = p.span(start)
	return row
}
