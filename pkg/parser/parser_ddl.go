package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlbind/pkg/core"
)

// CREATE TABLE parsing.
//
//	create_table → CREATE TABLE [IF NOT EXISTS] object_name '(' element {',' element} ')'
//	               [COMMENT str] [PARTITIONED BY '(' ident {',' ident} ')'] [WITH props]
//	element      → column | constraint | watermark
//	column       → ident type [PRIMARY KEY [NOT ENFORCED]] [METADATA [FROM str] [VIRTUAL]] [COMMENT str]
//	             | ident AS expr [COMMENT str]
//	constraint   → [CONSTRAINT ident] (PRIMARY KEY | UNIQUE) '(' ident {',' ident} ')' [NOT ENFORCED]
//	watermark    → WATERMARK FOR ident AS expr

// parseCreateTable parses the remainder of CREATE TABLE.
func (p *Parser) parseCreateTable(start Position) core.Stmt {
	stmt := &core.CreateTableStmt{}
	stmt.IfNotExists = p.parseIfNotExists()
	stmt.Name = p.parseObjectName()
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}

	for {
		switch {
		case p.check(TOKEN_CONSTRAINT), p.check(TOKEN_PRIMARY), p.check(TOKEN_UNIQUE):
			if c := p.parseTableConstraint(); c != nil {
				stmt.Constraints = append(stmt.Constraints, c)
			}
		case p.check(TOKEN_WATERMARK):
			stmt.Watermark = p.parseWatermark()
		default:
			if col := p.parseColumnDef(); col != nil {
				stmt.Columns = append(stmt.Columns, col)
			}
		}
		if p.failed() {
			return nil
		}
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	if !p.expect(TOKEN_RPAREN) {
		return nil
	}

	stmt.Comment = p.parseComment()
	if p.match(TOKEN_PARTITIONED) {
		p.expect(TOKEN_BY)
		stmt.PartitionKeys = p.parseIdentList()
	}
	if p.match(TOKEN_WITH) {
		stmt.Properties = p.parseProperties()
	}
	stmt.Span = p.span(start)
	return stmt
}

// parseColumnDef parses a physical, computed or metadata column.
func (p *Parser) parseColumnDef() *core.ColumnDef {
	start := p.token.Pos
	name, ok := p.parseIdent()
	if !ok {
		return nil
	}
	col := &core.ColumnDef{Name: name}

	if p.match(TOKEN_AS) {
		exprStart := p.token.Pos
		col.Expr = p.parseExpression()
		col.ExprText = p.textFrom(exprStart)
		col.Comment = p.parseComment()
		col.Span = p.span(start)
		return col
	}

	col.Type = p.parseType()
	if col.Type == nil {
		return nil
	}

	for {
		switch {
		case p.check(TOKEN_PRIMARY):
			p.nextToken()
			p.expect(TOKEN_KEY)
			p.parseNotEnforced()
			col.PrimaryKey = true
		case p.match(TOKEN_METADATA):
			col.Metadata = true
			if p.match(TOKEN_FROM) {
				col.MetadataKey, _ = p.parseString()
			}
			if p.matchWord("VIRTUAL") {
				col.Virtual = true
			}
		case p.check(TOKEN_COMMENT):
			col.Comment = p.parseComment()
		default:
			col.Span = p.span(start)
			return col
		}
		if p.failed() {
			return nil
		}
	}
}

// parseTableConstraint parses a table level PRIMARY KEY or UNIQUE constraint.
func (p *Parser) parseTableConstraint() *core.TableConstraint {
	start := p.token.Pos
	c := &core.TableConstraint{Enforced: true}
	if p.match(TOKEN_CONSTRAINT) {
		c.Name, _ = p.parseIdent()
	}

	switch {
	case p.match(TOKEN_PRIMARY):
		p.expect(TOKEN_KEY)
		c.Kind = core.ConstraintPrimaryKey
	case p.match(TOKEN_UNIQUE):
		c.Kind = core.ConstraintUnique
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "PRIMARY KEY or UNIQUE"))
		return nil
	}

	c.Columns = p.parseIdentList()
	if p.parseNotEnforced() {
		c.Enforced = false
	}
	c.Span = p.span(start)
	return c
}

// parseNotEnforced parses an optional NOT ENFORCED.
func (p *Parser) parseNotEnforced() bool {
	if p.check(TOKEN_NOT) && p.peek.Is("ENFORCED") {
		p.nextToken()
		p.nextToken()
		return true
	}
	return false
}

// parseWatermark parses WATERMARK FOR column AS expr.
func (p *Parser) parseWatermark() *core.WatermarkDef {
	start := p.token.Pos
	p.nextToken() // consume WATERMARK
	p.expect(TOKEN_FOR)
	col, _ := p.parseIdent()
	p.expect(TOKEN_AS)
	expr := p.parseExpression()
	return &core.WatermarkDef{NodeInfo: core.NodeInfo{Span: p.span(start)}, Column: col, Expr: expr}
}
