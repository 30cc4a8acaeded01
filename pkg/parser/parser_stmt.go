package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/core"
)

// Statement parsing.
//
//	use       → USE CATALOG ident | USE object_name
//	create_db → CREATE DATABASE [IF NOT EXISTS] object_name [COMMENT str] [WITH props]
//	alter_db  → ALTER DATABASE object_name SET props
//	drop_db   → DROP DATABASE [IF EXISTS] object_name [RESTRICT | CASCADE]
//	alter_tbl → ALTER TABLE object_name (RENAME TO object_name | SET props)
//	drop_tbl  → DROP TABLE [IF EXISTS] object_name
//	show      → SHOW [USER] FUNCTIONS | SHOW CATALOGS | SHOW DATABASES | SHOW TABLES
//	          | SHOW CURRENT (CATALOG | DATABASE)
//	describe  → (DESCRIBE | DESC) object_name

// parseStatement dispatches on the leading keyword.
func (p *Parser) parseStatement() core.Stmt {
	switch p.token.Type {
	case TOKEN_USE:
		return p.parseUse()
	case TOKEN_CREATE:
		return p.parseCreate()
	case TOKEN_ALTER:
		return p.parseAlter()
	case TOKEN_DROP:
		return p.parseDrop()
	case TOKEN_INSERT:
		return p.parseInsert()
	case TOKEN_SHOW:
		return p.parseShow()
	case TOKEN_DESCRIBE, TOKEN_DESC:
		return p.parseDescribe()
	case TOKEN_SELECT, TOKEN_WITH, TOKEN_VALUES, TOKEN_LPAREN:
		start := p.token.Pos
		query := p.parseQueryText()
		return &core.QueryStmt{NodeInfo: core.NodeInfo{Span: p.span(start)}, Query: query}
	default:
		p.addError(fmt.Sprintf(ErrUnsupportedStatement, p.describe(p.token)))
		return nil
	}
}

// parseUse parses USE CATALOG c and USE [c.]d.
func (p *Parser) parseUse() core.Stmt {
	start := p.token.Pos
	p.nextToken() // consume USE

	// "USE catalog" alone names a database called catalog.
	if p.token.Is("CATALOG") && p.checkPeek(TOKEN_IDENT) {
		p.nextToken()
		name, _ := p.parseIdent()
		return &core.UseCatalogStmt{NodeInfo: core.NodeInfo{Span: p.span(start)}, Name: name}
	}

	name := p.parseObjectName()
	return &core.UseStmt{NodeInfo: core.NodeInfo{Span: p.span(start)}, Name: name}
}

// parseCreate parses CREATE DATABASE and CREATE TABLE.
func (p *Parser) parseCreate() core.Stmt {
	start := p.token.Pos
	p.nextToken() // consume CREATE

	switch {
	case p.match(TOKEN_DATABASE):
		stmt := &core.CreateDatabaseStmt{}
		stmt.IfNotExists = p.parseIfNotExists()
		stmt.Name = p.parseObjectName()
		stmt.Comment = p.parseComment()
		if p.match(TOKEN_WITH) {
			stmt.Properties = p.parseProperties()
		}
		stmt.Span = p.span(start)
		return stmt
	case p.match(TOKEN_TABLE):
		return p.parseCreateTable(start)
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "DATABASE or TABLE"))
		return nil
	}
}

// parseAlter parses ALTER DATABASE and ALTER TABLE.
func (p *Parser) parseAlter() core.Stmt {
	start := p.token.Pos
	p.nextToken() // consume ALTER

	switch {
	case p.match(TOKEN_DATABASE):
		name := p.parseObjectName()
		p.expect(TOKEN_SET)
		props := p.parseProperties()
		return &core.AlterDatabaseStmt{NodeInfo: core.NodeInfo{Span: p.span(start)}, Name: name, Properties: props}
	case p.match(TOKEN_TABLE):
		name := p.parseObjectName()
		switch {
		case p.match(TOKEN_RENAME):
			p.expect(TOKEN_TO)
			newName := p.parseObjectName()
			return &core.AlterTableRenameStmt{NodeInfo: core.NodeInfo{Span: p.span(start)}, Name: name, NewName: newName}
		case p.match(TOKEN_SET):
			props := p.parseProperties()
			return &core.AlterTableSetStmt{NodeInfo: core.NodeInfo{Span: p.span(start)}, Name: name, Properties: props}
		default:
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "RENAME or SET"))
			return nil
		}
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "DATABASE or TABLE"))
		return nil
	}
}

// parseDrop parses DROP DATABASE and DROP TABLE.
func (p *Parser) parseDrop() core.Stmt {
	start := p.token.Pos
	p.nextToken() // consume DROP

	switch {
	case p.match(TOKEN_DATABASE):
		stmt := &core.DropDatabaseStmt{}
		stmt.IfExists = p.parseIfExists()
		stmt.Name = p.parseObjectName()
		if p.match(TOKEN_CASCADE) {
			stmt.Cascade = true
		} else {
			p.match(TOKEN_RESTRICT)
		}
		stmt.Span = p.span(start)
		return stmt
	case p.match(TOKEN_TABLE):
		stmt := &core.DropTableStmt{}
		stmt.IfExists = p.parseIfExists()
		stmt.Name = p.parseObjectName()
		stmt.Span = p.span(start)
		return stmt
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "DATABASE or TABLE"))
		return nil
	}
}

// parseShow parses the SHOW family.
func (p *Parser) parseShow() core.Stmt {
	start := p.token.Pos
	p.nextToken() // consume SHOW

	show := func(kind core.ShowKind) core.Stmt {
		return &core.ShowStmt{NodeInfo: core.NodeInfo{Span: p.span(start)}, Kind: kind}
	}

	switch {
	case p.match(TOKEN_FUNCTIONS):
		return &core.ShowFunctionsStmt{NodeInfo: core.NodeInfo{Span: p.span(start)}}
	case p.matchWord("USER"):
		p.expect(TOKEN_FUNCTIONS)
		return &core.ShowFunctionsStmt{NodeInfo: core.NodeInfo{Span: p.span(start)}, User: true}
	case p.matchWord("CATALOGS"):
		return show(core.ShowCatalogs)
	case p.matchWord("DATABASES"):
		return show(core.ShowDatabases)
	case p.matchWord("TABLES"):
		return show(core.ShowTables)
	case p.matchWord("CURRENT"):
		if p.match(TOKEN_DATABASE) {
			return show(core.ShowCurrentDatabase)
		}
		p.expectWord("CATALOG")
		return show(core.ShowCurrentCatalog)
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "FUNCTIONS, CATALOGS, DATABASES, TABLES or CURRENT"))
		return nil
	}
}

// parseDescribe parses DESCRIBE name.
func (p *Parser) parseDescribe() core.Stmt {
	start := p.token.Pos
	p.nextToken() // consume DESCRIBE or DESC
	name := p.parseObjectName()
	return &core.DescribeTableStmt{NodeInfo: core.NodeInfo{Span: p.span(start)}, Name: name}
}

// parseInsert parses an INSERT statement.
//
//	insert    → INSERT (INTO | OVERWRITE) object_name [partition] query
//	partition → PARTITION '(' ident '=' literal {',' ident '=' literal} ')'
func (p *Parser) parseInsert() core.Stmt {
	start := p.token.Pos
	p.nextToken() // consume INSERT

	stmt := &core.InsertStmt{}
	switch {
	case p.match(TOKEN_INTO):
	case p.match(TOKEN_OVERWRITE):
		stmt.Overwrite = true
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "INTO or OVERWRITE"))
		return nil
	}

	stmt.Table = p.parseObjectName()
	if p.failed() {
		return nil
	}

	if p.match(TOKEN_PARTITION) {
		stmt.Partition = p.parsePartitionSpec()
		if p.failed() {
			return nil
		}
	}

	if !p.check(TOKEN_SELECT) && !p.check(TOKEN_WITH) && !p.check(TOKEN_VALUES) && !p.check(TOKEN_LPAREN) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "query"))
		return nil
	}
	stmt.Query = p.parseQueryText()
	stmt.Span = p.span(start)
	return stmt
}

// parsePartitionSpec parses the body of a static PARTITION clause.
func (p *Parser) parsePartitionSpec() []core.PartitionValue {
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}
	var values []core.PartitionValue
	for {
		col, ok := p.parseIdent()
		if !ok {
			return nil
		}
		if !p.expect(TOKEN_EQ) {
			return nil
		}
		value, ok := p.parsePartitionLiteral()
		if !ok {
			return nil
		}
		values = append(values, core.PartitionValue{Column: col, Value: value})
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.expect(TOKEN_RPAREN)
	return values
}

// parsePartitionLiteral returns a literal's value as written, strings unquoted.
func (p *Parser) parsePartitionLiteral() (string, bool) {
	switch p.token.Type {
	case TOKEN_STRING, TOKEN_NUMBER, TOKEN_TRUE, TOKEN_FALSE, TOKEN_NULL:
		v := p.token.Literal
		p.nextToken()
		return v, true
	case TOKEN_MINUS:
		if p.checkPeek(TOKEN_NUMBER) {
			p.nextToken()
			v := "-" + p.token.Literal
			p.nextToken()
			return v, true
		}
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.describe(p.token), "literal"))
	return "", false
}

// parseQueryText captures the rest of the statement as raw query text and
// moves the parser to the end of input. The query itself is compiled
// elsewhere.
func (p *Parser) parseQueryText() string {
	text := strings.TrimSpace(p.input[p.token.Pos.Offset:])
	for strings.HasSuffix(text, ";") {
		text = strings.TrimSpace(strings.TrimSuffix(text, ";"))
	}
	for !p.check(TOKEN_EOF) {
		p.nextToken()
	}
	return text
}
