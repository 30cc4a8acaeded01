package parser

import "github.com/leapstack-labs/sqlbind/pkg/token"

// TokenType is an alias for token.TokenType.
type TokenType = token.TokenType

// Token is an alias for token.Token.
type Token = token.Token

// Position is an alias for token.Position.
type Position = token.Position

// LookupIdent is re-exported from token package.
var LookupIdent = token.LookupIdent

//nolint:revive // TOKEN_* names are intentionally ALL_CAPS for SQL token conventions
const (
	// Special tokens
	TOKEN_EOF     = token.EOF
	TOKEN_ILLEGAL = token.ILLEGAL

	// Literals
	TOKEN_IDENT  = token.IDENT
	TOKEN_NUMBER = token.NUMBER
	TOKEN_STRING = token.STRING

	// Operators
	TOKEN_PLUS      = token.PLUS
	TOKEN_MINUS     = token.MINUS
	TOKEN_STAR      = token.STAR
	TOKEN_SLASH     = token.SLASH
	TOKEN_MOD       = token.PERCENT
	TOKEN_DPIPE     = token.DPIPE
	TOKEN_EQ        = token.EQ
	TOKEN_NE        = token.NE
	TOKEN_LT        = token.LT
	TOKEN_GT        = token.GT
	TOKEN_LE        = token.LE
	TOKEN_GE        = token.GE
	TOKEN_DOT       = token.DOT
	TOKEN_COMMA     = token.COMMA
	TOKEN_LPAREN    = token.LPAREN
	TOKEN_RPAREN    = token.RPAREN
	TOKEN_SEMICOLON = token.SEMICOLON

	// Keywords (alphabetical)
	TOKEN_ALTER       = token.ALTER
	TOKEN_AND         = token.AND
	TOKEN_AS          = token.AS
	TOKEN_BY          = token.BY
	TOKEN_CASCADE     = token.CASCADE
	TOKEN_CAST        = token.CAST
	TOKEN_COMMENT     = token.COMMENT
	TOKEN_CONSTRAINT  = token.CONSTRAINT
	TOKEN_CREATE      = token.CREATE
	TOKEN_DATABASE    = token.DATABASE
	TOKEN_DESC        = token.DESC
	TOKEN_DESCRIBE    = token.DESCRIBE
	TOKEN_DROP        = token.DROP
	TOKEN_EXISTS      = token.EXISTS
	TOKEN_FALSE       = token.FALSE
	TOKEN_FOR         = token.FOR
	TOKEN_FROM        = token.FROM
	TOKEN_FUNCTIONS   = token.FUNCTIONS
	TOKEN_IF          = token.IF
	TOKEN_INSERT      = token.INSERT
	TOKEN_INTO        = token.INTO
	TOKEN_KEY         = token.KEY
	TOKEN_METADATA    = token.METADATA
	TOKEN_NOT         = token.NOT
	TOKEN_NULL        = token.NULL
	TOKEN_OR          = token.OR
	TOKEN_OVERWRITE   = token.OVERWRITE
	TOKEN_PARTITION   = token.PARTITION
	TOKEN_PARTITIONED = token.PARTITIONED
	TOKEN_PRIMARY     = token.PRIMARY
	TOKEN_RENAME      = token.RENAME
	TOKEN_RESTRICT    = token.RESTRICT
	TOKEN_SELECT      = token.SELECT
	TOKEN_SET         = token.SET
	TOKEN_SHOW        = token.SHOW
	TOKEN_TABLE       = token.TABLE
	TOKEN_TO          = token.TO
	TOKEN_TRUE        = token.TRUE
	TOKEN_UNIQUE      = token.UNIQUE
	TOKEN_USE         = token.USE
	TOKEN_VALUES      = token.VALUES
	TOKEN_WATERMARK   = token.WATERMARK
	TOKEN_WITH        = token.WITH
)
