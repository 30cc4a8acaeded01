package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenType
	}{
		{"create", CREATE},
		{"partitioned", PARTITIONED},
		{"functions", FUNCTIONS},
		{"watermark", WATERMARK},
		{"catalog", IDENT},
		{"varchar", IDENT},
		{"user", IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupIdent(tt.ident))
		})
	}
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "CREATE", CREATE.String())
	assert.Equal(t, "<=", LE.String())
	assert.Equal(t, "TOKEN(9999)", TokenType(9999).String())
	assert.True(t, IsKeyword(WITH))
	assert.False(t, IsKeyword(IDENT))
	assert.True(t, IsOperator(SEMICOLON))
}

func TestTokenIs(t *testing.T) {
	assert.True(t, Token{Type: IDENT, Literal: "Catalog"}.Is("CATALOG"))
	assert.False(t, Token{Type: IDENT, Literal: "catalog", Quoted: true}.Is("CATALOG"))
	assert.False(t, Token{Type: SET, Literal: "set"}.Is("SET"))
}

func TestSpanText(t *testing.T) {
	input := "insert into t select 1"
	s := Span{Start: Position{Offset: 14}, End: Position{Offset: len(input)}}
	assert.Equal(t, "select 1", s.Text(input))
	assert.True(t, s.Contains(15))
	assert.Equal(t, "", Span{Start: Position{Offset: 5}, End: Position{Offset: 2}}.Text(input))
}
