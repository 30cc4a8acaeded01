package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataTypeString(t *testing.T) {
	tests := []struct {
		name string
		typ  DataType
		want string
	}{
		{"string", String(), "STRING"},
		{"not null int", Int().NotNull(), "INT NOT NULL"},
		{"decimal", Decimal(10, 3), "DECIMAL(10, 3)"},
		{"timestamp", Timestamp(3), "TIMESTAMP(3)"},
		{"array", Array(Int().NotNull()), "ARRAY<INT NOT NULL>"},
		{"multiset not null", Multiset(Int()).NotNull(), "MULTISET<INT> NOT NULL"},
		{"map", Map(BigInt(), Boolean()), "MAP<BIGINT, BOOLEAN>"},
		{"empty row", Row(), "ROW<>"},
		{
			"row",
			Row(NewField("f0", Int().NotNull()), NewField("f`1", Boolean())),
			"ROW<`f0` INT NOT NULL, `f``1` BOOLEAN>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestDataTypeEqual(t *testing.T) {
	assert.True(t, Array(Int().NotNull()).Equal(Array(Int().NotNull())))
	assert.False(t, Array(Int().NotNull()).Equal(Array(Int())))
	assert.False(t, Array(Int()).Equal(Multiset(Int())))
	assert.False(t, Decimal(10, 0).Equal(Decimal(10, 2)))
	assert.True(t, Row().Equal(Row()))
	assert.False(t, Row(NewField("a", Int())).Equal(Row(NewField("b", Int()))))
	assert.True(t, Map(Int(), String()).Equal(Map(Int(), String())))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "VARBINARY", KindVarBinary.String())
	assert.Equal(t, "BINARY", KindBinary.String())
	assert.Equal(t, "TIMESTAMP_WITH_LOCAL_TIME_ZONE", KindTimestampLTZ.String())
	assert.Equal(t, "KIND(99)", Kind(99).String())
}

func TestCanAssign(t *testing.T) {
	tests := []struct {
		name string
		from DataType
		to   DataType
		want bool
	}{
		{"int to bigint", Int(), BigInt(), true},
		{"bigint to int", BigInt(), Int(), false},
		{"int to double", Int(), Double(), true},
		{"nullability ignored", BigInt(), BigInt().NotNull(), true},
		{"null to anything", Null(), Date(), true},
		{"string to int", String(), Int(), false},
		{"decimal fits", Decimal(5, 2), Decimal(10, 2), true},
		{"decimal scale lost", Decimal(5, 3), Decimal(10, 2), false},
		{"timestamp precision", Timestamp(3), Timestamp(6), true},
		{"array element", Array(Int()), Array(BigInt()), true},
		{"array vs multiset", Array(Int()), Multiset(Int()), false},
		{"row arity", Row(NewField("a", Int())), Row(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAssign(tt.from, tt.to))
		})
	}
}

func TestWider(t *testing.T) {
	tests := []struct {
		name string
		a, b DataType
		want DataType
	}{
		{"integers", Int().NotNull(), BigInt(), BigInt()},
		{"decimals", Decimal(5, 2), Decimal(10, 0), Decimal(12, 2)},
		{"int with narrow decimal", Int(), Decimal(2, 1), Decimal(11, 1)},
		{"narrow decimal with int", Decimal(2, 1), Int(), Decimal(11, 1)},
		{"bigint with decimal", BigInt(), Decimal(20, 4), Decimal(23, 4)},
		{"tinyint with decimal", TinyInt().NotNull(), Decimal(10, 2).NotNull(), Decimal(10, 2).NotNull()},
		{"precision capped", Decimal(38, 0), Decimal(20, 10), Decimal(38, 0)},
		{"scale given up first", Decimal(30, 0), Decimal(12, 10), Decimal(38, 8)},
		{"integer capped", BigInt(), Decimal(38, 30), Decimal(38, 19)},
		{"decimal with double", Decimal(10, 2), Double(), Double()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Wider(tt.a, tt.b)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}

	_, ok := Wider(String(), Int())
	assert.False(t, ok)
}
