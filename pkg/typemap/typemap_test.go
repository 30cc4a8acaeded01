package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbind/pkg/types"
)

func TestParse_Supported(t *testing.T) {
	f0f1 := types.Row(types.NewField("f0", types.Int()), types.NewField("f1", types.Boolean()))

	tests := []struct {
		input string
		want  types.DataType
	}{
		{"CHAR", types.String()},
		{"CHAR NOT NULL", types.String().NotNull()},
		{"CHAR NULL", types.String()},
		{"CHAR(33)", types.String()},
		{"VARCHAR", types.String()},
		{"VARCHAR(33)", types.String()},
		{"STRING", types.String()},
		{"BOOLEAN", types.Boolean()},
		{"DECIMAL", types.Decimal(10, 0)},
		{"DEC", types.Decimal(10, 0)},
		{"NUMERIC", types.Decimal(10, 0)},
		{"DECIMAL(10)", types.Decimal(10, 0)},
		{"DEC(10)", types.Decimal(10, 0)},
		{"NUMERIC(10)", types.Decimal(10, 0)},
		{"DECIMAL(10, 3)", types.Decimal(10, 3)},
		{"DEC(10, 3)", types.Decimal(10, 3)},
		{"NUMERIC(10, 3)", types.Decimal(10, 3)},
		{"TINYINT", types.TinyInt()},
		{"SMALLINT", types.SmallInt()},
		{"INTEGER", types.Int()},
		{"INT", types.Int()},
		{"BIGINT", types.BigInt()},
		{"FLOAT", types.Float()},
		{"DOUBLE", types.Double()},
		{"DOUBLE PRECISION", types.Double()},
		{"DATE", types.Date()},
		{"TIME", types.Time(0)},
		{"TIME WITHOUT TIME ZONE", types.Time(0)},
		{"TIME(3)", types.Time(3)},
		{"TIME(3) WITHOUT TIME ZONE", types.Time(3)},
		{"TIMESTAMP", types.Timestamp(6)},
		{"TIMESTAMP WITHOUT TIME ZONE", types.Timestamp(6)},
		{"TIMESTAMP(3)", types.Timestamp(3)},
		{"TIMESTAMP(3) WITHOUT TIME ZONE", types.Timestamp(3)},
		{"ARRAY<INT NOT NULL>", types.Array(types.Int().NotNull())},
		{"INT ARRAY", types.Array(types.Int())},
		{"INT NOT NULL ARRAY", types.Array(types.Int().NotNull())},
		{"INT ARRAY NOT NULL", types.Array(types.Int()).NotNull()},
		{"MULTISET<INT NOT NULL>", types.Multiset(types.Int().NotNull())},
		{"INT MULTISET", types.Multiset(types.Int())},
		{"INT NOT NULL MULTISET", types.Multiset(types.Int().NotNull())},
		{"INT MULTISET NOT NULL", types.Multiset(types.Int()).NotNull()},
		{"MAP<BIGINT, BOOLEAN>", types.Map(types.BigInt(), types.Boolean())},
		{
			"ROW<f0 INT NOT NULL, f1 BOOLEAN>",
			types.Row(types.NewField("f0", types.Int().NotNull()), types.NewField("f1", types.Boolean())),
		},
		{
			"ROW(f0 INT NOT NULL, f1 BOOLEAN)",
			types.Row(types.NewField("f0", types.Int().NotNull()), types.NewField("f1", types.Boolean())),
		},
		{"ROW<`f0` INT>", types.Row(types.NewField("f0", types.Int()))},
		{"ROW(`f0` INT)", types.Row(types.NewField("f0", types.Int()))},
		{"ROW<>", types.Row()},
		{"ROW()", types.Row()},
		{
			"ROW<f0 INT NOT NULL 'This is a comment.', f1 BOOLEAN 'This as well.'>",
			types.Row(types.NewField("f0", types.Int().NotNull()), types.NewField("f1", types.Boolean())),
		},
		{"ROW<f0 INT, f1 BOOLEAN> ARRAY", types.Array(f0f1)},
		{"ARRAY<ROW<f0 INT, f1 BOOLEAN>>", types.Array(f0f1)},
		{"ROW<f0 INT, f1 BOOLEAN> MULTISET", types.Multiset(f0f1)},
		{"MULTISET<ROW<f0 INT, f1 BOOLEAN>>", types.Multiset(f0f1)},
		{
			"ROW<f0 Row<f00 INT, f01 BOOLEAN>, f1 INT ARRAY, f2 BOOLEAN MULTISET>",
			types.Row(
				types.NewField("f0", types.Row(types.NewField("f00", types.Int()), types.NewField("f01", types.Boolean()))),
				types.NewField("f1", types.Array(types.Int())),
				types.NewField("f2", types.Multiset(types.Boolean())),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	a, err := Parse("ROW<f0 INT ARRAY NOT NULL, f1 MAP<STRING, DECIMAL(5, 2)>>")
	require.NoError(t, err)
	b, err := Parse("ROW<f0 INT ARRAY NOT NULL, f1 MAP<STRING, DECIMAL(5, 2)>>")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.Equal(t, "ROW<`f0` ARRAY<INT> NOT NULL, `f1` MAP<STRING, DECIMAL(5, 2)>>", a.String())
}

func TestParse_Unsupported(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ARRAY<TIMESTAMP(3) WITH LOCAL TIME ZONE>", "Type is not supported: TIMESTAMP_WITH_LOCAL_TIME_ZONE"},
		{"TIMESTAMP(3) WITH LOCAL TIME ZONE", "Type is not supported: TIMESTAMP_WITH_LOCAL_TIME_ZONE"},
		{"TIMESTAMP WITH LOCAL TIME ZONE", "Type is not supported: TIMESTAMP_WITH_LOCAL_TIME_ZONE"},
		{"BYTES", "Type is not supported: VARBINARY"},
		{"VARBINARY(33)", "Type is not supported: VARBINARY"},
		{"VARBINARY", "Type is not supported: VARBINARY"},
		{"BINARY(33)", "Type is not supported: BINARY"},
		{"BINARY", "Type is not supported: BINARY"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.EqualError(t, err, tt.want)

			var unsupported *UnsupportedTypeError
			assert.ErrorAs(t, err, &unsupported)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		input     string
		errSubstr string
	}{
		{"DECIMAL(0)", "precision 0 must be between 1 and 38"},
		{"DECIMAL(5, 6)", "scale 6 must be between 0 and the precision 5"},
		{"TIMESTAMP(12)", "precision 12 must be between 0 and 9"},
		{"INT(3)", "expected at most 0 arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)

			var invalid *InvalidTypeError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}
