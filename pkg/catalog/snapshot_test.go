package catalog

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbind/pkg/types"
)

const testSnapshot = `
catalogs:
  - name: builtin
    databases:
      - name: default
        tables:
          - name: kafka
            comment: Test table with computed column
            columns:
              - {name: a, type: BIGINT}
              - {name: b, type: BIGINT, expr: a + 1}
            options:
              connector: kafka
              kafka.topic: log.test
  - name: cat1
    databases:
      - name: db1
        comment: db1_comment
        options:
          k1: v1
        tables:
          - name: tb1
            columns:
              - {name: a, type: "ARRAY<INT NOT NULL>"}
            partition_keys: [a]
`

func TestLoadSnapshot(t *testing.T) {
	ctx := context.Background()
	s, err := LoadSnapshot(strings.NewReader(testSnapshot))
	require.NoError(t, err)
	require.Len(t, s.Catalogs, 2)

	m, err := NewMemoryFromSnapshot(ctx, s)
	require.NoError(t, err)

	kafka, err := m.GetTable(ctx, NewIdentifier("builtin", "default", "kafka"))
	require.NoError(t, err)
	require.NotNil(t, kafka)
	require.Len(t, kafka.Columns, 2)
	assert.True(t, kafka.Columns[1].IsComputed())
	assert.Equal(t, "a + 1", kafka.Columns[1].Expr)
	assert.Equal(t, "log.test", kafka.Options["kafka.topic"])

	db, err := m.GetDatabase(ctx, "cat1", "db1")
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.Equal(t, "db1_comment", *db.Comment)
	assert.Equal(t, map[string]string{"k1": "v1"}, db.Options)

	tb1, err := m.GetTable(ctx, NewIdentifier("cat1", "db1", "tb1"))
	require.NoError(t, err)
	assert.True(t, types.Array(types.Int().NotNull()).Equal(tb1.Columns[0].Type))
	assert.Equal(t, []string{"a"}, tb1.PartitionKeys)
}

func TestLoadSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		errSubstr string
	}{
		{"unknown field", "catalogz: []", "decode snapshot"},
		{"bad type", "catalogs: [{name: c, databases: [{name: d, tables: [{name: t, columns: [{name: a, type: BYTES}]}]}]}]", "Type is not supported: VARBINARY"},
		{"no catalog name", "catalogs: [{databases: []}]", "catalog without name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadSnapshot(strings.NewReader(tt.input))
			if err == nil {
				_, err = NewMemoryFromSnapshot(context.Background(), s)
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := LoadSnapshot(strings.NewReader(testSnapshot))
	require.NoError(t, err)
	m, err := NewMemoryFromSnapshot(ctx, s)
	require.NoError(t, err)

	exported, err := Export(ctx, m)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exported.Write(&buf))
	assert.Contains(t, buf.String(), "ARRAY<INT NOT NULL>")

	reloaded, err := LoadSnapshot(&buf)
	require.NoError(t, err)
	m2, err := NewMemoryFromSnapshot(ctx, reloaded)
	require.NoError(t, err)

	tb1, err := m2.GetTable(ctx, NewIdentifier("cat1", "db1", "tb1"))
	require.NoError(t, err)
	require.NotNil(t, tb1)
	assert.True(t, types.Array(types.Int().NotNull()).Equal(tb1.Columns[0].Type))
}
