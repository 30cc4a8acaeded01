package query

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbind/internal/testutil"
	"github.com/leapstack-labs/sqlbind/pkg/binder"
	"github.com/leapstack-labs/sqlbind/pkg/catalog"
	"github.com/leapstack-labs/sqlbind/pkg/operation"
)

func TestCompiler_Sources(t *testing.T) {
	session := catalog.Session{Catalog: "cat1", Database: "db1"}
	tests := []struct {
		name string
		sql  string
		want []catalog.Identifier
	}{
		{
			name: "no from",
			sql:  "SELECT 1",
		},
		{
			name: "single table",
			sql:  "SELECT a, b FROM tb1 WHERE a > 1",
			want: []catalog.Identifier{catalog.NewIdentifier("cat1", "db1", "tb1")},
		},
		{
			name: "qualified and joined",
			sql:  "SELECT * FROM db2.orders o JOIN tb1 ON o.id = tb1.id",
			want: []catalog.Identifier{
				catalog.NewIdentifier("cat1", "db2", "orders"),
				catalog.NewIdentifier("cat1", "db1", "tb1"),
			},
		},
		{
			name: "duplicates collapse",
			sql:  "SELECT * FROM tb1 UNION ALL SELECT * FROM tb1",
			want: []catalog.Identifier{catalog.NewIdentifier("cat1", "db1", "tb1")},
		},
		{
			name: "subquery",
			sql:  "SELECT * FROM (SELECT a FROM tb1) t WHERE a IN (SELECT a FROM tb2)",
			want: []catalog.Identifier{
				catalog.NewIdentifier("cat1", "db1", "tb1"),
				catalog.NewIdentifier("cat1", "db1", "tb2"),
			},
		},
		{
			name: "cte names are not sources",
			sql:  "WITH recent AS (SELECT * FROM tb1) SELECT * FROM recent",
			want: []catalog.Identifier{catalog.NewIdentifier("cat1", "db1", "tb1")},
		},
	}

	c := New(WithLogger(testutil.NewTestLogger(t)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := c.Compile(context.Background(), tt.sql, session)
			require.NoError(t, err)
			assert.Equal(t, tt.sql, q.SQL)
			assert.Equal(t, tt.want, q.Sources)
		})
	}
}

func TestCompiler_Invalid(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		msg  string
	}{
		{"delete", "DELETE FROM tb1", "expected a query"},
		{"update", "UPDATE tb1 SET a = 1", "expected a query"},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Compile(context.Background(), tt.sql, catalog.DefaultSession())
			var iq *InvalidQueryError
			require.True(t, errors.As(err, &iq), "got %v", err)
			assert.Contains(t, iq.Error(), tt.msg)
		})
	}
}

func TestCompiler_Passthrough(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"three part source", "SELECT * FROM cat1.db1.tb1"},
		{"quoted three part source", "SELECT a FROM `cat1`.`db1`.`tb1` WHERE a > 1"},
		{"joined three part sources", "SELECT * FROM cat1.db1.tb1 JOIN cat2.db2.tb2 ON tb1.a = tb2.a"},
		{"syntax error", "SELECT FROM WHERE"},
	}

	c := New(WithLogger(testutil.NewTestLogger(t)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := c.Compile(context.Background(), tt.sql, catalog.DefaultSession())
			require.NoError(t, err)
			assert.Equal(t, tt.sql, q.SQL)
			assert.Empty(t, q.Sources)
		})
	}
}

func TestCompiler_Concurrent(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := c.Compile(context.Background(), "SELECT * FROM t1", catalog.DefaultSession())
			assert.NoError(t, err)
			assert.Len(t, q.Sources, 1)
		}()
	}
	wg.Wait()
}

func TestCompiler_WithBinder(t *testing.T) {
	cat := testutil.NewCatalog(t)
	b := binder.New(cat, binder.WithQueryCompiler(New()))
	ctx := context.Background()

	op, err := b.BindSQL(ctx, "INSERT INTO t1 SELECT a, b, c, d FROM t2", catalog.DefaultSession())
	require.NoError(t, err)
	assert.Contains(t, op.Summary(), "t1")

	_, err = b.BindSQL(ctx, "INSERT INTO t1 SELECT * FROM missing", catalog.DefaultSession())
	require.Error(t, err)
	assert.True(t, binder.IsResolution(err), "got %v", err)

	op, err = b.BindSQL(ctx, "INSERT INTO t1 SELECT * FROM cat1.db1.tb1", catalog.DefaultSession())
	require.NoError(t, err)
	ins, ok := op.(*operation.InsertOperation)
	require.True(t, ok, "got %T", op)
	assert.Equal(t, "SELECT * FROM cat1.db1.tb1", ins.Query.SQL)
	assert.Empty(t, ins.Query.Sources)
}
