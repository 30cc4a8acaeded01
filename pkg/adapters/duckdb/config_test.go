package duckdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]any
		want    *Params
		wantErr string
	}{
		{
			name:  "nil params returns empty struct",
			input: nil,
			want:  &Params{},
		},
		{
			name: "extensions and settings",
			input: map[string]any{
				"extensions": []any{"httpfs", "json"},
				"settings":   map[string]any{"memory_limit": "4GB", "threads": 4},
			},
			want: &Params{
				Extensions: []string{"httpfs", "json"},
				Settings:   map[string]string{"memory_limit": "4GB", "threads": "4"},
			},
		},
		{
			name: "secret with scope list",
			input: map[string]any{
				"secrets": []any{
					map[string]any{
						"type":     "s3",
						"provider": "credential_chain",
						"scope":    []any{"s3://bucket1", "s3://bucket2"},
						"use_ssl":  false,
					},
				},
			},
			want: &Params{
				Secrets: []SecretConfig{{
					Type:     "s3",
					Provider: "credential_chain",
					Scope:    []any{"s3://bucket1", "s3://bucket2"},
					UseSSL:   boolPtr(false),
				}},
			},
		},
		{
			name:  "attach",
			input: map[string]any{"attach": map[string]any{"lake": "/data/lake.duckdb"}},
			want:  &Params{Attach: map[string]string{"lake": "/data/lake.duckdb"}},
		},
		{
			name:    "unknown key",
			input:   map[string]any{"extension": []any{"httpfs"}},
			wantErr: "invalid duckdb params",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseParams(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupStatements(t *testing.T) {
	p := &Params{
		Extensions: []string{"httpfs"},
		Settings:   map[string]string{"threads": "4", "memory_limit": "1GB"},
		Secrets: []SecretConfig{{
			Type:   "s3",
			Region: "us-east-1",
			KeyID:  "AKIA",
			Secret: "s'cret",
			Scope:  "s3://bucket",
			UseSSL: boolPtr(true),
		}},
		Attach: map[string]string{"lake": "/tmp/lake.duckdb"},
	}

	assert.Equal(t, []string{
		"INSTALL httpfs",
		"LOAD httpfs",
		"SET memory_limit = '1GB'",
		"SET threads = '4'",
		"CREATE OR REPLACE SECRET sqlbind_secret_0 (TYPE s3, REGION 'us-east-1', KEY_ID 'AKIA', SECRET 's''cret', USE_SSL true, SCOPE 's3://bucket')",
		`ATTACH '/tmp/lake.duckdb' AS "lake" (READ_ONLY)`,
	}, setupStatements(p))
}

func TestRedact(t *testing.T) {
	got := redact("CREATE SECRET x (TYPE s3, KEY_ID 'AKIA', SECRET 's''cret', REGION 'eu')")
	assert.Equal(t, "CREATE SECRET x (TYPE s3, KEY_ID '***', SECRET '***', REGION 'eu')", got)
}

func TestRewriteType(t *testing.T) {
	assert.Equal(t, "ARRAY<INTEGER>", rewriteType("INTEGER[]"))
	assert.Equal(t, "ARRAY<ARRAY<BIGINT>>", rewriteType("int8[][]"))
	assert.Equal(t, "VARCHAR", rewriteType("VARCHAR"))
}

func boolPtr(b bool) *bool {
	return &b
}
