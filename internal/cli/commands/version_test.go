package commands

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/sqlbind/internal/cli/config"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		version string
		output  string
		wantOut []string
	}{
		{
			name:    "text by default",
			version: "0.1.0",
			output:  "auto",
			wantOut: []string{"sqlbind v0.1.0", "SQL statement binder built with " + runtime.Version(), "Catalog types: memory, sqlite"},
		},
		{
			name:    "table mode is text",
			version: "dev",
			output:  "table",
			wantOut: []string{"sqlbind vdev"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(config.CatalogMemory, "")
			cfg.Output = tt.output

			out, _, err := execute(t, NewVersionCommand(tt.version), cfg, "")
			require.NoError(t, err)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestVersionCommand_Structured(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		out, _, err := execute(t, NewVersionCommand("1.2.3"), testConfig(config.CatalogMemory, ""), "")
		require.NoError(t, err)

		var info VersionInfo
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, "1.2.3", info.Version)
		assert.Equal(t, runtime.Version(), info.Go)
		assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
		assert.Equal(t, []string{"memory", "sqlite"}, info.Catalogs[:2])
	})

	t.Run("yaml", func(t *testing.T) {
		cfg := testConfig(config.CatalogMemory, "")
		cfg.Output = "yaml"

		out, _, err := execute(t, NewVersionCommand("1.2.3"), cfg, "")
		require.NoError(t, err)

		var info VersionInfo
		require.NoError(t, yaml.Unmarshal([]byte(out), &info))
		assert.Equal(t, "1.2.3", info.Version)
	})
}

func TestVersionCommandMetadata(t *testing.T) {
	cmd := NewVersionCommand("test")
	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}
