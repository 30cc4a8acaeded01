package commands

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlbind/internal/cli/config"
	"github.com/leapstack-labs/sqlbind/internal/cli/output"
	"github.com/leapstack-labs/sqlbind/pkg/adapter"
)

// VersionInfo is the structured form of `sqlbind version`.
type VersionInfo struct {
	Version  string   `json:"version" yaml:"version"`
	Go       string   `json:"go" yaml:"go"`
	Platform string   `json:"platform" yaml:"platform"`
	Catalogs []string `json:"catalogs" yaml:"catalogs"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Display the sqlbind version, the Go toolchain it was built with and the
catalog types this binary can open.

Plain text is printed unless --output json or --output yaml is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			info := newVersionInfo(version)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))

			switch output.Mode(cfg.Output) {
			case output.ModeJSON:
				return r.JSON(info)
			case output.ModeYAML:
				return r.YAML(info)
			}

			r.Printf("sqlbind v%s\n", info.Version)
			r.Printf("SQL statement binder built with %s (%s)\n", info.Go, info.Platform)
			r.Printf("Catalog types: %s\n", strings.Join(info.Catalogs, ", "))
			return nil
		},
	}
}

func newVersionInfo(version string) VersionInfo {
	catalogs := []string{config.CatalogMemory, config.CatalogSQLite}
	catalogs = append(catalogs, adapter.ListAdapters()...)
	return VersionInfo{
		Version:  version,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Catalogs: catalogs,
	}
}
