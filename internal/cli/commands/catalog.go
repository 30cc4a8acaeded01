package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlbind/internal/cli/config"
	"github.com/leapstack-labs/sqlbind/pkg/catalog"
)

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and seed the catalog",
	}
	cmd.AddCommand(newCatalogImportCommand())
	cmd.AddCommand(newCatalogExportCommand())
	cmd.AddCommand(newCatalogListCommand())
	return cmd
}

func newCatalogImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <snapshot.yaml>",
		Short: "Load a YAML snapshot into the catalog store",
		Long: `Create every catalog, database and table of a YAML snapshot in the
configured catalog. Databases that already exist are kept; tables that
already exist fail the import.`,
		Example: `  sqlbind catalog import --catalog-type sqlite --catalog-path sqlbind.db fixtures.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			if cfg.Catalog.Type == config.CatalogMemory {
				return fmt.Errorf("the memory catalog is not persistent\nHint: use --catalog-type sqlite to import into a catalog store")
			}

			snap, err := catalog.LoadSnapshotFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to load snapshot: %w", err)
			}

			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			w, ok := cmdCtx.Workspace.Catalog.(catalog.Writer)
			if !ok {
				return fmt.Errorf("catalog type %s is read-only", cfg.Catalog.Type)
			}
			if err := snap.Apply(cmd.Context(), w); err != nil {
				return err
			}

			cmdCtx.Renderer.Success(fmt.Sprintf("Imported %d catalogs, %d tables", len(snap.Catalogs), countTables(snap)))
			return nil
		},
	}
}

func newCatalogExportCommand() *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog contents as a YAML snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			src, err := listable(cmdCtx)
			if err != nil {
				return err
			}
			snap, err := catalog.Export(cmd.Context(), src)
			if err != nil {
				return fmt.Errorf("failed to export catalog: %w", err)
			}

			if outFile == "" {
				return snap.Write(cmdCtx.Renderer.Writer())
			}
			f, err := os.Create(outFile) //nolint:gosec // path is user-provided CLI input
			if err != nil {
				return err
			}
			if err := snap.Write(f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			cmdCtx.Renderer.Success("Wrote " + outFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "file", "f", "", "Write the snapshot to a file instead of stdout")
	return cmd
}

func newCatalogListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalogs, databases and tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			src, err := listable(cmdCtx)
			if err != nil {
				return err
			}
			rows, err := listObjects(cmd.Context(), src)
			if err != nil {
				return err
			}
			return cmdCtx.Renderer.Table([]string{"catalog", "database", "table"}, rows)
		},
	}
}

type listableCatalog interface {
	catalog.Catalog
	catalog.Lister
}

func listable(cmdCtx *CommandContext) (listableCatalog, error) {
	src, ok := cmdCtx.Workspace.Catalog.(listableCatalog)
	if !ok {
		return nil, fmt.Errorf("catalog type %s cannot list its contents", cmdCtx.Cfg.Catalog.Type)
	}
	return src, nil
}

// listObjects returns one row per table, and one per empty database.
func listObjects(ctx context.Context, src catalog.Lister) ([][]string, error) {
	catalogs, err := src.ListCatalogs(ctx)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for _, c := range catalogs {
		dbs, err := src.ListDatabases(ctx, c)
		if err != nil {
			return nil, err
		}
		for _, d := range dbs {
			tables, err := src.ListTables(ctx, c, d)
			if err != nil {
				return nil, err
			}
			if len(tables) == 0 {
				rows = append(rows, []string{c, d, ""})
			}
			for _, t := range tables {
				rows = append(rows, []string{c, d, t})
			}
		}
	}
	return rows, nil
}

func countTables(s *catalog.Snapshot) int {
	n := 0
	for _, c := range s.Catalogs {
		for _, d := range c.Databases {
			n += len(d.Tables)
		}
	}
	return n
}
