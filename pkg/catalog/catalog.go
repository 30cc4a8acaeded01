// Package catalog resolves object names against the current session and
// defines the read interface the binder uses to inspect catalog state.
//
// Catalogs contain databases; databases contain tables. Every object is
// addressed by a three part Identifier once resolved.
package catalog

import "context"

// Catalog is the read-only view of catalog state used while binding.
// Lookups of absent objects return nil and no error.
type Catalog interface {
	CatalogExists(ctx context.Context, name string) (bool, error)
	DatabaseExists(ctx context.Context, catalog, database string) (bool, error)
	GetDatabase(ctx context.Context, catalog, database string) (*DatabaseDefinition, error)
	GetTable(ctx context.Context, id Identifier) (*TableDefinition, error)
}

// Lister enumerates catalog contents. Results are sorted by name.
type Lister interface {
	ListCatalogs(ctx context.Context) ([]string, error)
	ListDatabases(ctx context.Context, catalog string) ([]string, error)
	ListTables(ctx context.Context, catalog, database string) ([]string, error)
}

// Writer creates catalog objects. It is used to seed catalogs from
// snapshots; the binder never writes.
type Writer interface {
	CreateCatalog(ctx context.Context, name string) error
	CreateDatabase(ctx context.Context, catalog, database string, def DatabaseDefinition) error
	CreateTable(ctx context.Context, id Identifier, def TableDefinition) error
}

// Store is a catalog that can be read, listed and written.
type Store interface {
	Catalog
	Lister
	Writer
}
