package catalog

import (
	"context"
	"slices"
	"sync"
)

// Memory is an in-memory Store. It is safe for concurrent use; lookups
// return copies so callers always see a consistent snapshot of an object.
type Memory struct {
	mu       sync.RWMutex
	catalogs map[string]*memCatalog
}

type memCatalog struct {
	databases map[string]*memDatabase
}

type memDatabase struct {
	def    DatabaseDefinition
	tables map[string]*TableDefinition
}

// NewMemory returns a Memory holding the builtin catalog with its default
// database.
func NewMemory() *Memory {
	m := &Memory{catalogs: make(map[string]*memCatalog)}
	m.catalogs[DefaultCatalog] = &memCatalog{databases: map[string]*memDatabase{
		DefaultDatabase: {def: DatabaseDefinition{Options: map[string]string{}}, tables: map[string]*TableDefinition{}},
	}}
	return m
}

// CatalogExists implements Catalog.
func (m *Memory) CatalogExists(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.catalogs[name]
	return ok, nil
}

// DatabaseExists implements Catalog.
func (m *Memory) DatabaseExists(_ context.Context, catalog, database string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.database(catalog, database) != nil, nil
}

// GetDatabase implements Catalog.
func (m *Memory) GetDatabase(_ context.Context, catalog, database string) (*DatabaseDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	db := m.database(catalog, database)
	if db == nil {
		return nil, nil
	}
	return db.def.Clone(), nil
}

// GetTable implements Catalog.
func (m *Memory) GetTable(_ context.Context, id Identifier) (*TableDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	db := m.database(id.Catalog, id.Database)
	if db == nil {
		return nil, nil
	}
	return db.tables[id.Object].Clone(), nil
}

// ListCatalogs implements Lister.
func (m *Memory) ListCatalogs(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.catalogs), nil
}

// ListDatabases implements Lister.
func (m *Memory) ListDatabases(_ context.Context, catalog string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.catalogs[catalog]
	if !ok {
		return nil, &NotFoundError{Kind: "Catalog", Name: catalog}
	}
	return sortedKeys(c.databases), nil
}

// ListTables implements Lister.
func (m *Memory) ListTables(_ context.Context, catalog, database string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	db := m.database(catalog, database)
	if db == nil {
		return nil, &NotFoundError{Kind: "Database", Name: catalog + "." + database}
	}
	return sortedKeys(db.tables), nil
}

// CreateCatalog implements Writer. Creating an existing catalog is a no-op.
func (m *Memory) CreateCatalog(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.catalogs[name]; !ok {
		m.catalogs[name] = &memCatalog{databases: make(map[string]*memDatabase)}
	}
	return nil
}

// CreateDatabase implements Writer.
func (m *Memory) CreateDatabase(_ context.Context, catalog, database string, def DatabaseDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.catalogs[catalog]
	if !ok {
		return &NotFoundError{Kind: "Catalog", Name: catalog}
	}
	if _, ok := c.databases[database]; ok {
		return &ExistsError{Kind: "Database", Name: catalog + "." + database}
	}
	c.databases[database] = &memDatabase{def: *def.Clone(), tables: make(map[string]*TableDefinition)}
	return nil
}

// CreateTable implements Writer.
func (m *Memory) CreateTable(_ context.Context, id Identifier, def TableDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	db := m.database(id.Catalog, id.Database)
	if db == nil {
		return &NotFoundError{Kind: "Database", Name: id.Catalog + "." + id.Database}
	}
	if _, ok := db.tables[id.Object]; ok {
		return &ExistsError{Kind: "Table", Name: id.String()}
	}
	db.tables[id.Object] = def.Clone()
	return nil
}

// database returns the database or nil. Callers hold m.mu.
func (m *Memory) database(catalog, database string) *memDatabase {
	c, ok := m.catalogs[catalog]
	if !ok {
		return nil
	}
	return c.databases[database]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
