package binder

import (
	"fmt"
	"maps"

	"github.com/leapstack-labs/sqlbind/pkg/catalog"
	"github.com/leapstack-labs/sqlbind/pkg/core"
	"github.com/leapstack-labs/sqlbind/pkg/operation"
)

func (c *call) bindCreateDatabase(st *core.CreateDatabaseStmt) (operation.Operation, error) {
	cat, db, err := c.resolveDatabase(st.Name)
	if err != nil {
		return nil, err
	}
	return &operation.CreateDatabaseOperation{
		Catalog:        cat,
		Database:       db,
		Definition:     catalog.DatabaseDefinition{Comment: st.Comment, Options: properties(st.Properties)},
		IgnoreIfExists: st.IfNotExists,
	}, nil
}

// bindAlterDatabase merges the new options onto the existing database,
// keeping its comment. Both the catalog and the database must exist.
func (c *call) bindAlterDatabase(st *core.AlterDatabaseStmt) (operation.Operation, error) {
	cat, db, err := c.resolveDatabase(st.Name)
	if err != nil {
		return nil, err
	}

	ok, err := c.b.catalog.CatalogExists(c.ctx, cat)
	if err != nil {
		return nil, c.fail(KindResolution, err, fmt.Sprintf("Failed to look up catalog '%s': %v", cat, err))
	}
	if !ok {
		return nil, c.fail(KindValidation, nil, fmt.Sprintf(MsgCatalogNotExist, cat))
	}

	existing, err := c.b.catalog.GetDatabase(c.ctx, cat, db)
	if err != nil {
		return nil, c.fail(KindResolution, err, fmt.Sprintf("Failed to look up database '%s.%s': %v", cat, db, err))
	}
	if existing == nil {
		return nil, c.fail(KindValidation, nil, fmt.Sprintf(MsgDatabaseNotExist, db, cat))
	}

	def := existing.Clone()
	maps.Copy(def.Options, properties(st.Properties))
	return &operation.AlterDatabaseOperation{Catalog: cat, Database: db, Definition: *def}, nil
}

func (c *call) bindDropDatabase(st *core.DropDatabaseStmt) (operation.Operation, error) {
	cat, db, err := c.resolveDatabase(st.Name)
	if err != nil {
		return nil, err
	}
	return &operation.DropDatabaseOperation{
		Catalog:  cat,
		Database: db,
		IfExists: st.IfExists,
		Cascade:  st.Cascade,
	}, nil
}
