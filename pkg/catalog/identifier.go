package catalog

import (
	"fmt"
	"strings"
)

// Session defaults.
const (
	DefaultCatalog  = "builtin"
	DefaultDatabase = "default"
)

// Identifier is a fully qualified catalog.database.object name.
type Identifier struct {
	Catalog  string
	Database string
	Object   string
}

// NewIdentifier returns an Identifier.
func NewIdentifier(catalog, database, object string) Identifier {
	return Identifier{Catalog: catalog, Database: database, Object: object}
}

// String renders the identifier as catalog.database.object.
func (id Identifier) String() string {
	return id.Catalog + "." + id.Database + "." + id.Object
}

// Quoted renders the identifier with every part backtick quoted.
func (id Identifier) Quoted() string {
	return fmt.Sprintf("%s.%s.%s", quote(id.Catalog), quote(id.Database), quote(id.Object))
}

// Names returns the three parts in order.
func (id Identifier) Names() []string {
	return []string{id.Catalog, id.Database, id.Object}
}

func quote(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// Session is the current catalog and database a statement is bound against.
type Session struct {
	Catalog  string `json:"catalog" yaml:"catalog"`
	Database string `json:"database" yaml:"database"`
}

// DefaultSession returns the builtin.default session.
func DefaultSession() Session {
	return Session{Catalog: DefaultCatalog, Database: DefaultDatabase}
}
