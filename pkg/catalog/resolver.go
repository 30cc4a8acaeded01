package catalog

import (
	"context"
	"fmt"
	"strings"
)

// Resolve qualifies a 1, 2 or 3 part object name against the session:
//
//	object                  → session.Catalog.session.Database.object
//	database.object         → session.Catalog.database.object
//	catalog.database.object → as written
//
// Any other number of parts, or an empty part, is an *IdentifierError.
func Resolve(parts []string, s Session) (Identifier, error) {
	if err := checkParts(parts, 1, 3, "[catalog.][database.]object"); err != nil {
		return Identifier{}, err
	}
	switch len(parts) {
	case 3:
		return NewIdentifier(parts[0], parts[1], parts[2]), nil
	case 2:
		return NewIdentifier(s.Catalog, parts[0], parts[1]), nil
	default:
		return NewIdentifier(s.Catalog, s.Database, parts[0]), nil
	}
}

// ResolveDatabase qualifies a 1 or 2 part database name against the
// session and returns the catalog and database.
func ResolveDatabase(parts []string, s Session) (string, string, error) {
	if err := checkParts(parts, 1, 2, "[catalog.]database"); err != nil {
		return "", "", err
	}
	if len(parts) == 2 {
		return parts[0], parts[1], nil
	}
	return s.Catalog, parts[0], nil
}

// ResolveRenameTarget qualifies the new name of a renamed object. A bare
// name inherits the source's catalog and database.
func ResolveRenameTarget(parts []string, source Identifier) (Identifier, error) {
	return Resolve(parts, Session{Catalog: source.Catalog, Database: source.Database})
}

func checkParts(parts []string, lo, hi int, expected string) error {
	name := strings.Join(parts, ".")
	if len(parts) < lo || len(parts) > hi {
		return &IdentifierError{Name: name, Parts: len(parts), Expected: expected}
	}
	for _, p := range parts {
		if p == "" {
			return &IdentifierError{Name: name, Parts: len(parts), Expected: expected}
		}
	}
	return nil
}

// LookupTable resolves parts and fetches the table, failing with
// *NotFoundError when it does not exist.
func LookupTable(ctx context.Context, cat Catalog, parts []string, s Session) (Identifier, *TableDefinition, error) {
	id, err := Resolve(parts, s)
	if err != nil {
		return Identifier{}, nil, err
	}
	def, err := cat.GetTable(ctx, id)
	if err != nil {
		return id, nil, fmt.Errorf("get table %s: %w", id, err)
	}
	if def == nil {
		return id, nil, &NotFoundError{Kind: "Table", Name: id.String()}
	}
	return id, def, nil
}
