package catalog

import "fmt"

// IdentifierError reports a name with the wrong number of parts.
type IdentifierError struct {
	Name     string
	Parts    int
	Expected string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier '%s': expected %s, got %d parts", e.Name, e.Expected, e.Parts)
}

// NotFoundError reports a catalog object that does not exist.
type NotFoundError struct {
	Kind string // "Catalog", "Database" or "Table"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' does not exist", e.Kind, e.Name)
}

// ExistsError reports an attempt to create an object that already exists.
type ExistsError struct {
	Kind string
	Name string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("%s '%s' already exists", e.Kind, e.Name)
}
