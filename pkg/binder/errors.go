package binder

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a statement could not be bound.
type ErrorKind int

// Error kinds.
const (
	// KindMalformed: a command keyword matched but the rest of the statement
	// did not have the expected shape.
	KindMalformed ErrorKind = iota
	// KindUnsupported: the statement is understood but not implemented.
	KindUnsupported
	// KindValidation: the statement is well formed but semantically invalid.
	KindValidation
	// KindResolution: a name could not be resolved against the catalog.
	KindResolution
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformed:
		return "malformed input"
	case KindUnsupported:
		return "unsupported feature"
	case KindValidation:
		return "validation failed"
	case KindResolution:
		return "resolution failed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned for every statement that cannot be bound. It carries
// the statement text together with the reason.
type Error struct {
	Kind      ErrorKind
	Statement string
	Message   string
	Err       error
}

// NewError returns an *Error. cause may be nil.
func NewError(kind ErrorKind, statement, message string, cause error) *Error {
	return &Error{Kind: kind, Statement: statement, Message: message, Err: cause}
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Common messages.
const (
	MsgOnlyRegularColumns   = "Only regular columns are supported in the DDL of the old planner."
	MsgInvalidComputed      = "Invalid expression for computed column '%s'."
	MsgUniqueNotSupported   = "UNIQUE constraints are not supported yet."
	MsgWatermarkUnsupported = "WATERMARK definitions are not supported yet."
	MsgDuplicatePrimaryKey  = "Duplicate primary key definition."
	MsgUnknownPKColumn      = "Primary key column '%s' is not defined in the table schema."
	MsgDuplicateColumn      = "A column named '%s' already exists in the table."
	MsgUnknownPartition     = "Partition column '%s' is not defined in the table schema. Available columns: [%s]"
	MsgDuplicatePartition   = "Partition column '%s' is declared more than once."
	MsgCatalogNotExist      = "Catalog '%s' does not exist."
	MsgDatabaseNotExist     = "Database '%s' does not exist in catalog '%s'."
)

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func isKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsMalformed reports whether err is a KindMalformed *Error.
func IsMalformed(err error) bool { return isKind(err, KindMalformed) }

// IsUnsupported reports whether err is a KindUnsupported *Error.
func IsUnsupported(err error) bool { return isKind(err, KindUnsupported) }

// IsValidation reports whether err is a KindValidation *Error.
func IsValidation(err error) bool { return isKind(err, KindValidation) }

// IsResolution reports whether err is a KindResolution *Error.
func IsResolution(err error) bool { return isKind(err, KindResolution) }
