package token

import "fmt"

// Position represents a location in a statement.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String renders the position as line:column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range in a statement.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// Text returns the slice of input covered by the span.
func (s Span) Text(input string) string {
	if s.Start.Offset < 0 || s.End.Offset > len(input) || s.Start.Offset > s.End.Offset {
		return ""
	}
	return input[s.Start.Offset:s.End.Offset]
}
