package match

import "fmt"

// ErrorKind identifies a structural failure discovered while compiling or
// running a pattern against an AST, as opposed to an ordinary non-match.
type ErrorKind string

const (
	// ErrAmbiguousAdjacentPlaceholders is raised at compile time when a
	// pattern contains two placeholders with no literal anchor between
	// them. The matcher refuses to guess where one capture ends and the
	// next begins.
	ErrAmbiguousAdjacentPlaceholders ErrorKind = "AmbiguousAdjacentPlaceholders"
)

// Error is the structural error type for this package.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}
