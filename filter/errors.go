package filter

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr/file"
)

// ErrUnknownPreset is returned when a preset name is not configured
var ErrUnknownPreset = errors.New("unknown filter preset")

// CompilationError indicates a filter expression could not be compiled
type CompilationError struct {
	Expression string
	Reason     string
	Position   int // -1 if position is unknown
	Err        error
}

func newCompilationError(expression string, err error) *CompilationError {
	ce := &CompilationError{
		Expression: expression,
		Reason:     err.Error(),
		Position:   -1,
		Err:        err,
	}
	var fileErr *file.Error
	if errors.As(err, &fileErr) {
		ce.Reason = fileErr.Message
		ce.Position = fileErr.Column
	}
	return ce
}

func (e *CompilationError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("compilation error at position %d in '%s': %s", e.Position, e.Expression, e.Reason)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}
