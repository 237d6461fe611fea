package filter

import (
	"github.com/s0up4200/mailgallery/gallery"
)

// Filter decides whether an attachment is kept
type Filter interface {
	// Evaluate checks if a file matches the filter criteria
	Evaluate(file gallery.File) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}
