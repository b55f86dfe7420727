package filter

import (
	"context"

	"github.com/s0up4200/devmate/devmate"
)

// Filter decides whether a customer matches
type Filter interface {
	Evaluate(customer devmate.Customer) bool
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

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Evaluator applies a filter to a customer listing
type Evaluator interface {
	Evaluate(ctx context.Context, filter Filter, customers []devmate.Customer) ([]devmate.Customer, error)
}
