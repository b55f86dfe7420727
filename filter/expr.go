package filter

import (
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/devmate/devmate"
)

// DefaultCacheSize is the number of compiled expressions NewExprCompiler keeps
const DefaultCacheSize = 64

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache sets the compiled filter cache size. Zero disables caching
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size <= 0 {
			c.cache = nil
			return
		}
		c.cache = newLRUCache(size)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		cache: newLRUCache(DefaultCacheSize),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	cache *lruCache
}

// Compile compiles an expression into an executable filter. Every customer
// field and helper is declared at compile time, so unknown names and type
// mismatches are reported here rather than during evaluation
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(createEnvironment(devmate.Customer{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Evaluate evaluates the filter against a customer. A runtime error counts
// as no match
func (f *exprFilter) Evaluate(customer devmate.Customer) bool {
	result, err := expr.Run(f.program, createEnvironment(customer))
	if err != nil {
		return false
	}

	matched, _ := result.(bool)
	return matched
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createEnvironment exposes a customer and the helper functions to an
// expression
func createEnvironment(customer devmate.Customer) map[string]any {
	env := make(map[string]any, 32)

	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	env["now"] = time.Now

	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper

	// Customer properties
	env["Customer"] = customer
	env["ID"] = customer.ID
	env["Email"] = customer.Email
	env["FirstName"] = customer.FirstName
	env["LastName"] = customer.LastName
	env["FullName"] = customer.FullName()
	env["Company"] = customer.Company
	env["Phone"] = customer.Phone
	env["Address"] = customer.Address
	env["Note"] = customer.Note
	env["DateAdded"] = unixTime(customer.DateAdded)
	env["Licenses"] = customer.Licenses
	env["LicenseCount"] = len(customer.Licenses)

	// License helpers
	licenses := customer.Licenses
	env["hasLicense"] = func() bool {
		return len(licenses) > 0
	}
	env["hasActiveLicense"] = func() bool {
		for i := range licenses {
			if licenses[i].IsActive() {
				return true
			}
		}
		return false
	}
	env["hasLicenseType"] = func(name string) bool {
		for i := range licenses {
			if strings.EqualFold(licenses[i].LicenseTypeName, name) {
				return true
			}
		}
		return false
	}
	env["hasProduct"] = func(name string) bool {
		for i := range licenses {
			for _, product := range licenses[i].Products {
				if strings.EqualFold(product.Name, name) || strings.EqualFold(product.BundleID, name) {
					return true
				}
			}
		}
		return false
	}
	env["hasActivationKey"] = func(key string) bool {
		for i := range licenses {
			if licenses[i].ActivationKey == key {
				return true
			}
		}
		return false
	}
	env["activationsLeft"] = func() int {
		left := 0
		for i := range licenses {
			left += licenses[i].ActivationsLeft()
		}
		return left
	}

	return env
}

func unixTime(seconds int64) time.Time {
	if seconds == 0 {
		return time.Time{}
	}
	return time.Unix(seconds, 0).UTC()
}
