package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/mailgallery/gallery"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	now        func() time.Time
	custom     map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[*exprFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.custom, funcs)
	}
}

// WithNow overrides the clock used by date helpers
func WithNow(now func() time.Time) ExprCompilerOption {
	return func(c *exprCompiler) {
		if now != nil {
			c.now = now
		}
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) Compiler {
	c := &exprCompiler{
		custom: make(map[string]any),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	custom map[string]any
	cache  *lruCache[*exprFilter]
	now    func() time.Time
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Position:   -1,
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Type-check against a zero file so unknown names fail at compile time
	program, err := expr.Compile(expression,
		expr.Env(c.environment(gallery.File{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, newCompilationError(expression, err)
	}

	f := &exprFilter{
		expression: expression,
		program:    program,
		now:        c.now,
		custom:     c.custom,
	}

	if c.cache != nil {
		c.cache.Put(expression, f)
	}
	return f, nil
}

func (c *exprCompiler) environment(file gallery.File) map[string]any {
	env := newEnvironment(file, c.now)
	maps.Copy(env, c.custom)
	return env
}

// Evaluate evaluates the filter against a file. Runtime errors reject the file.
func (f *exprFilter) Evaluate(file gallery.File) bool {
	env := newEnvironment(file, f.now)
	maps.Copy(env, f.custom)

	result, err := expr.Run(f.program, env)
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

// newEnvironment builds the variables and helpers visible to an expression
func newEnvironment(file gallery.File, now func() time.Time) map[string]any {
	env := make(map[string]any, 24)

	// Date helpers
	env["now"] = now
	env["daysSince"] = func(t time.Time) int {
		return int(now().Sub(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return now().AddDate(0, 0, -days)
	}
	env["monthsAgo"] = func(months int) time.Time {
		return now().AddDate(0, -months, 0)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return now().AddDate(-years, 0, 0)
	}
	env["parseDate"] = func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}

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

	// File helpers
	env["isImage"] = file.IsImage
	env["hasExt"] = func(ext string) bool {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		return file.Ext() == ext
	}

	// File properties
	env["File"] = file
	env["FileID"] = file.ID
	env["FileName"] = file.Name
	env["Type"] = file.Type
	env["Size"] = file.Size
	env["Date"] = file.Time()
	env["From"] = file.From()
	env["Subject"] = file.Subject

	return env
}
