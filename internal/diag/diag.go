// Package diag implements the shared diagnostic taxonomy of spec.md §7:
// every lex/parse/eval failure is reported as a Diagnostic naming its
// category, origin, line, active scope, and a one-line message, grounded
// in internal/interp/errors.InterpreterError and cmd/dwscript/cmd/run.go's
// pretty-printing of accumulated errors.
package diag

import "fmt"

// Category is one of the error kinds of spec.md §7's taxonomy.
type Category string

const (
	CategoryLex     Category = "LexError"
	CategoryParse   Category = "ParseError"
	CategoryType    Category = "TypeError"
	CategoryArity   Category = "ArityError"
	CategoryName    Category = "NameError"
	CategoryRuntime Category = "RuntimeError"
)

// Diagnostic is one fatal, user-visible failure (spec.md §7 "Propagation
// policy": parse/eval errors are fatal to the current host entry point).
type Diagnostic struct {
	Category Category
	Origin   string // file name, or "<eval>" per spec.md §6.4
	Line     int
	Scope    string // name of the active scope when the error occurred
	Message  string
}

func (d Diagnostic) Error() string {
	loc := d.Origin
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d", d.Origin, d.Line)
	}
	if d.Scope != "" {
		return fmt.Sprintf("%s: %s (in scope %q): %s", loc, d.Category, d.Scope, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", loc, d.Category, d.Message)
}

// New builds a Diagnostic with a formatted message.
func New(cat Category, origin string, line int, scope string, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Category: cat,
		Origin:   origin,
		Line:     line,
		Scope:    scope,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Format renders a list of diagnostics as one block of text, one per line,
// mirroring the teacher's errors.FormatErrors pretty-printer.
func Format(diags []Diagnostic) string {
	out := ""
	for _, d := range diags {
		out += d.Error() + "\n"
	}
	return out
}
