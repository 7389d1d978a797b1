// Package emplode is the host-embeddable facade over the Emplode
// scripting language (spec.md §4.7, §6.4), grounded in
// original_source/source/Emplode/Emplode.hpp's top-level Emplode class
// and, for the wiring pattern, the teacher's
// internal/interp/runner.NewWithOptions (interpreter + evaluator built
// separately, then cross-wired, so internal/parser never has to import
// internal/eval).
//
// A host program builds one Interpreter, registers its types, functions,
// linked variables (plain or range-constrained via AddRangedVar), and
// signals against it, then calls Load/LoadStatements/Execute to run script
// text.
package emplode

import (
	"fmt"
	"io"
	"os"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/mercere99/MABE2-sub002/internal/diag"
	"github.com/mercere99/MABE2-sub002/internal/eval"
	"github.com/mercere99/MABE2-sub002/internal/events"
	"github.com/mercere99/MABE2-sub002/internal/lexer"
	"github.com/mercere99/MABE2-sub002/internal/parser"
	"github.com/mercere99/MABE2-sub002/internal/symbol"
)

// Interpreter is one independent Emplode instance: a root scope, an event
// registry, and the evaluator that walks ASTs built against them. Per
// spec.md §5 "Shared-resource policy", an Interpreter is not safe for
// concurrent use from multiple goroutines; two Interpreters share nothing.
type Interpreter struct {
	Root   *symbol.Scope
	Events *events.Manager

	eval *eval.Evaluator
	hook *parser.EvalHook
	log  hclog.Logger
}

// Option configures a new Interpreter.
type Option func(*Interpreter)

// WithLogger overrides the default null logger with log, named "emplode".
func WithLogger(log hclog.Logger) Option {
	return func(i *Interpreter) {
		i.log = log.Named("emplode")
	}
}

// New creates an empty Interpreter: a fresh root scope, an empty event
// registry, and a fully wired evaluator. The EvalHook indirection (see
// internal/parser.EvalHook) is resolved here, once, right after both the
// parser-facing hook and the Evaluator exist.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		Root:   symbol.NewRootScope(),
		Events: events.NewManager(),
		hook:   &parser.EvalHook{},
		log:    hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.eval = eval.New(i.Events, "<root>", i.log)
	i.hook.Eval = i.eval.Eval
	return i
}

// RegisterType adds a new host type to the root scope's type registry
// (spec.md §4.7 "Register type"). members may be nil or empty.
func (i *Interpreter) RegisterType(name, desc string, construct func(varName string) interface{}, copyFn func(src, dst interface{}) error, ownedByDefault bool, members []*symbol.MemberFunc) error {
	t := symbol.NewTypeInfo(name, desc, construct, copyFn, ownedByDefault)
	for _, m := range members {
		if err := t.AddMember(m); err != nil {
			return err
		}
	}
	return i.Root.Types().Register(t)
}

// RegisterFunction inserts a free function into the root scope as a
// builtin Function symbol (spec.md §4.7 "Register free function"). Calling
// this again with an existing name adds another overload rather than
// erroring, matching spec.md §4.3 item 4's overload-by-arity model.
func (i *Interpreter) RegisterFunction(name, desc string, arity int, returnType symbol.ValueKind, call func(args []*symbol.Symbol) *symbol.Symbol) error {
	if existing, ok := i.Root.GetLocal(name); ok {
		if !existing.IsFunction() {
			return fmt.Errorf("cannot register function %q: name already bound to a %s", name, existing.Kind)
		}
		existing.Function.AddOverload(arity, call)
		return nil
	}
	fn := symbol.NewFunctionSymbol(name, arity, returnType, call)
	fn.Description = desc
	return i.Root.AddBuiltin(fn)
}

// LinkVar binds a host float64 into scope under name, creating a
// LinkedVar symbol whose reads and writes pass through to ptr (spec.md
// §4.7 "Link variable").
func (i *Interpreter) LinkVar(scope *symbol.Scope, name string, ptr *float64, desc string) error {
	if scope == nil {
		scope = i.Root
	}
	return scope.Add(symbol.NewLinkedNumVar(name, ptr, desc))
}

// LinkStrVar is LinkVar for a host string variable.
func (i *Interpreter) LinkStrVar(scope *symbol.Scope, name string, ptr *string, desc string) error {
	if scope == nil {
		scope = i.Root
	}
	return scope.Add(symbol.NewLinkedStrVar(name, ptr, desc))
}

// LinkFuns binds a host getter/setter pair into scope under name (spec.md
// §4.7 "Link getter/setter pair").
func (i *Interpreter) LinkFuns(scope *symbol.Scope, name string, accessor symbol.LinkedAccessor, desc string) error {
	if scope == nil {
		scope = i.Root
	}
	return scope.Add(symbol.NewLinkedFuns(name, accessor, desc))
}

// AddRangedVar declares a numeric Var constrained to [min, max] (and,
// if integerOnly, rounded to the nearest integer on every assignment),
// matching the original Symbol_Var's range/integer_only config-entry
// metadata (see DESIGN.md C2/C3 supplement).
func (i *Interpreter) AddRangedVar(scope *symbol.Scope, name string, val, min, max float64, integerOnly bool, desc string) error {
	if scope == nil {
		scope = i.Root
	}
	return scope.Add(symbol.NewRangedNumVar(name, val, min, max, integerOnly, desc))
}

// AddSignal declares a new signal accepting numParams trigger-time
// arguments (spec.md §4.7 "Declare signal").
func (i *Interpreter) AddSignal(signalName string, numParams int) error {
	return i.Events.AddSignal(signalName, numParams)
}

// Trigger dispatches every action registered against signalName, in
// registration order (spec.md §4.7 "Trigger signal").
func (i *Interpreter) Trigger(signalName string, args ...*symbol.Symbol) error {
	return i.Events.Trigger(i.eval, signalName, args...)
}

// Load parses and evaluates the named file in the root scope (spec.md §6.4
// "Load(path)").
func (i *Interpreter) Load(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return i.run(string(content), path)
}

// LoadStatements parses and evaluates a series of statement strings,
// joined with newlines, attributed to origin in diagnostics (spec.md §6.4
// "LoadStatements(lines, origin)").
func (i *Interpreter) LoadStatements(lines []string, origin string) error {
	src := ""
	for _, l := range lines {
		src += l + "\n"
	}
	return i.run(src, origin)
}

// Execute parses and evaluates a single expression string, returning its
// value marshaled to a double or a string depending on its runtime kind
// (spec.md §4.7 "Load / execute", §6.4 "Execute(expression)").
func (i *Interpreter) Execute(expression string) (interface{}, error) {
	lex := lexer.New(expression + ";")
	p := parser.New(lex, "<eval>", i.Root, i.Events, i.hook)
	program, diags := p.ParseProgram()
	if len(diags) > 0 {
		return nil, diagError(diags)
	}
	var result *symbol.Symbol
	for _, stmt := range program.Children {
		r, err := i.eval.Eval(stmt)
		if err != nil {
			return nil, err
		}
		result = r
	}
	if result == nil {
		return nil, nil
	}
	if result.IsString() {
		return result.AsString(), nil
	}
	return result.AsDouble(), nil
}

func (i *Interpreter) run(src, origin string) error {
	lex := lexer.New(src)
	p := parser.New(lex, origin, i.Root, i.Events, i.hook)
	program, diags := p.ParseProgram()
	if len(diags) > 0 {
		return diagError(diags)
	}
	_, err := i.eval.Eval(program)
	return err
}

func diagError(diags []diag.Diagnostic) error {
	var result *multierror.Error
	for _, d := range diags {
		result = multierror.Append(result, d)
	}
	return result.ErrorOrNil()
}

// Write serializes the root scope and the event registry back to w in the
// canonical textual form of spec.md §6.3.
func (i *Interpreter) Write(w io.Writer) error {
	if err := writeScope(w, i.Root, 0); err != nil {
		return err
	}
	for _, sig := range i.Events.Signals() {
		for _, a := range i.Events.Actions(sig) {
			if _, err := fmt.Fprintf(w, "@%s(%s) %s;\n", sig, paramList(a.Params), describeAction(a)); err != nil {
				return err
			}
		}
	}
	return nil
}

func paramList(params []*symbol.Symbol) string {
	out := ""
	for idx, p := range params {
		if idx > 0 {
			out += ", "
		}
		out += p.Name
	}
	return out
}

// describeAction renders an action's body as a placeholder comment naming
// its defining line; the original AST subtree is not turned back into
// source text. A Write output that contains event lines therefore does not
// load back: the placeholder leaves each `@signal(...)` line without an
// action statement, which the parser rejects.
func describeAction(a *events.Action) string {
	return fmt.Sprintf("/* action defined at line %d */", a.DefLine)
}

func writeScope(w io.Writer, sc *symbol.Scope, indent int) error {
	pad := ""
	for n := 0; n < indent; n++ {
		pad += "  "
	}
	for _, name := range sc.Names() {
		s, _ := sc.GetLocal(name)
		if s.Builtin || s.IsFunction() {
			continue
		}
		switch {
		case s.IsScope():
			fmt.Fprintf(w, "%sStruct %s {\n", pad, s.Name)
			if err := writeScope(w, s.ScopeVal, indent+1); err != nil {
				return err
			}
			fmt.Fprintf(w, "%s}\n", pad)
		case s.IsObject():
			typeName := "Var"
			if s.ObjectType != nil {
				typeName = s.ObjectType.Name
			}
			fmt.Fprintf(w, "%s%s %s {\n", pad, typeName, s.Name)
			if err := writeScope(w, s.ScopeVal, indent+1); err != nil {
				return err
			}
			fmt.Fprintf(w, "%s}\n", pad)
		default:
			line := fmt.Sprintf("%sVar %s = %s;", pad, s.Name, literalFor(s))
			if s.Description != "" {
				line = fmt.Sprintf("%-40s // %s", line, s.Description)
			}
			fmt.Fprintln(w, line)
		}
	}
	return nil
}

func literalFor(s *symbol.Symbol) string {
	if s.IsString() {
		return quoteString(s.AsString())
	}
	return s.AsString()
}

func quoteString(s string) string {
	out := "\""
	for _, r := range s {
		switch r {
		case '"':
			out += "\\\""
		case '\\':
			out += "\\\\"
		case '\n':
			out += "\\n"
		case '\t':
			out += "\\t"
		default:
			out += string(r)
		}
	}
	return out + "\""
}
