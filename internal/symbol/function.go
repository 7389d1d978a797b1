package symbol

import "fmt"

// Overload is one entry in a Function symbol's overload set (spec.md
// §3.2): an arity (or -1 for variadic, receiving the raw argument vector)
// and the unified-form callable that implements it.
type Overload struct {
	Arity int
	Call  func(args []*Symbol) *Symbol
}

// Function is a named set of overloads sharing one declared return type
// (spec.md §3.2 "A Function symbol ... All overloads of one function share
// a single declared return type").
type Function struct {
	Name       string
	ReturnType ValueKind
	Overloads  []Overload
}

// NewFunctionSymbol wraps fn as a named, non-temporary Function symbol
// with a single overload.
func NewFunctionSymbol(name string, arity int, returnType ValueKind, call func(args []*Symbol) *Symbol) *Symbol {
	return &Symbol{
		Name: name,
		Kind: KindFunction,
		Function: &Function{
			Name:       name,
			ReturnType: returnType,
			Overloads:  []Overload{{Arity: arity, Call: call}},
		},
	}
}

// AddOverload appends another overload to an existing Function symbol,
// used when a host registers the same free-function name more than once
// (e.g. to add a variadic fallback).
func (f *Function) AddOverload(arity int, call func(args []*Symbol) *Symbol) {
	f.Overloads = append(f.Overloads, Overload{Arity: arity, Call: call})
}

// Resolve selects the overload matching argCount per spec.md §4.3 item 4:
// exact arity match first, else the first variadic (-1) overload.
func (f *Function) Resolve(argCount int) (Overload, error) {
	var variadic *Overload
	for i := range f.Overloads {
		ov := f.Overloads[i]
		if ov.Arity == argCount {
			return ov, nil
		}
		if ov.Arity == -1 && variadic == nil {
			variadic = &f.Overloads[i]
		}
	}
	if variadic != nil {
		return *variadic, nil
	}
	return Overload{}, fmt.Errorf("no overload of %q accepts %d argument(s)", f.Name, argCount)
}

// Call dispatches to the overload matching len(args), per spec.md §4.3
// item 4. On a dispatch failure it returns an Error symbol rather than a Go
// error, matching every other evaluation-edge result in this package.
func (s *Symbol) Call(args []*Symbol) *Symbol {
	if !s.IsFunction() {
		return NewError("cannot call a function on non-function %q", s.Name)
	}
	ov, err := s.Function.Resolve(len(args))
	if err != nil {
		return NewError("%s", err.Error())
	}
	return ov.Call(args)
}
