// Package parser implements Emplode's hand-written recursive-descent,
// precedence-climbing parser (spec.md §4.2), grounded in
// original_source/source/Emplode/Parser.hpp's ParseState and in the
// grammar spelled out by spec.md §4.2.1-§4.2.4. Name resolution happens
// as the parser walks the token stream: every identifier reference is
// resolved against the live internal/symbol.Scope chain immediately, so
// an unresolved name is a parse-time error, not a run-time one.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mercere99/MABE2-sub002/internal/ast"
	"github.com/mercere99/MABE2-sub002/internal/diag"
	"github.com/mercere99/MABE2-sub002/internal/events"
	"github.com/mercere99/MABE2-sub002/internal/lexer"
	"github.com/mercere99/MABE2-sub002/internal/symbol"
)

// EvalHook is a mutable forward reference to the evaluator that will run
// user-defined function bodies. The
// parser builds Function symbols whose native Go closures call back
// through hook.Eval; pkg/emplode fills hook.Eval in once it has
// constructed the matching internal/eval.Evaluator. This indirection
// lets internal/parser and internal/eval avoid importing each other.
type EvalHook struct {
	Eval func(node ast.Node) (*symbol.Symbol, error)
}

// reservedBuiltins is the set of `:name` accessors of spec.md §6.2.
var reservedBuiltins = map[string]bool{
	"scope_size": true, "names": true, "string": true, "value": true,
	"is_string": true, "is_value": true, "is_struct": true, "is_array": true,
	"type": true,
}

// Precedence levels for the binary-operator climb, spec.md §4.2.2 (low to
// high). Assignment and exponentiation are right-associative; everything
// else is left-associative.
type precedence int

const (
	precNone precedence = iota
	precAssign
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precExponent
)

var binOpPrecedence = map[string]precedence{
	"=": precAssign, "||": precOr, "&&": precAnd,
	"==": precEquality, "!=": precEquality,
	"<": precRelational, "<=": precRelational, ">": precRelational, ">=": precRelational,
	"+": precAdditive, "-": precAdditive,
	"*": precMultiplicative, "/": precMultiplicative, "%": precMultiplicative,
	"**": precExponent,
}

var rightAssoc = map[string]bool{"=": true, "**": true}

// Parser turns one lexer's token stream into a single top-level ast.Block,
// mutating root (and its descendant scopes) as declarations are parsed.
type Parser struct {
	lex    *lexer.Lexer
	origin string
	events *events.Manager
	hook   *EvalHook

	cur  lexer.Token
	diag []diag.Diagnostic

	scopes []*symbol.Scope // stack; scopes[len-1] is current
}

// New creates a Parser reading from lex, resolving names against root,
// validating event declarations against mgr, and wiring user-defined
// function calls through hook.
func New(lex *lexer.Lexer, origin string, root *symbol.Scope, mgr *events.Manager, hook *EvalHook) *Parser {
	p := &Parser{lex: lex, origin: origin, events: mgr, hook: hook, scopes: []*symbol.Scope{root}}
	p.advance()
	return p
}

// Diagnostics returns every parse error accumulated so far.
func (p *Parser) Diagnostics() []diag.Diagnostic { return p.diag }

func (p *Parser) scope() *symbol.Scope { return p.scopes[len(p.scopes)-1] }

func (p *Parser) pushScope(s *symbol.Scope) { p.scopes = append(p.scopes, s) }

func (p *Parser) popScope() { p.scopes = p.scopes[:len(p.scopes)-1] }

func (p *Parser) advance() {
	p.cur = p.lex.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.diag = append(p.diag, diag.New(diag.CategoryParse, p.origin, p.cur.Pos.Line, p.scope().OwnerName(), format, args...))
}

// parseError is an internal control-flow signal used to unwind out of a
// broken statement so the parser can resynchronize and keep collecting
// diagnostics instead of stopping at the first error.
type parseError struct{}

func (p *Parser) bail() { panic(parseError{}) }

func (p *Parser) fail(format string, args ...interface{}) {
	p.errorf(format, args...)
	p.bail()
}

func (p *Parser) isSymbol(lit string) bool {
	return p.cur.Type == lexer.SYMBOL && p.cur.Literal == lit
}

func (p *Parser) isKeyword(lit string) bool {
	return p.cur.Type == lexer.KEYWORD && p.cur.Literal == lit
}

func (p *Parser) expectSymbol(lit string) {
	if !p.isSymbol(lit) {
		p.fail("expected %q, found %s", lit, p.cur)
	}
	p.advance()
}

// ParseProgram parses a complete top-level statement list and returns the
// resulting Block (spec.md §4.2.4) together with every diagnostic raised
// along the way. The caller (pkg/emplode) decides whether any diagnostics
// are fatal to the load.
func (p *Parser) ParseProgram() (*ast.Block, []diag.Diagnostic) {
	block := p.parseStatementListInto(p.scope())
	for _, le := range p.lex.Errors() {
		p.diag = append(p.diag, diag.New(diag.CategoryLex, p.origin, le.Pos.Line, "", "%s", le.Message))
	}
	return block, p.diag
}

// parseStatementListInto parses statements until EOF or a closing brace,
// resynchronizing after each broken statement by skipping to the next
// statement boundary.
func (p *Parser) parseStatementListInto(scope *symbol.Scope) *ast.Block {
	block := &ast.Block{Scope: scope, LineNo: p.cur.Pos.Line}
	for p.cur.Type != lexer.EOF && !p.isSymbol("}") {
		node, ok := p.parseStatementRecovering()
		if ok && node != nil {
			block.Children = append(block.Children, node)
		}
		if !ok {
			p.resync()
		}
	}
	return block
}

// resync advances past tokens until a statement boundary so parsing can
// continue after an error: it consumes a `;`, stops in front of a `}`, or
// stops at EOF. This is the concession that lets this parser accumulate multiple
// diagnostics instead of aborting outright, unlike the original source's
// Parser.hpp which calls exit(1) on the first error.
func (p *Parser) resync() {
	for p.cur.Type != lexer.EOF {
		if p.isSymbol(";") {
			p.advance()
			return
		}
		if p.isSymbol("}") {
			return
		}
		p.advance()
	}
}

func (p *Parser) parseStatementRecovering() (node ast.Node, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseErr := r.(parseError); isParseErr {
				ok = false
				return
			}
			panic(r)
		}
	}()
	node = p.parseStatement()
	ok = true
	return
}

// parseStatement dispatches on the current token per spec.md §4.2.1.
func (p *Parser) parseStatement() ast.Node {
	line := p.cur.Pos.Line

	switch {
	case p.isKeyword("IF"):
		return p.parseIf()
	case p.isKeyword("WHILE"):
		return p.parseWhile()
	case p.isKeyword("BREAK"):
		p.advance()
		p.expectSymbol(";")
		return &ast.Leaf{Sym: symbol.NewSpecial(symbol.SpecialBreak), LineNo: line}
	case p.isKeyword("CONTINUE"):
		p.advance()
		p.expectSymbol(";")
		return &ast.Leaf{Sym: symbol.NewSpecial(symbol.SpecialContinue), LineNo: line}
	case p.isKeyword("RETURN"):
		return p.parseReturn(line)
	case p.isKeyword("FUNCTION"):
		return p.parseFunctionDef(line)
	case p.isSymbol("@"):
		return p.parseEvent(line)
	case p.isSymbol("{"):
		return p.parseBraceBlock()
	case p.cur.Type == lexer.KEYWORD:
		p.fail("reserved word %q cannot start a statement", p.cur.Literal)
	case p.cur.Type == lexer.IDENT && p.isTypeName(p.cur.Literal):
		return p.parseDeclaration(line)
	default:
		expr := p.parseExpression(precAssign)
		p.expectSymbol(";")
		return expr
	}
	return nil
}

func (p *Parser) isTypeName(name string) bool {
	if name == "Var" || name == "Struct" {
		return true
	}
	_, ok := p.scope().Types().Lookup(name)
	return ok
}

func (p *Parser) parseBraceBlock() *ast.Block {
	line := p.cur.Pos.Line
	p.expectSymbol("{")
	child := symbol.NewChild(p.scope())
	p.pushScope(child)
	block := p.parseStatementListInto(child)
	block.LineNo = line
	p.popScope()
	p.expectSymbol("}")
	return block
}

func (p *Parser) parseIf() ast.Node {
	line := p.cur.Pos.Line
	p.advance() // IF
	p.expectSymbol("(")
	cond := p.parseExpression(precAssign)
	p.expectSymbol(")")
	thenNode := p.parseStatement()
	var elseNode ast.Node
	if p.isKeyword("ELSE") {
		p.advance()
		elseNode = p.parseStatement()
	}
	return &ast.If{Cond: cond, Then: thenNode, Else: elseNode, LineNo: line}
}

func (p *Parser) parseWhile() ast.Node {
	line := p.cur.Pos.Line
	p.advance() // WHILE
	p.expectSymbol("(")
	cond := p.parseExpression(precAssign)
	p.expectSymbol(")")
	body := p.parseStatement()
	return &ast.While{Cond: cond, Body: body, LineNo: line}
}

func (p *Parser) parseReturn(line int) ast.Node {
	p.advance() // RETURN
	if p.isSymbol(";") {
		p.advance()
		return &ast.Return{LineNo: line}
	}
	val := p.parseExpression(precAssign)
	p.expectSymbol(";")
	return &ast.Return{Value: val, LineNo: line}
}

// parseEvent parses `@signalName(params...) action` (spec.md §4.2.1,
// §4.5), grounded in EventManager::Action. The signal must already be
// declared by the host (validated against p.events).
func (p *Parser) parseEvent(line int) ast.Node {
	p.advance() // '@'
	if p.cur.Type != lexer.IDENT {
		p.fail("expected signal name after '@', found %s", p.cur)
	}
	name := p.cur.Literal
	p.advance()
	if p.events == nil || !p.events.HasSignal(name) {
		p.fail("unknown signal %q", name)
	}

	p.expectSymbol("(")
	var params []ast.Node
	if !p.isSymbol(")") {
		params = append(params, p.parseExpression(precOr))
		for p.isSymbol(",") {
			p.advance()
			params = append(params, p.parseExpression(precOr))
		}
	}
	p.expectSymbol(")")

	action := p.parseStatement()
	return &ast.Event{Name: name, Action: action, Args: params, LineNo: line}
}

// parseFunctionDef parses `FUNCTION returnType name(paramType p1, …) {
// body }` (spec.md §4.2.1). Only the dynamic `Var` type is supported for
// parameters and the return type.
func (p *Parser) parseFunctionDef(line int) ast.Node {
	p.advance() // FUNCTION
	if !(p.cur.Type == lexer.IDENT && p.cur.Literal == "Var") {
		p.fail("user-defined functions only support 'Var' as a return type, found %s", p.cur)
	}
	p.advance()

	if p.cur.Type != lexer.IDENT {
		p.fail("expected function name, found %s", p.cur)
	}
	name := p.cur.Literal
	p.advance()

	p.expectSymbol("(")
	declScope := symbol.NewChild(p.scope())
	var params []string
	var paramSyms []*symbol.Symbol
	if !p.isSymbol(")") {
		for {
			if !(p.cur.Type == lexer.IDENT && p.cur.Literal == "Var") {
				p.fail("function parameters must be declared 'Var', found %s", p.cur)
			}
			p.advance()
			if p.cur.Type != lexer.IDENT {
				p.fail("expected parameter name, found %s", p.cur)
			}
			pname := p.cur.Literal
			p.advance()
			psym := symbol.NewNumVar(pname, 0, "")
			if err := declScope.Add(psym); err != nil {
				p.errorf("%v", err)
			}
			params = append(params, pname)
			paramSyms = append(paramSyms, psym)
			if !p.isSymbol(",") {
				break
			}
			p.advance()
		}
	}
	p.expectSymbol(")")

	p.pushScope(declScope)
	p.expectSymbol("{")
	body := p.parseStatementListInto(declScope)
	p.expectSymbol("}")
	p.popScope()
	body.LineNo = line

	hook := p.hook
	call := func(args []*symbol.Symbol) *symbol.Symbol {
		for i, psym := range paramSyms {
			if err := psym.CopyValue(args[i]); err != nil {
				return symbol.NewError("binding parameter %q of %q: %v", psym.Name, name, err)
			}
		}
		if hook == nil || hook.Eval == nil {
			return symbol.NewError("function %q called before the evaluator was wired up", name)
		}
		result, err := hook.Eval(body)
		if err != nil {
			return symbol.NewError("%v", err)
		}
		if result != nil && result.IsReturn() && result.Payload != nil {
			return result.Payload
		}
		return symbol.NewTempNum(0)
	}

	fnSym := symbol.NewFunctionSymbol(name, len(params), symbol.ValueNumeric, call)
	if err := p.scope().Add(fnSym); err != nil {
		p.errorf("%v", err)
	}
	return nil
}

// parseDeclaration parses the type-annotated declaration forms of
// spec.md §4.2.1: `Var name [= expr];`, `Struct name { ... }`, and the
// host-type equivalents.
func (p *Parser) parseDeclaration(line int) ast.Node {
	typeName := p.cur.Literal
	p.advance()

	if p.cur.Type != lexer.IDENT {
		p.fail("expected identifier after type %q, found %s", typeName, p.cur)
	}
	name := p.cur.Literal
	p.advance()

	switch {
	case typeName == "Var":
		return p.parseVarDeclaration(name, line)
	case typeName == "Struct":
		return p.parseStructDeclaration(name, line)
	default:
		return p.parseObjectDeclaration(typeName, name, line)
	}
}

func (p *Parser) parseVarDeclaration(name string, line int) ast.Node {
	sym := symbol.NewNumVar(name, 0, "")
	if err := p.scope().Add(sym); err != nil {
		p.errorf("%v", err)
	}
	if !p.isSymbol("=") {
		p.expectSymbol(";")
		return nil
	}
	p.advance()
	rhs := p.parseExpression(precOr)
	p.expectSymbol(";")
	return &ast.Assign{LHS: &ast.Leaf{Sym: sym, LineNo: line}, RHS: rhs, LineNo: line}
}

func (p *Parser) parseStructDeclaration(name string, line int) ast.Node {
	childScope := symbol.NewChild(p.scope())
	scopeSym := &symbol.Symbol{Name: name, Kind: symbol.KindScope, ScopeVal: childScope}
	childScope.SetOwner(scopeSym)
	if err := p.scope().Add(scopeSym); err != nil {
		p.errorf("%v", err)
	}
	if !p.isSymbol("{") {
		p.fail("expected '{' to open struct %q, found %s", name, p.cur)
	}
	p.advance()
	p.pushScope(childScope)
	body := p.parseStatementListInto(childScope)
	p.popScope()
	p.expectSymbol("}")
	body.LineNo = line
	return body
}

func (p *Parser) parseObjectDeclaration(typeName, name string, line int) ast.Node {
	typeInfo, ok := p.scope().Types().Lookup(typeName)
	if !ok {
		p.fail("unknown type %q", typeName)
	}
	childScope := symbol.NewChild(p.scope())
	objSym := &symbol.Symbol{
		Name: name, Kind: symbol.KindObject, ScopeVal: childScope,
		ObjectType: typeInfo, ObjectOwned: typeInfo.OwnedByDefault,
	}
	childScope.SetOwner(objSym)
	objSym.Host = typeInfo.Construct(name)
	// typeInfo.Members are not added to the object's scope, and neither
	// member access nor internal/eval resolves `.name` against them, so a
	// registered member function cannot be called from a script.
	if err := p.scope().Add(objSym); err != nil {
		p.errorf("%v", err)
	}

	switch {
	case p.isSymbol("="):
		p.advance()
		rhs := p.parseExpression(precOr)
		p.expectSymbol(";")
		return &ast.Assign{LHS: &ast.Leaf{Sym: objSym, LineNo: line}, RHS: rhs, LineNo: line}
	case p.isSymbol("{"):
		p.advance()
		p.pushScope(childScope)
		body := p.parseStatementListInto(childScope)
		p.popScope()
		p.expectSymbol("}")
		body.LineNo = line
		return body
	default:
		p.expectSymbol(";")
		return nil
	}
}

// --- Expressions --------------------------------------------------------

// parseExpression implements precedence climbing over the binary
// operators of spec.md §4.2.2, starting from a unary/postfix primary.
func (p *Parser) parseExpression(minPrec precedence) ast.Node {
	left := p.parseUnary()

	for {
		op, prec, isBinOp := p.peekBinOp()
		if !isBinOp || prec < minPrec {
			return left
		}
		line := p.cur.Pos.Line
		p.advance()

		nextMin := prec + 1
		if rightAssoc[op] {
			nextMin = prec
		}
		right := p.parseExpression(nextMin)

		if op == "=" {
			if !isAssignable(left) {
				p.errorf("left-hand side of '=' is not an assignable variable")
			}
			left = &ast.Assign{LHS: left, RHS: right, LineNo: line}
		} else {
			left = &ast.BinaryOp{Op: op, Left: left, Right: right, LineNo: line}
		}
	}
}

func isAssignable(n ast.Node) bool {
	leaf, ok := n.(*ast.Leaf)
	if !ok {
		return false
	}
	return leaf.Sym != nil && !leaf.Sym.Temporary && !leaf.Sym.IsFunction()
}

func (p *Parser) peekBinOp() (string, precedence, bool) {
	if p.cur.Type != lexer.SYMBOL {
		return "", precNone, false
	}
	prec, ok := binOpPrecedence[p.cur.Literal]
	return p.cur.Literal, prec, ok
}

// parseUnary handles the prefix operators of spec.md §4.2.2 level 9, then
// defers to parsePostfix for level 10.
func (p *Parser) parseUnary() ast.Node {
	if p.isSymbol("-") || p.isSymbol("+") || p.isSymbol("!") {
		op := p.cur.Literal
		line := p.cur.Pos.Line
		p.advance()
		operand := p.parseUnary()
		return &ast.UnaryOp{Op: op, Operand: operand, LineNo: line}
	}
	return p.parsePostfix()
}

// parsePostfix handles call, member access (`.`), and namespace access
// (`:`) per spec.md §4.2.2 level 10. Member/namespace access resolve
// fully at parse time, in keeping with §4.2.3's framing of name
// resolution as a parser activity: the chain collapses to a single Leaf
// wrapping the final resolved Symbol.
func (p *Parser) parsePostfix() ast.Node {
	node := p.parsePrimary()

	for {
		switch {
		case p.isSymbol("("):
			node = p.parseCall(node)
		case p.cur.Type == lexer.DOTS && p.cur.Literal == ".":
			line := p.cur.Pos.Line
			p.advance()
			node = p.parseMemberAccess(node, line)
		case p.isSymbol(":"):
			line := p.cur.Pos.Line
			p.advance()
			node = p.parseBuiltinAccess(node, line)
		case p.isSymbol("["):
			p.fail("indexed access '[...]' is not implemented")
		default:
			return node
		}
	}
}

func (p *Parser) parseCall(fn ast.Node) ast.Node {
	line := p.cur.Pos.Line
	p.advance() // '('
	var args []ast.Node
	if !p.isSymbol(")") {
		args = append(args, p.parseExpression(precOr))
		for p.isSymbol(",") {
			p.advance()
			args = append(args, p.parseExpression(precOr))
		}
	}
	p.expectSymbol(")")
	return &ast.Call{Fn: fn, Args: args, LineNo: line}
}

func (p *Parser) parseMemberAccess(base ast.Node, line int) ast.Node {
	if p.cur.Type != lexer.IDENT {
		p.fail("expected member name after '.', found %s", p.cur)
	}
	name := p.cur.Literal
	p.advance()

	leaf, ok := base.(*ast.Leaf)
	if !ok || leaf.Sym == nil || (!leaf.Sym.IsScope() && !leaf.Sym.IsObject()) {
		p.fail("'%s' is not a struct or object; cannot access member %q", describeNode(base), name)
	}
	member, found := leaf.Sym.ScopeVal.GetLocal(name)
	if !found {
		p.fail("%q has no member %q", leaf.Sym.Name, name)
	}
	return &ast.Leaf{Sym: member, LineNo: line}
}

// parseBuiltinAccess resolves a `:name` reserved accessor (spec.md §6.2)
// against the base node's symbol. These are computed immediately, since
// by the time a `:name` suffix is parsed the base's scope/object
// structure is already fully declared.
func (p *Parser) parseBuiltinAccess(base ast.Node, line int) ast.Node {
	if p.cur.Type != lexer.IDENT || !reservedBuiltins[p.cur.Literal] {
		p.fail("expected a built-in accessor after ':', found %s", p.cur)
	}
	name := p.cur.Literal
	p.advance()

	leaf, ok := base.(*ast.Leaf)
	if !ok || leaf.Sym == nil {
		p.fail("':%s' requires a symbol on its left", name)
	}
	sym := leaf.Sym

	var result *symbol.Symbol
	switch name {
	case "scope_size":
		if !sym.IsScope() && !sym.IsObject() {
			p.fail("':scope_size' requires a struct or object")
		}
		result = symbol.NewTempNum(float64(len(sym.ScopeVal.Names())))
	case "names":
		if !sym.IsScope() && !sym.IsObject() {
			p.fail("':names' requires a struct or object")
		}
		result = symbol.NewTempStr(strings.Join(sym.ScopeVal.Names(), ","))
	case "string":
		result = symbol.NewTempStr(sym.AsString())
	case "value":
		result = symbol.NewTempNum(sym.AsDouble())
	case "is_string":
		result = symbol.NewTempNum(boolToNum(sym.IsString()))
	case "is_value":
		result = symbol.NewTempNum(boolToNum(sym.IsNumeric()))
	case "is_struct":
		result = symbol.NewTempNum(boolToNum(sym.IsScope()))
	case "is_array":
		result = symbol.NewTempNum(0)
	case "type":
		result = symbol.NewTempStr(sym.Kind.String())
	}
	return &ast.Leaf{Sym: result, LineNo: line}
}

func boolToNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// parsePrimary handles literals and identifier chains (spec.md §4.2.2
// level 11, §4.2.3).
func (p *Parser) parsePrimary() ast.Node {
	line := p.cur.Pos.Line

	switch {
	case p.isSymbol("("):
		p.advance()
		expr := p.parseExpression(precAssign)
		p.expectSymbol(")")
		return expr

	case p.cur.Type == lexer.NUMBER:
		val, err := strconv.ParseFloat(p.cur.Literal, 64)
		if err != nil {
			p.fail("malformed number literal %q", p.cur.Literal)
		}
		p.advance()
		return &ast.Leaf{Sym: symbol.NewTempNum(val), LineNo: line}

	case p.cur.Type == lexer.STRING:
		val := decodeStringLiteral(p.cur.Literal)
		p.advance()
		return &ast.Leaf{Sym: symbol.NewTempStr(val), LineNo: line}

	case p.isKeyword("TRUE"):
		p.advance()
		return &ast.Leaf{Sym: symbol.NewTempNum(1), LineNo: line}

	case p.isKeyword("FALSE"):
		p.advance()
		return &ast.Leaf{Sym: symbol.NewTempNum(0), LineNo: line}

	case p.cur.Type == lexer.DOTS:
		return p.parseDottedIdentifier(line)

	case p.cur.Type == lexer.IDENT:
		name := p.cur.Literal
		p.advance()
		sym := p.scope().Lookup(name, true)
		if sym == nil {
			p.fail("'%s' does not exist as a parameter, variable, or type; current scope is '%s'", name, p.scope().OwnerName())
		}
		return &ast.Leaf{Sym: sym, LineNo: line}

	default:
		p.fail("unexpected token %s", p.cur)
	}
	return nil
}

// parseDottedIdentifier resolves a leading-dot identifier reference per
// spec.md §4.2.3: one leading `.` restricts the first lookup to the
// current scope (no outward scan); each dot beyond the first walks one
// scope toward the parent before that restricted lookup.
func (p *Parser) parseDottedIdentifier(line int) ast.Node {
	dots := p.cur.Literal
	p.advance()

	target := p.scope()
	for i := 0; i < len(dots)-1; i++ {
		if target.Parent() == nil {
			p.fail("'%s' walks past the root scope", dots)
		}
		target = target.Parent()
	}

	if p.cur.Type != lexer.IDENT {
		p.fail("expected identifier after '%s', found %s", dots, p.cur)
	}
	name := p.cur.Literal
	p.advance()

	sym, found := target.GetLocal(name)
	if !found {
		p.fail("'%s' does not exist in scope '%s'", name, target.OwnerName())
	}
	return &ast.Leaf{Sym: sym, LineNo: line}
}

func describeNode(n ast.Node) string {
	if leaf, ok := n.(*ast.Leaf); ok && leaf.Sym != nil {
		return fmt.Sprintf("%q", leaf.Sym.Name)
	}
	return "expression"
}

// decodeStringLiteral strips the surrounding quote characters from a raw
// STRING token (spec.md §6.1: `"…"`, `'…'`, `` `…` `` with C-like
// backslash escapes) and resolves escape sequences.
func decodeStringLiteral(raw string) string {
	if len(raw) < 2 {
		return ""
	}
	body := raw[1 : len(raw)-1]

	var out strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 >= len(body) {
			out.WriteByte(body[i])
			continue
		}
		i++
		switch body[i] {
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case 'r':
			out.WriteByte('\r')
		case '\\':
			out.WriteByte('\\')
		case '"':
			out.WriteByte('"')
		case '\'':
			out.WriteByte('\'')
		case '`':
			out.WriteByte('`')
		case '0':
			out.WriteByte(0)
		default:
			out.WriteByte(body[i])
		}
	}
	return out.String()
}
