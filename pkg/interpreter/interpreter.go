// Package interpreter executes AnyTS scripts: a line-oriented statement
// executor on top of a postfix expression evaluator. Script-level errors are
// reported through the platform host and never abort the run.
package interpreter

import (
	"fmt"
	"strconv"
	"strings"

	"anyts/interpreter-go/pkg/platform"
	"anyts/interpreter-go/pkg/runtime"
)

// Interpreter drives statement execution against a Context.
type Interpreter struct {
	host        platform.Host
	halfNumbers bool
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithHalfNumbers stores numeric data in the 16-bit half-precision encoding
// instead of float64.
func WithHalfNumbers() Option {
	return func(in *Interpreter) { in.halfNumbers = true }
}

// New returns an interpreter writing through the given host.
func New(host platform.Host, opts ...Option) *Interpreter {
	in := &Interpreter{host: host}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// NewContext creates a fresh program context with the builtin registry
// installed and the standard constants seeded.
func (in *Interpreter) NewContext() *Context {
	ctx := &Context{
		Env:       runtime.NewEnvironment(),
		Builtins:  make(map[string]Builtin),
		Functions: make(map[string]*FunctionDef),
	}
	in.installBuiltins(ctx)
	return ctx
}

// ExecuteScript runs every line of the script against the context.
func (in *Interpreter) ExecuteScript(lines []string, ctx *Context) {
	in.runLines(lines, ctx)
}

func (in *Interpreter) runLines(lines []string, ctx *Context) {
	cur := NewLineCursor(lines)
	for {
		line, ok := cur.Next()
		if !ok {
			return
		}
		in.executeLine(line, cur, ctx)
	}
}

// executeLine dispatches one statement. Handlers for block statements read
// their bodies forward from cur.
func (in *Interpreter) executeLine(rawLine string, cur *LineCursor, ctx *Context) {
	line := strings.TrimSpace(rawLine)
	if line == "" || strings.HasPrefix(line, "//") {
		return
	}

	switch {
	case strings.HasPrefix(line, "let "):
		in.executeLet(line, ctx)
	case strings.HasPrefix(line, "function "):
		in.executeFunctionDef(line, cur, ctx)
	case strings.HasPrefix(line, "if "):
		in.executeIf(line, cur, ctx)
	case strings.HasPrefix(line, "class "):
		in.executeClass(line, cur, ctx)
	default:
		in.executeCall(line, ctx)
	}
}

// executeLet handles `let name = expr;` and `let name: Type = expr;`.
func (in *Interpreter) executeLet(line string, ctx *Context) {
	rest := strings.TrimPrefix(line, "let ")
	eq := strings.Index(rest, "=")
	if eq < 0 {
		in.host.PrintLine("SyntaxError: Missing '=' in let statement")
		return
	}
	name := strings.TrimSpace(rest[:eq])
	if name == "" {
		in.host.PrintLine("SyntaxError: Missing variable name")
		return
	}
	if colon := strings.Index(name, ":"); colon >= 0 {
		name = strings.TrimSpace(name[:colon])
	}
	expr := strings.TrimSuffix(strings.TrimSpace(rest[eq+1:]), ";")
	ctx.Env.Set(name, in.evaluate(expr, ctx.Env, in.mergedCallables(ctx)))
}

// executeFunctionDef handles `function name(p1: T1, ...) { ... }`, storing
// the body verbatim for re-interpretation at call time.
func (in *Interpreter) executeFunctionDef(header string, cur *LineCursor, ctx *Context) {
	nameStart := strings.Index(header, " ") + 1
	parenOpen := strings.Index(header[nameStart:], "(")
	if parenOpen < 0 {
		in.host.PrintLine("SyntaxError: malformed function definition")
		return
	}
	parenOpen += nameStart
	parenClose := strings.Index(header[parenOpen:], ")")
	if parenClose < 0 {
		in.host.PrintLine("SyntaxError: malformed function definition")
		return
	}
	parenClose += parenOpen

	name := strings.TrimSpace(header[nameStart:parenOpen])
	def := parseParams(header[parenOpen+1 : parenClose])
	def.BodyLines = readBlock(header[parenClose:], cur)
	ctx.Functions[name] = def
}

// parseParams splits a parameter list into names and type tags; omitted
// annotations default to any.
func parseParams(paramsStr string) *FunctionDef {
	def := &FunctionDef{}
	for _, param := range strings.Split(paramsStr, ",") {
		param = strings.TrimSpace(param)
		if param == "" {
			continue
		}
		name, typ := param, "any"
		if colon := strings.Index(param, ":"); colon >= 0 {
			name = strings.TrimSpace(param[:colon])
			typ = strings.TrimSpace(param[colon+1:])
		}
		def.Params = append(def.Params, name)
		def.ParamTypes = append(def.ParamTypes, typ)
	}
	return def
}

// executeIf handles `if (cond) { ... }` with an optional `else { ... }`.
func (in *Interpreter) executeIf(line string, cur *LineCursor, ctx *Context) {
	condStart := strings.Index(line, "(")
	condEnd := -1
	if condStart >= 0 {
		if rel := strings.Index(line[condStart:], ")"); rel >= 0 {
			condEnd = condStart + rel
		}
	}
	if condStart < 0 || condEnd < 0 {
		in.host.PrintLine("SyntaxError: malformed if statement")
		return
	}
	condExpr := strings.TrimSpace(line[condStart+1 : condEnd])
	condVal := in.evaluate(condExpr, ctx.Env, in.mergedCallables(ctx))

	if !strings.Contains(line[condEnd:], "{") {
		in.host.PrintLine("SyntaxError: if without block")
		return
	}
	block := readBlock(line[condEnd:], cur)

	if runtime.ToBool(condVal) {
		in.runLines(block, ctx)
		return
	}

	// Peek for an else clause. The read advances the cursor even when no
	// else follows: that line is consumed and dropped.
	next, ok := cur.Next()
	if !ok {
		return
	}
	if trimmed := strings.TrimSpace(next); strings.HasPrefix(trimmed, "else") {
		in.runLines(readBlock(trimmed, cur), ctx)
	}
}

// executeClass handles `class Name { ... }`. Only `static` members exist:
// methods register as user functions under Name.method, properties evaluate
// once and store under Name.prop.
func (in *Interpreter) executeClass(line string, cur *LineCursor, ctx *Context) {
	nameEnd := strings.Index(line, "{")
	if nameEnd < 0 {
		nameEnd = len(line)
	}
	className := strings.TrimSpace(line[len("class "):nameEnd])

	bodyCur := NewLineCursor(readBlock(line, cur))
	for {
		bl, ok := bodyCur.Next()
		if !ok {
			return
		}
		bl = strings.TrimSpace(bl)
		if !strings.HasPrefix(bl, "static ") {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(bl, "static "))

		paren := strings.Index(rest, "(")
		eq := strings.Index(rest, "=")
		switch {
		case paren >= 0 && (eq < 0 || paren < eq):
			// Static method.
			parenClose := strings.Index(rest[paren:], ")")
			if parenClose < 0 {
				continue
			}
			parenClose += paren
			def := parseParams(rest[paren+1 : parenClose])
			def.BodyLines = readBlock(rest[parenClose:], bodyCur)
			ctx.Functions[className+"."+strings.TrimSpace(rest[:paren])] = def
		case eq >= 0:
			// Static property.
			propName := className + "." + strings.TrimSpace(rest[:eq])
			expr := strings.TrimSuffix(strings.TrimSpace(rest[eq+1:]), ";")
			ctx.Env.Set(propName, in.evaluate(expr, ctx.Env, in.mergedCallables(ctx)))
		}
	}
}

// executeCall handles a bare statement-level call `name(arg1, ...)`. The
// return value is discarded. Lines that are not calls report an
// unrecognized-statement error and are skipped.
func (in *Interpreter) executeCall(line string, ctx *Context) {
	parenOpen := strings.Index(line, "(")
	parenClose := strings.LastIndex(line, ")")
	if parenOpen < 0 || parenClose < parenOpen {
		in.host.PrintLine("Error: Unrecognized statement: " + line)
		return
	}

	name := strings.TrimSpace(line[:parenOpen])
	args := make([]runtime.Value, 0)
	for _, arg := range splitArgs(line[parenOpen+1 : parenClose]) {
		args = append(args, in.resolveArg(arg, ctx))
	}

	if fn, ok := ctx.Builtins[name]; ok {
		fn(args)
		return
	}
	if def, ok := ctx.Functions[name]; ok {
		in.callFunction(ctx, name, def, args, true)
		return
	}
	in.host.PrintLine("Error: Unknown function '" + name + "'")
}

// splitArgs splits an argument list on top-level commas, respecting quoted
// strings and nested parentheses. Empty arguments are dropped.
func splitArgs(s string) []string {
	var args []string
	var cur strings.Builder
	inString := false
	var quote byte
	depth := 0

	flush := func() {
		if trimmed := strings.TrimSpace(cur.String()); trimmed != "" {
			args = append(args, trimmed)
		}
		cur.Reset()
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case !inString && (c == '"' || c == '\''):
			inString, quote = true, c
			cur.WriteByte(c)
		case inString && c == quote:
			inString = false
			cur.WriteByte(c)
		case !inString && c == '(':
			depth++
			cur.WriteByte(c)
		case !inString && c == ')':
			depth--
			cur.WriteByte(c)
		case !inString && depth == 0 && c == ',':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return args
}

// resolveArg resolves one statement-level call argument: keyword, numeric
// literal, quoted string, or a full expression (which covers variables;
// lookup misses yield Undefined).
func (in *Interpreter) resolveArg(arg string, ctx *Context) runtime.Value {
	switch arg {
	case "true":
		return runtime.BoolValue{Val: true}
	case "false":
		return runtime.BoolValue{Val: false}
	case "null":
		return runtime.NullValue{}
	}
	if f, err := strconv.ParseFloat(arg, 64); err == nil {
		return in.number(f)
	}
	if len(arg) >= 2 {
		if (arg[0] == '"' && arg[len(arg)-1] == '"') ||
			(arg[0] == '\'' && arg[len(arg)-1] == '\'') {
			return runtime.StringValue{Val: arg[1 : len(arg)-1]}
		}
	}
	return in.evaluate(arg, ctx.Env, in.mergedCallables(ctx))
}

// mergedCallables combines builtins with user functions wrapped as
// callables, for use inside expressions. Wrapped calls check arity but not
// parameter types; statement-level calls check both.
func (in *Interpreter) mergedCallables(ctx *Context) map[string]Builtin {
	callables := make(map[string]Builtin, len(ctx.Builtins)+len(ctx.Functions))
	for name, fn := range ctx.Builtins {
		callables[name] = fn
	}
	for name, def := range ctx.Functions {
		callables[name] = func(args []runtime.Value) runtime.Value {
			return in.callFunction(ctx, name, def, args, false)
		}
	}
	return callables
}

// callFunction invokes a user function against a full copy of the caller's
// context. Arity (and, for statement calls, parameter type) mismatches are
// reported and abort the call with Undefined. A body line beginning with
// `return` evaluates the rest of the line and ends the call immediately.
func (in *Interpreter) callFunction(ctx *Context, name string, def *FunctionDef, args []runtime.Value, checkTypes bool) runtime.Value {
	if len(args) != len(def.Params) {
		in.host.PrintLine(fmt.Sprintf("Error: Function '%s' expects %d arguments, got %d",
			name, len(def.Params), len(args)))
		return runtime.UndefinedValue{}
	}
	if checkTypes {
		for i, typ := range def.ParamTypes {
			if typ == "any" {
				continue
			}
			if !matchesType(typ, args[i]) {
				in.host.PrintLine(fmt.Sprintf("TypeError: Argument '%s' expected %s, got %s",
					def.Params[i], typ, runtime.ToString(args[i])))
				return runtime.UndefinedValue{}
			}
		}
	}

	local := ctx.Clone()
	for i, param := range def.Params {
		local.Env.Set(param, args[i])
	}

	cur := NewLineCursor(def.BodyLines)
	for {
		line, ok := cur.Next()
		if !ok {
			return runtime.UndefinedValue{}
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "return") {
			expr := strings.TrimSuffix(strings.TrimSpace(trimmed[len("return"):]), ";")
			return in.evaluate(expr, local.Env, in.mergedCallables(local))
		}
		in.executeLine(line, cur, local)
	}
}

// matchesType compares a declared parameter type tag against a runtime tag.
func matchesType(typ string, v runtime.Value) bool {
	switch typ {
	case "number":
		return v.Kind() == runtime.KindNumber || v.Kind() == runtime.KindHalf
	case "string":
		return v.Kind() == runtime.KindString
	case "boolean":
		return v.Kind() == runtime.KindBool
	default:
		return false
	}
}
