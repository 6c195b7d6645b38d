package interpreter

import (
	"math"
	"strconv"

	"anyts/interpreter-go/pkg/parser"
	"anyts/interpreter-go/pkg/runtime"
)

// evaluate compiles an expression and runs its postfix form against the
// given environment and callable table. It always produces a value; the
// worst malformed input yields Undefined.
func (in *Interpreter) evaluate(expr string, env *runtime.Environment, callables map[string]Builtin) runtime.Value {
	return in.run(parser.CompileExpression(expr), env, callables)
}

// run executes a postfix instruction sequence with an operand stack.
// Popping an empty stack produces Undefined so that missing operands
// degrade instead of failing.
func (in *Interpreter) run(prog []parser.Instruction, env *runtime.Environment, callables map[string]Builtin) runtime.Value {
	var stack []runtime.Value
	push := func(v runtime.Value) { stack = append(stack, v) }
	pop := func() runtime.Value {
		if len(stack) == 0 {
			return runtime.UndefinedValue{}
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}

	pendingArgc := 0
	for _, ins := range prog {
		switch ins.Kind {
		case parser.InstrOperator:
			b := pop()
			a := pop()
			push(in.applyOperator(ins.Op, a, b))

		case parser.InstrArgCount:
			pendingArgc = ins.Argc

		case parser.InstrCall:
			args := make([]runtime.Value, pendingArgc)
			for j := pendingArgc - 1; j >= 0; j-- {
				args[j] = pop()
			}
			pendingArgc = 0
			if fn, ok := callables[ins.Name]; ok {
				push(fn(args))
			} else {
				push(runtime.UndefinedValue{})
			}

		case parser.InstrOperand:
			push(in.operandValue(ins.Tok, env))
		}
	}

	if len(stack) == 0 {
		return runtime.UndefinedValue{}
	}
	return stack[len(stack)-1]
}

// operandValue resolves one operand token to a runtime value.
func (in *Interpreter) operandValue(tok parser.Token, env *runtime.Environment) runtime.Value {
	text := tok.Text
	if tok.Kind == parser.TokenString && len(text) > 0 {
		quote := text[0]
		if len(text) >= 2 && text[len(text)-1] == quote {
			return runtime.StringValue{Val: text[1 : len(text)-1]}
		}
		// Unterminated literal: keep whatever followed the quote.
		return runtime.StringValue{Val: text[1:]}
	}

	switch text {
	case "true":
		return runtime.BoolValue{Val: true}
	case "false":
		return runtime.BoolValue{Val: false}
	case "undefined", "null":
		return runtime.UndefinedValue{}
	case "NaN":
		return runtime.NaNValue{}
	}

	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return in.number(f)
	}
	return env.Lookup(text)
}

// applyOperator implements the binary operator semantics. `+` concatenates
// when either side is a string; `/` turns division by zero into the NaN
// value; `&&` and `||` combine truthiness of both already-evaluated sides.
// Unknown operators produce Undefined.
func (in *Interpreter) applyOperator(op string, a, b runtime.Value) runtime.Value {
	switch op {
	case "+":
		if a.Kind() == runtime.KindString || b.Kind() == runtime.KindString {
			return runtime.StringValue{Val: runtime.ToString(a) + runtime.ToString(b)}
		}
		return in.number(runtime.ToNumber(a) + runtime.ToNumber(b))
	case "-":
		return in.number(runtime.ToNumber(a) - runtime.ToNumber(b))
	case "*":
		return in.number(runtime.ToNumber(a) * runtime.ToNumber(b))
	case "/":
		if runtime.ToNumber(b) == 0 {
			return runtime.NaNValue{}
		}
		return in.number(runtime.ToNumber(a) / runtime.ToNumber(b))
	case "%":
		return in.number(math.Mod(runtime.ToNumber(a), runtime.ToNumber(b)))
	case "**":
		return in.number(math.Pow(runtime.ToNumber(a), runtime.ToNumber(b)))
	case "==":
		return runtime.BoolValue{Val: runtime.LooseEquals(a, b)}
	case "!=":
		return runtime.BoolValue{Val: !runtime.LooseEquals(a, b)}
	case "===":
		return runtime.BoolValue{Val: runtime.StrictEquals(a, b)}
	case "!==":
		return runtime.BoolValue{Val: !runtime.StrictEquals(a, b)}
	case "<":
		return runtime.BoolValue{Val: runtime.ToNumber(a) < runtime.ToNumber(b)}
	case ">":
		return runtime.BoolValue{Val: runtime.ToNumber(a) > runtime.ToNumber(b)}
	case "<=":
		return runtime.BoolValue{Val: runtime.ToNumber(a) <= runtime.ToNumber(b)}
	case ">=":
		return runtime.BoolValue{Val: runtime.ToNumber(a) >= runtime.ToNumber(b)}
	case "&&":
		return runtime.BoolValue{Val: runtime.ToBool(a) && runtime.ToBool(b)}
	case "||":
		return runtime.BoolValue{Val: runtime.ToBool(a) || runtime.ToBool(b)}
	default:
		return runtime.UndefinedValue{}
	}
}

// number wraps a float in the interpreter's numeric representation: a
// double-precision NumberValue normally, a HalfValue in half-precision mode.
// Arithmetic in half mode therefore decodes, operates in float, re-encodes.
func (in *Interpreter) number(f float64) runtime.Value {
	if in.halfNumbers {
		return runtime.HalfOf(f)
	}
	return runtime.NumberValue{Val: f}
}
