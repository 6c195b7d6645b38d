package interpreter

import (
	"math"
	"math/rand"
	"strings"

	"anyts/interpreter-go/pkg/runtime"
)

// installBuiltins registers the native callables and seeds the standard
// constants into a fresh context.
func (in *Interpreter) installBuiltins(ctx *Context) {
	ctx.Env.Set("NaN", runtime.NaNValue{})
	ctx.Env.Set("undefined", runtime.UndefinedValue{})
	ctx.Env.Set("Math.PI", in.number(math.Pi))
	ctx.Env.Set("Math.E", in.number(math.E))

	ctx.Builtins["console.log"] = func(args []runtime.Value) runtime.Value {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = runtime.ToString(arg)
		}
		in.host.PrintLine(strings.Join(parts, " "))
		return runtime.UndefinedValue{}
	}

	ctx.Builtins["console.readLine"] = func(args []runtime.Value) runtime.Value {
		line, ok := in.host.ReadLine()
		if !ok {
			return runtime.UndefinedValue{}
		}
		return runtime.StringValue{Val: line}
	}

	in.installMath(ctx)
	in.installOS(ctx)

	ctx.Builtins["sizeof"] = func(args []runtime.Value) runtime.Value {
		if len(args) == 0 {
			return in.number(0)
		}
		return in.number(float64(valueSize(args[0])))
	}

	// assert re-evaluates its first argument as an expression against the
	// defining context, so `assert("x > 0")` sees current variables.
	ctx.Builtins["assert"] = func(args []runtime.Value) runtime.Value {
		if len(args) == 0 {
			in.host.PrintLine("Error: assert() called with no arguments")
			return runtime.BoolValue{Val: false}
		}
		cond := in.evaluate(runtime.ToString(args[0]), ctx.Env, in.mergedCallables(ctx))
		if !runtime.ToBool(cond) {
			msg := "Assertion failed"
			if len(args) > 1 {
				msg += ": " + runtime.ToString(args[1])
			}
			in.host.PrintLine(msg)
			return runtime.BoolValue{Val: false}
		}
		return runtime.BoolValue{Val: true}
	}
}

// unary adapts a float function into a builtin; missing arguments produce
// the given fallback value.
func (in *Interpreter) unary(fallback runtime.Value, fn func(float64) float64) Builtin {
	return func(args []runtime.Value) runtime.Value {
		if len(args) == 0 {
			return fallback
		}
		return in.number(fn(runtime.ToNumber(args[0])))
	}
}

func (in *Interpreter) installMath(ctx *Context) {
	nan := runtime.Value(runtime.NaNValue{})
	zero := in.number(0)

	ctx.Builtins["Math.sqrt"] = in.unary(nan, math.Sqrt)
	ctx.Builtins["Math.sin"] = in.unary(nan, math.Sin)
	ctx.Builtins["Math.cos"] = in.unary(nan, math.Cos)
	ctx.Builtins["Math.tan"] = in.unary(nan, math.Tan)
	ctx.Builtins["Math.abs"] = in.unary(nan, math.Abs)
	ctx.Builtins["Math.floor"] = in.unary(zero, math.Floor)
	ctx.Builtins["Math.round"] = in.unary(zero, math.Round)
	ctx.Builtins["Math.ceil"] = in.unary(zero, math.Ceil)
	ctx.Builtins["Math.trunc"] = in.unary(zero, math.Trunc)
	ctx.Builtins["Math.exp"] = in.unary(zero, math.Exp)
	ctx.Builtins["Math.log"] = in.unary(zero, math.Log)
	ctx.Builtins["Math.atan"] = in.unary(zero, math.Atan)
	ctx.Builtins["Math.asin"] = in.unary(zero, math.Asin)
	ctx.Builtins["Math.acos"] = in.unary(zero, math.Acos)

	ctx.Builtins["Math.pow"] = func(args []runtime.Value) runtime.Value {
		if len(args) < 2 {
			return runtime.NaNValue{}
		}
		return in.number(math.Pow(runtime.ToNumber(args[0]), runtime.ToNumber(args[1])))
	}

	ctx.Builtins["Math.atan2"] = func(args []runtime.Value) runtime.Value {
		if len(args) < 2 {
			return in.number(0)
		}
		return in.number(math.Atan2(runtime.ToNumber(args[0]), runtime.ToNumber(args[1])))
	}

	ctx.Builtins["Math.random"] = func(args []runtime.Value) runtime.Value {
		return in.number(rand.Float64())
	}

	ctx.Builtins["Math.max"] = func(args []runtime.Value) runtime.Value {
		m := math.Inf(-1)
		for _, arg := range args {
			m = math.Max(m, runtime.ToNumber(arg))
		}
		return in.number(m)
	}

	ctx.Builtins["Math.min"] = func(args []runtime.Value) runtime.Value {
		m := math.Inf(1)
		for _, arg := range args {
			m = math.Min(m, runtime.ToNumber(arg))
		}
		return in.number(m)
	}
}

// installOS exposes the platform collaborator to scripts as dotted builtins,
// mirroring the console.log/Math.* naming.
func (in *Interpreter) installOS(ctx *Context) {
	ctx.Builtins["os.platform"] = func(args []runtime.Value) runtime.Value {
		return runtime.StringValue{Val: in.host.PlatformName()}
	}
	ctx.Builtins["os.millis"] = func(args []runtime.Value) runtime.Value {
		return in.number(float64(in.host.Millis()))
	}
	ctx.Builtins["os.sleep"] = func(args []runtime.Value) runtime.Value {
		if len(args) > 0 {
			ms := runtime.ToNumber(args[0])
			if ms > 0 {
				in.host.SleepMillis(uint64(ms))
			}
		}
		return runtime.UndefinedValue{}
	}
	ctx.Builtins["os.cwd"] = func(args []runtime.Value) runtime.Value {
		return runtime.StringValue{Val: in.host.WorkingDirectory()}
	}
	ctx.Builtins["os.chdir"] = func(args []runtime.Value) runtime.Value {
		if len(args) == 0 {
			return runtime.BoolValue{Val: false}
		}
		return runtime.BoolValue{Val: in.host.SetWorkingDirectory(runtime.ToString(args[0]))}
	}
	ctx.Builtins["os.fileExists"] = func(args []runtime.Value) runtime.Value {
		if len(args) == 0 {
			return runtime.BoolValue{Val: false}
		}
		return runtime.BoolValue{Val: in.host.FileExists(runtime.ToString(args[0]))}
	}
	ctx.Builtins["os.readFile"] = func(args []runtime.Value) runtime.Value {
		if len(args) == 0 {
			return runtime.UndefinedValue{}
		}
		data, ok := in.host.ReadFile(runtime.ToString(args[0]))
		if !ok {
			return runtime.UndefinedValue{}
		}
		return runtime.StringValue{Val: data}
	}
	ctx.Builtins["os.writeFile"] = func(args []runtime.Value) runtime.Value {
		if len(args) < 2 {
			return runtime.BoolValue{Val: false}
		}
		ok := in.host.WriteFile(runtime.ToString(args[0]), runtime.ToString(args[1]))
		return runtime.BoolValue{Val: ok}
	}
	ctx.Builtins["os.listFiles"] = func(args []runtime.Value) runtime.Value {
		if len(args) == 0 {
			return runtime.UndefinedValue{}
		}
		names, ok := in.host.ListFiles(runtime.ToString(args[0]))
		if !ok {
			return runtime.UndefinedValue{}
		}
		return runtime.StringValue{Val: strings.Join(names, "\n")}
	}
}

// valueSize is the storage footprint a value reports through sizeof.
func valueSize(v runtime.Value) int {
	switch val := v.(type) {
	case runtime.StringValue:
		return len(val.Val)
	case runtime.NumberValue:
		return 8
	case runtime.HalfValue:
		return 2
	case runtime.BoolValue:
		return 1
	default:
		return 0
	}
}
