package interpreter

import (
	"math"
	"testing"

	"anyts/interpreter-go/pkg/runtime"
)

func evalIn(t *testing.T, in *Interpreter, ctx *Context, expr string) runtime.Value {
	t.Helper()
	return in.evaluate(expr, ctx.Env, in.mergedCallables(ctx))
}

func TestEvaluateArithmetic(t *testing.T) {
	in := New(newFakeHost())
	ctx := in.NewContext()

	cases := []struct {
		expr string
		want float64
	}{
		{"1 + 1", 2},
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 - 4 - 3", 3},
		{"7 % 3", 1},
		{"2 ** 10", 1024},
		{"2 ** 3 ** 2", 512}, // exponentiation groups right to left
		{"2 ** 2 ** 3", 256},
		{"-5 + 10", 5},
	}
	for _, tc := range cases {
		got := evalIn(t, in, ctx, tc.expr)
		num, ok := got.(runtime.NumberValue)
		if !ok {
			t.Fatalf("%q: expected number, got %#v", tc.expr, got)
		}
		if num.Val != tc.want {
			t.Fatalf("%q: got %v, want %v", tc.expr, num.Val, tc.want)
		}
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	in := New(newFakeHost())
	ctx := in.NewContext()

	got := evalIn(t, in, ctx, "5 / 0")
	if _, ok := got.(runtime.NaNValue); !ok {
		t.Fatalf("5 / 0: expected NaN, got %#v", got)
	}
}

func TestEvaluateStringConcat(t *testing.T) {
	in := New(newFakeHost())
	ctx := in.NewContext()

	cases := []struct {
		expr string
		want string
	}{
		{`"1" + 1`, "11"},
		{`1 + "1"`, "11"},
		{`"a" + "b" + "c"`, "abc"},
		{`"n=" + 2 * 3`, "n=6"},
	}
	for _, tc := range cases {
		got := evalIn(t, in, ctx, tc.expr)
		str, ok := got.(runtime.StringValue)
		if !ok {
			t.Fatalf("%q: expected string, got %#v", tc.expr, got)
		}
		if str.Val != tc.want {
			t.Fatalf("%q: got %q, want %q", tc.expr, str.Val, tc.want)
		}
	}
}

func TestEvaluateComparisons(t *testing.T) {
	in := New(newFakeHost())
	ctx := in.NewContext()

	cases := []struct {
		expr string
		want bool
	}{
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 > 4", false},
		{"4 >= 5", false},
		{"1 == 1", true},
		{"1 == 2", false},
		{`1 == "1"`, false}, // different payload classes
		{"null == undefined", true},
		{"null == false", true},
		{"NaN == NaN", false},
		{"1 === 1", true},
		// Both tokens evaluate to the Undefined value inside expressions,
		// so even strict equality holds here.
		{"null === undefined", true},
		{"1 != 2", true},
		{"1 !== 1", false},
		{"true && false", false},
		{"true || false", true},
		{"1 < 2 && 2 < 3", true},
	}
	for _, tc := range cases {
		got := evalIn(t, in, ctx, tc.expr)
		b, ok := got.(runtime.BoolValue)
		if !ok {
			t.Fatalf("%q: expected boolean, got %#v", tc.expr, got)
		}
		if b.Val != tc.want {
			t.Fatalf("%q: got %v, want %v", tc.expr, b.Val, tc.want)
		}
	}
}

func TestEvaluateVariables(t *testing.T) {
	in := New(newFakeHost())
	ctx := in.NewContext()
	ctx.Env.Set("x", runtime.NumberValue{Val: 4})

	got := evalIn(t, in, ctx, "x * x + 1")
	if num, ok := got.(runtime.NumberValue); !ok || num.Val != 17 {
		t.Fatalf("x * x + 1: got %#v", got)
	}

	// Unknown identifiers resolve to undefined instead of failing.
	got = evalIn(t, in, ctx, "missing")
	if _, ok := got.(runtime.UndefinedValue); !ok {
		t.Fatalf("missing: got %#v", got)
	}
}

func TestEvaluateBuiltinCalls(t *testing.T) {
	in := New(newFakeHost())
	ctx := in.NewContext()

	got := evalIn(t, in, ctx, "Math.sqrt(9)")
	if num, ok := got.(runtime.NumberValue); !ok || num.Val != 3 {
		t.Fatalf("Math.sqrt(9): got %#v", got)
	}

	got = evalIn(t, in, ctx, "Math.max(1, 5, 3)")
	if num, ok := got.(runtime.NumberValue); !ok || num.Val != 5 {
		t.Fatalf("Math.max(1, 5, 3): got %#v", got)
	}

	got = evalIn(t, in, ctx, "Math.pow(2, 8)")
	if num, ok := got.(runtime.NumberValue); !ok || num.Val != 256 {
		t.Fatalf("Math.pow(2, 8): got %#v", got)
	}

	got = evalIn(t, in, ctx, "1 + Math.abs(0 - 2) * 3")
	if num, ok := got.(runtime.NumberValue); !ok || num.Val != 7 {
		t.Fatalf("1 + Math.abs(0 - 2) * 3: got %#v", got)
	}

	got = evalIn(t, in, ctx, "Math.random()")
	if num, ok := got.(runtime.NumberValue); !ok || num.Val < 0 || num.Val >= 1 {
		t.Fatalf("Math.random(): got %#v", got)
	}

	// Unknown callables degrade to undefined.
	got = evalIn(t, in, ctx, "nothing(1, 2)")
	if _, ok := got.(runtime.UndefinedValue); !ok {
		t.Fatalf("nothing(1, 2): got %#v", got)
	}
}

func TestEvaluateConstants(t *testing.T) {
	in := New(newFakeHost())
	ctx := in.NewContext()

	got := evalIn(t, in, ctx, "Math.PI")
	if num, ok := got.(runtime.NumberValue); !ok || num.Val != math.Pi {
		t.Fatalf("Math.PI: got %#v", got)
	}

	got = evalIn(t, in, ctx, "NaN")
	if _, ok := got.(runtime.NaNValue); !ok {
		t.Fatalf("NaN: got %#v", got)
	}
}

func TestEvaluateHalfMode(t *testing.T) {
	in := New(newFakeHost(), WithHalfNumbers())
	ctx := in.NewContext()

	got := evalIn(t, in, ctx, "3 * 7")
	half, ok := got.(runtime.HalfValue)
	if !ok {
		t.Fatalf("3 * 7: expected half, got %#v", got)
	}
	if f := runtime.DecodeHalf(half.Bits); f != 21 {
		t.Fatalf("3 * 7 in half mode: got %v", f)
	}

	// Half precision truncates: 0.1 is not representable.
	got = evalIn(t, in, ctx, "0.1 + 0")
	half, ok = got.(runtime.HalfValue)
	if !ok {
		t.Fatalf("0.1 + 0: expected half, got %#v", got)
	}
	if f := runtime.DecodeHalf(half.Bits); f == 0.1 || f <= 0.099 || f >= 0.101 {
		t.Fatalf("0.1 in half mode: got %v", f)
	}
}

func TestEvaluateMalformedDegrades(t *testing.T) {
	in := New(newFakeHost())
	ctx := in.NewContext()

	for _, expr := range []string{"", "+", "1 +", "???"} {
		got := evalIn(t, in, ctx, expr)
		if got == nil {
			t.Fatalf("%q: evaluate returned nil", expr)
		}
	}
}
