package runtime

import (
	"math"
	"testing"
)

func TestToNumberTable(t *testing.T) {
	cases := []struct {
		name string
		in   Value
		want float64
	}{
		{"number", NumberValue{Val: 4.5}, 4.5},
		{"half", HalfOf(2.0), 2.0},
		{"bool true", BoolValue{Val: true}, 1.0},
		{"bool false", BoolValue{Val: false}, 0.0},
		{"numeric string", StringValue{Val: "12.25"}, 12.25},
		{"prefixed string", StringValue{Val: "  3.5abc"}, 3.5},
		{"exponent string", StringValue{Val: "1e3"}, 1000},
		{"non-numeric string", StringValue{Val: "abc"}, 0.0},
		{"empty string", StringValue{Val: ""}, 0.0},
		{"null", NullValue{}, 0.0},
		{"undefined", UndefinedValue{}, 0.0},
		{"nan tag", NaNValue{}, 0.0},
	}
	for _, tc := range cases {
		if got := ToNumber(tc.in); got != tc.want {
			t.Errorf("%s: ToNumber = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestToStringTable(t *testing.T) {
	cases := []struct {
		name string
		in   Value
		want string
	}{
		{"integer-valued number", NumberValue{Val: 6}, "6"},
		{"fractional number", NumberValue{Val: 0.5}, "0.5"},
		{"nan payload", NumberValue{Val: math.NaN()}, "NaN"},
		{"infinity", NumberValue{Val: math.Inf(1)}, "Infinity"},
		{"string", StringValue{Val: "hi"}, "hi"},
		{"bool true", BoolValue{Val: true}, "true"},
		{"bool false", BoolValue{Val: false}, "false"},
		{"null", NullValue{}, "null"},
		{"undefined", UndefinedValue{}, "undefined"},
		{"nan tag", NaNValue{}, "NaN"},
		{"half", HalfOf(1.5), "1.5"},
	}
	for _, tc := range cases {
		if got := ToString(tc.in); got != tc.want {
			t.Errorf("%s: ToString = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestToBoolTable(t *testing.T) {
	cases := []struct {
		name string
		in   Value
		want bool
	}{
		{"bool true", BoolValue{Val: true}, true},
		{"bool false", BoolValue{Val: false}, false},
		{"nonzero number", NumberValue{Val: -3}, true},
		{"zero number", NumberValue{Val: 0}, false},
		{"nonzero half", HalfOf(1), true},
		{"zero half", HalfOf(0), false},
		{"nonempty string", StringValue{Val: "0"}, true},
		{"empty string", StringValue{Val: ""}, false},
		{"null", NullValue{}, false},
		{"undefined", UndefinedValue{}, false},
		{"nan tag", NaNValue{}, false},
	}
	for _, tc := range cases {
		if got := ToBool(tc.in); got != tc.want {
			t.Errorf("%s: ToBool = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestLooseEquality(t *testing.T) {
	if !LooseEquals(NumberValue{Val: 1}, NumberValue{Val: 1}) {
		t.Errorf("1 == 1 should hold")
	}
	if LooseEquals(NumberValue{Val: 1}, StringValue{Val: "1"}) {
		t.Errorf("number and string payloads never compare equal")
	}
	// Null and Undefined both carry a false bool payload.
	if !LooseEquals(NullValue{}, UndefinedValue{}) {
		t.Errorf("null == undefined under loose comparison")
	}
	if !LooseEquals(BoolValue{Val: false}, NullValue{}) {
		t.Errorf("false == null under loose comparison")
	}
	if LooseEquals(NaNValue{}, NaNValue{}) {
		t.Errorf("NaN never equals NaN")
	}
}

func TestStrictEquality(t *testing.T) {
	if !StrictEquals(NumberValue{Val: 2}, NumberValue{Val: 2}) {
		t.Errorf("2 === 2 should hold")
	}
	if StrictEquals(NullValue{}, UndefinedValue{}) {
		t.Errorf("null !== undefined: tags differ")
	}
	if StrictEquals(BoolValue{Val: true}, NumberValue{Val: 1}) {
		t.Errorf("true !== 1: tags differ")
	}
	if StrictEquals(NaNValue{}, NaNValue{}) {
		t.Errorf("NaN !== NaN even with matching tags")
	}
	if !StrictEquals(StringValue{Val: "a"}, StringValue{Val: "a"}) {
		t.Errorf("equal strings compare strictly equal")
	}
}
