package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindNull
	KindUndefined
	KindNaN
	KindHalf
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindNaN:
		return "NaN"
	case KindHalf:
		return "half"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. The set of
// implementations below is closed; every value is a small copyable struct.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

type UndefinedValue struct{}

func (UndefinedValue) Kind() Kind { return KindUndefined }

// NaNValue is a distinct tag, not a NumberValue carrying NaN.
type NaNValue struct{}

func (NaNValue) Kind() Kind { return KindNaN }

// HalfValue stores a number in the 16-bit floating point encoding.
type HalfValue struct {
	Bits uint16
}

func (v HalfValue) Kind() Kind { return KindHalf }

// HalfOf encodes a float64 into a HalfValue.
func HalfOf(f float64) HalfValue {
	return HalfValue{Bits: EncodeHalf(float32(f))}
}

//-----------------------------------------------------------------------------
// Conversions. All three are total: defined for every kind, never failing.
//-----------------------------------------------------------------------------

// ToNumber converts any value to a float64.
func ToNumber(v Value) float64 {
	switch val := v.(type) {
	case NumberValue:
		return val.Val
	case HalfValue:
		return float64(DecodeHalf(val.Bits))
	case StringValue:
		return parseLeadingNumber(val.Val)
	case BoolValue:
		if val.Val {
			return 1.0
		}
		return 0.0
	case NullValue, UndefinedValue, NaNValue:
		return 0.0
	default:
		return 0.0
	}
}

// ToString converts any value to its text form.
func ToString(v Value) string {
	switch val := v.(type) {
	case NumberValue:
		return formatNumber(val.Val)
	case HalfValue:
		return formatNumber(float64(DecodeHalf(val.Bits)))
	case StringValue:
		return val.Val
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case NullValue:
		return "null"
	case UndefinedValue:
		return "undefined"
	case NaNValue:
		return "NaN"
	default:
		return "null"
	}
}

// ToBool converts any value to its truthiness.
func ToBool(v Value) bool {
	switch val := v.(type) {
	case BoolValue:
		return val.Val
	case NumberValue:
		return val.Val != 0.0
	case HalfValue:
		return DecodeHalf(val.Bits) != 0.0
	case StringValue:
		return val.Val != ""
	case NullValue, UndefinedValue, NaNValue:
		return false
	default:
		return false
	}
}

//-----------------------------------------------------------------------------
// Equality
//-----------------------------------------------------------------------------

// payloadClass groups kinds by the payload they carry: Number, Half and NaN
// carry a float64; String carries text; Bool, Null and Undefined carry a bool
// (false for the latter two). Loose equality compares only this payload.
type payloadClass int

const (
	payloadNumber payloadClass = iota
	payloadString
	payloadBool
)

func payloadOf(v Value) (payloadClass, float64, string, bool) {
	switch val := v.(type) {
	case NumberValue:
		return payloadNumber, val.Val, "", false
	case HalfValue:
		return payloadNumber, float64(DecodeHalf(val.Bits)), "", false
	case NaNValue:
		return payloadNumber, math.NaN(), "", false
	case StringValue:
		return payloadString, 0, val.Val, false
	case BoolValue:
		return payloadBool, 0, "", val.Val
	default: // Null, Undefined
		return payloadBool, 0, "", false
	}
}

func payloadEqual(a, b Value) bool {
	ca, na, sa, ba := payloadOf(a)
	cb, nb, sb, bb := payloadOf(b)
	if ca != cb {
		return false
	}
	switch ca {
	case payloadNumber:
		return na == nb // NaN payloads compare unequal
	case payloadString:
		return sa == sb
	default:
		return ba == bb
	}
}

// LooseEquals implements `==`: payload-only comparison.
func LooseEquals(a, b Value) bool {
	return payloadEqual(a, b)
}

// StrictEquals implements `===`: tag and payload must both match.
func StrictEquals(a, b Value) bool {
	return a.Kind() == b.Kind() && payloadEqual(a, b)
}

//-----------------------------------------------------------------------------
// Helpers
//-----------------------------------------------------------------------------

func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// parseLeadingNumber parses the longest numeric prefix of s, returning 0.0
// when no prefix exists. It never fails.
func parseLeadingNumber(s string) float64 {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	seenDigit := false
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		seenDigit = true
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			seenDigit = true
		}
	}
	if seenDigit && end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		expEnd := end + 1
		if expEnd < len(s) && (s[expEnd] == '+' || s[expEnd] == '-') {
			expEnd++
		}
		expDigits := false
		for expEnd < len(s) && s[expEnd] >= '0' && s[expEnd] <= '9' {
			expEnd++
			expDigits = true
		}
		if expDigits {
			end = expEnd
		}
	}
	if !seenDigit {
		return 0.0
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0.0
	}
	return f
}
