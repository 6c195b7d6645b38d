package typechecker

import (
	"reflect"
	"strings"
	"testing"
)

func TestCheckSourceFlagsLiteralMismatch(t *testing.T) {
	source := strings.Join([]string{
		"function add(a: number, b: number) {",
		"return a + b",
		"}",
		`add("x", 3)`,
	}, "\n")

	got := CheckSource(source)
	want := []Finding{
		{Line: 4, Message: "Argument 1 to add should be a number"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("findings: %#v", got)
	}
}

func TestCheckSourceCleanScript(t *testing.T) {
	source := strings.Join([]string{
		"function greet(name: string, loud: boolean) {",
		"return name",
		"}",
		`greet("Ada", true)`,
	}, "\n")

	if got := CheckSource(source); got != nil {
		t.Fatalf("expected no findings, got %#v", got)
	}
}

func TestCheckSourceSkipsVariables(t *testing.T) {
	source := strings.Join([]string{
		"function add(a: number, b: number) {",
		"return a + b",
		"}",
		"let x = 1",
		"add(x, 2)",
	}, "\n")

	// x has unknown lexical shape, only the literal 2 is checkable.
	if got := CheckSource(source); got != nil {
		t.Fatalf("expected no findings, got %#v", got)
	}
}

func TestCheckSourceSkipsDefinitionLine(t *testing.T) {
	// The header itself contains `add(` but its parameters are not
	// literals, so it must not self-flag.
	source := "function add(a: number, b: number) {\nreturn a + b\n}"
	if got := CheckSource(source); got != nil {
		t.Fatalf("expected no findings, got %#v", got)
	}
}

func TestCheckSourceMultipleFindings(t *testing.T) {
	source := strings.Join([]string{
		"function pair(a: number, b: string) {",
		"return a",
		"}",
		`pair("x", 1)`,
	}, "\n")

	got := CheckSource(source)
	want := []Finding{
		{Line: 4, Message: "Argument 1 to pair should be a number"},
		{Line: 4, Message: "Argument 2 to pair should be a string"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("findings: %#v", got)
	}
}

func TestCheckSourceBooleanParam(t *testing.T) {
	source := strings.Join([]string{
		"function toggle(on: boolean) {",
		"return on",
		"}",
		"toggle(1)",
	}, "\n")

	got := CheckSource(source)
	want := []Finding{
		{Line: 4, Message: "Argument 1 to toggle should be a boolean"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("findings: %#v", got)
	}
}

func TestCheckSourceUnannotatedParamsUnchecked(t *testing.T) {
	source := strings.Join([]string{
		"function f(a, b) {",
		"return a",
		"}",
		`f("x", 1)`,
	}, "\n")

	if got := CheckSource(source); got != nil {
		t.Fatalf("expected no findings, got %#v", got)
	}
}
