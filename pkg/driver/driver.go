// Package driver ties the pieces together: it loads script sources through
// the platform host, runs the static type-check pre-pass, and feeds the
// lines to the interpreter. It also understands the optional script.yml
// project manifest.
package driver

import (
	"fmt"
	"strings"

	"anyts/interpreter-go/pkg/interpreter"
	"anyts/interpreter-go/pkg/platform"
	"anyts/interpreter-go/pkg/typechecker"
)

// Driver owns one interpreter and one long-lived context; successive runs
// share state, which is what the REPL relies on.
type Driver struct {
	host   platform.Host
	interp *interpreter.Interpreter
	ctx    *interpreter.Context
}

// New builds a driver writing through the given host.
func New(host platform.Host, opts ...interpreter.Option) *Driver {
	interp := interpreter.New(host, opts...)
	return &Driver{
		host:   host,
		interp: interp,
		ctx:    interp.NewContext(),
	}
}

// RunFile loads a script through the host, type-checks it, and executes it.
// It returns false when the file cannot be read or the pre-pass reports
// findings; the findings themselves go to the host.
func (d *Driver) RunFile(path string) bool {
	source, ok := d.host.ReadFile(path)
	if !ok {
		d.host.PrintLine("Error: Could not open file: " + path)
		return false
	}
	return d.RunSource(source)
}

// RunSource type-checks and executes full script text.
func (d *Driver) RunSource(source string) bool {
	if findings := typechecker.CheckSource(source); len(findings) > 0 {
		for _, f := range findings {
			d.host.PrintLine(fmt.Sprintf("Line %d: %s", f.Line, f.Message))
		}
		return false
	}
	d.interp.ExecuteScript(splitLines(source), d.ctx)
	return true
}

// RunString executes source without the type-check pre-pass. REPL input
// goes through here: a half-typed snippet should run, not be lint-gated.
func (d *Driver) RunString(source string) {
	d.interp.ExecuteScript(splitLines(source), d.ctx)
}

func splitLines(source string) []string {
	return strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
}
