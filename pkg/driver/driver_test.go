package driver

import (
	"reflect"
	"testing"
)

// stubHost serves files from a map and records printed lines.
type stubHost struct {
	out   []string
	files map[string]string
}

func newStubHost() *stubHost {
	return &stubHost{files: make(map[string]string)}
}

func (h *stubHost) Print(text string)     { h.out = append(h.out, text) }
func (h *stubHost) PrintLine(text string) { h.out = append(h.out, text) }
func (h *stubHost) ReadLine() (string, bool) {
	return "", false
}

func (h *stubHost) FileExists(path string) bool {
	_, ok := h.files[path]
	return ok
}

func (h *stubHost) ReadFile(path string) (string, bool) {
	data, ok := h.files[path]
	return data, ok
}

func (h *stubHost) WriteFile(path, data string) bool {
	h.files[path] = data
	return true
}

func (h *stubHost) ListFiles(dir string) ([]string, bool) { return nil, false }
func (h *stubHost) Millis() uint64                        { return 0 }
func (h *stubHost) SleepMillis(ms uint64)                 {}
func (h *stubHost) PlatformName() string                  { return "TestOS" }
func (h *stubHost) WorkingDirectory() string              { return "/" }
func (h *stubHost) SetWorkingDirectory(path string) bool  { return false }

func TestRunFileExecutes(t *testing.T) {
	host := newStubHost()
	host.files["main.ts"] = "let x = 2\nconsole.log(x * 3)\n"

	d := New(host)
	if !d.RunFile("main.ts") {
		t.Fatalf("RunFile failed: %#v", host.out)
	}
	if !reflect.DeepEqual(host.out, []string{"6"}) {
		t.Fatalf("output: %#v", host.out)
	}
}

func TestRunFileMissing(t *testing.T) {
	host := newStubHost()
	d := New(host)
	if d.RunFile("nope.ts") {
		t.Fatal("RunFile succeeded for a missing file")
	}
	want := []string{"Error: Could not open file: nope.ts"}
	if !reflect.DeepEqual(host.out, want) {
		t.Fatalf("output: %#v", host.out)
	}
}

func TestRunFileAbortsOnTypeFindings(t *testing.T) {
	host := newStubHost()
	host.files["main.ts"] = "function add(a: number, b: number) {\n" +
		"return a + b\n" +
		"}\n" +
		`add("x", 3)` + "\n" +
		"console.log(1)\n"

	d := New(host)
	if d.RunFile("main.ts") {
		t.Fatal("RunFile succeeded despite type findings")
	}
	want := []string{"Line 4: Argument 1 to add should be a number"}
	if !reflect.DeepEqual(host.out, want) {
		t.Fatalf("output: %#v", host.out)
	}
}

func TestRunStringSkipsTypecheck(t *testing.T) {
	host := newStubHost()
	d := New(host)

	// The same script that RunFile rejects executes here; the runtime check
	// still reports the mismatch but the rest of the script runs.
	d.RunString("function add(a: number, b: number) {\nreturn a + b\n}\n" +
		`add("x", 3)` + "\nconsole.log(1)")

	want := []string{"TypeError: Argument 'a' expected number, got x", "1"}
	if !reflect.DeepEqual(host.out, want) {
		t.Fatalf("output: %#v", host.out)
	}
}

func TestRunStringKeepsState(t *testing.T) {
	host := newStubHost()
	d := New(host)

	d.RunString("let counter = 1")
	d.RunString("let counter = counter + 1")
	d.RunString("console.log(counter)")

	if !reflect.DeepEqual(host.out, []string{"2"}) {
		t.Fatalf("output: %#v", host.out)
	}
}
