package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"anyts/interpreter-go/pkg/driver"
	"anyts/interpreter-go/pkg/interpreter"
	"anyts/interpreter-go/pkg/platform"
)

const (
	cliToolVersion = "anyts 0.1.0"
	manifestName   = "script.yml"
	historyFile    = ".anyts_history"
	promptMain     = "anyts> "
	promptCont     = "   ... "
)

var errManifestNotFound = errors.New("script.yml not found")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "repl":
		return runRepl(args[1:])
	case "run":
		return runEntry(args[1:])
	default:
		return runEntry(args)
	}
}

func runEntry(args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	manifest, manifestErr := loadManifestFrom(".")
	if manifestErr != nil && !errors.Is(manifestErr, errManifestNotFound) {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", manifestErr)
		return 1
	}

	if len(args) == 0 {
		if manifest == nil {
			fmt.Fprintln(os.Stderr, "anyts run requires a source file (script.yml not found)")
			return 1
		}
		target, err := manifest.DefaultTarget()
		if err != nil {
			fmt.Fprintf(os.Stderr, "manifest error: %v\n", err)
			return 1
		}
		return executeTarget(manifest, target)
	}

	candidate := args[0]
	if manifest != nil {
		if target, ok := manifest.FindTarget(candidate); ok {
			return executeTarget(manifest, target)
		}
	}

	// Treat the argument as a direct source file path; a manifest next to
	// the file still contributes its interpreter options.
	if abs, err := filepath.Abs(candidate); err == nil {
		if nearby, findErr := loadManifestFrom(filepath.Dir(abs)); findErr == nil {
			manifest = nearby
		}
	}
	return executeFile(candidate, manifest)
}

func executeTarget(manifest *driver.Manifest, target *driver.TargetSpec) int {
	entry, err := manifest.ResolveMain(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve target %q: %v\n", target.OriginalName, err)
		return 1
	}
	return executeFile(entry, manifest)
}

func executeFile(path string, manifest *driver.Manifest) int {
	d := driver.New(platform.NewSystem(), interpreterOptions(manifest)...)
	if !d.RunFile(path) {
		return 1
	}
	return 0
}

func interpreterOptions(manifest *driver.Manifest) []interpreter.Option {
	if manifest != nil && manifest.Options.HalfFloats {
		return []interpreter.Option{interpreter.WithHalfNumbers()}
	}
	return nil
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	path, err := findManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}

func findManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, manifestName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", manifestName, origin, errManifestNotFound)
		}
		dir = parent
	}
}

func runRepl(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "anyts repl does not take arguments (received %s)\n", strings.Join(args, " "))
		return 1
	}

	manifest, manifestErr := loadManifestFrom(".")
	if manifestErr != nil && !errors.Is(manifestErr, errManifestNotFound) {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", manifestErr)
		return 1
	}

	fmt.Printf("%s REPL\nCtrl+D exits. Type :quit to exit.\n", cliToolVersion)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	d := driver.New(platform.NewSystem(), interpreterOptions(manifest)...)

	for {
		code, ok := readSnippet(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		d.RunString(code)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readSnippet collects lines until every opened brace is closed, so block
// statements can be typed across multiple prompts.
func readSnippet(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if braceDepth(b.String()) <= 0 {
			return b.String(), true
		}
	}
}

// braceDepth counts unmatched opening braces outside string literals.
func braceDepth(src string) int {
	depth := 0
	inString := false
	var quote byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case inString:
			if c == quote {
				inString = false
			}
		case c == '"' || c == '\'':
			inString = true
			quote = c
		case c == '{':
			depth++
		case c == '}':
			depth--
		}
	}
	return depth
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  anyts run [target]")
	fmt.Fprintln(os.Stderr, "  anyts run <file.ts>")
	fmt.Fprintln(os.Stderr, "  anyts <file.ts>")
	fmt.Fprintln(os.Stderr, "  anyts repl")
}
