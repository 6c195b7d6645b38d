// Package platform abstracts the host facilities the interpreter needs:
// console and file I/O, timing, and working-directory control. The core
// writes all script output and error reports through a Host.
package platform

import (
	"bufio"
	"io"
	"os"
	"runtime"
	"time"
)

// Host is the platform collaborator contract. Failures are reported via
// boolean results, never errors: script execution treats every host
// operation as best-effort.
type Host interface {
	Print(text string)
	PrintLine(text string)
	ReadLine() (string, bool)

	FileExists(path string) bool
	ReadFile(path string) (string, bool)
	WriteFile(path, data string) bool
	ListFiles(dir string) ([]string, bool)

	Millis() uint64
	SleepMillis(ms uint64)

	PlatformName() string
	WorkingDirectory() string
	SetWorkingDirectory(path string) bool
}

// System is the real-OS Host backed by stdio and the filesystem.
type System struct {
	out   io.Writer
	in    *bufio.Scanner
	start time.Time
}

// NewSystem returns a Host reading stdin and writing stdout.
func NewSystem() *System {
	return NewSystemWith(os.Stdout, os.Stdin)
}

// NewSystemWith allows redirecting the console streams.
func NewSystemWith(out io.Writer, in io.Reader) *System {
	return &System{
		out:   out,
		in:    bufio.NewScanner(in),
		start: time.Now(),
	}
}

func (s *System) Print(text string) {
	io.WriteString(s.out, text)
}

func (s *System) PrintLine(text string) {
	io.WriteString(s.out, text+"\n")
}

func (s *System) ReadLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *System) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *System) ReadFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (s *System) WriteFile(path, data string) bool {
	return os.WriteFile(path, []byte(data), 0o644) == nil
}

func (s *System) ListFiles(dir string) ([]string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, false
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, true
}

// Millis reports milliseconds since the Host was created.
func (s *System) Millis() uint64 {
	return uint64(time.Since(s.start) / time.Millisecond)
}

func (s *System) SleepMillis(ms uint64) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

func (s *System) PlatformName() string {
	switch runtime.GOOS {
	case "windows":
		return "Windows"
	case "darwin":
		return "macOS"
	case "linux":
		return "Linux"
	default:
		return runtime.GOOS
	}
}

func (s *System) WorkingDirectory() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

func (s *System) SetWorkingDirectory(path string) bool {
	return os.Chdir(path) == nil
}
