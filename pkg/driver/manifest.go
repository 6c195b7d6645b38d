package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest represents the parsed contents of script.yml: project metadata,
// interpreter options, and named runnable targets.
type Manifest struct {
	Path        string
	Name        string
	Version     string
	Authors     []string
	Options     Options
	Targets     map[string]*TargetSpec
	TargetOrder []string

	targetEntries []manifestTargetEntry
}

// Options are interpreter switches a project can set for all its targets.
type Options struct {
	HalfFloats bool
}

// TargetSpec describes one runnable target: a name and a script entrypoint.
type TargetSpec struct {
	Name         string
	OriginalName string
	Main         string
}

type manifestTargetEntry struct {
	sanitized string
	spec      *TargetSpec
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses script.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	manifest, err := decodeManifest(file)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}
	manifest.Path = absPath
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func decodeManifest(r io.Reader) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	return raw.toManifest(), nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	for i, author := range m.Authors {
		if author == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("authors[%d] must be a non-empty string", i))
		}
	}

	targetNames := make(map[string]string, len(m.targetEntries))
	for _, entry := range m.targetEntries {
		if entry.spec == nil {
			continue
		}
		target := entry.spec
		if target.OriginalName == "" {
			errs.Issues = append(errs.Issues, "targets must not use empty keys")
			continue
		}
		if other, exists := targetNames[entry.sanitized]; exists {
			errs.Issues = append(errs.Issues, fmt.Sprintf("targets %q and %q collide after sanitization", other, target.OriginalName))
		} else {
			targetNames[entry.sanitized] = target.OriginalName
		}
		if target.Main == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q requires a main entrypoint", target.OriginalName))
		}
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

var ErrNoTarget = errors.New("manifest: no targets defined")

// DefaultTarget returns the first target in manifest order.
func (m *Manifest) DefaultTarget() (*TargetSpec, error) {
	if m == nil {
		return nil, ErrNoTarget
	}
	for _, entry := range m.targetEntries {
		if entry.spec != nil {
			return entry.spec, nil
		}
	}
	return nil, ErrNoTarget
}

// FindTarget looks up a target by sanitized or original name.
func (m *Manifest) FindTarget(name string) (*TargetSpec, bool) {
	if m == nil {
		return nil, false
	}
	key := sanitizeSegment(strings.TrimSpace(name))
	if key != "" {
		if target, ok := m.Targets[key]; ok && target != nil {
			return target, true
		}
	}
	for _, entry := range m.targetEntries {
		if entry.spec == nil {
			continue
		}
		if strings.EqualFold(entry.spec.OriginalName, strings.TrimSpace(name)) {
			return entry.spec, true
		}
	}
	return nil, false
}

// ResolveMain resolves a target's entrypoint relative to the manifest.
func (m *Manifest) ResolveMain(target *TargetSpec) (string, error) {
	if m == nil || target == nil {
		return "", fmt.Errorf("missing manifest or target")
	}
	mainPath := strings.TrimSpace(target.Main)
	if mainPath == "" {
		return "", fmt.Errorf("target %q missing main entrypoint", target.OriginalName)
	}
	if filepath.IsAbs(mainPath) {
		return filepath.Clean(mainPath), nil
	}
	base := filepath.Dir(m.Path)
	if base == "" {
		return filepath.Clean(filepath.FromSlash(mainPath)), nil
	}
	return filepath.Join(base, filepath.FromSlash(mainPath)), nil
}

// sanitizeSegment lowercases a name and collapses runs of non-alphanumeric
// characters into single dashes.
func sanitizeSegment(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

type manifestFile struct {
	Name    string      `yaml:"name"`
	Version string      `yaml:"version"`
	Authors stringList  `yaml:"authors"`
	Options optionsYAML `yaml:"options"`
	Targets targetMap   `yaml:"targets"`
}

type optionsYAML struct {
	HalfFloats bool `yaml:"half_floats"`
}

type targetYAML struct {
	Main string `yaml:"main"`
}

type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec *targetYAML
}

func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 {
		tm.items = nil
		return nil
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: targets must not use empty keys")
		}
		entry := new(targetYAML)
		if valueNode.Kind == yaml.ScalarNode && valueNode.Tag != "!!null" {
			// Shorthand: `target: path/to/script.ts`.
			entry.Main = strings.TrimSpace(valueNode.Value)
		} else if err := valueNode.Decode(entry); err != nil {
			return fmt.Errorf("manifest: target %q: %w", key, err)
		}
		items = append(items, targetMapEntry{name: key, spec: entry})
	}
	tm.items = items
	return nil
}

type stringList []string

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			str = strings.TrimSpace(str)
			if str == "" {
				continue
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}

func (mf manifestFile) toManifest() *Manifest {
	capacity := len(mf.Targets.items)
	result := &Manifest{
		Name:          sanitizeSegment(strings.TrimSpace(mf.Name)),
		Version:       strings.TrimSpace(mf.Version),
		Authors:       mf.Authors.Clone(),
		Options:       Options{HalfFloats: mf.Options.HalfFloats},
		Targets:       make(map[string]*TargetSpec, capacity),
		TargetOrder:   make([]string, 0, capacity),
		targetEntries: make([]manifestTargetEntry, 0, capacity),
	}

	seen := make(map[string]struct{}, capacity)
	for _, item := range mf.Targets.items {
		if item.spec == nil {
			continue
		}
		original := strings.TrimSpace(item.name)
		if original == "" {
			continue
		}
		sanitized := sanitizeSegment(original)
		spec := &TargetSpec{
			Name:         sanitized,
			OriginalName: original,
			Main:         strings.TrimSpace(item.spec.Main),
		}
		if _, exists := result.Targets[sanitized]; !exists {
			result.Targets[sanitized] = spec
		}
		if _, exists := seen[sanitized]; !exists {
			result.TargetOrder = append(result.TargetOrder, sanitized)
			seen[sanitized] = struct{}{}
		}
		result.targetEntries = append(result.targetEntries, manifestTargetEntry{
			sanitized: sanitized,
			spec:      spec,
		})
	}
	return result
}
