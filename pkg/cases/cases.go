// Package cases loads on-disk comparison cases: small YAML files naming
// a recorded snapshot, the freshly produced artifact to compare against
// it, the comparison mode, and per-case redaction bindings.
package cases

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/drydock-tools/snapcheck/pkg/data"
	"github.com/drydock-tools/snapcheck/pkg/redact"
	"gopkg.in/yaml.v3"
)

// Suffix is the file name suffix identifying a case file.
const Suffix = ".case.yml"

// Case is one loaded comparison case.
type Case struct {
	// Name is the case file path relative to the discovery root, or
	// the bare file name for directly loaded cases.
	Name string
	// Snapshot and Actual are resolved paths.
	Snapshot string
	Actual   string

	Unordered  bool
	Format     data.Format
	redactions []yamlRedaction
}

// Load reads and validates one case file.
func Load(path string) (*Case, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading case file %s: %w", path, err)
	}

	var yc yamlCase
	if err := yaml.Unmarshal(raw, &yc); err != nil {
		return nil, fmt.Errorf("parsing case file %s: %w", path, err)
	}
	if yc.Snapshot == "" {
		return nil, fmt.Errorf("case file %s: missing snapshot", path)
	}
	if yc.Actual == "" {
		return nil, fmt.Errorf("case file %s: missing actual", path)
	}

	dir := filepath.Dir(path)
	c := &Case{
		Name:       filepath.Base(path),
		Snapshot:   resolve(dir, yc.Snapshot),
		Actual:     resolve(dir, yc.Actual),
		redactions: yc.Redactions,
	}

	switch strings.ToLower(yc.Mode) {
	case "", "ordered":
	case "unordered":
		c.Unordered = true
	default:
		return nil, fmt.Errorf("case file %s: unknown mode %q (want ordered or unordered)", path, yc.Mode)
	}

	if yc.Format != "" {
		c.Format, err = data.ParseFormat(yc.Format)
		if err != nil {
			return nil, fmt.Errorf("case file %s: %w", path, err)
		}
	} else {
		c.Format = data.FormatForPath(yc.Snapshot)
	}

	for _, r := range c.redactions {
		if err := validateRedaction(r); err != nil {
			return nil, fmt.Errorf("case file %s: %w", path, err)
		}
	}
	return c, nil
}

// Extend inserts the case's redaction bindings into reg. Callers that
// share a base registry across cases should pass a clone.
func (c *Case) Extend(reg *redact.Registry) error {
	return extendRegistry(reg, c.redactions)
}

// Redactions is a standalone set of redaction bindings, loaded from a
// YAML file with a top-level "redactions" list.
type Redactions struct {
	list []yamlRedaction
}

// LoadRedactions reads and validates a redactions file.
func LoadRedactions(path string) (*Redactions, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading redactions file %s: %w", path, err)
	}

	var yf struct {
		Redactions []yamlRedaction `yaml:"redactions"`
	}
	if err := yaml.Unmarshal(raw, &yf); err != nil {
		return nil, fmt.Errorf("parsing redactions file %s: %w", path, err)
	}
	for _, r := range yf.Redactions {
		if err := validateRedaction(r); err != nil {
			return nil, fmt.Errorf("redactions file %s: %w", path, err)
		}
	}
	return &Redactions{list: yf.Redactions}, nil
}

// Extend inserts the bindings into reg.
func (r *Redactions) Extend(reg *redact.Registry) error {
	return extendRegistry(reg, r.list)
}

func extendRegistry(reg *redact.Registry, list []yamlRedaction) error {
	for _, r := range list {
		var value redact.Value
		switch {
		case r.Path != "":
			value = redact.Path(r.Path)
		case r.Regex != "":
			re, err := regexp2.Compile(r.Regex, regexp2.None)
			if err != nil {
				return fmt.Errorf("redaction %s: compiling regex: %w", r.Placeholder, err)
			}
			value = redact.Pattern(re)
		default:
			value = redact.Literal(r.Literal)
		}
		if err := reg.Insert(r.Placeholder, value); err != nil {
			return fmt.Errorf("redaction %s: %w", r.Placeholder, err)
		}
	}
	return nil
}

func validateRedaction(r yamlRedaction) error {
	if r.Placeholder == "" {
		return fmt.Errorf("redaction missing placeholder")
	}
	forms := 0
	if r.Literal != "" {
		forms++
	}
	if r.Path != "" {
		forms++
	}
	if r.Regex != "" {
		forms++
	}
	if forms > 1 {
		return fmt.Errorf("redaction %s: literal, path, and regex are mutually exclusive", r.Placeholder)
	}
	return nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
