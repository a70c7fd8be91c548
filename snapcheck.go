// Package snapcheck provides pattern-directed snapshot matching.
//
// A snapshot records expected output; snapcheck decides whether freshly
// produced output still satisfies it under a pattern grammar richer
// than byte equality: placeholder redaction for non-deterministic
// values, inline wildcards ([..]), whole-line and whole-value elision
// (... and {...}), and order-insensitive comparison.
//
// # Basic Usage
//
// Create a checker and compare an artifact against a pattern:
//
//	checker, err := snapcheck.New(
//	    snapcheck.WithRedaction("[NAME]", redact.Literal("world")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result := checker.Check(data.Text("Hello world\n"), data.Text("Hello [NAME]\n"))
//	if !result.Ok {
//	    result.WriteDiff(os.Stderr, diff.Options{})
//	}
//
// # Snapshot Files
//
// CheckFile compares against an on-disk snapshot and honors the
// SNAPCHECK environment variable: "overwrite" persists the normalized
// actual as the new snapshot, "skip" skips the comparison.
//
//	result, err := checker.CheckFile(actual, "testdata/output.txt")
package snapcheck

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/drydock-tools/snapcheck/pkg/data"
	"github.com/drydock-tools/snapcheck/pkg/diff"
	"github.com/drydock-tools/snapcheck/pkg/redact"
)

// ActionEnv is the environment variable controlling the snapshot
// workflow for CheckFile.
const ActionEnv = "SNAPCHECK"

// Action selects what CheckFile does with a mismatch.
type Action int

const (
	// ActionVerify reports mismatches without touching the snapshot.
	ActionVerify Action = iota
	// ActionOverwrite persists the normalized actual as the new
	// snapshot on mismatch.
	ActionOverwrite
	// ActionSkip skips the comparison entirely.
	ActionSkip
)

// ActionFromEnv reads the workflow action from the SNAPCHECK
// environment variable. Unknown values fall back to ActionVerify.
func ActionFromEnv() Action {
	switch os.Getenv(ActionEnv) {
	case "overwrite":
		return ActionOverwrite
	case "skip":
		return ActionSkip
	}
	return ActionVerify
}

// Checker compares actual artifacts against snapshot patterns. A
// Checker is immutable after construction and safe for concurrent use.
type Checker struct {
	reg       *redact.Registry
	unordered bool
	action    Action
}

// checkerConfig holds checker configuration.
type checkerConfig struct {
	reg       *redact.Registry
	bindings  []binding
	cwd       bool
	unordered bool
	action    Action
	envAction bool
}

type binding struct {
	placeholder string
	value       redact.Value
}

// Option configures a Checker.
type Option func(*checkerConfig)

// WithRedaction binds a placeholder to a value matcher. Placeholders
// must have the [UPPER_CASE] shape; violations surface from New.
func WithRedaction(placeholder string, value redact.Value) Option {
	return func(c *checkerConfig) {
		c.bindings = append(c.bindings, binding{placeholder, value})
	}
}

// WithRegistry starts from an existing registry instead of the default
// one. The registry is cloned, so later options don't mutate the
// caller's copy.
func WithRegistry(reg *redact.Registry) Option {
	return func(c *checkerConfig) {
		c.reg = reg.Clone()
	}
}

// WithPath binds a placeholder to a filesystem path, matching either
// its native or forward-slash form. Conventional placeholders are
// [ROOT] for a sandbox root and [CWD] for the working directory.
func WithPath(placeholder, path string) Option {
	return WithRedaction(placeholder, redact.Path(path))
}

// WithCurrentDir binds [CWD] to the process working directory.
func WithCurrentDir() Option {
	return func(c *checkerConfig) {
		c.cwd = true
	}
}

// Unordered compares sequences as multisets instead of in order.
func Unordered() Option {
	return func(c *checkerConfig) {
		c.unordered = true
	}
}

// WithAction fixes the snapshot workflow action, overriding the
// SNAPCHECK environment variable.
func WithAction(a Action) Option {
	return func(c *checkerConfig) {
		c.action = a
		c.envAction = false
	}
}

// New creates a Checker.
//
// By default, the checker:
//   - Registers the reserved [EXE] placeholder (the platform's
//     executable-file suffix; bound empty where it doesn't apply)
//   - Compares sequences in order
//   - Reads the snapshot workflow action from SNAPCHECK
func New(opts ...Option) (*Checker, error) {
	config := &checkerConfig{envAction: true}
	for _, opt := range opts {
		opt(config)
	}

	reg := config.reg
	if reg == nil {
		var err error
		reg, err = DefaultRegistry()
		if err != nil {
			return nil, err
		}
	}
	if config.cwd {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		if err := reg.Insert("[CWD]", redact.Path(cwd)); err != nil {
			return nil, err
		}
	}
	for _, b := range config.bindings {
		if err := reg.Insert(b.placeholder, b.value); err != nil {
			return nil, fmt.Errorf("registering %s: %w", b.placeholder, err)
		}
	}

	action := config.action
	if config.envAction {
		action = ActionFromEnv()
	}

	return &Checker{reg: reg, unordered: config.unordered, action: action}, nil
}

// DefaultRegistry builds the registry New starts from: [EXE] bound to
// the executable suffix (empty, and therefore erased from patterns, on
// platforms without one).
func DefaultRegistry() (*redact.Registry, error) {
	reg := redact.NewRegistry()
	suffix := ""
	if runtime.GOOS == "windows" {
		suffix = ".exe"
	}
	if err := reg.Insert("[EXE]", redact.Literal(suffix)); err != nil {
		return nil, err
	}
	return reg, nil
}

// Registry exposes the checker's registry, e.g. for pre-redacting
// content before recording a snapshot.
func (c *Checker) Registry() *redact.Registry {
	return c.reg
}

// Result is the outcome of one comparison.
type Result struct {
	// Ok reports whether the actual artifact satisfied the pattern
	// (vacuously true when Skipped).
	Ok bool
	// Skipped is set when the workflow action suppressed the check.
	Skipped bool
	// Updated is set when the snapshot file was overwritten.
	Updated bool

	// Expected is the pattern; Normalized is the actual artifact with
	// aligned spans replaced by the pattern's text.
	Expected   data.Data
	Normalized data.Data
}

// WriteDiff renders the divergence between pattern and normalized
// actual. Matching or skipped results render nothing.
func (r Result) WriteDiff(w io.Writer, opts diff.Options) error {
	if r.Ok || r.Skipped {
		return nil
	}
	return diff.Render(w, r.Expected.Render(), r.Normalized.Render(), opts)
}

// Check compares an actual artifact against an expected pattern.
func (c *Checker) Check(actual, expected data.Data) Result {
	actual = data.NormalizeNewlines(actual)
	expected = data.NormalizeNewlines(expected)

	filter := data.NewNormalizeToExpected(c.reg)
	if c.unordered {
		filter = filter.Unordered()
	}
	normalized := filter.Normalize(actual, expected)

	return Result{
		Ok:         normalized.Equal(expected),
		Expected:   expected,
		Normalized: normalized,
	}
}

// CheckFile compares an actual artifact against the snapshot recorded
// at path, applying the workflow action. A missing snapshot compares
// as empty; with ActionOverwrite it is created.
func (c *Checker) CheckFile(actual data.Data, path string) (Result, error) {
	if c.action == ActionSkip {
		return Result{Ok: true, Skipped: true}, nil
	}

	expected, err := readSnapshot(path)
	if err != nil {
		return Result{}, err
	}

	result := c.Check(actual, expected)
	if !result.Ok && c.action == ActionOverwrite {
		if err := result.Normalized.WriteFile(path); err != nil {
			return Result{}, err
		}
		result.Ok = true
		result.Updated = true
		result.Expected = result.Normalized
	}
	return result, nil
}

func readSnapshot(path string) (data.Data, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// A snapshot not recorded yet compares as empty text;
		// ActionOverwrite then records the first version.
		return data.Text(""), nil
	}
	if err != nil {
		return data.Data{}, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	d, err := data.FromBytes(b, data.FormatForPath(path))
	if err != nil {
		return data.Data{}, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return d, nil
}
