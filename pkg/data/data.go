// Package data carries comparison artifacts in either of the two shapes
// the aligners understand: flat text, or a structured tree parsed from
// JSON. A Data value remembers its format so a comparison can pick the
// line-oriented or structural engine, and renders back to the byte form
// used for the final equality check and for persisting snapshots.
package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/drydock-tools/snapcheck/pkg/structured"
)

// Format identifies how a Data value is held and rendered.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// ParseFormat maps a user-facing format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown format %q (want text or json)", name)
	}
}

// FormatForPath selects a Format from a file extension.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatText
}

// Data is one comparison artifact: text, or a tree.
type Data struct {
	format Format
	text   string
	tree   structured.Value
}

// Text wraps flat text.
func Text(s string) Data {
	return Data{format: FormatText, text: s}
}

// Tree wraps a structured value.
func Tree(v structured.Value) Data {
	return Data{format: FormatJSON, tree: v}
}

// FromBytes builds a Data in the requested format, parsing JSON when
// asked for it.
func FromBytes(b []byte, format Format) (Data, error) {
	switch format {
	case FormatJSON:
		v, err := structured.FromJSON(b)
		if err != nil {
			return Data{}, err
		}
		return Tree(v), nil
	default:
		return Text(string(b)), nil
	}
}

// FromFile reads path and selects the format from its extension.
func FromFile(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("reading %s: %w", path, err)
	}
	d, err := FromBytes(b, FormatForPath(path))
	if err != nil {
		return Data{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return d, nil
}

// Format returns the artifact's format.
func (d Data) Format() Format { return d.format }

// Text returns the flat text, or "" for tree data.
func (d Data) Text() string { return d.text }

// Tree returns the structured value, or the zero Value for text data.
func (d Data) Tree() structured.Value { return d.tree }

// Render produces the canonical byte form: the text itself, or
// deterministic two-space-indented JSON.
func (d Data) Render() string {
	if d.format == FormatJSON {
		return structured.ToJSON(d.tree)
	}
	return d.text
}

// Equal reports whether two artifacts render identically. Differing
// formats never compare equal.
func (d Data) Equal(other Data) bool {
	if d.format != other.format {
		return false
	}
	if d.format == FormatJSON {
		return d.tree.Equal(other.tree)
	}
	return d.text == other.text
}

// WriteFile persists the rendered form to path.
func (d Data) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(d.Render()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
