// Package diff renders a line-level visual diff between an expected
// pattern and a normalized actual artifact. It is display-only: nothing
// here feeds back into matching.
package diff

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"
)

// ColorMode controls when ANSI styling is emitted.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode maps the user-facing flag value to a ColorMode.
func ParseColorMode(name string) (ColorMode, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode %q (want auto, always, or never)", name)
	}
}

// styles holds color formatters for the diff roles
type styles struct {
	header   *color.Color
	expected *color.Color
	actual   *color.Color
	context  *color.Color
	elision  *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		header:   color.New(color.Bold),
		expected: color.New(color.FgGreen),
		actual:   color.New(color.FgRed),
		context:  color.New(color.Faint),
		elision:  color.New(color.FgHiBlue),
	}

	if !enabled {
		s.header.DisableColor()
		s.expected.DisableColor()
		s.actual.DisableColor()
		s.context.DisableColor()
		s.elision.DisableColor()
	} else {
		s.header.EnableColor()
		s.expected.EnableColor()
		s.actual.EnableColor()
		s.context.EnableColor()
		s.elision.EnableColor()
	}

	return s
}

// Options adjusts diff rendering.
type Options struct {
	// ExpectedName and ActualName label the two sides; sensible
	// defaults are used when empty.
	ExpectedName string
	ActualName   string
	// Context is the number of unchanged lines shown around each
	// change; longer equal runs collapse into an elision row.
	// Zero means 3.
	Context int
	Color   ColorMode
}

func (o Options) context() int {
	if o.Context <= 0 {
		return 3
	}
	return o.Context
}

func (o Options) names() (string, string) {
	e, a := o.ExpectedName, o.ActualName
	if e == "" {
		e = "expected"
	}
	if a == "" {
		a = "actual"
	}
	return e, a
}

func colorEnabled(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Render writes a windowed line diff of expected vs actual to w.
// Equal inputs produce no output.
func Render(w io.Writer, expected, actual string, opts Options) error {
	if expected == actual {
		return nil
	}

	s := newStyles(colorEnabled(opts.Color, w))
	expName, actName := opts.names()
	if _, err := fmt.Fprintf(w, "%s\n%s\n",
		s.header.Sprintf("--- %s", expName),
		s.header.Sprintf("+++ %s", actName)); err != nil {
		return err
	}

	expLines := splitLines(expected)
	actLines := splitLines(actual)
	m := difflib.NewMatcher(expLines, actLines)
	for gi, group := range m.GetGroupedOpCodes(opts.context()) {
		if gi > 0 {
			if _, err := fmt.Fprintln(w, s.elision.Sprint("...")); err != nil {
				return err
			}
		}
		for _, op := range group {
			if err := renderOp(w, s, op, expLines, actLines); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderOp(w io.Writer, s *styles, op difflib.OpCode, expLines, actLines []string) error {
	switch op.Tag {
	case 'e':
		for _, line := range expLines[op.I1:op.I2] {
			if _, err := fmt.Fprintln(w, s.context.Sprintf("  %s", chomp(line))); err != nil {
				return err
			}
		}
	case 'd', 'r', 'i':
		if op.Tag != 'i' {
			for _, line := range expLines[op.I1:op.I2] {
				if _, err := fmt.Fprintln(w, s.expected.Sprintf("- %s", chomp(line))); err != nil {
					return err
				}
			}
		}
		if op.Tag != 'd' {
			for _, line := range actLines[op.J1:op.J2] {
				if _, err := fmt.Fprintln(w, s.actual.Sprintf("+ %s", chomp(line))); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// splitLines splits into newline-terminated lines. difflib.SplitLines
// appends a terminator to the final split element, so a
// newline-terminated source would grow a phantom empty last line;
// drop it.
func splitLines(s string) []string {
	lines := difflib.SplitLines(s)
	if strings.HasSuffix(s, "\n") {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func chomp(line string) string {
	return strings.TrimSuffix(line, "\n")
}
