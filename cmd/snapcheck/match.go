package main

import (
	"fmt"
	"os"

	"github.com/drydock-tools/snapcheck"
	"github.com/drydock-tools/snapcheck/pkg/cases"
	"github.com/drydock-tools/snapcheck/pkg/data"
	"github.com/drydock-tools/snapcheck/pkg/diff"
	"github.com/spf13/cobra"
)

var (
	matchUnordered  bool
	matchFormat     string
	matchRedactions string
	matchColor      string
)

var matchCmd = &cobra.Command{
	Use:   "match <actual> <snapshot>",
	Short: "Compare one artifact against a snapshot",
	Long:  "Compare a produced artifact against a recorded snapshot pattern, printing a diff on mismatch",
	Args:  cobra.ExactArgs(2),
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().BoolVar(&matchUnordered, "unordered", false, "Compare lines/elements as a multiset")
	matchCmd.Flags().StringVar(&matchFormat, "format", "", "Artifact format: text, json (default: by snapshot extension)")
	matchCmd.Flags().StringVar(&matchRedactions, "redactions", "", "Path to a YAML redactions file")
	matchCmd.Flags().StringVar(&matchColor, "color", "auto", "Color output: auto, always, never")
}

func runMatch(cmd *cobra.Command, args []string) error {
	actualPath, snapshotPath := args[0], args[1]

	colorMode, err := diff.ParseColorMode(matchColor)
	if err != nil {
		return err
	}

	format := data.FormatForPath(snapshotPath)
	if matchFormat != "" {
		format, err = data.ParseFormat(matchFormat)
		if err != nil {
			return err
		}
	}

	opts := []snapcheck.Option{snapcheck.WithAction(snapcheck.ActionVerify)}
	if matchUnordered {
		opts = append(opts, snapcheck.Unordered())
	}
	checker, err := snapcheck.New(opts...)
	if err != nil {
		return err
	}
	if matchRedactions != "" {
		reds, err := cases.LoadRedactions(matchRedactions)
		if err != nil {
			return err
		}
		if err := reds.Extend(checker.Registry()); err != nil {
			return err
		}
	}

	actual, err := readArtifact(actualPath, format)
	if err != nil {
		return err
	}
	expected, err := readArtifact(snapshotPath, format)
	if err != nil {
		return err
	}

	result := checker.Check(actual, expected)
	if result.Ok {
		if verbose && !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s matches %s\n", actualPath, snapshotPath)
		}
		return nil
	}

	if !quiet {
		err := result.WriteDiff(cmd.OutOrStdout(), diff.Options{
			ExpectedName: snapshotPath,
			ActualName:   actualPath,
			Color:        colorMode,
		})
		if err != nil {
			return err
		}
	}
	return fmt.Errorf("snapshot mismatch: %s", snapshotPath)
}

func readArtifact(path string, format data.Format) (data.Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return data.Data{}, fmt.Errorf("reading %s: %w", path, err)
	}
	d, err := data.FromBytes(b, format)
	if err != nil {
		return data.Data{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return d, nil
}
