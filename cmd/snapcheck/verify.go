package main

import (
	"fmt"
	"io"

	"github.com/drydock-tools/snapcheck"
	"github.com/drydock-tools/snapcheck/pkg/cases"
	"github.com/drydock-tools/snapcheck/pkg/datastore"
	"github.com/drydock-tools/snapcheck/pkg/diff"
	"github.com/spf13/cobra"
)

var (
	verifyUpdate bool
	verifyDB     string
	verifyColor  string
)

var verifyCmd = &cobra.Command{
	Use:   "verify <dir>",
	Short: "Run every case file under a directory",
	Long:  "Discover *.case.yml files under a directory and verify each snapshot, optionally updating snapshots and recording results",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyUpdate, "update", false, "Overwrite snapshots that no longer match")
	verifyCmd.Flags().StringVar(&verifyDB, "db", "", "Record results in a SQLite database at this path")
	verifyCmd.Flags().StringVar(&verifyColor, "color", "auto", "Color output: auto, always, never")
}

func runVerify(cmd *cobra.Command, args []string) error {
	root := args[0]

	colorMode, err := diff.ParseColorMode(verifyColor)
	if err != nil {
		return err
	}

	found, err := cases.Discover(root)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return fmt.Errorf("no case files under %s", root)
	}

	var store *datastore.Store
	var runID int64
	if verifyDB != "" {
		store, err = datastore.Open(verifyDB)
		if err != nil {
			return err
		}
		defer store.Close()
		runID, err = store.BeginRun(root)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	passed, failed := 0, 0
	for _, c := range found {
		res := runCase(c, out, colorMode)
		if res.Passed {
			passed++
		} else {
			failed++
		}
		reportCase(out, c.Name, res)

		if store != nil {
			if err := store.AddResult(runID, res); err != nil {
				return err
			}
		}
	}

	if store != nil {
		if err := store.FinishRun(runID, passed, failed); err != nil {
			return err
		}
	}

	if !quiet {
		fmt.Fprintf(out, "%d passed, %d failed\n", passed, failed)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, passed+failed)
	}
	return nil
}

func runCase(c *cases.Case, out io.Writer, colorMode diff.ColorMode) datastore.Result {
	res := datastore.Result{Name: c.Name}

	action := snapcheck.ActionVerify
	if verifyUpdate {
		action = snapcheck.ActionOverwrite
	}
	opts := []snapcheck.Option{snapcheck.WithAction(action)}
	if c.Unordered {
		opts = append(opts, snapcheck.Unordered())
	}
	checker, err := snapcheck.New(opts...)
	if err != nil {
		res.Message = err.Error()
		return res
	}
	if err := c.Extend(checker.Registry()); err != nil {
		res.Message = err.Error()
		return res
	}

	actual, err := readArtifact(c.Actual, c.Format)
	if err != nil {
		res.Message = err.Error()
		return res
	}

	result, err := checker.CheckFile(actual, c.Snapshot)
	if err != nil {
		res.Message = err.Error()
		return res
	}

	res.Passed = result.Ok
	res.Updated = result.Updated
	if !result.Ok {
		res.Message = "snapshot mismatch"
		if !quiet {
			_ = result.WriteDiff(out, diff.Options{
				ExpectedName: c.Snapshot,
				ActualName:   c.Actual,
				Color:        colorMode,
			})
		}
	}
	return res
}

func reportCase(out io.Writer, name string, res datastore.Result) {
	if quiet {
		return
	}
	switch {
	case res.Updated:
		fmt.Fprintf(out, "UPDATE %s\n", name)
	case res.Passed:
		fmt.Fprintf(out, "PASS   %s\n", name)
	default:
		fmt.Fprintf(out, "FAIL   %s (%s)\n", name, res.Message)
	}
}
