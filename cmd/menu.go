package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/workbench-install/workbench/pkg/detect"
	"github.com/workbench-install/workbench/pkg/provision"
	"github.com/workbench-install/workbench/pkg/target"
)

var (
	presentMark = color.New(color.FgGreen).SprintFunc()
	absentMark  = color.New(color.FgYellow).SprintFunc()
	failedMark  = color.New(color.FgRed).SprintFunc()
	boldText    = color.New(color.Bold).SprintFunc()
)

// printMenu renders the numbered target list with live detection state.
func printMenu(out io.Writer, targets []target.Target) {
	fmt.Fprintln(out, boldText("Available targets:"))
	for i, t := range targets {
		state := absentMark("not installed")
		if detect.Detect(t) {
			state = presentMark("installed")
		}
		fmt.Fprintf(out, "  %2d) %-40s [%s]\n", i+1, t.Label, state)
	}
	fmt.Fprintln(out)
}

// printSummary renders the per-target outcome after a run.
func printSummary(out io.Writer, results []provision.Result) {
	if len(results) == 0 {
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, boldText("Summary:"))
	for _, r := range results {
		var state string
		switch r.Status {
		case provision.StatusFailed:
			state = failedMark(string(r.Status))
		case provision.StatusInstalled, provision.StatusUpdated:
			state = presentMark(string(r.Status))
		default:
			state = absentMark(string(r.Status))
		}
		fmt.Fprintf(out, "  %-40s %s\n", r.Target.Label, state)
		if r.Err != nil {
			fmt.Fprintf(out, "      %s\n", failedMark(r.Err.Error()))
		}
	}
}
