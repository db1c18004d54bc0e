package cmd

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/workbench-install/workbench/pkg/detect"
)

var statusOutput string

// targetStatus is one row of the status report.
type targetStatus struct {
	ID        string `yaml:"id"`
	Label     string `yaml:"label"`
	Category  string `yaml:"category"`
	Installed bool   `yaml:"installed"`
}

// StatusCommand represents the status command
var StatusCommand = &cobra.Command{
	Use:   "status",
	Short: "Show the detection state of every target",
	Long: `Probe each target (binary on PATH, directory, or file) and report whether
it is already installed. Probing is side-effect free; nothing on the
system is modified.`,
	Example: `  # Human-readable table
  wbench status

  # Machine-readable output
  wbench status --output yaml`,
	RunE: runStatus,
}

func init() {
	StatusCommand.Flags().StringVarP(&statusOutput, "output", "o", "text", "Output format: text or yaml")
}

func runStatus(cmd *cobra.Command, args []string) error {
	_, targets, err := loadTargets()
	if err != nil {
		return err
	}

	rows := make([]targetStatus, 0, len(targets))
	for _, t := range targets {
		rows = append(rows, targetStatus{
			ID:        t.ID,
			Label:     t.Label,
			Category:  string(t.Category),
			Installed: detect.Detect(t),
		})
	}

	out := cmd.OutOrStdout()
	switch statusOutput {
	case "yaml":
		data, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		fmt.Fprint(out, string(data))
	case "text":
		for i, row := range rows {
			state := absentMark("not installed")
			if row.Installed {
				state = presentMark("installed")
			}
			fmt.Fprintf(out, "  %2d) %-40s [%s]\n", i+1, row.Label, state)
		}
	default:
		return fmt.Errorf("unknown output format: %q", statusOutput)
	}
	return nil
}
