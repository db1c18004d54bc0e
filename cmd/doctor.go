package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workbench-install/workbench/pkg/detect"
)

// optionalCommands improve the experience but their absence is only noted.
var optionalCommands = []string{"curl", "fc-cache", "chsh"}

// DoctorCommand represents the doctor command
var DoctorCommand = &cobra.Command{
	Use:   "doctor",
	Short: "Verify the external commands the provisioner depends on",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		var missing []string

		for _, name := range requiredCommands {
			if detect.CommandOnPath(name) {
				fmt.Fprintf(out, "  %-12s %s\n", name, presentMark("ok"))
			} else {
				fmt.Fprintf(out, "  %-12s %s\n", name, failedMark("missing (required)"))
				missing = append(missing, name)
			}
		}
		for _, name := range optionalCommands {
			if detect.CommandOnPath(name) {
				fmt.Fprintf(out, "  %-12s %s\n", name, presentMark("ok"))
			} else {
				fmt.Fprintf(out, "  %-12s %s\n", name, absentMark("missing (optional)"))
			}
		}

		if len(missing) > 0 {
			return fmt.Errorf("required commands missing: %v", missing)
		}
		return nil
	},
}
