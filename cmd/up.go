package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/workbench-install/workbench/pkg/detect"
	"github.com/workbench-install/workbench/pkg/provision"
	"github.com/workbench-install/workbench/pkg/selection"
	"github.com/workbench-install/workbench/pkg/target"
)

var (
	// Flags for up command
	upTargets  string
	upAll      bool
	upDryRun   bool
	upParallel int
	upStrict   bool
)

// requiredCommands must exist before any target runs; their absence is the
// one fatal error class.
var requiredCommands = []string{"git", "apt-get"}

// UpCommand represents the up command
var UpCommand = &cobra.Command{
	Use:   "up",
	Short: "Install and configure the selected workstation targets",
	Long: `Provision the workstation. With no flags an interactive menu lists every
target with its live detection state and reads a free-text selection
(numbers separated by spaces or commas, or "all"). Unknown tokens are
warned about and ignored; an empty selection aborts without changes.

Targets always execute in their declared order, regardless of the order
they were selected in. A failing target is reported and skipped; the
remaining targets still run. Re-running converges: present targets are
skipped and configuration blocks are appended at most once.`,
	Example: `  # Interactive menu
  wbench up

  # Everything, non-interactively
  wbench up --all

  # Specific targets by menu number
  wbench up --targets "1,3,5"

  # Show planned work without touching the system
  wbench up --all --dry-run`,
	RunE: runUp,
}

func init() {
	UpCommand.Flags().StringVarP(&upTargets, "targets", "t", "", `Selection tokens, e.g. "1 3 5" or "all"`)
	UpCommand.Flags().BoolVarP(&upAll, "all", "a", false, "Select every target")
	UpCommand.Flags().BoolVarP(&upDryRun, "dry-run", "n", false, "Report planned work without side effects")
	UpCommand.Flags().IntVarP(&upParallel, "parallel", "p", 1, "Number of targets to process concurrently")
	UpCommand.Flags().BoolVar(&upStrict, "strict", false, "Treat per-target warnings as failures")
}

func runUp(cmd *cobra.Command, args []string) error {
	for _, name := range requiredCommands {
		if err := detect.RequireCommand(name); err != nil {
			return err
		}
	}

	cfg, targets, err := loadTargets()
	if err != nil {
		return err
	}

	selected, err := selectTargets(cmd.InOrStdin(), cmd.OutOrStdout(), targets)
	if err != nil {
		if err == selection.ErrEmpty {
			log.Warn("nothing selected, aborting without changes")
			return nil
		}
		return err
	}

	p := provision.New(cfg)
	p.DryRun = upDryRun
	if upStrict {
		p.Strict = true
	}

	results := p.Run(cmd.Context(), selected, upParallel)
	printSummary(cmd.OutOrStdout(), results)
	return nil
}

// selectTargets resolves the --all/--targets flags, falling back to the
// interactive menu, and maps the selection onto the declared target order.
func selectTargets(in io.Reader, out io.Writer, targets []target.Target) ([]target.Target, error) {
	input := upTargets
	switch {
	case upAll:
		input = "all"
	case input == "":
		printMenu(out, targets)
		fmt.Fprint(out, "Select targets (numbers, comma/space separated, or \"all\"): ")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read selection: %w", err)
		}
		input = strings.TrimSpace(line)
	}

	indices, unknown, err := selection.Parse(input, len(targets))
	for _, tok := range unknown {
		log.Warnf("ignoring unknown selection token: %q", tok)
	}
	if err != nil {
		return nil, err
	}

	selected := make([]target.Target, 0, len(indices))
	for _, idx := range indices {
		selected = append(selected, targets[idx-1])
	}
	return selected, nil
}
