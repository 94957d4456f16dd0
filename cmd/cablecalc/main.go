// Command cablecalc is the interactive/CLI demonstration of the
// ampacity engine (SPEC_FULL.md §1): it takes a cable/installation/
// operating scenario, either from a JSON file or through a Bubble Tea
// form, and prints an IEC 60287 ampacity report to the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jschwehn/cableampacity"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to a scenario JSON file (skips the interactive form)")
	flag.Parse()

	if *scenarioPath != "" {
		if err := runScenarioFile(*scenarioPath); err != nil {
			fmt.Fprintln(os.Stderr, "cablecalc:", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "cablecalc:", err)
		os.Exit(1)
	}
}

// runScenarioFile is the batch, non-interactive path: load a scenario,
// solve it, print the report. No TUI is started.
func runScenarioFile(path string) error {
	sf, err := loadScenario(path)
	if err != nil {
		return err
	}

	cable := sf.Cable.toCableSpec()
	inst, ductBank, err := sf.toInstallation()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if ductBank != nil {
		sys, solveErr := ampacity.SolveSystem(ctx, ampacity.SystemRequest{
			Cable:  cable,
			Bank:   ductBank.toDuctBank(),
			Target: sf.Target.toTargetCurrent(),
		})
		fmt.Print(formatSystemReport(sys, solveErr))
		if solveErr != nil {
			return solveErr
		}
		return nil
	}

	result, solveErr := ampacity.Solve(ctx, ampacity.Request{
		Cable:        cable,
		Installation: inst,
		Target:       sf.Target.toTargetCurrent(),
	})
	fmt.Print(formatReport("cable", result, solveErr))
	if solveErr != nil {
		return solveErr
	}
	return nil
}
