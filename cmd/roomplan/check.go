package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a plan file",
	Long: `Checks every placement against the room outline, the cutout of an
L-shaped room and the placements listed before it, and the door against its
wall. Exits with status 1 when anything is wrong.`,
	Args: cobra.ExactArgs(1),
	Run:  runCheck,
}

func runCheck(_ *cobra.Command, args []string) {
	f := loadPlanFile(args[0])
	plan, err := f.Plan()
	if err != nil {
		fail(err)
	}

	problems := plan.Audit()
	if len(problems) == 0 {
		fmt.Printf("%s: ok (%d placements, %s)\n", f.ID, len(plan.Placements), plan.Shape)
		return
	}

	fmt.Printf("%s: %d problems\n", f.ID, len(problems))
	for _, p := range problems {
		fmt.Printf("  - %s\n", p)
	}
	os.Exit(1)
}
