package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	smssolvers "github.com/rlgrpe/sms-solvers"
	"github.com/rlgrpe/sms-solvers/internal/cli/ui"
)

var releaseCmd = &cobra.Command{
	Use:   "release <task-id>",
	Short: "Release a rented number without using it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		solver, _, _, err := buildSolver(cmd)
		if err != nil {
			return err
		}

		if err := solver.Cancel(cmd.Context(), smssolvers.TaskID(args[0])); err != nil {
			return err
		}
		fmt.Printf("%s task %s released\n", ui.StyleSuccess.Render(ui.SymbolCheck), args[0])
		return nil
	},
}
