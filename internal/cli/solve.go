package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	smssolvers "github.com/rlgrpe/sms-solvers"
	"github.com/rlgrpe/sms-solvers/internal/cli/ui"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Rent a number, wait for the code, and finish the activation",
	Long: `Run the whole verification flow in one command: rent a number, show
it, wait for the code to arrive, then report the activation as
finished. On failure the number is released automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		country, _ := cmd.Flags().GetString("country")
		service, _ := cmd.Flags().GetString("service")

		solver, _, logger, err := buildSolver(cmd)
		if err != nil {
			return err
		}

		acq, err := solver.AcquireNumber(cmd.Context(), smssolvers.Country(country), smssolvers.Service(service))
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%s +%s%s (task %s)\n",
			ui.StyleBold.Render("Number:"), acq.DialCode, acq.Number, acq.TaskID)

		code, err := waitWithSpinner(cmd, solver, acq.TaskID)
		if err != nil {
			return err
		}

		if err := solver.Finish(cmd.Context(), acq.TaskID); err != nil {
			// The code is already in hand; a failed finish only costs
			// backend bookkeeping.
			logger.Warn("failed to finish activation", "task_id", acq.TaskID, "error", err)
		}

		if outputFormat(cmd) == "json" {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"task_id":     string(acq.TaskID),
				"full_number": string(acq.FullNumber),
				"code":        string(code),
			})
		}
		fmt.Printf("%s %s\n", ui.StyleBold.Render("Code:"), ui.StyleCode.Render(string(code)))
		return nil
	},
}

func init() {
	solveCmd.Flags().StringP("country", "c", "", "ISO 3166-1 alpha-2 country code (e.g. TR)")
	solveCmd.Flags().StringP("service", "s", "", "Verification target service code (e.g. ig, wa)")
	solveCmd.MarkFlagRequired("country")
	solveCmd.MarkFlagRequired("service")
	addPollFlags(solveCmd)
}
