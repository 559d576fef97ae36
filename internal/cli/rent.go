package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	smssolvers "github.com/rlgrpe/sms-solvers"
	"github.com/rlgrpe/sms-solvers/internal/cli/ui"
)

var rentCmd = &cobra.Command{
	Use:   "rent",
	Short: "Rent a verification number",
	Long: `Rent a temporary phone number for a verification target. Prints the
task id needed by "wait" and "release".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		country, _ := cmd.Flags().GetString("country")
		service, _ := cmd.Flags().GetString("service")

		solver, _, _, err := buildSolver(cmd)
		if err != nil {
			return err
		}

		acq, err := solver.AcquireNumber(cmd.Context(), smssolvers.Country(country), smssolvers.Service(service))
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"task_id":     string(acq.TaskID),
				"country":     string(acq.Country),
				"dial_code":   acq.DialCode.String(),
				"number":      acq.Number.String(),
				"full_number": string(acq.FullNumber),
			})
		}

		fmt.Printf("%s +%s%s\n", ui.StyleBold.Render("Number:"), acq.DialCode, acq.Number)
		fmt.Printf("%s %s\n", ui.StyleBold.Render("Task:"), acq.TaskID)
		fmt.Println(ui.StyleHint.Render(fmt.Sprintf("  %s sms-solvers wait %s", ui.SymbolArrow, acq.TaskID)))
		return nil
	},
}

func init() {
	rentCmd.Flags().StringP("country", "c", "", "ISO 3166-1 alpha-2 country code (e.g. TR)")
	rentCmd.Flags().StringP("service", "s", "", "Verification target service code (e.g. ig, wa)")
	rentCmd.MarkFlagRequired("country")
	rentCmd.MarkFlagRequired("service")
	addPollFlags(rentCmd)
}

// addPollFlags registers the shared polling override flags.
func addPollFlags(cmd *cobra.Command) {
	cmd.Flags().String("preset", "", "Poll preset: fast, balanced, or patient")
	cmd.Flags().Int("timeout", 0, "Overall wait timeout in seconds")
	cmd.Flags().Int("interval-ms", 0, "Poll interval in milliseconds")
}
