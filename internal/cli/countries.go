package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	smssolvers "github.com/rlgrpe/sms-solvers"
	"github.com/rlgrpe/sms-solvers/internal/cli/ui"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List countries and dial codes the backend can rent in",
	RunE: func(cmd *cobra.Command, args []string) error {
		service, _ := cmd.Flags().GetString("service")

		solver, _, _, err := buildSolver(cmd)
		if err != nil {
			return err
		}

		countries := solver.Provider().AvailableCountries(smssolvers.Service(service))
		if len(countries) == 0 {
			return fmt.Errorf("backend does not publish a country list")
		}
		sort.Slice(countries, func(i, j int) bool { return countries[i] < countries[j] })

		lookup := smssolvers.LibDialCodes{}
		type row struct {
			Country  string `json:"country"`
			DialCode string `json:"dial_code,omitempty"`
		}
		rows := make([]row, 0, len(countries))
		for _, c := range countries {
			r := row{Country: string(c)}
			if dc, ok := lookup.DialCode(c); ok {
				r.DialCode = dc.String()
			}
			rows = append(rows, r)
		}

		switch outputFormat(cmd) {
		case "json":
			return json.NewEncoder(os.Stdout).Encode(rows)
		case "csv":
			csvRows := make([][]string, 0, len(rows))
			for _, r := range rows {
				csvRows = append(csvRows, []string{r.Country, r.DialCode})
			}
			return writeCSVStdout([]string{"country", "dial_code"}, csvRows)
		default:
			fmt.Println(ui.StyleBold.Render("COUNTRY  DIAL"))
			for _, r := range rows {
				dc := r.DialCode
				if dc != "" {
					dc = "+" + dc
				}
				fmt.Printf("%-8s %s\n", r.Country, dc)
			}
			return nil
		}
	},
}

func init() {
	countriesCmd.Flags().StringP("service", "s", "", "Verification target service code")
}
