package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rlgrpe/sms-solvers/internal/cli/ui"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List verification targets the backend knows about",
	RunE: func(cmd *cobra.Command, args []string) error {
		solver, cfg, _, err := buildSolver(cmd)
		if err != nil {
			return err
		}

		services := solver.Provider().SupportedServices()
		if len(services) == 0 {
			fmt.Println(ui.StyleHint.Render(fmt.Sprintf(
				"backend %q accepts arbitrary service codes", cfg.Provider.Backend)))
			return nil
		}

		if outputFormat(cmd) == "json" {
			codes := make([]string, 0, len(services))
			for _, s := range services {
				codes = append(codes, string(s))
			}
			return json.NewEncoder(os.Stdout).Encode(codes)
		}
		for _, s := range services {
			fmt.Println(s)
		}
		return nil
	},
}
