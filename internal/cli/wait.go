package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	smssolvers "github.com/rlgrpe/sms-solvers"
	"github.com/rlgrpe/sms-solvers/internal/cli/ui"
)

var waitCmd = &cobra.Command{
	Use:   "wait <task-id>",
	Short: "Wait for the verification code of a rented number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		solver, _, _, err := buildSolver(cmd)
		if err != nil {
			return err
		}

		code, err := waitWithSpinner(cmd, solver, smssolvers.TaskID(args[0]))
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"task_id": args[0],
				"code":    string(code),
			})
		}
		fmt.Printf("%s %s\n", ui.StyleBold.Render("Code:"), ui.StyleCode.Render(string(code)))
		return nil
	},
}

func init() {
	addPollFlags(waitCmd)
}

// waitWithSpinner runs WaitForCode with animated progress on stderr.
func waitWithSpinner(cmd *cobra.Command, solver *smssolvers.Solver, id smssolvers.TaskID) (smssolvers.Code, error) {
	spin := ui.NewPollSpinner(os.Stderr, !ui.Interactive())
	spin.Start("waiting for code")
	defer spin.Stop()

	type result struct {
		code smssolvers.Code
		err  error
	}
	results := make(chan result, 1)
	go func() {
		code, err := solver.WaitForCode(cmd.Context(), id)
		results <- result{code, err}
	}()

	started := time.Now()
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			spin.Update(fmt.Sprintf("waiting for code (%ds)", int(time.Since(started).Seconds())))
		case res := <-results:
			if res.err != nil {
				spin.Fail()
				return "", describeWaitError(res.err)
			}
			spin.Done()
			return res.code, nil
		}
	}
}

// describeWaitError rewrites orchestration errors into CLI-friendly
// messages without losing the original in the chain.
func describeWaitError(err error) error {
	var timeoutErr *smssolvers.TimeoutError
	if errors.As(err, &timeoutErr) {
		return fmt.Errorf("no code arrived within %s (%d polls); the number was released: %w",
			timeoutErr.Timeout, timeoutErr.PollCount, err)
	}
	var cancelledErr *smssolvers.CancelledError
	if errors.As(err, &cancelledErr) {
		return fmt.Errorf("interrupted; the number was released: %w", err)
	}
	return err
}
