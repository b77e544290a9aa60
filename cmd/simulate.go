package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"moneymarket/core"
	"moneymarket/handler/views"

	"github.com/spf13/cobra"
)

type simulateStep struct {
	Sender string          `json:"sender"`
	Block  int64           `json:"block"`
	Action string          `json:"action"`
	Params json.RawMessage `json:"params"`
}

// simulateCmd run a scripted list of actions against an in memory ledger
// built from the config genesis. Nothing is persisted.
var simulateCmd = &cobra.Command{
	Use:     "simulate <script.json>",
	Aliases: []string{"sim"},
	Short:   "run scripted actions against the genesis ledger in memory",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var steps []simulateStep
		if err := json.Unmarshal(data, &steps); err != nil {
			return err
		}

		protocol := provideProtocol()
		if _, err := protocol.Bootstrap(ctx, provideConfig()); err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		var block int64
		for idx, step := range steps {
			if step.Block > block {
				block = step.Block
			}

			action := core.NewAction(core.ParseActionType(step.Action))
			if action == nil {
				return fmt.Errorf("step %d: %w: %s", idx, core.ErrUnknownAction, step.Action)
			}

			if len(step.Params) > 0 {
				if err := json.Unmarshal(step.Params, action); err != nil {
					return fmt.Errorf("step %d: %w", idx, err)
				}
			}

			events, err := protocol.Execute(ctx, step.Sender, block, action)
			if err != nil {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\trejected: %s\n", idx, block, step.Sender, step.Action, core.CodeOf(err).Name())
				continue
			}

			fmt.Fprintf(w, "%d\t%d\t%s\t%s\tapplied\n", idx, block, step.Sender, step.Action)
			for _, e := range events {
				fmt.Fprintf(w, "\t\t\t%s\t%s\n", e.Type, e.Data)
			}
		}

		if err := w.Flush(); err != nil {
			return err
		}

		markets, err := protocol.Markets(ctx, block)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(views.Markets(markets), "", "  ")
		if err != nil {
			return err
		}

		cmd.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}
