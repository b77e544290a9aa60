package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"moneymarket/core"
	"moneymarket/pkg/id"
	"moneymarket/pkg/resthttp"

	"github.com/asaskevich/govalidator"
	"github.com/spf13/cobra"
)

var actionCmd = &cobra.Command{
	Use:     "action <name>",
	Aliases: []string{"submit"},
	Short:   "submit an action to the operation journal",
	Example: "lending action mint --sender alice --param market=cDAI --param amount=1000",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		action := core.NewAction(core.ParseActionType(args[0]))
		if action == nil {
			return fmt.Errorf("%w: %s", core.ErrUnknownAction, args[0])
		}

		params, _ := cmd.Flags().GetStringToString("param")
		body, err := json.Marshal(actionParams(params))
		if err != nil {
			return err
		}

		if err := json.Unmarshal(body, action); err != nil {
			return err
		}

		if _, err := govalidator.ValidateStruct(action); err != nil {
			return err
		}

		traceID, _ := cmd.Flags().GetString("trace")
		if traceID == "" {
			traceID = id.GenTraceID()
		}

		host, _ := cmd.Flags().GetString("host")
		sender, _ := cmd.Flags().GetString("sender")

		req := resthttp.Request(ctx).SetAuthToken(sender)
		var op json.RawMessage
		if _, err := resthttp.Execute(req, "POST", host+"/api/operations", map[string]interface{}{
			"trace_id": traceID,
			"action":   action.ActionType().String(),
			"params":   action,
		}, &op); err != nil {
			return err
		}

		cmd.Println(string(op))
		return nil
	},
}

// actionParams key=value pairs as a json object, markets is a comma list
func actionParams(params map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(params))
	for k, v := range params {
		if k == "markets" {
			out[k] = strings.Split(v, ",")
			continue
		}

		out[k] = v
	}

	return out
}

func init() {
	rootCmd.AddCommand(actionCmd)
	actionCmd.Flags().String("host", "http://localhost:9000", "api server")
	actionCmd.Flags().String("sender", "", "sender address")
	actionCmd.Flags().String("trace", "", "trace id, random if empty")
	actionCmd.Flags().StringToString("param", nil, "action param as key=value")
	_ = actionCmd.MarkFlagRequired("sender")
}
