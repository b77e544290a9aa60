package cmd

import (
	"encoding/json"
	"net/url"

	"moneymarket/pkg/resthttp"

	"github.com/spf13/cobra"
)

var marketsCmd = &cobra.Command{
	Use:     "markets [symbol]",
	Aliases: []string{"market"},
	Short:   "show markets accrued to the current block",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/api/markets"
		if len(args) > 0 {
			path += "/" + url.PathEscape(args[0])
		}

		return getJSON(cmd, path)
	},
}

var accountCmd = &cobra.Command{
	Use:   "account <address>",
	Short: "show liquidity and positions of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getJSON(cmd, "/api/accounts/"+url.PathEscape(args[0]))
	},
}

func getJSON(cmd *cobra.Command, path string) error {
	host, _ := cmd.Flags().GetString("host")

	var resp json.RawMessage
	if _, err := resthttp.Execute(resthttp.Request(cmd.Context()), "GET", host+path, nil, &resp); err != nil {
		return err
	}

	cmd.Println(string(resp))
	return nil
}

func init() {
	for _, c := range []*cobra.Command{marketsCmd, accountCmd} {
		rootCmd.AddCommand(c)
		c.Flags().String("host", "http://localhost:9000", "api server")
	}
}
