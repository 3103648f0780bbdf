package cmd

import (
	"lending/handler/views"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:     "account <account>",
	Aliases: []string{"acc"},
	Short:   "show positions and liquidity of an account",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database := openDatabase()
		if database != nil {
			defer database.Close()
		}

		p := providePool(provideStore(database), provideRateModels(), provideTransfer())
		v, err := p.Valuate(ctx, args[0])
		if err != nil {
			return err
		}

		view, err := views.AccountView(v)
		if err != nil {
			return err
		}

		return printJSON(cmd, view)
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
}
