package cmd

import (
	"encoding/json"
	"errors"

	"lending/handler/views"
	"lending/pkg/fixed"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var listMarketCmd = &cobra.Command{
	Use:     "list-market",
	Aliases: []string{"lm"},
	Short:   "list a new market",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		asset, _ := cmd.Flags().GetString("asset")
		model, _ := cmd.Flags().GetString("model")
		caller, _ := cmd.Flags().GetString("caller")
		if asset == "" || model == "" {
			return errors.New("asset and model are required")
		}

		rf, err := factorFlag(cmd, "rf")
		if err != nil {
			return err
		}

		cf, err := factorFlag(cmd, "cf")
		if err != nil {
			return err
		}

		database := openDatabase()
		if database != nil {
			defer database.Close()
		}

		models := provideRateModels()
		p := providePool(provideStore(database), models, provideTransfer())
		if err := p.ListMarket(ctx, caller, asset, model, rf, cf); err != nil {
			return err
		}

		m, err := p.Market(ctx, asset)
		if err != nil {
			return err
		}

		return printJSON(cmd, views.MarketView(m, models))
	},
}

var accrueCmd = &cobra.Command{
	Use:   "accrue <asset>",
	Short: "accrue interest of a market up to now",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database := openDatabase()
		if database != nil {
			defer database.Close()
		}

		models := provideRateModels()
		p := providePool(provideStore(database), models, provideTransfer())
		m, err := p.Accrue(ctx, args[0])
		if err != nil {
			return err
		}

		return printJSON(cmd, views.MarketView(m, models))
	},
}

func factorFlag(cmd *cobra.Command, name string) (*uint256.Int, error) {
	s, _ := cmd.Flags().GetString(name)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}

	return fixed.FromDecimal(d)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	cmd.Println(string(data))
	return nil
}

func init() {
	rootCmd.AddCommand(listMarketCmd)
	listMarketCmd.Flags().String("asset", "", "asset id")
	listMarketCmd.Flags().String("model", "", "rate model name")
	listMarketCmd.Flags().String("rf", "0.1", "reserve factor")
	listMarketCmd.Flags().String("cf", "0.75", "collateral factor")
	listMarketCmd.Flags().String("caller", "", "admin account listing the market")

	rootCmd.AddCommand(accrueCmd)
}
