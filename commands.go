package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/charlerive/optionpricer/config"
	"github.com/charlerive/optionpricer/option"
	"github.com/charlerive/optionpricer/report"
	"github.com/charlerive/optionpricer/volatility"
)

type contractFlags struct {
	spot, strike, maturity, rate, vol, dividend float64
	steps                                       int
	optionType                                  string
}

func (f *contractFlags) register(flags *pflag.FlagSet, withMarket, withSteps bool) {
	if withMarket {
		flags.Float64Var(&f.spot, "spot", 0, "Spot price of the underlying. This flag is required.")
		flags.Float64Var(&f.vol, "vol", 0, "Annualized volatility, e.g. 0.3 for 30%. This flag is required.")
	}
	flags.Float64Var(&f.strike, "strike", 0, "Strike price. This flag is required.")
	flags.Float64VarP(&f.maturity, "maturity", "T", 0, "Time to expiry in years, e.g. 0.25. This flag is required.")
	flags.Float64VarP(&f.rate, "rate", "r", 0, "Continuously compounded risk-free rate. Defaults to the config value.")
	flags.Float64VarP(&f.dividend, "dividend", "q", 0, "Continuous dividend yield. Defaults to the config value.")
	if withSteps {
		flags.IntVarP(&f.steps, "steps", "n", 0, "Lattice steps. Defaults to the config value.")
	}
}

// apply fills unset flags from the config.
func (f *contractFlags) apply(flags *pflag.FlagSet, cfg config.Config) {
	if !flags.Changed("rate") {
		f.rate = cfg.Rate
	}
	if !flags.Changed("dividend") {
		f.dividend = cfg.Dividend
	}
	if !flags.Changed("steps") {
		f.steps = cfg.Steps
	}
}

func (f *contractFlags) params() option.Params {
	return option.Params{
		Spot:       f.spot,
		Strike:     f.strike,
		Maturity:   f.maturity,
		Rate:       f.rate,
		Volatility: f.vol,
		Dividend:   f.dividend,
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		cfg        = config.Default()
	)

	rootCmd := &cobra.Command{
		Use:           "optionpricer",
		Short:         "Price European options",
		Long:          `Prices European calls and puts with the Black-Scholes-Merton formula and a Cox-Ross-Rubinstein binomial lattice.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			log.SetLevel(cfg.Level())
			log.WithFields(log.Fields{
				"config": configPath,
				"rate":   cfg.Rate,
				"steps":  cfg.Steps,
			}).Debug("configuration loaded")
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML file with default rate, dividend, steps and trading_days.")

	rootCmd.AddCommand(
		newPriceCmd(&cfg),
		newEstimateCmd(&cfg),
		newConvergeCmd(&cfg),
	)
	return rootCmd
}

func newPriceCmd(cfg *config.Config) *cobra.Command {
	f := &contractFlags{}
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a call and a put with both methods",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.apply(cmd.Flags(), *cfg)
			p := f.params()
			quotes, err := report.Quotes(p, f.steps)
			if err != nil {
				return err
			}
			report.RenderQuotes(cmd.OutOrStdout(), p, quotes)
			return nil
		},
	}
	f.register(cmd.Flags(), true, true)
	markRequired(cmd, "spot", "strike", "maturity", "vol")
	return cmd
}

func newEstimateCmd(cfg *config.Config) *cobra.Command {
	f := &contractFlags{}
	var historyPath string
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate spot and volatility from a price history CSV, then price",
		Long: `Reads a CSV with "date" and "close" columns, oldest row first. Spot is the last close and
volatility is the sample standard deviation of log returns annualized by the configured trading days.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.apply(cmd.Flags(), *cfg)

			bars, err := volatility.LoadHistoryFile(historyPath)
			if err != nil {
				return err
			}
			spot, vol, err := volatility.EstimateWithPeriods(volatility.Closes(bars), cfg.TradingDays)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"rows": len(bars),
				"spot": spot,
				"vol":  vol,
			}).Info("estimated parameters from history")

			f.spot, f.vol = spot, vol
			p := f.params()
			quotes, err := report.Quotes(p, f.steps)
			if err != nil {
				return err
			}
			report.RenderQuotes(cmd.OutOrStdout(), p, quotes)
			return nil
		},
	}
	f.register(cmd.Flags(), false, true)
	cmd.Flags().StringVar(&historyPath, "history", "", "Price history CSV file. This flag is required.")
	markRequired(cmd, "history", "strike", "maturity")
	return cmd
}

func newConvergeCmd(cfg *config.Config) *cobra.Command {
	f := &contractFlags{}
	var steps []int
	cmd := &cobra.Command{
		Use:   "converge",
		Short: "Compare lattice prices at several step counts with the closed form",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.apply(cmd.Flags(), *cfg)
			t, err := option.ParseType(f.optionType)
			if err != nil {
				return err
			}
			rows, err := report.Convergence(f.params(), t, steps)
			if err != nil {
				return err
			}
			report.RenderConvergence(cmd.OutOrStdout(), t, rows)
			return nil
		},
	}
	f.register(cmd.Flags(), true, false)
	cmd.Flags().StringVar(&f.optionType, "type", "call", "Option type, call or put.")
	cmd.Flags().IntSliceVar(&steps, "step-counts", []int{10, 50, 100, 500, 1000, 2000}, "Comma separated lattice step counts.")
	markRequired(cmd, "spot", "strike", "maturity", "vol")
	return cmd
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("flag %s: %v", name, err))
		}
	}
}
