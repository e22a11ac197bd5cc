package main

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadlist-cli/internal/fetcher"
	"github.com/sells-group/leadlist-cli/internal/market"
)

var marketOut string

var marketCmd = &cobra.Command{
	Use:   "market [county-stats-file]",
	Short: "Rank county markets by sell-through rate",
	Long:  "Reads a county stats sheet (County, State, Avg Price/Acre, Listings, Sold (12mo)), buckets each county into Hot, Warm, Cool, or Pass, and writes the sheet back sorted hot-first with a Market Potential column.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("market"); err != nil {
			return err
		}

		sheet, err := fetcher.LoadRows(ctx, args[0], fetchOptions())
		if err != nil {
			return err
		}

		result, err := market.Classify(sheet, cfg.Market)
		if err != nil {
			return err
		}

		var out io.Writer = os.Stdout
		if marketOut != "" && marketOut != "-" {
			f, err := os.Create(marketOut)
			if err != nil {
				return eris.Wrapf(err, "market: create %s", marketOut)
			}
			defer f.Close() //nolint:errcheck
			out = f
		}

		w := csv.NewWriter(out)
		if err := w.Write(result.Header); err != nil {
			return eris.Wrap(err, "market: write header")
		}
		if err := w.WriteAll(result.Rows); err != nil {
			return eris.Wrap(err, "market: write rows")
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return eris.Wrap(err, "market: flush output")
		}

		zap.L().Info("market classification complete",
			zap.Int("hot", result.Counts[market.CategoryHot]),
			zap.Int("warm", result.Counts[market.CategoryWarm]),
			zap.Int("cool", result.Counts[market.CategoryCool]),
			zap.Int("pass", result.Counts[market.CategoryPass]),
		)
		return nil
	},
}

func init() {
	marketCmd.Flags().StringVar(&marketOut, "out", "-", "output CSV path (- for stdout)")
	rootCmd.AddCommand(marketCmd)
}
