package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/raykavin/tradechart/internal/feed"
)

func buildResampleCmd() *cobra.Command {
	var (
		input      string
		output     string
		target     string
		window     time.Duration
		heikinAshi bool
	)

	resampleCmd := &cobra.Command{
		Use:   "resample",
		Short: "Aggregate a candle CSV file into a wider time frame",
		RunE: func(cmd *cobra.Command, _ []string) error {
			candles, err := feed.LoadCandles(input)
			if err != nil {
				return err
			}

			if window > 0 {
				candles = feed.Limit(candles, window)
			}

			if candles, err = feed.Resample(candles, target); err != nil {
				return err
			}

			if heikinAshi {
				candles = feed.HeikinAshi(candles)
			}

			if output == "" {
				return feed.WriteCandles(cmd.OutOrStdout(), candles)
			}

			file, err := os.Create(output)
			if err != nil {
				return err
			}
			defer file.Close()

			return feed.WriteCandles(file, candles)
		},
	}

	resampleCmd.Flags().StringVarP(&input, "candles", "i", "", "Candle CSV file")
	resampleCmd.Flags().StringVarP(&output, "output", "o", "", "Output CSV file, stdout when empty")
	resampleCmd.Flags().StringVarP(&target, "timeframe", "t", "5m", "Target time frame")
	resampleCmd.Flags().DurationVar(&window, "limit", 0, "Keep only the most recent duration of candles")
	resampleCmd.Flags().BoolVar(&heikinAshi, "heikin-ashi", false, "Write Heikin-Ashi candles")

	resampleCmd.MarkFlagRequired("candles")

	return resampleCmd
}
