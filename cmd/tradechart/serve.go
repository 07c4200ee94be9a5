package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raykavin/tradechart/internal/preview"
)

// Serve command flags
var (
	addr     string
	pageSize int
)

func buildServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an interactive chart preview",
		RunE:  runServe,
	}

	serveCmd.Flags().StringVarP(&candlesFile, "candles", "i", "", "Candle CSV file")
	serveCmd.Flags().StringVar(&tradesFile, "trades", "", "Trade CSV file (mts,price,amount)")
	serveCmd.Flags().StringVarP(&timeFrame, "timeframe", "t", "1m", "Time frame of the candle file")
	serveCmd.Flags().StringSliceVar(&indicators, "indicator", nil, "Indicator spec (e.g. ema:20, rsi:14@#ff0)")
	serveCmd.Flags().IntVar(&width, "width", 1280, "Initial image width")
	serveCmd.Flags().IntVar(&height, "height", 720, "Initial image height")
	serveCmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Listen address")
	serveCmd.Flags().IntVar(&pageSize, "page-size", 300, "Candles loaded up front and per history request")

	serveCmd.MarkFlagRequired("candles")

	return serveCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	candles, trades, err := loadData()
	if err != nil {
		return err
	}

	specs, err := parseIndicators(indicators)
	if err != nil {
		return err
	}

	server, err := preview.NewServer(log, candles, timeFrame,
		preview.WithConfig(cfg),
		preview.WithSize(width, height),
		preview.WithPageSize(pageSize),
		preview.WithIndicators(specs...),
		preview.WithTrades(trades...),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Start(ctx, addr)
}
