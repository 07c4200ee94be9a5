package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/raykavin/tradechart/internal/feed"
	"github.com/raykavin/tradechart/internal/preview"
	"github.com/raykavin/tradechart/pkg/chart"
	"github.com/raykavin/tradechart/pkg/core"
	"github.com/raykavin/tradechart/pkg/drawing"
	"github.com/raykavin/tradechart/pkg/geometry"
	"github.com/raykavin/tradechart/pkg/indicator"
	"github.com/raykavin/tradechart/pkg/surface"
)

// Render command flags
var (
	candlesFile string
	tradesFile  string
	timeFrame   string
	indicators  []string
	outputFile  string
	width       int
	height      int
	pan         float64
	zoom        int
	levels      []float64
	limit       time.Duration
	heikinAshi  bool
)

func buildRenderCmd() *cobra.Command {
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render a CSV candle file to PNG",
		RunE:  runRender,
	}

	renderCmd.Flags().StringVarP(&candlesFile, "candles", "i", "", "Candle CSV file")
	renderCmd.Flags().StringVar(&tradesFile, "trades", "", "Trade CSV file (mts,price,amount)")
	renderCmd.Flags().StringVarP(&timeFrame, "timeframe", "t", "1m", "Time frame of the candle file")
	renderCmd.Flags().StringSliceVar(&indicators, "indicator", nil, "Indicator spec (e.g. ema:20, rsi:14@#ff0)")
	renderCmd.Flags().StringVarP(&outputFile, "output", "o", "chart.png", "Output PNG file")
	renderCmd.Flags().IntVar(&width, "width", 1280, "Image width")
	renderCmd.Flags().IntVar(&height, "height", 720, "Image height")
	renderCmd.Flags().Float64Var(&pan, "pan", 0, "Pixels to drag the chart towards history")
	renderCmd.Flags().IntVar(&zoom, "zoom", 0, "Zoom steps, negative to zoom in")
	renderCmd.Flags().Float64SliceVar(&levels, "hline", nil, "Horizontal line prices")
	renderCmd.Flags().DurationVar(&limit, "limit", 0, "Keep only the most recent duration of candles")
	renderCmd.Flags().BoolVar(&heikinAshi, "heikin-ashi", false, "Draw Heikin-Ashi candles")

	renderCmd.MarkFlagRequired("candles")

	return renderCmd
}

func runRender(cmd *cobra.Command, _ []string) error {
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

	canvas, err := preview.NewCanvas(width, height, cfg.Axis.FontSize)
	if err != nil {
		return err
	}

	annotations := make([]drawing.Annotation, 0, len(levels))
	for _, price := range levels {
		annotations = append(annotations, drawing.HorizontalLineAt(price))
	}

	var settings []indicator.Settings
	c, err := chart.New(log, canvas.Surfaces(),
		chart.WithConfig(cfg),
		chart.WithCandles(candles, timeFrame),
		chart.WithIndicators(specs...),
		chart.WithTrades(trades...),
		chart.WithAnnotations(annotations...),
		chart.WithDimensions(float64(width), float64(height)),
		chart.WithCallbacks(chart.Callbacks{
			OnLoadMore: func(count int) {
				log.WithField("count", count).Warn("view reaches past the loaded history")
			},
			OnUpdateIndicatorSettings: func(s []indicator.Settings, _, _ float64) {
				settings = s
			},
		}),
	)
	if err != nil {
		return err
	}

	if err := c.Mount(); err != nil {
		return err
	}

	for i := 0; i < abs(zoom); i++ {
		c.Wheel(float64(zoom))
	}

	if pan != 0 {
		c.PointerDown(geometry.Point{})
		c.PointerMove(geometry.Point{X: pan})
		c.PointerUp()
	}

	if err := writeImage(canvas, cfg.Colors.Background); err != nil {
		return err
	}

	log.WithField("file", outputFile).Info("chart rendered")
	printSummary(cmd.OutOrStdout(), c.Frame(), settings)
	return nil
}

func loadData() (core.Candles, []core.Trade, error) {
	candles, err := feed.LoadCandles(candlesFile)
	if err != nil {
		return nil, nil, err
	}

	if limit > 0 {
		candles = feed.Limit(candles, limit)
	}

	if heikinAshi {
		candles = feed.HeikinAshi(candles)
	}

	if tradesFile == "" {
		return candles, nil, nil
	}

	trades, err := feed.LoadTrades(tradesFile)
	if err != nil {
		return nil, nil, err
	}
	return candles, trades, nil
}

func writeImage(canvas *preview.Canvas, background string) error {
	color, err := surface.ParseColor(background)
	if err != nil {
		return err
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := canvas.WritePNG(file, color); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	return file.Close()
}

func printSummary(w io.Writer, f chart.Frame, settings []indicator.Settings) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Indicator", "Placement", "Slot", "Label Y"})
	table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)

	for _, s := range settings {
		slot := "-"
		if s.Slot >= 0 {
			slot = strconv.Itoa(s.Slot)
		}
		table.Append([]string{s.Name, string(s.Placement), slot, strconv.FormatFloat(s.Y, 'f', 1, 64)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d candles", len(f.Candles)),
		fmt.Sprintf("candle %.2fpx", f.CandleWidth),
		fmt.Sprintf("ohlc %.1fpx", f.Layout.OHLCHeight),
		fmt.Sprintf("slot %.1fpx", f.Layout.SlotHeight),
	})
	table.Render()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
