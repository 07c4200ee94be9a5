// Package config holds the immutable chart configuration. A Config is built
// once, validated, and passed by value to every engine component.
package config

import (
	"errors"
	"fmt"

	"github.com/raykavin/tradechart/pkg/surface"
)

// Colors groups every color the engine draws with. Values are CSS-like
// strings accepted by surface.ParseColor.
type Colors struct {
	Background     string `mapstructure:"background"`
	Axis           string `mapstructure:"axis"`
	AxisTick       string `mapstructure:"axis_tick"`
	AxisLabel      string `mapstructure:"axis_label"`
	Crosshair      string `mapstructure:"crosshair"`
	CrosshairBox   string `mapstructure:"crosshair_box"`
	CrosshairTxt   string `mapstructure:"crosshair_text"`
	RisingCandle   string `mapstructure:"rising_candle"`
	FallingCandle  string `mapstructure:"falling_candle"`
	RisingVolume   string `mapstructure:"rising_volume"`
	FallingVolume  string `mapstructure:"falling_volume"`
	BuyMarker      string `mapstructure:"buy_marker"`
	SellMarker     string `mapstructure:"sell_marker"`
	IndicatorLabel string `mapstructure:"indicator_label"`
	Drawing        string `mapstructure:"drawing"`
	DrawingActive  string `mapstructure:"drawing_active"`
	BuyOrder       string `mapstructure:"buy_order"`
	SellOrder      string `mapstructure:"sell_order"`
	LongPosition   string `mapstructure:"long_position"`
	ShortPosition  string `mapstructure:"short_position"`
}

// Margins are the fixed pixel bands reserved around the primary plot
type Margins struct {
	Right      float64 `mapstructure:"right"`
	Bottom     float64 `mapstructure:"bottom"`
	AxisBottom float64 `mapstructure:"axis_bottom"`
}

// Axis configures tick density and label typography
type Axis struct {
	XTickCount  int     `mapstructure:"x_tick_count"`
	YTickCount  int     `mapstructure:"y_tick_count"`
	FontSize    float64 `mapstructure:"font_size"`
	LabelMargin float64 `mapstructure:"label_margin"`
	TimeLayout  string  `mapstructure:"time_layout"`
	DayLayout   string  `mapstructure:"day_layout"`
	HoverLayout string  `mapstructure:"hover_layout"`
}

// Zoom configures the visible candle count
type Zoom struct {
	DefaultCandles int `mapstructure:"default_candles"`
	Step           int `mapstructure:"step"`
	MinCandles     int `mapstructure:"min_candles"`
}

// Indicators configures the indicator panel layout
type Indicators struct {
	// SlotHeight is the pixel height each external indicator claims from the
	// primary plot, before the half-height cap applies
	SlotHeight float64   `mapstructure:"slot_height"`
	LabelX     float64   `mapstructure:"label_x"`
	RSIBands   []float64 `mapstructure:"rsi_bands"`
	Palette    []string  `mapstructure:"palette"`
}

// labelRowsPerSlot is how many overlay labels fit in the height of one slot
const labelRowsPerSlot = 3

// LabelStep is the vertical distance between stacked overlay labels. It
// follows SlotHeight so labels and slots share one scale.
func (i Indicators) LabelStep() float64 {
	return i.SlotHeight / labelRowsPerSlot
}

// Config is the complete engine configuration
type Config struct {
	Colors      Colors     `mapstructure:"colors"`
	Margins     Margins    `mapstructure:"margins"`
	Axis        Axis       `mapstructure:"axis"`
	Zoom        Zoom       `mapstructure:"zoom"`
	Indicators  Indicators `mapstructure:"indicators"`
	TradeRadius float64    `mapstructure:"trade_radius"`
	// VolumeHeight is the share of the OHLC height the tallest volume bar reaches
	VolumeHeight float64 `mapstructure:"volume_height"`
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		Colors: Colors{
			Background:     "#000",
			Axis:           "#333",
			AxisTick:       "#222",
			AxisLabel:      "#999",
			Crosshair:      "#666",
			CrosshairBox:   "#ccc",
			CrosshairTxt:   "#000",
			RisingCandle:   "#0f0",
			FallingCandle:  "#f00",
			RisingVolume:   "rgba(0, 255, 0, 0.3)",
			FallingVolume:  "rgba(255, 0, 0, 0.3)",
			BuyMarker:      "#0f0",
			SellMarker:     "#f00",
			IndicatorLabel: "#fff",
			Drawing:        "#fff",
			DrawingActive:  "#ff0",
			BuyOrder:       "rgba(0, 255, 0, 0.6)",
			SellOrder:      "rgba(255, 0, 0, 0.6)",
			LongPosition:   "#0ff",
			ShortPosition:  "#f0f",
		},
		Margins: Margins{
			Right:      50.5,
			Bottom:     25,
			AxisBottom: 50,
		},
		Axis: Axis{
			XTickCount:  12,
			YTickCount:  8,
			FontSize:    12,
			LabelMargin: 10,
			TimeLayout:  "15:04",
			DayLayout:   "Jan 02",
			HoverLayout: "2006-01-02 15:04:05",
		},
		Zoom: Zoom{
			DefaultCandles: 200,
			Step:           10,
			MinCandles:     10,
		},
		Indicators: Indicators{
			SlotHeight: 100,
			LabelX:     25,
			RSIBands:   []float64{30, 70},
			Palette:    []string{"#f7931a", "#4aa3df", "#e056fd", "#badc58", "#ff7979", "#7ed6df"},
		},
		TradeRadius:  3,
		VolumeHeight: 0.25,
	}
}

// Validate asserts the configuration is usable
func (c Config) Validate() error {
	var errs error

	if c.Zoom.MinCandles < 1 {
		errs = errors.Join(errs, fmt.Errorf("zoom.min_candles must be at least 1, got %d", c.Zoom.MinCandles))
	}
	if c.Zoom.Step < 1 {
		errs = errors.Join(errs, fmt.Errorf("zoom.step must be at least 1, got %d", c.Zoom.Step))
	}
	if c.Zoom.DefaultCandles < c.Zoom.MinCandles {
		errs = errors.Join(errs, fmt.Errorf("zoom.default_candles (%d) is below zoom.min_candles (%d)",
			c.Zoom.DefaultCandles, c.Zoom.MinCandles))
	}
	if c.Axis.XTickCount < 1 || c.Axis.YTickCount < 1 {
		errs = errors.Join(errs, fmt.Errorf("axis tick counts must be positive"))
	}
	if c.Indicators.SlotHeight <= 0 {
		errs = errors.Join(errs, fmt.Errorf("indicators.slot_height must be positive"))
	}
	if c.VolumeHeight <= 0 || c.VolumeHeight > 1 {
		errs = errors.Join(errs, fmt.Errorf("volume_height must be in (0, 1], got %v", c.VolumeHeight))
	}
	if len(c.Indicators.Palette) == 0 {
		errs = errors.Join(errs, fmt.Errorf("indicators.palette cannot be empty"))
	}

	for name, raw := range c.colorTable() {
		if _, err := surface.ParseColor(raw); err != nil {
			errs = errors.Join(errs, fmt.Errorf("colors.%s: %w", name, err))
		}
	}
	for i, raw := range c.Indicators.Palette {
		if _, err := surface.ParseColor(raw); err != nil {
			errs = errors.Join(errs, fmt.Errorf("indicators.palette[%d]: %w", i, err))
		}
	}

	return errs
}

func (c Config) colorTable() map[string]string {
	return map[string]string{
		"background":      c.Colors.Background,
		"axis":            c.Colors.Axis,
		"axis_tick":       c.Colors.AxisTick,
		"axis_label":      c.Colors.AxisLabel,
		"crosshair":       c.Colors.Crosshair,
		"crosshair_box":   c.Colors.CrosshairBox,
		"crosshair_text":  c.Colors.CrosshairTxt,
		"rising_candle":   c.Colors.RisingCandle,
		"falling_candle":  c.Colors.FallingCandle,
		"rising_volume":   c.Colors.RisingVolume,
		"falling_volume":  c.Colors.FallingVolume,
		"buy_marker":      c.Colors.BuyMarker,
		"sell_marker":     c.Colors.SellMarker,
		"indicator_label": c.Colors.IndicatorLabel,
		"drawing":         c.Colors.Drawing,
		"drawing_active":  c.Colors.DrawingActive,
		"buy_order":       c.Colors.BuyOrder,
		"sell_order":      c.Colors.SellOrder,
		"long_position":   c.Colors.LongPosition,
		"short_position":  c.Colors.ShortPosition,
	}
}
