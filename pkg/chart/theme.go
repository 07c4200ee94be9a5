package chart

import (
	"fmt"

	"github.com/raykavin/tradechart/pkg/config"
	"github.com/raykavin/tradechart/pkg/drawing"
	"github.com/raykavin/tradechart/pkg/surface"
)

// theme is the parsed form of config.Colors
type theme struct {
	axis           surface.Color
	axisTick       surface.Color
	axisLabel      surface.Color
	crosshair      surface.Color
	crosshairBox   surface.Color
	crosshairText  surface.Color
	risingCandle   surface.Color
	fallingCandle  surface.Color
	risingVolume   surface.Color
	fallingVolume  surface.Color
	buyMarker      surface.Color
	sellMarker     surface.Color
	indicatorLabel surface.Color
	buyOrder       surface.Color
	sellOrder      surface.Color
	longPosition   surface.Color
	shortPosition  surface.Color
	drawing        drawing.Style
}

func newTheme(cfg config.Config) (theme, error) {
	var (
		t   theme
		err error
	)

	parse := func(name, raw string) surface.Color {
		if err != nil {
			return surface.Color{}
		}
		var color surface.Color
		if color, err = surface.ParseColor(raw); err != nil {
			err = fmt.Errorf("colors.%s: %w", name, err)
		}
		return color
	}

	colors := cfg.Colors
	t.axis = parse("axis", colors.Axis)
	t.axisTick = parse("axis_tick", colors.AxisTick)
	t.axisLabel = parse("axis_label", colors.AxisLabel)
	t.crosshair = parse("crosshair", colors.Crosshair)
	t.crosshairBox = parse("crosshair_box", colors.CrosshairBox)
	t.crosshairText = parse("crosshair_text", colors.CrosshairTxt)
	t.risingCandle = parse("rising_candle", colors.RisingCandle)
	t.fallingCandle = parse("falling_candle", colors.FallingCandle)
	t.risingVolume = parse("rising_volume", colors.RisingVolume)
	t.fallingVolume = parse("falling_volume", colors.FallingVolume)
	t.buyMarker = parse("buy_marker", colors.BuyMarker)
	t.sellMarker = parse("sell_marker", colors.SellMarker)
	t.indicatorLabel = parse("indicator_label", colors.IndicatorLabel)
	t.buyOrder = parse("buy_order", colors.BuyOrder)
	t.sellOrder = parse("sell_order", colors.SellOrder)
	t.longPosition = parse("long_position", colors.LongPosition)
	t.shortPosition = parse("short_position", colors.ShortPosition)
	t.drawing = drawing.Style{
		Color:  parse("drawing", colors.Drawing),
		Active: parse("drawing_active", colors.DrawingActive),
	}

	return t, err
}

func (t theme) candle(rising bool) (body, volume surface.Color) {
	if rising {
		return t.risingCandle, t.risingVolume
	}
	return t.fallingCandle, t.fallingVolume
}
