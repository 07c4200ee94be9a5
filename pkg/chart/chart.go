// Package chart is the candlestick chart engine. It owns the viewport, the
// visible window, the indicator series and the drawing tools, and renders
// them onto a fixed set of layered surfaces.
package chart

import (
	"errors"
	"fmt"

	"github.com/raykavin/tradechart/pkg/config"
	"github.com/raykavin/tradechart/pkg/core"
	"github.com/raykavin/tradechart/pkg/drawing"
	"github.com/raykavin/tradechart/pkg/geometry"
	"github.com/raykavin/tradechart/pkg/indicator"
	"github.com/raykavin/tradechart/pkg/logger"
	"github.com/raykavin/tradechart/pkg/surface"
)

var (
	ErrMissingSurface = errors.New("missing required surface")
	ErrAlreadyMounted = errors.New("chart already mounted")
)

// Surfaces are the layers the engine renders onto, one per render pass.
// Crosshair is optional; without it the crosshair shares the drawing layer.
type Surfaces struct {
	OHLC      surface.Surface
	Axis      surface.Surface
	Indicator surface.Surface
	Drawing   surface.Surface
	Orders    surface.Surface
	Crosshair surface.Surface
}

func (s Surfaces) validate() error {
	required := []struct {
		name    string
		surface surface.Surface
	}{
		{"ohlc", s.OHLC},
		{"axis", s.Axis},
		{"indicator", s.Indicator},
		{"drawing", s.Drawing},
		{"orders", s.Orders},
	}

	for _, r := range required {
		if r.surface == nil {
			return fmt.Errorf("%w: %s", ErrMissingSurface, r.name)
		}
	}
	return nil
}

// Callbacks report engine events to the host. Nil callbacks are skipped.
type Callbacks struct {
	// OnLoadMore asks the host for older candles, with a suggested count
	OnLoadMore        func(count int)
	OnTimeFrameChange func(timeFrame string)
	OnHoveredCandle   func(candle core.Candle)
	// OnUpdateIndicatorSettings reports where indicator labels sit so the
	// host can place its own menus over them
	OnUpdateIndicatorSettings func(settings []indicator.Settings, ohlcHeight, slotHeight float64)
}

// Chart is the engine. It is not safe for concurrent use.
type Chart struct {
	log       logger.Logger
	cfg       config.Config
	theme     theme
	surfaces  Surfaces
	callbacks Callbacks
	viewport  Viewport
	drawings  *drawing.Controller

	candles   core.Candles
	timeFrame string
	specs     []indicator.Spec
	series    []indicator.Series
	colors    []surface.Color
	trades    []core.Trade
	orders    []core.Order
	position  *core.Position

	width       float64
	height      float64
	annotations []drawing.Annotation

	dragging  bool
	dragStart geometry.Point
	hover     *geometry.Point
	loadMore  bool
	mounted   bool
}

// Option configures a Chart at construction
type Option func(*Chart)

// WithCandles sets the initial candle history and its time frame
func WithCandles(candles core.Candles, timeFrame string) Option {
	return func(c *Chart) {
		c.candles = candles
		c.timeFrame = timeFrame
	}
}

// WithIndicators sets the initial indicator specs
func WithIndicators(specs ...indicator.Spec) Option {
	return func(c *Chart) {
		c.specs = specs
	}
}

// WithTrades sets the executed trades drawn as markers
func WithTrades(trades ...core.Trade) Option {
	return func(c *Chart) {
		c.trades = trades
	}
}

// WithOrders sets the resting orders drawn as price levels
func WithOrders(orders ...core.Order) Option {
	return func(c *Chart) {
		c.orders = orders
	}
}

// WithPosition sets the open position
func WithPosition(position core.Position) Option {
	return func(c *Chart) {
		c.position = &position
	}
}

// WithCallbacks registers the host callbacks
func WithCallbacks(callbacks Callbacks) Option {
	return func(c *Chart) {
		c.callbacks = callbacks
	}
}

// WithConfig replaces the default configuration
func WithConfig(cfg config.Config) Option {
	return func(c *Chart) {
		c.cfg = cfg
	}
}

// WithDimensions sets the host pixel size. It defaults to the size of the
// OHLC surface.
func WithDimensions(width, height float64) Option {
	return func(c *Chart) {
		c.width = width
		c.height = height
	}
}

// WithAnnotations seeds the drawing list
func WithAnnotations(annotations ...drawing.Annotation) Option {
	return func(c *Chart) {
		c.annotations = annotations
	}
}

// New creates an unmounted chart. It fails when a required surface is
// missing or the configuration is invalid.
func New(log logger.Logger, surfaces Surfaces, options ...Option) (*Chart, error) {
	if log == nil {
		log = logger.Nop()
	}

	if err := surfaces.validate(); err != nil {
		log.WithError(err).Error("chart construction failed")
		return nil, err
	}

	c := &Chart{
		log:      log,
		cfg:      config.Default(),
		surfaces: surfaces,
	}

	for _, option := range options {
		option(c)
	}

	if err := c.cfg.Validate(); err != nil {
		err = fmt.Errorf("invalid chart configuration: %w", err)
		log.WithError(err).Error("chart construction failed")
		return nil, err
	}

	var err error
	if c.theme, err = newTheme(c.cfg); err != nil {
		log.WithError(err).Error("chart construction failed")
		return nil, err
	}

	if c.width == 0 && c.height == 0 {
		size := surfaces.OHLC.Size()
		c.width, c.height = size.W, size.H
	}

	c.viewport = NewViewport(c.cfg.Zoom, c.cfg.Margins)
	c.viewport.SetPixelSize(c.width, c.height)
	c.drawings = drawing.NewController(log)
	c.drawings.Replace(c.annotations)
	c.annotations = nil

	if err := c.setIndicators(c.specs); err != nil {
		log.WithError(err).Error("chart construction failed")
		return nil, err
	}

	return c, nil
}

// Mount performs the first render. A chart mounts once.
func (c *Chart) Mount() error {
	if c.mounted {
		c.log.WithError(ErrAlreadyMounted).Error("chart mount failed")
		return ErrAlreadyMounted
	}

	c.mounted = true
	c.log.WithFields(map[string]any{
		"candles":    len(c.candles),
		"time_frame": c.timeFrame,
		"indicators": len(c.specs),
		"width":      c.width,
		"height":     c.height,
	}).Info("chart mounted")

	c.Render()
	return nil
}

// Mounted reports whether Mount succeeded
func (c *Chart) Mounted() bool { return c.mounted }

// Config returns the engine configuration
func (c *Chart) Config() config.Config { return c.cfg }

// Viewport returns a copy of the viewport state
func (c *Chart) Viewport() Viewport { return c.viewport }

// Candles returns the candle history
func (c *Chart) Candles() core.Candles { return c.candles }

// TimeFrame returns the current candle width identifier
func (c *Chart) TimeFrame() string { return c.timeFrame }

// Series returns the computed indicator series, one per spec
func (c *Chart) Series() []indicator.Series { return c.series }

// Drawings returns the drawing tool controller
func (c *Chart) Drawings() *drawing.Controller { return c.drawings }

// UpdateData replaces the candle history. An empty timeFrame keeps the
// current one.
func (c *Chart) UpdateData(candles core.Candles, timeFrame string) {
	c.candles = candles
	if timeFrame != "" {
		c.timeFrame = timeFrame
	}
	c.loadMore = false

	c.log.WithFields(map[string]any{
		"candles":    len(candles),
		"time_frame": c.timeFrame,
	}).Debug("chart data replaced")

	c.recompute()
	c.renderIfMounted()
}

// UpdateDimensions resizes the chart to the host pixel size
func (c *Chart) UpdateDimensions(width, height float64) {
	c.width, c.height = width, height
	c.viewport.SetPixelSize(width, height)
	c.renderIfMounted()
}

// UpdateTrades replaces the trade markers
func (c *Chart) UpdateTrades(trades []core.Trade) {
	c.trades = trades
	c.renderIfMounted()
}

// UpdateOrders replaces the order levels
func (c *Chart) UpdateOrders(orders []core.Order) {
	c.orders = orders
	c.renderIfMounted()
}

// UpdatePosition replaces the open position. Nil clears it.
func (c *Chart) UpdatePosition(position *core.Position) {
	c.position = position
	c.renderIfMounted()
}

// UpdateIndicators replaces the indicator specs and recomputes every series
func (c *Chart) UpdateIndicators(specs []indicator.Spec) error {
	if err := c.setIndicators(specs); err != nil {
		return err
	}
	c.renderIfMounted()
	return nil
}

// UpdateAnnotations replaces the drawing list
func (c *Chart) UpdateAnnotations(annotations []drawing.Annotation) {
	c.drawings.Replace(annotations)
	c.renderIfMounted()
}

// SelectTool starts placing a new annotation
func (c *Chart) SelectTool(tool drawing.Tool) (drawing.Annotation, error) {
	annotation, err := c.drawings.Select(tool)
	if err != nil {
		return nil, err
	}
	c.renderIfMounted()
	return annotation, nil
}

// CancelTool discards the annotation being placed or edited
func (c *Chart) CancelTool() {
	c.drawings.Cancel()
	c.renderIfMounted()
}

// RequestTimeFrame asks the host for another candle width. The engine keeps
// its data until the host answers with UpdateData.
func (c *Chart) RequestTimeFrame(timeFrame string) error {
	if !core.IsKnownTimeFrame(timeFrame) {
		return fmt.Errorf("%w: %s", core.ErrInvalidTimeFrame, timeFrame)
	}

	c.log.WithField("time_frame", timeFrame).Debug("time frame requested")
	if c.callbacks.OnTimeFrameChange != nil {
		c.callbacks.OnTimeFrameChange(timeFrame)
	}
	return nil
}

func (c *Chart) setIndicators(specs []indicator.Spec) error {
	specs = append([]indicator.Spec(nil), specs...)
	colors := make([]surface.Color, len(specs))
	palette := c.cfg.Indicators.Palette

	for i := range specs {
		if err := specs[i].Validate(); err != nil {
			return err
		}

		if specs[i].Color == "" {
			specs[i].Color = palette[i%len(palette)]
		}

		color, err := surface.ParseColor(specs[i].Color)
		if err != nil {
			return fmt.Errorf("indicator %s: %w", specs[i], err)
		}
		colors[i] = color
	}

	c.specs = specs
	c.colors = colors
	c.recompute()
	return nil
}

func (c *Chart) recompute() {
	c.series = indicator.Compute(c.candles, c.specs)
	c.log.WithFields(map[string]any{
		"candles":    len(c.candles),
		"indicators": len(c.specs),
	}).Debug("indicators recomputed")
}

func (c *Chart) renderIfMounted() {
	if c.mounted {
		c.Render()
	}
}
