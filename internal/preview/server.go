// Package preview serves a live chart over HTTP. Browsers fetch the
// composed image from /chart.png and drive the chart through pointer
// events sent over /ws.
package preview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/raykavin/tradechart/internal/feed"
	"github.com/raykavin/tradechart/pkg/chart"
	"github.com/raykavin/tradechart/pkg/config"
	"github.com/raykavin/tradechart/pkg/core"
	"github.com/raykavin/tradechart/pkg/indicator"
	"github.com/raykavin/tradechart/pkg/logger"
	"github.com/raykavin/tradechart/pkg/surface"
)

const (
	defaultWidth    = 1280
	defaultHeight   = 720
	defaultPageSize = 300
	broadcastBuffer = 100
	shutdownTimeout = 5 * time.Second
)

// Message is sent to websocket clients
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Server owns a chart rendered onto raster layers. The chart is not safe
// for concurrent use, so every handler holds the server lock while it
// touches it.
type Server struct {
	sync.Mutex
	log        logger.Logger
	cfg        config.Config
	chart      *chart.Chart
	canvas     *Canvas
	background surface.Color

	history   core.Candles
	timeFrame string
	pager     *feed.Pager
	pageSize  int
	width     int
	height    int
	specs     []indicator.Spec
	trades    []core.Trade

	registry   *prometheus.Registry
	metrics    *metrics
	upgrader   websocket.Upgrader
	clientsMu  sync.RWMutex
	clients    map[*websocket.Conn]struct{}
	broadcasts chan Message
	done       chan struct{}
	stopped    chan struct{}
	closeOnce  sync.Once
	lastUpdate time.Time
}

// Option configures a Server
type Option func(*Server)

// WithSize sets the initial image size
func WithSize(width, height int) Option {
	return func(s *Server) {
		s.width, s.height = width, height
	}
}

// WithPageSize sets how many candles are loaded up front
func WithPageSize(size int) Option {
	return func(s *Server) {
		s.pageSize = size
	}
}

// WithConfig replaces the default chart configuration
func WithConfig(cfg config.Config) Option {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// WithIndicators sets the chart indicators
func WithIndicators(specs ...indicator.Spec) Option {
	return func(s *Server) {
		s.specs = specs
	}
}

// WithTrades sets the trade markers
func WithTrades(trades ...core.Trade) Option {
	return func(s *Server) {
		s.trades = trades
	}
}

// NewServer builds and mounts a chart over history, which holds candles of
// the given time frame
func NewServer(log logger.Logger, history core.Candles, timeFrame string, options ...Option) (*Server, error) {
	s := &Server{
		log:       log,
		cfg:       config.Default(),
		history:   history,
		timeFrame: timeFrame,
		pageSize:  defaultPageSize,
		width:     defaultWidth,
		height:    defaultHeight,
		registry:  prometheus.NewRegistry(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients:    make(map[*websocket.Conn]struct{}),
		broadcasts: make(chan Message, broadcastBuffer),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		lastUpdate: time.Now(),
	}

	for _, option := range options {
		option(s)
	}

	s.metrics = newMetrics(s.registry)

	var err error
	if s.background, err = surface.ParseColor(s.cfg.Colors.Background); err != nil {
		return nil, fmt.Errorf("invalid background color: %w", err)
	}

	if s.canvas, err = NewCanvas(s.width, s.height, s.cfg.Axis.FontSize); err != nil {
		return nil, err
	}

	s.pager = feed.NewPager(history, s.pageSize)
	s.chart, err = chart.New(log, s.canvas.Surfaces(),
		chart.WithConfig(s.cfg),
		chart.WithCandles(s.pager.Loaded(), timeFrame),
		chart.WithIndicators(s.specs...),
		chart.WithTrades(s.trades...),
		chart.WithDimensions(float64(s.width), float64(s.height)),
		chart.WithCallbacks(chart.Callbacks{
			OnLoadMore:        s.onLoadMore,
			OnTimeFrameChange: s.onTimeFrameChange,
			OnHoveredCandle:   s.onHoveredCandle,
		}),
	)
	if err != nil {
		return nil, err
	}

	if err := s.chart.Mount(); err != nil {
		return nil, err
	}

	go s.handleBroadcasts()
	return s, nil
}

// Handler returns the preview routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/chart.png", s.handleImage)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

// Start serves the preview on addr until ctx is done
func (s *Server) Start(ctx context.Context, addr string) error {
	defer s.Close()

	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("chart preview listening")
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.Close()
		return server.Shutdown(shutdownCtx)
	}
}

func (s *Server) onLoadMore(count int) {
	s.metrics.loadMore.Inc()

	candles, ok := s.pager.More(count)
	if !ok {
		s.log.Debug("candle history exhausted")
		return
	}

	s.chart.UpdateData(candles, "")
	s.broadcast(Message{Type: "candles", Payload: map[string]any{"count": len(candles)}})
}

func (s *Server) onTimeFrameChange(timeFrame string) {
	candles, err := feed.Resample(s.history, timeFrame)
	if err != nil {
		s.log.WithError(err).Warn("time frame change rejected")
		return
	}

	s.pager = feed.NewPager(candles, s.pageSize)
	s.chart.UpdateData(s.pager.Loaded(), timeFrame)
	s.broadcast(Message{Type: "timeFrame", Payload: map[string]any{"timeFrame": timeFrame}})
}

func (s *Server) onHoveredCandle(candle core.Candle) {
	s.broadcast(Message{Type: "hover", Payload: candle})
}

// broadcast queues msg for every client without blocking the chart
// Close stops the broadcast loop and disconnects every websocket client.
// It is safe to call more than once.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		<-s.stopped
		s.closeClients()
	})
}

func (s *Server) broadcast(msg Message) {
	select {
	case <-s.done:
	case s.broadcasts <- msg:
	default:
		s.log.WithField("type", msg.Type).Warn("broadcast queue full, message dropped")
	}
}

func (s *Server) handleBroadcasts() {
	defer close(s.stopped)

	for {
		select {
		case <-s.done:
			return
		case msg := <-s.broadcasts:
			s.send(msg)
		}
	}
}

func (s *Server) send(msg Message) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	for conn := range s.clients {
		if err := conn.WriteJSON(msg); err != nil {
			s.log.WithError(err).Error("failed to send websocket message")
			conn.Close()
		}
	}
}

func (s *Server) closeClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for conn := range s.clients {
		conn.Close()
	}
}
