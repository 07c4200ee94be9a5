package preview

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/raykavin/tradechart/pkg/drawing"
	"github.com/raykavin/tradechart/pkg/geometry"
)

// Event types accepted from websocket clients
const (
	EventPointerDown  = "pointerdown"
	EventPointerMove  = "pointermove"
	EventPointerUp    = "pointerup"
	EventPointerLeave = "pointerleave"
	EventWheel        = "wheel"
	EventTool         = "tool"
	EventCancelTool   = "cancel"
	EventTimeFrame    = "timeframe"
)

var ErrUnknownEvent = errors.New("unknown event")

// Event is a pointer or tool event sent by a client
type Event struct {
	Type      string  `json:"type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Delta     float64 `json:"delta"`
	Tool      string  `json:"tool,omitempty"`
	TimeFrame string  `json:"timeFrame,omitempty"`
}

// Dispatch applies e to the chart
func (s *Server) Dispatch(e Event) error {
	s.Lock()
	defer s.Unlock()

	at := geometry.Point{X: e.X, Y: e.Y}

	switch e.Type {
	case EventPointerDown:
		s.chart.PointerDown(at)
	case EventPointerMove:
		s.chart.PointerMove(at)
	case EventPointerUp:
		s.chart.PointerUp()
	case EventPointerLeave:
		s.chart.PointerLeave()
	case EventWheel:
		s.chart.Wheel(e.Delta)
	case EventTool:
		if _, err := s.chart.SelectTool(drawing.Tool(e.Tool)); err != nil {
			return err
		}
	case EventCancelTool:
		s.chart.CancelTool()
	case EventTimeFrame:
		if err := s.chart.RequestTimeFrame(e.TimeFrame); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}

	s.metrics.events.WithLabelValues(e.Type).Inc()
	s.lastUpdate = time.Now()
	return nil
}

// handleWebSocket registers a client and applies its events until it
// disconnects
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Error("failed to upgrade connection to websocket")
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = struct{}{}
	count := len(s.clients)
	s.clientsMu.Unlock()

	s.metrics.clients.Inc()
	s.log.WithField("clients", count).Info("websocket client connected")

	go s.handleClient(conn)
}

func (s *Server) handleClient(conn *websocket.Conn) {
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		count := len(s.clients)
		s.clientsMu.Unlock()

		s.metrics.clients.Dec()
		s.log.WithField("clients", count).Info("websocket client disconnected")
		conn.Close()
	}()

	conn.SetPingHandler(func(string) error {
		return conn.WriteControl(websocket.PongMessage, []byte{}, time.Now().Add(10*time.Second))
	})

	for {
		var e Event
		if err := conn.ReadJSON(&e); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.WithError(err).Error("websocket read error")
			}
			return
		}

		if err := s.Dispatch(e); err != nil {
			s.log.WithError(err).WithField("type", e.Type).Warn("websocket event rejected")
			s.broadcast(Message{Type: "error", Payload: err.Error()})
			continue
		}

		s.broadcast(Message{Type: "frame", Payload: map[string]any{"event": e.Type}})
	}
}
