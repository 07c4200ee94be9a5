package preview

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const staleAfter = 10 * time.Minute

// handleHealth reports unhealthy when no client touched the chart for a while
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.Lock()
	lastUpdate := s.lastUpdate
	s.Unlock()

	if time.Since(lastUpdate) > staleAfter {
		w.WriteHeader(http.StatusServiceUnavailable)
		if _, err := w.Write([]byte(lastUpdate.String())); err != nil {
			s.log.WithError(err).Error("failed to write health status")
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleImage composes the layers into a PNG. Optional w and h query
// parameters resize the chart first.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	width, height, err := dimensions(r, s.width, s.height)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()

	s.Lock()
	if width != s.width || height != s.height {
		if err := s.resize(width, height); err != nil {
			s.Unlock()
			s.log.WithError(err).Error("failed to resize chart")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	var buf bytes.Buffer
	err = s.canvas.WritePNG(&buf, s.background)
	s.Unlock()

	if err != nil {
		s.log.WithError(err).Error("failed to compose chart image")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.metrics.renderDuration.Observe(time.Since(start).Seconds())

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.WithError(err).Error("failed to write chart image")
	}
}

// resize must be called with the lock held
func (s *Server) resize(width, height int) error {
	if err := s.canvas.Resize(width, height); err != nil {
		return err
	}

	s.width, s.height = width, height
	s.chart.UpdateDimensions(float64(width), float64(height))
	return nil
}

func dimensions(r *http.Request, width, height int) (int, int, error) {
	query := r.URL.Query()

	for _, dim := range []struct {
		key  string
		dest *int
	}{{"w", &width}, {"h", &height}} {
		raw := query.Get(dim.key)
		if raw == "" {
			continue
		}

		v, err := strconv.Atoi(raw)
		if err != nil || v < 100 || v > 4096 {
			return 0, 0, errInvalidDimension(dim.key, raw)
		}
		*dim.dest = v
	}

	return width, height, nil
}

func errInvalidDimension(key, raw string) error {
	return fmt.Errorf("invalid %s %q: must be an integer in [100, 4096]", key, raw)
}
