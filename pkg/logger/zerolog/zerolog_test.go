package zerolog

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/raykavin/tradechart/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestAdapter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "info", JSON: true, Out: &buf})
	require.NoError(t, err)

	log.WithField("candles", 5).WithError(errors.New("boom")).Infof("loaded %s", "data")
	log.Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "loaded data", entry["message"])
	require.Equal(t, float64(5), entry["candles"])
	require.Equal(t, "boom", entry["error"])
}

func TestAdapter_Level(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "warn", JSON: true, Out: &buf})
	require.NoError(t, err)
	require.Equal(t, logger.WarnLevel, log.GetLevel())

	log.SetLevel(logger.DebugLevel)
	require.Equal(t, logger.DebugLevel, log.GetLevel())

	log.Debug("visible")
	require.Contains(t, buf.String(), "visible")
}

func TestFormatCaller(t *testing.T) {
	require.Contains(t, formatCaller("/src/pkg/chart/chart.go:42"), "[chart.go          :  42]")
	require.Equal(t, "", formatCaller(nil))
	require.Equal(t, "noline.go", formatCaller("/x/noline.go"))
}

func TestFormatMessage(t *testing.T) {
	require.Equal(t, ">", formatMessage(""))
	require.Contains(t, formatMessage("hello"), "> hello")
}
