package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault_Validate(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Zoom.MinCandles = 0
	cfg.Colors.Axis = "not-a-color"
	cfg.Indicators.Palette = nil

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "zoom.min_candles")
	require.Contains(t, err.Error(), "colors.axis")
	require.Contains(t, err.Error(), "indicators.palette")
}

func TestValidate_VolumeHeight(t *testing.T) {
	for _, share := range []float64{0, -0.5, 1.5} {
		cfg := Default()
		cfg.VolumeHeight = share
		require.ErrorContains(t, cfg.Validate(), "volume_height")
	}
}

func TestIndicators_LabelStepFollowsSlotHeight(t *testing.T) {
	cfg := Default().Indicators
	require.InDelta(t, cfg.SlotHeight/3, cfg.LabelStep(), 1e-9)

	cfg.SlotHeight = 90
	require.InDelta(t, 30, cfg.LabelStep(), 1e-9)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	body := []byte(`
zoom:
  step: 5
  min_candles: 20
colors:
  background: "#101010"
indicators:
  slot_height: 80
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Zoom.Step)
	require.Equal(t, 20, cfg.Zoom.MinCandles)
	require.Equal(t, 200, cfg.Zoom.DefaultCandles)
	require.Equal(t, "#101010", cfg.Colors.Background)
	require.Equal(t, "#0f0", cfg.Colors.RisingCandle)
	require.Equal(t, 80.0, cfg.Indicators.SlotHeight)
	require.Equal(t, Default().Indicators.Palette, cfg.Indicators.Palette)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestApply(t *testing.T) {
	base := Default()

	t.Run("nested and dotted keys", func(t *testing.T) {
		cfg, err := Apply(base, map[string]any{
			"zoom":              map[string]any{"step": 4},
			"axis.x_tick_count": 6,
		})
		require.NoError(t, err)
		require.Equal(t, 4, cfg.Zoom.Step)
		require.Equal(t, 6, cfg.Axis.XTickCount)
		require.Equal(t, base.Axis.YTickCount, cfg.Axis.YTickCount)
	})

	t.Run("base untouched", func(t *testing.T) {
		_, err := Apply(base, map[string]any{"indicators.palette": []string{"#fff"}})
		require.NoError(t, err)
		require.Len(t, base.Indicators.Palette, 6)
	})

	t.Run("invalid override", func(t *testing.T) {
		_, err := Apply(base, map[string]any{"zoom.min_candles": 0})
		require.Error(t, err)
	})
}
