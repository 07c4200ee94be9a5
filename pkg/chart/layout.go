package chart

import (
	"math"

	"github.com/raykavin/tradechart/pkg/config"
	"github.com/raykavin/tradechart/pkg/geometry"
	"github.com/raykavin/tradechart/pkg/indicator"
)

// Layout splits the plot between the OHLC area and the external indicator
// slots stacked below the time axis
type Layout struct {
	Plot       geometry.Size
	OHLCHeight float64
	SlotHeight float64
	External   int
	AxisBottom float64
}

// NewLayout gives each external indicator slotHeight pixels, capped at half
// the plot height in total
func NewLayout(plot geometry.Size, external int, slotHeight, axisBottom float64) Layout {
	l := Layout{Plot: plot, External: external, AxisBottom: axisBottom}
	l.OHLCHeight = plot.H - math.Min(plot.H/2, float64(external)*slotHeight)
	if external > 0 {
		l.SlotHeight = (plot.H - l.OHLCHeight) / float64(external)
	}
	return l
}

// SlotTop returns the top row of external slot i
func (l Layout) SlotTop(slot int) float64 {
	return l.OHLCHeight + l.AxisBottom + l.SlotHeight*float64(slot)
}

// Settings reports where each rendered indicator's label sits. Overlay
// labels stack upward from the bottom of the OHLC area by labelStep;
// external labels sit at the top of their slot.
func (l Layout) Settings(series []indicator.Series, cfg config.Indicators) []indicator.Settings {
	out := make([]indicator.Settings, 0, len(series))
	overlay, slot := 0, 0

	for i, s := range series {
		if s.Skipped {
			continue
		}

		settings := indicator.Settings{
			Index:     i,
			ID:        s.Spec.Kind.ID,
			Name:      s.Name,
			Color:     s.Spec.Color,
			Args:      s.Spec.Arguments(),
			Placement: s.Spec.Kind.Placement,
			Slot:      -1,
		}

		if s.Spec.External() {
			settings.Slot = slot
			settings.Y = l.SlotTop(slot)
			slot++
		} else {
			overlay++
			settings.Y = l.OHLCHeight - cfg.LabelStep()*float64(overlay)
		}

		out = append(out, settings)
	}

	return out
}
