package feed

import "github.com/raykavin/tradechart/pkg/core"

// Pager hands out a growing suffix of a candle history, the way an exchange
// API answers successive requests for older data
type Pager struct {
	history core.Candles
	loaded  int
}

// NewPager starts with the newest initial candles loaded
func NewPager(history core.Candles, initial int) *Pager {
	return &Pager{history: history, loaded: min(max(0, initial), len(history))}
}

// Loaded returns the candles handed out so far
func (p *Pager) Loaded() core.Candles {
	return p.history[len(p.history)-p.loaded:]
}

// More extends the loaded suffix by up to count older candles. It reports
// false when the history is exhausted.
func (p *Pager) More(count int) (core.Candles, bool) {
	if p.loaded == len(p.history) {
		return p.Loaded(), false
	}

	p.loaded = min(len(p.history), p.loaded+max(0, count))
	return p.Loaded(), true
}
