package indicator

// ring is a fixed capacity circular buffer of the most recent values
type ring struct {
	buf   []float64
	idx   int
	count int
}

func newRing(size int) *ring {
	return &ring{buf: make([]float64, size)}
}

// push stores v and returns the value it evicted, if any
func (r *ring) push(v float64) (evicted float64, full bool) {
	full = r.count >= len(r.buf)
	if full {
		evicted = r.buf[r.idx]
	}

	r.buf[r.idx] = v
	r.idx = (r.idx + 1) % len(r.buf)
	if !full {
		r.count++
	}

	return evicted, full
}

func (r *ring) full() bool { return r.count >= len(r.buf) }

// values returns the buffered values oldest first
func (r *ring) values() []float64 {
	out := make([]float64, 0, r.count)
	if !r.full() {
		return append(out, r.buf[:r.count]...)
	}
	out = append(out, r.buf[r.idx:]...)
	return append(out, r.buf[:r.idx]...)
}
