package led

import "fmt"

// Driver abstracts an LED output sink.
type Driver interface {
	// Write pushes an RGB frame. len(rgb) must be 3*N, strip order.
	Write(rgb []byte) error
	// Close releases resources.
	Close() error
}

// Sim swallows frames and keeps the last one for inspection. It stands in
// for hardware when the daemon only serves websocket previews.
type Sim struct {
	count  int
	Frames uint64
	last   []byte
}

func NewSim(count int) *Sim {
	return &Sim{count: count, last: make([]byte, count*3)}
}

func (s *Sim) Write(rgb []byte) error {
	if len(rgb) != s.count*3 {
		return fmt.Errorf("rgb length %d does not match count %d", len(rgb), s.count)
	}
	copy(s.last, rgb)
	s.Frames++
	return nil
}

func (s *Sim) Last() []byte { return s.last }
func (s *Sim) Close() error { return nil }
