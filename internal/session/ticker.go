package session

import "time"

// Ticker abstracts the autosave timer so tests can fire ticks
// deterministically. Implemented by the real time.Ticker wrapper
// (production) and a channel-backed fake (tests).
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates the autosave ticker for a given interval.
type TickerFactory func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }

func (r realTicker) Stop() { r.t.Stop() }

// NewTicker is the production TickerFactory.
func NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}
