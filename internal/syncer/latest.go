package syncer

import "sync/atomic"

// Tracker implements last-issued-wins for racing read queries. A screen
// takes a ticket when it fires a request and checks the ticket when the
// response lands; responses for superseded tickets are dropped, so a
// slow early response can never overwrite the result of a later query.
type Tracker struct {
	latest atomic.Uint64
}

// Begin registers a new request and returns its ticket. Any previously
// issued ticket is superseded.
func (t *Tracker) Begin() uint64 {
	return t.latest.Add(1)
}

// Current reports whether the ticket is still the newest one issued.
func (t *Tracker) Current(ticket uint64) bool {
	return t.latest.Load() == ticket
}
