package atmosphere

import "sync/atomic"

// Slot is a single-slot snapshot hand-off between the weather-ingestion
// worker and the simulation loop. Publish replaces the slot wholesale;
// Latest never blocks. When no fresh snapshot has arrived the previous one
// keeps being served (stale-but-available, never an error).
type Slot struct {
	cur atomic.Pointer[versioned]
}

type versioned struct {
	state State
	seq   uint64
}

// Publish stores a new snapshot, bumping the sequence number so consumers
// can detect freshness.
func (s *Slot) Publish(st State) {
	var seq uint64
	if prev := s.cur.Load(); prev != nil {
		seq = prev.seq + 1
	} else {
		seq = 1
	}
	s.cur.Store(&versioned{state: st, seq: seq})
}

// Latest returns the most recently published snapshot and its sequence
// number. ok is false only before the first Publish.
func (s *Slot) Latest() (st State, seq uint64, ok bool) {
	v := s.cur.Load()
	if v == nil {
		return State{}, 0, false
	}
	return v.state, v.seq, true
}
