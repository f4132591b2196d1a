package runtime

import "github.com/stladder/stladder/internal/ast"

// GetBool, GetInt, GetReal and GetTime read one scalar by name; the bool
// result reports whether the name is declared.
func (s *Store) GetBool(name string) (bool, bool)    { return s.Bools.Get(name) }
func (s *Store) GetInt(name string) (int32, bool)    { return s.Ints.Get(name) }
func (s *Store) GetReal(name string) (float64, bool) { return s.Reals.Get(name) }
func (s *Store) GetTime(name string) (int64, bool)   { return s.Times.Get(name) }

// SetBool, SetInt, SetReal and SetTime are the driver-initiated scalar
// writes: a host mapping physical I/O onto ST variables calls these
// between scans to change what the next Tick observes.
func (s *Store) SetBool(name string, v bool)    { s.Bools.Set(name, v) }
func (s *Store) SetInt(name string, v int32)    { s.Ints.Set(name, v) }
func (s *Store) SetReal(name string, v float64) { s.Reals.Set(name, v) }
func (s *Store) SetTime(name string, v int64)   { s.Times.Set(name, v) }

// GetTimer, GetCounter, GetEdge and GetBistable return a snapshot of one
// function-block instance's state; the bool result reports whether name
// is a declared instance of that kind. Snapshots are copies so a caller
// can never bypass ApplyInput/Apply by mutating the live record.
func (s *Store) GetTimer(name string) (TimerState, bool) {
	ts, ok := s.Timers.Get(name)
	if !ok {
		return TimerState{}, false
	}
	return *ts, true
}

func (s *Store) GetCounter(name string) (CounterState, bool) {
	cs, ok := s.Counters.Get(name)
	if !ok {
		return CounterState{}, false
	}
	return *cs, true
}

func (s *Store) GetEdge(name string) (EdgeState, bool) {
	es, ok := s.Edges.Get(name)
	if !ok {
		return EdgeState{}, false
	}
	return *es, true
}

func (s *Store) GetBistable(name string) (BistableState, bool) {
	bs, ok := s.Bistables.Get(name)
	if !ok {
		return BistableState{}, false
	}
	return *bs, true
}

// SetTimerInput drives a timer instance's IN signal directly, for a host
// that maps physical I/O onto a declared timer without routing it through
// an FB call statement in the program text. It runs the same ApplyInput
// state machine the interpreter's own FB-call execution does, keyed by
// the instance's declared kind, keeping its latched PT.
func (s *Store) SetTimerInput(name string, in bool) {
	ts, ok := s.Timers.Get(name)
	if !ok {
		return
	}
	kind, _ := s.fbKinds.Get(name)
	ts.ApplyInput(kind, in, ts.PT)
}

// SetTimerPreset overrides a timer instance's preset time in milliseconds,
// taking effect on its next ApplyInput/AdvanceTimer.
func (s *Store) SetTimerPreset(name string, ms int64) {
	if ts, ok := s.Timers.Get(name); ok {
		ts.PT = ms
	}
}

// ResetCounter drives a counter instance's R input directly, resetting CV
// to 0 per §4.4 ("R resets to 0").
func (s *Store) ResetCounter(name string) {
	cs, ok := s.Counters.Get(name)
	if !ok {
		return
	}
	kind, _ := s.fbKinds.Get(name)
	cs.Apply(kind, true, false, false, false, cs.PV)
}

// PulseCountUp drives one CU rising edge directly against a CTU/CTUD
// instance, for a host that maps a physical pulse input onto a declared
// counter without an FB call statement in the program text.
func (s *Store) PulseCountUp(name string) {
	cs, ok := s.Counters.Get(name)
	if !ok {
		return
	}
	kind, _ := s.fbKinds.Get(name)
	if kind != ast.TypeCTU && kind != ast.TypeCTUD {
		return
	}
	cs.Apply(kind, false, false, true, false, cs.PV)
	cs.PrevCU = false // one-shot: the next call is a fresh rising edge, not a hold
}

// PulseCountDown drives one CD rising edge directly against a CTD/CTUD
// instance, mirroring PulseCountUp.
func (s *Store) PulseCountDown(name string) {
	cs, ok := s.Counters.Get(name)
	if !ok {
		return
	}
	kind, _ := s.fbKinds.Get(name)
	if kind != ast.TypeCTD && kind != ast.TypeCTUD {
		return
	}
	cs.Apply(kind, false, false, false, true, cs.PV)
	cs.PrevCD = false
}
