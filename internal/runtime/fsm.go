package runtime

import "github.com/stladder/stladder/internal/ast"

// ApplyInput runs one scan's discrete IN transition against the timer per
// the normative TON/TOF/TP state machine: rising/falling/staying edges on
// IN drive Running/ET/Q. AdvanceTimer performs the following ET-advance
// pass. Both the interpreter's per-scan FB-call execution and a driver's
// SetTimerInput go through this method, so the two never disagree on the
// state machine.
func (ts *TimerState) ApplyInput(kind ast.DataTypeKind, in bool, ptMs int64) {
	rising := in && !ts.PrevIN
	falling := !in && ts.PrevIN
	stayingOff := !in && !ts.PrevIN
	stayingOn := in && ts.PrevIN

	switch kind {
	case ast.TypeTON:
		switch {
		case rising:
			ts.ET = 0
			if ptMs <= 0 {
				ts.Q = true
				ts.Running = false
			} else {
				ts.Running = true
				ts.Q = false
			}
		case falling:
			ts.Running = false
			ts.ET = 0
			// Q is kept for one more scan; the deferred clear below fires
			// on the next stayingOff scan, implementing the self-reset idiom.
		case stayingOff && ts.Q:
			ts.Q = false
		}
	case ast.TypeTOF:
		switch {
		case rising, stayingOn:
			ts.Running = false
			ts.ET = 0
			ts.Q = true
		case falling:
			if ptMs <= 0 {
				ts.Q = false
			} else {
				ts.ET = 0
				ts.Running = true
			}
		}
	case ast.TypeTP:
		if rising && !ts.Running && !ts.Q && ptMs > 0 {
			ts.Running = true
			ts.ET = 0
			ts.Q = true
		}
	}

	ts.PrevIN = in
	ts.PT = ptMs
}

// AdvanceTimer runs the scan's final pass for one running timer: ET gains
// one scan period, clamped to PT, applying whichever discrete transition
// crossing PT triggers for kind. A non-running timer is untouched.
func (ts *TimerState) AdvanceTimer(kind ast.DataTypeKind, scanTimeMs int64) {
	if !ts.Running {
		return
	}
	ts.ET += scanTimeMs
	if ts.ET > ts.PT {
		ts.ET = ts.PT
	}

	switch kind {
	case ast.TypeTON:
		if ts.ET >= ts.PT {
			ts.Q = true
			ts.Running = false
		}
	case ast.TypeTOF:
		if ts.ET >= ts.PT {
			ts.Running = false
			ts.Q = false
		}
	case ast.TypeTP:
		if ts.ET >= ts.PT {
			ts.Running = false
			ts.Q = false
		}
	}
}

// Apply runs one scan's CU/CD/R/LD transition against the counter: R
// resets CV to 0, LD loads PV into CV, otherwise a rising edge on CU
// (CTU/CTUD) or CD (CTD/CTUD) increments or decrements CV. Both the
// interpreter's per-scan FB-call execution and a driver's ResetCounter/
// PulseCountUp/PulseCountDown go through this method.
func (cs *CounterState) Apply(kind ast.DataTypeKind, reset, load, cu, cd bool, pv int64) {
	switch {
	case reset:
		cs.CV = 0
	case load:
		cs.CV = pv
	default:
		if cu && !cs.PrevCU && (kind == ast.TypeCTU || kind == ast.TypeCTUD) {
			cs.CV++
		}
		if cd && !cs.PrevCD && (kind == ast.TypeCTD || kind == ast.TypeCTUD) {
			cs.CV--
		}
	}
	cs.PrevCU, cs.PrevCD = cu, cd
	cs.PV = pv
	cs.QU = cs.CV >= pv
	cs.QD = cs.CV <= 0
}
