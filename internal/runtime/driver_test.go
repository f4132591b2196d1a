package runtime

import "testing"

func TestSetBoolGetBoolRoundTrip(t *testing.T) {
	s := loadedStore(t, `VAR A : BOOL; END_VAR
A := A;`)
	s.SetBool("A", true)
	if v, ok := s.GetBool("A"); !ok || !v {
		t.Fatalf("expected A=true, got %v %v", v, ok)
	}
}

func TestSetTimerInputRunsApplyInputOnDeclaredTimer(t *testing.T) {
	s := loadedStore(t, `VAR Delay : TON; END_VAR
Delay(IN := FALSE, PT := T#1s);`)

	s.SetTimerPreset("Delay", 1000)
	s.SetTimerInput("Delay", true)

	ts, ok := s.GetTimer("Delay")
	if !ok {
		t.Fatalf("expected Delay timer instance")
	}
	if !ts.Running || ts.Q {
		t.Fatalf("expected timer running and Q false after IN rises below preset, got running=%v q=%v", ts.Running, ts.Q)
	}

	s.SetTimerInput("Delay", false)
	ts, _ = s.GetTimer("Delay")
	if ts.Running {
		t.Fatalf("expected timer stopped after IN falls")
	}
}

func TestSetTimerInputOnUndeclaredNameIsNoOp(t *testing.T) {
	s := loadedStore(t, `VAR A : BOOL; END_VAR
A := A;`)
	s.SetTimerInput("NoSuchTimer", true) // must not panic
}

func TestResetCounterZeroesCVRegardlessOfKind(t *testing.T) {
	s := loadedStore(t, `VAR Count : CTD; END_VAR
Count(CD := TRUE, PV := 5);`)

	s.ResetCounter("Count")

	cs, ok := s.GetCounter("Count")
	if !ok {
		t.Fatalf("expected Count counter instance")
	}
	if cs.CV != 0 {
		t.Fatalf("expected CV reset to 0, got %d", cs.CV)
	}
}

func TestPulseCountUpIncrementsCTUInstance(t *testing.T) {
	s := loadedStore(t, `VAR Count : CTU; END_VAR
Count(CU := FALSE, PV := 3);`)

	s.PulseCountUp("Count")
	cs, _ := s.GetCounter("Count")
	if cs.CV != 1 {
		t.Fatalf("expected CV=1 after one pulse, got %d", cs.CV)
	}

	s.PulseCountUp("Count")
	cs, _ = s.GetCounter("Count")
	if cs.CV != 2 {
		t.Fatalf("expected CV=2 after a second pulse, got %d", cs.CV)
	}
}

func TestPulseCountUpIgnoredOnCTDInstance(t *testing.T) {
	s := loadedStore(t, `VAR Count : CTD; END_VAR
Count(CD := FALSE, PV := 3);`)

	s.PulseCountUp("Count")
	cs, _ := s.GetCounter("Count")
	if cs.CV != 0 {
		t.Fatalf("expected CTD instance unaffected by PulseCountUp, got CV=%d", cs.CV)
	}
}

func TestPulseCountDownDecrementsCTUDInstance(t *testing.T) {
	s := loadedStore(t, `VAR Count : CTUD; END_VAR
Count(CU := TRUE, CD := FALSE, PV := 5);`)

	s.PulseCountUp("Count")
	s.PulseCountDown("Count")
	cs, _ := s.GetCounter("Count")
	if cs.CV != 0 {
		t.Fatalf("expected up then down to cancel out, got CV=%d", cs.CV)
	}
}

func TestGetTimerOnUndeclaredNameReportsFalse(t *testing.T) {
	s := NewStore()
	if _, ok := s.GetTimer("Missing"); ok {
		t.Fatalf("expected ok=false for an undeclared timer")
	}
}
