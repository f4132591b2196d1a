package interp

import (
	"testing"

	"github.com/stladder/stladder/internal/parser"
	"github.com/stladder/stladder/internal/transform"
)

func newInterp(t *testing.T, src string) *Interpreter {
	t.Helper()
	prog, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	ir := transform.Transform(prog)
	it := New(prog, ir)
	it.Load()
	it.Start()
	return it
}

func TestLatchSRSetDominant(t *testing.T) {
	it := newInterp(t, `VAR Latch : SR; Out : BOOL; Set, Reset : BOOL; END_VAR
Latch(S1 := Set, R := Reset);
Out := Latch.Q;`)
	it.store.Bools.Set("Set", true)
	it.store.Bools.Set("Reset", false)
	if errs := it.Tick(); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	bs, _ := it.store.Bistables.Get("Latch")
	if !bs.Q {
		t.Fatalf("expected latch set")
	}

	it.store.Bools.Set("Set", true)
	it.store.Bools.Set("Reset", true)
	it.Tick()
	bs, _ = it.store.Bistables.Get("Latch")
	if !bs.Q {
		t.Fatalf("expected SR to stay set when both S1 and R asserted (set-dominant)")
	}
}

func TestTONReachesQAfterPresetElapses(t *testing.T) {
	it := newInterp(t, `VAR Delay : TON; IN : BOOL; END_VAR
Delay(IN := IN, PT := T#300ms);`)
	it.SetScanTime(100)
	it.store.Bools.Set("IN", true)

	for i := 0; i < 2; i++ {
		it.Tick()
		ts, _ := it.store.Timers.Get("Delay")
		if ts.Q {
			t.Fatalf("scan %d: expected Q still false, ET=%d", i, ts.ET)
		}
	}
	it.Tick()
	ts, _ := it.store.Timers.Get("Delay")
	if !ts.Q {
		t.Fatalf("expected Q true after preset elapsed, ET=%d", ts.ET)
	}
}

func TestTONResetsWhenInputDropsBeforePreset(t *testing.T) {
	it := newInterp(t, `VAR Delay : TON; IN : BOOL; END_VAR
Delay(IN := IN, PT := T#300ms);`)
	it.SetScanTime(100)
	it.store.Bools.Set("IN", true)
	it.Tick()

	it.store.Bools.Set("IN", false)
	it.Tick()

	ts, _ := it.store.Timers.Get("Delay")
	if ts.Running || ts.ET != 0 || ts.Q {
		t.Fatalf("expected timer reset on falling IN before PT, got %+v", ts)
	}
}

func TestCTURollsOverAtPresetAndResets(t *testing.T) {
	it := newInterp(t, `VAR Counter : CTU; Pulse, Reset : BOOL; END_VAR
Counter(CU := Pulse, R := Reset, PV := 2);`)

	for i := 0; i < 2; i++ {
		it.store.Bools.Set("Pulse", true)
		it.Tick()
		it.store.Bools.Set("Pulse", false)
		it.Tick()
	}
	cs, _ := it.store.Counters.Get("Counter")
	if cs.CV != 2 || !cs.QU {
		t.Fatalf("expected CV=2 QU=true after 2 pulses, got %+v", cs)
	}

	it.store.Bools.Set("Reset", true)
	it.Tick()
	cs, _ = it.store.Counters.Get("Counter")
	if cs.CV != 0 || cs.QU {
		t.Fatalf("expected counter reset to 0, got %+v", cs)
	}
}

func TestCTULoadsPresetViaLD(t *testing.T) {
	it := newInterp(t, `VAR Counter : CTU; Load : BOOL; END_VAR
Counter(CU := FALSE, LD := Load, PV := 5);`)

	it.store.Bools.Set("Load", true)
	it.Tick()

	cs, _ := it.store.Counters.Get("Counter")
	if cs.CV != 5 {
		t.Fatalf("expected LD to load PV=5 into CV, got CV=%d", cs.CV)
	}
}

func TestCTULoadIsNotConflatedWithReset(t *testing.T) {
	it := newInterp(t, `VAR Counter : CTUD; Load, Reset : BOOL; END_VAR
Counter(CU := FALSE, R := Reset, LD := Load, PV := 7);`)

	it.store.Bools.Set("Load", true)
	it.store.Bools.Set("Reset", false)
	it.Tick()

	cs, _ := it.store.Counters.Get("Counter")
	if cs.CV != 7 {
		t.Fatalf("expected LD to load CV=7 independently of R, got CV=%d", cs.CV)
	}
}

func TestTONKeepsQForOneScanAfterFalling(t *testing.T) {
	it := newInterp(t, `VAR Delay : TON; IN : BOOL; END_VAR
Delay(IN := IN, PT := T#200ms);`)
	it.SetScanTime(100)
	it.store.Bools.Set("IN", true)
	it.Tick()
	it.Tick()

	ts, _ := it.store.Timers.Get("Delay")
	if !ts.Q {
		t.Fatalf("expected Q true once preset elapsed, got %+v", ts)
	}

	it.store.Bools.Set("IN", false)
	it.Tick() // falling scan: Q must be kept for one more scan
	ts, _ = it.store.Timers.Get("Delay")
	if !ts.Q {
		t.Fatalf("expected Q still true on the falling scan itself, got %+v", ts)
	}

	it.Tick() // stayingOff scan: deferred clear fires now
	ts, _ = it.store.Timers.Get("Delay")
	if ts.Q {
		t.Fatalf("expected Q cleared one scan after falling, got %+v", ts)
	}
}

func TestStepIsAnAliasForTick(t *testing.T) {
	it := newInterp(t, `VAR A : BOOL; END_VAR
A := TRUE;`)
	if errs := it.Step(); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if v, _ := it.store.Bools.Get("A"); !v {
		t.Fatalf("expected Step to run a scan like Tick")
	}
}

func TestResetReloadsDeclaredZeroState(t *testing.T) {
	it := newInterp(t, `VAR A : BOOL; END_VAR
A := TRUE;`)
	it.Tick()
	if v, _ := it.store.Bools.Get("A"); !v {
		t.Fatalf("expected A=true before reset")
	}

	it.Reset()
	if v, _ := it.store.Bools.Get("A"); v {
		t.Fatalf("expected A reset to false")
	}
}

func TestRTrigFiresOnlyOnRisingEdge(t *testing.T) {
	it := newInterp(t, `VAR Edge : R_TRIG; Clk : BOOL; END_VAR
Edge(CLK := Clk);`)

	it.store.Bools.Set("Clk", true)
	it.Tick()
	es, _ := it.store.Edges.Get("Edge")
	if !es.Q {
		t.Fatalf("expected rising edge to fire Q")
	}

	it.Tick()
	es, _ = it.store.Edges.Get("Edge")
	if es.Q {
		t.Fatalf("expected Q to drop on the next scan while CLK stays high")
	}
}

func TestDivisionByZeroLeavesTargetUnchangedAndReportsError(t *testing.T) {
	it := newInterp(t, `VAR Result, Zero : INT; END_VAR
Result := 1 / Zero;`)
	it.store.Ints.Set("Result", 42)

	errs := it.Tick()
	if len(errs) != 1 || errs[0].Code != ErrDivisionByZero {
		t.Fatalf("expected one DIVISION_BY_ZERO error, got %v", errs)
	}
	v, _ := it.store.Ints.Get("Result")
	if v != 42 {
		t.Fatalf("expected target left unchanged at 42, got %d", v)
	}
}

func TestWriteToFunctionBlockOutputIsRejected(t *testing.T) {
	it := newInterp(t, `VAR Delay : TON; END_VAR
Delay.Q := TRUE;`)
	errs := it.Tick()
	if len(errs) != 1 || errs[0].Code != ErrWriteToFBOutput {
		t.Fatalf("expected one WRITE_TO_FB_OUTPUT error, got %v", errs)
	}
}

func TestTickIsANoOpWhenNotRunning(t *testing.T) {
	prog, errs := parser.Parse(`VAR A : BOOL; END_VAR
A := TRUE;`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	ir := transform.Transform(prog)
	it := New(prog, ir)
	it.Load()

	if got := it.Tick(); got != nil {
		t.Fatalf("expected nil result while STOPPED, got %v", got)
	}
	if it.Store().Control.ScanCount != 0 {
		t.Fatalf("expected scan count unchanged while STOPPED")
	}
}
