package runtime

import (
	"testing"

	"github.com/stladder/stladder/internal/parser"
	"github.com/stladder/stladder/internal/transform"
)

func loadedStore(t *testing.T, src string) *Store {
	t.Helper()
	prog, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	ir := transform.Transform(prog)
	s := NewStore()
	s.Load(ir)
	return s
}

func TestNewStoreStartsStoppedWithDefaultScanTime(t *testing.T) {
	s := NewStore()
	if s.Control.Status != Stopped {
		t.Fatalf("expected Stopped, got %s", s.Control.Status)
	}
	if s.Control.ScanTimeMs != DefaultScanTimeMs {
		t.Fatalf("expected default scan time %d, got %d", DefaultScanTimeMs, s.Control.ScanTimeMs)
	}
}

func TestLoadPopulatesScalarsWithZeroValues(t *testing.T) {
	s := loadedStore(t, `VAR A : BOOL; N : INT; R : REAL; T : TIME; END_VAR
A := A;`)
	if v, ok := s.Bools.Get("A"); !ok || v != false {
		t.Fatalf("expected A=false, got %v %v", v, ok)
	}
	if v, ok := s.Ints.Get("N"); !ok || v != 0 {
		t.Fatalf("expected N=0, got %v %v", v, ok)
	}
	if v, ok := s.Reals.Get("R"); !ok || v != 0 {
		t.Fatalf("expected R=0, got %v %v", v, ok)
	}
	if v, ok := s.Times.Get("T"); !ok || v != 0 {
		t.Fatalf("expected T=0, got %v %v", v, ok)
	}
}

func TestLoadPopulatesFunctionBlockInstances(t *testing.T) {
	s := loadedStore(t, `VAR Delay : TON; Count : CTU; Edge : R_TRIG; Latch : SR; END_VAR
Delay(IN := TRUE, PT := T#1s);
Count(CU := TRUE);
Edge(CLK := TRUE);
Latch(S1 := TRUE, R := FALSE);`)

	if !s.Timers.Has("Delay") {
		t.Fatalf("expected Delay timer instance")
	}
	if !s.Counters.Has("Count") {
		t.Fatalf("expected Count counter instance")
	}
	if !s.Edges.Has("Edge") {
		t.Fatalf("expected Edge edge instance")
	}
	if !s.Bistables.Has("Latch") {
		t.Fatalf("expected Latch bistable instance")
	}
}

func TestRunPausePreserveValuesAcrossTransitions(t *testing.T) {
	s := loadedStore(t, `VAR A : BOOL; END_VAR
A := A;`)
	s.Bools.Set("A", true)
	s.Run()
	if s.Control.Status != Running {
		t.Fatalf("expected Running, got %s", s.Control.Status)
	}
	s.Pause()
	if s.Control.Status != Paused {
		t.Fatalf("expected Paused, got %s", s.Control.Status)
	}
	if v, _ := s.Bools.Get("A"); v != true {
		t.Fatalf("expected A to survive pause, got %v", v)
	}
}

func TestStopResetsStateAndStatus(t *testing.T) {
	prog, errs := parser.Parse(`VAR A : BOOL; END_VAR
A := A;`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	ir := transform.Transform(prog)
	s := NewStore()
	s.Load(ir)
	s.Bools.Set("A", true)
	s.Control.ElapsedMs = 500
	s.Control.ScanCount = 5
	s.Run()

	s.Stop(ir)

	if s.Control.Status != Stopped {
		t.Fatalf("expected Stopped, got %s", s.Control.Status)
	}
	if s.Control.ElapsedMs != 0 || s.Control.ScanCount != 0 {
		t.Fatalf("expected scan counters reset, got elapsed=%d count=%d", s.Control.ElapsedMs, s.Control.ScanCount)
	}
	if v, _ := s.Bools.Get("A"); v != false {
		t.Fatalf("expected A reset to false, got %v", v)
	}
}

func TestResetPreservesScanTime(t *testing.T) {
	prog, errs := parser.Parse(`VAR A : BOOL; END_VAR
A := A;`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	ir := transform.Transform(prog)
	s := NewStore()
	s.Load(ir)
	s.Control.ScanTimeMs = 50

	s.Reset(ir)

	if s.Control.ScanTimeMs != 50 {
		t.Fatalf("expected scan time preserved at 50, got %d", s.Control.ScanTimeMs)
	}
}
