package validate

import (
	"testing"

	"github.com/stladder/stladder/internal/parser"
	"github.com/stladder/stladder/internal/transform"
)

func runValidate(t *testing.T, src string) Result {
	t.Helper()
	prog, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	ir := transform.Transform(prog)
	return Validate(prog, ir)
}

func hasKind(diags []Diagnostic, kind Kind) bool {
	for _, d := range diags {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

func TestUndeclaredVariableIsAnError(t *testing.T) {
	res := runValidate(t, `X := Y;`)
	if res.Success {
		t.Fatalf("expected validation failure")
	}
	if !hasKind(res.Errors, KindUndeclaredVariable) {
		t.Fatalf("expected UNDECLARED_VARIABLE, got %+v", res.Errors)
	}
}

func TestUnusedVariableIsAWarning(t *testing.T) {
	res := runValidate(t, `VAR A, B : BOOL; END_VAR
A := TRUE;`)
	if !res.Success {
		t.Fatalf("expected success, got errors %+v", res.Errors)
	}
	if !hasKind(res.Warnings, KindUnusedVariable) {
		t.Fatalf("expected UNUSED_VARIABLE for B, got %+v", res.Warnings)
	}
}

func TestAlwaysTrueRungWarns(t *testing.T) {
	res := runValidate(t, `VAR A : BOOL; END_VAR
A := TRUE;`)
	if !hasKind(res.Warnings, KindAlwaysTrue) {
		t.Fatalf("expected ALWAYS_TRUE, got %+v", res.Warnings)
	}
}

func TestContradictionWarns(t *testing.T) {
	res := runValidate(t, `VAR A, M : BOOL; END_VAR
M := A AND NOT A;`)
	if !hasKind(res.Warnings, KindContradiction) {
		t.Fatalf("expected CONTRADICTION, got %+v", res.Warnings)
	}
}

func TestUnsupportedStatementWarns(t *testing.T) {
	res := runValidate(t, `VAR I : INT; END_VAR
FOR I := 1 TO 10 DO END_FOR`)
	if !hasKind(res.Warnings, KindUnsupportedInLadder) {
		t.Fatalf("expected UNSUPPORTED_IN_LADDER, got %+v", res.Warnings)
	}
}

func TestPowerFlowBreakOnUndeclaredInstance(t *testing.T) {
	res := runValidate(t, `Widget(IN := Start);`)
	if !hasKind(res.Errors, KindPowerFlowBreak) {
		t.Fatalf("expected POWER_FLOW_BREAK, got %+v", res.Errors)
	}
}

func TestAcceptedFBOutputPathDoesNotFlagUndeclared(t *testing.T) {
	res := runValidate(t, `VAR Delay : TON; Out : BOOL; END_VAR
Delay(IN := TRUE, PT := T#1s);
Out := Delay.Q;`)
	if hasKind(res.Errors, KindUndeclaredVariable) {
		t.Fatalf("did not expect UNDECLARED_VARIABLE, got %+v", res.Errors)
	}
}

func TestReservedNamesAreAlwaysAccepted(t *testing.T) {
	res := runValidate(t, `VAR M : BOOL; END_VAR
M := TRUE OR FALSE;`)
	if hasKind(res.Errors, KindUndeclaredVariable) {
		t.Fatalf("TRUE/FALSE must not be flagged, got %+v", res.Errors)
	}
}

func TestWellFormedProgramSucceeds(t *testing.T) {
	res := runValidate(t, `VAR A, B, M : BOOL; END_VAR
M := (A OR M) AND NOT B;`)
	if !res.Success {
		t.Fatalf("expected success, got errors %+v", res.Errors)
	}
}
