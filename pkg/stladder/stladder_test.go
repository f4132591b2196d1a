package stladder

import "testing"

func TestCompileSucceedsOnWellFormedProgram(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := e.Compile(`VAR A, M : BOOL; END_VAR
M := A;`, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got errors %+v", result.Errors)
	}
	if len(result.Program.Rungs) != 1 {
		t.Fatalf("expected 1 rung, got %d", len(result.Program.Rungs))
	}
	if result.AST != nil {
		t.Fatalf("expected AST to be nil without IncludeIntermediates")
	}
}

func TestCompileIncludesIntermediatesWhenAsked(t *testing.T) {
	e, _ := New()
	result, err := e.Compile(`VAR A, M : BOOL; END_VAR
M := A;`, Options{IncludeIntermediates: true})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if result.AST == nil {
		t.Fatalf("expected AST to be populated")
	}
}

func TestCompileReturnsParseStageError(t *testing.T) {
	e, _ := New()
	_, err := e.Compile(`A := ;`, Options{})
	if err == nil {
		t.Fatalf("expected a compile error")
	}
	cerr, ok := err.(*CompileError)
	if !ok {
		t.Fatalf("expected *CompileError, got %T", err)
	}
	if cerr.Stage != "parsing" {
		t.Fatalf("expected stage parsing, got %s", cerr.Stage)
	}
	if !cerr.HasErrors() {
		t.Fatalf("expected HasErrors to be true")
	}
}

func TestCompileReturnsValidateStageErrorForUndeclaredVariable(t *testing.T) {
	e, _ := New()
	result, err := e.Compile(`X := Y;`, Options{})
	if err == nil {
		t.Fatalf("expected a compile error")
	}
	cerr, ok := err.(*CompileError)
	if !ok {
		t.Fatalf("expected *CompileError, got %T", err)
	}
	if cerr.Stage != "validating" {
		t.Fatalf("expected stage validating, got %s", cerr.Stage)
	}
	if result.Success {
		t.Fatalf("expected result.Success false")
	}
}

func TestFilterUnsupportedDropsWarningByDefault(t *testing.T) {
	e, _ := New()
	result, err := e.Compile(`VAR I, X : INT; END_VAR
FOR I := 1 TO 10 DO X := I; END_FOR`, Options{WarnOnUnsupported: false})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for _, w := range result.Warnings {
		if w.Code == "UNSUPPORTED_IN_LADDER" {
			t.Fatalf("expected UNSUPPORTED_IN_LADDER to be filtered out")
		}
	}
}

func TestFilterUnsupportedKeepsWarningWhenRequested(t *testing.T) {
	e, _ := New()
	result, err := e.Compile(`VAR I, X : INT; END_VAR
FOR I := 1 TO 10 DO X := I; END_FOR`, Options{WarnOnUnsupported: true})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	found := false
	for _, w := range result.Warnings {
		if w.Code == "UNSUPPORTED_IN_LADDER" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected UNSUPPORTED_IN_LADDER to be kept, got %+v", result.Warnings)
	}
}

func TestNewInterpreterBuildsFromSource(t *testing.T) {
	e, _ := New()
	it, result, err := e.NewInterpreter(`VAR A, M : BOOL; END_VAR
M := A;`)
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	if it == nil || result == nil {
		t.Fatalf("expected non-nil interpreter and result")
	}
	it.Load()
	it.Start()
	if errs := it.Tick(); len(errs) != 0 {
		t.Fatalf("unexpected tick errors: %v", errs)
	}
}

func TestErrorSeverityLabeling(t *testing.T) {
	e := NewError("bad", 1, 2, 0, SeverityError, "X")
	w := NewError("careful", 1, 2, 0, SeverityWarning, "Y")
	if !e.IsError() || e.IsWarning() {
		t.Fatalf("expected e to be an error only")
	}
	if !w.IsWarning() || w.IsError() {
		t.Fatalf("expected w to be a warning only")
	}
}
