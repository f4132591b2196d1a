package stladder

import (
	"strings"
	"testing"
)

func TestToJSONRendersErrorsAndWarnings(t *testing.T) {
	result := &Result{
		Errors:   []*Error{NewError("undeclared variable Y", 3, 4, 0, SeverityError, "UNDECLARED_VARIABLE")},
		Warnings: []*Error{NewError("B is never used", 1, 1, 0, SeverityWarning, "UNUSED_VARIABLE")},
	}
	data, err := result.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if !strings.Contains(data, "UNDECLARED_VARIABLE") || !strings.Contains(data, "UNUSED_VARIABLE") {
		t.Fatalf("expected both codes present in %s", data)
	}
}

func TestSuppressCodesMarksMatchingEntries(t *testing.T) {
	result := &Result{
		Warnings: []*Error{
			NewError("B is never used", 1, 1, 0, SeverityWarning, "UNUSED_VARIABLE"),
			NewError("loop unsupported", 2, 1, 0, SeverityWarning, "UNSUPPORTED_IN_LADDER"),
		},
	}
	data, err := result.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	suppressed, err := SuppressCodes(data, []string{"UNUSED_VARIABLE"})
	if err != nil {
		t.Fatalf("SuppressCodes: %v", err)
	}

	active := ActiveDiagnostics(suppressed)
	if len(active) != 1 {
		t.Fatalf("expected 1 active diagnostic, got %d", len(active))
	}
	if active[0].Get("code").String() != "UNSUPPORTED_IN_LADDER" {
		t.Fatalf("expected the surviving entry to be UNSUPPORTED_IN_LADDER, got %s", active[0].Get("code").String())
	}
}

func TestActiveDiagnosticsWithNoSuppressionReturnsAll(t *testing.T) {
	result := &Result{
		Errors: []*Error{NewError("bad", 1, 1, 0, SeverityError, "X")},
	}
	data, _ := result.ToJSON()
	active := ActiveDiagnostics(data)
	if len(active) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(active))
	}
}
