package parser

import (
	"testing"

	"github.com/stladder/stladder/internal/ast"
)

func TestParseVariableBlock(t *testing.T) {
	src := `VAR
A, B : BOOL;
N : INT;
Delay : TON;
END_VAR`

	prog, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prog.VarBlocks) != 1 {
		t.Fatalf("expected 1 variable block, got %d", len(prog.VarBlocks))
	}
	blk := prog.VarBlocks[0]
	if blk.Kind != ast.ScopeLocal {
		t.Fatalf("expected ScopeLocal, got %v", blk.Kind)
	}
	if len(blk.Decls) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(blk.Decls))
	}
}

func TestParseAssignment(t *testing.T) {
	prog, errs := Parse(`A := B AND NOT C;`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	assign, ok := prog.Statements[0].(*ast.AssignmentStatement)
	if !ok {
		t.Fatalf("expected *ast.AssignmentStatement, got %T", prog.Statements[0])
	}
	if assign.Target.Path[0] != "A" {
		t.Fatalf("expected target A, got %v", assign.Target.Path)
	}
	bin, ok := assign.Value.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpression, got %T", assign.Value)
	}
	if bin.Operator != "AND" {
		t.Fatalf("expected AND, got %s", bin.Operator)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"A := 1 + 2 * 3;", "(1 + (2 * 3))"},
		{"A := NOT B AND C;", "((NOT B) AND C)"},
		{"A := B AND C OR D;", "((B AND C) OR D)"},
		{"A := 1 < 2 AND 3 > 4;", "((1 < 2) AND (3 > 4))"},
		{"A := B = C OR D <> E;", "((B = C) OR (D <> E))"},
	}
	for _, tt := range tests {
		prog, errs := Parse(tt.input)
		if len(errs) != 0 {
			t.Fatalf("%s: unexpected errors: %v", tt.input, errs)
		}
		assign := prog.Statements[0].(*ast.AssignmentStatement)
		if got := assign.Value.String(); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseFunctionBlockCall(t *testing.T) {
	prog, errs := Parse(`Delay(IN := Start, PT := T#500ms);`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	call, ok := prog.Statements[0].(*ast.FunctionBlockCallStatement)
	if !ok {
		t.Fatalf("expected *ast.FunctionBlockCallStatement, got %T", prog.Statements[0])
	}
	if call.Instance != "Delay" {
		t.Fatalf("expected instance Delay, got %s", call.Instance)
	}
	if _, ok := call.Arg("PT"); !ok {
		t.Fatalf("expected PT argument")
	}
}

func TestParseIfElsifElse(t *testing.T) {
	src := `IF A THEN X := TRUE; ELSIF B THEN Y := TRUE; ELSE Z := TRUE; END_IF`
	prog, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	ifs, ok := prog.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected *ast.IfStatement, got %T", prog.Statements[0])
	}
	if len(ifs.ElsIfs) != 1 {
		t.Fatalf("expected 1 ELSIF, got %d", len(ifs.ElsIfs))
	}
	if ifs.Else == nil {
		t.Fatalf("expected ELSE body")
	}
}

func TestParseCaseWithRangeAndMultiLabel(t *testing.T) {
	src := `CASE P OF
0, 1: X := TRUE;
2..5: Y := TRUE;
ELSE Z := TRUE;
END_CASE`
	prog, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	cs, ok := prog.Statements[0].(*ast.CaseStatement)
	if !ok {
		t.Fatalf("expected *ast.CaseStatement, got %T", prog.Statements[0])
	}
	if len(cs.Clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(cs.Clauses))
	}
	if len(cs.Clauses[0].Labels) != 2 {
		t.Fatalf("expected 2 labels on first clause, got %d", len(cs.Clauses[0].Labels))
	}
	if !cs.Clauses[1].Labels[0].IsRange {
		t.Fatalf("expected second clause's label to be a range")
	}
}

func TestParseErrorRecoverySkipsToNextStatement(t *testing.T) {
	src := `A := ; B := TRUE;`
	_, errs := Parse(src)
	if len(errs) == 0 {
		t.Fatalf("expected at least one parse error")
	}
}

func TestParseErrorReportsPositionAndCode(t *testing.T) {
	_, errs := Parse("A := ;")
	if len(errs) == 0 {
		t.Fatalf("expected a parse error")
	}
	if errs[0].Code == "" {
		t.Fatalf("expected a non-empty error code")
	}
	if errs[0].Pos.Line == 0 {
		t.Fatalf("expected a populated position")
	}
}
