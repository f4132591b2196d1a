// Package validate runs the IR validator (component E): structural and
// semantic checks over a transformed ladder.Program, producing the fixed
// error/warning taxonomy from the compiler's diagnostic contract.
package validate

import (
	"strings"

	"github.com/stladder/stladder/internal/ast"
	"github.com/stladder/stladder/internal/canon"
	"github.com/stladder/stladder/internal/lexer"
	"github.com/stladder/stladder/internal/ladder"
)

// Kind is one of the fixed diagnostic kinds; no kind outside this list is
// ever produced.
type Kind string

const (
	KindParse               Kind = "PARSE"
	KindUndeclaredVariable  Kind = "UNDECLARED_VARIABLE"
	KindOrphanedOutput      Kind = "ORPHANED_OUTPUT"
	KindPowerFlowBreak      Kind = "POWER_FLOW_BREAK"
	KindDivisionByZero      Kind = "DIVISION_BY_ZERO"
	KindWriteToFBOutput     Kind = "WRITE_TO_FB_OUTPUT"
	KindUnusedVariable      Kind = "UNUSED_VARIABLE"
	KindUnsupportedInLadder Kind = "UNSUPPORTED_IN_LADDER"
	KindAlwaysTrue          Kind = "ALWAYS_TRUE"
	KindAlwaysFalse         Kind = "ALWAYS_FALSE"
	KindContradiction       Kind = "CONTRADICTION"
)

// Diagnostic is one validator finding.
type Diagnostic struct {
	Kind    Kind
	Message string
	Pos     lexer.Position
	Rung    int // -1 when not tied to a specific rung
}

// Result is the validator's output: success is false whenever Errors is
// non-empty; Warnings never block.
type Result struct {
	Success  bool
	Errors   []Diagnostic
	Warnings []Diagnostic
}

var acceptedFBOutputs = map[string]bool{
	"Q": true, "ET": true, "CV": true, "QU": true, "QD": true,
}

// Validate runs every mandatory check against prog (the AST, needed to
// see FOR/WHILE/REPEAT and to resolve every variable reference) and ir
// (the lowered ladder program).
func Validate(prog *ast.Program, ir *ladder.Program) Result {
	v := &validator{prog: prog, ir: ir}
	v.checkRungs()
	v.checkVariableReferences()
	v.checkUnsupportedStatements(prog.Statements)

	res := Result{Errors: v.errors, Warnings: v.warnings}
	res.Success = len(res.Errors) == 0
	return res
}

type validator struct {
	prog     *ast.Program
	ir       *ladder.Program
	errors   []Diagnostic
	warnings []Diagnostic
}

func (v *validator) addError(kind Kind, rung int, pos lexer.Position, message string) {
	v.errors = append(v.errors, Diagnostic{Kind: kind, Message: message, Pos: pos, Rung: rung})
}

func (v *validator) addWarning(kind Kind, rung int, pos lexer.Position, message string) {
	v.warnings = append(v.warnings, Diagnostic{Kind: kind, Message: message, Pos: pos, Rung: rung})
}

// checkRungs runs the per-rung structural checks: ORPHANED_OUTPUT,
// ALWAYS_TRUE, CONTRADICTION, and POWER_FLOW_BREAK.
func (v *validator) checkRungs() {
	for _, r := range v.ir.Rungs {
		pos := sourcePos(r.Source)

		if ladder.IsTrue(r.InputNetwork) {
			v.addWarning(KindAlwaysTrue, r.Index, pos, "rung input network is always energised")
		} else if !hasContactOrComparator(r.InputNetwork) {
			v.addError(KindOrphanedOutput, r.Index, pos, "rung has no contact or comparator driving its output")
		}

		if contradicts(r.InputNetwork) {
			v.addWarning(KindContradiction, r.Index, pos, "same variable appears as both NO and NC at one series level")
		}

		if call, ok := r.Source.(*ast.FunctionBlockCallStatement); ok {
			if coil, ok := r.Output.(*ladder.Coil); ok {
				if _, declared := v.ir.FunctionBlocks[canon.Fold(call.Instance)]; !declared {
					v.addError(KindPowerFlowBreak, r.Index, pos,
						"instance \""+coil.Variable+"\" has no function block declaration")
				}
			}
		}
	}
}

func sourcePos(s ast.Statement) lexer.Position {
	if s == nil {
		return lexer.Position{}
	}
	return s.Pos()
}

// hasContactOrComparator reports whether net contains at least one
// Contact or Comparator leaf.
func hasContactOrComparator(net ladder.ContactNetwork) bool {
	switch n := net.(type) {
	case *ladder.Contact, *ladder.Comparator:
		return true
	case *ladder.Series:
		for _, c := range n.Children {
			if hasContactOrComparator(c) {
				return true
			}
		}
	case *ladder.Parallel:
		for _, b := range n.Branches {
			if hasContactOrComparator(b) {
				return true
			}
		}
	}
	return false
}

// contradicts reports whether any Series level of net contains the same
// variable as both an NO and an NC contact.
func contradicts(net ladder.ContactNetwork) bool {
	series, ok := net.(*ladder.Series)
	if !ok {
		return containsNested(net)
	}
	no := map[string]bool{}
	nc := map[string]bool{}
	for _, c := range series.Children {
		if contact, ok := c.(*ladder.Contact); ok {
			switch contact.Kind {
			case ladder.NO:
				no[contact.Variable] = true
			case ladder.NC:
				nc[contact.Variable] = true
			}
		}
	}
	for name := range no {
		if nc[name] {
			return true
		}
	}
	return containsNested(net)
}

func containsNested(net ladder.ContactNetwork) bool {
	switch n := net.(type) {
	case *ladder.Series:
		for _, c := range n.Children {
			if contradicts(c) {
				return true
			}
		}
	case *ladder.Parallel:
		for _, b := range n.Branches {
			if contradicts(b) {
				return true
			}
		}
	}
	return false
}

// checkUnsupportedStatements walks the AST for FOR/WHILE/REPEAT
// statements, which the transformer never lowers to rungs.
func (v *validator) checkUnsupportedStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ForStatement:
			v.addWarning(KindUnsupportedInLadder, -1, s.Pos(), "FOR loop is executed by the interpreter but has no ladder representation")
			v.checkUnsupportedStatements(s.Body)
		case *ast.WhileStatement:
			v.addWarning(KindUnsupportedInLadder, -1, s.Pos(), "WHILE loop is executed by the interpreter but has no ladder representation")
			v.checkUnsupportedStatements(s.Body)
		case *ast.RepeatStatement:
			v.addWarning(KindUnsupportedInLadder, -1, s.Pos(), "REPEAT loop is executed by the interpreter but has no ladder representation")
			v.checkUnsupportedStatements(s.Body)
		case *ast.IfStatement:
			v.checkUnsupportedStatements(s.Then)
			for _, b := range s.ElsIfs {
				v.checkUnsupportedStatements(b.Body)
			}
			v.checkUnsupportedStatements(s.Else)
		case *ast.CaseStatement:
			for _, c := range s.Clauses {
				v.checkUnsupportedStatements(c.Body)
			}
			v.checkUnsupportedStatements(s.Else)
		}
	}
}

// nameRef is one occurrence of a name in the AST, collected for the
// undeclared/unused variable checks.
type nameRef struct {
	path []string
	pos  lexer.Position
}

// checkVariableReferences walks the whole AST collecting every variable
// and function-block reference, reports UNDECLARED_VARIABLE for names
// that resolve to nothing, and UNUSED_VARIABLE for declared scalars that
// are never referenced.
func (v *validator) checkVariableReferences() {
	var refs []nameRef
	collectStatements(v.prog.Statements, &refs)

	used := map[string]bool{}
	for _, ref := range refs {
		base := ref.path[0]
		foldBase := canon.Fold(base)
		if isReserved(base) {
			continue
		}

		_, isVar := v.ir.Variables[foldBase]
		_, isFB := v.ir.FunctionBlocks[foldBase]

		if len(ref.path) == 1 {
			if !isVar && !isFB {
				v.addError(KindUndeclaredVariable, -1, ref.pos, "undeclared variable \""+base+"\"")
				continue
			}
			used[foldBase] = true
			continue
		}

		// dotted path: only <instance>.Q|ET|CV|QU|QD is accepted.
		if !isFB || !acceptedFBOutputs[strings.ToUpper(ref.path[1])] {
			v.addError(KindUndeclaredVariable, -1, ref.pos,
				"undeclared variable \""+strings.Join(ref.path, ".")+"\"")
			continue
		}
		used[foldBase] = true
	}

	for key, info := range v.ir.Variables {
		if !used[key] {
			v.addWarning(KindUnusedVariable, -1, lexer.Position{}, "variable \""+info.Name+"\" is never referenced")
		}
	}
}

func isReserved(name string) bool {
	upper := strings.ToUpper(name)
	return upper == "TRUE" || upper == "FALSE" || name == ""
}

func collectStatements(stmts []ast.Statement, refs *[]nameRef) {
	for _, stmt := range stmts {
		collectStatement(stmt, refs)
	}
}

func collectStatement(stmt ast.Statement, refs *[]nameRef) {
	switch s := stmt.(type) {
	case *ast.AssignmentStatement:
		*refs = append(*refs, nameRef{path: s.Target.Path, pos: s.Target.Pos()})
		collectExpression(s.Value, refs)
	case *ast.FunctionBlockCallStatement:
		*refs = append(*refs, nameRef{path: []string{s.Instance}, pos: s.Pos()})
		for _, a := range s.Args {
			collectExpression(a.Value, refs)
		}
	case *ast.IfStatement:
		collectExpression(s.Condition, refs)
		collectStatements(s.Then, refs)
		for _, b := range s.ElsIfs {
			collectExpression(b.Condition, refs)
			collectStatements(b.Body, refs)
		}
		collectStatements(s.Else, refs)
	case *ast.CaseStatement:
		collectExpression(s.Selector, refs)
		for _, c := range s.Clauses {
			for _, l := range c.Labels {
				if l.IsRange {
					collectExpression(l.Low, refs)
					collectExpression(l.High, refs)
				} else {
					collectExpression(l.Single, refs)
				}
			}
			collectStatements(c.Body, refs)
		}
		collectStatements(s.Else, refs)
	case *ast.ForStatement:
		*refs = append(*refs, nameRef{path: []string{s.Variable.Value}, pos: s.Variable.Pos()})
		collectExpression(s.Start, refs)
		collectExpression(s.End, refs)
		if s.Step != nil {
			collectExpression(s.Step, refs)
		}
		collectStatements(s.Body, refs)
	case *ast.WhileStatement:
		collectExpression(s.Condition, refs)
		collectStatements(s.Body, refs)
	case *ast.RepeatStatement:
		collectStatements(s.Body, refs)
		collectExpression(s.Condition, refs)
	}
}

func collectExpression(e ast.Expression, refs *[]nameRef) {
	switch v := e.(type) {
	case *ast.VariableExpression:
		*refs = append(*refs, nameRef{path: v.Path, pos: v.Pos()})
	case *ast.BinaryExpression:
		collectExpression(v.Left, refs)
		collectExpression(v.Right, refs)
	case *ast.UnaryExpression:
		collectExpression(v.Operand, refs)
	case *ast.ParenExpression:
		collectExpression(v.Inner, refs)
	case *ast.CallExpression:
		for _, a := range v.Args {
			collectExpression(a, refs)
		}
	}
}
