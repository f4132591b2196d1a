// Package transform lowers an *ast.Program into a *ladder.Program: a
// declaration pass that builds the variable and function-block tables,
// followed by a statement pass that produces rungs in source order,
// propagating IF/CASE conditions into every descendant rung.
package transform

import (
	"strconv"

	"github.com/stladder/stladder/internal/ast"
	"github.com/stladder/stladder/internal/canon"
	"github.com/stladder/stladder/internal/ladder"
)

// Transform runs both passes over prog and returns the resulting ladder IR.
func Transform(prog *ast.Program) *ladder.Program {
	out := ladder.NewProgram()

	for _, block := range prog.VarBlocks {
		for _, decl := range block.Decls {
			for _, name := range decl.Names {
				if decl.Type.Kind.IsFunctionBlock() {
					out.FunctionBlocks[canon.Fold(name.Value)] = &ladder.FunctionBlockInfo{
						Name: name.Value,
						Type: decl.Type.Kind,
					}
				} else {
					out.Variables[canon.Fold(name.Value)] = &ladder.VariableInfo{
						Name:  name.Value,
						Scope: block.Kind,
						Type:  decl.Type.Kind,
					}
				}
			}
		}
	}

	rungs := transformStatements(prog.Statements, out)
	for i, r := range rungs {
		r.Index = i
	}
	out.Rungs = rungs

	return out
}

func transformStatements(stmts []ast.Statement, prog *ladder.Program) []*ladder.Rung {
	var rungs []*ladder.Rung
	for _, stmt := range stmts {
		rungs = append(rungs, transformStatement(stmt, prog)...)
	}
	return rungs
}

func transformStatement(stmt ast.Statement, prog *ladder.Program) []*ladder.Rung {
	switch v := stmt.(type) {
	case *ast.AssignmentStatement:
		return []*ladder.Rung{{
			InputNetwork: expressionToNetwork(v.Value),
			Output:       &ladder.Coil{Variable: v.Target.String(), Kind: ladder.CoilStandard},
			Source:       stmt,
		}}

	case *ast.FunctionBlockCallStatement:
		return []*ladder.Rung{transformFunctionBlockCall(v, prog)}

	case *ast.IfStatement:
		return transformIf(v, prog)

	case *ast.CaseStatement:
		return transformCase(v, prog)

	case *ast.ForStatement, *ast.WhileStatement, *ast.RepeatStatement:
		// Accepted syntactically; not representable in ladder form. The
		// validator reports UNSUPPORTED_IN_LADDER by re-walking the AST.
		return nil
	}
	return nil
}

func transformIf(v *ast.IfStatement, prog *ladder.Program) []*ladder.Rung {
	var rungs []*ladder.Rung

	cond := expressionToNetwork(v.Condition)
	thenRungs := transformStatements(v.Then, prog)
	for _, r := range thenRungs {
		r.InputNetwork = prependSeries(cond, r.InputNetwork)
	}
	rungs = append(rungs, thenRungs...)

	// ELSIF branches use their own condition directly: prior branch
	// conditions are not negated. This is a documented simplification,
	// not an oversight.
	for _, branch := range v.ElsIfs {
		branchCond := expressionToNetwork(branch.Condition)
		branchRungs := transformStatements(branch.Body, prog)
		for _, r := range branchRungs {
			r.InputNetwork = prependSeries(branchCond, r.InputNetwork)
		}
		rungs = append(rungs, branchRungs...)
	}

	if v.Else != nil {
		negCond := ladder.Negate(cond)
		elseRungs := transformStatements(v.Else, prog)
		for _, r := range elseRungs {
			r.InputNetwork = prependSeries(negCond, r.InputNetwork)
		}
		rungs = append(rungs, elseRungs...)
	}

	return rungs
}

func transformCase(v *ast.CaseStatement, prog *ladder.Program) []*ladder.Rung {
	var rungs []*ladder.Rung
	selText := v.Selector.String()

	for _, clause := range v.Clauses {
		cond := caseClauseCondition(selText, clause.Labels)
		clauseRungs := transformStatements(clause.Body, prog)
		for _, r := range clauseRungs {
			r.InputNetwork = prependSeries(cond, r.InputNetwork)
		}
		rungs = append(rungs, clauseRungs...)
	}

	// ELSE clause statements are emitted unconditioned: a documented
	// simplification, since the validator's power-flow checks cannot
	// reconstruct "none of the above" as a single condition here.
	if v.Else != nil {
		rungs = append(rungs, transformStatements(v.Else, prog)...)
	}

	return rungs
}

func caseClauseCondition(selText string, labels []ast.CaseLabel) ladder.ContactNetwork {
	conds := make([]ladder.ContactNetwork, len(labels))
	for i, l := range labels {
		if l.IsRange {
			conds[i] = ladder.NewSeries(
				&ladder.Comparator{Op: ladder.OpGE, LeftText: selText, RightText: l.Low.String()},
				&ladder.Comparator{Op: ladder.OpLE, LeftText: selText, RightText: l.High.String()},
			)
			continue
		}
		conds[i] = &ladder.Comparator{Op: ladder.OpEQ, LeftText: selText, RightText: l.Single.String()}
	}
	if len(conds) == 1 {
		return conds[0]
	}
	return ladder.NewParallel(conds...)
}

func transformFunctionBlockCall(call *ast.FunctionBlockCallStatement, prog *ladder.Program) *ladder.Rung {
	info, declared := prog.FunctionBlocks[canon.Fold(call.Instance)]

	if !declared {
		// No FB declaration: degrade to a standard coil named after the
		// instance. The validator flags the missing declaration.
		input := argNetwork(call, "IN")
		if input == nil {
			input = argNetwork(call, "CU")
		}
		if input == nil {
			input = &ladder.True{}
		}
		return &ladder.Rung{
			InputNetwork: input,
			Output:       &ladder.Coil{Variable: call.Instance, Kind: ladder.CoilStandard},
			Source:       call,
		}
	}

	switch info.Type {
	case ast.TypeTON, ast.TypeTOF, ast.TypeTP:
		return &ladder.Rung{
			InputNetwork: inputOrTrue(argNetwork(call, "IN")),
			Output: &ladder.Timer{
				Instance:   call.Instance,
				Kind:       timerKindFor(info.Type),
				PresetText: argText(call, "PT"),
			},
			Source: call,
		}
	case ast.TypeCTU:
		return &ladder.Rung{
			InputNetwork: inputOrTrue(argNetwork(call, "CU")),
			Output:       &ladder.Counter{Instance: call.Instance, Kind: ladder.CounterCTU, PresetValue: presetValue(call)},
			Source:       call,
		}
	case ast.TypeCTD:
		return &ladder.Rung{
			InputNetwork: inputOrTrue(argNetwork(call, "CD")),
			Output:       &ladder.Counter{Instance: call.Instance, Kind: ladder.CounterCTD, PresetValue: presetValue(call)},
			Source:       call,
		}
	case ast.TypeCTUD:
		// Open question in the source design: CU is preferred over CD
		// when both are wired, by deliberate choice (verify against
		// user intent before relying on CTUD ladder rendering).
		input := argNetwork(call, "CU")
		if input == nil {
			input = argNetwork(call, "CD")
		}
		return &ladder.Rung{
			InputNetwork: inputOrTrue(input),
			Output:       &ladder.Counter{Instance: call.Instance, Kind: ladder.CounterCTUD, PresetValue: presetValue(call)},
			Source:       call,
		}
	}

	// R_TRIG/F_TRIG/SR/RS have no rung-output representation of their own
	// in this subset; surface them as a standard coil on CLK/S1 so the
	// rung is still traceable, matching the "no FB declaration" fallback.
	input := argNetwork(call, "CLK")
	if input == nil {
		input = argNetwork(call, "S1")
	}
	if input == nil {
		input = argNetwork(call, "S")
	}
	return &ladder.Rung{
		InputNetwork: inputOrTrue(input),
		Output:       &ladder.Coil{Variable: call.Instance, Kind: ladder.CoilStandard},
		Source:       call,
	}
}

func inputOrTrue(n ladder.ContactNetwork) ladder.ContactNetwork {
	if n == nil {
		return &ladder.True{}
	}
	return n
}

func argNetwork(call *ast.FunctionBlockCallStatement, name string) ladder.ContactNetwork {
	v, ok := call.Arg(name)
	if !ok {
		return nil
	}
	return expressionToNetwork(v)
}

func argText(call *ast.FunctionBlockCallStatement, name string) string {
	v, ok := call.Arg(name)
	if !ok {
		return ""
	}
	return v.String()
}

func timerKindFor(k ast.DataTypeKind) ladder.TimerKind {
	switch k {
	case ast.TypeTOF:
		return ladder.TimerTOF
	case ast.TypeTP:
		return ladder.TimerTP
	default:
		return ladder.TimerTON
	}
}

// presetValue parses the PV argument as an integer literal, defaulting to
// 10 if it is missing or not a literal.
func presetValue(call *ast.FunctionBlockCallStatement) int64 {
	v, ok := call.Arg("PV")
	if !ok {
		return 10
	}
	if lit, ok := v.(*ast.Literal); ok && lit.Kind == ast.LiteralInt {
		return lit.IntVal
	}
	if lit, ok := v.(*ast.Literal); ok && lit.Kind == ast.LiteralReal {
		return int64(lit.RealVal)
	}
	if parsed, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
		return parsed
	}
	return 10
}
