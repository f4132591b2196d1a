// Package interp is the cyclic interpreter (component G): it executes a
// parsed program's statements directly against a runtime.Store once per
// scan, in source order, then advances every running timer's elapsed
// time. Running the AST rather than the ladder IR lets FOR/WHILE/REPEAT
// execute even though they have no ladder representation.
package interp

import (
	"github.com/stladder/stladder/internal/ast"
	"github.com/stladder/stladder/internal/canon"
	"github.com/stladder/stladder/internal/ladder"
	"github.com/stladder/stladder/internal/runtime"
)

// Interpreter binds a parsed program and its lowered declarations table to
// one live runtime.Store.
type Interpreter struct {
	prog  *ast.Program
	ir    *ladder.Program
	store *runtime.Store
}

// New returns an Interpreter ready to Load and Start. ir is typically
// transform.Transform(prog); it supplies the declared variable and
// function-block tables the evaluator resolves names against.
func New(prog *ast.Program, ir *ladder.Program) *Interpreter {
	return &Interpreter{prog: prog, ir: ir, store: runtime.NewStore()}
}

// Store exposes the live state for inspection (CLI `run` output, tests).
func (it *Interpreter) Store() *runtime.Store { return it.store }

// Load resets the store to the program's declared zero state without
// changing ScanTimeMs.
func (it *Interpreter) Load() { it.store.Load(it.ir) }

// Start transitions STOPPED into RUNNING. Callers must Load first.
func (it *Interpreter) Start() { it.store.Run() }

// Pause transitions RUNNING into PAUSED, preserving all state.
func (it *Interpreter) Pause() { it.store.Pause() }

// Stop transitions into STOPPED and resets all state.
func (it *Interpreter) Stop() { it.store.Stop(it.ir) }

// Reset reloads the store to the program's declared zero state, whatever
// the current status, for a driver's reset() control operation.
func (it *Interpreter) Reset() { it.store.Reset(it.ir) }

// SetScanTime overrides the default 100ms scan period.
func (it *Interpreter) SetScanTime(ms int64) { it.store.Control.ScanTimeMs = ms }

// Tick runs exactly one scan: advance the clock, execute every top-level
// statement in source order, then advance every running timer's ET. It
// returns every RuntimeError raised during execution; DIVISION_BY_ZERO
// leaves its assignment target unchanged and execution continues with the
// next statement.
func (it *Interpreter) Tick() []*RuntimeError {
	if it.store.Control.Status != runtime.Running {
		return nil
	}

	it.store.Control.ElapsedMs += it.store.Control.ScanTimeMs
	it.store.Control.ScanCount++

	var errs []*RuntimeError
	it.execStatements(it.prog.Statements, &errs)
	it.advanceTimers(it.store.Control.ScanTimeMs)
	return errs
}

// Step is the driver-facing name for Tick, matching the step() control
// operation a host calls to single-step the scan cycle.
func (it *Interpreter) Step() []*RuntimeError { return it.Tick() }

func (it *Interpreter) execStatements(stmts []ast.Statement, errs *[]*RuntimeError) {
	for _, stmt := range stmts {
		it.execStatement(stmt, errs)
	}
}

func (it *Interpreter) execStatement(stmt ast.Statement, errs *[]*RuntimeError) {
	switch s := stmt.(type) {
	case *ast.AssignmentStatement:
		if err := it.execAssignment(s); err != nil {
			*errs = append(*errs, err)
		}

	case *ast.FunctionBlockCallStatement:
		if err := it.execFunctionBlockCall(s); err != nil {
			*errs = append(*errs, err)
		}

	case *ast.IfStatement:
		it.execIf(s, errs)

	case *ast.CaseStatement:
		it.execCase(s, errs)

	case *ast.ForStatement:
		it.execFor(s, errs)

	case *ast.WhileStatement:
		it.execWhile(s, errs)

	case *ast.RepeatStatement:
		it.execRepeat(s, errs)
	}
}

func (it *Interpreter) execAssignment(s *ast.AssignmentStatement) *RuntimeError {
	if len(s.Target.Path) > 1 {
		return newRuntimeError(s.Pos(), ErrWriteToFBOutput,
			"cannot write to function block output \""+s.Target.String()+"\"")
	}
	name := s.Target.Path[0]
	if _, isFB := it.ir.FunctionBlocks[canon.Fold(name)]; isFB {
		return newRuntimeError(s.Pos(), ErrWriteToFBOutput,
			"cannot assign directly to function block instance \""+name+"\"")
	}

	value, err := it.eval(s.Value)
	if err != nil {
		return err
	}

	info, ok := it.ir.Variables[canon.Fold(name)]
	if !ok {
		return nil // UNDECLARED_VARIABLE already reported by the validator
	}

	switch info.Type {
	case ast.TypeBool:
		it.store.Bools.Set(name, value.Bool)
	case ast.TypeReal:
		it.store.Reals.Set(name, value.asFloat())
	case ast.TypeTime:
		if value.Kind == VTime {
			it.store.Times.Set(name, value.Time)
		} else {
			it.store.Times.Set(name, int64(value.asFloat()))
		}
	default: // INT, DINT, UINT
		if value.Kind == VReal {
			it.store.Ints.Set(name, int32(value.Real))
		} else {
			it.store.Ints.Set(name, value.Int)
		}
	}
	return nil
}

func (it *Interpreter) execIf(s *ast.IfStatement, errs *[]*RuntimeError) {
	cond, err := it.eval(s.Condition)
	if err != nil {
		*errs = append(*errs, err)
		return
	}
	if cond.Bool {
		it.execStatements(s.Then, errs)
		return
	}
	for _, branch := range s.ElsIfs {
		bc, err := it.eval(branch.Condition)
		if err != nil {
			*errs = append(*errs, err)
			return
		}
		if bc.Bool {
			it.execStatements(branch.Body, errs)
			return
		}
	}
	it.execStatements(s.Else, errs)
}

func (it *Interpreter) execCase(s *ast.CaseStatement, errs *[]*RuntimeError) {
	sel, err := it.eval(s.Selector)
	if err != nil {
		*errs = append(*errs, err)
		return
	}
	for _, clause := range s.Clauses {
		if caseLabelsMatch(sel, clause.Labels) {
			it.execStatements(clause.Body, errs)
			return
		}
	}
	it.execStatements(s.Else, errs)
}

func caseLabelsMatch(sel Value, labels []ast.CaseLabel) bool {
	selInt := int64(sel.asFloat())
	for _, l := range labels {
		if l.IsRange {
			low := literalInt(l.Low)
			high := literalInt(l.High)
			if selInt >= low && selInt <= high {
				return true
			}
			continue
		}
		if selInt == literalInt(l.Single) {
			return true
		}
	}
	return false
}

func literalInt(e ast.Expression) int64 {
	if lit, ok := e.(*ast.Literal); ok {
		if lit.Kind == ast.LiteralInt {
			return lit.IntVal
		}
		if lit.Kind == ast.LiteralReal {
			return int64(lit.RealVal)
		}
	}
	return 0
}

func (it *Interpreter) execFor(s *ast.ForStatement, errs *[]*RuntimeError) {
	start, err := it.eval(s.Start)
	if err != nil {
		*errs = append(*errs, err)
		return
	}
	end, err := it.eval(s.End)
	if err != nil {
		*errs = append(*errs, err)
		return
	}
	step := int32(1)
	if s.Step != nil {
		sv, err := it.eval(s.Step)
		if err != nil {
			*errs = append(*errs, err)
			return
		}
		step = sv.Int
	}
	if step == 0 {
		return
	}

	info, declared := it.ir.Variables[canon.Fold(s.Variable.Value)]
	setLoopVar := func(i int32) {
		if !declared {
			return
		}
		if info.Type == ast.TypeReal {
			it.store.Reals.Set(s.Variable.Value, float64(i))
		} else {
			it.store.Ints.Set(s.Variable.Value, i)
		}
	}

	i := start.Int
	for (step > 0 && i <= end.Int) || (step < 0 && i >= end.Int) {
		setLoopVar(i)
		it.execStatements(s.Body, errs)
		i += step
	}
}

func (it *Interpreter) execWhile(s *ast.WhileStatement, errs *[]*RuntimeError) {
	for {
		cond, err := it.eval(s.Condition)
		if err != nil {
			*errs = append(*errs, err)
			return
		}
		if !cond.Bool {
			return
		}
		it.execStatements(s.Body, errs)
	}
}

func (it *Interpreter) execRepeat(s *ast.RepeatStatement, errs *[]*RuntimeError) {
	for {
		it.execStatements(s.Body, errs)
		cond, err := it.eval(s.Condition)
		if err != nil {
			*errs = append(*errs, err)
			return
		}
		if cond.Bool {
			return
		}
	}
}
