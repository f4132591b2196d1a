package interp

import (
	"github.com/stladder/stladder/internal/ast"
	"github.com/stladder/stladder/internal/canon"
	"github.com/stladder/stladder/internal/ladder"
	"github.com/stladder/stladder/internal/runtime"
)

// execFunctionBlockCall runs one scan's worth of a function-block
// invocation: it reads its named arguments, updates the instance's latched
// state for this scan, and (for timers) marks whether ET should keep
// advancing in the scan's final "advance running timers" pass.
func (it *Interpreter) execFunctionBlockCall(call *ast.FunctionBlockCallStatement) *RuntimeError {
	info, ok := it.ir.FunctionBlocks[canon.Fold(call.Instance)]
	if !ok {
		return nil
	}

	switch info.Type {
	case ast.TypeTON, ast.TypeTOF, ast.TypeTP:
		return it.execTimer(call, info)
	case ast.TypeCTU, ast.TypeCTD, ast.TypeCTUD:
		return it.execCounter(call, info)
	case ast.TypeRTrig, ast.TypeFTrig:
		return it.execEdge(call, info)
	case ast.TypeSR, ast.TypeRS:
		return it.execBistable(call, info)
	}
	return nil
}

func (it *Interpreter) argBool(call *ast.FunctionBlockCallStatement, name string) (bool, *RuntimeError) {
	expr, ok := call.Arg(name)
	if !ok {
		return false, nil
	}
	v, err := it.eval(expr)
	return v.Bool, err
}

func (it *Interpreter) presetMs(call *ast.FunctionBlockCallStatement) (int64, *RuntimeError) {
	expr, ok := call.Arg("PT")
	if !ok {
		return 0, nil
	}
	v, err := it.eval(expr)
	if err != nil {
		return 0, err
	}
	if v.Kind == VTime {
		return v.Time, nil
	}
	return int64(v.asFloat()), nil
}

func (it *Interpreter) presetCount(call *ast.FunctionBlockCallStatement) (int64, *RuntimeError) {
	expr, ok := call.Arg("PV")
	if !ok {
		return 0, nil
	}
	v, err := it.eval(expr)
	if err != nil {
		return 0, err
	}
	return int64(v.asFloat()), nil
}

func (it *Interpreter) execTimer(call *ast.FunctionBlockCallStatement, info *ladder.FunctionBlockInfo) *RuntimeError {
	ts, _ := it.store.Timers.Get(call.Instance)
	if ts == nil {
		ts = &runtime.TimerState{}
		it.store.Timers.Set(call.Instance, ts)
	}

	in, err := it.argBool(call, "IN")
	if err != nil {
		return err
	}
	pt, err := it.presetMs(call)
	if err != nil {
		return err
	}

	ts.ApplyInput(info.Type, in, pt)
	return nil
}

func (it *Interpreter) execCounter(call *ast.FunctionBlockCallStatement, info *ladder.FunctionBlockInfo) *RuntimeError {
	cs, _ := it.store.Counters.Get(call.Instance)
	if cs == nil {
		cs = &runtime.CounterState{}
		it.store.Counters.Set(call.Instance, cs)
	}

	reset, err := it.argBool(call, "R")
	if err != nil {
		return err
	}
	load, err := it.argBool(call, "LD")
	if err != nil {
		return err
	}
	pv, err := it.presetCount(call)
	if err != nil {
		return err
	}

	cu, err := it.argBool(call, "CU")
	if err != nil {
		return err
	}
	cd, err := it.argBool(call, "CD")
	if err != nil {
		return err
	}

	cs.Apply(info.Type, reset, load, cu, cd, pv)
	return nil
}

func (it *Interpreter) execEdge(call *ast.FunctionBlockCallStatement, info *ladder.FunctionBlockInfo) *RuntimeError {
	es, _ := it.store.Edges.Get(call.Instance)
	if es == nil {
		es = &runtime.EdgeState{}
		it.store.Edges.Set(call.Instance, es)
	}
	clk, err := it.argBool(call, "CLK")
	if err != nil {
		return err
	}
	if info.Type == ast.TypeRTrig {
		es.Q = clk && !es.Prev
	} else {
		es.Q = !clk && es.Prev
	}
	es.Prev = clk
	return nil
}

func (it *Interpreter) execBistable(call *ast.FunctionBlockCallStatement, info *ladder.FunctionBlockInfo) *RuntimeError {
	bs, _ := it.store.Bistables.Get(call.Instance)
	if bs == nil {
		bs = &runtime.BistableState{}
		it.store.Bistables.Set(call.Instance, bs)
	}

	if info.Type == ast.TypeSR {
		set, err := it.argBool(call, "S1")
		if err != nil {
			return err
		}
		reset, err := it.argBool(call, "R")
		if err != nil {
			return err
		}
		if set {
			bs.Q = true
		} else if reset {
			bs.Q = false
		}
		return nil
	}

	// RS: reset-dominant.
	set, err := it.argBool(call, "S")
	if err != nil {
		return err
	}
	reset, err := it.argBool(call, "R1")
	if err != nil {
		return err
	}
	if reset {
		bs.Q = false
	} else if set {
		bs.Q = true
	}
	return nil
}

// advanceTimers runs the scan's final pass: every timer marked running
// gains one scan period of ET, clamped to its preset, with the discrete
// TON/TOF/TP transitions this crossing triggers.
func (it *Interpreter) advanceTimers(scanTimeMs int64) {
	it.store.Timers.Range(func(name string, ts *runtime.TimerState) {
		info, _ := it.ir.FunctionBlocks[canon.Fold(name)]
		ts.AdvanceTimer(info.Type, scanTimeMs)
	})
}
