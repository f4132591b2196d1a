package interp

import (
	"strconv"
	"strings"

	"github.com/stladder/stladder/internal/ast"
	"github.com/stladder/stladder/internal/canon"
)

// eval evaluates an expression against the interpreter's current store
// state, returning a RuntimeError only for DIVISION_BY_ZERO (the only
// evaluation failure the interpreter can hit at run time; everything else
// is caught ahead of time by the validator).
func (it *Interpreter) eval(e ast.Expression) (Value, *RuntimeError) {
	switch v := e.(type) {
	case *ast.Literal:
		return it.evalLiteral(v), nil

	case *ast.VariableExpression:
		return it.resolveVariable(v.Path), nil

	case *ast.ParenExpression:
		return it.eval(v.Inner)

	case *ast.UnaryExpression:
		return it.evalUnary(v)

	case *ast.BinaryExpression:
		return it.evalBinary(v)
	}
	return Value{}, nil
}

func (it *Interpreter) evalLiteral(l *ast.Literal) Value {
	switch l.Kind {
	case ast.LiteralBool:
		return boolValue(l.BoolVal)
	case ast.LiteralInt:
		return intValue(int32(l.IntVal))
	case ast.LiteralReal:
		return realValue(l.RealVal)
	case ast.LiteralTime:
		return timeValue(l.TimeMs)
	default:
		return Value{}
	}
}

func (it *Interpreter) evalUnary(u *ast.UnaryExpression) (Value, *RuntimeError) {
	operand, err := it.eval(u.Operand)
	if err != nil {
		return Value{}, err
	}
	switch u.Operator {
	case "NOT":
		return boolValue(!operand.Bool), nil
	case "-":
		if operand.Kind == VReal {
			return realValue(-operand.Real), nil
		}
		return intValue(-operand.Int), nil
	}
	return operand, nil
}

func (it *Interpreter) evalBinary(b *ast.BinaryExpression) (Value, *RuntimeError) {
	left, err := it.eval(b.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := it.eval(b.Right)
	if err != nil {
		return Value{}, err
	}

	switch b.Operator {
	case "AND":
		return boolValue(left.Bool && right.Bool), nil
	case "OR":
		return boolValue(left.Bool || right.Bool), nil
	case "XOR":
		return boolValue(left.Bool != right.Bool), nil
	case "=", "<>", "<", ">", "<=", ">=":
		return it.evalComparison(b.Operator, left, right), nil
	case "+", "-", "*", "/", "MOD":
		return it.evalArithmetic(b, left, right)
	}
	return Value{}, nil
}

func (it *Interpreter) evalComparison(op string, left, right Value) Value {
	var cmp int
	if left.Kind == VReal || right.Kind == VReal {
		l, r := left.asFloat(), right.asFloat()
		switch {
		case l < r:
			cmp = -1
		case l > r:
			cmp = 1
		}
	} else if left.Kind == VBool {
		switch {
		case left.Bool == right.Bool:
			cmp = 0
		case left.Bool:
			cmp = 1
		default:
			cmp = -1
		}
	} else {
		l, r := int64(left.asFloat()), int64(right.asFloat())
		switch {
		case l < r:
			cmp = -1
		case l > r:
			cmp = 1
		}
	}

	switch op {
	case "=":
		return boolValue(cmp == 0)
	case "<>":
		return boolValue(cmp != 0)
	case "<":
		return boolValue(cmp < 0)
	case ">":
		return boolValue(cmp > 0)
	case "<=":
		return boolValue(cmp <= 0)
	default: // ">="
		return boolValue(cmp >= 0)
	}
}

func (it *Interpreter) evalArithmetic(b *ast.BinaryExpression, left, right Value) (Value, *RuntimeError) {
	left, right = asArithmeticOperand(left), asArithmeticOperand(right)

	if left.Kind == VReal || right.Kind == VReal {
		l, r := left.asFloat(), right.asFloat()
		switch b.Operator {
		case "+":
			return realValue(l + r), nil
		case "-":
			return realValue(l - r), nil
		case "*":
			return realValue(l * r), nil
		case "/":
			if r == 0 {
				return Value{}, newRuntimeError(b.Pos(), ErrDivisionByZero, "division by zero")
			}
			return realValue(l / r), nil
		case "MOD":
			if r == 0 {
				return Value{}, newRuntimeError(b.Pos(), ErrDivisionByZero, "modulo by zero")
			}
			m := l - r*float64(int64(l/r))
			return realValue(m), nil
		}
	}

	l, r := left.Int, right.Int
	switch b.Operator {
	case "+":
		return intValue(l + r), nil
	case "-":
		return intValue(l - r), nil
	case "*":
		return intValue(l * r), nil
	case "/":
		if r == 0 {
			return Value{}, newRuntimeError(b.Pos(), ErrDivisionByZero, "division by zero")
		}
		return intValue(l / r), nil // Go truncates toward zero, matching IEC INT division
	case "MOD":
		if r == 0 {
			return Value{}, newRuntimeError(b.Pos(), ErrDivisionByZero, "modulo by zero")
		}
		return intValue(l % r), nil // Go's % follows the dividend's sign, matching IEC MOD
	}
	return Value{}, nil
}

// asArithmeticOperand widens a boolean operand to 0/1 per the arithmetic
// context rule; numeric operands pass through unchanged.
func asArithmeticOperand(v Value) Value {
	if v.isNumeric() {
		return v
	}
	if v.Bool {
		return intValue(1)
	}
	return intValue(0)
}

// resolveVariable reads a scalar variable or an accepted function-block
// output path from the store.
func (it *Interpreter) resolveVariable(path []string) Value {
	name := path[0]
	upper := strings.ToUpper(name)
	if upper == "TRUE" {
		return boolValue(true)
	}
	if upper == "FALSE" {
		return boolValue(false)
	}

	if len(path) == 1 {
		if info, ok := it.ir.Variables[canon.Fold(name)]; ok {
			switch info.Type {
			case ast.TypeBool:
				b, _ := it.store.Bools.Get(name)
				return boolValue(b)
			case ast.TypeReal:
				r, _ := it.store.Reals.Get(name)
				return realValue(r)
			case ast.TypeTime:
				t, _ := it.store.Times.Get(name)
				return timeValue(t)
			default:
				i, _ := it.store.Ints.Get(name)
				return intValue(i)
			}
		}
		// Undeclared (validator already flagged this): fall back to a
		// literal numeric parse so evaluation never panics.
		if n, err := strconv.ParseInt(name, 10, 64); err == nil {
			return intValue(int32(n))
		}
		return boolValue(false)
	}

	return it.resolveFBOutput(name, path[1])
}

func (it *Interpreter) resolveFBOutput(instance, output string) Value {
	info, ok := it.ir.FunctionBlocks[canon.Fold(instance)]
	if !ok {
		return boolValue(false)
	}
	upper := strings.ToUpper(output)

	switch info.Type {
	case ast.TypeTON, ast.TypeTOF, ast.TypeTP:
		ts, _ := it.store.Timers.Get(instance)
		if ts == nil {
			return boolValue(false)
		}
		if upper == "ET" {
			return timeValue(ts.ET)
		}
		return boolValue(ts.Q)

	case ast.TypeCTU, ast.TypeCTD, ast.TypeCTUD:
		cs, _ := it.store.Counters.Get(instance)
		if cs == nil {
			return boolValue(false)
		}
		switch upper {
		case "CV":
			return intValue(int32(cs.CV))
		case "QD":
			return boolValue(cs.QD)
		default:
			return boolValue(cs.QU)
		}

	case ast.TypeRTrig, ast.TypeFTrig:
		es, _ := it.store.Edges.Get(instance)
		if es == nil {
			return boolValue(false)
		}
		return boolValue(es.Q)

	case ast.TypeSR, ast.TypeRS:
		bs, _ := it.store.Bistables.Get(instance)
		if bs == nil {
			return boolValue(false)
		}
		return boolValue(bs.Q)
	}
	return boolValue(false)
}
