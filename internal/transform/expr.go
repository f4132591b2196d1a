package transform

import (
	"github.com/stladder/stladder/internal/ast"
	"github.com/stladder/stladder/internal/ladder"
)

// expressionToNetwork lowers a boolean expression to a ContactNetwork per
// the table in the transformer's expression rules: AND/OR/XOR/NOT map
// structurally, comparisons become Comparator nodes with text-preserved
// operands, a bare variable becomes a NO contact, and anything else
// (arithmetic evaluated in boolean context) becomes a != 0 comparator
// against the expression's own source text.
func expressionToNetwork(e ast.Expression) ladder.ContactNetwork {
	switch v := e.(type) {
	case *ast.BinaryExpression:
		switch v.Operator {
		case "AND":
			return ladder.NewSeries(expressionToNetwork(v.Left), expressionToNetwork(v.Right))
		case "OR":
			return ladder.NewParallel(expressionToNetwork(v.Left), expressionToNetwork(v.Right))
		case "XOR":
			l := expressionToNetwork(v.Left)
			r := expressionToNetwork(v.Right)
			return ladder.NewParallel(
				ladder.NewSeries(l, ladder.Negate(r)),
				ladder.NewSeries(ladder.Negate(l), r),
			)
		case "=", "<>", "<", ">", "<=", ">=":
			return &ladder.Comparator{
				Op:        comparatorOp(v.Operator),
				LeftText:  v.Left.String(),
				RightText: v.Right.String(),
			}
		}
	case *ast.UnaryExpression:
		if v.Operator == "NOT" {
			return ladder.Negate(expressionToNetwork(v.Operand))
		}
	case *ast.VariableExpression:
		return &ladder.Contact{Variable: v.String(), Kind: ladder.NO}
	case *ast.Literal:
		if v.Kind == ast.LiteralBool {
			if v.BoolVal {
				return &ladder.True{}
			}
			return &ladder.Contact{Variable: ladder.FalseContactName, Kind: ladder.NC}
		}
	case *ast.ParenExpression:
		return expressionToNetwork(v.Inner)
	}

	// Arithmetic (or any other) expression evaluated in boolean context.
	return &ladder.Comparator{Op: ladder.OpNE, LeftText: e.String(), RightText: "0"}
}

func comparatorOp(op string) ladder.ComparatorOp {
	switch op {
	case "=":
		return ladder.OpEQ
	case "<>":
		return ladder.OpNE
	case ">":
		return ladder.OpGT
	case ">=":
		return ladder.OpGE
	case "<":
		return ladder.OpLT
	case "<=":
		return ladder.OpLE
	}
	return ladder.OpEQ
}

// prependSeries returns net with cond prepended in series, flattening per
// Series's invariants.
func prependSeries(cond ladder.ContactNetwork, net ladder.ContactNetwork) ladder.ContactNetwork {
	return ladder.NewSeries(cond, net)
}
