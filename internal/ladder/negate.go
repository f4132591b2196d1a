package ladder

// Negate applies De Morgan's laws structurally to n: contact kinds flip
// (NO<->NC; edge kinds are left as-is since their negation has no single
// contact representation and callers should avoid negating an edge
// contact), comparator operators invert, Series becomes Parallel of
// negated children and vice versa, and True becomes the always-false
// pseudo-contact. Operand text inside a Comparator is never touched:
// negation acts on the operator, not the operands.
func Negate(n ContactNetwork) ContactNetwork {
	switch v := n.(type) {
	case *Contact:
		return &Contact{Variable: v.Variable, Kind: negateContactKind(v.Kind)}
	case *Comparator:
		return &Comparator{Op: negateOp(v.Op), LeftText: v.LeftText, RightText: v.RightText}
	case *Series:
		branches := make([]ContactNetwork, len(v.Children))
		for i, c := range v.Children {
			branches[i] = Negate(c)
		}
		return NewParallel(branches...)
	case *Parallel:
		children := make([]ContactNetwork, len(v.Branches))
		for i, b := range v.Branches {
			children[i] = Negate(b)
		}
		return NewSeries(children...)
	case *True:
		return &Contact{Variable: FalseContactName, Kind: NC}
	default:
		return &True{}
	}
}

func negateContactKind(k ContactKind) ContactKind {
	switch k {
	case NO:
		return NC
	case NC:
		return NO
	default:
		// POS_EDGE/NEG_EDGE have no single-contact negation in this
		// ladder subset; left unchanged.
		return k
	}
}

func negateOp(op ComparatorOp) ComparatorOp {
	switch op {
	case OpEQ:
		return OpNE
	case OpNE:
		return OpEQ
	case OpGT:
		return OpLE
	case OpLE:
		return OpGT
	case OpGE:
		return OpLT
	case OpLT:
		return OpGE
	default:
		return op
	}
}
