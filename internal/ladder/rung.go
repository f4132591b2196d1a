package ladder

import "github.com/stladder/stladder/internal/ast"

// Rung is a single ladder row: the input contact network that must be
// energised for Output to act, plus bookkeeping for rendering and
// diagnostics.
type Rung struct {
	Index        int
	InputNetwork ContactNetwork
	Output       RungOutput
	Comment      string
	Source       ast.Statement
}

// VariableInfo records a declared scalar variable's scope and type, keyed
// by canonical name in Program.Variables.
type VariableInfo struct {
	Name  string
	Scope ast.ScopeKind
	Type  ast.DataTypeKind
}

// FunctionBlockInfo records a declared function-block instance's type,
// keyed by canonical name in Program.FunctionBlocks.
type FunctionBlockInfo struct {
	Name string
	Type ast.DataTypeKind
}

// Program is the full ladder IR produced by internal/transform: the
// declared variable and function-block tables plus the rung list in
// source order.
type Program struct {
	Rungs          []*Rung
	Variables      map[string]*VariableInfo
	FunctionBlocks map[string]*FunctionBlockInfo
}

// NewProgram returns an empty Program with initialized tables.
func NewProgram() *Program {
	return &Program{
		Variables:      make(map[string]*VariableInfo),
		FunctionBlocks: make(map[string]*FunctionBlockInfo),
	}
}
