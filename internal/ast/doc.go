// Package ast defines the Structured Text abstract syntax tree: Program,
// VariableBlock/VarDecl declarations, the five statement forms
// (assignment, function-block call, IF, CASE, and the accepted-but-not-
// ladderised loops), and the expression forms needed to evaluate and
// lower boolean and arithmetic conditions. Every node carries its source
// position for diagnostics; there is no separate type-checking pass.
package ast
