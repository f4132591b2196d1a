// Package ast defines the abstract syntax tree for the Structured Text
// subset: programs, variable declarations, the statement and expression
// forms lowered by internal/transform, and nothing more.
package ast

import (
	"bytes"
	"strings"

	"github.com/stladder/stladder/internal/lexer"
)

// Node is implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is a node that yields a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of the tree: one optional PROGRAM name, its
// variable blocks, and the body statements in source order.
type Program struct {
	Token      lexer.Token
	Name       string
	VarBlocks  []*VariableBlock
	Statements []Statement
}

func (p *Program) TokenLiteral() string { return p.Token.Literal }
func (p *Program) Pos() lexer.Position  { return p.Token.Pos }
func (p *Program) String() string {
	var out bytes.Buffer
	if p.Name != "" {
		out.WriteString("PROGRAM " + p.Name + "\n")
	}
	for _, vb := range p.VarBlocks {
		out.WriteString(vb.String())
		out.WriteString("\n")
	}
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Identifier is a bare name reference (used for instance names, case
// selectors before path construction, loop variables, etc).
type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Value }

// VariableExpression is a dotted access path such as `Delay.Q` or a bare
// `A`. Path is always non-empty.
type VariableExpression struct {
	Token lexer.Token
	Path  []string
}

func (v *VariableExpression) expressionNode()      {}
func (v *VariableExpression) TokenLiteral() string { return v.Token.Literal }
func (v *VariableExpression) Pos() lexer.Position  { return v.Token.Pos }
func (v *VariableExpression) String() string       { return strings.Join(v.Path, ".") }

// LiteralKind tags the value kind carried by a Literal node.
type LiteralKind int

const (
	LiteralBool LiteralKind = iota
	LiteralInt
	LiteralReal
	LiteralTime
	LiteralString
)

// Literal is any constant value: BOOL, INT, REAL, TIME, or STRING. Raw
// preserves the source text (used verbatim in Comparator operand text);
// the typed fields carry the parsed value for the relevant Kind.
type Literal struct {
	Token    lexer.Token
	Raw      string
	Kind     LiteralKind
	BoolVal  bool
	IntVal   int64
	RealVal  float64
	TimeMs   int64
	StrVal   string
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) Pos() lexer.Position  { return l.Token.Pos }
func (l *Literal) String() string       { return l.Raw }

// BinaryExpression is `left operator right` for arithmetic, comparison,
// and boolean operators (Operator is the upper-cased keyword or symbol:
// "+", "-", "*", "/", "MOD", "=", "<>", "<", ">", "<=", ">=", "AND",
// "OR", "XOR").
type BinaryExpression struct {
	Token    lexer.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() lexer.Position  { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// UnaryExpression is `NOT x` or `-x`.
type UnaryExpression struct {
	Token    lexer.Token
	Operator string
	Operand  Expression
}

func (u *UnaryExpression) expressionNode()      {}
func (u *UnaryExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpression) Pos() lexer.Position  { return u.Token.Pos }
func (u *UnaryExpression) String() string {
	if u.Operator == "NOT" {
		return "(NOT " + u.Operand.String() + ")"
	}
	return "(" + u.Operator + u.Operand.String() + ")"
}

// ParenExpression is a parenthesised expression; it is transparent to
// precedence but preserved so source text can be reproduced.
type ParenExpression struct {
	Token lexer.Token
	Inner Expression
}

func (p *ParenExpression) expressionNode()      {}
func (p *ParenExpression) TokenLiteral() string { return p.Token.Literal }
func (p *ParenExpression) Pos() lexer.Position  { return p.Token.Pos }
func (p *ParenExpression) String() string       { return "(" + p.Inner.String() + ")" }

// CallExpression is a function call `name(args...)`. The ST subset has no
// user-defined functions; this node lets such calls parse. No stage reports
// them: the validator checks only their arguments, the transformer lowers
// them to a `<> 0` comparator, and the interpreter evaluates them to FALSE.
type CallExpression struct {
	Token lexer.Token
	Name  string
	Args  []Expression
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) Pos() lexer.Position  { return c.Token.Pos }
func (c *CallExpression) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}
