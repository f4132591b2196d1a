package ast

import (
	"bytes"
	"strings"

	"github.com/stladder/stladder/internal/lexer"
)

// AssignmentStatement is `target := expr;`. Target is a VariableExpression.
// A dotted target passes the parser and the transformer; the validator
// reports UNDECLARED_VARIABLE unless it names an instance's Q/ET/CV/QU/QD,
// and the interpreter refuses every dotted target with WRITE_TO_FB_OUTPUT.
type AssignmentStatement struct {
	Token  lexer.Token
	Target *VariableExpression
	Value  Expression
}

func (a *AssignmentStatement) statementNode()       {}
func (a *AssignmentStatement) TokenLiteral() string { return a.Token.Literal }
func (a *AssignmentStatement) Pos() lexer.Position  { return a.Token.Pos }
func (a *AssignmentStatement) String() string {
	return a.Target.String() + " := " + a.Value.String() + ";"
}

// NamedArg is one `Name := Value` argument in a function-block call.
type NamedArg struct {
	Token lexer.Token
	Name  string
	Value Expression
}

func (n *NamedArg) String() string { return n.Name + " := " + n.Value.String() }

// FunctionBlockCallStatement is `Instance(Name := Value, ...);` — the
// invocation form that drives a timer, counter, edge detector, or
// bistable instance for one scan.
type FunctionBlockCallStatement struct {
	Token    lexer.Token
	Instance string
	Args     []*NamedArg
}

func (c *FunctionBlockCallStatement) statementNode()       {}
func (c *FunctionBlockCallStatement) TokenLiteral() string { return c.Token.Literal }
func (c *FunctionBlockCallStatement) Pos() lexer.Position  { return c.Token.Pos }
func (c *FunctionBlockCallStatement) String() string {
	var out bytes.Buffer
	out.WriteString(c.Instance)
	out.WriteString("(")
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(");")
	return out.String()
}

// Arg looks up a named argument, returning (value, true) if present.
func (c *FunctionBlockCallStatement) Arg(name string) (Expression, bool) {
	for _, a := range c.Args {
		if strings.EqualFold(a.Name, name) {
			return a.Value, true
		}
	}
	return nil, false
}
