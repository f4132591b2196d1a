package ast

import (
	"bytes"
	"strings"

	"github.com/stladder/stladder/internal/lexer"
)

// ScopeKind is the declaration scope a VariableBlock introduces.
type ScopeKind int

const (
	ScopeLocal ScopeKind = iota
	ScopeInput
	ScopeOutput
	ScopeInOut
	ScopeTemp
	ScopeGlobal
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeInput:
		return "VAR_INPUT"
	case ScopeOutput:
		return "VAR_OUTPUT"
	case ScopeInOut:
		return "VAR_IN_OUT"
	case ScopeTemp:
		return "VAR_TEMP"
	case ScopeGlobal:
		return "VAR_GLOBAL"
	default:
		return "VAR"
	}
}

// DataTypeKind distinguishes the primitive scalar types from the standard
// function-block types; the tag decides which runtime structure a
// declaration binds to.
type DataTypeKind int

const (
	TypeBool DataTypeKind = iota
	TypeInt
	TypeDint
	TypeUint
	TypeReal
	TypeTime
	TypeTON
	TypeTOF
	TypeTP
	TypeCTU
	TypeCTD
	TypeCTUD
	TypeRTrig
	TypeFTrig
	TypeSR
	TypeRS
)

// IsFunctionBlock reports whether k names a function-block type rather
// than a primitive scalar.
func (k DataTypeKind) IsFunctionBlock() bool { return k >= TypeTON }

func (k DataTypeKind) String() string {
	switch k {
	case TypeBool:
		return "BOOL"
	case TypeInt:
		return "INT"
	case TypeDint:
		return "DINT"
	case TypeUint:
		return "UINT"
	case TypeReal:
		return "REAL"
	case TypeTime:
		return "TIME"
	case TypeTON:
		return "TON"
	case TypeTOF:
		return "TOF"
	case TypeTP:
		return "TP"
	case TypeCTU:
		return "CTU"
	case TypeCTD:
		return "CTD"
	case TypeCTUD:
		return "CTUD"
	case TypeRTrig:
		return "R_TRIG"
	case TypeFTrig:
		return "F_TRIG"
	case TypeSR:
		return "SR"
	case TypeRS:
		return "RS"
	default:
		return "UNKNOWN"
	}
}

// DataType names the declared type of a VarDecl.
type DataType struct {
	Token lexer.Token
	Kind  DataTypeKind
}

func (t *DataType) String() string { return t.Kind.String() }

// VarDecl declares one or more names sharing a type, optional initial
// value, and optional trailing comment.
//
//	A, B : BOOL;
//	Delay : TON;
//	Preset : INT := 10; // starting value
type VarDecl struct {
	Token   lexer.Token
	Names   []*Identifier
	Type    *DataType
	Init    Expression
	Comment string
}

func (d *VarDecl) statementNode()       {}
func (d *VarDecl) TokenLiteral() string { return d.Token.Literal }
func (d *VarDecl) Pos() lexer.Position  { return d.Token.Pos }
func (d *VarDecl) String() string {
	var out bytes.Buffer
	names := make([]string, len(d.Names))
	for i, n := range d.Names {
		names[i] = n.Value
	}
	out.WriteString(strings.Join(names, ", "))
	out.WriteString(" : ")
	out.WriteString(d.Type.String())
	if d.Init != nil {
		out.WriteString(" := ")
		out.WriteString(d.Init.String())
	}
	out.WriteString(";")
	return out.String()
}

// VariableBlock is one VAR[_INPUT|_OUTPUT|_IN_OUT|_TEMP|_GLOBAL] ... END_VAR
// group.
type VariableBlock struct {
	Token lexer.Token
	Kind  ScopeKind
	Decls []*VarDecl
}

func (b *VariableBlock) TokenLiteral() string { return b.Token.Literal }
func (b *VariableBlock) Pos() lexer.Position  { return b.Token.Pos }
func (b *VariableBlock) String() string {
	var out bytes.Buffer
	out.WriteString(b.Kind.String())
	out.WriteString("\n")
	for _, d := range b.Decls {
		out.WriteString("  ")
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	out.WriteString("END_VAR")
	return out.String()
}
