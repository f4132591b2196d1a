// Package parser implements a recursive-descent, precedence-climbing
// parser for the Structured Text subset, producing an *ast.Program and a
// list of recoverable ParserErrors.
package parser

import (
	"strconv"

	"github.com/stladder/stladder/internal/ast"
	"github.com/stladder/stladder/internal/iectime"
	"github.com/stladder/stladder/internal/lexer"
)

// Precedence levels, tightest to loosest is the reverse of this list:
// OR is loosest, unary NOT / unary minus is tightest (handled as prefix
// parsing, not a table entry).
const (
	LOWEST = iota
	PREC_OR
	PREC_AND_XOR
	PREC_EQUALITY
	PREC_RELATIONAL
	PREC_ADDITIVE
	PREC_MULTIPLICATIVE
)

var infixPrecedence = map[lexer.TokenType]int{
	lexer.OR:         PREC_OR,
	lexer.AND:        PREC_AND_XOR,
	lexer.XOR:        PREC_AND_XOR,
	lexer.EQ:         PREC_EQUALITY,
	lexer.NOT_EQ:     PREC_EQUALITY,
	lexer.LESS:       PREC_RELATIONAL,
	lexer.GREATER:    PREC_RELATIONAL,
	lexer.LESS_EQ:    PREC_RELATIONAL,
	lexer.GREATER_EQ: PREC_RELATIONAL,
	lexer.PLUS:       PREC_ADDITIVE,
	lexer.MINUS:      PREC_ADDITIVE,
	lexer.ASTERISK:   PREC_MULTIPLICATIVE,
	lexer.SLASH:      PREC_MULTIPLICATIVE,
	lexer.MOD:        PREC_MULTIPLICATIVE,
}

var blockClosers = map[lexer.TokenType]bool{
	lexer.END_IF:     true,
	lexer.END_CASE:   true,
	lexer.END_FOR:    true,
	lexer.END_WHILE:  true,
	lexer.END_REPEAT: true,
	lexer.END_VAR:    true,
	lexer.END_PROGRAM: true,
	lexer.ELSE:       true,
	lexer.ELSIF:      true,
	lexer.UNTIL:      true,
	lexer.EOF:        true,
}

// Parser holds the token stream and accumulated diagnostics for one parse.
type Parser struct {
	cursor *TokenCursor
	ctx    *ParseContext
	errors []*ParserError
}

// Parse tokenises source and parses it as a Structured Text program,
// recovering from syntax errors at statement and block boundaries so one
// call always returns a Program and the (possibly empty) error list.
func Parse(source string) (*ast.Program, []*ParserError) {
	l := lexer.New(source)
	var tokens []lexer.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	p := &Parser{cursor: NewTokenCursor(tokens), ctx: NewParseContext()}
	for _, lerr := range l.Errors() {
		p.errors = append(p.errors, NewParserError(lerr.Pos, 1, lerr.Message, ErrInvalidSyntax))
	}

	prog := p.parseProgram()
	return prog, p.errors
}

func (p *Parser) addError(message, code string) {
	tok := p.cursor.Current()
	p.errors = append(p.errors, NewParserError(tok.Pos, tok.Length(), message, code))
}

func (p *Parser) addErrorAt(pos lexer.Position, length int, message, code string) {
	p.errors = append(p.errors, NewParserError(pos, length, message, code))
}

// expect advances past the current token if it matches tt, else records a
// diagnostic and leaves the cursor in place.
func (p *Parser) expect(tt lexer.TokenType, code string) lexer.Token {
	if p.cursor.Is(tt) {
		return p.cursor.Advance()
	}
	p.addError("expected "+tt.String()+", got "+p.cursor.Current().Type.String(), code)
	return p.cursor.Current()
}

// synchronize advances until a statement boundary or block closer is
// reached, so one bad statement does not cascade into the rest of the
// file.
func (p *Parser) synchronize() {
	for !p.cursor.IsEOF() {
		if p.cursor.Is(lexer.SEMICOLON) {
			p.cursor.Advance()
			return
		}
		if blockClosers[p.cursor.Current().Type] {
			return
		}
		p.cursor.Advance()
	}
}

// parseProgram parses an optional `PROGRAM name`, any VAR* blocks, the
// statement list, and an optional closing END_PROGRAM. A trailing '.' is
// not accepted.
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{Token: p.cursor.Current()}

	if p.cursor.Is(lexer.PROGRAM) {
		p.cursor.Advance()
		nameTok := p.expect(lexer.IDENT, ErrExpectedIdent)
		prog.Name = nameTok.Literal
	}

	for isVarBlockStart(p.cursor.Current().Type) {
		if vb := p.parseVariableBlock(); vb != nil {
			prog.VarBlocks = append(prog.VarBlocks, vb)
		}
	}

	for !p.cursor.IsEOF() && !p.cursor.Is(lexer.END_PROGRAM) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		} else {
			p.synchronize()
		}
	}

	if p.cursor.Is(lexer.END_PROGRAM) {
		p.cursor.Advance()
	}

	return prog
}

func isVarBlockStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.VAR, lexer.VAR_INPUT, lexer.VAR_OUTPUT, lexer.VAR_IN_OUT, lexer.VAR_TEMP, lexer.VAR_GLOBAL:
		return true
	}
	return false
}

func (p *Parser) parseVariableBlock() *ast.VariableBlock {
	tok := p.cursor.Current()
	kind := scopeKindFor(tok.Type)
	p.cursor.Advance()

	block := &ast.VariableBlock{Token: tok, Kind: kind}
	p.ctx.PushBlock("VAR", tok.Pos)
	defer p.ctx.PopBlock()

	for !p.cursor.IsEOF() && !p.cursor.Is(lexer.END_VAR) {
		decl := p.parseVarDecl()
		if decl == nil {
			p.synchronize()
			continue
		}
		block.Decls = append(block.Decls, decl)
	}

	if p.cursor.Is(lexer.END_VAR) {
		p.cursor.Advance()
	} else {
		p.addError("unclosed "+tok.Type.String()+" block", ErrMissingEndVar)
	}

	return block
}

func scopeKindFor(tt lexer.TokenType) ast.ScopeKind {
	switch tt {
	case lexer.VAR_INPUT:
		return ast.ScopeInput
	case lexer.VAR_OUTPUT:
		return ast.ScopeOutput
	case lexer.VAR_IN_OUT:
		return ast.ScopeInOut
	case lexer.VAR_TEMP:
		return ast.ScopeTemp
	case lexer.VAR_GLOBAL:
		return ast.ScopeGlobal
	default:
		return ast.ScopeLocal
	}
}

// parseVarDecl parses `Name1, Name2 : Type [:= init];`.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	startTok := p.cursor.Current()
	if !p.cursor.Is(lexer.IDENT) {
		p.addError("expected variable name, got "+startTok.Type.String(), ErrExpectedIdent)
		return nil
	}

	decl := &ast.VarDecl{Token: startTok}
	decl.Names = append(decl.Names, p.parseIdentifier())
	for p.cursor.Is(lexer.COMMA) {
		p.cursor.Advance()
		decl.Names = append(decl.Names, p.parseIdentifier())
	}

	p.expect(lexer.COLON, ErrMissingColon)
	decl.Type = p.parseDataType()

	if p.cursor.Is(lexer.ASSIGN) {
		p.cursor.Advance()
		decl.Init = p.parseExpression(LOWEST)
	}

	p.expect(lexer.SEMICOLON, ErrMissingSemicolon)
	return decl
}

func (p *Parser) parseIdentifier() *ast.Identifier {
	tok := p.cursor.Current()
	if tok.Type == lexer.IDENT {
		p.cursor.Advance()
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	}
	p.addError("expected identifier, got "+tok.Type.String(), ErrExpectedIdent)
	return &ast.Identifier{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseDataType() *ast.DataType {
	tok := p.cursor.Current()
	kind, ok := dataTypeKindFor(tok.Type)
	if !ok {
		p.addError("expected a type name, got "+tok.Type.String(), ErrExpectedType)
		return &ast.DataType{Token: tok, Kind: ast.TypeBool}
	}
	p.cursor.Advance()
	return &ast.DataType{Token: tok, Kind: kind}
}

func dataTypeKindFor(tt lexer.TokenType) (ast.DataTypeKind, bool) {
	switch tt {
	case lexer.TYPE_BOOL:
		return ast.TypeBool, true
	case lexer.TYPE_INT:
		return ast.TypeInt, true
	case lexer.TYPE_DINT:
		return ast.TypeDint, true
	case lexer.TYPE_UINT:
		return ast.TypeUint, true
	case lexer.TYPE_REAL:
		return ast.TypeReal, true
	case lexer.TYPE_TIME:
		return ast.TypeTime, true
	case lexer.FB_TON:
		return ast.TypeTON, true
	case lexer.FB_TOF:
		return ast.TypeTOF, true
	case lexer.FB_TP:
		return ast.TypeTP, true
	case lexer.FB_CTU:
		return ast.TypeCTU, true
	case lexer.FB_CTD:
		return ast.TypeCTD, true
	case lexer.FB_CTUD:
		return ast.TypeCTUD, true
	case lexer.FB_RTRIG:
		return ast.TypeRTrig, true
	case lexer.FB_FTRIG:
		return ast.TypeFTrig, true
	case lexer.FB_SR:
		return ast.TypeSR, true
	case lexer.FB_RS:
		return ast.TypeRS, true
	}
	return 0, false
}

// parseStatement dispatches on the current token to the matching
// statement parser. Returns nil (leaving the cursor where it failed) on
// unrecoverable syntax, so callers must synchronize.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cursor.Current().Type {
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.CASE:
		return p.parseCaseStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.REPEAT:
		return p.parseRepeatStatement()
	case lexer.IDENT:
		return p.parseAssignmentOrCall()
	case lexer.SEMICOLON:
		// stray semicolon: left for the caller's synchronize to consume
		return nil
	default:
		p.addError("unexpected token "+p.cursor.Current().Type.String()+" at start of statement", ErrUnexpectedToken)
		return nil
	}
}

// parseStatementList parses statements until the cursor reaches one of
// the given terminator token types.
func (p *Parser) parseStatementList(terminators ...lexer.TokenType) []ast.Statement {
	var stmts []ast.Statement
	for !p.cursor.IsEOF() && !p.cursor.IsAny(terminators...) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		} else {
			p.synchronize()
			if p.cursor.IsAny(terminators...) {
				break
			}
		}
	}
	return stmts
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.cursor.Advance() // IF
	p.ctx.PushBlock("IF", tok.Pos)
	defer p.ctx.PopBlock()

	stmt := &ast.IfStatement{Token: tok}
	stmt.Condition = p.parseExpression(LOWEST)
	p.expect(lexer.THEN, ErrMissingThen)
	stmt.Then = p.parseStatementList(lexer.ELSIF, lexer.ELSE, lexer.END_IF)

	for p.cursor.Is(lexer.ELSIF) {
		eTok := p.cursor.Advance()
		branch := &ast.ElsIfBranch{Token: eTok}
		branch.Condition = p.parseExpression(LOWEST)
		p.expect(lexer.THEN, ErrMissingThen)
		branch.Body = p.parseStatementList(lexer.ELSIF, lexer.ELSE, lexer.END_IF)
		stmt.ElsIfs = append(stmt.ElsIfs, branch)
	}

	if p.cursor.Is(lexer.ELSE) {
		p.cursor.Advance()
		stmt.Else = p.parseStatementList(lexer.END_IF)
	}

	p.expect(lexer.END_IF, ErrMissingEndIf)
	return stmt
}

func (p *Parser) parseCaseStatement() ast.Statement {
	tok := p.cursor.Advance() // CASE
	p.ctx.PushBlock("CASE", tok.Pos)
	defer p.ctx.PopBlock()

	stmt := &ast.CaseStatement{Token: tok}
	stmt.Selector = p.parseExpression(LOWEST)
	p.expect(lexer.OF, ErrMissingOf)

	for !p.cursor.IsEOF() && !p.cursor.IsAny(lexer.ELSE, lexer.END_CASE) {
		clause := p.parseCaseClause()
		if clause == nil {
			p.synchronize()
			continue
		}
		stmt.Clauses = append(stmt.Clauses, clause)
	}

	if p.cursor.Is(lexer.ELSE) {
		p.cursor.Advance()
		stmt.Else = p.parseStatementList(lexer.END_CASE)
	}

	p.expect(lexer.END_CASE, ErrMissingEndCase)
	return stmt
}

func (p *Parser) parseCaseClause() *ast.CaseClause {
	tok := p.cursor.Current()
	clause := &ast.CaseClause{Token: tok}

	for {
		label := p.parseCaseLabel()
		clause.Labels = append(clause.Labels, label)
		if !p.cursor.Is(lexer.COMMA) {
			break
		}
		p.cursor.Advance()
	}

	p.expect(lexer.COLON, ErrMissingColon)
	// An INT or '-' at statement start begins the next clause's label.
	clause.Body = p.parseStatementList(lexer.ELSE, lexer.END_CASE, lexer.COMMA, lexer.INT, lexer.MINUS)
	return clause
}

func (p *Parser) parseCaseLabel() ast.CaseLabel {
	first := p.parseExpression(PREC_RELATIONAL)
	if p.cursor.Is(lexer.DOTDOT) {
		p.cursor.Advance()
		second := p.parseExpression(PREC_RELATIONAL)
		return ast.CaseLabel{IsRange: true, Low: first, High: second}
	}
	return ast.CaseLabel{Single: first}
}

func (p *Parser) parseForStatement() ast.Statement {
	tok := p.cursor.Advance() // FOR
	p.ctx.PushBlock("FOR", tok.Pos)
	defer p.ctx.PopBlock()

	stmt := &ast.ForStatement{Token: tok}
	stmt.Variable = p.parseIdentifier()
	p.expect(lexer.ASSIGN, ErrMissingAssign)
	stmt.Start = p.parseExpression(LOWEST)
	p.expect(lexer.TO, ErrMissingTo)
	stmt.End = p.parseExpression(LOWEST)
	if p.cursor.Is(lexer.BY) {
		p.cursor.Advance()
		stmt.Step = p.parseExpression(LOWEST)
	}
	p.expect(lexer.DO, ErrMissingDo)
	stmt.Body = p.parseStatementList(lexer.END_FOR)
	p.expect(lexer.END_FOR, ErrMissingEndFor)
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.cursor.Advance() // WHILE
	p.ctx.PushBlock("WHILE", tok.Pos)
	defer p.ctx.PopBlock()

	stmt := &ast.WhileStatement{Token: tok}
	stmt.Condition = p.parseExpression(LOWEST)
	p.expect(lexer.DO, ErrMissingDo)
	stmt.Body = p.parseStatementList(lexer.END_WHILE)
	p.expect(lexer.END_WHILE, ErrMissingEndWhile)
	return stmt
}

func (p *Parser) parseRepeatStatement() ast.Statement {
	tok := p.cursor.Advance() // REPEAT
	p.ctx.PushBlock("REPEAT", tok.Pos)
	defer p.ctx.PopBlock()

	stmt := &ast.RepeatStatement{Token: tok}
	stmt.Body = p.parseStatementList(lexer.UNTIL)
	p.expect(lexer.UNTIL, "E_MISSING_UNTIL")
	stmt.Condition = p.parseExpression(LOWEST)
	if p.cursor.Is(lexer.SEMICOLON) {
		p.cursor.Advance()
	}
	if p.cursor.Is(lexer.END_REPEAT) {
		p.cursor.Advance()
	}
	return stmt
}

// parseAssignmentOrCall parses `path := expr;` or `instance(args);`,
// disambiguating on the token that follows the dotted name.
func (p *Parser) parseAssignmentOrCall() ast.Statement {
	startTok := p.cursor.Current()
	name := p.cursor.Advance().Literal

	if p.cursor.Is(lexer.LPAREN) {
		return p.parseFunctionBlockCall(startTok, name)
	}

	path := []string{name}
	for p.cursor.Is(lexer.DOT) {
		p.cursor.Advance()
		path = append(path, p.expect(lexer.IDENT, ErrExpectedIdent).Literal)
	}
	target := &ast.VariableExpression{Token: startTok, Path: path}

	p.expect(lexer.ASSIGN, ErrMissingAssign)
	value := p.parseExpression(LOWEST)
	p.expect(lexer.SEMICOLON, ErrMissingSemicolon)
	return &ast.AssignmentStatement{Token: startTok, Target: target, Value: value}
}

func (p *Parser) parseFunctionBlockCall(startTok lexer.Token, instance string) ast.Statement {
	p.cursor.Advance() // (
	call := &ast.FunctionBlockCallStatement{Token: startTok, Instance: instance}

	for !p.cursor.IsEOF() && !p.cursor.Is(lexer.RPAREN) {
		argTok := p.cursor.Current()
		argName := p.expect(lexer.IDENT, ErrExpectedIdent).Literal
		p.expect(lexer.ASSIGN, ErrMissingAssign)
		argValue := p.parseExpression(LOWEST)
		call.Args = append(call.Args, &ast.NamedArg{Token: argTok, Name: argName, Value: argValue})
		if p.cursor.Is(lexer.COMMA) {
			p.cursor.Advance()
			continue
		}
		break
	}

	p.expect(lexer.RPAREN, ErrMissingRParen)
	p.expect(lexer.SEMICOLON, ErrMissingSemicolon)
	return call
}

// --- expressions -----------------------------------------------------

func (p *Parser) parseExpression(precedence int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return left
	}

	for {
		opType := p.cursor.Current().Type
		prec, ok := infixPrecedence[opType]
		if !ok || prec <= precedence {
			break
		}
		opTok := p.cursor.Advance()
		right := p.parseExpression(prec)
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: operatorText(opType), Right: right}
	}

	return left
}

func operatorText(tt lexer.TokenType) string {
	switch tt {
	case lexer.PLUS:
		return "+"
	case lexer.MINUS:
		return "-"
	case lexer.ASTERISK:
		return "*"
	case lexer.SLASH:
		return "/"
	case lexer.MOD:
		return "MOD"
	case lexer.EQ:
		return "="
	case lexer.NOT_EQ:
		return "<>"
	case lexer.LESS:
		return "<"
	case lexer.GREATER:
		return ">"
	case lexer.LESS_EQ:
		return "<="
	case lexer.GREATER_EQ:
		return ">="
	case lexer.AND:
		return "AND"
	case lexer.OR:
		return "OR"
	case lexer.XOR:
		return "XOR"
	}
	return tt.String()
}

func (p *Parser) parsePrefix() ast.Expression {
	tok := p.cursor.Current()
	switch tok.Type {
	case lexer.NOT:
		p.cursor.Advance()
		operand := p.parseExpression(PREC_MULTIPLICATIVE)
		return &ast.UnaryExpression{Token: tok, Operator: "NOT", Operand: operand}
	case lexer.MINUS:
		p.cursor.Advance()
		operand := p.parseExpression(PREC_MULTIPLICATIVE)
		return &ast.UnaryExpression{Token: tok, Operator: "-", Operand: operand}
	case lexer.LPAREN:
		p.cursor.Advance()
		inner := p.parseExpression(LOWEST)
		p.expect(lexer.RPAREN, ErrMissingRParen)
		return &ast.ParenExpression{Token: tok, Inner: inner}
	case lexer.TRUE:
		p.cursor.Advance()
		return &ast.Literal{Token: tok, Raw: tok.Literal, Kind: ast.LiteralBool, BoolVal: true}
	case lexer.FALSE:
		p.cursor.Advance()
		return &ast.Literal{Token: tok, Raw: tok.Literal, Kind: ast.LiteralBool, BoolVal: false}
	case lexer.INT:
		p.cursor.Advance()
		v, err := parseIntLiteral(tok.Literal)
		if err != nil {
			p.addErrorAt(tok.Pos, tok.Length(), "invalid integer literal "+tok.Literal, ErrInvalidNumber)
		}
		return &ast.Literal{Token: tok, Raw: tok.Literal, Kind: ast.LiteralInt, IntVal: v}
	case lexer.FLOAT:
		p.cursor.Advance()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.addErrorAt(tok.Pos, tok.Length(), "invalid real literal "+tok.Literal, ErrInvalidNumber)
		}
		return &ast.Literal{Token: tok, Raw: tok.Literal, Kind: ast.LiteralReal, RealVal: v}
	case lexer.TIMELIT:
		p.cursor.Advance()
		ms, err := iectime.Parse(tok.Literal)
		if err != nil {
			p.addErrorAt(tok.Pos, tok.Length(), "invalid time literal "+tok.Literal, ErrInvalidTime)
		}
		return &ast.Literal{Token: tok, Raw: tok.Literal, Kind: ast.LiteralTime, TimeMs: ms}
	case lexer.STRING:
		p.cursor.Advance()
		return &ast.Literal{Token: tok, Raw: tok.Literal, Kind: ast.LiteralString, StrVal: tok.Literal}
	case lexer.IDENT:
		return p.parseIdentOrCallExpression()
	default:
		p.addError("no expression can start with "+tok.Type.String(), ErrNoPrefixParse)
		p.cursor.Advance()
		return nil
	}
}

func (p *Parser) parseIdentOrCallExpression() ast.Expression {
	startTok := p.cursor.Advance()
	if p.cursor.Is(lexer.LPAREN) {
		p.cursor.Advance()
		var args []ast.Expression
		for !p.cursor.IsEOF() && !p.cursor.Is(lexer.RPAREN) {
			args = append(args, p.parseExpression(LOWEST))
			if p.cursor.Is(lexer.COMMA) {
				p.cursor.Advance()
				continue
			}
			break
		}
		p.expect(lexer.RPAREN, ErrMissingRParen)
		return &ast.CallExpression{Token: startTok, Name: startTok.Literal, Args: args}
	}

	path := []string{startTok.Literal}
	for p.cursor.Is(lexer.DOT) {
		p.cursor.Advance()
		path = append(path, p.expect(lexer.IDENT, ErrExpectedIdent).Literal)
	}
	return &ast.VariableExpression{Token: startTok, Path: path}
}

// parseIntLiteral accepts plain decimal as well as IEC base-prefixed
// literals such as 16#FF or 2#1010.
func parseIntLiteral(literal string) (int64, error) {
	if i := indexByte(literal, '#'); i >= 0 {
		base, err := strconv.ParseInt(literal[:i], 10, 64)
		if err != nil {
			return 0, err
		}
		return strconv.ParseInt(literal[i+1:], int(base), 64)
	}
	return strconv.ParseInt(literal, 10, 64)
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
