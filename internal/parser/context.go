package parser

import "github.com/stladder/stladder/internal/lexer"

// BlockContext records one nested block-level construct (VAR, IF, CASE,
// FOR, WHILE, REPEAT) for use in error messages ("unclosed IF opened at
// 3:1").
type BlockContext struct {
	BlockType string
	StartPos  lexer.Position
}

// ParseContext tracks the block nesting stack while parsing.
type ParseContext struct {
	blockStack []BlockContext
}

// NewParseContext creates an empty ParseContext.
func NewParseContext() *ParseContext {
	return &ParseContext{}
}

// PushBlock enters a new block context.
func (ctx *ParseContext) PushBlock(blockType string, startPos lexer.Position) {
	ctx.blockStack = append(ctx.blockStack, BlockContext{BlockType: blockType, StartPos: startPos})
}

// PopBlock exits the most recently entered block context.
func (ctx *ParseContext) PopBlock() {
	if len(ctx.blockStack) > 0 {
		ctx.blockStack = ctx.blockStack[:len(ctx.blockStack)-1]
	}
}

// CurrentBlock returns the innermost open block, or nil outside any block.
func (ctx *ParseContext) CurrentBlock() *BlockContext {
	if len(ctx.blockStack) == 0 {
		return nil
	}
	return &ctx.blockStack[len(ctx.blockStack)-1]
}

// BlockDepth returns the current nesting depth.
func (ctx *ParseContext) BlockDepth() int { return len(ctx.blockStack) }
