// Package stladder is the façade over the compiler pipeline: parse,
// lower to ladder IR, validate, and (optionally) run. It mirrors the
// engine-based entry point used throughout the rest of the pack: callers
// construct an Engine once and call its methods per source unit.
package stladder

import (
	"github.com/stladder/stladder/internal/ast"
	"github.com/stladder/stladder/internal/interp"
	"github.com/stladder/stladder/internal/ladder"
	"github.com/stladder/stladder/internal/parser"
	"github.com/stladder/stladder/internal/transform"
	"github.com/stladder/stladder/internal/validate"
)

// Engine is the compiler's public entry point. It carries no state of its
// own; New always succeeds but returns an error for symmetry with the
// rest of the pack's engine constructors.
type Engine struct{}

// New returns a ready-to-use Engine.
func New() (*Engine, error) {
	return &Engine{}, nil
}

// Options configures Compile.
type Options struct {
	// IncludeIntermediates keeps the parsed AST on the Result even when
	// compilation succeeds; by default only the ladder IR is kept.
	IncludeIntermediates bool

	// WarnOnUnsupported controls whether UNSUPPORTED_IN_LADDER findings
	// are surfaced; they are always computed, this only gates reporting.
	WarnOnUnsupported bool
}

// Result is the outcome of a successful or partially successful Compile.
type Result struct {
	Success  bool
	Program  *ladder.Program
	AST      *ast.Program // nil unless Options.IncludeIntermediates
	Errors   []*Error
	Warnings []*Error
}

// Parse runs only the lexer and parser, returning the raw AST.
func (e *Engine) Parse(source string) (*ast.Program, error) {
	prog, parserErrs := parser.Parse(source)
	if len(parserErrs) > 0 {
		return nil, &CompileError{Stage: "parsing", Errors: parseErrorsToDiagnostics(parserErrs)}
	}
	return prog, nil
}

// Compile runs the full pipeline: parse, lower to ladder IR, validate. A
// non-nil error is always a *CompileError. Validator warnings are always
// returned on Result even when Success is true; Options.WarnOnUnsupported
// only decides whether UNSUPPORTED_IN_LADDER entries are included among
// them.
func (e *Engine) Compile(source string, opts Options) (*Result, error) {
	prog, parserErrs := parser.Parse(source)
	if len(parserErrs) > 0 {
		return nil, &CompileError{Stage: "parsing", Errors: parseErrorsToDiagnostics(parserErrs)}
	}

	ir := transform.Transform(prog)
	v := validate.Validate(prog, ir)

	result := &Result{
		Success:  v.Success,
		Program:  ir,
		Errors:   diagnosticsFrom(v.Errors, SeverityError),
		Warnings: filterUnsupported(diagnosticsFrom(v.Warnings, SeverityWarning), opts.WarnOnUnsupported),
	}
	if opts.IncludeIntermediates {
		result.AST = prog
	}

	if !v.Success {
		return result, &CompileError{Stage: "validating", Errors: result.Errors}
	}
	return result, nil
}

// NewInterpreter builds a ready-to-Load cyclic interpreter for source,
// failing with the same *CompileError Compile would return.
func (e *Engine) NewInterpreter(source string) (*interp.Interpreter, *Result, error) {
	result, err := e.Compile(source, Options{IncludeIntermediates: true})
	if err != nil {
		return nil, result, err
	}
	return interp.New(result.AST, result.Program), result, nil
}

func parseErrorsToDiagnostics(parserErrs []*parser.ParserError) []*Error {
	out := make([]*Error, len(parserErrs))
	for i, pe := range parserErrs {
		out[i] = NewError(pe.Message, pe.Pos.Line, pe.Pos.Column, pe.Length, SeverityError, pe.Code)
	}
	return out
}

func diagnosticsFrom(diags []validate.Diagnostic, severity Severity) []*Error {
	out := make([]*Error, len(diags))
	for i, d := range diags {
		out[i] = NewError(d.Message, d.Pos.Line, d.Pos.Column, 0, severity, string(d.Kind))
	}
	return out
}

// filterUnsupported drops UNSUPPORTED_IN_LADDER entries unless the caller
// asked to keep them.
func filterUnsupported(warnings []*Error, keep bool) []*Error {
	if keep {
		return warnings
	}
	out := warnings[:0:0]
	for _, w := range warnings {
		if w.Code != string(validate.KindUnsupportedInLadder) {
			out = append(out, w)
		}
	}
	return out
}
