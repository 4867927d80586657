// Package js_parser is a recursive-descent/Pratt parser producing
// internal/js_ast trees: no parser-generator, a single parser struct
// advancing a js_lexer.Lexer, trimmed to the ES2015+ subset that shows up
// inside Metro factory bodies. No TypeScript types, no JSX, no
// decorators.
package js_parser

import (
	"fmt"

	"github.com/metrodecomp/metrodecomp/internal/js_ast"
	"github.com/metrodecomp/metrodecomp/internal/js_lexer"
	"github.com/metrodecomp/metrodecomp/internal/logger"
)

type Options struct {
	// SourceName names the input; the parser's own error messages do not
	// include it.
	SourceName string
}

type parser struct {
	log         logger.Log
	lex         js_lexer.Lexer
	source      string
	options     Options
	ok          bool
	speculative bool

	// allowIn is cleared while parsing a for-statement's init expression so
	// the "in" of a for-in loop isn't consumed as a binary operator.
	allowIn bool
}

// Parse parses source into a Program. ok is false if a fatal syntax error
// was encountered; the AST facade surfaces that as a fatal ParseError.
func Parse(log logger.Log, source string, options Options) (program js_ast.Program, ok bool) {
	p := &parser{
		log:     log,
		lex:     js_lexer.NewLexer(log, source),
		source:  source,
		options: options,
		ok:      true,
		allowIn: true,
	}

	defer func() {
		if r := recover(); r != nil {
			if _, isParseError := r.(parseError); isParseError {
				ok = false
				return
			}
			panic(r)
		}
	}()

	stmts := p.parseStmtsUntil(js_lexer.TEndOfFile)
	return js_ast.Program{Stmts: stmts}, p.ok
}

// parseError is panicked to unwind out of a syntax error back to Parse, a
// sentinel that aborts cleanly instead of threading an error return
// through every production.
type parseError struct{}

func (p *parser) fail(format string, args ...interface{}) {
	if p.speculative {
		panic(parseError{})
	}
	p.ok = false
	if p.log.AddMsg != nil {
		p.log.AddMsg(logger.Msg{Kind: logger.Error, Text: fmt.Sprintf(format, args...)})
	}
	panic(parseError{})
}

func (p *parser) expect(t js_lexer.T, what string) {
	if p.lex.Token != t {
		p.fail("expected %s", what)
	}
	p.lex.Next()
}

func (p *parser) loc() js_ast.Loc { return js_ast.Loc{} }
