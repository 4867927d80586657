// Package facade provides uniform parse/traverse/print access plus a
// node-path abstraction with mutate/skip semantics. It is intentionally
// thin; the real parsing/printing work lives in internal/js_lexer,
// internal/js_parser, and internal/js_printer.
package facade

import (
	"fmt"

	"github.com/metrodecomp/metrodecomp/internal/js_ast"
	"github.com/metrodecomp/metrodecomp/internal/js_parser"
	"github.com/metrodecomp/metrodecomp/internal/js_printer"
	"github.com/metrodecomp/metrodecomp/internal/logger"
)

// Parse turns source text into a Program. The returned error is always a
// *ParseError, which is fatal to the run.
func Parse(source string, sourceName string) (js_ast.Program, error) {
	log := logger.NewDeferLog()
	program, ok := js_parser.Parse(log, source, js_parser.Options{SourceName: sourceName})
	if !ok {
		msgs := log.Done()
		return js_ast.Program{}, &ParseError{SourceName: sourceName, Msgs: msgs}
	}
	return program, nil
}

type ParseError struct {
	SourceName string
	Msgs       []logger.Msg
}

func (e *ParseError) Error() string {
	text := fmt.Sprintf("parse error in %s", e.SourceName)
	for _, m := range e.Msgs {
		text += ": " + m.Text
	}
	return text
}

// Print renders a program back to source text.
func Print(program js_ast.Program) string { return js_printer.Print(program) }

// PrintExpr renders a single expression.
func PrintExpr(e js_ast.Expr) string { return js_printer.PrintExpr(e) }

// Visit is called once per node the traversal visits, in the node-kind
// dispatch order the router (internal/router) decides; the facade itself
// has no opinion on plugin ordering, it only walks the tree.
type Visit func(path *NodePath)

// Traverse walks program's statements and every expression reachable from
// them — including into nested function/arrow/class bodies, since taggers
// and decompilers must see requires buried inside callbacks. visit is
// invoked for every node; returning from visit without calling Skip()
// descends into the node's children. Traverse reports whether any plugin
// called a Replace*/Remove method during this traversal, which is what
// the router (internal/router) uses to drive its fixed-point loop.
func Traverse(program *js_ast.Program, visit Visit) (mutated bool) {
	t := &traversal{visit: visit, mutated: &mutated}
	t.stmtList(&program.Stmts, nil)
	return
}

type traversal struct {
	visit   Visit
	mutated *bool
}

// NodePath is a cursor into the tree: exactly one of Expr/Stmt is non-nil,
// identifying which node this path points at. Mutation methods rewrite the
// tree in place through the pointer; Skip prunes descent into children.
type NodePath struct {
	Kind   js_ast.Kind
	Expr   *js_ast.Expr
	Stmt   *js_ast.Stmt
	Parent *NodePath

	skip       bool
	removed    bool
	replaceN   []js_ast.Stmt
	mutated    *bool
}

func (np *NodePath) Skip() { np.skip = true }

// Remove deletes the current statement from its containing list. Only
// valid when the path points at a statement; a no-op on an expression path.
// The deletion is applied by Traverse once it has walked the containing
// list; a NodePath built outside Traverse only records it.
func (np *NodePath) Remove() {
	if np.Stmt == nil {
		return
	}
	np.removed = true
	np.markMutated()
}

// ReplaceExpr overwrites the expression this path points at.
func (np *NodePath) ReplaceExpr(e js_ast.Expr) {
	if np.Expr == nil {
		return
	}
	*np.Expr = e
	np.markMutated()
}

// ReplaceStmt overwrites the statement this path points at with a single
// replacement statement.
func (np *NodePath) ReplaceStmt(s js_ast.Stmt) {
	if np.Stmt == nil {
		return
	}
	*np.Stmt = s
	np.markMutated()
}

// ReplaceWithStmts overwrites the statement this path points at with zero
// or more statements (used by sequence-expression splitting). Like Remove,
// the splice is applied by Traverse once it has walked the containing
// list; a NodePath built outside Traverse only records it.
func (np *NodePath) ReplaceWithStmts(stmts []js_ast.Stmt) {
	if np.Stmt == nil {
		return
	}
	np.replaceN = stmts
	np.markMutated()
}

func (np *NodePath) markMutated() {
	if np.mutated != nil {
		*np.mutated = true
	}
}
