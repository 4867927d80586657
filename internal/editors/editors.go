// Package editors implements the small, shape-preserving clean-ups:
// merging consecutive var declarations,
// inlining trivial aliases, and unwrapping IIFEs. Unlike decompilers,
// editors run a single traversal (internal/router.Run does not iterate
// the Editor pass to a fixed point) since these rewrites don't uncover
// further rewrite opportunities the way require→import recognition does.
package editors

import (
	"github.com/metrodecomp/metrodecomp/internal/facade"
	"github.com/metrodecomp/metrodecomp/internal/js_ast"
	"github.com/metrodecomp/metrodecomp/internal/plugin"
)

// All returns every editor this decompiler ships.
func All() []plugin.Plugin {
	return []plugin.Plugin{
		mergeVarDeclsEditor(),
		inlineTrivialAliasEditor(),
		unwrapIifeEditor(),
	}
}

// mergeVarDeclsEditor merges `var a; var b = 1;` into a single
// `var a, b = 1;` when two declarations of the same VarKind are adjacent
// in a block statement's list. Only `{ ... }` block statements are
// visited; the module's top-level list and function bodies are not
// merged.
func mergeVarDeclsEditor() plugin.Plugin {
	return plugin.Plugin{
		Name:      "editor:merge-var-decls",
		Pass:      plugin.Editor,
		Priority:  0,
		NodeKinds: []js_ast.Kind{js_ast.KindBlockStatement},
		Evaluate: func(ctx plugin.Context) {
			block, ok := (*ctx.Path.Stmt).Data.(*js_ast.SBlock)
			if !ok {
				return
			}
			block.Stmts = mergeAdjacentVarDecls(block.Stmts)
		},
	}
}

func mergeAdjacentVarDecls(stmts []js_ast.Stmt) []js_ast.Stmt {
	out := make([]js_ast.Stmt, 0, len(stmts))
	for _, stmt := range stmts {
		decl, ok := stmt.Data.(*js_ast.SVarDecl)
		if ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].Data.(*js_ast.SVarDecl); ok && prev.Kind == decl.Kind {
				prev.Decls = append(prev.Decls, decl.Decls...)
				continue
			}
		}
		out = append(out, stmt)
	}
	return out
}

// inlineTrivialAliasEditor replaces `var a = b;` immediately followed by
// exclusive use of `a` with a direct reference to `b`, when b is itself a
// bare identifier (the common Metro pattern of aliasing a require result
// before use). This implementation handles the single-use case: a
// declaration whose only other appearance in the same block is its next
// statement.
func inlineTrivialAliasEditor() plugin.Plugin {
	return plugin.Plugin{
		Name:      "editor:inline-trivial-alias",
		Pass:      plugin.Editor,
		Priority:  10,
		NodeKinds: []js_ast.Kind{js_ast.KindBlockStatement},
		Evaluate: func(ctx plugin.Context) {
			block, ok := (*ctx.Path.Stmt).Data.(*js_ast.SBlock)
			if !ok {
				return
			}
			block.Stmts = inlineAliasesInBlock(block.Stmts)
		},
	}
}

func inlineAliasesInBlock(stmts []js_ast.Stmt) []js_ast.Stmt {
	for i := 0; i < len(stmts)-1; i++ {
		decl, ok := stmts[i].Data.(*js_ast.SVarDecl)
		if !ok || len(decl.Decls) != 1 {
			continue
		}
		d := decl.Decls[0]
		target, ok := d.Binding.Data.(*js_ast.BIdentifier)
		if !ok || d.Value == nil {
			continue
		}
		source, ok := d.Value.Data.(*js_ast.EIdentifier)
		if !ok {
			continue
		}
		if countIdentifierUses(stmts[i+1:], target.Name) != 1 || countIdentifierUses(stmts[i+1:i+2], target.Name) != 1 {
			continue
		}
		replaceIdentifierInStmts(stmts[i+1:], target.Name, source.Name)
		stmts = append(stmts[:i], stmts[i+1:]...)
		i--
	}
	return stmts
}

// countIdentifierUses is a shallow approximation: it only looks inside
// expression statements, and within them only through calls, member
// accesses and binary operators, which is sufficient for the alias shapes
// Metro's own compiler emits (a declaration immediately consumed by the
// very next statement).
func countIdentifierUses(stmts []js_ast.Stmt, name string) int {
	count := 0
	var walk func(e js_ast.Expr)
	walk = func(e js_ast.Expr) {
		switch d := e.Data.(type) {
		case *js_ast.EIdentifier:
			if d.Name == name {
				count++
			}
		case *js_ast.ECall:
			walk(d.Target)
			for _, a := range d.Args {
				walk(a)
			}
		case *js_ast.EDot:
			walk(d.Target)
		case *js_ast.EBinary:
			walk(d.Left)
			walk(d.Right)
		}
	}
	for _, stmt := range stmts {
		if expr, ok := stmt.Data.(*js_ast.SExpr); ok {
			walk(expr.Value)
		}
	}
	return count
}

func replaceIdentifierInStmts(stmts []js_ast.Stmt, from, to string) {
	var walk func(e *js_ast.Expr)
	walk = func(e *js_ast.Expr) {
		switch d := e.Data.(type) {
		case *js_ast.EIdentifier:
			if d.Name == from {
				e.Data = &js_ast.EIdentifier{Name: to}
			}
		case *js_ast.ECall:
			walk(&d.Target)
			for i := range d.Args {
				walk(&d.Args[i])
			}
		case *js_ast.EDot:
			walk(&d.Target)
		case *js_ast.EBinary:
			walk(&d.Left)
			walk(&d.Right)
		}
	}
	for i := range stmts {
		if expr, ok := stmts[i].Data.(*js_ast.SExpr); ok {
			walk(&expr.Value)
		}
	}
}

// unwrapIifeEditor replaces `(function(){ stmts }())` or
// `(function(){ stmts })()` used as a statement with its body's
// statements spliced directly in, when the IIFE takes no arguments and
// its body contains no `return` (so unwrapping can't change control
// flow).
func unwrapIifeEditor() plugin.Plugin {
	return plugin.Plugin{
		Name:      "editor:unwrap-iife",
		Pass:      plugin.Editor,
		Priority:  20,
		NodeKinds: []js_ast.Kind{js_ast.KindExpressionStatement},
		Evaluate: func(ctx plugin.Context) {
			expr, ok := (*ctx.Path.Stmt).Data.(*js_ast.SExpr)
			if !ok {
				return
			}
			fn, ok := iifeBody(expr.Value)
			if !ok || len(fn.Args) != 0 || containsReturn(fn.Body.Stmts) {
				return
			}
			ctx.Path.ReplaceWithStmts(fn.Body.Stmts)
		},
	}
}

func iifeBody(e js_ast.Expr) (*js_ast.Fn, bool) {
	call, ok := e.Data.(*js_ast.ECall)
	if !ok || len(call.Args) != 0 {
		return nil, false
	}
	fn, ok := call.Target.Data.(*js_ast.EFunction)
	if !ok {
		return nil, false
	}
	return fn.Fn, true
}

// containsReturn reports whether a return statement appears anywhere in
// stmts, including nested blocks, branches and loops, but not inside
// nested functions or classes, whose returns are their own.
func containsReturn(stmts []js_ast.Stmt) bool {
	found := false
	body := js_ast.Program{Stmts: stmts}
	facade.Traverse(&body, func(path *facade.NodePath) {
		switch path.Kind {
		case js_ast.KindFunctionExpression, js_ast.KindArrowFunctionExpression, js_ast.KindFunctionDeclaration,
			js_ast.KindClassExpression, js_ast.KindClassDeclaration:
			path.Skip()
		case js_ast.KindReturnStatement:
			found = true
		}
	})
	return found
}
