package taggers

import (
	"github.com/metrodecomp/metrodecomp/internal/js_ast"
	"github.com/metrodecomp/metrodecomp/internal/plugin"
)

var wholeModule = []js_ast.Kind{js_ast.KindWholeModule}

// StructuralTaggers returns the taggers that inspect the AST rather than
// raw source text. They run after the
// fingerprint taggers (higher Priority numbers) so cheap wins are already
// recorded before the more expensive shape-walking kicks in.
func StructuralTaggers() []plugin.Plugin {
	return []plugin.Plugin{
		lodashIsEqualTagger(),
		reactComponentTagger(),
		runtimeGlueTagger(),
	}
}

// lodashIsEqualTagger recognizes a module whose module.exports is a
// two-parameter function whose body opens with lodash isEqual's
// dispatcher fast path (see isEqualDispatcherBody).
func lodashIsEqualTagger() plugin.Plugin {
	return plugin.Plugin{
		Name:      "structural:lodash.isEqual",
		Pass:      plugin.Tagger,
		Priority:  100,
		NodeKinds: wholeModule,
		Evaluate: func(ctx plugin.Context) {
			m := ctx.Module
			if m.IsNpmModule || m.Ignored {
				return
			}
			for _, stmt := range m.ModuleCode.Stmts {
				expr, ok := stmt.Data.(*js_ast.SExpr)
				if !ok {
					continue
				}
				value, ok := m.IsModuleExportsAssignment(expr.Value)
				if !ok {
					continue
				}
				fn, ok := value.Data.(*js_ast.EFunction)
				if !ok || len(fn.Fn.Args) != 2 {
					continue
				}
				if isEqualDispatcherBody(fn.Fn.Body) {
					m.TagAsNpmModule("lodash/isEqual")
					return
				}
			}
		},
	}
}

// isEqualDispatcherBody matches `return a === b || (a !== a && b !== b);`
// — lodash's baseIsEqual fast-path for primitive/NaN equality, which
// survives minification as a single return statement with this exact
// operator shape.
func isEqualDispatcherBody(body js_ast.FnBody) bool {
	if len(body.Stmts) == 0 {
		return false
	}
	ret, ok := body.Stmts[0].Data.(*js_ast.SReturn)
	if !ok || ret.Value == nil {
		return false
	}
	or, ok := ret.Value.Data.(*js_ast.EBinary)
	if !ok || or.Op != js_ast.BinOpLogicalOr {
		return false
	}
	strictEq, ok := or.Left.Data.(*js_ast.EBinary)
	if !ok || strictEq.Op != js_ast.BinOpStrictEq {
		return false
	}
	nanCheck, ok := or.Right.Data.(*js_ast.EBinary)
	if !ok || nanCheck.Op != js_ast.BinOpLogicalAnd {
		return false
	}
	left, ok := nanCheck.Left.Data.(*js_ast.EBinary)
	if !ok || left.Op != js_ast.BinOpStrictNe {
		return false
	}
	right, ok := nanCheck.Right.Data.(*js_ast.EBinary)
	return ok && right.Op == js_ast.BinOpStrictNe
}

// reactComponentTagger tags (without ignoring) modules that declare a
// top-level class with a `render` method, or whose module.exports assigns a
// class expression with one — enough signal to mark a module for
// preferential naming during output without committing to an NPM guess.
// Functions and `this.props` references are not inspected.
func reactComponentTagger() plugin.Plugin {
	return plugin.Plugin{
		Name:      "structural:react-component",
		Pass:      plugin.Tagger,
		Priority:  110,
		NodeKinds: wholeModule,
		Evaluate: func(ctx plugin.Context) {
			m := ctx.Module
			for _, stmt := range m.ModuleCode.Stmts {
				if cls, ok := stmt.Data.(*js_ast.SClass); ok {
					if classHasRenderMethod(cls.Class) {
						m.Tag("react-component", nil)
						return
					}
				}
				expr, ok := stmt.Data.(*js_ast.SExpr)
				if !ok {
					continue
				}
				value, ok := m.IsModuleExportsAssignment(expr.Value)
				if !ok {
					continue
				}
				if cls, ok := value.Data.(*js_ast.EClass); ok && classHasRenderMethod(cls.Class) {
					m.Tag("react-component", nil)
					return
				}
			}
		},
	}
}

func classHasRenderMethod(c *js_ast.Class) bool {
	for _, member := range c.Members {
		if member.Value == nil || member.Computed {
			continue
		}
		key, ok := member.Key.Data.(*js_ast.EString)
		if ok && key.Value == "render" {
			return true
		}
	}
	return false
}

// runtimeGlueTagger marks as ignorable a module whose entire body is a
// single call expression with no declarations and no dependencies —
// Metro's polyfill/glue modules typically take this shape (e.g. the
// native-module registry bootstrap).
func runtimeGlueTagger() plugin.Plugin {
	return plugin.Plugin{
		Name:      "structural:runtime-glue",
		Pass:      plugin.Tagger,
		Priority:  120,
		NodeKinds: wholeModule,
		Evaluate: func(ctx plugin.Context) {
			m := ctx.Module
			if m.Ignored || len(m.Dependencies) > 0 {
				return
			}
			if len(m.ModuleCode.Stmts) != 1 {
				return
			}
			expr, ok := m.ModuleCode.Stmts[0].Data.(*js_ast.SExpr)
			if !ok {
				return
			}
			if _, ok := expr.Value.Data.(*js_ast.ECall); ok {
				m.Ignore("runtime glue: single bare call, no dependencies")
			}
		},
	}
}
