package decompilers

import (
	"github.com/metrodecomp/metrodecomp/internal/js_ast"
	"github.com/metrodecomp/metrodecomp/internal/plugin"
)

// ArraySpreadRecovery rewrites `[].concat(toConsumableArray(x), [y])`
// shapes into `[...x, y]`. It recognizes a call to
// `.concat` on an empty array literal whose arguments are either a call
// to the toConsumableArray helper (spread that argument) or an array
// literal (splice its items in directly).
func ArraySpreadRecovery() plugin.Plugin {
	return plugin.Plugin{
		Name:      "decompiler:array-spread-recovery",
		Pass:      plugin.Decompiler,
		Priority:  30,
		NodeKinds: []js_ast.Kind{js_ast.KindCallExpression},
		Evaluate: func(ctx plugin.Context) {
			call, ok := (*ctx.Path.Expr).Data.(*js_ast.ECall)
			if !ok {
				return
			}
			dot, ok := call.Target.Data.(*js_ast.EDot)
			if !ok || dot.Name != "concat" {
				return
			}
			arr, ok := dot.Target.Data.(*js_ast.EArray)
			if !ok || len(arr.Items) != 0 {
				return
			}

			helperAliases := importedHelperAliases(ctx.Module.ModuleCode.Stmts)
			items := make([]js_ast.EArrayItem, 0, len(call.Args))
			for _, arg := range call.Args {
				if inner, ok := arg.Data.(*js_ast.ECall); ok && len(inner.Args) == 1 && isToConsumableArrayCall(inner, helperAliases) {
					items = append(items, js_ast.EArrayItem{Value: inner.Args[0], Spread: true})
					continue
				}
				if innerArr, ok := arg.Data.(*js_ast.EArray); ok {
					items = append(items, innerArr.Items...)
					continue
				}
				// Unknown argument shape: bail out entirely rather than
				// produce a partially-correct rewrite.
				return
			}
			ctx.Path.ReplaceExpr(js_ast.Expr{Data: &js_ast.EArray{Items: items}})
		},
	}
}

// isToConsumableArrayCall recognizes the helper by its canonical name
// (what UninlineBabelHelper leaves behind) or by a local alias whose
// import path is the toConsumableArray helper.
func isToConsumableArrayCall(call *js_ast.ECall, aliases []helperAlias) bool {
	ident, ok := call.Target.Data.(*js_ast.EIdentifier)
	if !ok {
		return false
	}
	if ident.Name == "toConsumableArray" {
		return true
	}
	for _, a := range aliases {
		if a.local == ident.Name && a.path == babelHelperPrefix+"toConsumableArray" {
			return true
		}
	}
	return false
}

// SequenceExpressionSplit splits a sequence expression used at statement
// position, `(a(), b(), c);`, into separate statements `a(); b(); c;`.
func SequenceExpressionSplit() plugin.Plugin {
	return plugin.Plugin{
		Name:      "decompiler:sequence-expression-split",
		Pass:      plugin.Decompiler,
		Priority:  40,
		NodeKinds: []js_ast.Kind{js_ast.KindExpressionStatement},
		Evaluate: func(ctx plugin.Context) {
			expr, ok := (*ctx.Path.Stmt).Data.(*js_ast.SExpr)
			if !ok {
				return
			}
			seq, ok := expr.Value.Data.(*js_ast.ESequence)
			if !ok {
				return
			}
			stmts := make([]js_ast.Stmt, len(seq.Exprs))
			for i, e := range seq.Exprs {
				stmts[i] = js_ast.Stmt{Data: &js_ast.SExpr{Value: e}}
			}
			ctx.Path.ReplaceWithStmts(stmts)
		},
	}
}

// ShortCircuitToIf rewrites `cond && stmt();` used at statement position
// into `if (cond) stmt();`.
func ShortCircuitToIf() plugin.Plugin {
	return plugin.Plugin{
		Name:      "decompiler:short-circuit-to-if",
		Pass:      plugin.Decompiler,
		Priority:  41,
		NodeKinds: []js_ast.Kind{js_ast.KindExpressionStatement},
		Evaluate: func(ctx plugin.Context) {
			expr, ok := (*ctx.Path.Stmt).Data.(*js_ast.SExpr)
			if !ok {
				return
			}
			bin, ok := expr.Value.Data.(*js_ast.EBinary)
			if !ok || bin.Op != js_ast.BinOpLogicalAnd {
				return
			}
			ctx.Path.ReplaceStmt(js_ast.Stmt{Data: &js_ast.SIf{
				Test: bin.Left,
				Yes:  js_ast.Stmt{Data: &js_ast.SExpr{Value: bin.Right}},
			}})
		},
	}
}

// All returns every decompiler this system ships, in ascending priority
// order.
func All() []plugin.Plugin {
	return []plugin.Plugin{
		RequireToImport(),
		ImportDefaultToImport(),
		ImportAllToImport(),
		ModuleExportsToExportDefault(),
		ExportsPropertyToNamedExport(),
		UninlineBabelHelper(),
		ArraySpreadRecovery(),
		SequenceExpressionSplit(),
		ShortCircuitToIf(),
	}
}
