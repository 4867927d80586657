package decompilers

import (
	"testing"

	"github.com/metrodecomp/metrodecomp/internal/facade"
	"github.com/metrodecomp/metrodecomp/internal/graph"
	"github.com/metrodecomp/metrodecomp/internal/js_ast"
	"github.com/metrodecomp/metrodecomp/internal/module"
	"github.com/metrodecomp/metrodecomp/internal/plugin"
)

func runOverCallExpressions(g *graph.Graph, m *module.Module, p plugin.Plugin) {
	facade.Traverse(&m.ModuleCode, func(path *facade.NodePath) {
		if path.Kind == js_ast.KindCallExpression {
			p.Evaluate(plugin.Context{Path: path, Module: m, Graph: g})
		}
	})
}

func moduleFromSource(t *testing.T, body string) (*graph.Graph, *module.Module) {
	t.Helper()
	source := `__d(function(g, r, id, ia, module, exports, dependencyMap) {
		` + body + `
	}, 0, []);`
	program, err := facade.Parse(source, "bundle.js")
	if err != nil {
		t.Fatalf("facade.Parse failed: %v", err)
	}
	g, errs := graph.Build(&program)
	if len(errs) != 0 {
		t.Fatalf("graph.Build errors: %v", errs)
	}
	m, _ := g.Get(0)
	return g, m
}

func TestArraySpreadRecoveryRewritesToConsumableArrayCall(t *testing.T) {
	g, m := moduleFromSource(t, `var out = [].concat(toConsumableArray(x), [1, 2]);`)
	runOverCallExpressions(g, m, ArraySpreadRecovery())

	decl := m.ModuleCode.Stmts[0].Data.(*js_ast.SVarDecl)
	arr, ok := decl.Decls[0].Value.Data.(*js_ast.EArray)
	if !ok {
		t.Fatalf("expected EArray, got %T", decl.Decls[0].Value.Data)
	}
	if len(arr.Items) != 3 {
		t.Fatalf("expected 3 items (spread x, 1, 2), got %d", len(arr.Items))
	}
	if !arr.Items[0].Spread {
		t.Errorf("expected the first item to be a spread")
	}
	ident := arr.Items[0].Value.Data.(*js_ast.EIdentifier)
	if ident.Name != "x" {
		t.Errorf("spread target = %q, want %q", ident.Name, "x")
	}
}

func TestArraySpreadRecoverySparesNonEmptyBaseArray(t *testing.T) {
	g, m := moduleFromSource(t, `var out = [1].concat(toConsumableArray(x));`)
	runOverCallExpressions(g, m, ArraySpreadRecovery())

	decl := m.ModuleCode.Stmts[0].Data.(*js_ast.SVarDecl)
	if _, ok := decl.Decls[0].Value.Data.(*js_ast.ECall); !ok {
		t.Errorf("expected the call to be left untouched when the base array is non-empty, got %T", decl.Decls[0].Value.Data)
	}
}

func TestArraySpreadRecoveryBailsOutOnUnknownArgumentShape(t *testing.T) {
	g, m := moduleFromSource(t, `var out = [].concat(someOpaqueCall(x));`)
	runOverCallExpressions(g, m, ArraySpreadRecovery())

	decl := m.ModuleCode.Stmts[0].Data.(*js_ast.SVarDecl)
	if _, ok := decl.Decls[0].Value.Data.(*js_ast.ECall); !ok {
		t.Errorf("expected the unrecognized call to be left alone, got %T", decl.Decls[0].Value.Data)
	}
}

func TestSequenceExpressionSplitSeparatesStatements(t *testing.T) {
	g, m := moduleFromSource(t, `a(), b(), c;`)
	// ReplaceWithStmts is spliced into the statement list by Traverse, so
	// the plugin is driven through a real traversal here.
	p := SequenceExpressionSplit()
	facade.Traverse(&m.ModuleCode, func(path *facade.NodePath) {
		if path.Kind == js_ast.KindExpressionStatement {
			p.Evaluate(plugin.Context{Path: path, Module: m, Graph: g})
		}
	})

	if len(m.ModuleCode.Stmts) != 3 {
		t.Fatalf("expected 3 split statements, got %d", len(m.ModuleCode.Stmts))
	}
	for i, want := range []string{"a", "b", "c"} {
		expr := m.ModuleCode.Stmts[i].Data.(*js_ast.SExpr).Value
		switch d := expr.Data.(type) {
		case *js_ast.ECall:
			ident := d.Target.Data.(*js_ast.EIdentifier)
			if ident.Name != want {
				t.Errorf("stmt %d target = %q, want %q", i, ident.Name, want)
			}
		case *js_ast.EIdentifier:
			if d.Name != want {
				t.Errorf("stmt %d identifier = %q, want %q", i, d.Name, want)
			}
		default:
			t.Errorf("stmt %d: unexpected expression type %T", i, expr.Data)
		}
	}
}

func TestShortCircuitToIfRewritesLogicalAndStatement(t *testing.T) {
	g, m := moduleFromSource(t, `cond && doThing();`)
	runOnEveryStmt(g, m, ShortCircuitToIf())

	ifStmt, ok := m.ModuleCode.Stmts[0].Data.(*js_ast.SIf)
	if !ok {
		t.Fatalf("expected SIf, got %T", m.ModuleCode.Stmts[0].Data)
	}
	test := ifStmt.Test.Data.(*js_ast.EIdentifier)
	if test.Name != "cond" {
		t.Errorf("test = %q, want %q", test.Name, "cond")
	}
	if ifStmt.No != nil {
		t.Errorf("expected no else branch")
	}
	yes := ifStmt.Yes.Data.(*js_ast.SExpr).Value.Data.(*js_ast.ECall)
	ident := yes.Target.Data.(*js_ast.EIdentifier)
	if ident.Name != "doThing" {
		t.Errorf("yes branch target = %q, want %q", ident.Name, "doThing")
	}
}

func TestShortCircuitToIfSparesLogicalOr(t *testing.T) {
	g, m := moduleFromSource(t, `cond || doThing();`)
	runOnEveryStmt(g, m, ShortCircuitToIf())

	if _, ok := m.ModuleCode.Stmts[0].Data.(*js_ast.SIf); ok {
		t.Errorf("expected logical-or statements to be left untouched")
	}
}

func TestAllReturnsDecompilersInPriorityOrder(t *testing.T) {
	all := All()
	if len(all) != 9 {
		t.Fatalf("expected 9 decompilers, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Priority < all[i-1].Priority {
			t.Errorf("decompilers not in ascending priority order: %+v", all)
		}
	}
}
