package router

import (
	"testing"

	"github.com/metrodecomp/metrodecomp/internal/facade"
	"github.com/metrodecomp/metrodecomp/internal/graph"
	"github.com/metrodecomp/metrodecomp/internal/js_ast"
	"github.com/metrodecomp/metrodecomp/internal/module"
	"github.com/metrodecomp/metrodecomp/internal/plugin"
)

func newModule(t *testing.T, source string) *module.Module {
	t.Helper()
	program, err := facade.Parse(source, "test.js")
	if err != nil {
		t.Fatalf("facade.Parse failed: %v", err)
	}
	return &module.Module{
		ID:            1,
		Tags:          map[string]bool{},
		TagParameters: map[string]interface{}{},
		ModuleCode:    program,
	}
}

func TestNewFiltersAndOrdersByPriorityThenDefinitionOrder(t *testing.T) {
	plugins := []plugin.Plugin{
		{Name: "editor-ignored", Pass: plugin.Editor, NodeKinds: []js_ast.Kind{js_ast.KindIdentifier}},
		{Name: "second", Pass: plugin.Tagger, Priority: 5, NodeKinds: []js_ast.Kind{js_ast.KindIdentifier}},
		{Name: "first", Pass: plugin.Tagger, Priority: 1, NodeKinds: []js_ast.Kind{js_ast.KindIdentifier}},
		{Name: "tie-a", Pass: plugin.Tagger, Priority: 1, NodeKinds: []js_ast.Kind{js_ast.KindIdentifier}},
	}
	r := New(plugin.Tagger, plugins)
	names := make([]string, len(r.byKind[js_ast.KindIdentifier]))
	for i, p := range r.byKind[js_ast.KindIdentifier] {
		names[i] = p.Name
	}
	want := []string{"first", "tie-a", "second"}
	if len(names) != len(want) {
		t.Fatalf("dispatch list = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestRunInvokesWholeModulePluginOnce(t *testing.T) {
	m := newModule(t, "var a = 1;")
	calls := 0
	plugins := []plugin.Plugin{
		{Name: "whole", Pass: plugin.Tagger, NodeKinds: []js_ast.Kind{js_ast.KindWholeModule}, Evaluate: func(ctx plugin.Context) {
			calls++
			ctx.Module.Tag("seen", nil)
		}},
	}
	r := New(plugin.Tagger, plugins)
	g := &graph.Graph{}
	if err := r.Run(g, m); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("whole-module plugin called %d times, want 1", calls)
	}
	if !m.Tags["seen"] {
		t.Errorf("expected the whole-module plugin's tag to stick")
	}
}

func TestRunTaggerPassReachesFixedPointAndStops(t *testing.T) {
	m := newModule(t, "var a = 1;")
	visits := 0
	plugins := []plugin.Plugin{
		{Name: "counter", Pass: plugin.Tagger, NodeKinds: []js_ast.Kind{js_ast.KindNumericLiteral}, Evaluate: func(ctx plugin.Context) {
			visits++
		}},
	}
	r := New(plugin.Tagger, plugins)
	g := &graph.Graph{}
	if err := r.Run(g, m); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if visits != 1 {
		t.Errorf("expected exactly one traversal when no plugin mutates, got %d visits", visits)
	}
}

func TestRunEditorPassTraversesExactlyOnce(t *testing.T) {
	m := newModule(t, "var a = 1; var b = 2;")
	traversals := 0
	plugins := []plugin.Plugin{
		{Name: "replacer", Pass: plugin.Editor, NodeKinds: []js_ast.Kind{js_ast.KindNumericLiteral}, Evaluate: func(ctx plugin.Context) {
			traversals++
			ctx.Path.ReplaceExpr(js_ast.Expr{Data: &js_ast.ENumber{Value: 99, Raw: "99"}})
		}},
	}
	r := New(plugin.Editor, plugins)
	g := &graph.Graph{}
	if err := r.Run(g, m); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if traversals != 2 {
		t.Errorf("expected the editor pass to visit both numeric literals once each, got %d", traversals)
	}
	got := facade.Print(m.ModuleCode)
	if got != "var a = 99;var b = 99;" {
		t.Errorf("Print() = %q, want both literals rewritten", got)
	}
}

func TestRunReturnsFixpointExceededErrorWhenNeverConverging(t *testing.T) {
	m := newModule(t, "var a = 1;")
	plugins := []plugin.Plugin{
		{Name: "oscillator", Pass: plugin.Decompiler, NodeKinds: []js_ast.Kind{js_ast.KindNumericLiteral}, Evaluate: func(ctx plugin.Context) {
			n := ctx.Path.Expr.Data.(*js_ast.ENumber)
			ctx.Path.ReplaceExpr(js_ast.Expr{Data: &js_ast.ENumber{Value: n.Value + 1, Raw: ""}})
		}},
	}
	r := New(plugin.Decompiler, plugins)
	g := &graph.Graph{}
	err := r.Run(g, m)
	if err == nil {
		t.Fatalf("expected a FixpointExceededError for a pass that always mutates")
	}
	fpErr, ok := err.(*FixpointExceededError)
	if !ok {
		t.Fatalf("expected *FixpointExceededError, got %T", err)
	}
	if fpErr.ModuleID != 1 || fpErr.Pass != plugin.Decompiler {
		t.Errorf("unexpected error fields: %+v", fpErr)
	}
}

func TestRunSurfacesPluginPanicAsError(t *testing.T) {
	m := newModule(t, "var a = 1;")
	plugins := []plugin.Plugin{
		{Name: "boom", Pass: plugin.Tagger, NodeKinds: []js_ast.Kind{js_ast.KindNumericLiteral}, Evaluate: func(ctx plugin.Context) {
			panic("kaboom")
		}},
	}
	r := New(plugin.Tagger, plugins)
	err := r.Run(&graph.Graph{}, m)
	if err == nil {
		t.Fatalf("expected a panicking plugin to surface as an error")
	}
	pErr, ok := err.(*PluginPanicError)
	if !ok {
		t.Fatalf("expected *PluginPanicError, got %T", err)
	}
	if pErr.Plugin != "boom" || pErr.ModuleID != 1 {
		t.Errorf("unexpected error fields: %+v", pErr)
	}
}

func TestPerfRowsAreSortedByPluginName(t *testing.T) {
	m := newModule(t, "var a = 1;")
	plugins := []plugin.Plugin{
		{Name: "zzz", Pass: plugin.Tagger, NodeKinds: []js_ast.Kind{js_ast.KindWholeModule}, Evaluate: func(ctx plugin.Context) {}},
		{Name: "aaa", Pass: plugin.Tagger, NodeKinds: []js_ast.Kind{js_ast.KindWholeModule}, Evaluate: func(ctx plugin.Context) {}},
	}
	r := New(plugin.Tagger, plugins)
	g := &graph.Graph{}
	if err := r.Run(g, m); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	rows := r.PerfRows()
	if len(rows) != 2 || rows[0].Plugin != "aaa" || rows[1].Plugin != "zzz" {
		t.Fatalf("PerfRows() = %+v, want aaa before zzz", rows)
	}
	for _, row := range rows {
		if row.Pass != plugin.Tagger {
			t.Errorf("row %+v: expected Pass=Tagger", row)
		}
	}
}
