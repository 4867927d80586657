package plugin

import (
	"testing"

	"github.com/metrodecomp/metrodecomp/internal/js_ast"
)

func TestPassString(t *testing.T) {
	cases := map[Pass]string{
		Tagger:     "tagger",
		Editor:     "editor",
		Decompiler: "decompiler",
		Pass(99):   "unknown",
	}
	for pass, want := range cases {
		if got := pass.String(); got != want {
			t.Errorf("Pass(%d).String() = %q, want %q", pass, got, want)
		}
	}
}

func TestWantsWholeModule(t *testing.T) {
	whole := Plugin{Name: "whole", NodeKinds: []js_ast.Kind{js_ast.KindWholeModule}}
	if !whole.WantsWholeModule() {
		t.Errorf("expected a plugin declaring KindWholeModule to want whole-module dispatch")
	}

	perNode := Plugin{Name: "per-node", NodeKinds: []js_ast.Kind{js_ast.KindCallExpression}}
	if perNode.WantsWholeModule() {
		t.Errorf("expected a plugin with only per-node interests not to want whole-module dispatch")
	}

	mixed := Plugin{Name: "mixed", NodeKinds: []js_ast.Kind{js_ast.KindCallExpression, js_ast.KindWholeModule}}
	if !mixed.WantsWholeModule() {
		t.Errorf("expected whole-module interest to dominate even when mixed with node kinds")
	}

	empty := Plugin{Name: "empty"}
	if empty.WantsWholeModule() {
		t.Errorf("a plugin with no declared NodeKinds should not want whole-module dispatch")
	}
}
