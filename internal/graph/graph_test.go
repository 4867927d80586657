package graph

import (
	"testing"

	"github.com/metrodecomp/metrodecomp/internal/facade"
	"github.com/metrodecomp/metrodecomp/internal/module"
)

func parseBundle(t *testing.T, source string) *Graph {
	t.Helper()
	program, err := facade.Parse(source, "bundle.js")
	if err != nil {
		t.Fatalf("facade.Parse failed: %v", err)
	}
	g, errs := Build(&program)
	if len(errs) != 0 {
		t.Fatalf("Build() returned errors: %v", errs)
	}
	return g
}

const twoModuleBundle = `
__d(function(g, r, id, ia, module, exports, dependencyMap) {
	module.exports = r(dependencyMap[0]);
}, 0, [1]);
__d(function(g, r, id, ia, module, exports, dependencyMap) {
	module.exports = 42;
}, 1, []);
`

func TestBuildRegistersEveryModule(t *testing.T) {
	g := parseBundle(t, twoModuleBundle)
	if g.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", g.Len())
	}
	m0, ok := g.Get(0)
	if !ok || m0.Dependencies[0] != 1 {
		t.Fatalf("Get(0) = %+v, %v", m0, ok)
	}
	if _, ok := g.Get(99); ok {
		t.Errorf("Get(99) should report false for a missing module")
	}
}

func TestBuildPreservesRegistrationOrder(t *testing.T) {
	g := parseBundle(t, twoModuleBundle)
	all := g.All()
	if len(all) != 2 || all[0].ID != 0 || all[1].ID != 1 {
		t.Fatalf("All() order = %v, want [0 1]", []int{all[0].ID, all[1].ID})
	}
}

func TestBuildDoesNotDescendIntoFactoryBodies(t *testing.T) {
	// A __d(...) call nested in a factory body must never be confused for a
	// top-level registration; Skip() after a match should prevent that.
	source := `__d(function(g, r, id, ia, module, exports, dependencyMap) {
		var x = 1;
		__d(function(g, r, id, ia, module, exports, dependencyMap) {}, 1, []);
	}, 0, []);`
	g := parseBundle(t, source)
	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}
}

func TestBuildCollectsMalformedRegistrationErrors(t *testing.T) {
	source := `__d(function(a, b) {}, 0, []);`
	program, err := facade.Parse(source, "bundle.js")
	if err != nil {
		t.Fatalf("facade.Parse failed: %v", err)
	}
	g, errs := Build(&program)
	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for a malformed-only bundle", g.Len())
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 collected error, got %d: %v", len(errs), errs)
	}
	if _, ok := errs[0].(*module.MalformedRegistrationError); !ok {
		t.Errorf("expected *module.MalformedRegistrationError, got %T", errs[0])
	}
}

func TestBuildDetectsDuplicateModuleIds(t *testing.T) {
	source := `
		__d(function(g, r, id, ia, module, exports, dependencyMap) {}, 0, []);
		__d(function(g, r, id, ia, module, exports, dependencyMap) {}, 0, []);
	`
	program, err := facade.Parse(source, "bundle.js")
	if err != nil {
		t.Fatalf("facade.Parse failed: %v", err)
	}
	g, errs := Build(&program)
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (second registration rejected)", g.Len())
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 duplicate-id error, got %d", len(errs))
	}
}

func TestIgnoresNonDunderDCalls(t *testing.T) {
	g := parseBundle(t, `someOtherFunction(1, 2, 3);`)
	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0", g.Len())
	}
}

func TestAdoptSkipsExistingId(t *testing.T) {
	g := parseBundle(t, twoModuleBundle)
	stub := &module.Module{ID: 0}
	g.Adopt(stub)
	m, _ := g.Get(0)
	if m == stub {
		t.Errorf("Adopt should not overwrite an existing module ID")
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2 after a no-op Adopt", g.Len())
	}
}

func TestAdoptRegistersNewId(t *testing.T) {
	g := parseBundle(t, twoModuleBundle)
	stub := &module.Module{ID: 2}
	g.Adopt(stub)
	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", g.Len())
	}
	m, ok := g.Get(2)
	if !ok || m != stub {
		t.Errorf("Get(2) did not return the adopted stub")
	}
	all := g.All()
	if all[len(all)-1].ID != 2 {
		t.Errorf("expected the adopted module to preserve registration order at the tail")
	}
}

func TestDeleteRemovesModuleAndOrder(t *testing.T) {
	g := parseBundle(t, twoModuleBundle)
	g.Delete(0)
	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}
	if _, ok := g.Get(0); ok {
		t.Errorf("Get(0) should report false after Delete")
	}
	all := g.All()
	if len(all) != 1 || all[0].ID != 1 {
		t.Errorf("All() = %v, want only module 1 to remain", all)
	}
}

func TestDeleteOnMissingIdIsNoop(t *testing.T) {
	g := parseBundle(t, twoModuleBundle)
	g.Delete(999)
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (delete of a missing id should be a no-op)", g.Len())
	}
}
