package module

import (
	"testing"

	"github.com/metrodecomp/metrodecomp/internal/js_ast"
	"github.com/metrodecomp/metrodecomp/internal/js_parser"
	"github.com/metrodecomp/metrodecomp/internal/logger"
)

func parseCall(t *testing.T, source string) *js_ast.ECall {
	t.Helper()
	log := logger.NewDeferLog()
	program, ok := js_parser.Parse(log, source, js_parser.Options{SourceName: "test.js"})
	if !ok {
		t.Fatalf("parse failed for %q", source)
	}
	stmt := program.Stmts[0].Data.(*js_ast.SExpr)
	return stmt.Value.Data.(*js_ast.ECall)
}

const factorySource = `__d(function(g, r, id, ia, module, exports, dependencyMap) {
	var dep = r(dependencyMap[0]);
	var Default = id(dependencyMap[1])[0];
	var All = ia(dependencyMap[2])[0];
	module.exports = dep;
	exports.named = dep;
}, 5, [10, 11, 12], "moduleFive");`

func TestNewBuildsModuleFromFactoryRegistration(t *testing.T) {
	call := parseCall(t, factorySource)
	m, err := New(call, factorySource)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if m.ID != 5 {
		t.Errorf("ID = %d, want 5", m.ID)
	}
	if m.Name != "moduleFive" {
		t.Errorf("Name = %q, want %q", m.Name, "moduleFive")
	}
	if len(m.Dependencies) != 3 || m.Dependencies[0] != 10 || m.Dependencies[2] != 12 {
		t.Fatalf("Dependencies = %v, want [10 11 12]", m.Dependencies)
	}
	if len(m.FactoryBody) != 5 {
		t.Fatalf("expected 5 factory-body statements, got %d", len(m.FactoryBody))
	}
	if m.Tags == nil || m.TagParameters == nil {
		t.Errorf("expected Tags/TagParameters to be initialized maps")
	}
}

func TestNewRejectsTooFewArguments(t *testing.T) {
	call := parseCall(t, `__d(function() {}, 1);`)
	_, err := New(call, "")
	if err == nil {
		t.Fatalf("expected MalformedRegistrationError for too few args")
	}
	if _, ok := err.(*MalformedRegistrationError); !ok {
		t.Errorf("expected *MalformedRegistrationError, got %T", err)
	}
}

func TestNewRejectsWrongFactoryArity(t *testing.T) {
	call := parseCall(t, `__d(function(a, b) {}, 1, []);`)
	_, err := New(call, "")
	if err == nil {
		t.Fatalf("expected error for a factory with the wrong number of parameters")
	}
}

func TestNewRejectsNonArrayDependencyList(t *testing.T) {
	call := parseCall(t, `__d(function(g, r, id, ia, module, exports, dependencyMap) {}, 1, 2);`)
	_, err := New(call, "")
	if err == nil {
		t.Fatalf("expected error for a non-array dependency list")
	}
}

func TestNewHandlesSparseDependencyArray(t *testing.T) {
	call := parseCall(t, `__d(function(g, r, id, ia, module, exports, dependencyMap) {}, 1, [1, , 3]);`)
	m, err := New(call, "")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if len(m.Dependencies) != 3 || m.Dependencies[1] != -1 {
		t.Fatalf("Dependencies = %v, want a -1 hole at index 1", m.Dependencies)
	}
}

func TestIsRequireCallAndImportHelpers(t *testing.T) {
	call := parseCall(t, factorySource)
	m, err := New(call, "")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	requireExpr := m.ModuleCode.Stmts[0].Data.(*js_ast.SVarDecl).Decls[0].Value
	idx, ok := m.IsRequireCall(*requireExpr)
	if !ok || idx != 0 {
		t.Errorf("IsRequireCall() = (%d, %v), want (0, true)", idx, ok)
	}

	importDefaultExpr := m.ModuleCode.Stmts[1].Data.(*js_ast.SVarDecl).Decls[0].Value
	idx, ok = m.IsImportDefaultCall(*importDefaultExpr)
	if !ok || idx != 1 {
		t.Errorf("IsImportDefaultCall() = (%d, %v), want (1, true)", idx, ok)
	}

	importAllExpr := m.ModuleCode.Stmts[2].Data.(*js_ast.SVarDecl).Decls[0].Value
	idx, ok = m.IsImportAllCall(*importAllExpr)
	if !ok || idx != 2 {
		t.Errorf("IsImportAllCall() = (%d, %v), want (2, true)", idx, ok)
	}
}

func TestIsModuleExportsAssignment(t *testing.T) {
	call := parseCall(t, factorySource)
	m, err := New(call, "")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	assign := m.ModuleCode.Stmts[3].Data.(*js_ast.SExpr).Value
	value, ok := m.IsModuleExportsAssignment(assign)
	if !ok {
		t.Fatalf("expected module.exports assignment to be detected")
	}
	ident, ok := value.Data.(*js_ast.EIdentifier)
	if !ok || ident.Name != "dep" {
		t.Errorf("assigned value = %+v, want identifier dep", value.Data)
	}
}

func TestIsExportsPropertyAssignment(t *testing.T) {
	call := parseCall(t, factorySource)
	m, err := New(call, "")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	assign := m.ModuleCode.Stmts[4].Data.(*js_ast.SExpr).Value
	name, value, ok := m.IsExportsPropertyAssignment(assign)
	if !ok || name != "named" {
		t.Fatalf("IsExportsPropertyAssignment() = (%q, _, %v), want (\"named\", _, true)", name, ok)
	}
	ident := value.Data.(*js_ast.EIdentifier)
	if ident.Name != "dep" {
		t.Errorf("assigned value = %q, want dep", ident.Name)
	}
}

func TestTagAsNpmModuleAlsoIgnores(t *testing.T) {
	call := parseCall(t, factorySource)
	m, err := New(call, "")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	m.TagAsNpmModule("left-pad")
	if !m.IsNpmModule || m.NpmModuleName != "left-pad" {
		t.Errorf("TagAsNpmModule did not set npm fields: %+v", m)
	}
	if !m.Ignored {
		t.Errorf("expected TagAsNpmModule to also ignore the module")
	}
}

func TestIgnoreReasonIsStickyToFirstCall(t *testing.T) {
	call := parseCall(t, factorySource)
	m, err := New(call, "")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	m.Ignore("first reason")
	m.Ignore("second reason")
	if m.IgnoreReason != "first reason" {
		t.Errorf("IgnoreReason = %q, want the first reason to stick", m.IgnoreReason)
	}
}

func TestPrintRendersWorkingCopy(t *testing.T) {
	call := parseCall(t, `__d(function(g, r, id, ia, module, exports, dependencyMap) {
		module.exports = 1;
	}, 9, []);`)
	m, err := New(call, "")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	got := m.Print()
	if got != "module.exports = 1;" {
		t.Errorf("Print() = %q, want %q", got, "module.exports = 1;")
	}
}
