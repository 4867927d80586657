// Package module holds the in-memory representation of a single __d(...)
// registration: its AST, its original source text, and the per-module
// scratch state taggers/editors/decompilers accumulate across passes.
package module

import (
	"fmt"

	"github.com/metrodecomp/metrodecomp/internal/facade"
	"github.com/metrodecomp/metrodecomp/internal/js_ast"
)

// MalformedRegistrationError is returned when a __d(...) call's arguments
// don't match the expected factory/id/deps/name? shape.
type MalformedRegistrationError struct {
	Reason string
}

func (e *MalformedRegistrationError) Error() string {
	return fmt.Sprintf("malformed __d registration: %s", e.Reason)
}

// Module is one bundled source file as the decompiler sees it.
type Module struct {
	ID           int
	Name         string // empty if the bundle was built without named modules
	Dependencies []int  // -1 at index i means "no dependency at that slot"

	OriginalCode string
	FactoryBody  []js_ast.Stmt
	ModuleCode   js_ast.Program

	Tags          map[string]bool
	TagParameters map[string]interface{}

	IsNpmModule   bool
	NpmModuleName string
	Ignored       bool
	IgnoreReason  string

	// params holds the local identifier names bound to the seven factory
	// parameters, learned by position since names are minified. Index order
	// matches the factory signature: global, require, importDefault,
	// importAll, module, exports, dependencyMap.
	params [7]string
}

const (
	paramGlobal = iota
	paramRequire
	paramImportDefault
	paramImportAll
	paramModule
	paramExports
	paramDependencyMap
)

// New constructs a Module from a __d(...) call expression and the raw
// source text the call was parsed from.
func New(call *js_ast.ECall, originalCode string) (*Module, error) {
	if len(call.Args) < 3 {
		return nil, &MalformedRegistrationError{Reason: fmt.Sprintf("expected at least 3 arguments, got %d", len(call.Args))}
	}

	fn, ok := call.Args[0].Data.(*js_ast.EFunction)
	if !ok {
		return nil, &MalformedRegistrationError{Reason: "first argument is not a function expression"}
	}
	if len(fn.Fn.Args) != 7 {
		return nil, &MalformedRegistrationError{Reason: fmt.Sprintf("factory must have exactly 7 parameters, got %d", len(fn.Fn.Args))}
	}

	id, ok := call.Args[1].Data.(*js_ast.ENumber)
	if !ok {
		return nil, &MalformedRegistrationError{Reason: "second argument is not a numeric moduleId"}
	}

	deps, err := parseDependencyArray(call.Args[2])
	if err != nil {
		return nil, err
	}

	name := ""
	if len(call.Args) >= 4 {
		str, ok := call.Args[3].Data.(*js_ast.EString)
		if !ok {
			return nil, &MalformedRegistrationError{Reason: "fourth argument is not a string moduleName"}
		}
		name = str.Value
	}

	m := &Module{
		ID:            int(id.Value),
		Name:          name,
		Dependencies:  deps,
		OriginalCode:  originalCode,
		Tags:          map[string]bool{},
		TagParameters: map[string]interface{}{},
	}
	for i, arg := range fn.Fn.Args {
		if b, ok := arg.Binding.Data.(*js_ast.BIdentifier); ok {
			m.params[i] = b.Name
		}
	}
	m.initialize(fn.Fn)
	return m, nil
}

func parseDependencyArray(e js_ast.Expr) ([]int, error) {
	arr, ok := e.Data.(*js_ast.EArray)
	if !ok {
		return nil, &MalformedRegistrationError{Reason: "third argument is not an array literal"}
	}
	deps := make([]int, len(arr.Items))
	for i, item := range arr.Items {
		if item.Hole {
			deps[i] = -1
			continue
		}
		n, ok := item.Value.Data.(*js_ast.ENumber)
		if !ok {
			return nil, &MalformedRegistrationError{Reason: fmt.Sprintf("dependency %d is not a numeric moduleId", i)}
		}
		deps[i] = int(n.Value)
	}
	return deps, nil
}

// initialize extracts factoryBody and sets moduleCode to a working copy.
func (m *Module) initialize(fn *js_ast.Fn) {
	m.FactoryBody = fn.Body.Stmts
	working := make([]js_ast.Stmt, len(fn.Body.Stmts))
	copy(working, fn.Body.Stmts)
	m.ModuleCode = js_ast.Program{Stmts: working}
}

// Print renders the module's current working AST back to source.
func (m *Module) Print() string {
	return facade.Print(m.ModuleCode)
}

// Tag adds a classification without affecting Ignored.
func (m *Module) Tag(name string, parameters interface{}) {
	m.Tags[name] = true
	if parameters != nil {
		m.TagParameters[name] = parameters
	}
}

// TagAsNpmModule marks m as a recognized third-party package. NPM modules
// are ignored by default.
func (m *Module) TagAsNpmModule(packageName string) {
	m.IsNpmModule = true
	m.NpmModuleName = packageName
	m.Ignore("npm module: " + packageName)
}

// Ignore marks m as excluded from output. Once set it is never unset;
// callers must not attempt to clear it.
func (m *Module) Ignore(reason string) {
	m.Ignored = true
	if m.IgnoreReason == "" {
		m.IgnoreReason = reason
	}
}

// IsRequireCall reports whether e is a call to this module's require
// binding: require(dependencyMap[i]).
func (m *Module) IsRequireCall(e js_ast.Expr) (depIndex int, ok bool) {
	return m.isCallToParam(e, paramRequire)
}

// IsImportDefaultCall reports whether e calls this module's importDefault
// binding.
func (m *Module) IsImportDefaultCall(e js_ast.Expr) (depIndex int, ok bool) {
	return m.isCallToParam(e, paramImportDefault)
}

// IsImportAllCall reports whether e calls this module's importAll binding.
func (m *Module) IsImportAllCall(e js_ast.Expr) (depIndex int, ok bool) {
	return m.isCallToParam(e, paramImportAll)
}

func (m *Module) isCallToParam(e js_ast.Expr, param int) (int, bool) {
	// importDefault/importAll results are sometimes picked out of a
	// one-element array: id(dependencyMap[i])[0].
	if idx, ok := e.Data.(*js_ast.EIndex); ok {
		if _, isNum := idx.Index.Data.(*js_ast.ENumber); isNum {
			if _, isCall := idx.Target.Data.(*js_ast.ECall); isCall {
				e = idx.Target
			}
		}
	}
	call, ok := e.Data.(*js_ast.ECall)
	if !ok || len(call.Args) != 1 {
		return 0, false
	}
	ident, ok := call.Target.Data.(*js_ast.EIdentifier)
	if !ok || m.params[param] == "" || ident.Name != m.params[param] {
		return 0, false
	}
	return m.dependencyMapIndex(call.Args[0])
}

// dependencyMapIndex reports the literal index i when e is
// dependencyMap[i] or dependencyMap[i][0] (the array form used by
// importDefault/importAll).
func (m *Module) dependencyMapIndex(e js_ast.Expr) (int, bool) {
	idx, ok := e.Data.(*js_ast.EIndex)
	if !ok {
		return 0, false
	}
	if inner, ok := idx.Target.Data.(*js_ast.EIndex); ok {
		idx = inner
	}
	ident, ok := idx.Target.Data.(*js_ast.EIdentifier)
	if !ok || m.params[paramDependencyMap] == "" || ident.Name != m.params[paramDependencyMap] {
		return 0, false
	}
	n, ok := idx.Index.Data.(*js_ast.ENumber)
	if !ok {
		return 0, false
	}
	return int(n.Value), true
}

// IsModuleExportsAssignment reports whether e is `module.exports = value`.
func (m *Module) IsModuleExportsAssignment(e js_ast.Expr) (value js_ast.Expr, ok bool) {
	bin, ok := e.Data.(*js_ast.EBinary)
	if !ok || bin.Op != js_ast.BinOpAssign {
		return js_ast.Expr{}, false
	}
	dot, ok := bin.Left.Data.(*js_ast.EDot)
	if !ok || dot.Name != "exports" {
		return js_ast.Expr{}, false
	}
	ident, ok := dot.Target.Data.(*js_ast.EIdentifier)
	if !ok || m.params[paramModule] == "" || ident.Name != m.params[paramModule] {
		return js_ast.Expr{}, false
	}
	return bin.Right, true
}

// IsExportsPropertyAssignment reports whether e is `exports.X = value`.
func (m *Module) IsExportsPropertyAssignment(e js_ast.Expr) (name string, value js_ast.Expr, ok bool) {
	bin, ok := e.Data.(*js_ast.EBinary)
	if !ok || bin.Op != js_ast.BinOpAssign {
		return "", js_ast.Expr{}, false
	}
	dot, ok := bin.Left.Data.(*js_ast.EDot)
	if !ok {
		return "", js_ast.Expr{}, false
	}
	ident, ok := dot.Target.Data.(*js_ast.EIdentifier)
	if !ok || m.params[paramExports] == "" || ident.Name != m.params[paramExports] {
		return "", js_ast.Expr{}, false
	}
	return dot.Name, bin.Right, true
}
