// Package graph builds the module graph: a sparse moduleId → *Module
// index built by finding every top-level
// __d(...) call in the parsed bundle. Once construction completes the set
// of IDs is frozen; only per-module fields mutate afterward.
package graph

import (
	"github.com/metrodecomp/metrodecomp/internal/facade"
	"github.com/metrodecomp/metrodecomp/internal/js_ast"
	"github.com/metrodecomp/metrodecomp/internal/module"
)

// Graph is a sparse moduleId → *module.Module index. Non-contiguous IDs are
// allowed; Get on an absent ID returns (nil, false).
type Graph struct {
	modules map[int]*module.Module
	order   []int // insertion order, for deterministic iteration (output S5)
}

// Get looks up a module by ID. Plugins use this for sibling reads; it is
// a lookup, not ownership.
func (g *Graph) Get(id int) (*module.Module, bool) {
	m, ok := g.modules[id]
	return m, ok
}

// Len reports the number of modules in the graph.
func (g *Graph) Len() int { return len(g.modules) }

// All returns modules in the order they were first registered, so
// repeated runs over an unchanged bundle iterate identically.
func (g *Graph) All() []*module.Module {
	out := make([]*module.Module, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.modules[id])
	}
	return out
}

// Adopt registers a module constructed outside of Build — used only by
// internal/cache's aggressive mode, which synthesizes a stub Module for a
// cached-as-ignored module to avoid re-parsing its body.
func (g *Graph) Adopt(m *module.Module) {
	if _, exists := g.modules[m.ID]; exists {
		return
	}
	if g.modules == nil {
		g.modules = map[int]*module.Module{}
	}
	g.modules[m.ID] = m
	g.order = append(g.order, m.ID)
}

// Delete removes a module from the graph. Used only by the entry-closure
// trim (internal/ignore), never by plugins.
func (g *Graph) Delete(id int) {
	if _, ok := g.modules[id]; !ok {
		return
	}
	delete(g.modules, id)
	for i, existing := range g.order {
		if existing == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Build enumerates every __d(...) call in program and constructs a Module
// for each. A call whose shape doesn't match yields a
// *module.MalformedRegistrationError collected into errs rather than
// aborting the rest of the bundle.
//
// Matches are found by visiting CallExpression nodes whose callee is an
// identifier named "__d", and skip()-ing afterward: nested __d calls don't
// exist in well-formed bundles, and skipping avoids descending into every
// factory body during this pass.
func Build(program *js_ast.Program) (g *Graph, errs []error) {
	g = &Graph{modules: map[int]*module.Module{}}

	facade.Traverse(program, func(path *facade.NodePath) {
		if path.Kind != js_ast.KindCallExpression || path.Expr == nil {
			return
		}
		call, ok := path.Expr.Data.(*js_ast.ECall)
		if !ok {
			return
		}
		ident, ok := call.Target.Data.(*js_ast.EIdentifier)
		if !ok || ident.Name != "__d" {
			return
		}
		path.Skip()

		originalCode := facade.PrintExpr(*path.Expr)
		m, err := module.New(call, originalCode)
		if err != nil {
			errs = append(errs, err)
			return
		}
		if _, exists := g.modules[m.ID]; exists {
			errs = append(errs, &module.MalformedRegistrationError{Reason: "duplicate moduleId"})
			return
		}
		g.modules[m.ID] = m
		g.order = append(g.order, m.ID)
	})

	return g, errs
}
