// Package router drives one pass (tagger, editor, or decompiler) over a
// module's working AST, dispatching each visited node to every plugin
// declared interested in its kind. It is the
// largest component in the system; everything else feeds it a dispatch
// table and reads back mutation/timing results.
package router

import (
	"fmt"
	"sort"
	"time"

	"github.com/metrodecomp/metrodecomp/internal/facade"
	"github.com/metrodecomp/metrodecomp/internal/graph"
	"github.com/metrodecomp/metrodecomp/internal/helpers"
	"github.com/metrodecomp/metrodecomp/internal/js_ast"
	"github.com/metrodecomp/metrodecomp/internal/module"
	"github.com/metrodecomp/metrodecomp/internal/plugin"
)

// MaxFixpointIterations bounds the tagger/decompiler re-traversal loop.
const MaxFixpointIterations = 16

// FixpointExceededError reports a pass that didn't converge within
// MaxFixpointIterations.
type FixpointExceededError struct {
	ModuleID int
	Pass     plugin.Pass
}

func (e *FixpointExceededError) Error() string {
	return fmt.Sprintf("module %d: %s pass did not reach a fixed point within %d iterations", e.ModuleID, e.Pass, MaxFixpointIterations)
}

// PluginPanicError reports a plugin that panicked mid-evaluate. Plugins
// must return cleanly on recognition failures, so a panic here is an
// internal error; the pretty-printed stack identifies the offending plugin
// code.
type PluginPanicError struct {
	Plugin   string
	ModuleID int
	Value    interface{}
	Stack    string
}

func (e *PluginPanicError) Error() string {
	return fmt.Sprintf("plugin %s panicked on module %d: %v\n%s", e.Plugin, e.ModuleID, e.Value, e.Stack)
}

// PerfRow is one plugin's cumulative wall-clock time over a Run call, fed
// to internal/logger's performance report when --performance is set.
type PerfRow struct {
	Plugin  string
	Pass    plugin.Pass
	Elapsed time.Duration
}

// Router holds a dispatch table for one pass: node-kind → plugins
// interested in it, in ascending-priority order, plus the whole-module
// plugins that bypass the per-node dispatch entirely.
type Router struct {
	pass        plugin.Pass
	byKind      map[js_ast.Kind][]plugin.Plugin
	wholeModule []plugin.Plugin
	perf        map[string]time.Duration
	panicErr    *PluginPanicError
}

// New builds a dispatch table for pass from plugins, which need not
// already be filtered to that pass — New does the filtering. Within a
// node kind's list, plugins are ordered by ascending Priority, then by
// definition order on ties, which also implements the tagger tie-break
// rule.
func New(pass plugin.Pass, plugins []plugin.Plugin) *Router {
	r := &Router{pass: pass, byKind: map[js_ast.Kind][]plugin.Plugin{}, perf: map[string]time.Duration{}}

	var forPass []plugin.Plugin
	for _, p := range plugins {
		if p.Pass == pass {
			forPass = append(forPass, p)
		}
	}
	sort.SliceStable(forPass, func(i, j int) bool { return forPass[i].Priority < forPass[j].Priority })

	for _, p := range forPass {
		if p.WantsWholeModule() {
			r.wholeModule = append(r.wholeModule, p)
			continue
		}
		for _, k := range p.NodeKinds {
			r.byKind[k] = append(r.byKind[k], p)
		}
	}
	return r
}

// Run drives the pass against m to a fixed point (for Tagger and
// Decompiler passes) or a single traversal (for Editor passes; editors
// are local clean-ups, not iterated to convergence).
func (r *Router) Run(g *graph.Graph, m *module.Module) error {
	for _, p := range r.wholeModule {
		r.evaluate(p, plugin.Context{Module: m, Graph: g})
	}
	if err := r.takePanic(); err != nil {
		return err
	}

	if r.pass == plugin.Editor {
		r.traverseOnce(g, m)
		return r.takePanic()
	}

	for i := 0; i < MaxFixpointIterations; i++ {
		mutated := r.traverseOnce(g, m)
		if err := r.takePanic(); err != nil {
			return err
		}
		if !mutated {
			return nil
		}
	}
	return &FixpointExceededError{ModuleID: m.ID, Pass: r.pass}
}

func (r *Router) takePanic() error {
	if r.panicErr == nil {
		return nil
	}
	err := r.panicErr
	r.panicErr = nil
	return err
}

func (r *Router) traverseOnce(g *graph.Graph, m *module.Module) bool {
	return facade.Traverse(&m.ModuleCode, func(path *facade.NodePath) {
		for _, p := range r.byKind[path.Kind] {
			r.evaluate(p, plugin.Context{Path: path, Module: m, Graph: g})
		}
	})
}

func (r *Router) evaluate(p plugin.Plugin, ctx plugin.Context) {
	start := time.Now()
	defer func() {
		r.perf[p.Name] += time.Since(start)
		if v := recover(); v != nil && r.panicErr == nil {
			r.panicErr = &PluginPanicError{
				Plugin:   p.Name,
				ModuleID: ctx.Module.ID,
				Value:    v,
				Stack:    helpers.PrettyPrintedStack(),
			}
		}
	}()
	p.Evaluate(ctx)
}

// PerfRows returns the cumulative per-plugin timing collected across all
// Run calls made on r so far, for the optional --performance report.
// Callers construct a fresh Router per pass, so these rows are already
// scoped to one pass.
func (r *Router) PerfRows() []PerfRow {
	rows := make([]PerfRow, 0, len(r.perf))
	for name, elapsed := range r.perf {
		rows = append(rows, PerfRow{Plugin: name, Pass: r.pass, Elapsed: elapsed})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Plugin < rows[j].Plugin })
	return rows
}
