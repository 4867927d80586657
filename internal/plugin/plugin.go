// Package plugin declares the three plugin families (taggers, editors,
// decompilers) as a single tagged shape dispatched by node kind. No
// dynamic base-class machinery is needed.
package plugin

import (
	"github.com/metrodecomp/metrodecomp/internal/facade"
	"github.com/metrodecomp/metrodecomp/internal/graph"
	"github.com/metrodecomp/metrodecomp/internal/js_ast"
	"github.com/metrodecomp/metrodecomp/internal/module"
)

// Pass is one of the three plugin families, in increasing order of
// rewrite ambition.
type Pass int

const (
	Tagger Pass = iota
	Editor
	Decompiler
)

func (p Pass) String() string {
	switch p {
	case Tagger:
		return "tagger"
	case Editor:
		return "editor"
	case Decompiler:
		return "decompiler"
	default:
		return "unknown"
	}
}

// Context is what a plugin's Evaluate hook receives: the node path it
// matched on (nil for whole-module plugins), the module being processed,
// and read-only access to sibling modules via the graph.
type Context struct {
	Path   *facade.NodePath // nil for whole-module plugins
	Module *module.Module
	Graph  *graph.Graph
}

// Plugin is one tagger, editor, or decompiler.
type Plugin struct {
	Name string
	Pass Pass

	// Priority orders plugins within a pass; lower runs first.
	Priority int

	// NodeKinds is the set of AST node-kind names this plugin wants to see.
	// A plugin interested in KindWholeModule runs once per module instead
	// of once per matching node.
	NodeKinds []js_ast.Kind

	// Evaluate is invoked for each matching node path (or once, for
	// whole-module plugins). Side effects mutate the current module or add
	// tags to it; plugins must not mutate other modules.
	Evaluate func(ctx Context)
}

// WantsWholeModule reports whether p should run once per module rather
// than once per visited node.
func (p Plugin) WantsWholeModule() bool {
	for _, k := range p.NodeKinds {
		if k == js_ast.KindWholeModule {
			return true
		}
	}
	return false
}
