// Package decompilers implements the larger structural rewrites that
// recover ES module semantics from Metro's require calling convention.
// Each rewrite is a pure function on the matched subtree: if the shape
// doesn't match, the subtree is left untouched.
package decompilers

import (
	"fmt"

	"github.com/metrodecomp/metrodecomp/internal/graph"
	"github.com/metrodecomp/metrodecomp/internal/js_ast"
	"github.com/metrodecomp/metrodecomp/internal/plugin"
)

// resolvedModuleName resolves an import path for a dependency: the
// dependency's npmModuleName if it's tagged NPM, otherwise a relative
// path derived from its moduleId.
func resolvedModuleName(g *graph.Graph, depID int) string {
	if dep, ok := g.Get(depID); ok && dep.IsNpmModule {
		return dep.NpmModuleName
	}
	return fmt.Sprintf("./%d", depID)
}

// RequireToImport rewrites `const X = require(dependencyMap[i])` into
// `import X from '<resolved-name>'`.
func RequireToImport() plugin.Plugin {
	return plugin.Plugin{
		Name:      "decompiler:require-to-import",
		Pass:      plugin.Decompiler,
		Priority:  0,
		NodeKinds: []js_ast.Kind{js_ast.KindVariableDeclaration},
		Evaluate: func(ctx plugin.Context) {
			decl, ok := (*ctx.Path.Stmt).Data.(*js_ast.SVarDecl)
			if !ok || len(decl.Decls) != 1 {
				return
			}
			d := decl.Decls[0]
			target, ok := d.Binding.Data.(*js_ast.BIdentifier)
			if !ok || d.Value == nil {
				return
			}
			depIndex, ok := ctx.Module.IsRequireCall(*d.Value)
			if !ok || depIndex < 0 || depIndex >= len(ctx.Module.Dependencies) {
				return
			}
			depID := ctx.Module.Dependencies[depIndex]
			if depID < 0 {
				return
			}
			ctx.Path.ReplaceStmt(js_ast.Stmt{Data: &js_ast.SImport{
				Clause: js_ast.ImportClause{Default: target.Name},
				Path:   resolvedModuleName(ctx.Graph, depID),
			}})
		},
	}
}

// ImportDefaultToImport rewrites
// `const X = importDefault(dependencyMap[i])` into
// `import X from '<resolved-name>'`.
func ImportDefaultToImport() plugin.Plugin {
	return plugin.Plugin{
		Name:      "decompiler:import-default-to-import",
		Pass:      plugin.Decompiler,
		Priority:  1,
		NodeKinds: []js_ast.Kind{js_ast.KindVariableDeclaration},
		Evaluate: func(ctx plugin.Context) {
			decl, ok := (*ctx.Path.Stmt).Data.(*js_ast.SVarDecl)
			if !ok || len(decl.Decls) != 1 {
				return
			}
			d := decl.Decls[0]
			target, ok := d.Binding.Data.(*js_ast.BIdentifier)
			if !ok || d.Value == nil {
				return
			}
			depIndex, ok := ctx.Module.IsImportDefaultCall(*d.Value)
			if !ok || depIndex < 0 || depIndex >= len(ctx.Module.Dependencies) {
				return
			}
			depID := ctx.Module.Dependencies[depIndex]
			if depID < 0 {
				return
			}
			ctx.Path.ReplaceStmt(js_ast.Stmt{Data: &js_ast.SImport{
				Clause: js_ast.ImportClause{Default: target.Name},
				Path:   resolvedModuleName(ctx.Graph, depID),
			}})
		},
	}
}

// ImportAllToImport rewrites `const X = importAll(dependencyMap[i])` into
// `import * as X from '<resolved-name>'`.
func ImportAllToImport() plugin.Plugin {
	return plugin.Plugin{
		Name:      "decompiler:import-all-to-import",
		Pass:      plugin.Decompiler,
		Priority:  2,
		NodeKinds: []js_ast.Kind{js_ast.KindVariableDeclaration},
		Evaluate: func(ctx plugin.Context) {
			decl, ok := (*ctx.Path.Stmt).Data.(*js_ast.SVarDecl)
			if !ok || len(decl.Decls) != 1 {
				return
			}
			d := decl.Decls[0]
			target, ok := d.Binding.Data.(*js_ast.BIdentifier)
			if !ok || d.Value == nil {
				return
			}
			depIndex, ok := ctx.Module.IsImportAllCall(*d.Value)
			if !ok || depIndex < 0 || depIndex >= len(ctx.Module.Dependencies) {
				return
			}
			depID := ctx.Module.Dependencies[depIndex]
			if depID < 0 {
				return
			}
			ctx.Path.ReplaceStmt(js_ast.Stmt{Data: &js_ast.SImport{
				Clause: js_ast.ImportClause{Namespace: target.Name},
				Path:   resolvedModuleName(ctx.Graph, depID),
			}})
		},
	}
}
