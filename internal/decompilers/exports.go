package decompilers

import (
	"strings"

	"github.com/metrodecomp/metrodecomp/internal/facade"
	"github.com/metrodecomp/metrodecomp/internal/js_ast"
	"github.com/metrodecomp/metrodecomp/internal/module"
	"github.com/metrodecomp/metrodecomp/internal/plugin"
)

// ModuleExportsToExportDefault rewrites `module.exports = E;` into
// `export default E;`.
func ModuleExportsToExportDefault() plugin.Plugin {
	return plugin.Plugin{
		Name:      "decompiler:module-exports-to-export-default",
		Pass:      plugin.Decompiler,
		Priority:  10,
		NodeKinds: []js_ast.Kind{js_ast.KindExpressionStatement},
		Evaluate: func(ctx plugin.Context) {
			expr, ok := (*ctx.Path.Stmt).Data.(*js_ast.SExpr)
			if !ok {
				return
			}
			value, ok := ctx.Module.IsModuleExportsAssignment(expr.Value)
			if !ok {
				return
			}
			ctx.Path.ReplaceStmt(js_ast.Stmt{Data: &js_ast.SExportDefault{Value: value}})
		},
	}
}

// ExportsPropertyToNamedExport rewrites `exports.X = E;` into
// `export { X };` when E is the bare identifier X itself (e.g. a binding
// a prior require-to-import pass named), and into `export const X = E;`
// for any other E. E is not inspected for side effects; an identifier
// whose name differs from X also takes the `export const` form.
func ExportsPropertyToNamedExport() plugin.Plugin {
	return plugin.Plugin{
		Name:      "decompiler:exports-property-to-named-export",
		Pass:      plugin.Decompiler,
		Priority:  11,
		NodeKinds: []js_ast.Kind{js_ast.KindExpressionStatement},
		Evaluate: func(ctx plugin.Context) {
			expr, ok := (*ctx.Path.Stmt).Data.(*js_ast.SExpr)
			if !ok {
				return
			}
			name, value, ok := ctx.Module.IsExportsPropertyAssignment(expr.Value)
			if !ok {
				return
			}
			if ident, isIdent := value.Data.(*js_ast.EIdentifier); isIdent && ident.Name == name {
				ctx.Path.ReplaceStmt(js_ast.Stmt{Data: &js_ast.SExportNamed{
					Specifiers: []js_ast.ExportNamedSpecifier{{Local: name, Exported: name}},
				}})
				return
			}
			ctx.Path.ReplaceStmt(js_ast.Stmt{Data: &js_ast.SExportNamed{
				Decl: &js_ast.Stmt{Data: &js_ast.SVarDecl{
					Kind: js_ast.VarConst,
					Decls: []js_ast.Decl{{
						Binding: js_ast.Binding{Data: &js_ast.BIdentifier{Name: name}},
						Value:   &value,
					}},
				}},
			}})
		},
	}
}

// UninlineBabelHelper renames a tagged Babel helper's local import
// binding to the helper's canonical name, along with every use of the old
// alias. It runs at low priority among decompilers (after import
// recognition) so it sees already-recovered import bindings, and as a
// whole-module plugin so the binding and its call sites are renamed in
// the same step: renaming one without the other would print a reference
// to an identifier that is never imported. Because it must consult
// sibling modules' tags to know which helper a given dependency is, this
// plugin reads ctx.Graph rather than only ctx.Module.
func UninlineBabelHelper() plugin.Plugin {
	return plugin.Plugin{
		Name:      "decompiler:uninline-babel-helper",
		Pass:      plugin.Decompiler,
		Priority:  20,
		NodeKinds: []js_ast.Kind{js_ast.KindWholeModule},
		Evaluate: func(ctx plugin.Context) {
			renames := map[string]string{}
			for _, stmt := range ctx.Module.ModuleCode.Stmts {
				imp, ok := stmt.Data.(*js_ast.SImport)
				if !ok || imp.Clause.Default == "" {
					continue
				}
				if !strings.HasPrefix(imp.Path, babelHelperPrefix) {
					continue
				}
				dep, ok := lookupNpmDependencyByName(ctx, imp.Path)
				if !ok {
					continue
				}
				canonical := helperLocalName(dep.NpmModuleName)
				if canonical == "" || canonical == imp.Clause.Default {
					continue
				}
				renames[imp.Clause.Default] = canonical
				imp.Clause.Default = canonical
			}
			if len(renames) == 0 {
				return
			}
			facade.Traverse(&ctx.Module.ModuleCode, func(path *facade.NodePath) {
				if path.Expr == nil {
					return
				}
				ident, ok := path.Expr.Data.(*js_ast.EIdentifier)
				if !ok {
					return
				}
				if to, ok := renames[ident.Name]; ok {
					path.ReplaceExpr(js_ast.Expr{Data: &js_ast.EIdentifier{Name: to}})
				}
			})
		},
	}
}

const babelHelperPrefix = "@babel/runtime/helpers/"

type helperAlias struct {
	local string
	path  string
}

// importedHelperAliases scans already-decompiled `import X from '...'`
// statements in a module, which is how RequireToImport/
// ImportDefaultToImport leave behind the binding later rewrites need to
// recognize a call site as a use of a Babel helper.
func importedHelperAliases(stmts []js_ast.Stmt) []helperAlias {
	var aliases []helperAlias
	for _, stmt := range stmts {
		imp, ok := stmt.Data.(*js_ast.SImport)
		if !ok || imp.Clause.Default == "" {
			continue
		}
		aliases = append(aliases, helperAlias{local: imp.Clause.Default, path: imp.Path})
	}
	return aliases
}

func lookupNpmDependencyByName(ctx plugin.Context, importPath string) (*module.Module, bool) {
	for _, depID := range ctx.Module.Dependencies {
		dep, ok := ctx.Graph.Get(depID)
		if !ok || !dep.IsNpmModule || dep.NpmModuleName == "" {
			continue
		}
		if dep.NpmModuleName == importPath {
			return dep, true
		}
	}
	return nil, false
}

func helperLocalName(npmModuleName string) string {
	// "@babel/runtime/helpers/toConsumableArray" -> "toConsumableArray"
	name := npmModuleName
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			return name[i+1:]
		}
	}
	return name
}
