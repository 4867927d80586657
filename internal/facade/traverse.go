package facade

import "github.com/metrodecomp/metrodecomp/internal/js_ast"

// stmtList visits every statement in *stmts, splicing in removals and
// multi-statement replacements once the whole list has been walked so that
// indices stay stable while a statement's own children are being visited.
func (t *traversal) stmtList(stmts *[]js_ast.Stmt, parent *NodePath) {
	var out []js_ast.Stmt
	for i := range *stmts {
		stmt := &(*stmts)[i]
		path := &NodePath{Kind: js_ast.StmtKind(*stmt), Stmt: stmt, Parent: parent, mutated: t.mutated}
		t.visit(path)

		if path.removed {
			continue
		}
		if path.replaceN != nil {
			out = append(out, path.replaceN...)
			continue
		}
		if !path.skip {
			t.stmtChildren(stmt, path)
		}
		out = append(out, *stmt)
	}
	*stmts = out
}

func (t *traversal) stmtChildren(stmt *js_ast.Stmt, path *NodePath) {
	switch s := stmt.Data.(type) {
	case *js_ast.SExpr:
		t.expr(&s.Value, path)
	case *js_ast.SVarDecl:
		for i := range s.Decls {
			if s.Decls[i].Value != nil {
				t.expr(s.Decls[i].Value, path)
			}
		}
	case *js_ast.SReturn:
		if s.Value != nil {
			t.expr(s.Value, path)
		}
	case *js_ast.SThrow:
		t.expr(&s.Value, path)
	case *js_ast.SIf:
		t.expr(&s.Test, path)
		t.stmtSingle(&s.Yes, path)
		if s.No != nil {
			t.stmtSingle(s.No, path)
		}
	case *js_ast.SBlock:
		t.stmtList(&s.Stmts, path)
	case *js_ast.SFor:
		if s.Init != nil {
			t.stmtSingle(s.Init, path)
		}
		if s.Test != nil {
			t.expr(s.Test, path)
		}
		if s.Update != nil {
			t.expr(s.Update, path)
		}
		t.stmtSingle(&s.Body, path)
	case *js_ast.SForIn:
		t.stmtSingle(&s.Init, path)
		t.expr(&s.Target, path)
		t.stmtSingle(&s.Body, path)
	case *js_ast.SForOf:
		t.stmtSingle(&s.Init, path)
		t.expr(&s.Target, path)
		t.stmtSingle(&s.Body, path)
	case *js_ast.SWhile:
		t.expr(&s.Test, path)
		t.stmtSingle(&s.Body, path)
	case *js_ast.SDoWhile:
		t.stmtSingle(&s.Body, path)
		t.expr(&s.Test, path)
	case *js_ast.STry:
		t.stmtList(&s.Body, path)
		if s.Catch != nil {
			t.stmtList(&s.Catch.Body, path)
		}
		if s.Finally != nil {
			t.stmtList(s.Finally, path)
		}
	case *js_ast.SSwitch:
		t.expr(&s.Test, path)
		for i := range s.Cases {
			if s.Cases[i].Test != nil {
				t.expr(s.Cases[i].Test, path)
			}
			t.stmtList(&s.Cases[i].Body, path)
		}
	case *js_ast.SLabel:
		t.stmtSingle(&s.Stmt, path)
	case *js_ast.SFunction:
		t.fn(s.Fn, path)
	case *js_ast.SClass:
		t.class(s.Class, path)
	case *js_ast.SExportDefault:
		t.expr(&s.Value, path)
	case *js_ast.SExportNamed:
		if s.Decl != nil {
			t.stmtSingle(s.Decl, path)
		}
	}
}

// stmtSingle visits a statement that is not itself an element of a slice
// (an if-branch, a loop body, ...): Remove()/ReplaceWithStmts() don't apply
// there, only ReplaceStmt() does, since there's no list to splice into.
func (t *traversal) stmtSingle(stmt *js_ast.Stmt, parent *NodePath) {
	path := &NodePath{Kind: js_ast.StmtKind(*stmt), Stmt: stmt, Parent: parent, mutated: t.mutated}
	t.visit(path)
	if path.skip {
		return
	}
	t.stmtChildren(stmt, path)
}

func (t *traversal) expr(e *js_ast.Expr, parent *NodePath) {
	path := &NodePath{Kind: js_ast.ExprKind(*e), Expr: e, Parent: parent, mutated: t.mutated}
	t.visit(path)
	if path.skip {
		return
	}
	t.exprChildren(e, path)
}

func (t *traversal) exprChildren(e *js_ast.Expr, path *NodePath) {
	switch d := e.Data.(type) {
	case *js_ast.ETemplate:
		for i := range d.Parts {
			t.expr(&d.Parts[i].Value, path)
		}
		if d.Tag != nil {
			t.expr(d.Tag, path)
		}
	case *js_ast.EArray:
		for i := range d.Items {
			if !d.Items[i].Hole {
				t.expr(&d.Items[i].Value, path)
			}
		}
	case *js_ast.EObject:
		for i := range d.Properties {
			if d.Properties[i].Computed {
				t.expr(&d.Properties[i].Key, path)
			}
			t.expr(&d.Properties[i].Value, path)
		}
	case *js_ast.EFunction:
		t.fn(d.Fn, path)
	case *js_ast.EArrow:
		t.fn(d.Fn, path)
	case *js_ast.EClass:
		t.class(d.Class, path)
	case *js_ast.ENew:
		t.expr(&d.Target, path)
		for i := range d.Args {
			t.expr(&d.Args[i], path)
		}
	case *js_ast.ECall:
		t.expr(&d.Target, path)
		for i := range d.Args {
			t.expr(&d.Args[i], path)
		}
	case *js_ast.EDot:
		t.expr(&d.Target, path)
	case *js_ast.EIndex:
		t.expr(&d.Target, path)
		t.expr(&d.Index, path)
	case *js_ast.EUnary:
		t.expr(&d.Value, path)
	case *js_ast.EBinary:
		t.expr(&d.Left, path)
		t.expr(&d.Right, path)
	case *js_ast.EIf:
		t.expr(&d.Test, path)
		t.expr(&d.Yes, path)
		t.expr(&d.No, path)
	case *js_ast.ESpread:
		t.expr(&d.Value, path)
	case *js_ast.ESequence:
		for i := range d.Exprs {
			t.expr(&d.Exprs[i], path)
		}
	}
}

func (t *traversal) fn(fn *js_ast.Fn, parent *NodePath) {
	for i := range fn.Args {
		if fn.Args[i].Default != nil {
			t.expr(fn.Args[i].Default, parent)
		}
	}
	if fn.Body.Expr != nil {
		t.expr(fn.Body.Expr, parent)
	} else {
		t.stmtList(&fn.Body.Stmts, parent)
	}
}

func (t *traversal) class(class *js_ast.Class, parent *NodePath) {
	if class.Extends != nil {
		t.expr(class.Extends, parent)
	}
	for i := range class.Members {
		m := &class.Members[i]
		if m.Computed {
			t.expr(&m.Key, parent)
		}
		if m.Field != nil {
			t.expr(m.Field, parent)
		}
		if m.Value != nil {
			t.fn(m.Value, parent)
		}
	}
}
