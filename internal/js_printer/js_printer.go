// Package js_printer turns a js_ast.Program back into source text: a
// single Printer value accumulating output in a helpers.Joiner, with
// expression printing taking an explicit precedence ("level") parameter
// to decide parenthesization.
package js_printer

import (
	"fmt"
	"strconv"

	"github.com/metrodecomp/metrodecomp/internal/helpers"
	"github.com/metrodecomp/metrodecomp/internal/js_ast"
)

type Printer struct {
	j      helpers.Joiner
	indent int
}

// Print renders a program as formatted source text.
func Print(program js_ast.Program) string {
	p := &Printer{}
	for _, stmt := range program.Stmts {
		p.printStmt(stmt)
	}
	return string(p.j.Done())
}

// PrintExpr renders a single expression, used by decompiler rewrites that
// need source text for a subtree (e.g. diagnostics, tests).
func PrintExpr(e js_ast.Expr) string {
	p := &Printer{}
	p.printExpr(e, js_ast.LComma)
	return string(p.j.Done())
}

func (p *Printer) newline() {
	p.j.AddString("\n")
	for i := 0; i < p.indent; i++ {
		p.j.AddString("  ")
	}
}

func (p *Printer) printStmts(stmts []js_ast.Stmt) {
	p.indent++
	for _, s := range stmts {
		p.newline()
		p.printStmt(s)
	}
	p.indent--
	p.newline()
}

func (p *Printer) printBlock(stmts []js_ast.Stmt) {
	p.j.AddString("{")
	if len(stmts) > 0 {
		p.printStmts(stmts)
	}
	p.j.AddString("}")
}

func (p *Printer) printStmt(stmt js_ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *js_ast.SExpr:
		p.printExpr(s.Value, js_ast.LLowest)
		p.j.AddString(";")

	case *js_ast.SDirective:
		p.j.AddString(strconv.Quote(s.Value))
		p.j.AddString(";")

	case *js_ast.SVarDecl:
		p.printVarDecl(s)
		p.j.AddString(";")

	case *js_ast.SFunction:
		p.printFn("function", s.Fn)

	case *js_ast.SClass:
		p.printClass(s.Class)

	case *js_ast.SReturn:
		p.j.AddString("return")
		if s.Value != nil {
			p.j.AddString(" ")
			p.printExpr(*s.Value, js_ast.LLowest)
		}
		p.j.AddString(";")

	case *js_ast.SThrow:
		p.j.AddString("throw ")
		p.printExpr(s.Value, js_ast.LLowest)
		p.j.AddString(";")

	case *js_ast.SIf:
		p.j.AddString("if (")
		p.printExpr(s.Test, js_ast.LLowest)
		p.j.AddString(") ")
		p.printStmt(s.Yes)
		if s.No != nil {
			p.j.AddString(" else ")
			p.printStmt(*s.No)
		}

	case *js_ast.SBlock:
		p.printBlock(s.Stmts)

	case *js_ast.SFor:
		p.j.AddString("for (")
		if s.Init != nil {
			p.printForInit(*s.Init)
		}
		p.j.AddString("; ")
		if s.Test != nil {
			p.printExpr(*s.Test, js_ast.LLowest)
		}
		p.j.AddString("; ")
		if s.Update != nil {
			p.printExpr(*s.Update, js_ast.LLowest)
		}
		p.j.AddString(") ")
		p.printStmt(s.Body)

	case *js_ast.SForIn:
		p.j.AddString("for (")
		p.printForInit(s.Init)
		p.j.AddString(" in ")
		p.printExpr(s.Target, js_ast.LLowest)
		p.j.AddString(") ")
		p.printStmt(s.Body)

	case *js_ast.SForOf:
		p.j.AddString("for (")
		p.printForInit(s.Init)
		p.j.AddString(" of ")
		p.printExpr(s.Target, js_ast.LLowest)
		p.j.AddString(") ")
		p.printStmt(s.Body)

	case *js_ast.SWhile:
		p.j.AddString("while (")
		p.printExpr(s.Test, js_ast.LLowest)
		p.j.AddString(") ")
		p.printStmt(s.Body)

	case *js_ast.SDoWhile:
		p.j.AddString("do ")
		p.printStmt(s.Body)
		p.j.AddString(" while (")
		p.printExpr(s.Test, js_ast.LLowest)
		p.j.AddString(");")

	case *js_ast.SBreak:
		p.j.AddString("break")
		if s.Label != "" {
			p.j.AddString(" " + s.Label)
		}
		p.j.AddString(";")

	case *js_ast.SContinue:
		p.j.AddString("continue")
		if s.Label != "" {
			p.j.AddString(" " + s.Label)
		}
		p.j.AddString(";")

	case *js_ast.STry:
		p.j.AddString("try ")
		p.printBlock(s.Body)
		if s.Catch != nil {
			p.j.AddString(" catch ")
			if s.Catch.Binding != nil {
				p.j.AddString("(")
				p.printBinding(*s.Catch.Binding)
				p.j.AddString(") ")
			}
			p.printBlock(s.Catch.Body)
		}
		if s.Finally != nil {
			p.j.AddString(" finally ")
			p.printBlock(*s.Finally)
		}

	case *js_ast.SSwitch:
		p.j.AddString("switch (")
		p.printExpr(s.Test, js_ast.LLowest)
		p.j.AddString(") {")
		p.indent++
		for _, c := range s.Cases {
			p.newline()
			if c.Test != nil {
				p.j.AddString("case ")
				p.printExpr(*c.Test, js_ast.LLowest)
				p.j.AddString(":")
			} else {
				p.j.AddString("default:")
			}
			p.indent++
			for _, st := range c.Body {
				p.newline()
				p.printStmt(st)
			}
			p.indent--
		}
		p.indent--
		p.newline()
		p.j.AddString("}")

	case *js_ast.SLabel:
		p.j.AddString(s.Name + ": ")
		p.printStmt(s.Stmt)

	case *js_ast.SEmpty:
		p.j.AddString(";")

	case *js_ast.SImport:
		p.printImport(s)

	case *js_ast.SExportDefault:
		p.j.AddString("export default ")
		p.printExpr(s.Value, js_ast.LComma+1)
		if !isDeclExpr(s.Value) {
			p.j.AddString(";")
		}

	case *js_ast.SExportNamed:
		p.printExportNamed(s)

	case *js_ast.SExportStar:
		p.j.AddString("export * ")
		if s.As != "" {
			p.j.AddString("as " + s.As + " ")
		}
		p.j.AddString("from " + strconv.Quote(s.Path) + ";")

	default:
		panic(fmt.Sprintf("js_printer: unhandled statement %T", stmt.Data))
	}
}

func isDeclExpr(e js_ast.Expr) bool {
	switch e.Data.(type) {
	case *js_ast.EFunction, *js_ast.EClass:
		return true
	}
	return false
}

func (p *Printer) printForInit(stmt js_ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *js_ast.SVarDecl:
		p.printVarDecl(s)
	case *js_ast.SExpr:
		p.printExpr(s.Value, js_ast.LLowest)
	}
}

func (p *Printer) printImport(s *js_ast.SImport) {
	p.j.AddString("import ")
	hasClause := s.Clause.Default != "" || s.Clause.Namespace != "" || len(s.Clause.Named) > 0
	if s.Clause.Default != "" {
		p.j.AddString(s.Clause.Default)
		if s.Clause.Namespace != "" || len(s.Clause.Named) > 0 {
			p.j.AddString(", ")
		}
	}
	if s.Clause.Namespace != "" {
		p.j.AddString("* as " + s.Clause.Namespace)
	} else if len(s.Clause.Named) > 0 {
		p.j.AddString("{ ")
		for i, n := range s.Clause.Named {
			if i > 0 {
				p.j.AddString(", ")
			}
			if n.Imported == n.Local {
				p.j.AddString(n.Local)
			} else {
				p.j.AddString(n.Imported + " as " + n.Local)
			}
		}
		p.j.AddString(" }")
	}
	if hasClause {
		p.j.AddString(" from ")
	}
	p.j.AddString(strconv.Quote(s.Path))
	p.j.AddString(";")
}

func (p *Printer) printExportNamed(s *js_ast.SExportNamed) {
	p.j.AddString("export ")
	if s.Decl != nil {
		p.printStmt(*s.Decl)
		return
	}
	p.j.AddString("{ ")
	for i, spec := range s.Specifiers {
		if i > 0 {
			p.j.AddString(", ")
		}
		if spec.Local == spec.Exported {
			p.j.AddString(spec.Local)
		} else {
			p.j.AddString(spec.Local + " as " + spec.Exported)
		}
	}
	p.j.AddString(" };")
}

func (p *Printer) printVarDecl(s *js_ast.SVarDecl) {
	p.j.AddString(s.Kind.String() + " ")
	for i, d := range s.Decls {
		if i > 0 {
			p.j.AddString(", ")
		}
		p.printBinding(d.Binding)
		if d.Value != nil {
			p.j.AddString(" = ")
			p.printExpr(*d.Value, js_ast.LComma+1)
		}
	}
}

func (p *Printer) printBinding(b js_ast.Binding) {
	switch d := b.Data.(type) {
	case *js_ast.BIdentifier:
		p.j.AddString(d.Name)
	case *js_ast.BArray:
		p.j.AddString("[")
		for i, item := range d.Items {
			if i > 0 {
				p.j.AddString(", ")
			}
			if item.Hole {
				continue
			}
			if item.Rest {
				p.j.AddString("...")
			}
			p.printBinding(item.Binding)
			if item.Default != nil {
				p.j.AddString(" = ")
				p.printExpr(*item.Default, js_ast.LComma+1)
			}
		}
		p.j.AddString("]")
	case *js_ast.BObject:
		p.j.AddString("{ ")
		for i, prop := range d.Properties {
			if i > 0 {
				p.j.AddString(", ")
			}
			if prop.Rest {
				p.j.AddString("...")
				p.printBinding(prop.Value)
				continue
			}
			p.printExpr(prop.Key, js_ast.LLowest)
			p.j.AddString(": ")
			p.printBinding(prop.Value)
			if prop.Default != nil {
				p.j.AddString(" = ")
				p.printExpr(*prop.Default, js_ast.LComma+1)
			}
		}
		p.j.AddString(" }")
	}
}

func (p *Printer) printFn(keyword string, fn *js_ast.Fn) {
	if fn.IsAsync {
		p.j.AddString("async ")
	}
	p.j.AddString(keyword)
	if fn.IsGen {
		p.j.AddString("*")
	}
	if fn.Name != "" {
		p.j.AddString(" " + fn.Name)
	} else {
		p.j.AddString(" ")
	}
	p.printParams(fn.Args)
	p.j.AddString(" ")
	p.printBlock(fn.Body.Stmts)
}

func (p *Printer) printParams(args []js_ast.Arg) {
	p.j.AddString("(")
	for i, a := range args {
		if i > 0 {
			p.j.AddString(", ")
		}
		if a.Rest {
			p.j.AddString("...")
		}
		p.printBinding(a.Binding)
		if a.Default != nil {
			p.j.AddString(" = ")
			p.printExpr(*a.Default, js_ast.LComma+1)
		}
	}
	p.j.AddString(")")
}

func (p *Printer) printClass(c *js_ast.Class) {
	p.j.AddString("class")
	if c.Name != "" {
		p.j.AddString(" " + c.Name)
	}
	if c.Extends != nil {
		p.j.AddString(" extends ")
		p.printExpr(*c.Extends, js_ast.LCall)
	}
	p.j.AddString(" {")
	p.indent++
	for _, m := range c.Members {
		p.newline()
		if m.Static {
			p.j.AddString("static ")
		}
		if m.Field != nil || (m.Value == nil && m.Field == nil) {
			p.printPropertyKey(m.Key, m.Computed)
			if m.Field != nil {
				p.j.AddString(" = ")
				p.printExpr(*m.Field, js_ast.LComma+1)
			}
			p.j.AddString(";")
			continue
		}
		switch m.Kind {
		case js_ast.PropertyGet:
			p.j.AddString("get ")
		case js_ast.PropertySet:
			p.j.AddString("set ")
		}
		p.printPropertyKey(m.Key, m.Computed)
		p.printParams(m.Value.Args)
		p.j.AddString(" ")
		p.printBlock(m.Value.Body.Stmts)
	}
	p.indent--
	p.newline()
	p.j.AddString("}")
}

func (p *Printer) printPropertyKey(key js_ast.Expr, computed bool) {
	if computed {
		p.j.AddString("[")
		p.printExpr(key, js_ast.LLowest)
		p.j.AddString("]")
		return
	}
	if s, ok := key.Data.(*js_ast.EString); ok && isValidIdentifierName(s.Value) {
		p.j.AddString(s.Value)
		return
	}
	p.printExpr(key, js_ast.LLowest)
}

func isValidIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		if c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9') {
			continue
		}
		return false
	}
	return true
}
