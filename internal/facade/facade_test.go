package facade

import (
	"strings"
	"testing"

	"github.com/metrodecomp/metrodecomp/internal/js_ast"
)

func TestParseAndPrintRoundTrip(t *testing.T) {
	program, err := Parse("var a = 1 + 2;", "test.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got := Print(program)
	want := "var a = 1 + 2;"
	if got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestParseReportsParseError(t *testing.T) {
	_, err := Parse("var = ;", "bad.js")
	if err == nil {
		t.Fatalf("expected a ParseError for malformed source")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.SourceName != "bad.js" {
		t.Errorf("SourceName = %q, want %q", perr.SourceName, "bad.js")
	}
	if !strings.Contains(perr.Error(), "parse error in bad.js") {
		t.Errorf("Error() = %q, missing source name", perr.Error())
	}
}

func TestTraverseVisitsEveryIdentifier(t *testing.T) {
	program, err := Parse("var a = b + c;", "test.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	var names []string
	Traverse(&program, func(path *NodePath) {
		if path.Expr == nil {
			return
		}
		if id, ok := path.Expr.Data.(*js_ast.EIdentifier); ok {
			names = append(names, id.Name)
		}
	})
	if len(names) != 2 || names[0] != "b" || names[1] != "c" {
		t.Errorf("visited identifiers = %v, want [b c]", names)
	}
}

func TestTraverseSkipPrunesDescent(t *testing.T) {
	program, err := Parse("var a = b + c;", "test.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	var names []string
	Traverse(&program, func(path *NodePath) {
		if path.Expr == nil {
			return
		}
		if _, ok := path.Expr.Data.(*js_ast.EBinary); ok {
			path.Skip()
			return
		}
		if id, ok := path.Expr.Data.(*js_ast.EIdentifier); ok {
			names = append(names, id.Name)
		}
	})
	if len(names) != 0 {
		t.Errorf("expected no identifiers visited after Skip(), got %v", names)
	}
}

func TestTraverseReplaceExprRewritesInPlace(t *testing.T) {
	program, err := Parse("var a = b;", "test.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	mutated := Traverse(&program, func(path *NodePath) {
		if path.Expr == nil {
			return
		}
		if id, ok := path.Expr.Data.(*js_ast.EIdentifier); ok && id.Name == "b" {
			path.ReplaceExpr(js_ast.Expr{Data: &js_ast.ENumber{Value: 5, Raw: "5"}})
		}
	})
	if !mutated {
		t.Errorf("expected Traverse to report mutated=true")
	}
	got := Print(program)
	if got != "var a = 5;" {
		t.Errorf("Print() after ReplaceExpr = %q, want %q", got, "var a = 5;")
	}
}

func TestTraverseRemoveDeletesStatement(t *testing.T) {
	program, err := Parse("var a = 1; var b = 2;", "test.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	mutated := Traverse(&program, func(path *NodePath) {
		if path.Stmt == nil {
			return
		}
		if decl, ok := path.Stmt.Data.(*js_ast.SVarDecl); ok {
			if id, ok := decl.Decls[0].Binding.Data.(*js_ast.BIdentifier); ok && id.Name == "a" {
				path.Remove()
			}
		}
	})
	if !mutated {
		t.Errorf("expected Traverse to report mutated=true")
	}
	if len(program.Stmts) != 1 {
		t.Fatalf("expected 1 remaining statement, got %d", len(program.Stmts))
	}
	got := Print(program)
	if got != "var b = 2;" {
		t.Errorf("Print() after Remove = %q, want %q", got, "var b = 2;")
	}
}

func TestTraverseReplaceWithStmtsSplicesMultiple(t *testing.T) {
	program, err := Parse("var a = 1;", "test.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	replacement := []js_ast.Stmt{
		{Data: &js_ast.SExpr{Value: js_ast.Expr{Data: &js_ast.ECall{Target: js_ast.Expr{Data: &js_ast.EIdentifier{Name: "x"}}}}}},
		{Data: &js_ast.SExpr{Value: js_ast.Expr{Data: &js_ast.ECall{Target: js_ast.Expr{Data: &js_ast.EIdentifier{Name: "y"}}}}}},
	}
	mutated := Traverse(&program, func(path *NodePath) {
		if path.Stmt == nil {
			return
		}
		if _, ok := path.Stmt.Data.(*js_ast.SVarDecl); ok {
			path.ReplaceWithStmts(replacement)
		}
	})
	if !mutated {
		t.Errorf("expected Traverse to report mutated=true")
	}
	if len(program.Stmts) != 2 {
		t.Fatalf("expected 2 statements after splice, got %d", len(program.Stmts))
	}
	got := Print(program)
	if got != "x();y();" {
		t.Errorf("Print() after ReplaceWithStmts = %q, want %q", got, "x();y();")
	}
}

func TestTraverseDescendsIntoFunctionBodies(t *testing.T) {
	program, err := Parse("function f() { var inner = outerRef; }", "test.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	found := false
	Traverse(&program, func(path *NodePath) {
		if path.Expr == nil {
			return
		}
		if id, ok := path.Expr.Data.(*js_ast.EIdentifier); ok && id.Name == "outerRef" {
			found = true
		}
	})
	if !found {
		t.Errorf("expected traversal to reach identifiers nested in a function body")
	}
}
