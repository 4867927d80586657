package js_parser

import (
	"github.com/metrodecomp/metrodecomp/internal/js_ast"
	"github.com/metrodecomp/metrodecomp/internal/js_lexer"
)

func (p *parser) parseStmtsUntil(end js_lexer.T) []js_ast.Stmt {
	var stmts []js_ast.Stmt
	for p.lex.Token != end {
		stmts = append(stmts, p.parseStmt())
	}
	return stmts
}

func (p *parser) semicolon() {
	if p.lex.Token == js_lexer.TSemicolon {
		p.lex.Next()
	}
	// Automatic semicolon insertion: a newline, "}", or EOF also terminates
	// a statement. We don't re-validate that here; the input is minified,
	// machine-generated code.
}

func (p *parser) parseStmt() js_ast.Stmt {
	loc := p.loc()

	switch p.lex.Token {
	case js_lexer.TOpenBrace:
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SBlock{Stmts: p.parseBlock()}}

	case js_lexer.TSemicolon:
		p.lex.Next()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SEmpty{}}

	case js_lexer.TIdentifier:
		switch p.lex.Identifier {
		case "var", "let", "const":
			decl := p.parseVarDecl()
			p.semicolon()
			return js_ast.Stmt{Loc: loc, Data: decl}

		case "function":
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SFunction{Fn: p.parseFn(false)}}

		case "async":
			// "async function" declaration; otherwise fall through as an
			// expression statement (async arrow/call).
			save := p.lex
			p.lex.Next()
			if p.lex.Token == js_lexer.TIdentifier && p.lex.Identifier == "function" {
				fn := p.parseFn(false)
				fn.IsAsync = true
				return js_ast.Stmt{Loc: loc, Data: &js_ast.SFunction{Fn: fn}}
			}
			p.lex = save
			return p.parseExprStmt()

		case "class":
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SClass{Class: p.parseClass()}}

		case "return":
			p.lex.Next()
			var value *js_ast.Expr
			if p.lex.Token != js_lexer.TSemicolon && p.lex.Token != js_lexer.TCloseBrace && p.lex.Token != js_lexer.TEndOfFile && !p.lex.HasNewlineBefore {
				e := p.parseExpr(js_ast.LLowest)
				value = &e
			}
			p.semicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SReturn{Value: value}}

		case "throw":
			p.lex.Next()
			value := p.parseExpr(js_ast.LLowest)
			p.semicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SThrow{Value: value}}

		case "if":
			return p.parseIf()

		case "for":
			return p.parseFor()

		case "while":
			p.lex.Next()
			p.expect(js_lexer.TOpenParen, "\"(\"")
			test := p.parseExpr(js_ast.LLowest)
			p.expect(js_lexer.TCloseParen, "\")\"")
			body := p.parseStmt()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SWhile{Test: test, Body: body}}

		case "do":
			p.lex.Next()
			body := p.parseStmt()
			if p.lex.Token == js_lexer.TIdentifier && p.lex.Identifier == "while" {
				p.lex.Next()
			}
			p.expect(js_lexer.TOpenParen, "\"(\"")
			test := p.parseExpr(js_ast.LLowest)
			p.expect(js_lexer.TCloseParen, "\")\"")
			p.semicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SDoWhile{Body: body, Test: test}}

		case "break":
			p.lex.Next()
			label := ""
			if p.lex.Token == js_lexer.TIdentifier && !p.lex.HasNewlineBefore {
				label = p.lex.Identifier
				p.lex.Next()
			}
			p.semicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SBreak{Label: label}}

		case "continue":
			p.lex.Next()
			label := ""
			if p.lex.Token == js_lexer.TIdentifier && !p.lex.HasNewlineBefore {
				label = p.lex.Identifier
				p.lex.Next()
			}
			p.semicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SContinue{Label: label}}

		case "try":
			return p.parseTry()

		case "switch":
			return p.parseSwitch()

		case "import":
			return p.parseImport()

		case "export":
			return p.parseExport()

		case "use strict":
			// unreachable: string literal directives are tokenized as strings,
			// not identifiers; kept as a documented no-op branch.
		}

		// Labeled statement: "ident: stmt"
		name := p.lex.Identifier
		save := p.lex
		p.lex.Next()
		if p.lex.Token == js_lexer.TColon {
			p.lex.Next()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SLabel{Name: name, Stmt: p.parseStmt()}}
		}
		p.lex = save
		return p.parseExprStmt()

	case js_lexer.TStringLiteral:
		// Directive prologue ("use strict";) collapses to a no-op marker.
		value := p.lex.StringValue
		p.lex.Next()
		p.semicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SDirective{Value: value}}

	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseExprStmt() js_ast.Stmt {
	loc := p.loc()
	value := p.parseExpr(js_ast.LLowest)
	p.semicolon()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: value}}
}

func (p *parser) parseBlock() []js_ast.Stmt {
	p.expect(js_lexer.TOpenBrace, "\"{\"")
	stmts := p.parseStmtsUntil(js_lexer.TCloseBrace)
	p.expect(js_lexer.TCloseBrace, "\"}\"")
	return stmts
}

func (p *parser) parseVarDecl() *js_ast.SVarDecl {
	kind := js_ast.VarVar
	switch p.lex.Identifier {
	case "let":
		kind = js_ast.VarLet
	case "const":
		kind = js_ast.VarConst
	}
	p.lex.Next()

	var decls []js_ast.Decl
	for {
		binding := p.parseBinding()
		var value *js_ast.Expr
		if p.lex.Token == js_lexer.TEquals {
			p.lex.Next()
			e := p.parseExpr(js_ast.LComma + 1)
			value = &e
		}
		decls = append(decls, js_ast.Decl{Binding: binding, Value: value})
		if p.lex.Token != js_lexer.TComma {
			break
		}
		p.lex.Next()
	}
	return &js_ast.SVarDecl{Kind: kind, Decls: decls}
}

func (p *parser) parseBinding() js_ast.Binding {
	loc := p.loc()
	switch p.lex.Token {
	case js_lexer.TOpenBracket:
		p.lex.Next()
		var items []js_ast.ArrayBindingItem
		for p.lex.Token != js_lexer.TCloseBracket {
			if p.lex.Token == js_lexer.TComma {
				items = append(items, js_ast.ArrayBindingItem{Hole: true})
				p.lex.Next()
				continue
			}
			rest := false
			if p.lex.Token == js_lexer.TDotDotDot {
				rest = true
				p.lex.Next()
			}
			b := p.parseBinding()
			var def *js_ast.Expr
			if p.lex.Token == js_lexer.TEquals {
				p.lex.Next()
				e := p.parseExpr(js_ast.LComma + 1)
				def = &e
			}
			items = append(items, js_ast.ArrayBindingItem{Binding: b, Default: def, Rest: rest})
			if p.lex.Token == js_lexer.TComma {
				p.lex.Next()
			}
		}
		p.expect(js_lexer.TCloseBracket, "\"]\"")
		return js_ast.Binding{Loc: loc, Data: &js_ast.BArray{Items: items}}

	case js_lexer.TOpenBrace:
		p.lex.Next()
		var props []js_ast.ObjectBindingProp
		for p.lex.Token != js_lexer.TCloseBrace {
			if p.lex.Token == js_lexer.TDotDotDot {
				p.lex.Next()
				b := p.parseBinding()
				props = append(props, js_ast.ObjectBindingProp{Value: b, Rest: true})
			} else {
				keyName := p.lex.Identifier
				keyLoc := p.loc()
				p.lex.Next()
				key := js_ast.Expr{Loc: keyLoc, Data: &js_ast.EString{Value: keyName}}
				var value js_ast.Binding
				if p.lex.Token == js_lexer.TColon {
					p.lex.Next()
					value = p.parseBinding()
				} else {
					value = js_ast.Binding{Loc: keyLoc, Data: &js_ast.BIdentifier{Name: keyName}}
				}
				var def *js_ast.Expr
				if p.lex.Token == js_lexer.TEquals {
					p.lex.Next()
					e := p.parseExpr(js_ast.LComma + 1)
					def = &e
				}
				props = append(props, js_ast.ObjectBindingProp{Key: key, Value: value, Default: def})
			}
			if p.lex.Token == js_lexer.TComma {
				p.lex.Next()
			}
		}
		p.expect(js_lexer.TCloseBrace, "\"}\"")
		return js_ast.Binding{Loc: loc, Data: &js_ast.BObject{Properties: props}}

	case js_lexer.TIdentifier:
		name := p.lex.Identifier
		p.lex.Next()
		return js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Name: name}}
	}

	p.fail("expected a binding")
	return js_ast.Binding{}
}

func (p *parser) parseIf() js_ast.Stmt {
	loc := p.loc()
	p.lex.Next()
	p.expect(js_lexer.TOpenParen, "\"(\"")
	test := p.parseExpr(js_ast.LLowest)
	p.expect(js_lexer.TCloseParen, "\")\"")
	yes := p.parseStmt()
	var no *js_ast.Stmt
	if p.lex.Token == js_lexer.TIdentifier && p.lex.Identifier == "else" {
		p.lex.Next()
		n := p.parseStmt()
		no = &n
	}
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SIf{Test: test, Yes: yes, No: no}}
}

func (p *parser) parseFor() js_ast.Stmt {
	loc := p.loc()
	p.lex.Next()
	p.expect(js_lexer.TOpenParen, "\"(\"")

	var init *js_ast.Stmt
	if p.lex.Token != js_lexer.TSemicolon {
		initLoc := p.loc()
		if p.lex.Token == js_lexer.TIdentifier && (p.lex.Identifier == "var" || p.lex.Identifier == "let" || p.lex.Identifier == "const") {
			p.allowIn = false
			decl := p.parseVarDecl()
			p.allowIn = true
			s := js_ast.Stmt{Loc: initLoc, Data: decl}

			if p.lex.Token == js_lexer.TIdentifier && (p.lex.Identifier == "in" || p.lex.Identifier == "of") {
				isOf := p.lex.Identifier == "of"
				p.lex.Next()
				target := p.parseExpr(js_ast.LLowest)
				p.expect(js_lexer.TCloseParen, "\")\"")
				body := p.parseStmt()
				if isOf {
					return js_ast.Stmt{Loc: loc, Data: &js_ast.SForOf{Init: s, Target: target, Body: body}}
				}
				return js_ast.Stmt{Loc: loc, Data: &js_ast.SForIn{Init: s, Target: target, Body: body}}
			}
			init = &s
		} else {
			p.allowIn = false
			value := p.parseExpr(js_ast.LLowest)
			p.allowIn = true
			if p.lex.Token == js_lexer.TIdentifier && (p.lex.Identifier == "in" || p.lex.Identifier == "of") {
				isOf := p.lex.Identifier == "of"
				p.lex.Next()
				target := p.parseExpr(js_ast.LLowest)
				p.expect(js_lexer.TCloseParen, "\")\"")
				body := p.parseStmt()
				initStmt := js_ast.Stmt{Loc: initLoc, Data: &js_ast.SExpr{Value: value}}
				if isOf {
					return js_ast.Stmt{Loc: loc, Data: &js_ast.SForOf{Init: initStmt, Target: target, Body: body}}
				}
				return js_ast.Stmt{Loc: loc, Data: &js_ast.SForIn{Init: initStmt, Target: target, Body: body}}
			}
			s := js_ast.Stmt{Loc: initLoc, Data: &js_ast.SExpr{Value: value}}
			init = &s
		}
	}

	p.expect(js_lexer.TSemicolon, "\";\"")
	var test *js_ast.Expr
	if p.lex.Token != js_lexer.TSemicolon {
		e := p.parseExpr(js_ast.LLowest)
		test = &e
	}
	p.expect(js_lexer.TSemicolon, "\";\"")
	var update *js_ast.Expr
	if p.lex.Token != js_lexer.TCloseParen {
		e := p.parseExpr(js_ast.LLowest)
		update = &e
	}
	p.expect(js_lexer.TCloseParen, "\")\"")
	body := p.parseStmt()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SFor{Init: init, Test: test, Update: update, Body: body}}
}

func (p *parser) parseTry() js_ast.Stmt {
	loc := p.loc()
	p.lex.Next()
	body := p.parseBlock()

	var catch *js_ast.Catch
	if p.lex.Token == js_lexer.TIdentifier && p.lex.Identifier == "catch" {
		p.lex.Next()
		var binding *js_ast.Binding
		if p.lex.Token == js_lexer.TOpenParen {
			p.lex.Next()
			b := p.parseBinding()
			binding = &b
			p.expect(js_lexer.TCloseParen, "\")\"")
		}
		catch = &js_ast.Catch{Binding: binding, Body: p.parseBlock()}
	}

	var finally *[]js_ast.Stmt
	if p.lex.Token == js_lexer.TIdentifier && p.lex.Identifier == "finally" {
		p.lex.Next()
		f := p.parseBlock()
		finally = &f
	}

	return js_ast.Stmt{Loc: loc, Data: &js_ast.STry{Body: body, Catch: catch, Finally: finally}}
}

func (p *parser) parseSwitch() js_ast.Stmt {
	loc := p.loc()
	p.lex.Next()
	p.expect(js_lexer.TOpenParen, "\"(\"")
	test := p.parseExpr(js_ast.LLowest)
	p.expect(js_lexer.TCloseParen, "\")\"")
	p.expect(js_lexer.TOpenBrace, "\"{\"")

	var cases []js_ast.SwitchCase
	for p.lex.Token != js_lexer.TCloseBrace {
		var testExpr *js_ast.Expr
		if p.lex.Token == js_lexer.TIdentifier && p.lex.Identifier == "case" {
			p.lex.Next()
			e := p.parseExpr(js_ast.LLowest)
			testExpr = &e
		} else if p.lex.Token == js_lexer.TIdentifier && p.lex.Identifier == "default" {
			p.lex.Next()
		}
		p.expect(js_lexer.TColon, "\":\"")
		var body []js_ast.Stmt
		for p.lex.Token != js_lexer.TCloseBrace &&
			!(p.lex.Token == js_lexer.TIdentifier && (p.lex.Identifier == "case" || p.lex.Identifier == "default")) {
			body = append(body, p.parseStmt())
		}
		cases = append(cases, js_ast.SwitchCase{Test: testExpr, Body: body})
	}
	p.expect(js_lexer.TCloseBrace, "\"}\"")
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SSwitch{Test: test, Cases: cases}}
}

func (p *parser) parseFn(isExpr bool) *js_ast.Fn {
	p.lex.Next() // consume "function"
	isGen := false
	if p.lex.Token == js_lexer.TStar {
		isGen = true
		p.lex.Next()
	}
	name := ""
	if p.lex.Token == js_lexer.TIdentifier {
		name = p.lex.Identifier
		p.lex.Next()
	}
	args := p.parseArgs()
	body := p.parseBlock()
	return &js_ast.Fn{Name: name, Args: args, Body: js_ast.FnBody{Stmts: body}, IsGen: isGen}
}

func (p *parser) parseArgs() []js_ast.Arg {
	p.expect(js_lexer.TOpenParen, "\"(\"")
	var args []js_ast.Arg
	for p.lex.Token != js_lexer.TCloseParen {
		rest := false
		if p.lex.Token == js_lexer.TDotDotDot {
			rest = true
			p.lex.Next()
		}
		b := p.parseBinding()
		var def *js_ast.Expr
		if p.lex.Token == js_lexer.TEquals {
			p.lex.Next()
			e := p.parseExpr(js_ast.LComma + 1)
			def = &e
		}
		args = append(args, js_ast.Arg{Binding: b, Default: def, Rest: rest})
		if p.lex.Token == js_lexer.TComma {
			p.lex.Next()
		}
	}
	p.expect(js_lexer.TCloseParen, "\")\"")
	return args
}

func (p *parser) parseClass() *js_ast.Class {
	p.lex.Next() // "class"
	class := &js_ast.Class{}
	if p.lex.Token == js_lexer.TIdentifier && p.lex.Identifier != "extends" {
		class.Name = p.lex.Identifier
		p.lex.Next()
	}
	if p.lex.Token == js_lexer.TIdentifier && p.lex.Identifier == "extends" {
		p.lex.Next()
		e := p.parseExpr(js_ast.LCall)
		class.Extends = &e
	}
	p.expect(js_lexer.TOpenBrace, "\"{\"")
	for p.lex.Token != js_lexer.TCloseBrace {
		if p.lex.Token == js_lexer.TSemicolon {
			p.lex.Next()
			continue
		}
		static := false
		if p.lex.Token == js_lexer.TIdentifier && p.lex.Identifier == "static" {
			static = true
			p.lex.Next()
		}
		kind := js_ast.PropertyNormal
		if p.lex.Token == js_lexer.TIdentifier && (p.lex.Identifier == "get" || p.lex.Identifier == "set") {
			save := p.lex
			isGet := p.lex.Identifier == "get"
			p.lex.Next()
			if p.lex.Token != js_lexer.TOpenParen {
				if isGet {
					kind = js_ast.PropertyGet
				} else {
					kind = js_ast.PropertySet
				}
			} else {
				p.lex = save
			}
		}
		keyLoc := p.loc()
		keyName := p.lex.Identifier
		computed := false
		var key js_ast.Expr
		if p.lex.Token == js_lexer.TOpenBracket {
			computed = true
			p.lex.Next()
			key = p.parseExpr(js_ast.LLowest)
			p.expect(js_lexer.TCloseBracket, "\"]\"")
		} else {
			key = js_ast.Expr{Loc: keyLoc, Data: &js_ast.EString{Value: keyName}}
			p.lex.Next()
		}
		if p.lex.Token == js_lexer.TOpenParen {
			args := p.parseArgs()
			body := p.parseBlock()
			fn := &js_ast.Fn{Args: args, Body: js_ast.FnBody{Stmts: body}}
			class.Members = append(class.Members, js_ast.ClassMember{Key: key, Computed: computed, Kind: kind, Static: static, Value: fn})
		} else {
			var field *js_ast.Expr
			if p.lex.Token == js_lexer.TEquals {
				p.lex.Next()
				e := p.parseExpr(js_ast.LComma + 1)
				field = &e
			}
			p.semicolon()
			class.Members = append(class.Members, js_ast.ClassMember{Key: key, Computed: computed, Static: static, Field: field})
		}
	}
	p.expect(js_lexer.TCloseBrace, "\"}\"")
	return class
}

func (p *parser) parseImport() js_ast.Stmt {
	loc := p.loc()
	p.lex.Next()
	clause := js_ast.ImportClause{}

	if p.lex.Token == js_lexer.TIdentifier {
		clause.Default = p.lex.Identifier
		p.lex.Next()
		if p.lex.Token == js_lexer.TComma {
			p.lex.Next()
		}
	}
	if p.lex.Token == js_lexer.TStar {
		p.lex.Next()
		p.expectIdent("as")
		clause.Namespace = p.lex.Identifier
		p.lex.Next()
	} else if p.lex.Token == js_lexer.TOpenBrace {
		p.lex.Next()
		for p.lex.Token != js_lexer.TCloseBrace {
			imported := p.lex.Identifier
			p.lex.Next()
			local := imported
			if p.lex.Token == js_lexer.TIdentifier && p.lex.Identifier == "as" {
				p.lex.Next()
				local = p.lex.Identifier
				p.lex.Next()
			}
			clause.Named = append(clause.Named, js_ast.ImportNamedSpecifier{Imported: imported, Local: local})
			if p.lex.Token == js_lexer.TComma {
				p.lex.Next()
			}
		}
		p.expect(js_lexer.TCloseBrace, "\"}\"")
	}

	path := ""
	if clause.Default != "" || clause.Namespace != "" || len(clause.Named) > 0 {
		p.expectIdent("from")
	}
	path = p.lex.StringValue
	p.lex.Next()
	p.semicolon()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SImport{Clause: clause, Path: path}}
}

func (p *parser) expectIdent(name string) {
	if p.lex.Token != js_lexer.TIdentifier || p.lex.Identifier != name {
		p.fail("expected %q", name)
	}
	p.lex.Next()
}

func (p *parser) parseExport() js_ast.Stmt {
	loc := p.loc()
	p.lex.Next()

	if p.lex.Token == js_lexer.TIdentifier && p.lex.Identifier == "default" {
		p.lex.Next()
		value := p.parseAssignExprOrDecl()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{Value: value}}
	}

	if p.lex.Token == js_lexer.TStar {
		p.lex.Next()
		as := ""
		if p.lex.Token == js_lexer.TIdentifier && p.lex.Identifier == "as" {
			p.lex.Next()
			as = p.lex.Identifier
			p.lex.Next()
		}
		p.expectIdent("from")
		path := p.lex.StringValue
		p.lex.Next()
		p.semicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportStar{As: as, Path: path}}
	}

	if p.lex.Token == js_lexer.TOpenBrace {
		p.lex.Next()
		var specs []js_ast.ExportNamedSpecifier
		for p.lex.Token != js_lexer.TCloseBrace {
			local := p.lex.Identifier
			p.lex.Next()
			exported := local
			if p.lex.Token == js_lexer.TIdentifier && p.lex.Identifier == "as" {
				p.lex.Next()
				exported = p.lex.Identifier
				p.lex.Next()
			}
			specs = append(specs, js_ast.ExportNamedSpecifier{Local: local, Exported: exported})
			if p.lex.Token == js_lexer.TComma {
				p.lex.Next()
			}
		}
		p.expect(js_lexer.TCloseBrace, "\"}\"")
		p.semicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportNamed{Specifiers: specs}}
	}

	// export const/let/var/function/class ...
	decl := p.parseStmt()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportNamed{Decl: &decl}}
}

// parseAssignExprOrDecl handles "export default" which may be followed by
// either an expression or a function/class declaration.
func (p *parser) parseAssignExprOrDecl() js_ast.Expr {
	if p.lex.Token == js_lexer.TIdentifier && p.lex.Identifier == "function" {
		fn := p.parseFn(true)
		return js_ast.Expr{Data: &js_ast.EFunction{Fn: fn}}
	}
	if p.lex.Token == js_lexer.TIdentifier && p.lex.Identifier == "class" {
		class := p.parseClass()
		return js_ast.Expr{Data: &js_ast.EClass{Class: class}}
	}
	value := p.parseExpr(js_ast.LComma + 1)
	p.semicolon()
	return value
}
