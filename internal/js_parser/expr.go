package js_parser

import (
	"github.com/metrodecomp/metrodecomp/internal/js_ast"
	"github.com/metrodecomp/metrodecomp/internal/js_lexer"
)

// parseExpr is the Pratt-style precedence-climbing entry point shared by
// every expression position.
func (p *parser) parseExpr(level js_ast.L) js_ast.Expr {
	expr := p.parsePrefix(level)
	return p.parseSuffix(expr, level)
}

func (p *parser) parsePrefix(level js_ast.L) js_ast.Expr {
	loc := p.loc()

	switch p.lex.Token {
	case js_lexer.TNumericLiteral:
		v, raw := p.lex.Number, p.lex.NumberRaw
		p.lex.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Value: v, Raw: raw}}

	case js_lexer.TStringLiteral:
		v := p.lex.StringValue
		p.lex.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: v}}

	case js_lexer.TNoSubstitutionTemplateLiteral:
		return p.parseTemplate(loc, nil)

	case js_lexer.TSlash, js_lexer.TSlashEquals:
		// A slash in prefix position cannot be division; rescan it as a
		// regular expression literal.
		p.lex.ScanRegExp()
		raw := p.lex.Raw
		p.lex.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ERegExp{Raw: raw}}

	case js_lexer.TOpenBracket:
		return p.parseArray(loc)

	case js_lexer.TOpenBrace:
		return p.parseObject(loc)

	case js_lexer.TOpenParen:
		return p.parseParenOrArrow(loc)

	case js_lexer.TExclamation:
		p.lex.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpNot, Value: p.parseExpr(js_ast.LPrefix)}}
	case js_lexer.TTilde:
		p.lex.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpCpl, Value: p.parseExpr(js_ast.LPrefix)}}
	case js_lexer.TPlus:
		p.lex.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpPos, Value: p.parseExpr(js_ast.LPrefix)}}
	case js_lexer.TMinus:
		p.lex.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpNeg, Value: p.parseExpr(js_ast.LPrefix)}}
	case js_lexer.TPlusPlus:
		p.lex.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpPreInc, Value: p.parseExpr(js_ast.LPrefix)}}
	case js_lexer.TMinusMinus:
		p.lex.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpPreDec, Value: p.parseExpr(js_ast.LPrefix)}}
	case js_lexer.TDotDotDot:
		p.lex.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ESpread{Value: p.parseExpr(js_ast.LComma + 1)}}

	case js_lexer.TIdentifier:
		switch p.lex.Identifier {
		case "typeof":
			p.lex.Next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpTypeof, Value: p.parseExpr(js_ast.LPrefix)}}
		case "void":
			p.lex.Next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpVoid, Value: p.parseExpr(js_ast.LPrefix)}}
		case "delete":
			p.lex.Next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpDelete, Value: p.parseExpr(js_ast.LPrefix)}}
		case "new":
			return p.parseNew(loc)
		case "function":
			fn := p.parseFn(true)
			return js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: fn}}
		case "class":
			class := p.parseClass()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EClass{Class: class}}
		case "this":
			p.lex.Next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EThis{}}
		case "true":
			p.lex.Next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: true}}
		case "false":
			p.lex.Next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: false}}
		case "null":
			p.lex.Next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.ENull{}}
		case "undefined":
			p.lex.Next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EUndefined{}}
		case "async":
			// "async (" / "async ident =>" arrow function, else a plain identifier.
			save := p.lex
			p.lex.Next()
			if p.lex.Token == js_lexer.TOpenParen || p.lex.Token == js_lexer.TIdentifier {
				if arrow, ok := p.tryParseArrow(loc, true); ok {
					return arrow
				}
			}
			p.lex = save
		}

		name := p.lex.Identifier
		p.lex.Next()
		if p.lex.Token == js_lexer.TArrow {
			p.lex.Next()
			return p.finishArrow(loc, []js_ast.Arg{{Binding: js_ast.Binding{Data: &js_ast.BIdentifier{Name: name}}}}, false)
		}
		return js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Name: name}}
	}

	p.fail("unexpected token in expression")
	return js_ast.Expr{}
}

// tryParseArrow attempts "(" params ")" "=>" after "async", backtracking by
// returning ok=false (caller must have already saved lexer state).
func (p *parser) tryParseArrow(loc js_ast.Loc, isAsync bool) (js_ast.Expr, bool) {
	if p.lex.Token == js_lexer.TIdentifier {
		name := p.lex.Identifier
		save := p.lex
		p.lex.Next()
		if p.lex.Token == js_lexer.TArrow {
			p.lex.Next()
			arrow := p.finishArrow(loc, []js_ast.Arg{{Binding: js_ast.Binding{Data: &js_ast.BIdentifier{Name: name}}}}, isAsync)
			return arrow, true
		}
		p.lex = save
		return js_ast.Expr{}, false
	}
	// TOpenParen case: parse as a parenthesized param list and require "=>".
	save := p.lex
	args, ok := p.tryParseArrowParams()
	if !ok || p.lex.Token != js_lexer.TArrow {
		p.lex = save
		return js_ast.Expr{}, false
	}
	p.lex.Next()
	return p.finishArrow(loc, args, isAsync), true
}

func (p *parser) tryParseArrowParams() (args []js_ast.Arg, ok bool) {
	wasSpeculative := p.speculative
	p.speculative = true
	defer func() {
		p.speculative = wasSpeculative
		if r := recover(); r != nil {
			if _, isParseError := r.(parseError); isParseError {
				ok = false
				return
			}
			panic(r)
		}
	}()
	args = p.parseArgs()
	return args, true
}

func (p *parser) finishArrow(loc js_ast.Loc, args []js_ast.Arg, isAsync bool) js_ast.Expr {
	fn := &js_ast.Fn{Args: args, IsArrow: true, IsAsync: isAsync}
	if p.lex.Token == js_lexer.TOpenBrace {
		fn.Body = js_ast.FnBody{Stmts: p.parseBlock()}
	} else {
		e := p.parseExpr(js_ast.LComma + 1)
		fn.Body = js_ast.FnBody{Expr: &e}
	}
	return js_ast.Expr{Loc: loc, Data: &js_ast.EArrow{Fn: fn}}
}

func (p *parser) parseParenOrArrow(loc js_ast.Loc) js_ast.Expr {
	save := p.lex
	if args, ok := p.tryParseArrowParams(); ok && p.lex.Token == js_lexer.TArrow {
		p.lex.Next()
		return p.finishArrow(loc, args, false)
	}
	p.lex = save

	p.expect(js_lexer.TOpenParen, "\"(\"")
	expr := p.parseExpr(js_ast.LLowest)
	for p.lex.Token == js_lexer.TComma {
		p.lex.Next()
		next := p.parseExpr(js_ast.LComma + 1)
		if seq, isSeq := expr.Data.(*js_ast.ESequence); isSeq {
			seq.Exprs = append(seq.Exprs, next)
		} else {
			expr = js_ast.Expr{Loc: loc, Data: &js_ast.ESequence{Exprs: []js_ast.Expr{expr, next}}}
		}
	}
	p.expect(js_lexer.TCloseParen, "\")\"")
	return expr
}

func (p *parser) parseNew(loc js_ast.Loc) js_ast.Expr {
	p.lex.Next() // "new"
	target := p.parsePrefix(js_ast.LNew)
	target = p.parseSuffixMembersOnly(target)
	var args []js_ast.Expr
	if p.lex.Token == js_lexer.TOpenParen {
		args = p.parseCallArgs()
	}
	return js_ast.Expr{Loc: loc, Data: &js_ast.ENew{Target: target, Args: args}}
}

// parseSuffixMembersOnly consumes "."/"[" chains without consuming a call,
// used right after "new X" so "new X.Y(...)" binds the call to the whole
// "new" expression rather than just "Y".
func (p *parser) parseSuffixMembersOnly(expr js_ast.Expr) js_ast.Expr {
	for {
		switch p.lex.Token {
		case js_lexer.TDot:
			p.lex.Next()
			name := p.lex.Identifier
			p.lex.Next()
			expr = js_ast.Expr{Loc: expr.Loc, Data: &js_ast.EDot{Target: expr, Name: name}}
		case js_lexer.TOpenBracket:
			p.lex.Next()
			index := p.parseExpr(js_ast.LLowest)
			p.expect(js_lexer.TCloseBracket, "\"]\"")
			expr = js_ast.Expr{Loc: expr.Loc, Data: &js_ast.EIndex{Target: expr, Index: index}}
		default:
			return expr
		}
	}
}

func (p *parser) parseCallArgs() []js_ast.Expr {
	p.expect(js_lexer.TOpenParen, "\"(\"")
	var args []js_ast.Expr
	for p.lex.Token != js_lexer.TCloseParen {
		args = append(args, p.parseExpr(js_ast.LComma+1))
		if p.lex.Token == js_lexer.TComma {
			p.lex.Next()
		}
	}
	p.expect(js_lexer.TCloseParen, "\")\"")
	return args
}

func (p *parser) parseArray(loc js_ast.Loc) js_ast.Expr {
	p.lex.Next()
	var items []js_ast.EArrayItem
	for p.lex.Token != js_lexer.TCloseBracket {
		if p.lex.Token == js_lexer.TComma {
			items = append(items, js_ast.EArrayItem{Hole: true})
			p.lex.Next()
			continue
		}
		spread := false
		if p.lex.Token == js_lexer.TDotDotDot {
			spread = true
			p.lex.Next()
		}
		v := p.parseExpr(js_ast.LComma + 1)
		items = append(items, js_ast.EArrayItem{Value: v, Spread: spread})
		if p.lex.Token == js_lexer.TComma {
			p.lex.Next()
		}
	}
	p.expect(js_lexer.TCloseBracket, "\"]\"")
	return js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: items}}
}

func (p *parser) parseObject(loc js_ast.Loc) js_ast.Expr {
	p.lex.Next()
	var props []js_ast.Property
	for p.lex.Token != js_lexer.TCloseBrace {
		if p.lex.Token == js_lexer.TDotDotDot {
			p.lex.Next()
			v := p.parseExpr(js_ast.LComma + 1)
			props = append(props, js_ast.Property{Kind: js_ast.PropertySpread, Value: v})
			if p.lex.Token == js_lexer.TComma {
				p.lex.Next()
			}
			continue
		}

		kind := js_ast.PropertyNormal
		if p.lex.Token == js_lexer.TIdentifier && (p.lex.Identifier == "get" || p.lex.Identifier == "set") {
			save := p.lex
			isGet := p.lex.Identifier == "get"
			p.lex.Next()
			if p.lex.Token != js_lexer.TColon && p.lex.Token != js_lexer.TComma && p.lex.Token != js_lexer.TCloseBrace && p.lex.Token != js_lexer.TOpenParen {
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
		computed := false
		var key js_ast.Expr
		if p.lex.Token == js_lexer.TOpenBracket {
			computed = true
			p.lex.Next()
			key = p.parseExpr(js_ast.LLowest)
			p.expect(js_lexer.TCloseBracket, "\"]\"")
		} else if p.lex.Token == js_lexer.TStringLiteral {
			key = js_ast.Expr{Loc: keyLoc, Data: &js_ast.EString{Value: p.lex.StringValue}}
			p.lex.Next()
		} else if p.lex.Token == js_lexer.TNumericLiteral {
			key = js_ast.Expr{Loc: keyLoc, Data: &js_ast.ENumber{Value: p.lex.Number, Raw: p.lex.NumberRaw}}
			p.lex.Next()
		} else {
			name := p.lex.Identifier
			key = js_ast.Expr{Loc: keyLoc, Data: &js_ast.EString{Value: name}}
			p.lex.Next()

			if kind == js_ast.PropertyNormal && p.lex.Token != js_lexer.TColon && p.lex.Token != js_lexer.TOpenParen {
				// Shorthand "{x}" or "{x = default}" (destructuring default
				// inside an object literal used as an assignment target; we
				// keep the default as part of the value for round-tripping).
				var value js_ast.Expr = js_ast.Expr{Loc: keyLoc, Data: &js_ast.EIdentifier{Name: name}}
				if p.lex.Token == js_lexer.TEquals {
					p.lex.Next()
					def := p.parseExpr(js_ast.LComma + 1)
					value = js_ast.Expr{Loc: keyLoc, Data: &js_ast.EBinary{Op: js_ast.BinOpAssign, Left: value, Right: def}}
				}
				props = append(props, js_ast.Property{Key: key, Value: value, IsShortnd: true})
				if p.lex.Token == js_lexer.TComma {
					p.lex.Next()
				}
				continue
			}
		}

		if p.lex.Token == js_lexer.TOpenParen {
			args := p.parseArgs()
			body := p.parseBlock()
			fn := &js_ast.Fn{Args: args, Body: js_ast.FnBody{Stmts: body}}
			if kind == js_ast.PropertyNormal {
				kind = js_ast.PropertyMethod
			}
			value := js_ast.Expr{Loc: keyLoc, Data: &js_ast.EFunction{Fn: fn}}
			props = append(props, js_ast.Property{Kind: kind, Computed: computed, Key: key, Value: value})
		} else {
			p.expect(js_lexer.TColon, "\":\"")
			value := p.parseExpr(js_ast.LComma + 1)
			props = append(props, js_ast.Property{Kind: kind, Computed: computed, Key: key, Value: value})
		}

		if p.lex.Token == js_lexer.TComma {
			p.lex.Next()
		}
	}
	p.expect(js_lexer.TCloseBrace, "\"}\"")
	return js_ast.Expr{Loc: loc, Data: &js_ast.EObject{Properties: props}}
}

func (p *parser) parseTemplate(loc js_ast.Loc, tag *js_ast.Expr) js_ast.Expr {
	if p.lex.Token == js_lexer.TNoSubstitutionTemplateLiteral {
		head, hasSub := p.lex.ScanTemplateChunk()
		p.lex.Next()
		if !hasSub {
			return js_ast.Expr{Loc: loc, Data: &js_ast.ETemplate{Head: head, Tag: tag}}
		}
		var parts []js_ast.TemplatePart
		for {
			value := p.parseExpr(js_ast.LLowest)
			// The "}" closing a ${...} substitution is followed by raw
			// template text, so it must not be consumed with expect():
			// Next() would tokenize that text as ordinary code. Check the
			// token, then hand the lexer straight back to template mode.
			if p.lex.Token != js_lexer.TCloseBrace {
				p.fail("expected \"}\"")
			}
			text, more := p.lex.ScanTemplateChunk()
			parts = append(parts, js_ast.TemplatePart{Value: value, Tail: text})
			p.lex.Next()
			if !more {
				break
			}
		}
		return js_ast.Expr{Loc: loc, Data: &js_ast.ETemplate{Head: head, Parts: parts, Tag: tag}}
	}
	p.fail("expected template literal")
	return js_ast.Expr{}
}

// parseSuffix applies postfix/infix operators (member access, calls,
// binary/logical/assignment operators, the conditional operator) with
// precedence climbing bounded by level.
func (p *parser) parseSuffix(left js_ast.Expr, level js_ast.L) js_ast.Expr {
	for {
		switch p.lex.Token {
		case js_lexer.TDot:
			p.lex.Next()
			name := p.lex.Identifier
			p.lex.Next()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EDot{Target: left, Name: name}}
			continue

		case js_lexer.TQuestionDot:
			p.lex.Next()
			if p.lex.Token == js_lexer.TOpenParen {
				args := p.parseCallArgs()
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ECall{Target: left, Args: args, Optional: true}}
			} else if p.lex.Token == js_lexer.TOpenBracket {
				p.lex.Next()
				index := p.parseExpr(js_ast.LLowest)
				p.expect(js_lexer.TCloseBracket, "\"]\"")
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIndex{Target: left, Index: index, Optional: true}}
			} else {
				name := p.lex.Identifier
				p.lex.Next()
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EDot{Target: left, Name: name, Optional: true}}
			}
			continue

		case js_lexer.TOpenBracket:
			if level >= js_ast.LMember {
				return left
			}
			p.lex.Next()
			index := p.parseExpr(js_ast.LLowest)
			p.expect(js_lexer.TCloseBracket, "\"]\"")
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIndex{Target: left, Index: index}}
			continue

		case js_lexer.TOpenParen:
			if level >= js_ast.LCall {
				return left
			}
			args := p.parseCallArgs()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ECall{Target: left, Args: args}}
			continue

		case js_lexer.TNoSubstitutionTemplateLiteral:
			if level >= js_ast.LCall {
				return left
			}
			t := left
			left = p.parseTemplate(left.Loc, &t)
			continue

		case js_lexer.TPlusPlus:
			if level >= js_ast.LPostfix || p.lex.HasNewlineBefore {
				return left
			}
			p.lex.Next()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EUnary{Op: js_ast.UnOpPostInc, Value: left}}
			continue
		case js_lexer.TMinusMinus:
			if level >= js_ast.LPostfix || p.lex.HasNewlineBefore {
				return left
			}
			p.lex.Next()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EUnary{Op: js_ast.UnOpPostDec, Value: left}}
			continue

		case js_lexer.TQuestion:
			if level >= js_ast.LConditional {
				return left
			}
			p.lex.Next()
			yes := p.parseExpr(js_ast.LComma + 1)
			p.expect(js_lexer.TColon, "\":\"")
			no := p.parseExpr(js_ast.LComma + 1)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIf{Test: left, Yes: yes, No: no}}
			continue

		case js_lexer.TComma:
			if level >= js_ast.LComma {
				return left
			}
			p.lex.Next()
			right := p.parseExpr(js_ast.LComma + 1)
			if seq, ok := left.Data.(*js_ast.ESequence); ok {
				seq.Exprs = append(seq.Exprs, right)
			} else {
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ESequence{Exprs: []js_ast.Expr{left, right}}}
			}
			continue
		}

		if op, ok := binOpForToken(p.lex.Token); ok {
			prec := op.Prec()
			if op.IsAssign() {
				if level >= js_ast.LAssign {
					return left
				}
				p.lex.Next()
				right := p.parseExpr(js_ast.LAssign)
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: op, Left: left, Right: right}}
				continue
			}
			if prec <= level {
				return left
			}
			p.lex.Next()
			nextLevel := prec + 1
			if op == js_ast.BinOpPow {
				nextLevel = prec // right-associative
			}
			right := p.parseExpr(nextLevel)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: op, Left: left, Right: right}}
			continue
		}

		// "instanceof"/"in" arrive as identifiers from the lexer.
		if p.lex.Token == js_lexer.TIdentifier && (p.lex.Identifier == "instanceof" || p.lex.Identifier == "in") {
			if p.lex.Identifier == "in" && !p.allowIn {
				return left
			}
			prec := js_ast.LCompare
			if prec <= level {
				return left
			}
			op := js_ast.BinOpInstanceof
			if p.lex.Identifier == "in" {
				op = js_ast.BinOpIn
			}
			p.lex.Next()
			right := p.parseExpr(prec + 1)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: op, Left: left, Right: right}}
			continue
		}

		return left
	}
}

func binOpForToken(t js_lexer.T) (js_ast.BinOp, bool) {
	switch t {
	case js_lexer.TPlus:
		return js_ast.BinOpAdd, true
	case js_lexer.TMinus:
		return js_ast.BinOpSub, true
	case js_lexer.TStar:
		return js_ast.BinOpMul, true
	case js_lexer.TSlash:
		return js_ast.BinOpDiv, true
	case js_lexer.TPercent:
		return js_ast.BinOpRem, true
	case js_lexer.TStarStar:
		return js_ast.BinOpPow, true
	case js_lexer.TLessThanLessThan:
		return js_ast.BinOpShl, true
	case js_lexer.TGreaterThanGreaterThan:
		return js_ast.BinOpShr, true
	case js_lexer.TGreaterThanGreaterThanGreaterThan:
		return js_ast.BinOpUShr, true
	case js_lexer.TLessThan:
		return js_ast.BinOpLt, true
	case js_lexer.TLessThanEquals:
		return js_ast.BinOpLe, true
	case js_lexer.TGreaterThan:
		return js_ast.BinOpGt, true
	case js_lexer.TGreaterThanEquals:
		return js_ast.BinOpGe, true
	case js_lexer.TEqualsEquals:
		return js_ast.BinOpLooseEq, true
	case js_lexer.TExclamationEquals:
		return js_ast.BinOpLooseNe, true
	case js_lexer.TEqualsEqualsEquals:
		return js_ast.BinOpStrictEq, true
	case js_lexer.TExclamationEqualsEquals:
		return js_ast.BinOpStrictNe, true
	case js_lexer.TAmpersand:
		return js_ast.BinOpBitwiseAnd, true
	case js_lexer.TBar:
		return js_ast.BinOpBitwiseOr, true
	case js_lexer.TCaret:
		return js_ast.BinOpBitwiseXor, true
	case js_lexer.TAmpersandAmpersand:
		return js_ast.BinOpLogicalAnd, true
	case js_lexer.TBarBar:
		return js_ast.BinOpLogicalOr, true
	case js_lexer.TQuestionQuestion:
		return js_ast.BinOpNullishCoalescing, true
	case js_lexer.TEquals:
		return js_ast.BinOpAssign, true
	case js_lexer.TPlusEquals:
		return js_ast.BinOpAddAssign, true
	case js_lexer.TMinusEquals:
		return js_ast.BinOpSubAssign, true
	case js_lexer.TStarEquals:
		return js_ast.BinOpMulAssign, true
	case js_lexer.TSlashEquals:
		return js_ast.BinOpDivAssign, true
	case js_lexer.TPercentEquals:
		return js_ast.BinOpRemAssign, true
	case js_lexer.TStarStarEquals:
		return js_ast.BinOpPowAssign, true
	case js_lexer.TAmpersandEquals:
		return js_ast.BinOpBitwiseAndAssign, true
	case js_lexer.TBarEquals:
		return js_ast.BinOpBitwiseOrAssign, true
	case js_lexer.TCaretEquals:
		return js_ast.BinOpBitwiseXorAssign, true
	case js_lexer.TAmpersandAmpersandEquals:
		return js_ast.BinOpLogicalAndAssign, true
	case js_lexer.TBarBarEquals:
		return js_ast.BinOpLogicalOrAssign, true
	case js_lexer.TQuestionQuestionEquals:
		return js_ast.BinOpNullishCoalescingAssign, true
	}
	return 0, false
}
