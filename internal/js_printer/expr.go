package js_printer

import (
	"strconv"
	"strings"

	"github.com/metrodecomp/metrodecomp/internal/helpers"
	"github.com/metrodecomp/metrodecomp/internal/js_ast"
)

func (p *Printer) printExpr(e js_ast.Expr, level js_ast.L) {
	switch d := e.Data.(type) {
	case *js_ast.EIdentifier:
		p.j.AddString(d.Name)

	case *js_ast.ENumber:
		p.j.AddString(formatNumber(d.Value, d.Raw))

	case *js_ast.EString:
		p.j.AddBytes(helpers.QuoteSingle(d.Value))

	case *js_ast.EBoolean:
		if d.Value {
			p.j.AddString("true")
		} else {
			p.j.AddString("false")
		}

	case *js_ast.ENull:
		p.j.AddString("null")

	case *js_ast.EUndefined:
		p.j.AddString("undefined")

	case *js_ast.EThis:
		p.j.AddString("this")

	case *js_ast.ERegExp:
		p.j.AddString(d.Raw)

	case *js_ast.ETemplate:
		p.printTemplate(d)

	case *js_ast.EArray:
		p.j.AddString("[")
		for i, item := range d.Items {
			if i > 0 {
				p.j.AddString(", ")
			}
			if item.Hole {
				continue
			}
			if item.Spread {
				p.j.AddString("...")
			}
			p.printExpr(item.Value, js_ast.LComma+1)
		}
		p.j.AddString("]")

	case *js_ast.EObject:
		p.printObject(d)

	case *js_ast.EFunction:
		wrap := level > js_ast.LLowest
		if wrap {
			p.j.AddString("(")
		}
		p.printFn("function", d.Fn)
		if wrap {
			p.j.AddString(")")
		}

	case *js_ast.EArrow:
		p.maybeParen(level >= js_ast.LAssign, func() {
			p.printParams(d.Fn.Args)
			p.j.AddString(" => ")
			if d.Fn.Body.Expr != nil {
				wrapBody := isObjectLiteralExpr(*d.Fn.Body.Expr)
				if wrapBody {
					p.j.AddString("(")
				}
				p.printExpr(*d.Fn.Body.Expr, js_ast.LComma+1)
				if wrapBody {
					p.j.AddString(")")
				}
			} else {
				p.printBlock(d.Fn.Body.Stmts)
			}
		})

	case *js_ast.EClass:
		p.maybeParen(level > js_ast.LLowest, func() { p.printClass(d.Class) })

	case *js_ast.ENew:
		p.maybeParen(level > js_ast.LNew, func() {
			p.j.AddString("new ")
			p.printExpr(d.Target, js_ast.LNew)
			p.j.AddString("(")
			for i, a := range d.Args {
				if i > 0 {
					p.j.AddString(", ")
				}
				p.printExpr(a, js_ast.LComma+1)
			}
			p.j.AddString(")")
		})

	case *js_ast.ECall:
		p.maybeParen(level > js_ast.LCall, func() {
			p.printExpr(d.Target, js_ast.LCall)
			if d.Optional {
				p.j.AddString("?.")
			}
			p.j.AddString("(")
			for i, a := range d.Args {
				if i > 0 {
					p.j.AddString(", ")
				}
				p.printExpr(a, js_ast.LComma+1)
			}
			p.j.AddString(")")
		})

	case *js_ast.EDot:
		p.maybeParen(level > js_ast.LMember, func() {
			p.printExpr(d.Target, js_ast.LMember)
			if d.Optional {
				p.j.AddString("?.")
			} else {
				p.j.AddString(".")
			}
			p.j.AddString(d.Name)
		})

	case *js_ast.EIndex:
		p.maybeParen(level > js_ast.LMember, func() {
			p.printExpr(d.Target, js_ast.LMember)
			if d.Optional {
				p.j.AddString("?.")
			}
			p.j.AddString("[")
			p.printExpr(d.Index, js_ast.LLowest)
			p.j.AddString("]")
		})

	case *js_ast.EUnary:
		p.printUnary(d, level)

	case *js_ast.EBinary:
		p.printBinary(d, level)

	case *js_ast.EIf:
		p.maybeParen(level >= js_ast.LConditional, func() {
			p.printExpr(d.Test, js_ast.LNullishCoalescing)
			p.j.AddString(" ? ")
			p.printExpr(d.Yes, js_ast.LComma+1)
			p.j.AddString(" : ")
			p.printExpr(d.No, js_ast.LComma+1)
		})

	case *js_ast.ESpread:
		p.j.AddString("...")
		p.printExpr(d.Value, js_ast.LComma+1)

	case *js_ast.ESequence:
		p.maybeParen(level >= js_ast.LComma, func() {
			for i, x := range d.Exprs {
				if i > 0 {
					p.j.AddString(", ")
				}
				p.printExpr(x, js_ast.LComma+1)
			}
		})
	}
}

func (p *Printer) maybeParen(wrap bool, body func()) {
	if wrap {
		p.j.AddString("(")
	}
	body()
	if wrap {
		p.j.AddString(")")
	}
}

func isObjectLiteralExpr(e js_ast.Expr) bool {
	_, ok := e.Data.(*js_ast.EObject)
	return ok
}

func (p *Printer) printTemplate(t *js_ast.ETemplate) {
	if t.Tag != nil {
		p.printExpr(*t.Tag, js_ast.LMember)
	}
	p.j.AddString("`" + escapeTemplateText(t.Head))
	for _, part := range t.Parts {
		p.j.AddString("${")
		p.printExpr(part.Value, js_ast.LLowest)
		p.j.AddString("}" + escapeTemplateText(part.Tail))
	}
	p.j.AddString("`")
}

func escapeTemplateText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "${", "\\${")
	return s
}

func (p *Printer) printObject(d *js_ast.EObject) {
	p.j.AddString("{ ")
	for i, prop := range d.Properties {
		if i > 0 {
			p.j.AddString(", ")
		}
		switch prop.Kind {
		case js_ast.PropertySpread:
			p.j.AddString("...")
			p.printExpr(prop.Value, js_ast.LComma+1)
			continue
		case js_ast.PropertyGet:
			p.j.AddString("get ")
		case js_ast.PropertySet:
			p.j.AddString("set ")
		}

		if prop.Kind == js_ast.PropertyMethod || prop.Kind == js_ast.PropertyGet || prop.Kind == js_ast.PropertySet {
			p.printPropertyKey(prop.Key, prop.Computed)
			fn := prop.Value.Data.(*js_ast.EFunction).Fn
			p.printParams(fn.Args)
			p.j.AddString(" ")
			p.printBlock(fn.Body.Stmts)
			continue
		}

		if prop.IsShortnd {
			p.printExpr(prop.Value, js_ast.LComma+1)
			continue
		}

		p.printPropertyKey(prop.Key, prop.Computed)
		p.j.AddString(": ")
		p.printExpr(prop.Value, js_ast.LComma+1)
	}
	p.j.AddString(" }")
}

func (p *Printer) printUnary(d *js_ast.EUnary, level js_ast.L) {
	if !d.Op.IsPrefix() {
		p.maybeParen(level > js_ast.LPostfix, func() {
			p.printExpr(d.Value, js_ast.LPostfix)
			p.j.AddString(d.Op.String())
		})
		return
	}
	p.maybeParen(level > js_ast.LPrefix, func() {
		text := d.Op.String()
		p.j.AddString(text)
		if len(text) > 1 || text == "+" || text == "-" {
			p.j.AddString(" ")
		}
		p.printExpr(d.Value, js_ast.LPrefix)
	})
}

func (p *Printer) printBinary(d *js_ast.EBinary, level js_ast.L) {
	prec := d.Op.Prec()
	wrap := prec < level
	if d.Op.IsAssign() {
		wrap = level > js_ast.LAssign
	}
	p.maybeParen(wrap, func() {
		leftLevel := prec
		rightLevel := prec + 1
		if d.Op.IsAssign() {
			leftLevel = js_ast.LCall
			rightLevel = js_ast.LAssign
		} else if d.Op == js_ast.BinOpPow {
			leftLevel = prec + 1
			rightLevel = prec
		}
		p.printExpr(d.Left, leftLevel)
		p.j.AddString(" " + d.Op.Text() + " ")
		p.printExpr(d.Right, rightLevel)
	})
}

func formatNumber(v float64, raw string) string {
	if raw != "" {
		return raw
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
