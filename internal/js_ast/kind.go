package js_ast

// Kind is the node-kind name plugins declare interest in. The router's
// dispatch table is keyed by this string rather than by Go type, letting
// a fingerprint catalog or a test table name kinds as plain data.
type Kind string

const (
	KindIdentifier      Kind = "Identifier"
	KindNumericLiteral   Kind = "NumericLiteral"
	KindStringLiteral    Kind = "StringLiteral"
	KindBooleanLiteral   Kind = "BooleanLiteral"
	KindNullLiteral      Kind = "NullLiteral"
	KindThisExpression   Kind = "ThisExpression"
	KindRegExpLiteral    Kind = "RegExpLiteral"
	KindTemplateLiteral  Kind = "TemplateLiteral"
	KindArrayExpression  Kind = "ArrayExpression"
	KindObjectExpression Kind = "ObjectExpression"
	KindFunctionExpression Kind = "FunctionExpression"
	KindArrowFunctionExpression Kind = "ArrowFunctionExpression"
	KindClassExpression  Kind = "ClassExpression"
	KindNewExpression    Kind = "NewExpression"
	KindCallExpression   Kind = "CallExpression"
	KindMemberExpression Kind = "MemberExpression"
	KindUnaryExpression  Kind = "UnaryExpression"
	KindBinaryExpression Kind = "BinaryExpression"
	KindLogicalExpression Kind = "LogicalExpression"
	KindAssignmentExpression Kind = "AssignmentExpression"
	KindConditionalExpression Kind = "ConditionalExpression"
	KindSpreadElement    Kind = "SpreadElement"
	KindSequenceExpression Kind = "SequenceExpression"

	KindVariableDeclaration Kind = "VariableDeclaration"
	KindExpressionStatement Kind = "ExpressionStatement"
	KindFunctionDeclaration Kind = "FunctionDeclaration"
	KindClassDeclaration Kind = "ClassDeclaration"
	KindReturnStatement  Kind = "ReturnStatement"
	KindThrowStatement   Kind = "ThrowStatement"
	KindIfStatement      Kind = "IfStatement"
	KindBlockStatement   Kind = "BlockStatement"
	KindForStatement     Kind = "ForStatement"
	KindForInStatement   Kind = "ForInStatement"
	KindForOfStatement   Kind = "ForOfStatement"
	KindWhileStatement   Kind = "WhileStatement"
	KindDoWhileStatement Kind = "DoWhileStatement"
	KindBreakStatement   Kind = "BreakStatement"
	KindContinueStatement Kind = "ContinueStatement"
	KindTryStatement     Kind = "TryStatement"
	KindSwitchStatement  Kind = "SwitchStatement"
	KindLabeledStatement Kind = "LabeledStatement"
	KindEmptyStatement   Kind = "EmptyStatement"
	KindImportDeclaration Kind = "ImportDeclaration"
	KindExportDefaultDeclaration Kind = "ExportDefaultDeclaration"
	KindExportNamedDeclaration  Kind = "ExportNamedDeclaration"
	KindExportAllDeclaration    Kind = "ExportAllDeclaration"

	// KindWholeModule is the sentinel "interest" a plugin declares to run
	// once per module rather than once per matched node.
	KindWholeModule Kind = "*WholeModule*"
)

// ExprKind returns the node-kind name for an expression's dynamic data type.
func ExprKind(e Expr) Kind {
	switch e.Data.(type) {
	case *EIdentifier:
		return KindIdentifier
	case *ENumber:
		return KindNumericLiteral
	case *EString:
		return KindStringLiteral
	case *EBoolean:
		return KindBooleanLiteral
	case *ENull, *EUndefined:
		return KindNullLiteral
	case *EThis:
		return KindThisExpression
	case *ERegExp:
		return KindRegExpLiteral
	case *ETemplate:
		return KindTemplateLiteral
	case *EArray:
		return KindArrayExpression
	case *EObject:
		return KindObjectExpression
	case *EFunction:
		return KindFunctionExpression
	case *EArrow:
		return KindArrowFunctionExpression
	case *EClass:
		return KindClassExpression
	case *ENew:
		return KindNewExpression
	case *ECall:
		return KindCallExpression
	case *EDot, *EIndex:
		return KindMemberExpression
	case *EUnary:
		return KindUnaryExpression
	case *EBinary:
		b := e.Data.(*EBinary)
		if b.Op.IsAssign() {
			return KindAssignmentExpression
		}
		if b.Op == BinOpLogicalAnd || b.Op == BinOpLogicalOr || b.Op == BinOpNullishCoalescing {
			return KindLogicalExpression
		}
		return KindBinaryExpression
	case *EIf:
		return KindConditionalExpression
	case *ESpread:
		return KindSpreadElement
	case *ESequence:
		return KindSequenceExpression
	}
	return ""
}

// StmtKind returns the node-kind name for a statement's dynamic data type.
func StmtKind(s Stmt) Kind {
	switch s.Data.(type) {
	case *SVarDecl:
		return KindVariableDeclaration
	case *SExpr:
		return KindExpressionStatement
	case *SFunction:
		return KindFunctionDeclaration
	case *SClass:
		return KindClassDeclaration
	case *SReturn:
		return KindReturnStatement
	case *SThrow:
		return KindThrowStatement
	case *SIf:
		return KindIfStatement
	case *SBlock:
		return KindBlockStatement
	case *SFor:
		return KindForStatement
	case *SForIn:
		return KindForInStatement
	case *SForOf:
		return KindForOfStatement
	case *SWhile:
		return KindWhileStatement
	case *SDoWhile:
		return KindDoWhileStatement
	case *SBreak:
		return KindBreakStatement
	case *SContinue:
		return KindContinueStatement
	case *STry:
		return KindTryStatement
	case *SSwitch:
		return KindSwitchStatement
	case *SLabel:
		return KindLabeledStatement
	case *SEmpty, *SDirective:
		return KindEmptyStatement
	case *SImport:
		return KindImportDeclaration
	case *SExportDefault:
		return KindExportDefaultDeclaration
	case *SExportNamed:
		return KindExportNamedDeclaration
	case *SExportStar:
		return KindExportAllDeclaration
	}
	return ""
}
