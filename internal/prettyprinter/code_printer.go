package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"

	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/token"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter). Every binary operator is
// left-associative; assignment sits below all of them and nests rightwards.
var operatorPrecedence = map[ast.BinaryOp]int{
	ast.OpOr:           1,
	ast.OpAnd:          2,
	ast.OpEqual:        3,
	ast.OpNotEqual:     3,
	ast.OpLessThan:     4,
	ast.OpGreaterThan:  4,
	ast.OpLessEqual:    4,
	ast.OpGreaterEqual: 4,
	ast.OpAdd:          7,
	ast.OpSubtract:     7,
	ast.OpMultiply:     8,
	ast.OpDivide:       8,
	ast.OpModulo:       8,
}

const (
	precAssign  = 0
	precLowest  = 0
	precPrefix  = 9
	precPostfix = 10
)

func getPrecedence(op ast.BinaryOp) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return precPostfix
}

// CodePrinter renders an AST back to canonical source. Parsing its output
// yields the same tree.
type CodePrinter struct {
	buf       bytes.Buffer
	indent    int
	lineWidth int // max line width (0 = unlimited)
	column    int // current column position
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{indent: 0, lineWidth: 100, column: 0}
}

func NewCodePrinterWithWidth(width int) *CodePrinter {
	return &CodePrinter{indent: 0, lineWidth: width, column: 0}
}

func (p *CodePrinter) SetLineWidth(width int) {
	p.lineWidth = width
}

// Print renders a whole program with the default line width.
func Print(program *ast.Program) string {
	p := NewCodePrinter()
	p.PrintProgram(program)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
	// Track column position
	if idx := strings.LastIndex(s, "\n"); idx != -1 {
		p.column = len(s) - idx - 1
	} else {
		p.column += len(s)
	}
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
	p.column = 0
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
	p.column = p.indent * 4
}

// fits reports whether s can be written on the current line.
func (p *CodePrinter) fits(s string) bool {
	return p.lineWidth <= 0 || (!strings.Contains(s, "\n") && p.column+len(s) <= p.lineWidth)
}

// sub renders with a fresh printer sharing the indentation, for measuring.
func (p *CodePrinter) sub(render func(*CodePrinter)) string {
	temp := &CodePrinter{indent: p.indent, lineWidth: 0, column: p.column}
	render(temp)
	return temp.String()
}

func (p *CodePrinter) PrintProgram(program *ast.Program) {
	if program == nil {
		return
	}
	if program.Mode != ast.ModeUnknown {
		p.write("[" + program.Mode.String() + "]")
		p.writeln()
	}
	if program.Target != "" {
		p.write("[target " + program.Target + "]")
		p.writeln()
	}
	for i, stmt := range program.Statements {
		if i == 0 && program.Mode != ast.ModeUnknown {
			p.writeln()
		}
		p.PrintStatement(stmt)
		p.writeln()
	}
}

// --- Statements ---

func (p *CodePrinter) PrintStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		p.printBinding("let", s.Name, s.TypeAnnotation, s.Value)
	case *ast.ConstStatement:
		p.printBinding("const", s.Name, s.TypeAnnotation, s.Value)
	case *ast.ExpressionStatement:
		p.printExpressionStatement(s)
	case *ast.PrintStatement:
		p.write("print(")
		p.printExpr(s.Value, precLowest, false)
		p.write(")")
	case *ast.ReturnStatement:
		p.write("return")
		if s.Value != nil {
			p.write(" ")
			p.printExpr(s.Value, precLowest, false)
		}
	case *ast.IfStatement:
		p.printIf(s)
	case *ast.WhileStatement:
		p.write("while ")
		p.printExpr(s.Condition, precLowest, false)
		p.write(" ")
		p.printBlock(s.Body)
	case *ast.ForStatement:
		p.printLoop("for", s.Variable, s.Iterable, s.Body)
	case *ast.ParallelForStatement:
		p.printLoop("parallel for", s.Variable, s.Iterable, s.Body)
	case *ast.ParallelMapStatement:
		p.printLoop("parallel map", s.Variable, s.Iterable, s.Body)
	case *ast.BlockStatement:
		p.printBlock(s)
	case *ast.FunctionStatement:
		p.printFunction(s)
	case *ast.ImportStatement:
		p.write("import ")
		p.write(moduleName(s.Module))
		if s.Alias != "" {
			p.write(" as " + s.Alias)
		}
	case *ast.ModuleStatement:
		p.write("module " + s.Name)
	case *ast.ActorStatement:
		p.printContainer("actor", &s.ContainerBody)
	case *ast.ContractStatement:
		p.printContainer("contract", &s.ContainerBody)
	case *ast.ComponentStatement:
		p.write("component " + s.Name + "() ")
		p.printStatements(s.Body)
	case *ast.FlowStatement:
		p.write("flow " + s.Name + " ")
		p.printStatements(s.Body)
	case *ast.DeploymentStatement:
		p.write("deployment " + quote(s.Name) + " ")
		p.printStatements(s.Body)
	case *ast.ClusterStatement:
		p.write("cluster " + quote(s.Name) + " ")
		p.printStatements(s.Body)
	case *ast.MatchStatement:
		p.printMatch(s.Subject, s.Arms)
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) printBinding(keyword string, name *ast.Identifier, annotation string, value ast.Expression) {
	p.write(keyword + " ")
	p.printIdent(name)
	if annotation != "" {
		p.write(": " + annotation)
	}
	p.write(" = ")
	p.printExpr(value, precAssign, true)
}

func (p *CodePrinter) printExpressionStatement(s *ast.ExpressionStatement) {
	switch e := s.Expression.(type) {
	case *ast.DestructureExpression:
		p.write("let ")
		p.PrintPattern(e.Pattern)
		p.write(" = ")
		p.printExpr(e.Value, precAssign, true)
	default:
		// A leading '{' would start a block and a leading match a match
		// statement.
		switch leftmost(e).(type) {
		case *ast.MapLiteral, *ast.MatchExpression:
			p.write("(")
			p.printExpr(e, precLowest, false)
			p.write(")")
			return
		}
		p.printExpr(e, precLowest, false)
	}
}

// leftmost returns the expression whose first token starts expr.
func leftmost(expr ast.Expression) ast.Expression {
	for {
		switch e := expr.(type) {
		case *ast.InfixExpression:
			expr = e.Left
		case *ast.CallExpression:
			expr = e.Function
		case *ast.MemberExpression:
			expr = e.Left
		case *ast.IndexExpression:
			expr = e.Left
		default:
			return expr
		}
	}
}

// printIf prints an else branch that holds a single if as an elif.
func (p *CodePrinter) printIf(s *ast.IfStatement) {
	p.write("if ")
	p.printExpr(s.Condition, precLowest, false)
	p.write(" ")
	p.printBlock(s.Consequence)
	if s.Alternative == nil {
		return
	}
	if len(s.Alternative.Statements) == 1 {
		if nested, ok := s.Alternative.Statements[0].(*ast.IfStatement); ok {
			p.write(" el")
			p.printIf(nested)
			return
		}
	}
	p.write(" else ")
	p.printBlock(s.Alternative)
}

func (p *CodePrinter) printLoop(keyword string, variable *ast.Identifier, iterable ast.Expression, body *ast.BlockStatement) {
	p.write(keyword + " ")
	p.printIdent(variable)
	p.write(" in ")
	p.printExpr(iterable, precLowest, false)
	p.write(" ")
	p.printBlock(body)
}

func (p *CodePrinter) printBlock(block *ast.BlockStatement) {
	if block == nil {
		p.write("<???>")
		return
	}
	p.printStatements(block.Statements)
}

func (p *CodePrinter) printStatements(stmts []ast.Statement) {
	if len(stmts) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.writeln()
	p.indent++
	for _, stmt := range stmts {
		p.writeIndent()
		p.PrintStatement(stmt)
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) printFunction(fn *ast.FunctionStatement) {
	switch fn.Kind {
	case ast.FunctionAsync:
		p.write("async ")
	case ast.FunctionCoroutine:
		p.write("coroutine ")
	}
	p.write("fn ")
	p.printIdent(fn.Name)
	p.write("(")
	for i, param := range fn.Parameters {
		if i > 0 {
			p.write(", ")
		}
		p.printIdent(param.Name)
		if param.TypeAnnotation != "" {
			p.write(": " + param.TypeAnnotation)
		}
	}
	p.write(")")
	if fn.ReturnType != "" {
		p.write(" -> " + fn.ReturnType)
	}
	p.write(" ")
	p.printBlock(fn.Body)
}

func (p *CodePrinter) printContainer(keyword string, c *ast.ContainerBody) {
	p.write(keyword + " ")
	p.printIdent(c.Name)
	if len(c.Fields) == 0 && len(c.Methods) == 0 {
		p.write(" {}")
		return
	}
	p.write(" {")
	p.writeln()
	p.indent++
	for _, field := range c.Fields {
		p.writeIndent()
		p.write("state ")
		p.printBinding("let", field.Name, field.TypeAnnotation, field.Value)
		p.writeln()
	}
	for i, method := range c.Methods {
		if i > 0 || len(c.Fields) > 0 {
			p.writeln()
		}
		p.writeIndent()
		p.printFunction(method)
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) printMatch(subject ast.Expression, arms []*ast.MatchArm) {
	p.write("match ")
	p.printExpr(subject, precLowest, false)
	if len(arms) == 0 {
		p.write(" {}")
		return
	}
	p.write(" {")
	p.writeln()
	p.indent++
	for _, arm := range arms {
		p.writeIndent()
		p.PrintPattern(arm.Pattern)
		if arm.Guard != nil {
			p.write(" if ")
			p.printExpr(arm.Guard, precLowest, false)
		}
		p.write(" => ")
		p.printArmBody(arm.Body)
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

// printArmBody writes a single simple statement inline and anything else
// as a brace block.
func (p *CodePrinter) printArmBody(body *ast.BlockStatement) {
	if body != nil && len(body.Statements) == 1 {
		switch s := body.Statements[0].(type) {
		case *ast.PrintStatement, *ast.ReturnStatement:
			p.PrintStatement(s)
			return
		case *ast.ExpressionStatement:
			if _, destructure := s.Expression.(*ast.DestructureExpression); !destructure {
				p.PrintStatement(s)
				return
			}
		}
	}
	p.printBlock(body)
}

// --- Expressions ---

func (p *CodePrinter) PrintExpression(expr ast.Expression) {
	p.printExpr(expr, precLowest, false)
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	switch e := expr.(type) {
	case nil:
		p.write("<???>")
	case *ast.InfixExpression:
		prec := getPrecedence(e.Operator)
		needParens := prec < parentPrec || (prec == parentPrec && isRight)
		if needParens {
			p.write("(")
		}
		p.printExpr(e.Left, prec, false)
		p.write(" " + string(e.Operator) + " ")
		p.printExpr(e.Right, prec, true)
		if needParens {
			p.write(")")
		}
	case *ast.AssignExpression:
		needParens := parentPrec > precAssign
		if needParens {
			p.write("(")
		}
		p.printIdent(e.Name)
		p.write(" = ")
		p.printExpr(e.Value, precAssign, true)
		if needParens {
			p.write(")")
		}
	case *ast.PrefixExpression:
		p.wrapUnary(string(e.Operator), e.Right, parentPrec)
	case *ast.AwaitExpression:
		p.wrapUnary("await ", e.Value, parentPrec)
	case *ast.ResumeExpression:
		p.wrapUnary("resume ", e.Coroutine, parentPrec)
	case *ast.AsyncExpression:
		p.wrapUnary("async ", e.Body, parentPrec)
	case *ast.CallExpression:
		p.printExpr(e.Function, precPostfix, false)
		p.printList("(", ")", len(e.Arguments), func(t *CodePrinter, i int) {
			t.printExpr(e.Arguments[i], precLowest, false)
		})
	case *ast.MemberExpression:
		p.printExpr(e.Left, precPostfix, false)
		p.write(".")
		p.printIdent(e.Member)
	case *ast.IndexExpression:
		p.printExpr(e.Left, precPostfix, false)
		p.write("[")
		p.printExpr(e.Index, precLowest, false)
		p.write("]")
	case *ast.Identifier:
		p.printIdent(e)
	case *ast.NumberLiteral:
		p.write(formatNumber(e.Value))
	case *ast.StringLiteral:
		p.write(quote(e.Value))
	case *ast.BooleanLiteral:
		p.write(strconv.FormatBool(e.Value))
	case *ast.NoneLiteral:
		p.write("none")
	case *ast.ListLiteral:
		p.printList("[", "]", len(e.Elements), func(t *CodePrinter, i int) {
			t.printExpr(e.Elements[i], precLowest, false)
		})
	case *ast.MapLiteral:
		p.printList("{", "}", len(e.Pairs), func(t *CodePrinter, i int) {
			t.printMapKey(e.Pairs[i].Key)
			t.write(": ")
			t.printExpr(e.Pairs[i].Value, precLowest, false)
		})
	case *ast.MatchExpression:
		p.printMatch(e.Subject, e.Arms)
	case *ast.DestructureExpression:
		p.write("let ")
		p.PrintPattern(e.Pattern)
		p.write(" = ")
		p.printExpr(e.Value, precAssign, true)
	case *ast.YieldExpression:
		needParens := e.Value != nil && parentPrec > precLowest
		if needParens {
			p.write("(")
		}
		p.write("yield")
		if e.Value != nil {
			p.write(" ")
			p.printExpr(e.Value, precLowest, false)
		}
		if needParens {
			p.write(")")
		}
	case *ast.GeneratorExpression:
		p.write("generator ")
		p.printBlock(e.Body)
	case *ast.CoroutineExpression:
		p.write("coroutine ")
		p.printBlock(e.Body)
	case *ast.SuspendExpression:
		p.write("suspend")
	default:
		p.write("<???>")
	}
}

// wrapUnary prints a prefix form. Its operand binds like a unary operand,
// and the whole form binds tighter than any binary operator.
func (p *CodePrinter) wrapUnary(prefix string, operand ast.Expression, parentPrec int) {
	needParens := parentPrec > precPrefix
	if needParens {
		p.write("(")
	}
	p.write(prefix)
	p.printExpr(operand, precPrefix, false)
	if needParens {
		p.write(")")
	}
}

// printList writes n comma-separated items between open and close, one
// item per line when the flat form would overflow the line width.
func (p *CodePrinter) printList(open, close string, n int, item func(t *CodePrinter, i int)) {
	if n == 0 {
		p.write(open + close)
		return
	}
	flat := p.sub(func(t *CodePrinter) {
		t.write(open)
		for i := 0; i < n; i++ {
			if i > 0 {
				t.write(", ")
			}
			item(t, i)
		}
		t.write(close)
	})
	if p.fits(flat) {
		p.write(flat)
		return
	}

	p.write(open)
	p.writeln()
	p.indent++
	for i := 0; i < n; i++ {
		p.writeIndent()
		item(p, i)
		p.write(",")
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write(close)
}

func (p *CodePrinter) printMapKey(key ast.Expression) {
	switch k := key.(type) {
	case *ast.Identifier:
		p.printIdent(k)
	case *ast.StringLiteral:
		p.write(quote(k.Value))
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) printIdent(ident *ast.Identifier) {
	if ident == nil {
		p.write("<???>")
		return
	}
	p.write(ident.Value)
}

// --- Patterns ---

func (p *CodePrinter) PrintPattern(pat ast.Pattern) {
	switch pt := pat.(type) {
	case *ast.WildcardPattern:
		p.write("_")
	case *ast.IdentifierPattern:
		p.write(pt.Name)
	case *ast.NumberPattern:
		if pt.Value < 0 {
			p.write("-" + formatNumber(-pt.Value))
		} else {
			p.write(formatNumber(pt.Value))
		}
	case *ast.StringPattern:
		p.write(quote(pt.Value))
	case *ast.BooleanPattern:
		p.write(strconv.FormatBool(pt.Value))
	case *ast.TuplePattern:
		p.write("(")
		p.printPatterns(pt.Elements)
		if len(pt.Elements) == 1 {
			p.write(",")
		}
		p.write(")")
	case *ast.ListPattern:
		p.write("[")
		p.printPatterns(pt.Elements)
		p.write("]")
	case *ast.StructPattern:
		p.printStructPattern(pt)
	case *ast.BindingPattern:
		p.write(pt.Name + " @ ")
		p.printNestedPattern(pt.Pattern)
	case *ast.OrPattern:
		for i, alt := range pt.Alternatives {
			if i > 0 {
				p.write(" | ")
			}
			p.printNestedPattern(alt)
		}
	case *ast.GuardPattern:
		p.PrintPattern(pt.Pattern)
		p.write(" if ")
		p.printExpr(pt.Condition, precLowest, false)
	default:
		p.write("<???>")
	}
}

// printNestedPattern parenthesizes alternatives where a single pattern is
// expected.
func (p *CodePrinter) printNestedPattern(pat ast.Pattern) {
	if _, ok := pat.(*ast.OrPattern); ok {
		p.write("(")
		p.PrintPattern(pat)
		p.write(")")
		return
	}
	p.PrintPattern(pat)
}

func (p *CodePrinter) printPatterns(pats []ast.Pattern) {
	for i, pat := range pats {
		if i > 0 {
			p.write(", ")
		}
		p.PrintPattern(pat)
	}
}

// printStructPattern abbreviates `name: name` fields to `name`.
func (p *CodePrinter) printStructPattern(sp *ast.StructPattern) {
	p.write(sp.Name + " {")
	if len(sp.Fields) == 0 {
		p.write("}")
		return
	}
	p.write(" ")
	for i, field := range sp.Fields {
		if i > 0 {
			p.write(", ")
		}
		p.write(field.Name)
		if ip, ok := field.Pattern.(*ast.IdentifierPattern); ok && ip.Name == field.Name {
			continue
		}
		p.write(": ")
		p.PrintPattern(field.Pattern)
	}
	p.write(" }")
}

// --- Literals ---

// formatNumber never uses exponent notation, which the lexer cannot read.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// quote escapes only what the lexer unescapes.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// moduleName prints a dotted identifier path bare and anything else quoted.
func moduleName(name string) string {
	for _, part := range strings.Split(name, ".") {
		if !isPlainIdent(part) {
			return quote(name)
		}
	}
	return name
}

func isPlainIdent(s string) bool {
	if s == "" || token.LookupIdent(s) != token.IDENT {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && (unicode.IsDigit(r) || unicode.IsMark(r))) {
			continue
		}
		return false
	}
	return true
}
