package parser_test

import (
	"strings"
	"testing"

	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/lexer"
	"github.com/funvibe/polymodal/internal/parser"
	"github.com/funvibe/polymodal/internal/pipeline"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	return parser.Parse(lexer.Tokenize(input))
}

// parseWithDiagnostics runs the lexer and parser processors and returns
// the program together with all recovery warnings.
func parseWithDiagnostics(input string) (*ast.Program, []*diagnostics.Diagnostic) {
	ctx := pipeline.NewContext(input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	return ctx.AstRoot, ctx.Diagnostics
}

func expectNoDiagnostics(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, diags := parseWithDiagnostics(input)
	if len(diags) > 0 {
		var msgs []string
		for _, d := range diags {
			msgs = append(msgs, d.Error())
		}
		t.Fatalf("expected no diagnostics, got:\n%s\ninput: %s", strings.Join(msgs, "\n"), input)
	}
	return prog
}

func single[T ast.Statement](t *testing.T, prog *ast.Program) T {
	t.Helper()
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	stmt, ok := prog.Statements[0].(T)
	if !ok {
		t.Fatalf("statement is %T", prog.Statements[0])
	}
	return stmt
}

func expression(t *testing.T, stmt ast.Statement) ast.Expression {
	t.Helper()
	es, ok := stmt.(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ExpressionStatement", stmt)
	}
	return es.Expression
}

func TestParseProgram_Headers(t *testing.T) {
	tests := []struct {
		input  string
		mode   ast.ExecutionMode
		target string
	}{
		{"[Compiled]\nlet x = 1", ast.ModeCompiled, ""},
		{"[Interpreted]\n[target wasm32]\nlet x = 1", ast.ModeInterpreted, "wasm32"},
		{"let x = 1", ast.ModeUnknown, ""},
	}
	for _, tt := range tests {
		prog := expectNoDiagnostics(t, tt.input)
		if prog.Mode != tt.mode {
			t.Errorf("%q: mode = %s, want %s", tt.input, prog.Mode, tt.mode)
		}
		if prog.Target != tt.target {
			t.Errorf("%q: target = %q, want %q", tt.input, prog.Target, tt.target)
		}
		if len(prog.Statements) != 1 {
			t.Errorf("%q: expected 1 statement, got %d", tt.input, len(prog.Statements))
		}
	}
}

func TestParseLetStatement(t *testing.T) {
	tests := []struct {
		input      string
		name       string
		annotation string
	}{
		{"let x = 5", "x", ""},
		{"let total: i64 = 5", "total", "i64"},
		{"let xs: list[i32] = [1, 2]", "xs", "list[i32]"},
		{"let m: map[str,list[f64]] = {}", "m", "map[str, list[f64]]"},
		{"let r: result[i32, str] =\n  5", "r", "result[i32, str]"},
	}
	for _, tt := range tests {
		stmt := single[*ast.LetStatement](t, expectNoDiagnostics(t, tt.input))
		if stmt.Name.Value != tt.name {
			t.Errorf("%q: name = %q, want %q", tt.input, stmt.Name.Value, tt.name)
		}
		if stmt.TypeAnnotation != tt.annotation {
			t.Errorf("%q: annotation = %q, want %q", tt.input, stmt.TypeAnnotation, tt.annotation)
		}
	}
}

func TestParseConstAndDestructure(t *testing.T) {
	prog := expectNoDiagnostics(t, "const limit: u8 = 10\nlet (a, [b, _]) = pair")
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	cs, ok := prog.Statements[0].(*ast.ConstStatement)
	if !ok || cs.Name.Value != "limit" || cs.TypeAnnotation != "u8" {
		t.Fatalf("unexpected const statement: %#v", prog.Statements[0])
	}
	de, ok := expression(t, prog.Statements[1]).(*ast.DestructureExpression)
	if !ok {
		t.Fatalf("expected destructure expression")
	}
	tuple, ok := de.Pattern.(*ast.TuplePattern)
	if !ok || len(tuple.Elements) != 2 {
		t.Fatalf("expected 2-element tuple pattern, got %#v", de.Pattern)
	}
	if _, ok := tuple.Elements[1].(*ast.ListPattern); !ok {
		t.Errorf("second element is %T, want *ast.ListPattern", tuple.Elements[1])
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		op    ast.BinaryOp
		left  string // operator of the left operand, or "" for a leaf
		right string // operator of the right operand, or "" for a leaf
	}{
		{"1 + 2 * 3", ast.OpAdd, "", "*"},
		{"1 * 2 + 3", ast.OpAdd, "*", ""},
		{"1 - 2 - 3", ast.OpSubtract, "-", ""},
		{"a < b == c > d", ast.OpEqual, "<", ">"},
		{"a || b && c", ast.OpOr, "", "&&"},
		{"a && b || c", ast.OpOr, "&&", ""},
		{"x % 2 != 0", ast.OpNotEqual, "%", ""},
	}

	opOf := func(e ast.Expression) string {
		if ie, ok := e.(*ast.InfixExpression); ok {
			return string(ie.Operator)
		}
		return ""
	}

	for _, tt := range tests {
		prog := expectNoDiagnostics(t, tt.input)
		ie, ok := expression(t, prog.Statements[0]).(*ast.InfixExpression)
		if !ok {
			t.Fatalf("%q: not an infix expression", tt.input)
		}
		if ie.Operator != tt.op || opOf(ie.Left) != tt.left || opOf(ie.Right) != tt.right {
			t.Errorf("%q: got (%s %s %s)", tt.input, opOf(ie.Left), ie.Operator, opOf(ie.Right))
		}
	}
}

func TestUnaryRecursesAndAssignmentIsRightAssociative(t *testing.T) {
	prog := expectNoDiagnostics(t, "!!-x\na = b = 3")
	pe, ok := expression(t, prog.Statements[0]).(*ast.PrefixExpression)
	if !ok || pe.Operator != ast.OpNot {
		t.Fatalf("expected outer !")
	}
	inner, ok := pe.Right.(*ast.PrefixExpression)
	if !ok || inner.Operator != ast.OpNot {
		t.Fatalf("expected nested !")
	}
	if neg, ok := inner.Right.(*ast.PrefixExpression); !ok || neg.Operator != ast.OpNegate {
		t.Fatalf("expected innermost -")
	}

	assign, ok := expression(t, prog.Statements[1]).(*ast.AssignExpression)
	if !ok || assign.Name.Value != "a" {
		t.Fatalf("expected assignment to a")
	}
	if nested, ok := assign.Value.(*ast.AssignExpression); !ok || nested.Name.Value != "b" {
		t.Fatalf("expected nested assignment to b, got %T", assign.Value)
	}
}

func TestCallMemberIndexChain(t *testing.T) {
	prog := expectNoDiagnostics(t, "counter.items[0](1,\n  2,\n)")
	call, ok := expression(t, prog.Statements[0]).(*ast.CallExpression)
	if !ok || len(call.Arguments) != 2 {
		t.Fatalf("expected call with 2 args")
	}
	index, ok := call.Function.(*ast.IndexExpression)
	if !ok {
		t.Fatalf("callee is %T, want *ast.IndexExpression", call.Function)
	}
	member, ok := index.Left.(*ast.MemberExpression)
	if !ok || member.Member.Value != "items" {
		t.Fatalf("expected member access .items")
	}
	if _, named := call.CalleeName(); named {
		t.Errorf("CalleeName should fail for a non-identifier callee")
	}
}

func TestMapAndListLiterals(t *testing.T) {
	prog := expectNoDiagnostics(t, "let m = {name: \"a\", \"age\": 3,\n}\nlet e = {}\nlet l = []")
	lit := prog.Statements[0].(*ast.LetStatement).Value.(*ast.MapLiteral)
	if len(lit.Pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(lit.Pairs))
	}
	if key, ok := lit.Pairs[0].Key.(*ast.Identifier); !ok || key.Value != "name" {
		t.Errorf("first key = %#v", lit.Pairs[0].Key)
	}
	if key, ok := lit.Pairs[1].Key.(*ast.StringLiteral); !ok || key.Value != "age" {
		t.Errorf("second key = %#v", lit.Pairs[1].Key)
	}
	if empty := prog.Statements[1].(*ast.LetStatement).Value.(*ast.MapLiteral); len(empty.Pairs) != 0 {
		t.Errorf("expected empty map")
	}
	if empty := prog.Statements[2].(*ast.LetStatement).Value.(*ast.ListLiteral); len(empty.Elements) != 0 {
		t.Errorf("expected empty list")
	}
}

func TestElifDesugarsToNestedIf(t *testing.T) {
	input := `if a {
  print(1)
} elif b {
  print(2)
}
elif c print(3)
else {
  print(4)
}`
	stmt := single[*ast.IfStatement](t, expectNoDiagnostics(t, input))

	depth := 0
	current := stmt
	for {
		depth++
		if current.Alternative == nil {
			t.Fatalf("chain ended early at depth %d", depth)
		}
		if len(current.Alternative.Statements) != 1 {
			t.Fatalf("alternative at depth %d has %d statements", depth, len(current.Alternative.Statements))
		}
		next, ok := current.Alternative.Statements[0].(*ast.IfStatement)
		if !ok {
			if _, isPrint := current.Alternative.Statements[0].(*ast.PrintStatement); !isPrint {
				t.Fatalf("final else holds %T", current.Alternative.Statements[0])
			}
			break
		}
		current = next
	}
	if depth != 3 {
		t.Errorf("expected right-leaning chain of 3 ifs, got %d", depth)
	}
}

func TestBlockWithoutBraces(t *testing.T) {
	prog := expectNoDiagnostics(t, "while x < 3 x = x + 1\nfor i in range(3) print(i)")
	ws := prog.Statements[0].(*ast.WhileStatement)
	if len(ws.Body.Statements) != 1 {
		t.Fatalf("while body has %d statements", len(ws.Body.Statements))
	}
	fs := prog.Statements[1].(*ast.ForStatement)
	if fs.Variable.Value != "i" || len(fs.Body.Statements) != 1 {
		t.Fatalf("unexpected for statement: %#v", fs)
	}
}

func TestFunctionDeclarations(t *testing.T) {
	input := `fn add(a: i32, b) -> i64 {
  return a + b
}
async fn fetch() { await add(1, 2) }
coroutine fn ticks() -> none { yield 1 }`
	prog := expectNoDiagnostics(t, input)
	if len(prog.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(prog.Statements))
	}

	add := prog.Statements[0].(*ast.FunctionStatement)
	if add.Kind != ast.FunctionPlain || add.Name.Value != "add" || add.ReturnType != "i64" {
		t.Errorf("unexpected add: %#v", add)
	}
	if len(add.Parameters) != 2 || add.Parameters[0].TypeAnnotation != "i32" || add.Parameters[1].TypeAnnotation != "" {
		t.Errorf("unexpected parameters: %#v", add.Parameters)
	}
	if prog.Statements[1].(*ast.FunctionStatement).Kind != ast.FunctionAsync {
		t.Errorf("expected async fn")
	}
	co := prog.Statements[2].(*ast.FunctionStatement)
	if co.Kind != ast.FunctionCoroutine || co.ReturnType != "none" {
		t.Errorf("unexpected coroutine fn: %#v", co)
	}
}

func TestReturnWithoutValue(t *testing.T) {
	prog := expectNoDiagnostics(t, "fn f() {\n  return\n}\nfn g() { return }")
	for _, stmt := range prog.Statements {
		ret := stmt.(*ast.FunctionStatement).Body.Statements[0].(*ast.ReturnStatement)
		if ret.Value != nil {
			t.Errorf("expected bare return, got %#v", ret.Value)
		}
	}
}

func TestContainerDeclarations(t *testing.T) {
	input := `contract Token {
  state let supply: u64 = 100
  signal Transfer { from, to }
  junk tokens here
  fn total() -> u64 { return self.supply }
}
actor Counter { state let n = 0 }`
	prog := expectNoDiagnostics(t, input)
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	contract := prog.Statements[0].(*ast.ContractStatement)
	if contract.Name.Value != "Token" || len(contract.Fields) != 1 || len(contract.Methods) != 1 {
		t.Fatalf("unexpected contract: fields=%d methods=%d", len(contract.Fields), len(contract.Methods))
	}
	if contract.Fields[0].TypeAnnotation != "u64" || contract.Methods[0].Name.Value != "total" {
		t.Errorf("unexpected members: %#v %#v", contract.Fields[0], contract.Methods[0])
	}
	actor := prog.Statements[1].(*ast.ActorStatement)
	if actor.Name.Value != "Counter" || len(actor.Fields) != 1 {
		t.Errorf("unexpected actor: %#v", actor)
	}
}

func TestSectionsImportsAndModules(t *testing.T) {
	input := `module app.core
import math
import "net/http" as http
component Button() { let label = "ok" }
flow Checkout { print(1) }
deployment "prod" { let replicas = 3 }
cluster "east" {}`
	prog := expectNoDiagnostics(t, input)
	if len(prog.Statements) != 7 {
		t.Fatalf("expected 7 statements, got %d", len(prog.Statements))
	}
	if m := prog.Statements[0].(*ast.ModuleStatement); m.Name != "app.core" {
		t.Errorf("module name = %q", m.Name)
	}
	if imp := prog.Statements[2].(*ast.ImportStatement); imp.Module != "net/http" || imp.BindingName() != "http" {
		t.Errorf("unexpected import: %#v", imp)
	}
	if c := prog.Statements[3].(*ast.ComponentStatement); c.Name != "Button" || len(c.Body) != 1 {
		t.Errorf("unexpected component: %#v", c)
	}
	if d := prog.Statements[5].(*ast.DeploymentStatement); d.Name != "prod" || len(d.Body) != 1 {
		t.Errorf("unexpected deployment: %#v", d)
	}
	if c := prog.Statements[6].(*ast.ClusterStatement); c.Name != "east" || len(c.Body) != 0 {
		t.Errorf("unexpected cluster: %#v", c)
	}
}

func TestParallelStatements(t *testing.T) {
	prog := expectNoDiagnostics(t, "parallel for x in xs { print(x) }\nparallel map x in xs { x * 2 }")
	if _, ok := prog.Statements[0].(*ast.ParallelForStatement); !ok {
		t.Errorf("expected parallel for, got %T", prog.Statements[0])
	}
	if pm, ok := prog.Statements[1].(*ast.ParallelMapStatement); !ok || pm.Variable.Value != "x" {
		t.Errorf("expected parallel map, got %T", prog.Statements[1])
	}
}

func TestMatchStatementAndExpression(t *testing.T) {
	input := `match 5 { 5 => print("five"), _ => print("other") }
let label = match point {
  (0, 0) => "origin"
  (x, _) if x > 0 => "right"
  n @ [1, 2] | [] => { "list" }
  Point { x: -1, y } => "left"
}`
	prog := expectNoDiagnostics(t, input)

	ms := prog.Statements[0].(*ast.MatchStatement)
	if len(ms.Arms) != 2 {
		t.Fatalf("expected 2 arms, got %d", len(ms.Arms))
	}
	if np, ok := ms.Arms[0].Pattern.(*ast.NumberPattern); !ok || np.Value != 5 {
		t.Errorf("first arm pattern = %#v", ms.Arms[0].Pattern)
	}
	if _, ok := ms.Arms[1].Pattern.(*ast.WildcardPattern); !ok {
		t.Errorf("second arm pattern = %T", ms.Arms[1].Pattern)
	}

	me := prog.Statements[1].(*ast.LetStatement).Value.(*ast.MatchExpression)
	if len(me.Arms) != 4 {
		t.Fatalf("expected 4 arms, got %d", len(me.Arms))
	}
	if me.Arms[1].Guard == nil {
		t.Errorf("second arm should have a guard")
	}
	or, ok := me.Arms[2].Pattern.(*ast.OrPattern)
	if !ok || len(or.Alternatives) != 2 {
		t.Fatalf("third arm pattern = %T", me.Arms[2].Pattern)
	}
	if _, ok := or.Alternatives[0].(*ast.BindingPattern); !ok {
		t.Errorf("first alternative = %T", or.Alternatives[0])
	}
	sp, ok := me.Arms[3].Pattern.(*ast.StructPattern)
	if !ok || sp.Name != "Point" || len(sp.Fields) != 2 {
		t.Fatalf("fourth arm pattern = %#v", me.Arms[3].Pattern)
	}
	if np, ok := sp.Fields[0].Pattern.(*ast.NumberPattern); !ok || np.Value != -1 {
		t.Errorf("x field pattern = %#v", sp.Fields[0].Pattern)
	}
	if ip, ok := sp.Fields[1].Pattern.(*ast.IdentifierPattern); !ok || ip.Name != "y" {
		t.Errorf("shorthand field pattern = %#v", sp.Fields[1].Pattern)
	}
}

func TestExtensionExpressions(t *testing.T) {
	input := `let g = generator { yield 1
 yield }
let c = coroutine { suspend }
resume c
async work()`
	prog := expectNoDiagnostics(t, input)
	if _, ok := prog.Statements[0].(*ast.LetStatement).Value.(*ast.GeneratorExpression); !ok {
		t.Errorf("expected generator expression")
	}
	if _, ok := prog.Statements[1].(*ast.LetStatement).Value.(*ast.CoroutineExpression); !ok {
		t.Errorf("expected coroutine expression")
	}
	if _, ok := expression(t, prog.Statements[2]).(*ast.ResumeExpression); !ok {
		t.Errorf("expected resume expression")
	}
	if _, ok := expression(t, prog.Statements[3]).(*ast.AsyncExpression); !ok {
		t.Errorf("expected async expression")
	}
}

func TestResynchronization(t *testing.T) {
	input := "let a = 1\nlet = = 2 )\nlet b = 3"
	prog, diags := parseWithDiagnostics(input)

	var names []string
	for _, stmt := range prog.Statements {
		if ls, ok := stmt.(*ast.LetStatement); ok {
			names = append(names, ls.Name.Value)
		}
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("expected lets a and b to survive, got %v", names)
	}
	if len(diags) == 0 {
		t.Fatalf("expected recovery diagnostics")
	}
	for _, d := range diags {
		if d.Level != diagnostics.LevelWarning || d.Code != diagnostics.ErrP001 {
			t.Errorf("unexpected diagnostic %s", d.Error())
		}
	}
}

func TestResynchronizationInsideBlock(t *testing.T) {
	prog, _ := parseWithDiagnostics("fn f() {\n  let x = \n}\nlet after = 1")
	if len(prog.Statements) != 2 {
		t.Fatalf("expected function and let to survive, got %d statements", len(prog.Statements))
	}
	if ls, ok := prog.Statements[1].(*ast.LetStatement); !ok || ls.Name.Value != "after" {
		t.Errorf("second statement = %#v", prog.Statements[1])
	}
}

func TestParseNeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{
		"", ")", "}}}", "let", "fn (", "match {", "match x { 1 => }", "[1, 2",
		"actor {", "contract C { state let", "if", "parallel x", "let m = { 1: 2 }",
		"x = ", "a.(b)", "((((((", "print", "import", "elif x {}",
	}
	for _, input := range inputs {
		prog, _ := parseWithDiagnostics(input)
		if prog == nil {
			t.Errorf("%q: nil program", input)
		}
	}
}
